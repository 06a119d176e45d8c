package domain

// Principal identifies the authenticated caller for the lifetime of a
// request. It is attached to the request context by the auth middleware.
type Principal struct {
	UserID  string
	Email   string
	Name    string
	IsAdmin bool
}

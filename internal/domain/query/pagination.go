package query

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Pagination carries list window parameters from the HTTP layer down to
// the repositories.
type Pagination struct {
	Limit  int64
	Offset int64
	// Order is "asc" or "desc" over the creation time. Empty means desc.
	Order string
}

// Normalize clamps the window to sane bounds.
func (p Pagination) Normalize() Pagination {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Order != "asc" {
		p.Order = "desc"
	}
	return p
}

// SortValue returns the mongo sort direction for Order.
func (p Pagination) SortValue() int {
	if p.Order == "asc" {
		return 1
	}
	return -1
}

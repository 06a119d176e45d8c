package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentdesk/internal/config"
	"agentdesk/internal/domain"
	"agentdesk/internal/domain/user"
	"agentdesk/internal/infrastructure/auth"
)

func testIssuer() *auth.TokenIssuer {
	return auth.NewTokenIssuer(&config.Config{
		JWTSecret:      "test-secret-at-least-16",
		Issuer:         "agentdesk-test",
		AccessTokenTTL: time.Hour,
	})
}

func TestRequestIDGeneratesWhenMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())

	var seen string
	router.GET("/ping", func(c *gin.Context) {
		seen = RequestIDFromContext(c)
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-Id"))
}

func TestRequestIDKeepsCallerValue(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-Id", "caller-supplied")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "caller-supplied", rec.Header().Get("X-Request-Id"))
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AuthMiddleware(testIssuer(), zerolog.Nop()))
	router.GET("/secure", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/secure", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsGarbageToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AuthMiddleware(testIssuer(), zerolog.Nop()))
	router.GET("/secure", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	issuer := testIssuer()
	token, _, err := issuer.Issue(&user.User{
		ID:    "user-1",
		Email: "member@example.com",
		Name:  "Member",
		Role:  "user",
	})
	require.NoError(t, err)

	router := gin.New()
	router.Use(AuthMiddleware(issuer, zerolog.Nop()))

	var principal domain.Principal
	router.GET("/secure", func(c *gin.Context) {
		var ok bool
		principal, ok = PrincipalFromContext(c)
		require.True(t, ok)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", principal.UserID)
	assert.False(t, principal.IsAdmin)
}

func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name      string
		principal *domain.Principal
		want      int
	}{
		{"no principal", nil, http.StatusUnauthorized},
		{"member", &domain.Principal{UserID: "u1", IsAdmin: false}, http.StatusForbidden},
		{"admin", &domain.Principal{UserID: "u1", IsAdmin: true}, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := gin.New()
			router.Use(func(c *gin.Context) {
				if tc.principal != nil {
					c.Set(principalContextKey, *tc.principal)
				}
			})
			router.Use(RequireAdmin())
			router.GET("/admin", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

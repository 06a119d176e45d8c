package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"agentdesk/internal/config"
	"agentdesk/internal/domain"
	"agentdesk/internal/domain/user"
	"agentdesk/internal/utils/platformerrors"
)

// Claims is the JWT payload issued at login.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// TokenIssuer mints and verifies the HS256 bearer tokens used by the API.
type TokenIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer constructs a TokenIssuer from the app config.
func NewTokenIssuer(cfg *config.Config) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(cfg.JWTSecret),
		issuer: cfg.Issuer,
		ttl:    cfg.AccessTokenTTL,
		now:    time.Now,
	}
}

// Issue signs an access token for the user and returns it with its
// expiry.
func (t *TokenIssuer) Issue(u *user.User) (string, time.Time, error) {
	now := t.now()
	expiresAt := now.Add(t.ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify parses the token and returns the principal it encodes.
func (t *TokenIssuer) Verify(ctx context.Context, tokenString string) (*domain.Principal, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeUnauthorized, "invalid or expired token", err, "34c3374c-7d18-43b6-b01f-befff1cdde59")
	}

	return &domain.Principal{
		UserID:  claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
		IsAdmin: claims.Role == user.RoleAdmin,
	}, nil
}

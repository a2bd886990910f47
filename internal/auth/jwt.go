package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims holds the typed JWT payload issued by the identity service.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTResolver validates HS256 tokens and extracts the principal.
type JWTResolver struct {
	secret []byte
}

// NewJWTResolver constructs a resolver for the given signing secret.
func NewJWTResolver(secret string) *JWTResolver {
	return &JWTResolver{secret: []byte(secret)}
}

// Resolve parses and validates a bearer token string.
func (r *JWTResolver) Resolve(_ context.Context, credential string) (*Principal, error) {
	if strings.TrimSpace(credential) == "" {
		return nil, ErrMissingCredential
	}

	token, err := jwt.ParseWithClaims(credential, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return r.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidCredential
	}

	if strings.TrimSpace(claims.UserID) == "" {
		return nil, ErrUnknownPrincipal
	}

	role := Role(claims.Role)
	if role != RoleAdmin {
		role = RoleUser
	}

	return &Principal{ID: claims.UserID, Role: role}, nil
}

// IssueToken creates a signed JWT for the given principal. The API itself
// does not expose login; this backs tests and local tooling.
func IssueToken(secret string, principal Principal, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID: principal.ID,
		Role:   string(principal.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

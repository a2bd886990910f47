package auth

import (
	"context"
	"errors"
)

// Role is the flat two-level authorization role attached to a principal.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Principal is an authenticated actor resolved from a credential.
type Principal struct {
	ID   string
	Role Role
}

// Resolver turns a bearer credential into a principal. The rest of the
// system never inspects credential internals; it only sees the resolved
// identity or one of the rejection errors below.
type Resolver interface {
	Resolve(ctx context.Context, credential string) (*Principal, error)
}

var (
	// ErrMissingCredential is returned when no credential was presented.
	ErrMissingCredential = errors.New("missing credential")
	// ErrInvalidCredential is returned for malformed or expired credentials.
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrUnknownPrincipal is returned when the credential does not carry a
	// resolvable identity.
	ErrUnknownPrincipal = errors.New("unknown principal")
	// ErrForbidden is returned when an authenticated principal lacks the
	// role an operation requires.
	ErrForbidden = errors.New("operation not allowed for role")
)

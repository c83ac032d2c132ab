// Package authz identifies API callers and decides who may administer the library.
package authz

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("admin access required")
	ErrInvalidToken    = errors.New("invalid token")
)

// RoleAdmin is the role claim value that grants admin access.
const RoleAdmin = "admin"

// Principal is the authenticated caller. The zero value is anonymous.
type Principal struct {
	Subject string `json:"sub"`
	Name    string `json:"name,omitempty"`
	Role    string `json:"role,omitempty"`
}

// Anonymous reports whether no caller was authenticated.
func (p Principal) Anonymous() bool {
	return p.Subject == ""
}

type principalKey struct{}

// WithPrincipal returns ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the caller stored in ctx, anonymous if none.
func FromContext(ctx context.Context) Principal {
	p, _ := ctx.Value(principalKey{}).(Principal)
	return p
}

// Guard decides whether a principal may use admin operations.
type Guard interface {
	IsAdmin(ctx context.Context, p Principal) (bool, error)
}

// GuardFunc adapts a function to Guard.
type GuardFunc func(ctx context.Context, p Principal) (bool, error)

func (f GuardFunc) IsAdmin(ctx context.Context, p Principal) (bool, error) {
	return f(ctx, p)
}

// RoleGuard grants admin to principals whose role claim is "admin".
func RoleGuard() Guard {
	return GuardFunc(func(_ context.Context, p Principal) (bool, error) {
		return !p.Anonymous() && p.Role == RoleAdmin, nil
	})
}

// AllowList grants admin to the listed subjects.
func AllowList(subjects ...string) Guard {
	allowed := slices.Clone(subjects)
	return GuardFunc(func(_ context.Context, p Principal) (bool, error) {
		return !p.Anonymous() && slices.Contains(allowed, p.Subject), nil
	})
}

// AnyOf grants admin when any guard does. Errors stop the evaluation.
func AnyOf(guards ...Guard) Guard {
	return GuardFunc(func(ctx context.Context, p Principal) (bool, error) {
		for _, g := range guards {
			ok, err := g.IsAdmin(ctx, p)
			if err != nil || ok {
				return ok, err
			}
		}
		return false, nil
	})
}

// RequireAdmin returns nil when p is an admin, ErrUnauthenticated for
// anonymous callers and ErrForbidden otherwise.
func RequireAdmin(ctx context.Context, g Guard, p Principal) error {
	if p.Anonymous() {
		return ErrUnauthenticated
	}
	ok, err := g.IsAdmin(ctx, p)
	if err != nil {
		return fmt.Errorf("admin check: %w", err)
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

// claims is the JWT payload.
type claims struct {
	Name string `json:"name,omitempty"`
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Verifier checks HS256 bearer tokens.
type Verifier struct {
	secret []byte
}

// NewVerifier returns a Verifier for tokens signed with secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses raw and returns the principal it names.
func (v *Verifier) Verify(_ context.Context, raw string) (Principal, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if c.Subject == "" {
		return Principal{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return Principal{Subject: c.Subject, Name: c.Name, Role: c.Role}, nil
}

// Issue signs a token for p valid for ttl.
func (v *Verifier) Issue(p Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	c := claims{
		Name: p.Name,
		Role: p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(v.secret)
}

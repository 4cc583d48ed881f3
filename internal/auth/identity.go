package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingCredential   = errors.New("missing bearer credential")
	ErrMalformedCredential = errors.New("malformed credential")
	ErrMissingSubject      = errors.New("credential has no subject")
	ErrMissingEmail        = errors.New("credential has no email")
)

// Identity is the per-request view of an authenticated principal,
// derived from the provider-issued credential. Never persisted.
type Identity struct {
	SubjectID   string
	Email       string
	DisplayName string
}

type providerClaims struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	jwt.RegisteredClaims
}

// Resolver maps an Authorization header to an Identity. Signature
// verification is the identity provider's responsibility; the resolver
// only decodes the claim payload.
type Resolver struct {
	parser *jwt.Parser
}

func NewResolver() *Resolver {
	return &Resolver{parser: jwt.NewParser()}
}

// Resolve authenticates the raw Authorization header value.
// A header without a well-formed "Bearer <token>" prefix fails with
// ErrMissingCredential before any decoding is attempted.
func (r *Resolver) Resolve(authorizationHeader string) (*Identity, error) {
	token, ok := strings.CutPrefix(authorizationHeader, "Bearer ")
	if !ok || token == "" {
		return nil, ErrMissingCredential
	}

	claims := &providerClaims{}
	if _, _, err := r.parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCredential, err)
	}

	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}
	if claims.Email == "" {
		return nil, ErrMissingEmail
	}

	return &Identity{
		SubjectID:   claims.Subject,
		Email:       claims.Email,
		DisplayName: displayName(claims),
	}, nil
}

func displayName(c *providerClaims) string {
	if c.FirstName != "" && c.LastName != "" {
		return c.FirstName + " " + c.LastName
	}
	if c.Username != "" {
		return c.Username
	}
	return "User"
}

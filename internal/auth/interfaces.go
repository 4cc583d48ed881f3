package auth

// IdentityResolver defines the interface for turning an inbound bearer
// credential into a verified subject identity.
type IdentityResolver interface {
	Resolve(authorizationHeader string) (*Identity, error)
}

// Compile-time interface satisfaction check
var _ IdentityResolver = (*Resolver)(nil)

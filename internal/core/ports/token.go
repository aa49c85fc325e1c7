package ports

// TokenClaims is the identity asserted by a verified session token. The
// claims alone are not trusted as up-to-date identity — the auth middleware
// always reloads the live user record.
type TokenClaims struct {
	UserID string
	Email  string
}

// TokenIssuer signs a stateless, time-bounded session token.
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
}

// TokenVerifier validates a session token and extracts its claims.
// Returns domain.ErrInvalidToken on any failure; there is no revocation
// list, so a valid token stays valid until expiry.
type TokenVerifier interface {
	Verify(token string) (*TokenClaims, error)
}

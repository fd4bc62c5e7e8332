package ports

import "time"

// TokenClaims is the decoded payload of a credential token. It carries
// exactly what authorization decisions need, so gated routes do not require
// an extra database round trip.
type TokenClaims struct {
	UserID    string
	Username  string
	Role      string
	ExpiresAt time.Time
}

// TokenIssuer mints and verifies signed credential tokens. Tokens are
// capability snapshots: there is no server-side session and no revocation
// list; expiry is the only termination mechanism.
type TokenIssuer interface {
	Issue(userID, username, role string) (token string, expiresAt time.Time, err error)
	// Verify returns domain.ErrTokenExpired for a stale token and
	// domain.ErrTokenInvalid for anything else that fails to parse or
	// carries a bad signature.
	Verify(token string) (*TokenClaims, error)
}

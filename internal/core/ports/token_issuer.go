package ports

import "time"

// TokenIssuer creates and validates signed bearer tokens carrying a subject
// claim and an absolute expiry.
type TokenIssuer interface {
	// Issue signs a token for subject valid for ttl. A non-positive ttl falls
	// back to the issuer's default lifetime.
	Issue(subject string, ttl time.Duration) (string, error)
	// Verify checks signature and expiry and returns the subject claim.
	// Failures are domain.ErrTokenMalformed, domain.ErrTokenExpired or
	// domain.ErrTokenSignature.
	Verify(token string) (string, error)
}

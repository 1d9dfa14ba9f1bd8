// Package auth implements the two signed-token services: short-lived
// session tokens and non-expiring transfer vouchers. Both are HS256
// JWTs, signed with separate keys derived from one configured secret.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
)

// Keys carries the per-purpose signing keys. It is built once at
// startup and passed explicitly into both token services; there is
// no package-level key.
type Keys struct {
	session []byte
	voucher []byte
}

// NewKeys derives the session and voucher keys from the configured
// secret with HMAC-SHA256 domain separation, so a session token can
// never verify as a voucher or vice versa.
func NewKeys(secret string) Keys {
	return Keys{
		session: deriveKey(secret, "session-token"),
		voucher: deriveKey(secret, "transfer-voucher"),
	}
}

func deriveKey(secret, purpose string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(purpose))
	return mac.Sum(nil)
}

package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// NonceHeader carries the per-user anti-forgery value on mutating actions.
const NonceHeader = "X-Inventory-Nonce"

// CalculerNonce derives the expected anti-forgery value for a user. The host
// site computes the same HMAC when rendering the dashboard; the dispatcher
// only compares.
func CalculerNonce(secret, userID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(userID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifierNonce compares a presented nonce in constant time.
func VerifierNonce(secret, userID, presente string) bool {
	if presente == "" {
		return false
	}
	attendu := CalculerNonce(secret, userID)
	return hmac.Equal([]byte(attendu), []byte(presente))
}

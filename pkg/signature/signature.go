// Package signature computes and verifies Postmark inbound webhook
// signatures: a hex-encoded HMAC-SHA256 digest of the raw request body,
// carried in the X-Postmark-Signature header.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Header is the HTTP header carrying the webhook signature.
const Header = "X-Postmark-Signature"

// Sign returns the hex HMAC-SHA256 digest of body under secret.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether sig is a valid signature for body under secret.
// Comparison is constant-time. An empty secret or signature never verifies.
func Verify(secret string, body []byte, sig string) bool {
	if secret == "" || sig == "" {
		return false
	}
	expected, err := hex.DecodeString(Sign(secret, body))
	if err != nil {
		return false
	}
	got, err := hex.DecodeString(sig)
	if err != nil {
		return false
	}
	return hmac.Equal(expected, got)
}

// Package verify implements webhook authentication: the Meta
// subscription handshake, shared-secret header checks, and the
// optional X-Hub-Signature-256 body signature.
package verify

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// Subscription validates a Meta webhook verification handshake.
// It succeeds only when mode is "subscribe" and the token matches;
// on success the challenge is returned for echoing back to the caller.
func Subscription(mode, token, challenge, expectedToken string) (string, bool) {
	if mode != "subscribe" || token != expectedToken {
		return "", false
	}
	return challenge, true
}

// SecretHeader checks a shared-secret header value. An empty expected
// secret disables the check entirely, so integrations without a secret
// configured keep working.
func SecretHeader(got, expected string) bool {
	if expected == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(expected)) == 1
}

// MetaSignature verifies an X-Hub-Signature-256 header against the raw
// request body. An empty appSecret disables the check. The header
// format is "sha256=<hex>".
func MetaSignature(appSecret string, body []byte, signature string) bool {
	if appSecret == "" {
		return true
	}

	const prefix = "sha256="
	if len(signature) <= len(prefix) {
		return false
	}
	sigHex := signature[len(prefix):]

	mac := hmac.New(sha256.New, []byte(appSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(sigHex))
}

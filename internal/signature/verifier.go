package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// Verifier decides whether a caller-supplied authenticity tag matches the
// tag the holder of the shared secret would have produced for an event.
//
// Comparison runs in constant time (crypto/subtle) so response latency does
// not reveal where two tags first differ.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a verifier for the given shared secret. An empty
// secret disables verification: every Verify call returns false.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Enabled reports whether a secret is configured.
func (v *Verifier) Enabled() bool {
	return len(v.secret) > 0
}

// Verify reports whether providedTag is the hex-encoded HMAC-SHA256 of
// canonical under the configured secret.
//
// Absence of proof is not an error: a disabled verifier, an empty tag, a
// tag that is not valid hex, or a tag of the wrong length all yield false.
// Only equal-length byte buffers reach the comparison step.
func (v *Verifier) Verify(canonical []byte, providedTag string) bool {
	if len(v.secret) == 0 || providedTag == "" {
		return false
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write(canonical)
	expected := mac.Sum(nil)

	provided, err := hex.DecodeString(providedTag)
	if err != nil || len(provided) != len(expected) {
		return false
	}

	return subtle.ConstantTimeCompare(expected, provided) == 1
}

// computeTag returns the lowercase-hex tag a sender holding secret would
// attach for canonical. Kept for tests.
func computeTag(secret string, canonical []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(canonical)
	return hex.EncodeToString(mac.Sum(nil))
}

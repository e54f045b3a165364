// Package service provides stateless token signing and verification.
package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// tokenPrefix is the fixed payload prefix signed into every session token.
// A token is the signature over "authenticated:{issuedAtMillis}" and carries
// no other claims; possession of a valid signature is the whole session.
const tokenPrefix = "authenticated:"

// TokenCodec produces and verifies signed, time-boxed tokens without any
// server-side session state. Tokens are self-verifying: the wire form is
// "{issuedAtMillis}:{hexHMACSHA256}". The same HMAC primitive also signs the
// OAuth CSRF state cookie.
type TokenCodec interface {
	// Issue creates a new session token stamped with the given time.
	Issue(now time.Time) string

	// Verify reports whether token is well-formed, signed with the current
	// secret, and no older than the configured max age. It fails closed:
	// any malformation yields false, never an error.
	Verify(token string, now time.Time) bool

	// Sign returns the hex-encoded HMAC-SHA256 of value under the secret.
	Sign(value string) string

	// VerifySignature reports whether signature is the HMAC of value,
	// using a length check followed by a constant-time comparison.
	VerifySignature(value, signature string) bool
}

// hmacTokenCodec implements TokenCodec using HMAC-SHA256 over a timestamp.
type hmacTokenCodec struct {
	secret string
	maxAge time.Duration
}

// NewTokenCodec creates a TokenCodec keyed with secret. Tokens older than
// maxAge fail verification.
func NewTokenCodec(secret string, maxAge time.Duration) TokenCodec {
	return &hmacTokenCodec{secret: secret, maxAge: maxAge}
}

// Issue creates a token "{issuedAtMillis}:{signature}" where the signature
// covers "authenticated:{issuedAtMillis}".
func (c *hmacTokenCodec) Issue(now time.Time) string {
	millis := now.UnixMilli()
	signature := c.Sign(fmt.Sprintf("%s%d", tokenPrefix, millis))
	return fmt.Sprintf("%d:%s", millis, signature)
}

// Verify checks shape, age, and signature. Every failure path returns false:
// missing or malformed token, unparsable timestamp, expired age, unset
// secret, signature length mismatch, or constant-time inequality.
func (c *hmacTokenCodec) Verify(token string, now time.Time) bool {
	if token == "" || c.secret == "" {
		return false
	}

	parts := strings.Split(token, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return false
	}

	issuedAtMillis, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return false
	}

	if now.UnixMilli()-issuedAtMillis >= c.maxAge.Milliseconds() {
		return false
	}

	expected := c.Sign(fmt.Sprintf("%s%d", tokenPrefix, issuedAtMillis))
	return constantTimeEqual(parts[1], expected)
}

// Sign computes the hex-encoded HMAC-SHA256 of value under the codec secret.
func (c *hmacTokenCodec) Sign(value string) string {
	mac := hmac.New(sha256.New, []byte(c.secret))
	mac.Write([]byte(value))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature recomputes the HMAC of value and compares it to signature.
// The length check runs first so unequal-length inputs never reach the
// byte comparison, and the comparison itself is constant time.
func (c *hmacTokenCodec) VerifySignature(value, signature string) bool {
	if c.secret == "" || signature == "" {
		return false
	}
	expected := c.Sign(value)
	return constantTimeEqual(signature, expected)
}

// constantTimeEqual compares two strings without short-circuiting on the
// first mismatched byte. Unequal lengths are an automatic mismatch.
func constantTimeEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return hmac.Equal([]byte(a), []byte(b))
}

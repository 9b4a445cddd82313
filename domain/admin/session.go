package admin

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// SessionCookieName is the cookie carrying the admin session token.
const SessionCookieName = "admin_session"

// DefaultSessionTTL is how long a login stays valid.
const DefaultSessionTTL = 7 * 24 * time.Hour

// SessionCodec issues and validates stateless session tokens of the form
// hex(HMAC-SHA256(expiry, secret)) + ":" + expiry, where expiry is epoch
// milliseconds. No server-side session state; rotating the secret invalidates
// every outstanding session.
type SessionCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewSessionCodec(secret string, ttl time.Duration) *SessionCodec {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionCodec{secret: []byte(secret), ttl: ttl}
}

// Issue returns a fresh token and its expiry.
func (c *SessionCodec) Issue(now time.Time) (string, time.Time) {
	expires := now.Add(c.ttl)
	payload := strconv.FormatInt(expires.UnixMilli(), 10)
	return c.sign(payload) + ":" + payload, expires
}

// Validate reports whether token is authentic and unexpired at now. Tampering
// with the expiry breaks the signature; hmac.Equal keeps the comparison
// constant time.
func (c *SessionCodec) Validate(token string, now time.Time) bool {
	if len(c.secret) == 0 {
		return false
	}

	signature, payload, found := strings.Cut(token, ":")
	if !found {
		return false
	}

	expiryMillis, err := strconv.ParseInt(payload, 10, 64)
	if err != nil {
		return false
	}
	if now.UnixMilli() >= expiryMillis {
		return false
	}

	expected := c.sign(payload)
	return hmac.Equal([]byte(signature), []byte(expected))
}

// TTL returns the configured session lifetime.
func (c *SessionCodec) TTL() time.Duration {
	return c.ttl
}

func (c *SessionCodec) sign(payload string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

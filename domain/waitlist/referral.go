package waitlist

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/repowise/waitlist-api/internal/models"
)

// CanonicalEmail lowercases and trims an email address. All uniqueness checks
// and referral back-references use the canonical form.
func CanonicalEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// DeriveCode returns the 8-character referral code for an email: the first
// four bytes of the SHA-256 of the canonical form, hex encoded. Deterministic
// across restarts; a 2^32 space is collision-tolerant enough for a waitlist.
func DeriveCode(email string) string {
	sum := sha256.Sum256([]byte(CanonicalEmail(email)))
	return hex.EncodeToString(sum[:4])
}

// ResolveReferrer finds the canonical email of the first entry whose referral
// code matches the inbound code. Legacy entries without a stored code are
// matched against their derived code. Returns false for a missing or unknown
// code. Callers resolve against the pre-insert collection, so an entry can
// never resolve to itself.
func ResolveReferrer(entries []models.WaitlistEntry, code string) (string, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return "", false
	}

	for _, entry := range entries {
		entryCode := entry.ReferralCode
		if entryCode == "" {
			entryCode = DeriveCode(entry.Email)
		}
		if entryCode == code {
			return entry.Email, true
		}
	}

	return "", false
}

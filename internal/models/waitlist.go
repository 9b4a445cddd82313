package models

// WaitlistEntry is one signup record, uniquely keyed by its canonical
// (lowercased) email. The collection is stored as a single JSON array document.
type WaitlistEntry struct {
	Email string `json:"email"`
	// Timestamp is the creation instant in RFC 3339 form, immutable once set.
	Timestamp string `json:"timestamp"`
	// Referrer is a free-text origin tag (e.g. a UTM source), immutable.
	Referrer *string `json:"referrer"`
	// ReferralCode is derived deterministically from the canonical email.
	// Absent on legacy rows until backfilled on their next signup attempt.
	ReferralCode string `json:"referralCode,omitempty"`
	// ReferredBy is the canonical email of the entry whose referral code was
	// presented at signup. Set once at creation, never overwritten.
	ReferredBy *string `json:"referredBy,omitempty"`
	// EmailSent only ever transitions false -> true.
	EmailSent bool `json:"emailSent"`
}

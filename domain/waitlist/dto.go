package waitlist

import "github.com/repowise/waitlist-api/internal/models"

// SignupRequest is the public signup payload. Email validation is deliberately
// loose (any string with an @); the real gate is the double-opt-in implied by
// the welcome email, not syntax checking.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,max=255"`
	Referrer string `json:"referrer" binding:"omitempty,max=255"`
	Ref      string `json:"ref" binding:"omitempty,max=64"`
}

type SignupResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	ReferralCode string `json:"referralCode"`
	Position     int    `json:"position"`
	Total        int    `json:"total"`
}

type StatsResponse struct {
	Total      int     `json:"total"`
	LastSignup *string `json:"lastSignup"`
}

type EntriesResponse struct {
	Total   int                    `json:"total"`
	Entries []models.WaitlistEntry `json:"entries"`
}

type DeleteResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Remaining int    `json:"remaining"`
}

type ResendEmailRequest struct {
	Email string `json:"email" binding:"required,max=255"`
}

type ResendEmailResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type RestoreRequest struct {
	Secret  string                 `json:"secret" binding:"required"`
	Entries []models.WaitlistEntry `json:"entries" binding:"required"`
}

type RestoreResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Restored int    `json:"restored"`
}

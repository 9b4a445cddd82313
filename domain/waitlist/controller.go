package waitlist

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/repowise/waitlist-api/config/router"
	apperrors "github.com/repowise/waitlist-api/pkg/errors"
	"github.com/repowise/waitlist-api/pkg/ratelimit"
)

// NewWaitlistController mounts the public surface: signup and stats. Signup
// carries its own per-IP limiter, tighter than the global default, because it
// is the only unauthenticated write endpoint.
func NewWaitlistController(service Service, adminAPIKey string) *router.RESTController {
	return router.NewRESTController("WaitlistController", "/waitlist", func(routerService *router.RouterService, controller *router.RESTController) {
		signupLimiter := ratelimit.NewRateLimiter(&ratelimit.RateLimitConfig{
			Requests: 30,
			Window:   time.Minute,
		})

		routerService.AddPostHandler(controller, signupLimiter, "", signupHandler(service))
		routerService.AddGetHandler(controller, nil, "", statsHandler(service, adminAPIKey))
	})
}

func signupHandler(service Service) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var request SignupRequest
		if err := ctx.ShouldBindJSON(&request); err != nil {
			logger.Warn("Signup payload rejected", "error", err)
			return router.BadRequestResult("Valid email required")
		}

		result, err := service.Signup(ctx.Request.Context(), request.Email, request.Referrer, request.Ref)
		if err != nil {
			if apperrors.IsType(err, apperrors.ErrorTypeInvalidRequest) {
				return router.FromError(err)
			}
			logger.Error("Signup failed", "error", err)
			return router.ErrorResult(http.StatusInternalServerError, "Failed to join waitlist")
		}

		response := SignupResponse{
			Success:      true,
			ReferralCode: result.ReferralCode,
			Position:     result.Position,
			Total:        result.Total,
		}

		if result.Status == StatusAlreadyRegistered {
			response.Message = "Already on the waitlist!"
			return router.OKResult(response)
		}

		response.Message = "Welcome to the waitlist!"
		return router.CreatedResult(response)
	}
}

// statsHandler serves the public count. A matching ?key= upgrades the response
// to the full entry list; the comparison is constant-time and an empty
// configured key never matches.
func statsHandler(service Service, adminAPIKey string) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		if key := ctx.Query("key"); key != "" && apiKeyMatches(adminAPIKey, key) {
			entries, err := service.ListEntries(ctx.Request.Context())
			if err != nil {
				logger.Error("Failed to list waitlist entries", "error", err)
				return router.ErrorResult(http.StatusInternalServerError, "Failed to get stats")
			}
			return router.OKResult(EntriesResponse{Total: len(entries), Entries: entries})
		}

		stats, err := service.Stats(ctx.Request.Context())
		if err != nil {
			logger.Error("Failed to get waitlist stats", "error", err)
			return router.ErrorResult(http.StatusInternalServerError, "Failed to get stats")
		}

		return router.OKResult(StatsResponse{Total: stats.Total, LastSignup: stats.LastSignup})
	}
}

func apiKeyMatches(configured, presented string) bool {
	if configured == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(presented)) == 1
}

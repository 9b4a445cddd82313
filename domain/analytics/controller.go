package analytics

import (
	"time"

	"github.com/repowise/waitlist-api/config/router"
	"github.com/repowise/waitlist-api/internal/models"
	apperrors "github.com/repowise/waitlist-api/pkg/errors"
	"github.com/repowise/waitlist-api/pkg/ratelimit"
)

type TrackRequest struct {
	Event string            `json:"event" binding:"required,max=100"`
	Data  map[string]string `json:"data" binding:"omitempty,max=20"`
}

type TrackResponse struct {
	Success bool `json:"success"`
}

type EventsResponse struct {
	Total  int                     `json:"total"`
	Events []models.AnalyticsEvent `json:"events"`
}

// NewAnalyticsController mounts the public tracker and the session-gated
// event list.
func NewAnalyticsController(service Service, requireSession router.MiddlewareFunc) *router.RESTController {
	return router.NewRESTController("AnalyticsController", "", func(routerService *router.RouterService, controller *router.RESTController) {
		trackLimiter := ratelimit.NewRateLimiter(&ratelimit.RateLimitConfig{
			Requests: 120,
			Window:   time.Minute,
		})

		routerService.AddPostHandler(controller, trackLimiter, "track", trackHandler(service))
		routerService.AddGetHandler(controller, nil, "admin/analytics", listHandler(service), requireSession)
	})
}

// trackHandler never fails a page load over analytics: storage errors are
// logged and answered with 200 anyway. Only a malformed payload gets a 400.
func trackHandler(service Service) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		var request TrackRequest
		if err := ctx.ShouldBindJSON(&request); err != nil {
			return router.BadRequestResult("Event name required")
		}

		if err := service.Track(ctx.Request.Context(), request.Event, request.Data); err != nil {
			if apperrors.IsType(err, apperrors.ErrorTypeInvalidRequest) {
				return router.FromError(err)
			}
			router.GetLogger(ctx).Error("Failed to record analytics event", "event", request.Event, "error", err)
		}

		return router.OKResult(TrackResponse{Success: true})
	}
}

func listHandler(service Service) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		events, err := service.List(ctx.Request.Context())
		if err != nil {
			router.GetLogger(ctx).Error("Failed to list analytics events", "error", err)
			return router.FromError(err)
		}
		return router.OKResult(EventsResponse{Total: len(events), Events: events})
	}
}

package monitoring

import (
	"context"
	"time"

	"github.com/repowise/waitlist-api/config/router"
	"github.com/repowise/waitlist-api/internal/docstore"
	"github.com/repowise/waitlist-api/internal/log"
	"github.com/repowise/waitlist-api/pkg/ratelimit"
)

type Cache interface {
	Ping(ctx context.Context) error
}

type HealthStatus struct {
	Storage int `json:"storage"` // 1 = healthy, 0 = unhealthy
	Cache   int `json:"cache"`   // 1 = healthy, 0 = unhealthy/not configured
	Uptime  int `json:"uptime"`  // uptime in seconds
}

type MonitoringController struct {
	store     docstore.Store
	logger    *log.Logger
	cache     Cache
	startTime time.Time
}

func NewMonitoringController(store docstore.Store, logger *log.Logger, cache Cache) *router.RESTController {
	ctrl := &MonitoringController{
		store:     store,
		logger:    logger,
		cache:     cache,
		startTime: time.Now(),
	}

	return router.NewRESTController(
		"MonitoringController",
		"/",
		func(routerService *router.RouterService, controller *router.RESTController) {
			monitoringRateLimiter := ratelimit.NewRateLimiter(&ratelimit.RateLimitConfig{
				Requests: 10,
				Window:   time.Minute,
			})

			routerService.AddGetHandler(controller, monitoringRateLimiter, "health", func(c *router.RequestContext) *router.ServiceResult {
				return ctrl.healthCheck(routerService, c)
			})
		},
	)
}

func (ctrl *MonitoringController) healthCheck(
	routerService *router.RouterService,
	c *router.RequestContext,
) *router.ServiceResult {
	logger := routerService.GetLogger(c)
	status := ctrl.performHealthChecks(c.Request.Context(), logger)
	return router.OKResult(status)
}

func (ctrl *MonitoringController) performHealthChecks(ctx context.Context, logger *log.Logger) HealthStatus {
	status := HealthStatus{
		Uptime: int(time.Since(ctrl.startTime).Seconds()),
	}

	if ctrl.checkStorage(ctx) {
		status.Storage = 1
	} else {
		logger.Error("Storage health check failed")
	}

	if ctrl.cache != nil {
		if ctrl.cache.Ping(ctx) == nil {
			status.Cache = 1
		} else {
			logger.Error("Cache health check failed")
		}
	}

	return status
}

// checkStorage probes the document store with a read. An absent document is a
// healthy answer; only a transport failure counts against the store.
func (ctrl *MonitoringController) checkStorage(ctx context.Context) bool {
	_, _, err := ctrl.store.Load(ctx, "waitlist.json")
	return err == nil
}

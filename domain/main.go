package domain

import (
	"github.com/repowise/waitlist-api/config"
	"github.com/repowise/waitlist-api/domain/admin"
	"github.com/repowise/waitlist-api/domain/analytics"
	"github.com/repowise/waitlist-api/domain/monitoring"
	"github.com/repowise/waitlist-api/domain/waitlist"
)

func SetupCoreDomain(appConfig *config.ApplicationConfig) {
	sessionCodec := admin.NewSessionCodec(appConfig.Admin.SessionSecret, appConfig.Admin.SessionTTL)
	requireSession := admin.RequireSession(sessionCodec)

	waitlistFactory := waitlist.NewServiceFactory(
		appConfig.Store,
		appConfig.Notifier,
		appConfig.Logger,
		appConfig.Admin.APIKey,
		appConfig.Admin.RestoreSecret,
	)

	analyticsService := analytics.NewService(analytics.NewRepository(appConfig.Store))

	appConfig.RouterService.MountController(monitoring.NewMonitoringController(appConfig.Store, appConfig.Logger, appConfig.Cache))
	appConfig.RouterService.MountController(waitlistFactory.CreatePublicController())
	appConfig.RouterService.MountController(waitlistFactory.CreateAdminController(requireSession))
	appConfig.RouterService.MountController(admin.NewAdminAuthController(admin.Credentials{
		Email:        appConfig.Admin.Email,
		PasswordHash: appConfig.Admin.PasswordHash,
	}, sessionCodec))
	appConfig.RouterService.MountController(analytics.NewAnalyticsController(analyticsService, requireSession))
}

package waitlist

import (
	"github.com/repowise/waitlist-api/config/router"
	"github.com/repowise/waitlist-api/internal/docstore"
	"github.com/repowise/waitlist-api/internal/log"
)

type ServiceFactory interface {
	CreateService() Service
	CreatePublicController() *router.RESTController
	CreateAdminController(requireSession router.MiddlewareFunc) *router.RESTController
}

type DefaultServiceFactory struct {
	store         docstore.Store
	notifier      Notifier
	logger        *log.Logger
	adminAPIKey   string
	restoreSecret string
}

func NewServiceFactory(store docstore.Store, notifier Notifier, logger *log.Logger, adminAPIKey, restoreSecret string) ServiceFactory {
	return &DefaultServiceFactory{
		store:         store,
		notifier:      notifier,
		logger:        logger,
		adminAPIKey:   adminAPIKey,
		restoreSecret: restoreSecret,
	}
}

func (f *DefaultServiceFactory) CreateService() Service {
	return NewService(NewRepository(f.store), f.notifier, f.logger)
}

func (f *DefaultServiceFactory) CreatePublicController() *router.RESTController {
	return NewWaitlistController(f.CreateService(), f.adminAPIKey)
}

func (f *DefaultServiceFactory) CreateAdminController(requireSession router.MiddlewareFunc) *router.RESTController {
	return NewAdminWaitlistController(f.CreateService(), requireSession, f.restoreSecret)
}

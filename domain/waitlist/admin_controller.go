package waitlist

import (
	"crypto/subtle"
	"net/http"

	"github.com/repowise/waitlist-api/config/router"
	apperrors "github.com/repowise/waitlist-api/pkg/errors"
)

// NewAdminWaitlistController mounts the dashboard operations under /admin.
// requireSession is the cookie-auth middleware; restore sits outside it
// because it is a recovery tool driven by its own shared secret, usable even
// when the dashboard login is broken. An empty restoreSecret disables restore
// entirely.
func NewAdminWaitlistController(service Service, requireSession router.MiddlewareFunc, restoreSecret string) *router.RESTController {
	return router.NewRESTController("AdminWaitlistController", "/admin", func(routerService *router.RouterService, controller *router.RESTController) {
		routerService.AddGetHandler(controller, nil, "waitlist", listHandler(service), requireSession)
		routerService.AddDeleteHandler(controller, nil, "waitlist", deleteHandler(service), requireSession)
		routerService.AddPostHandler(controller, nil, "resend-email", resendEmailHandler(service), requireSession)
		routerService.AddPostHandler(controller, nil, "restore", restoreHandler(service, restoreSecret))
	})
}

func listHandler(service Service) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		entries, err := service.ListEntries(ctx.Request.Context())
		if err != nil {
			router.GetLogger(ctx).Error("Failed to list waitlist entries", "error", err)
			return router.FromError(err)
		}
		return router.OKResult(EntriesResponse{Total: len(entries), Entries: entries})
	}
}

func deleteHandler(service Service) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		email := ctx.Query("email")
		if email == "" {
			return router.BadRequestResult("Email query parameter required")
		}

		remaining, err := service.DeleteEntry(ctx.Request.Context(), email)
		if err != nil {
			if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
				router.GetLogger(ctx).Error("Failed to delete waitlist entry", "email", email, "error", err)
			}
			return router.FromError(err)
		}

		return router.OKResult(DeleteResponse{
			Success:   true,
			Message:   "Entry removed from waitlist",
			Remaining: remaining,
		})
	}
}

func resendEmailHandler(service Service) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		var request ResendEmailRequest
		if err := ctx.ShouldBindJSON(&request); err != nil {
			return router.BadRequestResult("Email required")
		}

		if err := service.ResendWelcomeEmail(ctx.Request.Context(), request.Email); err != nil {
			if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
				router.GetLogger(ctx).Error("Failed to resend welcome email", "email", request.Email, "error", err)
			}
			return router.FromError(err)
		}

		return router.OKResult(ResendEmailResponse{
			Success: true,
			Message: "Welcome email sent",
		})
	}
}

// restoreHandler overwrites the whole waitlist. Every attempt, accepted or
// rejected, lands in the audit log with the caller's IP.
func restoreHandler(service Service, restoreSecret string) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		if restoreSecret == "" {
			logger.Warn("Waitlist restore attempted while disabled", "remote_addr", ctx.ClientIP())
			return router.ForbiddenResult("Restore is disabled")
		}

		var request RestoreRequest
		if err := ctx.ShouldBindJSON(&request); err != nil {
			details := apperrors.FormatValidationErrors(err, &request)
			if len(details) > 0 {
				return router.ErrorResultWithDetails(http.StatusBadRequest, "Secret and entries required", details)
			}
			return router.BadRequestResult("Secret and entries required")
		}

		if subtle.ConstantTimeCompare([]byte(restoreSecret), []byte(request.Secret)) != 1 {
			logger.Warn("Waitlist restore rejected: bad secret", "remote_addr", ctx.ClientIP())
			return router.UnauthorizedResult("Invalid restore secret")
		}

		restored, err := service.Restore(ctx.Request.Context(), request.Entries)
		if err != nil {
			logger.Error("Waitlist restore failed", "error", err, "remote_addr", ctx.ClientIP())
			return router.ErrorResult(http.StatusInternalServerError, "Failed to restore waitlist")
		}

		logger.Warn("Waitlist restored", "entries", restored, "remote_addr", ctx.ClientIP())
		return router.OKResult(RestoreResponse{Success: true, Message: "Waitlist restored", Restored: restored})
	}
}

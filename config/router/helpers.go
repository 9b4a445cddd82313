package router

import (
	"net/http"

	"github.com/repowise/waitlist-api/internal/log"
	apperrors "github.com/repowise/waitlist-api/pkg/errors"
	"github.com/gin-gonic/gin"
)

func GetLogger(ctx *RequestContext) *log.Logger {
	return log.FromContext(ctx.Request.Context(), nil)
}

func OKResult(body any) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusOK,
		Body:       body,
	}
}

func CreatedResult(body any) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusCreated,
		Body:       body,
	}
}

func NoContentResult() *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusNoContent,
		Body:       nil,
	}
}

func ErrorResult(statusCode int, message string) *ServiceResult {
	return &ServiceResult{
		StatusCode: statusCode,
		Body:       gin.H{"error": message},
	}
}

func ErrorResultWithDetails(statusCode int, message string, details any) *ServiceResult {
	return &ServiceResult{
		StatusCode: statusCode,
		Body:       gin.H{"error": message, "details": details},
	}
}

func BadRequestResult(message string) *ServiceResult {
	return ErrorResult(http.StatusBadRequest, message)
}

func UnauthorizedResult(message string) *ServiceResult {
	return ErrorResult(http.StatusUnauthorized, message)
}

func ForbiddenResult(message string) *ServiceResult {
	return ErrorResult(http.StatusForbidden, message)
}

func NotFoundResult(message string) *ServiceResult {
	return ErrorResult(http.StatusNotFound, message)
}

func InternalServerErrorResult(message string) *ServiceResult {
	return ErrorResult(http.StatusInternalServerError, message)
}

func TooManyRequestsResult(body RateLimitResponse) *ServiceResult {
	body.Error = "Too many requests"
	return &ServiceResult{
		StatusCode: http.StatusTooManyRequests,
		Body:       body,
	}
}

// FromError maps a service error onto a result, using the error taxonomy for
// the status code and only ever exposing the human-readable message.
func FromError(err error) *ServiceResult {
	return ErrorResult(apperrors.HTTPStatusCode(err), apperrors.GetHumanReadableMessage(err))
}

// FromErrorWithMessage is FromError with the message overridden, for endpoints
// whose contract pins an exact error string regardless of the failure detail.
func FromErrorWithMessage(err error, message string) *ServiceResult {
	return ErrorResult(apperrors.HTTPStatusCode(err), message)
}

package admin

import (
	"crypto/subtle"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/repowise/waitlist-api/config/router"
	"github.com/repowise/waitlist-api/pkg/ratelimit"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// Credentials is the configured admin identity. PasswordHash is a bcrypt
// hash, never the plaintext password.
type Credentials struct {
	Email        string
	PasswordHash string
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,max=255"`
	Password string `json:"password" binding:"required,max=255"`
}

type LoginResponse struct {
	Success bool `json:"success"`
}

type CheckResponse struct {
	Authenticated bool `json:"authenticated"`
}

// NewAdminAuthController mounts login, logout and session check under /admin/auth.
// Login gets a tight per-IP limiter since it is a password oracle.
func NewAdminAuthController(credentials Credentials, codec *SessionCodec) *router.RESTController {
	return router.NewRESTController("AdminAuthController", "/admin/auth", func(routerService *router.RouterService, controller *router.RESTController) {
		loginLimiter := ratelimit.NewRateLimiter(&ratelimit.RateLimitConfig{
			Requests: 10,
			Window:   time.Minute,
		})

		routerService.AddPostHandler(controller, loginLimiter, "login", loginHandler(credentials, codec))
		routerService.AddPostHandler(controller, nil, "logout", logoutHandler())
		routerService.AddGetHandler(controller, nil, "check", checkHandler(codec))
	})
}

func loginHandler(credentials Credentials, codec *SessionCodec) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var request LoginRequest
		if err := ctx.ShouldBindJSON(&request); err != nil {
			return router.BadRequestResult("Email and password required")
		}

		if !credentialsMatch(credentials, request.Email, request.Password) {
			logger.Warn("Admin login rejected", "remote_addr", ctx.ClientIP())
			return router.UnauthorizedResult("Invalid credentials")
		}

		token, expires := codec.Issue(time.Now())
		setSessionCookie(ctx, token, int(time.Until(expires).Seconds()))

		logger.Info("Admin login", "remote_addr", ctx.ClientIP())
		return router.OKResult(LoginResponse{Success: true})
	}
}

func logoutHandler() router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		setSessionCookie(ctx, "", -1)
		return router.OKResult(LoginResponse{Success: true})
	}
}

// checkHandler always answers 200; the dashboard polls it to decide whether
// to show the login form.
func checkHandler(codec *SessionCodec) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		token, err := ctx.Cookie(SessionCookieName)
		authenticated := err == nil && codec.Validate(token, time.Now())
		return router.OKResult(CheckResponse{Authenticated: authenticated})
	}
}

// credentialsMatch runs both comparisons unconditionally so a wrong email and
// a wrong password take the same time.
func credentialsMatch(credentials Credentials, email, password string) bool {
	if credentials.Email == "" || credentials.PasswordHash == "" {
		return false
	}

	emailOK := subtle.ConstantTimeCompare(
		[]byte(strings.ToLower(strings.TrimSpace(email))),
		[]byte(strings.ToLower(credentials.Email)),
	) == 1
	passwordOK := bcrypt.CompareHashAndPassword([]byte(credentials.PasswordHash), []byte(password)) == nil

	return emailOK && passwordOK
}

func setSessionCookie(ctx *gin.Context, token string, maxAge int) {
	ctx.SetSameSite(http.SameSiteStrictMode)
	secure := isProductionEnv()
	ctx.SetCookie(SessionCookieName, token, maxAge, "/", "", secure, true)
}

func isProductionEnv() bool {
	env := strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV")))
	return env == "production" || env == "prod"
}

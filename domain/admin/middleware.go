package admin

import (
	"net/http"
	"time"

	"github.com/repowise/waitlist-api/config/router"
	"github.com/gin-gonic/gin"
)

// RequireSession rejects requests without a valid admin session cookie.
func RequireSession(codec *SessionCodec) router.MiddlewareFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || !codec.Validate(token, time.Now()) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

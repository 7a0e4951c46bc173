package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/educa-portal/internal/session"
)

// Context keys set by the session middlewares.
const (
	ContextSessionKey = "sessionID"
	ContextProfileKey = "sessionProfile"
)

// Session reads the session cookie and exposes its id to later handlers.
// Requests without the cookie carry an empty id.
func Session(cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sid, err := c.Cookie(cookieName); err == nil && sid != "" {
			c.Set(ContextSessionKey, sid)
		}
		c.Next()
	}
}

// SessionID returns the session id of the request.
func SessionID(c *gin.Context) string {
	return c.GetString(ContextSessionKey)
}

// SessionProfile returns the profile attached by RequireRole.
func SessionProfile(c *gin.Context) *session.Profile {
	value, exists := c.Get(ContextProfileKey)
	if !exists {
		return nil
	}
	profile, ok := value.(*session.Profile)
	if !ok {
		return nil
	}
	return profile
}

// SetSessionCookie hands the browser its session id.
func SetSessionCookie(c *gin.Context, name, sid string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, sid, int(ttl.Seconds()), "/", "", secure, true)
	c.Set(ContextSessionKey, sid)
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c *gin.Context, name string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, "", -1, "/", "", secure, true)
}

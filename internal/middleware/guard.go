package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/educa-portal/internal/guard"
	"github.com/noah-isme/educa-portal/internal/models"
	appErrors "github.com/noah-isme/educa-portal/pkg/errors"
	"github.com/noah-isme/educa-portal/pkg/response"
)

// SessionChecker is satisfied by *guard.Guard.
type SessionChecker interface {
	Check(ctx context.Context, sid string, required models.Role) guard.Decision
}

// RequireRole admits only sessions with a live credential and the given
// user type. Browsers are redirected to the login page; API callers get a
// 401 or 403 envelope.
func RequireRole(checker SessionChecker, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := checker.Check(c.Request.Context(), SessionID(c), role)
		if decision.Allowed {
			c.Set(ContextProfileKey, decision.Profile)
			c.Next()
			return
		}

		if !wantsJSON(c) {
			c.Redirect(http.StatusFound, decision.Redirect)
			c.Abort()
			return
		}
		err := appErrors.Clone(appErrors.ErrUnauthorized, "Su sesión ha expirado. Inicie sesión nuevamente.")
		switch decision.Reason {
		case guard.ReasonRoleMismatch:
			err = appErrors.Clone(appErrors.ErrForbidden, "No tiene permisos para acceder a esta sección.")
		case guard.ReasonUnreachable:
			err = appErrors.Clone(appErrors.ErrUnreachable, "")
		}
		c.Header("Location", decision.Redirect)
		response.Error(c, err)
		c.Abort()
	}
}

func wantsJSON(c *gin.Context) bool {
	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		return true
	}
	return strings.EqualFold(c.GetHeader("X-Requested-With"), "XMLHttpRequest")
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/educa-portal/internal/middleware"
	"github.com/noah-isme/educa-portal/internal/models"
	"github.com/noah-isme/educa-portal/internal/service"
	appErrors "github.com/noah-isme/educa-portal/pkg/errors"
	"github.com/noah-isme/educa-portal/pkg/response"
)

func sessionID(c *gin.Context) string {
	return middleware.SessionID(c)
}

// pathID reads a numeric path parameter. On failure the error response has
// already been written.
func pathID(c *gin.Context, name string) (models.ID, bool) {
	id, err := models.ParseID(c.Param(name))
	if err != nil || id <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid "+name))
		return 0, false
	}
	return id, true
}

// queryID reads an optional numeric query parameter; absent means zero.
func queryID(c *gin.Context, name string) (models.ID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	id, err := models.ParseID(raw)
	if err != nil || id < 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid "+name))
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, out interface{}, what string) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid "+what+" payload"))
		return false
	}
	return true
}

func respond(c *gin.Context, status int, out *service.Outcome, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, status, out.Message, out.Data, out.Notice)
}

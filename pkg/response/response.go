package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/educa-portal/internal/models"
	appErrors "github.com/noah-isme/educa-portal/pkg/errors"
)

// Envelope mirrors the EDUCA API contract so the browser reads portal and
// upstream responses the same way.
type Envelope struct {
	Status int            `json:"status"`
	Body   Body           `json:"body"`
	Notice *models.Notice `json:"notice,omitempty"`
}

// Body holds the message, payload and any per-field validation messages.
type Body struct {
	Message string            `json:"message"`
	Data    interface{}       `json:"data,omitempty"`
	Code    string            `json:"code,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// JSON sends a success response with an optional notice.
func JSON(c *gin.Context, status int, message string, data interface{}, notice ...*models.Notice) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	envelope := Envelope{Status: status, Body: Body{Message: message, Data: data}}
	if len(notice) > 0 {
		envelope.Notice = notice[0]
	}
	c.JSON(status, envelope)
}

// OK responds with HTTP 200.
func OK(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, "", data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, message string, data interface{}, notice *models.Notice) {
	JSON(c, http.StatusCreated, message, data, notice)
}

// Error sends an error response converting the error to the common structure.
// Validation failures are inline field errors and carry no notice.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	envelope := Envelope{
		Status: appErr.Status,
		Body:   Body{Message: appErrors.UserMessage(appErr), Code: appErr.Code, Fields: appErr.Fields},
	}
	if appErr.Code != appErrors.ErrValidation.Code && appErr.Code != appErrors.ErrMissingCredential.Code {
		envelope.Notice = &models.Notice{Level: models.NoticeError, Message: envelope.Body.Message}
	}
	c.JSON(appErr.Status, envelope)
}

// Attachment streams a file download.
func Attachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Cache-Control", "no-store")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

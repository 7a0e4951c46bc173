package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/educa-portal/internal/dto"
	"github.com/noah-isme/educa-portal/internal/middleware"
	"github.com/noah-isme/educa-portal/internal/models"
	"github.com/noah-isme/educa-portal/internal/service"
	"github.com/noah-isme/educa-portal/internal/session"
	"github.com/noah-isme/educa-portal/pkg/response"
)

type authService interface {
	Login(ctx context.Context, previousSID string, form dto.LoginForm) (*dto.LoginResponse, string, error)
	Logout(ctx context.Context, sid string)
	Profile(ctx context.Context, sid string) (*session.Profile, error)
	Register(ctx context.Context, form dto.StudentRegistration) (*service.Outcome, error)
	StartRecovery(ctx context.Context, form dto.RecoverStartForm) (*dto.RecoverState, error)
	SecurityQuestion(ctx context.Context, userID string) (*models.SecurityQuestion, error)
	FinishRecovery(ctx context.Context, form dto.RecoverFinishForm) (*service.Outcome, error)
	ChangePassword(ctx context.Context, sid string, form dto.ChangePasswordForm) (*service.Outcome, error)
}

// CookieConfig describes the session cookie handed to browsers.
type CookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service authService
	cookie  CookieConfig
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc authService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{service: svc, cookie: cookie}
}

// Login godoc
// @Summary Authenticate user
// @Description Exchange email and password for a portal session cookie
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body dto.LoginForm true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /portal/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	if !bindJSON(c, &form, "login") {
		return
	}
	res, sid, err := h.service.Login(c.Request.Context(), sessionID(c), form)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetSessionCookie(c, h.cookie.Name, sid, h.cookie.TTL, h.cookie.Secure)
	response.JSON(c, http.StatusOK, "", res)
}

// Logout godoc
// @Summary Logout current session
// @Description Invalidate the credential upstream when possible and always drop the session
// @Tags Authentication
// @Produce json
// @Success 204
// @Router /portal/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.service.Logout(c.Request.Context(), sessionID(c))
	middleware.ClearSessionCookie(c, h.cookie.Name, h.cookie.Secure)
	response.NoContent(c)
}

// Me godoc
// @Summary Current session profile
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /portal/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	profile, err := h.service.Profile(c.Request.Context(), sessionID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, profile)
}

// Register godoc
// @Summary Student sign-up
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body dto.StudentRegistration true "Registration payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /portal/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var form dto.StudentRegistration
	if !bindJSON(c, &form, "registration") {
		return
	}
	out, err := h.service.Register(c.Request.Context(), form)
	respond(c, http.StatusCreated, out, err)
}

// StartRecovery godoc
// @Summary Begin password recovery
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body dto.RecoverStartForm true "Account email"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /portal/auth/recover [post]
func (h *AuthHandler) StartRecovery(c *gin.Context) {
	var form dto.RecoverStartForm
	if !bindJSON(c, &form, "recovery") {
		return
	}
	state, err := h.service.StartRecovery(c.Request.Context(), form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, state)
}

// SecurityQuestion godoc
// @Summary Security question of an account in recovery
// @Tags Authentication
// @Produce json
// @Param userId path string true "Recovery id"
// @Success 200 {object} response.Envelope
// @Router /portal/auth/recover/{userId} [get]
func (h *AuthHandler) SecurityQuestion(c *gin.Context) {
	question, err := h.service.SecurityQuestion(c.Request.Context(), c.Param("userId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, question)
}

// FinishRecovery godoc
// @Summary Answer the security question and set a new password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body dto.RecoverFinishForm true "Recovery answer"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /portal/auth/recover [put]
func (h *AuthHandler) FinishRecovery(c *gin.Context) {
	var form dto.RecoverFinishForm
	if !bindJSON(c, &form, "recovery") {
		return
	}
	out, err := h.service.FinishRecovery(c.Request.Context(), form)
	respond(c, http.StatusOK, out, err)
}

// ChangePassword godoc
// @Summary Change password
// @Description Change the password of the session owner
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body dto.ChangePasswordForm true "Password payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /portal/auth/password [patch]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var form dto.ChangePasswordForm
	if !bindJSON(c, &form, "password") {
		return
	}
	out, err := h.service.ChangePassword(c.Request.Context(), sessionID(c), form)
	respond(c, http.StatusOK, out, err)
}

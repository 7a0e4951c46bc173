package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/educa-portal/internal/dto"
	"github.com/noah-isme/educa-portal/internal/models"
	"github.com/noah-isme/educa-portal/internal/service"
	"github.com/noah-isme/educa-portal/pkg/response"
)

type profileService interface {
	Get(ctx context.Context, sid string) (*models.CurrentUser, error)
	Update(ctx context.Context, sid string, form dto.ProfileForm) (*service.Outcome, error)
}

type statisticsService interface {
	Statistics(ctx context.Context, sid string) (*models.Statistics, error)
}

// UserHandler serves the profile of the logged in user and the admin
// statistics.
type UserHandler struct {
	profile profileService
	stats   statisticsService
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(profile profileService, stats statisticsService) *UserHandler {
	return &UserHandler{profile: profile, stats: stats}
}

// Profile godoc
// @Summary Current user data
// @Tags Profile
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /portal/student/profile [get]
func (h *UserHandler) Profile(c *gin.Context) {
	user, err := h.profile.Get(c.Request.Context(), sessionID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, user)
}

// UpdateProfile godoc
// @Summary Update current user data
// @Tags Profile
// @Accept json
// @Produce json
// @Param payload body dto.ProfileForm true "Profile payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /portal/student/profile [patch]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var form dto.ProfileForm
	if !bindJSON(c, &form, "profile") {
		return
	}
	out, err := h.profile.Update(c.Request.Context(), sessionID(c), form)
	respond(c, http.StatusOK, out, err)
}

// Statistics godoc
// @Summary Dashboard figures
// @Tags Statistics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /portal/admin/statistics [get]
func (h *UserHandler) Statistics(c *gin.Context) {
	stats, err := h.stats.Statistics(c.Request.Context(), sessionID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}

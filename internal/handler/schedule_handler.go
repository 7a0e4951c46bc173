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

type scheduleService interface {
	Viewer(ctx context.Context, sid string, courseID, sectionID models.ID) (*service.CascadeView, error)
	Update(ctx context.Context, sid string, courseID, sectionID models.ID, form dto.ScheduleForm) (*service.Outcome, error)
}

// ScheduleHandler serves the schedule viewer and editor.
type ScheduleHandler struct {
	service scheduleService
}

// NewScheduleHandler constructs a ScheduleHandler.
func NewScheduleHandler(svc scheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: svc}
}

// Viewer godoc
// @Summary Schedules by course and section
// @Description horarioEstado is "none" when the selected section has no schedule
// @Tags Schedules
// @Produce json
// @Param cursoId query int false "Course ID"
// @Param seccionId query int false "Section ID"
// @Success 200 {object} response.Envelope
// @Router /portal/admin/schedules [get]
func (h *ScheduleHandler) Viewer(c *gin.Context) {
	courseID, ok := queryID(c, "cursoId")
	if !ok {
		return
	}
	sectionID, ok := queryID(c, "seccionId")
	if !ok {
		return
	}
	view, err := h.service.Viewer(c.Request.Context(), sessionID(c), courseID, sectionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, view)
}

// Update godoc
// @Summary Replace the schedule of a section
// @Tags Schedules
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param sectionId path int true "Section ID"
// @Param payload body dto.ScheduleForm true "Schedule payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /portal/admin/courses/{id}/sections/{sectionId}/schedule [put]
func (h *ScheduleHandler) Update(c *gin.Context) {
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	sectionID, ok := pathID(c, "sectionId")
	if !ok {
		return
	}
	var form dto.ScheduleForm
	if !bindJSON(c, &form, "schedule") {
		return
	}
	out, err := h.service.Update(c.Request.Context(), sessionID(c), courseID, sectionID, form)
	respond(c, http.StatusOK, out, err)
}

package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/educa-portal/internal/cascade"
	"github.com/noah-isme/educa-portal/internal/models"
	"github.com/noah-isme/educa-portal/internal/service"
	"github.com/noah-isme/educa-portal/pkg/response"
)

type teacherService interface {
	Dashboard(ctx context.Context, sid string, sectionID models.ID) (*cascade.Snapshot, error)
	PassStudent(ctx context.Context, sid string, sectionID, studentID models.ID) (*service.Outcome, error)
	FailStudent(ctx context.Context, sid string, sectionID, studentID models.ID) (*service.Outcome, error)
}

// TeacherHandler serves the teacher dashboard.
type TeacherHandler struct {
	service teacherService
}

// NewTeacherHandler constructs a TeacherHandler.
func NewTeacherHandler(svc teacherService) *TeacherHandler {
	return &TeacherHandler{service: svc}
}

// Dashboard godoc
// @Summary Teacher sections
// @Description Sections of the teacher; with seccionId also the roster and the capacity chart
// @Tags Teacher
// @Produce json
// @Param seccionId query int false "Section ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /portal/teacher/dashboard [get]
func (h *TeacherHandler) Dashboard(c *gin.Context) {
	sectionID, ok := queryID(c, "seccionId")
	if !ok {
		return
	}
	snap, err := h.service.Dashboard(c.Request.Context(), sessionID(c), sectionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, snap)
}

// Pass godoc
// @Summary Mark student as approved
// @Tags Teacher
// @Produce json
// @Param id path int true "Section ID"
// @Param studentId path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /portal/teacher/sections/{id}/students/{studentId}/pass [post]
func (h *TeacherHandler) Pass(c *gin.Context) {
	h.grade(c, h.service.PassStudent)
}

// Fail godoc
// @Summary Mark student as failed
// @Tags Teacher
// @Produce json
// @Param id path int true "Section ID"
// @Param studentId path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /portal/teacher/sections/{id}/students/{studentId}/fail [post]
func (h *TeacherHandler) Fail(c *gin.Context) {
	h.grade(c, h.service.FailStudent)
}

func (h *TeacherHandler) grade(c *gin.Context, fn func(context.Context, string, models.ID, models.ID) (*service.Outcome, error)) {
	sectionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	studentID, ok := pathID(c, "studentId")
	if !ok {
		return
	}
	out, err := fn(c.Request.Context(), sessionID(c), sectionID, studentID)
	respond(c, http.StatusOK, out, err)
}

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

type enrollmentService interface {
	List(ctx context.Context, sid string) ([]models.Enrollment, error)
	Approve(ctx context.Context, sid string, id models.ID) (*service.Outcome, error)
	Reject(ctx context.Context, sid string, id models.ID) (*service.Outcome, error)
	Delete(ctx context.Context, sid string, id models.ID) (*service.Outcome, error)
	EnrollView(ctx context.Context, sid string, courseID models.ID) (*dto.StudentEnrollView, error)
	Enroll(ctx context.Context, sid string, courseID models.ID, form dto.EnrollmentForm) (*service.Outcome, error)
	Mine(ctx context.Context, sid string) ([]models.Enrollment, error)
}

// EnrollmentHandler exposes enrollment management and the student
// enrollment flow.
type EnrollmentHandler struct {
	service enrollmentService
}

// NewEnrollmentHandler constructs an EnrollmentHandler.
func NewEnrollmentHandler(svc enrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{service: svc}
}

// List godoc
// @Summary List enrollments
// @Tags Enrollments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /portal/admin/enrollments [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), sessionID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

// Approve godoc
// @Summary Approve enrollment
// @Tags Enrollments
// @Produce json
// @Param id path int true "Enrollment ID"
// @Success 200 {object} response.Envelope
// @Router /portal/admin/enrollments/{id}/approve [post]
func (h *EnrollmentHandler) Approve(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.service.Approve(c.Request.Context(), sessionID(c), id)
	respond(c, http.StatusOK, out, err)
}

// Reject godoc
// @Summary Reject enrollment
// @Tags Enrollments
// @Produce json
// @Param id path int true "Enrollment ID"
// @Success 200 {object} response.Envelope
// @Router /portal/admin/enrollments/{id}/reject [post]
func (h *EnrollmentHandler) Reject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.service.Reject(c.Request.Context(), sessionID(c), id)
	respond(c, http.StatusOK, out, err)
}

// Delete godoc
// @Summary Delete enrollment
// @Description Returns the remaining enrollments
// @Tags Enrollments
// @Produce json
// @Param id path int true "Enrollment ID"
// @Success 200 {object} response.Envelope
// @Router /portal/admin/enrollments/{id} [delete]
func (h *EnrollmentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.service.Delete(c.Request.Context(), sessionID(c), id)
	respond(c, http.StatusOK, out, err)
}

// EnrollForm godoc
// @Summary Sections and banks for the enrollment form
// @Tags Student
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /portal/student/courses/{id}/enroll [get]
func (h *EnrollmentHandler) EnrollForm(c *gin.Context) {
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.service.EnrollView(c.Request.Context(), sessionID(c), courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, view)
}

// Enroll godoc
// @Summary Enroll into a section
// @Tags Student
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param payload body dto.EnrollmentForm true "Payment data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /portal/student/courses/{id}/enroll [post]
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var form dto.EnrollmentForm
	if !bindJSON(c, &form, "enrollment") {
		return
	}
	out, err := h.service.Enroll(c.Request.Context(), sessionID(c), courseID, form)
	respond(c, http.StatusCreated, out, err)
}

// Mine godoc
// @Summary Enrollments of the student
// @Tags Student
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /portal/student/enrollments [get]
func (h *EnrollmentHandler) Mine(c *gin.Context) {
	items, err := h.service.Mine(c.Request.Context(), sessionID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

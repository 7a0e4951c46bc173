package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/educa-portal/internal/dispatcher"
	"github.com/noah-isme/educa-portal/internal/dto"
	"github.com/noah-isme/educa-portal/internal/models"
	"github.com/noah-isme/educa-portal/internal/service"
	"github.com/noah-isme/educa-portal/pkg/response"
)

type certificateService interface {
	Overview(ctx context.Context, sid string, courseID, sectionID models.ID) (*service.CascadeView, error)
	Create(ctx context.Context, sid string, studentID, sectionID models.ID, form dto.CertificateForm) (*service.Outcome, error)
	Update(ctx context.Context, sid string, id models.ID, form dto.CertificateForm) (*service.Outcome, error)
	Delete(ctx context.Context, sid string, id models.ID) (*service.Outcome, error)
	Download(ctx context.Context, sid string, id models.ID) (*dispatcher.File, error)
	Mine(ctx context.Context, sid string) ([]models.Certificate, error)
}

// CertificateHandler serves certificate management and downloads.
type CertificateHandler struct {
	service certificateService
}

// NewCertificateHandler constructs a CertificateHandler.
func NewCertificateHandler(svc certificateService) *CertificateHandler {
	return &CertificateHandler{service: svc}
}

// Overview godoc
// @Summary Certificate screen
// @Description Course picker plus sections, roster and certificates of the selection
// @Tags Certificates
// @Produce json
// @Param cursoId query int false "Course ID"
// @Param seccionId query int false "Section ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /portal/admin/certificates [get]
func (h *CertificateHandler) Overview(c *gin.Context) {
	courseID, ok := queryID(c, "cursoId")
	if !ok {
		return
	}
	sectionID, ok := queryID(c, "seccionId")
	if !ok {
		return
	}
	view, err := h.service.Overview(c.Request.Context(), sessionID(c), courseID, sectionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, view)
}

// Create godoc
// @Summary Issue certificate
// @Tags Certificates
// @Accept json
// @Produce json
// @Param studentId path int true "Student ID"
// @Param sectionId path int true "Section ID"
// @Param payload body dto.CertificateForm true "Certificate payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /portal/admin/certificates/students/{studentId}/sections/{sectionId} [post]
func (h *CertificateHandler) Create(c *gin.Context) {
	studentID, ok := pathID(c, "studentId")
	if !ok {
		return
	}
	sectionID, ok := pathID(c, "sectionId")
	if !ok {
		return
	}
	var form dto.CertificateForm
	if !bindJSON(c, &form, "certificate") {
		return
	}
	out, err := h.service.Create(c.Request.Context(), sessionID(c), studentID, sectionID, form)
	respond(c, http.StatusCreated, out, err)
}

// Update godoc
// @Summary Update certificate
// @Tags Certificates
// @Accept json
// @Produce json
// @Param id path int true "Certificate ID"
// @Param payload body dto.CertificateForm true "Certificate payload"
// @Success 200 {object} response.Envelope
// @Router /portal/admin/certificates/{id} [patch]
func (h *CertificateHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var form dto.CertificateForm
	if !bindJSON(c, &form, "certificate") {
		return
	}
	out, err := h.service.Update(c.Request.Context(), sessionID(c), id, form)
	respond(c, http.StatusOK, out, err)
}

// Delete godoc
// @Summary Delete certificate
// @Description Returns the remaining certificates
// @Tags Certificates
// @Produce json
// @Param id path int true "Certificate ID"
// @Success 200 {object} response.Envelope
// @Router /portal/admin/certificates/{id} [delete]
func (h *CertificateHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.service.Delete(c.Request.Context(), sessionID(c), id)
	respond(c, http.StatusOK, out, err)
}

// Download godoc
// @Summary Download certificate PDF
// @Tags Certificates
// @Produce application/pdf
// @Param id path int true "Certificate ID"
// @Success 200 {file} file
// @Failure 502 {object} response.Envelope
// @Router /portal/admin/certificates/{id}/pdf [get]
func (h *CertificateHandler) Download(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	file, err := h.service.Download(c.Request.Context(), sessionID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Name, file.ContentType, file.Data)
}

// Mine godoc
// @Summary Certificates of the student
// @Tags Student
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /portal/student/certificates [get]
func (h *CertificateHandler) Mine(c *gin.Context) {
	items, err := h.service.Mine(c.Request.Context(), sessionID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

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

type catalogService interface {
	Courses(ctx context.Context, sid string) ([]models.Course, error)
	Course(ctx context.Context, sid string, id models.ID) (*models.Course, error)
	CreateCourse(ctx context.Context, sid string, form dto.CourseForm) (*service.Outcome, error)
	UpdateCourse(ctx context.Context, sid string, id models.ID, form dto.CourseForm) (*service.Outcome, error)
	DeleteCourse(ctx context.Context, sid string, id models.ID) (*service.Outcome, error)
	Sections(ctx context.Context, sid string, courseID models.ID) ([]models.Section, error)
	SectionPicker(ctx context.Context, sid string, courseID models.ID) (*dto.CoursePicker, error)
	CreateSection(ctx context.Context, sid string, courseID models.ID, form dto.SectionForm) (*service.Outcome, error)
	UpdateSection(ctx context.Context, sid string, courseID, sectionID models.ID, form dto.SectionForm) (*service.Outcome, error)
	SectionStudents(ctx context.Context, sid string, sectionID models.ID) ([]models.Student, error)
	StudentCatalog(ctx context.Context, sid string) ([]models.StudentCourse, error)
	EnrolledCourses(ctx context.Context, sid string) ([]models.StudentCourse, error)
}

// CatalogHandler serves courses and sections.
type CatalogHandler struct {
	service catalogService
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(svc catalogService) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

// ListCourses godoc
// @Summary List courses
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /portal/admin/courses [get]
func (h *CatalogHandler) ListCourses(c *gin.Context) {
	courses, err := h.service.Courses(c.Request.Context(), sessionID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, courses)
}

// GetCourse godoc
// @Summary Get course
// @Tags Courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /portal/admin/courses/{id} [get]
func (h *CatalogHandler) GetCourse(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	course, err := h.service.Course(c.Request.Context(), sessionID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, course)
}

// CreateCourse godoc
// @Summary Create course
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body dto.CourseForm true "Course payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /portal/admin/courses [post]
func (h *CatalogHandler) CreateCourse(c *gin.Context) {
	var form dto.CourseForm
	if !bindJSON(c, &form, "course") {
		return
	}
	out, err := h.service.CreateCourse(c.Request.Context(), sessionID(c), form)
	respond(c, http.StatusCreated, out, err)
}

// UpdateCourse godoc
// @Summary Update course
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param payload body dto.CourseForm true "Course payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /portal/admin/courses/{id} [patch]
func (h *CatalogHandler) UpdateCourse(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var form dto.CourseForm
	if !bindJSON(c, &form, "course") {
		return
	}
	out, err := h.service.UpdateCourse(c.Request.Context(), sessionID(c), id, form)
	respond(c, http.StatusOK, out, err)
}

// DeleteCourse godoc
// @Summary Delete course
// @Description Returns the remaining courses
// @Tags Courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /portal/admin/courses/{id} [delete]
func (h *CatalogHandler) DeleteCourse(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.service.DeleteCourse(c.Request.Context(), sessionID(c), id)
	respond(c, http.StatusOK, out, err)
}

// ListSections godoc
// @Summary List the sections of a course
// @Tags Sections
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /portal/admin/courses/{id}/sections [get]
func (h *CatalogHandler) ListSections(c *gin.Context) {
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	sections, err := h.service.Sections(c.Request.Context(), sessionID(c), courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, sections)
}

// SectionForm godoc
// @Summary Data for the new section form
// @Description Course, suggested code prefix and the teacher picker
// @Tags Sections
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /portal/admin/courses/{id}/sections/new [get]
func (h *CatalogHandler) SectionForm(c *gin.Context) {
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	picker, err := h.service.SectionPicker(c.Request.Context(), sessionID(c), courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, picker)
}

// CreateSection godoc
// @Summary Create section
// @Tags Sections
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param payload body dto.SectionForm true "Section payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /portal/admin/courses/{id}/sections [post]
func (h *CatalogHandler) CreateSection(c *gin.Context) {
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var form dto.SectionForm
	if !bindJSON(c, &form, "section") {
		return
	}
	out, err := h.service.CreateSection(c.Request.Context(), sessionID(c), courseID, form)
	respond(c, http.StatusCreated, out, err)
}

// UpdateSection godoc
// @Summary Update section
// @Tags Sections
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param sectionId path int true "Section ID"
// @Param payload body dto.SectionForm true "Section payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /portal/admin/courses/{id}/sections/{sectionId} [patch]
func (h *CatalogHandler) UpdateSection(c *gin.Context) {
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	sectionID, ok := pathID(c, "sectionId")
	if !ok {
		return
	}
	var form dto.SectionForm
	if !bindJSON(c, &form, "section") {
		return
	}
	out, err := h.service.UpdateSection(c.Request.Context(), sessionID(c), courseID, sectionID, form)
	respond(c, http.StatusOK, out, err)
}

// SectionStudents godoc
// @Summary Roster of a section
// @Tags Sections
// @Produce json
// @Param id path int true "Section ID"
// @Success 200 {object} response.Envelope
// @Router /portal/admin/sections/{id}/students [get]
func (h *CatalogHandler) SectionStudents(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	students, err := h.service.SectionStudents(c.Request.Context(), sessionID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, students)
}

// StudentCatalog godoc
// @Summary Courses open to the student
// @Tags Student
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /portal/student/courses [get]
func (h *CatalogHandler) StudentCatalog(c *gin.Context) {
	courses, err := h.service.StudentCatalog(c.Request.Context(), sessionID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, courses)
}

// EnrolledCourses godoc
// @Summary Courses the student is enrolled in
// @Tags Student
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /portal/student/courses/me [get]
func (h *CatalogHandler) EnrolledCourses(c *gin.Context) {
	courses, err := h.service.EnrolledCourses(c.Request.Context(), sessionID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, courses)
}

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

type directoryService interface {
	Students(ctx context.Context, sid string) ([]models.Student, error)
	Student(ctx context.Context, sid string, id models.ID) (*models.Student, error)
	CreateStudent(ctx context.Context, sid string, form dto.StudentRegistration) (*service.Outcome, error)
	UpdateStudent(ctx context.Context, sid string, id models.ID, form dto.StudentForm) (*service.Outcome, error)
	DeleteStudent(ctx context.Context, sid string, id models.ID) (*service.Outcome, error)
	Teachers(ctx context.Context, sid string) ([]models.Teacher, error)
	Teacher(ctx context.Context, sid string, id models.ID) (*models.Teacher, error)
	CreateTeacher(ctx context.Context, sid string, form dto.TeacherForm) (*service.Outcome, error)
	UpdateTeacher(ctx context.Context, sid string, id models.ID, form dto.TeacherForm) (*service.Outcome, error)
	DeleteTeacher(ctx context.Context, sid string, id models.ID) (*service.Outcome, error)
}

// DirectoryHandler serves the student and teacher directories.
type DirectoryHandler struct {
	service directoryService
}

// NewDirectoryHandler constructs a DirectoryHandler.
func NewDirectoryHandler(svc directoryService) *DirectoryHandler {
	return &DirectoryHandler{service: svc}
}

// ListStudents godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /portal/admin/students [get]
func (h *DirectoryHandler) ListStudents(c *gin.Context) {
	items, err := h.service.Students(c.Request.Context(), sessionID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

// GetStudent godoc
// @Summary Get student
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /portal/admin/students/{id} [get]
func (h *DirectoryHandler) GetStudent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	student, err := h.service.Student(c.Request.Context(), sessionID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, student)
}

// CreateStudent godoc
// @Summary Register student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body dto.StudentRegistration true "Student payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /portal/admin/students [post]
func (h *DirectoryHandler) CreateStudent(c *gin.Context) {
	var form dto.StudentRegistration
	if !bindJSON(c, &form, "student") {
		return
	}
	out, err := h.service.CreateStudent(c.Request.Context(), sessionID(c), form)
	respond(c, http.StatusCreated, out, err)
}

// UpdateStudent godoc
// @Summary Update student
// @Tags Students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param payload body dto.StudentForm true "Student payload"
// @Success 200 {object} response.Envelope
// @Router /portal/admin/students/{id} [patch]
func (h *DirectoryHandler) UpdateStudent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var form dto.StudentForm
	if !bindJSON(c, &form, "student") {
		return
	}
	out, err := h.service.UpdateStudent(c.Request.Context(), sessionID(c), id, form)
	respond(c, http.StatusOK, out, err)
}

// DeleteStudent godoc
// @Summary Delete student
// @Description Returns the remaining students
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /portal/admin/students/{id} [delete]
func (h *DirectoryHandler) DeleteStudent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.service.DeleteStudent(c.Request.Context(), sessionID(c), id)
	respond(c, http.StatusOK, out, err)
}

// ListTeachers godoc
// @Summary List teachers
// @Tags Teachers
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /portal/admin/teachers [get]
func (h *DirectoryHandler) ListTeachers(c *gin.Context) {
	items, err := h.service.Teachers(c.Request.Context(), sessionID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

// GetTeacher godoc
// @Summary Get teacher
// @Tags Teachers
// @Produce json
// @Param id path int true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /portal/admin/teachers/{id} [get]
func (h *DirectoryHandler) GetTeacher(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	teacher, err := h.service.Teacher(c.Request.Context(), sessionID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, teacher)
}

// CreateTeacher godoc
// @Summary Register teacher
// @Tags Teachers
// @Accept json
// @Produce json
// @Param payload body dto.TeacherForm true "Teacher payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /portal/admin/teachers [post]
func (h *DirectoryHandler) CreateTeacher(c *gin.Context) {
	var form dto.TeacherForm
	if !bindJSON(c, &form, "teacher") {
		return
	}
	out, err := h.service.CreateTeacher(c.Request.Context(), sessionID(c), form)
	respond(c, http.StatusCreated, out, err)
}

// UpdateTeacher godoc
// @Summary Update teacher
// @Tags Teachers
// @Accept json
// @Produce json
// @Param id path int true "Teacher ID"
// @Param payload body dto.TeacherForm true "Teacher payload"
// @Success 200 {object} response.Envelope
// @Router /portal/admin/teachers/{id} [patch]
func (h *DirectoryHandler) UpdateTeacher(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var form dto.TeacherForm
	if !bindJSON(c, &form, "teacher") {
		return
	}
	out, err := h.service.UpdateTeacher(c.Request.Context(), sessionID(c), id, form)
	respond(c, http.StatusOK, out, err)
}

// DeleteTeacher godoc
// @Summary Delete teacher
// @Description Returns the remaining teachers
// @Tags Teachers
// @Produce json
// @Param id path int true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /portal/admin/teachers/{id} [delete]
func (h *DirectoryHandler) DeleteTeacher(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.service.DeleteTeacher(c.Request.Context(), sessionID(c), id)
	respond(c, http.StatusOK, out, err)
}

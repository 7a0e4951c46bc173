package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/educa-portal/internal/dispatcher"
	"github.com/noah-isme/educa-portal/internal/dto"
	"github.com/noah-isme/educa-portal/internal/models"
	"github.com/noah-isme/educa-portal/internal/registry"
	appErrors "github.com/noah-isme/educa-portal/pkg/errors"
)

// CatalogService backs the course and section screens.
type CatalogService struct {
	base
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(deps Deps) *CatalogService {
	return &CatalogService{base: newBase(deps, "catalog")}
}

// Courses lists every course.
func (s *CatalogService) Courses(ctx context.Context, sid string) ([]models.Course, error) {
	token, err := s.token(ctx, sid, "list_courses")
	if err != nil {
		return nil, err
	}
	reg := registry.Courses(s.api, token, s.logger)
	if err := reg.FetchAll(ctx, ""); err != nil {
		return nil, err
	}
	return reg.Items(), nil
}

// Course loads one course.
func (s *CatalogService) Course(ctx context.Context, sid string, id models.ID) (*models.Course, error) {
	token, err := s.token(ctx, sid, "get_course")
	if err != nil {
		return nil, err
	}
	return s.api.Course(ctx, token, id)
}

// CreateCourse creates a course.
func (s *CatalogService) CreateCourse(ctx context.Context, sid string, form dto.CourseForm) (*Outcome, error) {
	token, err := s.token(ctx, sid, "create_course")
	if err != nil {
		return nil, err
	}
	reg := registry.Courses(s.api, token, s.logger)
	var created *models.Course
	res := s.dispatch.Dispatch(ctx, sid, dispatcher.Action{
		Kind:    dispatcher.KindCreate,
		Name:    "create_course",
		Payload: form,
		Do: func(ctx context.Context, _ string) (string, error) {
			course, msg, err := reg.Create(ctx, form)
			created = course
			return msg, err
		},
		Success: "Curso creado correctamente.",
	})
	return outcome(res, created)
}

// UpdateCourse edits a course.
func (s *CatalogService) UpdateCourse(ctx context.Context, sid string, id models.ID, form dto.CourseForm) (*Outcome, error) {
	token, err := s.token(ctx, sid, "update_course")
	if err != nil {
		return nil, err
	}
	reg := registry.Courses(s.api, token, s.logger)
	var updated *models.Course
	res := s.dispatch.Dispatch(ctx, sid, dispatcher.Action{
		Kind:    dispatcher.KindUpdate,
		Name:    "update_course",
		Payload: form,
		Do: func(ctx context.Context, _ string) (string, error) {
			course, msg, err := reg.Update(ctx, id, form)
			updated = course
			return msg, err
		},
		Success: "Curso actualizado correctamente.",
	})
	return outcome(res, updated)
}

// DeleteCourse deletes a course and returns the remaining list. The course
// leaves the list right away and comes back if the API refuses.
func (s *CatalogService) DeleteCourse(ctx context.Context, sid string, id models.ID) (*Outcome, error) {
	token, err := s.token(ctx, sid, "delete_course")
	if err != nil {
		return nil, err
	}
	reg := registry.Courses(s.api, token, s.logger)
	if err := reg.FetchAll(ctx, ""); err != nil {
		s.logger.Warn("deleting without a loaded course list", zap.Error(err))
	}
	res := s.dispatch.Dispatch(ctx, sid, dispatcher.Action{
		Kind:       dispatcher.KindDelete,
		Name:       "delete_course",
		Optimistic: dispatcher.RemoveOptimistically(reg, id),
		Do: func(ctx context.Context, token string) (string, error) {
			return s.api.DeleteCourse(ctx, token, id)
		},
		Success: "Curso eliminado correctamente.",
	})
	return outcome(res, reg.Items())
}

// Sections lists the sections of a course.
func (s *CatalogService) Sections(ctx context.Context, sid string, courseID models.ID) ([]models.Section, error) {
	token, err := s.token(ctx, sid, "list_sections")
	if err != nil {
		return nil, err
	}
	reg := registry.Sections(s.api, token, s.logger)
	if err := reg.FetchAll(ctx, courseID.String()); err != nil {
		return nil, err
	}
	return reg.Items(), nil
}

// SectionPicker loads what the new-section form needs: the course, the
// code prefix derived from it and the teachers to choose from.
func (s *CatalogService) SectionPicker(ctx context.Context, sid string, courseID models.ID) (*dto.CoursePicker, error) {
	token, err := s.token(ctx, sid, "section_picker")
	if err != nil {
		return nil, err
	}
	var (
		course   *models.Course
		teachers []models.Teacher
	)
	err = parallel(
		func() (err error) {
			course, err = s.api.Course(ctx, token, courseID)
			return err
		},
		func() (err error) {
			teachers, err = s.api.Teachers(ctx, token)
			return err
		},
	)
	if err != nil {
		return nil, err
	}
	if teachers == nil {
		teachers = []models.Teacher{}
	}
	return &dto.CoursePicker{Course: course, SuggestedCode: models.SectionCode(course.Codigo, ""), Teachers: teachers}, nil
}

// CreateSection adds a section to a course. The code is prefixed with the
// course code and must be unique within the course.
func (s *CatalogService) CreateSection(ctx context.Context, sid string, courseID models.ID, form dto.SectionForm) (*Outcome, error) {
	if err := s.checkSection(form); err != nil {
		return nil, err
	}
	token, err := s.token(ctx, sid, "create_section")
	if err != nil {
		return nil, err
	}
	reg := registry.Sections(s.api, token, s.logger)
	var course *models.Course
	err = parallel(
		func() (err error) {
			course, err = s.api.Course(ctx, token, courseID)
			return err
		},
		func() error { return reg.FetchAll(ctx, courseID.String()) },
	)
	if err != nil {
		return nil, err
	}

	form.CursoID = courseID.String()
	form.Codigo = models.SectionCode(course.Codigo, form.Codigo)
	if strings.HasSuffix(form.Codigo, "-") {
		return nil, appErrors.Validation(map[string]string{"codigo": "El código es requerido"})
	}
	if !models.UniqueSectionCode(reg.Items(), form.Codigo, 0) {
		return nil, duplicateCode()
	}

	var created *models.Section
	res := s.dispatch.Dispatch(ctx, sid, dispatcher.Action{
		Kind: dispatcher.KindCreate,
		Name: "create_section",
		Do: func(ctx context.Context, _ string) (string, error) {
			section, msg, err := reg.Create(ctx, form)
			created = section
			return msg, err
		},
		Success: "Sección creada correctamente.",
	})
	return outcome(res, created)
}

// UpdateSection edits a section of a course.
func (s *CatalogService) UpdateSection(ctx context.Context, sid string, courseID, sectionID models.ID, form dto.SectionForm) (*Outcome, error) {
	if err := s.checkSection(form); err != nil {
		return nil, err
	}
	token, err := s.token(ctx, sid, "update_section")
	if err != nil {
		return nil, err
	}
	reg := registry.Sections(s.api, token, s.logger)
	if err := reg.FetchAll(ctx, courseID.String()); err != nil {
		return nil, err
	}
	if _, ok := reg.Get(sectionID); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "La sección no pertenece al curso.")
	}
	if !models.UniqueSectionCode(reg.Items(), form.Codigo, sectionID) {
		return nil, duplicateCode()
	}

	form.CursoID = courseID.String()
	var updated *models.Section
	res := s.dispatch.Dispatch(ctx, sid, dispatcher.Action{
		Kind: dispatcher.KindUpdate,
		Name: "update_section",
		Do: func(ctx context.Context, _ string) (string, error) {
			section, msg, err := reg.Update(ctx, sectionID, form)
			updated = section
			return msg, err
		},
		Success: "Sección actualizada correctamente.",
	})
	return outcome(res, updated)
}

// checkSection validates the form and then the section invariants.
func (s *CatalogService) checkSection(form dto.SectionForm) error {
	if err := s.validator.Struct(form); err != nil {
		return err
	}
	if !form.Section().Valid() {
		return appErrors.Validation(map[string]string{"capacidad": "La capacidad debe ser al menos 1"})
	}
	return nil
}

// StudentCatalog lists the courses a student can enroll in.
func (s *CatalogService) StudentCatalog(ctx context.Context, sid string) ([]models.StudentCourse, error) {
	token, err := s.token(ctx, sid, "student_catalog")
	if err != nil {
		return nil, err
	}
	reg := registry.StudentCourses(s.api, token, s.logger)
	if err := reg.FetchAll(ctx, ""); err != nil {
		return nil, err
	}
	return reg.Items(), nil
}

// EnrolledCourses lists the courses the student is enrolled in.
func (s *CatalogService) EnrolledCourses(ctx context.Context, sid string) ([]models.StudentCourse, error) {
	token, err := s.token(ctx, sid, "enrolled_courses")
	if err != nil {
		return nil, err
	}
	reg := registry.EnrolledCourses(s.api, token, s.logger)
	if err := reg.FetchAll(ctx, ""); err != nil {
		return nil, err
	}
	return reg.Items(), nil
}

func duplicateCode() error {
	return appErrors.Validation(map[string]string{"codigo": "Ya existe una sección con ese código en el curso."})
}

// SectionStudents lists the roster of a section.
func (s *CatalogService) SectionStudents(ctx context.Context, sid string, sectionID models.ID) ([]models.Student, error) {
	token, err := s.token(ctx, sid, "section_students")
	if err != nil {
		return nil, err
	}
	reg := registry.SectionRoster(s.api, token, s.logger)
	if err := reg.FetchAll(ctx, sectionID.String()); err != nil {
		return nil, err
	}
	return reg.Items(), nil
}

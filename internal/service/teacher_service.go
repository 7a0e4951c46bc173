package service

import (
	"context"

	"github.com/noah-isme/educa-portal/internal/cascade"
	"github.com/noah-isme/educa-portal/internal/dispatcher"
	"github.com/noah-isme/educa-portal/internal/models"
	"github.com/noah-isme/educa-portal/internal/registry"
	appErrors "github.com/noah-isme/educa-portal/pkg/errors"
)

// TeacherService backs the teacher dashboard: the teacher's sections, the
// roster and capacity chart of the selected one, and pass/fail actions.
type TeacherService struct {
	base
}

// NewTeacherService constructs a TeacherService.
func NewTeacherService(deps Deps) *TeacherService {
	return &TeacherService{base: newBase(deps, "teacher")}
}

// Dashboard returns the sections of the logged in teacher with the cascade
// narrowed to sectionID when it is set. Rosters come embedded in the
// sections.
func (s *TeacherService) Dashboard(ctx context.Context, sid string, sectionID models.ID) (*cascade.Snapshot, error) {
	token, err := s.token(ctx, sid, "teacher_dashboard")
	if err != nil {
		return nil, err
	}
	reg := registry.TeacherSections(s.api, token, s.logger)
	if err := reg.FetchAll(ctx, ""); err != nil {
		return nil, err
	}
	sections := reg.Items()

	// the dashboard has no course picker: all of the teacher's sections form
	// one list
	const allSections models.ID = -1
	c := cascade.New(cascade.Loaders{
		Sections: cascade.Preloaded(map[models.ID][]models.Section{allSections: sections}),
	}, s.logger)
	if err := c.SelectCourse(ctx, allSections); err != nil {
		return nil, err
	}
	if !sectionID.IsZero() {
		if err := c.SelectSection(ctx, sectionID); err != nil {
			return nil, err
		}
	}
	snap := c.Snapshot()
	snap.CourseID = 0
	return &snap, nil
}

// PassStudent records the student as approved in the section.
func (s *TeacherService) PassStudent(ctx context.Context, sid string, sectionID, studentID models.ID) (*Outcome, error) {
	return s.grade(ctx, sid, sectionID, studentID, models.StudentPassed)
}

// FailStudent records the student as failed in the section.
func (s *TeacherService) FailStudent(ctx context.Context, sid string, sectionID, studentID models.ID) (*Outcome, error) {
	return s.grade(ctx, sid, sectionID, studentID, models.StudentFailed)
}

// grade changes the displayed status of exactly one student and returns the
// roster of the section as embedded in the teacher's sections.
func (s *TeacherService) grade(ctx context.Context, sid string, sectionID, studentID models.ID, status models.StudentStatus) (*Outcome, error) {
	token, err := s.token(ctx, sid, "grade_student")
	if err != nil {
		return nil, err
	}
	sections := registry.TeacherSections(s.api, token, s.logger)
	if err := sections.FetchAll(ctx, ""); err != nil {
		return nil, err
	}
	section, ok := sections.Get(sectionID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "La sección no está asignada a este profesor.")
	}
	roster := registry.New("section_roster", token, models.StudentID, registry.Source[models.Student]{}, s.logger)
	roster.Load(section.Estudiantes)

	action := dispatcher.Action{
		Kind:    dispatcher.KindTransition,
		Name:    "pass_student",
		Success: "Estudiante aprobado.",
		Failure: "No se ha podido aprobar al estudiante. Vuelva a Intentarlo.",
		Do: func(ctx context.Context, token string) (string, error) {
			return s.api.PassStudent(ctx, token, sectionID, studentID)
		},
	}
	if status == models.StudentFailed {
		action.Name = "fail_student"
		action.Success = "Estudiante reprobado."
		action.Failure = "No se ha podido reprobar al estudiante. Vuelva a Intentarlo."
		action.Do = func(ctx context.Context, token string) (string, error) {
			return s.api.FailStudent(ctx, token, sectionID, studentID)
		}
	}
	action.Apply = func() {
		roster.Mutate(studentID, func(st models.Student) models.Student { return st.WithStatus(status) })
	}

	res := s.dispatch.Dispatch(ctx, sid, action)
	if res.Err == nil {
		// the toast wording is fixed whatever the server answers
		res.Message = action.Success
		res.Notice.Message = action.Success
	}
	return outcome(res, roster.Items())
}

package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/educa-portal/internal/cascade"
	"github.com/noah-isme/educa-portal/internal/dispatcher"
	"github.com/noah-isme/educa-portal/internal/dto"
	"github.com/noah-isme/educa-portal/internal/models"
	"github.com/noah-isme/educa-portal/internal/registry"
	appErrors "github.com/noah-isme/educa-portal/pkg/errors"
)

// EnrollmentService backs the admin inscriptions screen and the student
// enrollment flow.
type EnrollmentService struct {
	base
}

// NewEnrollmentService constructs an EnrollmentService.
func NewEnrollmentService(deps Deps) *EnrollmentService {
	return &EnrollmentService{base: newBase(deps, "enrollment")}
}

// List returns every enrollment.
func (s *EnrollmentService) List(ctx context.Context, sid string) ([]models.Enrollment, error) {
	token, err := s.token(ctx, sid, "list_enrollments")
	if err != nil {
		return nil, err
	}
	reg := registry.Enrollments(s.api, token, s.logger)
	if err := reg.FetchAll(ctx, ""); err != nil {
		return nil, err
	}
	return reg.Items(), nil
}

// Approve marks an enrollment as approved.
func (s *EnrollmentService) Approve(ctx context.Context, sid string, id models.ID) (*Outcome, error) {
	return s.transition(ctx, sid, id, "approve_enrollment", models.EnrollmentApproved, "Inscripción aprobada correctamente.", s.api.ApproveEnrollment)
}

// Reject marks an enrollment as rejected.
func (s *EnrollmentService) Reject(ctx context.Context, sid string, id models.ID) (*Outcome, error) {
	return s.transition(ctx, sid, id, "reject_enrollment", models.EnrollmentRejected, "Inscripción desaprobada correctamente.", s.api.RejectEnrollment)
}

func (s *EnrollmentService) transition(
	ctx context.Context,
	sid string,
	id models.ID,
	name string,
	status models.EnrollmentStatus,
	success string,
	call func(ctx context.Context, token string, id models.ID) (string, error),
) (*Outcome, error) {
	token, err := s.token(ctx, sid, name)
	if err != nil {
		return nil, err
	}
	reg := registry.Enrollments(s.api, token, s.logger)
	if err := reg.FetchAll(ctx, ""); err != nil {
		s.logger.Warn("transition without a loaded enrollment list", zap.String("action", name), zap.Error(err))
	}
	res := s.dispatch.Dispatch(ctx, sid, dispatcher.Action{
		Kind: dispatcher.KindTransition,
		Name: name,
		Do: func(ctx context.Context, token string) (string, error) {
			return call(ctx, token, id)
		},
		Apply: func() {
			reg.Mutate(id, func(e models.Enrollment) models.Enrollment {
				e.Estado = status
				return e
			})
		},
		Success: success,
	})
	return outcome(res, reg.Items())
}

// Delete removes an enrollment. It disappears from the returned list at
// once and is put back only if the API explicitly refuses the delete.
func (s *EnrollmentService) Delete(ctx context.Context, sid string, id models.ID) (*Outcome, error) {
	token, err := s.token(ctx, sid, "delete_enrollment")
	if err != nil {
		return nil, err
	}
	reg := registry.Enrollments(s.api, token, s.logger)
	if err := reg.FetchAll(ctx, ""); err != nil {
		s.logger.Warn("deleting without a loaded enrollment list", zap.Error(err))
	}
	res := s.dispatch.Dispatch(ctx, sid, dispatcher.Action{
		Kind:       dispatcher.KindDelete,
		Name:       "delete_enrollment",
		Optimistic: dispatcher.RemoveOptimistically(reg, id),
		Do: func(ctx context.Context, token string) (string, error) {
			return s.api.DeleteEnrollment(ctx, token, id)
		},
		Success: "Inscripción eliminada correctamente.",
	})
	return outcome(res, reg.Items())
}

// EnrollView loads the sections a student may pick for a course.
func (s *EnrollmentService) EnrollView(ctx context.Context, sid string, courseID models.ID) (*dto.StudentEnrollView, error) {
	token, err := s.token(ctx, sid, "enroll_view")
	if err != nil {
		return nil, err
	}
	reg := registry.Sections(s.api, token, s.logger)
	if err := reg.FetchAll(ctx, courseID.String()); err != nil {
		return nil, err
	}
	return &dto.StudentEnrollView{CourseID: courseID, Sections: reg.Items(), Banks: append([]string{}, models.Banks...)}, nil
}

// Enroll submits an enrollment for a section of courseID. The form is
// validated first; nothing is sent when it is invalid, when the student is
// known to hold an open enrollment for the section, or when the section is
// known to be full.
func (s *EnrollmentService) Enroll(ctx context.Context, sid string, courseID models.ID, form dto.EnrollmentForm) (*Outcome, error) {
	form.CursoID = courseID.String()
	if err := s.validator.Struct(form); err != nil {
		return nil, err
	}
	token, err := s.token(ctx, sid, "create_enrollment")
	if err != nil {
		return nil, err
	}

	sectionID, err := models.ParseID(form.SeccionID)
	if err != nil {
		return nil, appErrors.Validation(map[string]string{"seccionId": "Debe seleccionar una sección"})
	}
	sections := registry.Sections(s.api, token, s.logger)
	mine := registry.MyEnrollments(s.api, token, s.logger)
	err = parallel(
		func() error { return sections.FetchAll(ctx, courseID.String()) },
		func() error {
			// the duplicate check is best-effort; the server has the final word
			if err := mine.FetchAll(ctx, ""); err != nil {
				s.logger.Warn("own enrollments unavailable, duplicate check skipped", zap.Error(err))
			}
			return nil
		},
	)
	if err != nil {
		return nil, err
	}
	section, ok := sections.Get(sectionID)
	if !ok {
		return nil, appErrors.Validation(map[string]string{"seccionId": "La sección no pertenece al curso."})
	}
	if err := checkEnrollable(section, mine.Items()); err != nil {
		return nil, err
	}

	reg := registry.Enrollments(s.api, token, s.logger)
	var created *models.Enrollment
	res := s.dispatch.Dispatch(ctx, sid, dispatcher.Action{
		Kind:    dispatcher.KindCreate,
		Name:    "create_enrollment",
		Payload: form,
		Do: func(ctx context.Context, _ string) (string, error) {
			enrollment, msg, err := reg.Create(ctx, form)
			created = enrollment
			return msg, err
		},
		Success: "Inscripción registrada correctamente.",
	})
	return outcome(res, created)
}

// checkEnrollable enforces one open enrollment per student and section and
// the section capacity, as far as the portal can see them.
func checkEnrollable(section models.Section, mine []models.Enrollment) error {
	for _, e := range mine {
		sameSection := (!e.SeccionID.IsZero() && e.SeccionID == section.ID) ||
			(e.CodigoSeccion != "" && e.CodigoSeccion == section.Codigo)
		if sameSection && models.EnrollmentStatus(strings.ToLower(string(e.Estado))) != models.EnrollmentRejected {
			return appErrors.Clone(appErrors.ErrPrecondition, "Ya tiene una inscripción para esta sección.")
		}
	}
	if section.EstudiantesInscritos != nil {
		if cascade.CapacityOf(section, 0).Disponibles == 0 {
			return appErrors.Clone(appErrors.ErrPrecondition, "La sección no tiene cupos disponibles.")
		}
	}
	return nil
}

// Mine lists the enrollments of the logged in student.
func (s *EnrollmentService) Mine(ctx context.Context, sid string) ([]models.Enrollment, error) {
	token, err := s.token(ctx, sid, "my_enrollments")
	if err != nil {
		return nil, err
	}
	reg := registry.MyEnrollments(s.api, token, s.logger)
	if err := reg.FetchAll(ctx, ""); err != nil {
		return nil, err
	}
	return reg.Items(), nil
}

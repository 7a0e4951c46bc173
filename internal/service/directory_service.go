package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/educa-portal/internal/dispatcher"
	"github.com/noah-isme/educa-portal/internal/dto"
	"github.com/noah-isme/educa-portal/internal/models"
	"github.com/noah-isme/educa-portal/internal/registry"
)

// DirectoryService backs the admin student and teacher directories.
type DirectoryService struct {
	base
}

// NewDirectoryService constructs a DirectoryService.
func NewDirectoryService(deps Deps) *DirectoryService {
	return &DirectoryService{base: newBase(deps, "directory")}
}

// Students lists every student.
func (s *DirectoryService) Students(ctx context.Context, sid string) ([]models.Student, error) {
	token, err := s.token(ctx, sid, "list_students")
	if err != nil {
		return nil, err
	}
	reg := registry.Students(s.api, token, s.logger)
	if err := reg.FetchAll(ctx, ""); err != nil {
		return nil, err
	}
	return reg.Items(), nil
}

// Student returns one student.
func (s *DirectoryService) Student(ctx context.Context, sid string, id models.ID) (*models.Student, error) {
	token, err := s.token(ctx, sid, "get_student")
	if err != nil {
		return nil, err
	}
	return s.api.Student(ctx, token, id)
}

// CreateStudent registers a student account on behalf of the admin.
func (s *DirectoryService) CreateStudent(ctx context.Context, sid string, form dto.StudentRegistration) (*Outcome, error) {
	form.TipoUsuario = models.RoleStudent
	res := s.dispatch.Dispatch(ctx, sid, dispatcher.Action{
		Kind:    dispatcher.KindCreate,
		Name:    "create_student",
		Payload: form,
		Do: func(ctx context.Context, token string) (string, error) {
			return s.api.Register(ctx, token, form)
		},
		Success: "Estudiante registrado correctamente.",
	})
	return outcome(res, nil)
}

// UpdateStudent edits a student.
func (s *DirectoryService) UpdateStudent(ctx context.Context, sid string, id models.ID, form dto.StudentForm) (*Outcome, error) {
	token, err := s.token(ctx, sid, "update_student")
	if err != nil {
		return nil, err
	}
	reg := registry.Students(s.api, token, s.logger)
	var updated *models.Student
	res := s.dispatch.Dispatch(ctx, sid, dispatcher.Action{
		Kind:    dispatcher.KindUpdate,
		Name:    "update_student",
		Payload: form,
		Do: func(ctx context.Context, _ string) (string, error) {
			st, msg, err := reg.Update(ctx, id, form)
			updated = st
			return msg, err
		},
		Success: "Estudiante actualizado correctamente.",
	})
	return outcome(res, updated)
}

// DeleteStudent removes a student and returns the remaining ones.
func (s *DirectoryService) DeleteStudent(ctx context.Context, sid string, id models.ID) (*Outcome, error) {
	token, err := s.token(ctx, sid, "delete_student")
	if err != nil {
		return nil, err
	}
	reg := registry.Students(s.api, token, s.logger)
	if err := reg.FetchAll(ctx, ""); err != nil {
		s.logger.Warn("deleting without a loaded student list", zap.Error(err))
	}
	res := s.dispatch.Dispatch(ctx, sid, dispatcher.Action{
		Kind:       dispatcher.KindDelete,
		Name:       "delete_student",
		Optimistic: dispatcher.RemoveOptimistically(reg, id),
		Do: func(ctx context.Context, token string) (string, error) {
			return s.api.DeleteStudent(ctx, token, id)
		},
		Success: "Estudiante eliminado correctamente.",
	})
	return outcome(res, reg.Items())
}

// Teachers lists every teacher.
func (s *DirectoryService) Teachers(ctx context.Context, sid string) ([]models.Teacher, error) {
	token, err := s.token(ctx, sid, "list_teachers")
	if err != nil {
		return nil, err
	}
	reg := registry.Teachers(s.api, token, s.logger)
	if err := reg.FetchAll(ctx, ""); err != nil {
		return nil, err
	}
	return reg.Items(), nil
}

// Teacher returns one teacher.
func (s *DirectoryService) Teacher(ctx context.Context, sid string, id models.ID) (*models.Teacher, error) {
	token, err := s.token(ctx, sid, "get_teacher")
	if err != nil {
		return nil, err
	}
	return s.api.Teacher(ctx, token, id)
}

// CreateTeacher registers a teacher account.
func (s *DirectoryService) CreateTeacher(ctx context.Context, sid string, form dto.TeacherForm) (*Outcome, error) {
	form.TipoUsuario = models.RoleTeacher
	res := s.dispatch.Dispatch(ctx, sid, dispatcher.Action{
		Kind:    dispatcher.KindCreate,
		Name:    "create_teacher",
		Payload: form,
		Do: func(ctx context.Context, token string) (string, error) {
			return s.api.Register(ctx, token, form)
		},
		Success: "Profesor registrado correctamente.",
	})
	return outcome(res, nil)
}

// UpdateTeacher edits a teacher.
func (s *DirectoryService) UpdateTeacher(ctx context.Context, sid string, id models.ID, form dto.TeacherForm) (*Outcome, error) {
	token, err := s.token(ctx, sid, "update_teacher")
	if err != nil {
		return nil, err
	}
	reg := registry.Teachers(s.api, token, s.logger)
	var updated *models.Teacher
	res := s.dispatch.Dispatch(ctx, sid, dispatcher.Action{
		Kind:    dispatcher.KindUpdate,
		Name:    "update_teacher",
		Payload: form,
		Do: func(ctx context.Context, _ string) (string, error) {
			t, msg, err := reg.Update(ctx, id, form)
			updated = t
			return msg, err
		},
		Success: "Profesor actualizado correctamente.",
	})
	return outcome(res, updated)
}

// DeleteTeacher removes a teacher and returns the remaining ones.
func (s *DirectoryService) DeleteTeacher(ctx context.Context, sid string, id models.ID) (*Outcome, error) {
	token, err := s.token(ctx, sid, "delete_teacher")
	if err != nil {
		return nil, err
	}
	reg := registry.Teachers(s.api, token, s.logger)
	if err := reg.FetchAll(ctx, ""); err != nil {
		s.logger.Warn("deleting without a loaded teacher list", zap.Error(err))
	}
	res := s.dispatch.Dispatch(ctx, sid, dispatcher.Action{
		Kind:       dispatcher.KindDelete,
		Name:       "delete_teacher",
		Optimistic: dispatcher.RemoveOptimistically(reg, id),
		Do: func(ctx context.Context, token string) (string, error) {
			return s.api.DeleteTeacher(ctx, token, id)
		},
		Success: "Profesor eliminado correctamente.",
	})
	return outcome(res, reg.Items())
}

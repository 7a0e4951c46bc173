package service

import (
	"context"

	"github.com/noah-isme/educa-portal/internal/cascade"
	"github.com/noah-isme/educa-portal/internal/dispatcher"
	"github.com/noah-isme/educa-portal/internal/dto"
	"github.com/noah-isme/educa-portal/internal/models"
	"github.com/noah-isme/educa-portal/internal/registry"
	appErrors "github.com/noah-isme/educa-portal/pkg/errors"
)

// ScheduleService backs the schedule viewer and the schedule editor.
type ScheduleService struct {
	base
}

// NewScheduleService constructs a ScheduleService.
func NewScheduleService(deps Deps) *ScheduleService {
	return &ScheduleService{base: newBase(deps, "schedule")}
}

// Viewer loads every course with its sections and schedules and narrows
// the selection to courseID and sectionID. A section without schedule
// shows the explicit "none" panel.
func (s *ScheduleService) Viewer(ctx context.Context, sid string, courseID, sectionID models.ID) (*CascadeView, error) {
	token, err := s.token(ctx, sid, "schedule_viewer")
	if err != nil {
		return nil, err
	}
	reg := registry.ScheduledCourses(s.api, token, s.logger)
	if err := reg.FetchAll(ctx, ""); err != nil {
		return nil, err
	}
	courses := reg.Items()
	byCourse := make(map[models.ID][]models.Section, len(courses))
	for i, course := range courses {
		byCourse[course.ID] = course.Secciones
		courses[i].Secciones = nil
	}

	c := cascade.New(cascade.Loaders{Sections: cascade.Preloaded(byCourse)}, s.logger)
	if err := selectPath(ctx, c, courseID, sectionID); err != nil {
		return nil, err
	}
	return &CascadeView{Cursos: courses, Seleccion: c.Snapshot()}, nil
}

// Update replaces the schedule of a section.
func (s *ScheduleService) Update(ctx context.Context, sid string, courseID, sectionID models.ID, form dto.ScheduleForm) (*Outcome, error) {
	form.CursoID = courseID.String()
	form.SeccionID = sectionID.String()
	if err := s.validator.Struct(form); err != nil {
		return nil, err
	}
	if !form.Schedule().Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "El horario no es válido.")
	}
	var updated *models.Schedule
	res := s.dispatch.Dispatch(ctx, sid, dispatcher.Action{
		Kind: dispatcher.KindUpdate,
		Name: "update_schedule",
		Do: func(ctx context.Context, token string) (string, error) {
			schedule, msg, err := s.api.UpdateSchedule(ctx, token, courseID, sectionID, form)
			updated = schedule
			return msg, err
		},
		Success: "Horario actualizado correctamente.",
	})
	return outcome(res, updated)
}

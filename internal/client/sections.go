package client

import (
	"context"
	"net/http"

	"github.com/noah-isme/educa-portal/internal/dto"
	"github.com/noah-isme/educa-portal/internal/models"
)

// Sections lists the sections of a course.
func (c *Client) Sections(ctx context.Context, token string, courseID models.ID) ([]models.Section, error) {
	var out []models.Section
	_, err := c.fetch(ctx, call{op: "sections.list", method: http.MethodGet, path: "/api/secciones/" + courseID.String(), token: token}, &out)
	return out, err
}

// SectionStudents lists the roster of a section.
func (c *Client) SectionStudents(ctx context.Context, token string, sectionID models.ID) ([]models.Student, error) {
	var out []models.Student
	path := "/api/secciones/" + sectionID.String() + "/students"
	_, err := c.fetch(ctx, call{op: "sections.students", method: http.MethodGet, path: path, token: token}, &out)
	return out, err
}

// TeacherSections lists the sections owned by the logged in teacher, with
// rosters and schedules embedded.
func (c *Client) TeacherSections(ctx context.Context, token string) ([]models.Section, error) {
	var out []models.Section
	_, err := c.fetch(ctx, call{op: "sections.teacher", method: http.MethodGet, path: "/api/secciones/teacher/", token: token}, &out)
	return out, err
}

type sectionUpdate struct {
	Codigo     string `json:"codigo"`
	Capacidad  int    `json:"capacidad"`
	Salon      string `json:"salon"`
	ProfesorID string `json:"profesorId"`
}

// CreateSection creates a section; form.CursoID names the owning course.
func (c *Client) CreateSection(ctx context.Context, token string, form dto.SectionForm) (*models.Section, string, error) {
	var out models.Section
	msg, err := c.fetch(ctx, call{op: "sections.create", method: http.MethodPost, path: "/api/secciones/", token: token, body: form}, &out)
	if err != nil {
		return nil, "", err
	}
	return &out, msg, nil
}

// UpdateSection edits a section.
func (c *Client) UpdateSection(ctx context.Context, token string, id models.ID, form dto.SectionForm) (*models.Section, string, error) {
	body := sectionUpdate{Codigo: form.Codigo, Capacidad: form.Capacidad, Salon: form.Salon, ProfesorID: form.ProfesorID}
	var out models.Section
	msg, err := c.fetch(ctx, call{op: "sections.update", method: http.MethodPatch, path: "/api/secciones/" + id.String(), token: token, body: body}, &out)
	if err != nil {
		return nil, "", err
	}
	return &out, msg, nil
}

// PassStudent marks a student as approved in a section.
func (c *Client) PassStudent(ctx context.Context, token string, sectionID, studentID models.ID) (string, error) {
	return c.gradeStudent(ctx, token, sectionID, studentID, "aprobar")
}

// FailStudent marks a student as failed in a section.
func (c *Client) FailStudent(ctx context.Context, token string, sectionID, studentID models.ID) (string, error) {
	return c.gradeStudent(ctx, token, sectionID, studentID, "reprobar")
}

func (c *Client) gradeStudent(ctx context.Context, token string, sectionID, studentID models.ID, verb string) (string, error) {
	path := "/api/secciones/" + sectionID.String() + "/student/" + studentID.String() + "/" + verb
	resp, err := c.do(ctx, call{op: "sections." + verb, method: http.MethodGet, path: path, token: token})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

type scheduleUpdate struct {
	FechaInicio    string           `json:"fechaInicio"`
	FechaFinal     string           `json:"fechaFinal"`
	HoraInicio     string           `json:"horaInicio"`
	HoraFinal      string           `json:"horaFinal"`
	DiasRepeticion []models.Weekday `json:"diasRepeticion"`
	Tipo           models.Modality  `json:"tipo"`
	CursoID        string           `json:"cursoId"`
	SeccionID      string           `json:"seccionId"`
	Salon          string           `json:"salon,omitempty"`
	Capacidad      *int             `json:"capacidad,omitempty"`
}

// UpdateSchedule replaces the schedule attached to a section. Dates go out
// as RFC 3339 timestamps at midnight UTC.
func (c *Client) UpdateSchedule(ctx context.Context, token string, courseID, sectionID models.ID, form dto.ScheduleForm) (*models.Schedule, string, error) {
	body := scheduleUpdate{
		FechaInicio:    isoDate(form.FechaInicio),
		FechaFinal:     isoDate(form.FechaFin),
		HoraInicio:     form.HoraInicio,
		HoraFinal:      form.HoraFin,
		DiasRepeticion: form.DiasRepeticion,
		Tipo:           form.Tipo,
		CursoID:        courseID.String(),
		SeccionID:      sectionID.String(),
		Salon:          form.Salon,
		Capacidad:      form.Capacidad,
	}
	path := "/api/schedules/" + courseID.String() + "/secciones/" + sectionID.String() + "/horario"
	var out models.Schedule
	msg, err := c.fetch(ctx, call{op: "schedules.update", method: http.MethodPatch, path: path, token: token, body: body}, &out)
	if err != nil {
		return nil, "", err
	}
	return &out, msg, nil
}

func isoDate(raw string) string {
	t, err := models.ParseDate(raw)
	if err != nil {
		return raw
	}
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

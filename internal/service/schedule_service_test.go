package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/educa-portal/internal/cascade"
	"github.com/noah-isme/educa-portal/internal/dto"
	"github.com/noah-isme/educa-portal/internal/models"
	appErrors "github.com/noah-isme/educa-portal/pkg/errors"
)

func scheduledCourses() []map[string]interface{} {
	return []map[string]interface{}{
		{
			"id": 7, "nombre": "Programación", "codigo": "PROG101",
			"secciones": []map[string]interface{}{
				{"id": 1, "codigo": "PROG101-A", "capacidad": 30, "cursoId": 7, "horario": map[string]interface{}{
					"id": 3, "fechaInicio": "2024-01-10", "fechaFinal": "2024-05-10",
					"horaInicio": "08:00", "horaFinal": "10:00", "dias": []string{"lunes", "miercoles"},
				}},
				{"id": 2, "codigo": "PROG101-B", "capacidad": 20, "cursoId": 7},
			},
		},
	}
}

func TestViewerLoadedSchedule(t *testing.T) {
	api := newFakeAPI()
	api.reply(http.MethodGet, "/api/courses/schedules/", http.StatusOK, "", scheduledCourses())
	svc := NewScheduleService(newDeps(t, api, models.RoleAdmin))

	view, err := svc.Viewer(context.Background(), testSID, 7, 1)
	require.NoError(t, err)
	assert.Empty(t, view.Cursos[0].Secciones)
	assert.Equal(t, cascade.ScheduleLoaded, view.Seleccion.SchedulePanel)
	require.NotNil(t, view.Seleccion.Schedule)
	assert.Equal(t, "08:00", view.Seleccion.Schedule.HoraInicio)
}

func TestViewerSectionWithoutSchedule(t *testing.T) {
	api := newFakeAPI()
	api.reply(http.MethodGet, "/api/courses/schedules/", http.StatusOK, "", scheduledCourses())
	svc := NewScheduleService(newDeps(t, api, models.RoleAdmin))

	view, err := svc.Viewer(context.Background(), testSID, 7, 2)
	require.NoError(t, err)
	assert.Equal(t, cascade.ScheduleNone, view.Seleccion.SchedulePanel)
	assert.Nil(t, view.Seleccion.Schedule)
}

func TestUpdateScheduleRejectsEqualTimes(t *testing.T) {
	api := newFakeAPI()
	svc := NewScheduleService(newDeps(t, api, models.RoleAdmin))

	_, err := svc.Update(context.Background(), testSID, 7, 1, dto.ScheduleForm{
		FechaInicio:    "2024-01-10",
		FechaFin:       "2024-05-10",
		HoraInicio:     "08:00",
		HoraFin:        "08:00",
		DiasRepeticion: []models.Weekday{models.Monday},
		Tipo:           models.ModalityInPerson,
	})
	require.Error(t, err)
	assert.Contains(t, appErrors.FromError(err).Fields, "horaFin")
	assert.Zero(t, api.callCount())
}

func TestUpdateScheduleSendsTimestamps(t *testing.T) {
	api := newFakeAPI()
	api.reply(http.MethodPatch, "/api/schedules/7/secciones/1/horario", http.StatusOK, "Horario actualizado", nil)
	svc := NewScheduleService(newDeps(t, api, models.RoleAdmin))

	out, err := svc.Update(context.Background(), testSID, 7, 1, dto.ScheduleForm{
		FechaInicio:    "2024-01-10",
		FechaFin:       "2024-05-10",
		HoraInicio:     "08:00",
		HoraFin:        "10:00",
		DiasRepeticion: []models.Weekday{models.Monday, models.Friday},
		Tipo:           models.ModalityVirtual,
		Capacidad:      intPtr(25),
	})
	require.NoError(t, err)
	assert.Equal(t, "Horario actualizado", out.Message)
	sent := api.sent(t, http.MethodPatch, "/api/schedules/7/secciones/1/horario")
	assert.Equal(t, "2024-01-10T00:00:00.000Z", sent["fechaInicio"])
	assert.Equal(t, "1", sent["seccionId"])
}

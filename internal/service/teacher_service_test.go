package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/educa-portal/internal/cascade"
	"github.com/noah-isme/educa-portal/internal/models"
	appErrors "github.com/noah-isme/educa-portal/pkg/errors"
)

func teacherSections() []map[string]interface{} {
	return []map[string]interface{}{
		{
			"id": 1, "codigo": "PROG101-A", "capacidad": 30, "estudiantesInscritos": 25, "cursoId": 7,
			"estudiantes": []map[string]interface{}{
				{"id": 10, "nombre": "Ana", "aprobado": "Matriculado"},
				{"id": 11, "nombre": "Luis", "aprobado": "Matriculado"},
			},
		},
	}
}

func TestDashboardCapacity(t *testing.T) {
	api := newFakeAPI()
	api.reply(http.MethodGet, "/api/secciones/teacher/", http.StatusOK, "", teacherSections())
	svc := NewTeacherService(newDeps(t, api, models.RoleTeacher))

	snap, err := svc.Dashboard(context.Background(), testSID, 1)
	require.NoError(t, err)
	assert.Equal(t, cascade.SectionSelected, snap.State)
	assert.Zero(t, snap.CourseID)
	require.NotNil(t, snap.Capacity)
	assert.Equal(t, cascade.Capacity{Inscritos: 25, Disponibles: 5}, *snap.Capacity)
	assert.Len(t, snap.Students, 2)
	assert.Equal(t, cascade.ScheduleNone, snap.SchedulePanel)
}

func TestPassStudentChangesOnlyThatStudent(t *testing.T) {
	api := newFakeAPI()
	api.reply(http.MethodGet, "/api/secciones/teacher/", http.StatusOK, "", teacherSections())
	api.reply(http.MethodGet, "/api/secciones/1/student/10/aprobar", http.StatusOK, "ok", nil)
	svc := NewTeacherService(newDeps(t, api, models.RoleTeacher))

	out, err := svc.PassStudent(context.Background(), testSID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, "Estudiante aprobado.", out.Notice.Message)
	roster := out.Data.([]models.Student)
	require.Len(t, roster, 2)
	assert.Equal(t, models.StudentPassed, roster[0].Status())
	assert.Equal(t, models.StudentEnrolled, roster[1].Status())
}

func TestFailStudentUsesFixedFailureMessage(t *testing.T) {
	api := newFakeAPI()
	api.reply(http.MethodGet, "/api/secciones/teacher/", http.StatusOK, "", teacherSections())
	api.reply(http.MethodGet, "/api/secciones/1/student/10/reprobar", http.StatusBadRequest, "error interno", nil)
	svc := NewTeacherService(newDeps(t, api, models.RoleTeacher))

	_, err := svc.FailStudent(context.Background(), testSID, 1, 10)
	require.Error(t, err)
	assert.Equal(t, "No se ha podido reprobar al estudiante. Vuelva a Intentarlo.", appErrors.UserMessage(err))
}

func TestGradeUnknownSection(t *testing.T) {
	api := newFakeAPI()
	api.reply(http.MethodGet, "/api/secciones/teacher/", http.StatusOK, "", teacherSections())
	svc := NewTeacherService(newDeps(t, api, models.RoleTeacher))

	_, err := svc.PassStudent(context.Background(), testSID, 42, 10)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/educa-portal/internal/dto"
	"github.com/noah-isme/educa-portal/internal/models"
	appErrors "github.com/noah-isme/educa-portal/pkg/errors"
)

func TestCreateSectionPrefixesCourseCode(t *testing.T) {
	api := newFakeAPI()
	api.reply(http.MethodGet, "/api/courses/7", http.StatusOK, "", map[string]interface{}{"id": 7, "codigo": "PROG101"})
	api.reply(http.MethodGet, "/api/secciones/7", http.StatusOK, "", []map[string]interface{}{{"id": 1, "codigo": "PROG101-A"}})
	api.reply(http.MethodPost, "/api/secciones/", http.StatusCreated, "Sección creada", map[string]interface{}{"id": 2, "codigo": "PROG101-B"})
	svc := NewCatalogService(newDeps(t, api, models.RoleAdmin))

	out, err := svc.CreateSection(context.Background(), testSID, 7, dto.SectionForm{Codigo: "B", Capacidad: 30, Salon: "B1", ProfesorID: "3"})
	require.NoError(t, err)
	assert.Equal(t, "Sección creada", out.Message)
	sent := api.sent(t, http.MethodPost, "/api/secciones/")
	assert.Equal(t, "PROG101-B", sent["codigo"])
	assert.Equal(t, "7", sent["cursoId"])
}

func TestCreateSectionRejectsDuplicateCode(t *testing.T) {
	api := newFakeAPI()
	api.reply(http.MethodGet, "/api/courses/7", http.StatusOK, "", map[string]interface{}{"id": 7, "codigo": "PROG101"})
	api.reply(http.MethodGet, "/api/secciones/7", http.StatusOK, "", []map[string]interface{}{{"id": 1, "codigo": "PROG101-A"}})
	svc := NewCatalogService(newDeps(t, api, models.RoleAdmin))

	_, err := svc.CreateSection(context.Background(), testSID, 7, dto.SectionForm{Codigo: "a", Capacidad: 30, Salon: "A1", ProfesorID: "3"})
	require.Error(t, err)
	assert.False(t, api.called(http.MethodPost, "/api/secciones/"))
	assert.NotEqual(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestCreateSectionRequiresCapacity(t *testing.T) {
	api := newFakeAPI()
	svc := NewCatalogService(newDeps(t, api, models.RoleAdmin))

	_, err := svc.CreateSection(context.Background(), testSID, 7, dto.SectionForm{Codigo: "A", Salon: "A1", ProfesorID: "3"})
	require.Error(t, err)
	assert.Contains(t, appErrors.FromError(err).Fields, "capacidad")
	assert.Zero(t, api.callCount())
}

func TestDeleteCourseRestoresOnRejection(t *testing.T) {
	api := newFakeAPI()
	api.reply(http.MethodGet, "/api/courses/", http.StatusOK, "", []map[string]interface{}{{"id": 1}, {"id": 2}})
	api.reply(http.MethodDelete, "/api/courses/1", http.StatusBadRequest, "El curso tiene secciones", nil)
	svc := NewCatalogService(newDeps(t, api, models.RoleAdmin))

	_, err := svc.DeleteCourse(context.Background(), testSID, 1)
	require.Error(t, err)
	assert.Equal(t, "El curso tiene secciones", appErrors.UserMessage(err))
}

func TestSectionPickerSuggestsCode(t *testing.T) {
	api := newFakeAPI()
	api.reply(http.MethodGet, "/api/courses/7", http.StatusOK, "", map[string]interface{}{"id": 7, "codigo": "PROG101"})
	api.reply(http.MethodGet, "/api/teachers/", http.StatusOK, "", []map[string]interface{}{{"id": 3, "nombre": "Marta"}})
	svc := NewCatalogService(newDeps(t, api, models.RoleAdmin))

	picker, err := svc.SectionPicker(context.Background(), testSID, 7)
	require.NoError(t, err)
	assert.Equal(t, "PROG101-", picker.SuggestedCode)
	assert.Len(t, picker.Teachers, 1)
}

package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/educa-portal/internal/models"
)

func TestScheduleFormCarriesInvariants(t *testing.T) {
	form := ScheduleForm{
		FechaInicio:    "2024-01-10",
		FechaFin:       "2024-03-10",
		HoraInicio:     "08:00",
		HoraFin:        "10:00",
		DiasRepeticion: []models.Weekday{models.Monday, models.Wednesday},
		Tipo:           models.ModalityInPerson,
	}
	assert.True(t, form.Schedule().Valid())

	form.HoraFin = "08:00"
	assert.False(t, form.Schedule().Valid())

	form.HoraFin = "10:00"
	form.DiasRepeticion = nil
	assert.False(t, form.Schedule().Valid())
}

func TestSectionFormCarriesCapacity(t *testing.T) {
	form := SectionForm{Codigo: "PROG101-A", Capacidad: 30, Salon: "A1", ProfesorID: "3"}
	assert.True(t, form.Section().Valid())

	form.Capacidad = 0
	assert.False(t, form.Section().Valid())
}

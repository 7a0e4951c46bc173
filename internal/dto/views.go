package dto

import "github.com/noah-isme/educa-portal/internal/models"

// CoursePicker feeds the section form: the course plus the teachers that
// may own a section of it.
type CoursePicker struct {
	Course        *models.Course   `json:"course,omitempty"`
	SuggestedCode string           `json:"suggestedCode"`
	Teachers      []models.Teacher `json:"teachers"`
}

// StudentEnrollView backs the student enrollment page for one course.
type StudentEnrollView struct {
	CourseID models.ID        `json:"cursoId"`
	Sections []models.Section `json:"secciones"`
	Banks    []string         `json:"bancos"`
}

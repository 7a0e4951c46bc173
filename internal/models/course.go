package models

import "encoding/json"

// CourseStatus is the server-maintained soft state of a course.
type CourseStatus string

const (
	CourseActive   CourseStatus = "activo"
	CourseInactive CourseStatus = "inactivo"
)

// Course is a top-level offering.
type Course struct {
	ID                ID           `json:"id"`
	Nombre            string       `json:"nombre"`
	Codigo            string       `json:"codigo"`
	Categoria         string       `json:"categoria,omitempty"`
	Estado            CourseStatus `json:"estado,omitempty"`
	Matricula         int          `json:"matricula"`
	CantidadSecciones int          `json:"cantidadSecciones"`
	Descripcion       string       `json:"descripcion,omitempty"`
	ProfesorID        ID           `json:"profesorId,omitempty"`
	Secciones         []Section    `json:"secciones,omitempty"`
}

// CourseID returns the course identifier; used as the registry key.
func CourseID(c Course) ID { return c.ID }

// StudentCourse is a course as listed for students. Inscrito is a boolean on
// the catalog endpoint and a status string on the enrolled one, so it is
// passed through untouched.
type StudentCourse struct {
	ID          ID              `json:"id"`
	Nombre      string          `json:"nombre"`
	Codigo      string          `json:"codigo"`
	Descripcion string          `json:"descripcion"`
	Categoria   string          `json:"categoria"`
	Inscrito    json.RawMessage `json:"inscrito,omitempty"`
}

// StudentCourseID returns the course identifier.
func StudentCourseID(c StudentCourse) ID { return c.ID }

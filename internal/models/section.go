package models

import "strings"

// Section is a scheduled instance of a course.
type Section struct {
	ID                   ID        `json:"id"`
	Codigo               string    `json:"codigo"`
	Nombre               string    `json:"nombre,omitempty"`
	Capacidad            int       `json:"capacidad"`
	Salon                string    `json:"salon"`
	CursoID              ID        `json:"cursoId"`
	ProfesorID           ID        `json:"profesorId"`
	HorarioID            *ID       `json:"horarioId,omitempty"`
	Horario              *Schedule `json:"horario,omitempty"`
	EstudiantesInscritos *int      `json:"estudiantesInscritos,omitempty"`
	Estudiantes          []Student `json:"estudiantes,omitempty"`
}

// SectionID returns the section identifier.
func SectionID(s Section) ID { return s.ID }

// Valid reports whether the section satisfies capacity >= 1.
func (s Section) Valid() bool {
	return s.Capacidad >= 1
}

// HasSchedule reports whether a schedule is attached, embedded or by id.
func (s Section) HasSchedule() bool {
	return s.Horario != nil || (s.HorarioID != nil && !s.HorarioID.IsZero())
}

// SectionCode derives a section code from its course code, e.g. PROG101-A.
func SectionCode(courseCode, suffix string) string {
	courseCode = strings.TrimSpace(courseCode)
	suffix = strings.TrimSpace(suffix)
	if suffix == "" {
		return courseCode + "-"
	}
	if strings.HasPrefix(suffix, courseCode+"-") {
		return suffix
	}
	return courseCode + "-" + strings.TrimPrefix(suffix, "-")
}

// UniqueSectionCode reports whether code is unused among the course sections,
// ignoring the section identified by except.
func UniqueSectionCode(sections []Section, code string, except ID) bool {
	for _, s := range sections {
		if s.ID != except && strings.EqualFold(s.Codigo, code) {
			return false
		}
	}
	return true
}

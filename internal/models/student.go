package models

// StudentStatus is the outcome a teacher records for a student in a section.
type StudentStatus string

const (
	StudentEnrolled StudentStatus = "Matriculado"
	StudentPassed   StudentStatus = "Aprobado"
	StudentFailed   StudentStatus = "Reprobado"
)

// Student is a learner as served by /api/students and section rosters.
type Student struct {
	ID                 ID            `json:"id"`
	Nombre             string        `json:"nombre"`
	Apellido           string        `json:"apellido"`
	Cedula             string        `json:"cedula"`
	Email              string        `json:"email"`
	NumeroTelefono     string        `json:"numeroTelefono"`
	FechaNacimiento    string        `json:"fechaNacimiento"`
	Direccion          string        `json:"direccion,omitempty"`
	PreguntaSeguridad  string        `json:"preguntaSeguridad,omitempty"`
	RespuestaSeguridad string        `json:"respuestaSeguridad,omitempty"`
	SeccionID          ID            `json:"seccionId,omitempty"`
	Aprobado           StudentStatus `json:"aprobado,omitempty"`
	Estado             StudentStatus `json:"estado,omitempty"`
}

// StudentID returns the student identifier.
func StudentID(s Student) ID { return s.ID }

// Status returns the displayed outcome, whichever field the endpoint used.
func (s Student) Status() StudentStatus {
	if s.Aprobado != "" {
		return s.Aprobado
	}
	return s.Estado
}

// WithStatus returns a copy of s showing status.
func (s Student) WithStatus(status StudentStatus) Student {
	s.Aprobado = status
	if s.Estado != "" {
		s.Estado = status
	}
	return s
}

package models

import "strings"

// EnrollmentStatus is the approval state of an enrollment.
type EnrollmentStatus string

const (
	EnrollmentPending  EnrollmentStatus = "pendiente"
	EnrollmentApproved EnrollmentStatus = "aprobado"
	EnrollmentRejected EnrollmentStatus = "rechazado"
)

// Banks accepted as payment origin.
var Banks = []string{"Banco Mercantil", "Banco de Venezuela", "Banesco"}

// Enrollment is a student's payment-backed request to join a section.
type Enrollment struct {
	ID               ID               `json:"id"`
	ReferenciaPago   string           `json:"referenciaPago"`
	FechaExpedicion  string           `json:"fechaExpedicion"`
	Banco            string           `json:"banco"`
	Monto            float64          `json:"monto"`
	Estado           EnrollmentStatus `json:"estado"`
	CedulaEstudiante string           `json:"cedulaEstudiante,omitempty"`
	CodigoSeccion    string           `json:"codigoSeccion,omitempty"`
	SeccionID        ID               `json:"seccionId,omitempty"`
	EstudianteID     ID               `json:"estudianteId,omitempty"`
	NombreCurso      string           `json:"nombreCurso,omitempty"`
}

// EnrollmentID returns the enrollment identifier.
func EnrollmentID(e Enrollment) ID { return e.ID }

// Approved reports whether the enrollment was approved. The API is not
// consistent about casing.
func (e Enrollment) Approved() bool {
	return EnrollmentStatus(strings.ToLower(string(e.Estado))) == EnrollmentApproved
}

// CanIssueCertificate reports whether a certificate may be issued for the
// student in the section: an approved enrollment must exist for that pair.
func CanIssueCertificate(enrollments []Enrollment, student Student, section Section) bool {
	for _, e := range enrollments {
		if !e.Approved() {
			continue
		}
		sameSection := (!e.SeccionID.IsZero() && e.SeccionID == section.ID) ||
			(e.CodigoSeccion != "" && e.CodigoSeccion == section.Codigo)
		sameStudent := (!e.EstudianteID.IsZero() && e.EstudianteID == student.ID) ||
			(e.CedulaEstudiante != "" && e.CedulaEstudiante == student.Cedula)
		if sameSection && sameStudent {
			return true
		}
	}
	return false
}

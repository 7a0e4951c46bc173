package models

// CertificateFilename is the name the downloaded PDF is exposed under.
const CertificateFilename = "Certificado.pdf"

// Certificate is a completion record for an approved student in a section.
type Certificate struct {
	ID               ID     `json:"id"`
	Titulo           string `json:"titulo"`
	Descripcion      string `json:"descripcion,omitempty"`
	FechaExpedicion  string `json:"fechaExpedicion"`
	EstudianteID     ID     `json:"estudianteId,omitempty"`
	SeccionID        ID     `json:"seccionId,omitempty"`
	CodigoSeccion    string `json:"codigoSeccion,omitempty"`
	CedulaEstudiante string `json:"cedulaEstudiante,omitempty"`
	NombreEstudiante string `json:"nombreEstudiante,omitempty"`
	NombreCurso      string `json:"nombreCurso,omitempty"`
}

// CertificateID returns the certificate identifier.
func CertificateID(c Certificate) ID { return c.ID }

// CertificateOverview is the body of GET /api/certificates/: every course,
// its sections keyed by course id, rosters keyed by section id and all
// certificates.
type CertificateOverview struct {
	Cursos       []Course             `json:"cursos"`
	Secciones    map[string][]Section `json:"secciones"`
	Estudiantes  map[string][]Student `json:"estudiantes"`
	Certificados []Certificate        `json:"certificados"`
}

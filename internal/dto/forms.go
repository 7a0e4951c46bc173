package dto

import "github.com/noah-isme/educa-portal/internal/models"

// EnrollmentForm is a student's payment-backed enrollment request.
type EnrollmentForm struct {
	ReferenciaPago  string `json:"referenciaPago" validate:"required,startswith=#"`
	FechaExpedicion string `json:"fechaExpedicion" validate:"required"`
	Banco           string `json:"banco" validate:"required,bank"`
	Monto           string `json:"monto" validate:"required,positive_amount"`
	SeccionID       string `json:"seccionId" validate:"required"`
	CursoID         string `json:"cursoId"`
}

// ScheduleForm edits the schedule attached to a section. Dates accept
// YYYY-MM-DD or RFC 3339, times are 24-hour HH:MM.
type ScheduleForm struct {
	CursoID        string           `json:"cursoId"`
	SeccionID      string           `json:"seccionId"`
	FechaInicio    string           `json:"fechaInicio" validate:"required,iso_date"`
	FechaFin       string           `json:"fechaFin" validate:"required,iso_date"`
	HoraInicio     string           `json:"horaInicio" validate:"required,clock"`
	HoraFin        string           `json:"horaFin" validate:"required,clock"`
	DiasRepeticion []models.Weekday `json:"diasRepeticion" validate:"required,min=1,dive,weekday"`
	Tipo           models.Modality  `json:"tipo" validate:"required,oneof=Presencial Virtual"`
	Salon          string           `json:"salon,omitempty"`
	Capacidad      *int             `json:"capacidad,omitempty" validate:"omitempty,gt=0"`
}

// Schedule returns the schedule the form describes.
func (f ScheduleForm) Schedule() models.Schedule {
	return models.Schedule{
		FechaInicio:    f.FechaInicio,
		FechaFin:       f.FechaFin,
		HoraInicio:     f.HoraInicio,
		HoraFin:        f.HoraFin,
		Tipo:           f.Tipo,
		DiasRepeticion: f.DiasRepeticion,
	}
}

// ProfileForm is the "change my data" form.
type ProfileForm struct {
	Nombre             string `json:"nombre" validate:"required,min=2,max=50,person_name"`
	Apellido           string `json:"apellido" validate:"required,min=2,max=50,person_name"`
	Email              string `json:"email" validate:"required,email"`
	Cedula             string `json:"cedula" validate:"required,min=6,max=20,number"`
	PreguntaSeguridad  string `json:"preguntaSeguridad" validate:"required,min=10,max=255"`
	RespuestaSeguridad string `json:"respuestaSeguridad" validate:"required,min=2,max=255"`
	FechaNacimiento    string `json:"fechaNacimiento" validate:"required,calendar_date,age_range"`
	Direccion          string `json:"direccion" validate:"required,min=5,max=255"`
	NumeroTelefono     string `json:"numeroTelefono" validate:"required,phone"`
}

// StudentForm edits a student from the admin directory.
type StudentForm struct {
	Nombre          string      `json:"nombre" validate:"required"`
	Apellido        string      `json:"apellido" validate:"required"`
	Cedula          string      `json:"cedula" validate:"required"`
	Email           string      `json:"email" validate:"required,email"`
	Direccion       string      `json:"direccion"`
	NumeroTelefono  string      `json:"numeroTelefono" validate:"omitempty,phone"`
	FechaNacimiento string      `json:"fechaNacimiento" validate:"omitempty,calendar_date,age_range"`
	TipoUsuario     models.Role `json:"tipoUsuario,omitempty"`
}

// StudentRegistration creates a student account.
type StudentRegistration struct {
	StudentForm
	Password string `json:"password" validate:"required"`
}

// TeacherForm creates or edits a teacher.
type TeacherForm struct {
	Nombre          string      `json:"nombre" validate:"required"`
	Apellido        string      `json:"apellido" validate:"required"`
	Cedula          string      `json:"cedula" validate:"required"`
	Email           string      `json:"email" validate:"required,email"`
	NumeroTelefono  string      `json:"numeroTelefono" validate:"omitempty,phone"`
	Direccion       string      `json:"direccion"`
	FechaNacimiento string      `json:"fechaNacimiento" validate:"omitempty,calendar_date,age_range"`
	Profesion       string      `json:"profesion" validate:"required"`
	TipoUsuario     models.Role `json:"tipoUsuario,omitempty"`
}

// SectionForm creates or edits a section. Codigo is prefixed with the course
// code when the section is created.
type SectionForm struct {
	Codigo     string `json:"codigo" validate:"required"`
	Capacidad  int    `json:"capacidad" validate:"required,min=1"`
	Salon      string `json:"salon" validate:"required"`
	ProfesorID string `json:"profesorId" validate:"required"`
	CursoID    string `json:"cursoId,omitempty"`
}

// Section returns the section the form describes.
func (f SectionForm) Section() models.Section {
	return models.Section{Codigo: f.Codigo, Capacidad: f.Capacidad, Salon: f.Salon}
}

// CourseForm creates or edits a course.
type CourseForm struct {
	Nombre      string `json:"nombre" validate:"required"`
	Codigo      string `json:"codigo" validate:"required"`
	Descripcion string `json:"descripcion,omitempty"`
	Categoria   string `json:"categoria,omitempty"`
	ProfesorID  string `json:"profesorId" validate:"required"`
}

// CertificateForm issues a certificate for a student in a section.
type CertificateForm struct {
	Titulo          string `json:"titulo" validate:"required,min=2"`
	Descripcion     string `json:"descripcion" validate:"required,min=10"`
	FechaExpedicion string `json:"fechaExpedicion" validate:"required,calendar_date"`
}

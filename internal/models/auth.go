package models

// Role is the cached user type that gates each portal view.
type Role string

const (
	RoleAdmin   Role = "administrador"
	RoleTeacher Role = "profesor"
	RoleStudent Role = "estudiante"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// LandingPath returns the dashboard a freshly logged in user is sent to.
func (r Role) LandingPath() string {
	switch r {
	case RoleStudent:
		return "/student/dashboard"
	case RoleTeacher:
		return "/teacher/dashboard"
	case RoleAdmin:
		return "/admin/dashboard"
	}
	return "/login"
}

// LoginResult is the data returned by POST /api/auth/login.
type LoginResult struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Nombre       string `json:"nombre"`
	TipoUsuario  Role   `json:"tipoUsuario"`
}

// RecoverTicket is returned by the first password recovery step.
type RecoverTicket struct {
	ID ID `json:"id"`
}

// SecurityQuestion is returned when resuming a recovery flow.
type SecurityQuestion struct {
	PreguntaSeguridad string `json:"preguntaSeguridad"`
}

// CurrentUser is the profile served by /api/users/current.
type CurrentUser struct {
	ID                 ID     `json:"id"`
	Nombre             string `json:"nombre"`
	Apellido           string `json:"apellido"`
	Cedula             string `json:"cedula"`
	Email              string `json:"email"`
	NumeroTelefono     string `json:"numeroTelefono"`
	FechaNacimiento    string `json:"fechaNacimiento"`
	Direccion          string `json:"direccion"`
	PreguntaSeguridad  string `json:"preguntaSeguridad"`
	RespuestaSeguridad string `json:"respuestaSeguridad"`
	TipoUsuario        Role   `json:"tipoUsuario,omitempty"`
}

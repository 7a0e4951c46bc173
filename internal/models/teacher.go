package models

// Teacher owns zero or more sections.
type Teacher struct {
	ID              ID     `json:"id"`
	Nombre          string `json:"nombre"`
	Apellido        string `json:"apellido"`
	Cedula          string `json:"cedula"`
	Email           string `json:"email"`
	NumeroTelefono  string `json:"numeroTelefono"`
	FechaNacimiento string `json:"fechaNacimiento"`
	Direccion       string `json:"direccion,omitempty"`
	Profesion       string `json:"profesion"`
}

// TeacherID returns the teacher identifier.
func TeacherID(t Teacher) ID { return t.ID }

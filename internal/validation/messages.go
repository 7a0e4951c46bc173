package validation

// tagMessages are the defaults for the custom tags.
var tagMessages = map[string]string{
	"clock":           "Formato de hora inválido. Use HH:MM.",
	"person_name":     "Solo puede contener letras y espacios.",
	"phone":           "El número de teléfono debe comenzar con un código de país (+XX) seguido de 424, 412, 414, 416 o 426, y luego 7 dígitos.",
	"bank":            "Seleccione un banco válido.",
	"positive_amount": "El monto debe ser un número positivo",
	"calendar_date":   "La fecha debe estar en formato YYYY-MM-DD.",
	"iso_date":        "La fecha no es válida.",
	"weekday":         "Día de repetición inválido.",
	"age_range":       "La edad debe estar entre 5 y 120 años.",
	"date_order":      "La fecha de inicio debe ser anterior o igual a la fecha de finalización.",
	"time_order":      "La hora de inicio debe ser anterior a la hora de finalización.",
}

// fieldMessages override the translator for a field and tag on any form.
var fieldMessages = map[string]string{
	"referenciaPago.required":   "La referencia de pago es requerida",
	"referenciaPago.startswith": "La referencia debe comenzar con #",
	"banco.required":            "El banco es requerido",
	"monto.required":            "El monto es requerido",
	"seccionId.required":        "Debe seleccionar una sección",

	"diasRepeticion.required": "Seleccione al menos un día de repetición.",
	"diasRepeticion.min":      "Seleccione al menos un día de repetición.",
	"tipo.required":           "La modalidad es requerida.",
	"tipo.oneof":              "La modalidad debe ser Presencial o Virtual.",
	"horaInicio.required":     "Formato de hora inválido. Use HH:MM.",
	"horaFin.required":        "Formato de hora inválido. Use HH:MM.",
	"capacidad.gt":            "La capacidad debe ser al menos 1",

	"nombre.min":                    "El nombre debe tener al menos 2 caracteres.",
	"nombre.max":                    "El nombre no puede tener más de 50 caracteres.",
	"nombre.person_name":            "El nombre solo puede contener letras y espacios.",
	"apellido.min":                  "El apellido debe tener al menos 2 caracteres.",
	"apellido.max":                  "El apellido no puede tener más de 50 caracteres.",
	"apellido.person_name":          "El apellido solo puede contener letras y espacios.",
	"email.email":                   "El correo electrónico no es válido.",
	"cedula.min":                    "La cédula debe tener al menos 6 caracteres.",
	"cedula.max":                    "La cédula no puede tener más de 20 caracteres.",
	"cedula.number":                 "La cédula solo puede contener números.",
	"preguntaSeguridad.min":         "La pregunta de seguridad debe tener al menos 10 caracteres.",
	"preguntaSeguridad.max":         "La pregunta de seguridad no puede tener más de 255 caracteres.",
	"respuestaSeguridad.min":        "La respuesta de seguridad debe tener al menos 2 caracteres.",
	"respuestaSeguridad.max":        "La respuesta de seguridad no puede tener más de 255 caracteres.",
	"fechaNacimiento.calendar_date": "La fecha de nacimiento debe tener el formato YYYY-MM-DD.",
	"direccion.min":                 "La dirección debe tener al menos 5 caracteres.",
	"direccion.max":                 "La dirección no puede tener más de 255 caracteres.",

	"codigo.required":    "El código es requerido",
	"capacidad.required": "La capacidad debe ser al menos 1",
	"capacidad.min":      "La capacidad debe ser al menos 1",
	"salon.required":     "El salón es requerido",

	"titulo.min":           "El título debe tener al menos 2 caracteres.",
	"titulo.required":      "El título debe tener al menos 2 caracteres.",
	"descripcion.min":      "La descripción debe tener al menos 10 caracteres.",
	"descripcion.required": "La descripción debe tener al menos 10 caracteres.",

	"newPassword.min":         "La contraseña debe tener al menos 8 caracteres.",
	"confirmPassword.eqfield": "Las contraseñas no coinciden.",
}

// formMessages take precedence where two forms word the same field
// differently. Keys are "<form type>.<field>.<tag>".
var formMessages = map[string]string{
	"EnrollmentForm.fechaExpedicion.required":  "La fecha de pago es requerida",
	"CourseForm.nombre.required":               "El nombre es requerido",
	"CourseForm.profesorId.required":           "El profesor es requerido",
	"SectionForm.profesorId.required":          "Debe seleccionar un profesor",
	"CertificateForm.fechaExpedicion.required": "La fecha debe estar en formato YYYY-MM-DD.",
	"ProfileForm.nombre.required":              "El nombre debe tener al menos 2 caracteres.",
	"ProfileForm.apellido.required":            "El apellido debe tener al menos 2 caracteres.",
}

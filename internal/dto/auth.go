package dto

// LoginForm exchanges credentials for a session.
type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse tells the browser where to land after logging in.
type LoginResponse struct {
	Name     string `json:"name"`
	UserType string `json:"userType"`
	Redirect string `json:"redirect"`
}

// RecoverStartForm is the first password recovery step.
type RecoverStartForm struct {
	Email string `json:"email" validate:"required,email"`
}

// RecoverFinishForm answers the security question and sets a new password.
type RecoverFinishForm struct {
	Email              string `json:"email" validate:"required,email"`
	PreguntaSeguridad  string `json:"preguntaSeguridad" validate:"required"`
	RespuestaSeguridad string `json:"respuestaSeguridad"`
	NewPassword        string `json:"newPassword" validate:"required,min=8"`
	ConfirmPassword    string `json:"confirmPassword" validate:"required,min=8,eqfield=NewPassword"`
}

// RecoverState is kept between the two recovery steps.
type RecoverState struct {
	UserID            string `json:"recover"`
	Email             string `json:"email"`
	PreguntaSeguridad string `json:"preguntaSeguridad,omitempty"`
}

// ChangePasswordForm changes the password of the logged in user.
type ChangePasswordForm struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

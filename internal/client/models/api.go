package models

// Envelope is the response shape shared by every backend endpoint.
// A response is a failure when the HTTP status is not OK or Error is set,
// regardless of Data.
type Envelope[T any] struct {
	Data    T        `json:"data"`
	Message string   `json:"mensaje"`
	Error   bool     `json:"error,omitempty"`
	Errors  []string `json:"errores,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"contrasena"`
}

// TokenResponse is the data payload of login and refresh.
type TokenResponse struct {
	Token string `json:"token"`
}

type RegisterRequest struct {
	Name     string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"contrasena"`
	Phone    string `json:"telefono,omitempty"`
	Role     Role   `json:"rol,omitempty"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"contrasena"`
}

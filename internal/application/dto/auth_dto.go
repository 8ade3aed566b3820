package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// RegisterRequest entrada para registro: email (también username) y password en claro.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate aplica la forma del input y la regla de fortaleza configurada.
func (r RegisterRequest) Validate(passwordMinLen int) error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(passwordMinLen, 128)),
	)
}

// LoginRequest entrada para login, misma validación de forma que el registro.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate valida la forma del input (la fortaleza solo aplica al registro).
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// TokenResponse salida de registro/login exitoso.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

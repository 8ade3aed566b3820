package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidCredentials = errors.New("email o contraseña inválidos")
	ErrLockedOut          = errors.New("cuenta bloqueada temporalmente")
	ErrStoreUnavailable   = errors.New("almacén de credenciales no disponible")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)

// ValidationError error de validación con detalle por campo.
// Nunca tiene efectos secundarios: se produce antes de tocar el almacén.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return "entrada inválida"
}

// NewValidationError construye el error a partir del mapa campo -> mensajes.
func NewValidationError(fields map[string][]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

package entity

import "time"

// Identity registro de credenciales de un usuario. El email funciona también como
// username y es único en todo el almacén. Las mutaciones por intentos de login
// (contador, bloqueo) pertenecen al almacén, nunca al servicio de autenticación.
type Identity struct {
	ID             string
	Email          string
	PasswordHash   string // bcrypt, nunca en claro después de persistir
	EmailConfirmed bool   // este sistema auto-confirma en el registro
	FailedAttempts int
	LastFailedAt   *time.Time
	LockoutUntil   *time.Time
	Claims         map[string]string // claims propios, ej. ExcluirFornecedor -> true
	Roles          []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsLockedOut evalúa el bloqueo contra el timestamp almacenado: se auto-expira,
// no requiere reset explícito al vencer la ventana.
func (i *Identity) IsLockedOut(now time.Time) bool {
	return i.LockoutUntil != nil && i.LockoutUntil.After(now)
}

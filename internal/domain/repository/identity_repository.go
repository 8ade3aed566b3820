package repository

import (
	"context"
	"time"

	"github.com/jhoicas/proveedores-api/internal/domain/entity"
)

// IdentityRepository puerto del almacén de credenciales. Todas las llamadas son
// cancelables vía context: son el único punto de suspensión del flujo de auth.
type IdentityRepository interface {
	// Create persiste la identidad con sus claims y roles de forma atómica.
	// Retorna domain.ErrEmailAlreadyExists si el email ya existe (sin identidad parcial).
	Create(ctx context.Context, identity *entity.Identity) error

	// FindByEmail carga la identidad con claims y roles; nil si no existe.
	FindByEmail(ctx context.Context, email string) (*entity.Identity, error)

	// RecordFailedAttempt incrementa el contador de fallos de forma atómica y
	// devuelve el valor actualizado. Un fallo cuya marca previa es más vieja que
	// window reinicia el conteo en 1.
	RecordFailedAttempt(ctx context.Context, id string, window time.Duration) (int, error)

	// ResetFailedAttempts pone el contador en cero (login exitoso).
	ResetFailedAttempts(ctx context.Context, id string) error

	// SetLockout fija el bloqueo hasta el instante dado y reinicia el contador.
	SetLockout(ctx context.Context, id string, until time.Time) error
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/proveedores-api/internal/domain"
	"github.com/jhoicas/proveedores-api/internal/domain/entity"
	"github.com/jhoicas/proveedores-api/internal/domain/repository"
)

var _ repository.IdentityRepository = (*IdentityRepo)(nil)

// IdentityRepo implementación del puerto IdentityRepository sobre PostgreSQL.
// Es el único recurso mutable compartido del servicio: el incremento del contador
// de fallos es un UPDATE atómico, nunca un read-modify-write en el cliente.
type IdentityRepo struct {
	pool *pgxpool.Pool
}

// NewIdentityRepository construye el adaptador de persistencia de identidades.
func NewIdentityRepository(pool *pgxpool.Pool) *IdentityRepo {
	return &IdentityRepo{pool: pool}
}

// Create persiste identidad, claims y roles en una transacción: con email
// duplicado no queda ninguna fila parcial.
func (r *IdentityRepo) Create(ctx context.Context, identity *entity.Identity) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO identities (id, email, password_hash, email_confirmed, failed_attempts, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 0, $5, $6)`,
		identity.ID, identity.Email, identity.PasswordHash, identity.EmailConfirmed,
		identity.CreatedAt, identity.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert identity: %w", err)
	}

	for claim, value := range identity.Claims {
		if _, err := tx.Exec(ctx, `
			INSERT INTO identity_claims (identity_id, claim_type, claim_value) VALUES ($1, $2, $3)`,
			identity.ID, claim, value,
		); err != nil {
			return fmt.Errorf("insert claim: %w", err)
		}
	}
	for _, role := range identity.Roles {
		if _, err := tx.Exec(ctx, `
			INSERT INTO identity_roles (identity_id, role_name) VALUES ($1, $2)`,
			identity.ID, role,
		); err != nil {
			return fmt.Errorf("insert role: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// FindByEmail carga la identidad con sus claims y roles; nil si no existe.
func (r *IdentityRepo) FindByEmail(ctx context.Context, email string) (*entity.Identity, error) {
	var i entity.Identity
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, email_confirmed, failed_attempts, last_failed_at, lockout_until, created_at, updated_at
		FROM identities WHERE email = $1`, email,
	).Scan(
		&i.ID, &i.Email, &i.PasswordHash, &i.EmailConfirmed,
		&i.FailedAttempts, &i.LastFailedAt, &i.LockoutUntil, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get identity by email: %w", err)
	}

	i.Claims = make(map[string]string)
	rows, err := r.pool.Query(ctx, `
		SELECT claim_type, claim_value FROM identity_claims WHERE identity_id = $1`, i.ID)
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var claim, value string
		if err := rows.Scan(&claim, &value); err != nil {
			return nil, fmt.Errorf("scan claim: %w", err)
		}
		i.Claims[claim] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	roleRows, err := r.pool.Query(ctx, `
		SELECT role_name FROM identity_roles WHERE identity_id = $1 ORDER BY role_name`, i.ID)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer roleRows.Close()
	for roleRows.Next() {
		var role string
		if err := roleRows.Scan(&role); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		i.Roles = append(i.Roles, role)
	}
	return &i, roleRows.Err()
}

// RecordFailedAttempt incrementa el contador en un único UPDATE: dos fallos
// concurrentes nunca pierden un incremento. Un fallo cuya marca previa quedó
// fuera de la ventana reinicia el conteo en 1.
func (r *IdentityRepo) RecordFailedAttempt(ctx context.Context, id string, window time.Duration) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		UPDATE identities SET
			failed_attempts = CASE
				WHEN last_failed_at IS NULL OR last_failed_at < now() - make_interval(secs => $2)
				THEN 1
				ELSE failed_attempts + 1
			END,
			last_failed_at = now(),
			updated_at = now()
		WHERE id = $1
		RETURNING failed_attempts`,
		id, window.Seconds(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("record failed attempt: %w", err)
	}
	return count, nil
}

// ResetFailedAttempts pone el contador en cero tras un login exitoso.
func (r *IdentityRepo) ResetFailedAttempts(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE identities SET failed_attempts = 0, last_failed_at = NULL, updated_at = now()
		WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("reset failed attempts: %w", err)
	}
	return nil
}

// SetLockout fija el bloqueo hasta el instante dado. El bloqueo se auto-expira:
// nadie lo borra, IsLockedOut lo compara contra el reloj en cada login.
func (r *IdentityRepo) SetLockout(ctx context.Context, id string, until time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE identities SET lockout_until = $2, failed_attempts = 0, updated_at = now()
		WHERE id = $1`, id, until)
	if err != nil {
		return fmt.Errorf("set lockout: %w", err)
	}
	return nil
}

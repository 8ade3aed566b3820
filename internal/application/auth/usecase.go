package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/proveedores-api/internal/application/dto"
	"github.com/jhoicas/proveedores-api/internal/domain"
	"github.com/jhoicas/proveedores-api/internal/domain/entity"
	"github.com/jhoicas/proveedores-api/internal/domain/repository"
	"github.com/jhoicas/proveedores-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash se compara cuando el email no existe, para que el costo del fallo
// sea el mismo que con un email conocido (evita enumeración de cuentas por timing).
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Config parámetros del servicio de autenticación, cargados una vez en el arranque.
type Config struct {
	JWTSecret       string
	JWTIssuer       string
	TokenLifetime   time.Duration
	PasswordMinLen  int
	LockoutAttempts int           // fallos consecutivos antes de bloquear
	LockoutWindow   time.Duration // fallos más viejos que la ventana reinician el conteo
	LockoutDuration time.Duration
}

// AuthUseCase orquesta registro y login: valida la forma del input, delega la
// verificación de credenciales al almacén, aplica la política de bloqueo y pide
// el token al emisor. No guarda estado entre requests.
type AuthUseCase struct {
	identities repository.IdentityRepository
	cfg        Config
	now        func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(identities repository.IdentityRepository, cfg Config) *AuthUseCase {
	return &AuthUseCase{identities: identities, cfg: cfg, now: time.Now}
}

// WithClock reemplaza la fuente de tiempo (para tests).
func (uc *AuthUseCase) WithClock(fn func() time.Time) *AuthUseCase {
	if fn != nil {
		uc.now = fn
	}
	return uc
}

// Register crea una identidad auto-confirmada, hashea la contraseña con bcrypt
// y emite el token. Devuelve ErrEmailAlreadyExists si el email ya existe; en ese
// caso no queda ninguna identidad parcial persistida.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.TokenResponse, error) {
	if err := in.Validate(uc.cfg.PasswordMinLen); err != nil {
		return nil, domain.NewValidationError(dto.FieldErrors(err))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	identity := &entity.Identity{
		ID:             uuid.New().String(),
		Email:          normalizeEmail(in.Email),
		PasswordHash:   string(hash),
		EmailConfirmed: true, // este sistema auto-confirma, no hay flujo de confirmación
		Claims:         map[string]string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.identities.Create(ctx, identity); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return nil, err
		}
		return nil, storeErr(err)
	}

	return uc.issue(identity)
}

// Login verifica las credenciales aplicando la política de bloqueo:
//  1. Bloqueo vigente (contra el timestamp almacenado, auto-expirable) antes de
//     verificar la contraseña, para no filtrar si el bloqueo era previo o recién activado.
//  2. Email desconocido y contraseña incorrecta son indistinguibles hacia afuera.
//  3. El fallo número N dentro de la ventana activa el bloqueo por la duración configurada.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.TokenResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, domain.NewValidationError(dto.FieldErrors(err))
	}

	identity, err := uc.identities.FindByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, storeErr(err)
	}
	if identity == nil {
		// Mismo costo que el camino con identidad: comparación bcrypt de relleno.
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(in.Password))
		return nil, domain.ErrInvalidCredentials
	}

	if identity.IsLockedOut(uc.now()) {
		return nil, domain.ErrLockedOut
	}

	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(in.Password)); err != nil {
		return nil, uc.recordFailure(ctx, identity.ID)
	}

	if err := uc.identities.ResetFailedAttempts(ctx, identity.ID); err != nil {
		return nil, storeErr(err)
	}

	return uc.issue(identity)
}

// recordFailure incrementa el contador (atómico en el almacén) y activa el
// bloqueo si el fallo cruza el umbral. Siempre devuelve ErrInvalidCredentials
// hacia el caller: el bloqueo recién activado se reporta igual que un fallo normal.
func (uc *AuthUseCase) recordFailure(ctx context.Context, id string) error {
	count, err := uc.identities.RecordFailedAttempt(ctx, id, uc.cfg.LockoutWindow)
	if err != nil {
		return storeErr(err)
	}
	if count >= uc.cfg.LockoutAttempts {
		until := uc.now().Add(uc.cfg.LockoutDuration)
		if err := uc.identities.SetLockout(ctx, id, until); err != nil {
			return storeErr(err)
		}
	}
	return domain.ErrInvalidCredentials
}

// issue pide el token al emisor con el snapshot actual de claims y roles.
func (uc *AuthUseCase) issue(identity *entity.Identity) (*dto.TokenResponse, error) {
	token, exp, err := jwt.Issue(
		uc.cfg.JWTSecret, uc.cfg.JWTIssuer, identity.Email,
		identity.Claims, identity.Roles, uc.cfg.TokenLifetime,
	)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{Token: token, ExpiresAt: exp}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// storeErr marca fallos del almacén (timeouts incluidos) como StoreUnavailable,
// nunca como credenciales inválidas.
func storeErr(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}

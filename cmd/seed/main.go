// Seed provisiona la identidad administrativa con el claim ExcluirFornecedor,
// necesaria para ejercer la ruta de borrado de proveedores.
//
// Uso: SEED_ADMIN_EMAIL=admin@x.com SEED_ADMIN_PASSWORD=... go run ./cmd/seed
package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/proveedores-api/internal/application/authz"
	"github.com/jhoicas/proveedores-api/internal/domain/entity"
	"github.com/jhoicas/proveedores-api/internal/infrastructure/postgres"
	"github.com/jhoicas/proveedores-api/pkg/config"
	"github.com/jhoicas/proveedores-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal().Msg("SEED_ADMIN_EMAIL y SEED_ADMIN_PASSWORD son requeridos")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash de contraseña")
	}

	now := time.Now()
	admin := &entity.Identity{
		ID:             uuid.New().String(),
		Email:          email,
		PasswordHash:   string(hash),
		EmailConfirmed: true,
		Claims: map[string]string{
			authz.PolicyDeleteSupplier: "true",
		},
		Roles:     []string{"admin"},
		CreatedAt: now,
		UpdatedAt: now,
	}

	repo := postgres.NewIdentityRepository(pool)
	if err := repo.Create(ctx, admin); err != nil {
		log.Fatal().Err(err).Str("email", email).Msg("crear identidad admin")
	}
	log.Info().Str("email", email).Msg("identidad admin creada con ExcluirFornecedor")
}

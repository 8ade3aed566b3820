package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/proveedores-api/internal/application/authz"
	"github.com/jhoicas/proveedores-api/internal/application/dto"
	"github.com/jhoicas/proveedores-api/pkg/jwt"
)

// Locals key para los claims verificados del token en Fiber.
const LocalClaims = "claims"

// AuthMiddleware exige un Bearer token válido y no expirado (política degenerada
// sin requisitos) y deja los claims verificados en c.Locals.
func AuthMiddleware(engine *authz.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, errResp := bearerToken(c)
		if errResp != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(errResp)
		}
		decision := engine.Authorize(token, "")
		if !decision.Allowed {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalClaims, decision.Claims)
		return c.Next()
	}
}

// RequirePolicy exige que el token satisfaga la política nombrada.
//
// Comportamiento:
//   - 401 Unauthorized → token ausente, inválido o expirado (sin importar la política).
//   - 403 Forbidden    → token válido pero la política no se satisface.
func RequirePolicy(engine *authz.Engine, policyName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, errResp := bearerToken(c)
		if errResp != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(errResp)
		}
		decision := engine.Authorize(token, policyName)
		if !decision.Allowed {
			if decision.Reason == authz.ReasonInvalidToken {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
			}
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "POLICY_NOT_SATISFIED", Message: "la política '" + policyName + "' no se satisface"})
		}
		c.Locals(LocalClaims, decision.Claims)
		return c.Next()
	}
}

// bearerToken extrae el token del header Authorization: Bearer <token>.
func bearerToken(c *fiber.Ctx) (string, *dto.ErrorResponse) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", &dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"}
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", &dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"}
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", &dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"}
	}
	return token, nil
}

// GetClaims devuelve los claims del contexto (después del middleware de auth).
func GetClaims(c *fiber.Ctx) *jwt.Claims {
	v := c.Locals(LocalClaims)
	if v == nil {
		return nil
	}
	claims, _ := v.(*jwt.Claims)
	return claims
}

// GetSubject devuelve el subject (email) del token, o vacío si no hay claims.
func GetSubject(c *fiber.Ctx) string {
	if claims := GetClaims(c); claims != nil {
		return claims.Subject
	}
	return ""
}

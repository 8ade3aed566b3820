package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/proveedores-api/internal/application/authz"
	apphttp "github.com/jhoicas/proveedores-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/proveedores-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "proveedores-api-test"
	testEmail     = "alice@x.com"
)

// buildTestApp construye una aplicación Fiber mínima con una ruta que exige solo
// autenticación y otra que además exige la política de borrado.
func buildTestApp() *fiber.App {
	engine := authz.DefaultEngine(testJWTSecret)
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(engine),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true, "subject": apphttp.GetSubject(c)})
		},
	)
	app.Delete("/protected",
		apphttp.RequirePolicy(engine, authz.PolicyDeleteSupplier),
		func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusNoContent)
		},
	)
	return app
}

// tokenWithClaims genera un JWT con los claims indicados.
func tokenWithClaims(t *testing.T, custom map[string]string) string {
	t.Helper()
	tok, _, err := pkgjwt.Issue(testJWTSecret, testIssuer, testEmail, custom, nil, time.Hour)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, method, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinHeader_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, http.MethodGet, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_FormatoIncorrecto_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, http.MethodGet, "Basic dXNlcjpwYXNz")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, http.MethodGet, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	app := buildTestApp()
	tok, _, err := pkgjwt.Issue(testJWTSecret, testIssuer, testEmail, nil, nil, -time.Minute)
	require.NoError(t, err)

	resp := doRequest(t, app, http.MethodGet, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenValido_ExtraeSubject(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, http.MethodGet, tokenWithClaims(t, nil))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, testEmail, body["subject"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequirePolicy
// ──────────────────────────────────────────────────────────────────────────────

// Token válido pero sin el claim de la política → 403 Forbidden.
func TestRequirePolicy_SinClaim_Retorna403(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, http.MethodDelete, tokenWithClaims(t, nil))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"sin ExcluirFornecedor no se puede borrar")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "POLICY_NOT_SATISFIED")
}

// Token con el claim requerido → pasa (HTTP 204 del handler dummy).
func TestRequirePolicy_ConClaim_Permite(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, http.MethodDelete,
		tokenWithClaims(t, map[string]string{"ExcluirFornecedor": "true"}))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

// Token inválido en ruta con política → 401, no 403: la validez del token se
// verifica antes que la política.
func TestRequirePolicy_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, http.MethodDelete, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequirePolicy_SinHeader_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, http.MethodDelete, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

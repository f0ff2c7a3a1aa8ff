package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sairmh/libreria-api/internal/domain/entity"
	apphttp "github.com/sairmh/libreria-api/internal/interfaces/http"
	pkgjwt "github.com/sairmh/libreria-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUsername  = "sair"
	testIssuer    = "libreria-api-test"
	testExpMin    = 60
)

// buildTestApp construye una app Fiber mínima con una ruta protegida por
// AuthMiddleware + RequirePermission y un handler dummy que responde 200.
func buildTestApp(requiredPermission string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequirePermission(requiredPermission),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":       true,
				"username": apphttp.GetUsername(c),
				"role":     apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenWith genera un JWT con el conjunto de autoridad indicado.
func tokenWith(t *testing.T, authorities ...string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUsername, entity.RoleVendedor, authorities, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware — 401
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinHeader_Retorna401(t *testing.T) {
	app := buildTestApp(entity.PermGetSales)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(http.StatusUnauthorized), body["status"],
		"el cuerpo del 401 lleva el status numérico")
	assert.Equal(t, "/protected", body["path"], "el cuerpo del 401 lleva el path")
}

func TestAuthMiddleware_EsquemaIncorrecto_Retorna401(t *testing.T) {
	app := buildTestApp(entity.PermGetSales)
	resp := doRequest(t, app, "Basic dXNlcjpwYXNz")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(entity.PermGetSales)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "token inválido")
}

func TestAuthMiddleware_TokenExpirado_Retorna401Distinguible(t *testing.T) {
	app := buildTestApp(entity.PermGetSales)
	tok, err := pkgjwt.Generate(testJWTSecret, testUsername, entity.RoleVendedor,
		[]string{entity.PermGetSales}, testIssuer, -1)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "token expirado",
		"expirado debe distinguirse de inválido en el cuerpo")
}

// ──────────────────────────────────────────────────────────────────────────────
// RequirePermission — 403 y paso
// ──────────────────────────────────────────────────────────────────────────────

func TestRequirePermission_ConPermiso_Pasa(t *testing.T) {
	app := buildTestApp(entity.PermGetSales)
	resp := doRequest(t, app, tokenWith(t, "ROLE_VENDEDOR", entity.PermGetSales))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, testUsername, body["username"], "el username debe quedar en locals")
	assert.Equal(t, entity.RoleVendedor, body["role"], "el rol debe quedar en locals")
}

func TestRequirePermission_SinPermiso_Retorna403(t *testing.T) {
	app := buildTestApp(entity.PermDeleteProduct)
	resp := doRequest(t, app, tokenWith(t, "ROLE_VENDEDOR", entity.PermGetSales))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"sin el permiso requerido la respuesta es 403, no 401")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
	assert.Contains(t, string(body), entity.PermDeleteProduct,
		"el 403 nombra el permiso faltante")
}

func TestRequirePermission_AceptaAuthorityDeRol(t *testing.T) {
	// Una ruta puede exigir el authority derivado del rol en lugar de un permiso.
	app := buildTestApp("ROLE_ADMINISTRADOR")
	resp := doRequest(t, app, tokenWith(t, "ROLE_ADMINISTRADOR", entity.PermGetSales))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

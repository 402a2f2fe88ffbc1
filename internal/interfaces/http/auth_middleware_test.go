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

	"github.com/jhoicas/Inventario-app/internal/domain/entity"
	apphttp "github.com/jhoicas/Inventario-app/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Inventario-app/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "inventario-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequirePermission con el nivel requerido
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(required entity.Permission) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequirePermission(required),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":         true,
				"permission": apphttp.GetPermission(c),
			})
		},
	)
	return app
}

// tokenFor genera un JWT con el permiso indicado.
func tokenFor(t *testing.T, permission string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, permission, testIssuer, testExpMin)
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
// Tests RequirePermission
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: jerarquía completa, cada nivel accede a lo suyo y a lo inferior.
func TestRequirePermission_Jerarquia(t *testing.T) {
	for _, required := range entity.Permissions() {
		app := buildTestApp(required)
		for _, held := range entity.Permissions() {
			resp := doRequest(t, app, tokenFor(t, held.String()))
			want := http.StatusForbidden
			if held.Level() >= required.Level() {
				want = http.StatusOK
			}
			assert.Equal(t, want, resp.StatusCode, "held=%s required=%s", held, required)
			resp.Body.Close()
		}
	}
}

// Caso 2: admin accede a ruta admin y recibe su permiso en locals.
func TestRequirePermission_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(entity.PermissionAdmin)
	resp := doRequest(t, app, tokenFor(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "admin", body["permission"])
}

// Caso 3: operador bloqueado en ruta admin → 403 FORBIDDEN.
func TestRequirePermission_OperadorBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp(entity.PermissionAdmin)
	resp := doRequest(t, app, tokenFor(t, "operator"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

// Caso 4: token con permiso desconocido → 401.
func TestAuthMiddleware_PermisoDesconocido_Retorna401(t *testing.T) {
	app := buildTestApp(entity.PermissionViewer)
	resp := doRequest(t, app, tokenFor(t, "root"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 5: sin header Authorization → 401 MISSING_TOKEN.
func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(entity.PermissionViewer)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

// Caso 6: token inválido / malformado → 401 INVALID_TOKEN.
func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(entity.PermissionViewer)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

// Caso 7: token expirado → 401.
func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "admin", testIssuer, -1)
	require.NoError(t, err)

	app := buildTestApp(entity.PermissionViewer)
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware — extracción de claims del token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    apphttp.GetUserID(c),
			"permission": apphttp.GetPermission(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenFor(t, "operator"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "operator", body["permission"])
}

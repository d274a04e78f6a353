package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malikaashish/Inventory-Management-System/internal/application/dto"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
	apphttp "github.com/malikaashish/Inventory-Management-System/internal/interfaces/http"
	"github.com/malikaashish/Inventory-Management-System/pkg/jwt"
	"github.com/malikaashish/Inventory-Management-System/pkg/logger"
)

const (
	mwSecret    = "middleware-secret"
	mwUserID    = "u-0001"
	mwCompanyID = "c-0001"
)

func bearer(t *testing.T, role string) string {
	t.Helper()
	tok, err := jwt.Generate(mwSecret, mwUserID, mwCompanyID, role, "ims-test", 5)
	require.NoError(t, err)
	return "Bearer " + tok
}

// call hace GET / sobre app y devuelve status y código de error (si hay).
func call(t *testing.T, app *fiber.App, authorization string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set(fiber.HeaderAuthorization, authorization)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var body dto.ErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body.Code
}

func TestAuthMiddlewareYRequireRole(t *testing.T) {
	app := fiber.New()
	app.Get("/",
		apphttp.AuthMiddleware(mwSecret),
		apphttp.RequireRole(entity.RoleAdmin, entity.RoleInventoryStaff),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) },
	)

	expired, err := jwt.Generate(mwSecret, mwUserID, mwCompanyID, entity.RoleAdmin, "ims-test", -1)
	require.NoError(t, err)
	foreign, err := jwt.Generate("otro-secreto", mwUserID, mwCompanyID, entity.RoleAdmin, "ims-test", 5)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{"admin", bearer(t, entity.RoleAdmin), fiber.StatusNoContent, ""},
		{"inventario", bearer(t, entity.RoleInventoryStaff), fiber.StatusNoContent, ""},
		{"ventas no permitido", bearer(t, entity.RoleSalesStaff), fiber.StatusForbidden, "FORBIDDEN"},
		{"sin rol", bearer(t, ""), fiber.StatusUnauthorized, "MISSING_ROLE"},
		{"sin header", "", fiber.StatusUnauthorized, "MISSING_TOKEN"},
		{"esquema distinto", "Basic abc", fiber.StatusUnauthorized, "INVALID_TOKEN"},
		{"malformado", "Bearer no.es.jwt", fiber.StatusUnauthorized, "INVALID_TOKEN"},
		{"expirado", "Bearer " + expired, fiber.StatusUnauthorized, "INVALID_TOKEN"},
		{"otra firma", "Bearer " + foreign, fiber.StatusUnauthorized, "INVALID_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, code := call(t, app, tc.header)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, code)
		})
	}
}

func TestAuthMiddleware_CargaLocals(t *testing.T) {
	app := fiber.New()
	app.Get("/", apphttp.AuthMiddleware(mwSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    apphttp.GetUserID(c),
			"company_id": apphttp.GetCompanyID(c),
			"role":       apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderAuthorization, bearer(t, entity.RolePurchaseStaff))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, map[string]string{"user_id": mwUserID, "company_id": mwCompanyID, "role": entity.RolePurchaseStaff}, body)
}

type stubModules struct {
	enabled bool
	err     error
	asked   string
}

func (s *stubModules) HasActiveModule(_ context.Context, companyID, module string) (bool, error) {
	s.asked = companyID + "/" + module
	return s.enabled, s.err
}

func TestRequireModule(t *testing.T) {
	cases := []struct {
		name   string
		stub   *stubModules
		status int
		code   string
	}{
		{"habilitado", &stubModules{enabled: true}, fiber.StatusNoContent, ""},
		{"deshabilitado", &stubModules{}, fiber.StatusForbidden, "MODULE_DISABLED"},
		{"falla la consulta", &stubModules{err: errors.New("db caída")}, fiber.StatusServiceUnavailable, "MODULE_CHECK_FAILED"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/",
				apphttp.AuthMiddleware(mwSecret),
				apphttp.RequireModule(entity.ModuleSales, tc.stub, logger.Nop()),
				func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) },
			)
			status, code := call(t, app, bearer(t, entity.RoleSalesStaff))
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, code)
			assert.Equal(t, mwCompanyID+"/"+entity.ModuleSales, tc.stub.asked)
		})
	}
}

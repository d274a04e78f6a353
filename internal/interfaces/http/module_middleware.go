package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/malikaashish/Inventory-Management-System/pkg/logger"
)

// moduleChecker lo implementa *usecase.ModuleService.
type moduleChecker interface {
	HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error)
}

// RequireModule bloquea el grupo de rutas si la empresa del token no tiene el módulo habilitado.
// Va después de AuthMiddleware. Fallos al consultar responden 503, no 403.
func RequireModule(module string, checker moduleChecker, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := GetCompanyID(c)
		if companyID == "" {
			return abort(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "company_id no encontrado en el token")
		}
		enabled, err := checker.HasActiveModule(c.UserContext(), companyID, module)
		switch {
		case err != nil:
			log.Error().Err(err).
				Str("company_id", companyID).
				Str("module", module).
				Str("path", c.Path()).
				Msg("verificación de módulo falló")
			return abort(c, fiber.StatusServiceUnavailable, "MODULE_CHECK_FAILED", "no se pudo verificar el módulo, intente más tarde")
		case !enabled:
			return abort(c, fiber.StatusForbidden, "MODULE_DISABLED", "el módulo '"+module+"' no está habilitado para esta empresa")
		}
		return c.Next()
	}
}

package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/malikaashish/Inventory-Management-System/pkg/jwt"
)

// Claves de c.Locals que deja AuthMiddleware.
const (
	LocalUserID    = "user_id"
	LocalCompanyID = "company_id"
	LocalRole      = "role"
)

// AuthMiddleware exige "Authorization: Bearer <jwt>" y copia usuario, empresa y rol a c.Locals.
// Ningún handler protegido lee la empresa de otro lado que no sea el token.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, code, msg := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return abort(c, fiber.StatusUnauthorized, code, msg)
		}
		userID, companyID, role, err := jwt.Parse(jwtSecret, token)
		if err != nil {
			return abort(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "token inválido o expirado")
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalCompanyID, companyID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// bearerToken extrae el token; si falta devuelve el código y mensaje de error.
func bearerToken(header string) (token, code, msg string) {
	if header == "" {
		return "", "MISSING_TOKEN", "Authorization header requerido"
	}
	scheme, rest, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", "INVALID_TOKEN", "formato: Bearer <token>"
	}
	if token = strings.TrimSpace(rest); token == "" {
		return "", "MISSING_TOKEN", "token vacío"
	}
	return token, "", ""
}

// RequireRole deja pasar solo los roles indicados. Va después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return abort(c, fiber.StatusUnauthorized, "MISSING_ROLE", "el token no incluye rol")
		}
		if _, ok := allowed[role]; !ok {
			return abort(c, fiber.StatusForbidden, "FORBIDDEN", "el rol "+role+" no tiene acceso a este recurso")
		}
		return c.Next()
	}
}

// GetUserID usuario autenticado; "" fuera de AuthMiddleware.
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetCompanyID empresa del token.
func GetCompanyID(c *fiber.Ctx) string { return localString(c, LocalCompanyID) }

// GetRole rol del token.
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/malikaashish/Inventory-Management-System/internal/application/dto"
	"github.com/malikaashish/Inventory-Management-System/internal/application/usecase"
)

// CompanyHandler expone la empresa del usuario autenticado y sus módulos.
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

// NewCompanyHandler construye el handler inyectando el caso de uso.
func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Me godoc
// @Summary      Empresa del usuario autenticado
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/me [get]
func (h *CompanyHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListModules godoc
// @Summary      Módulos SaaS de la empresa
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CompanyModuleResponse
// @Router       /api/companies/me/modules [get]
func (h *CompanyHandler) ListModules(c *fiber.Ctx) error {
	out, err := h.uc.ListModules(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetModule godoc
// @Summary      Activar o desactivar un módulo
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetModuleRequest  true  "module_name, is_active, expires_at"
// @Success      200   {object}  dto.CompanyModuleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/companies/me/modules [put]
func (h *CompanyHandler) SetModule(c *fiber.Ctx) error {
	var in dto.SetModuleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SetModule(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

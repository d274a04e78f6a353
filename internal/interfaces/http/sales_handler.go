package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/malikaashish/Inventory-Management-System/internal/application/dto"
	"github.com/malikaashish/Inventory-Management-System/internal/application/sales"
)

// SalesHandler órdenes de venta (protegido).
type SalesHandler struct {
	uc *sales.SalesOrderUseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *sales.SalesOrderUseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de venta
// @Description  Descuenta stock de todas las líneas en una transacción; si alguna no alcanza, no se crea nada.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSalesOrderRequest  true  "Líneas y totales"
// @Success      201   {object}  dto.SalesOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/orders [post]
func (h *SalesHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateSalesOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), companyID, userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de una orden de venta
// @Description  CANCELLED devuelve al stock las cantidades de todas las líneas.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true  "ID de la orden"
// @Param        status  query  string  true  "PENDING, CONFIRMED, PROCESSING, SHIPPED, DELIVERED, CANCELLED"
// @Success      200     {object}  dto.SalesOrderResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/sales/orders/{id}/status [patch]
func (h *SalesHandler) UpdateStatus(c *fiber.Ctx) error {
	status := c.Query("status")
	if status == "" {
		return badRequest(c, "status es requerido")
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), GetCompanyID(c), GetUserID(c), c.Params("id"), status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener orden de venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.SalesOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/orders/{id} [get]
func (h *SalesHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar órdenes de venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite (default 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200     {object}  dto.SalesOrderListResponse
// @Router       /api/sales/orders [get]
func (h *SalesHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Recent godoc
// @Summary      Últimas órdenes de venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SalesOrderResponse
// @Router       /api/sales/orders/recent [get]
func (h *SalesHandler) Recent(c *fiber.Ctx) error {
	out, err := h.uc.Recent(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

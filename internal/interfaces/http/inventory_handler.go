package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/malikaashish/Inventory-Management-System/internal/application/dto"
	"github.com/malikaashish/Inventory-Management-System/internal/application/inventory"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// InventoryHandler ajustes de stock, reposición y reorden automático (protegido).
type InventoryHandler struct {
	adjust        *inventory.StockAdjustmentUseCase
	replenishment *inventory.ReplenishmentUseCase
	autoReorder   *inventory.AutoReorderUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	adjust *inventory.StockAdjustmentUseCase,
	replenishment *inventory.ReplenishmentUseCase,
	autoReorder *inventory.AutoReorderUseCase,
) *InventoryHandler {
	return &InventoryHandler{adjust: adjust, replenishment: replenishment, autoReorder: autoReorder}
}

// Adjust godoc
// @Summary      Ajustar stock de un producto
// @Description  INCREASE/DECREASE suman o restan quantity; CORRECTION fija el stock en quantity.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockAdjustmentRequest  true  "product_id, adjustment_type, quantity, reason"
// @Success      201   {object}  dto.StockAdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.StockAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.adjust.Adjust(c.UserContext(), companyID, userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// History godoc
// @Summary      Historial de ajustes de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path   string  true   "ID del producto"
// @Param        limit      query  int     false  "Límite (default 20)"
// @Param        offset     query  int     false  "Desplazamiento"
// @Success      200        {object}  dto.StockAdjustmentListResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments/{productId} [get]
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	out, err := h.adjust.History(c.UserContext(), GetCompanyID(c), c.Params("productId"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ExportHistory godoc
// @Summary      Exportar historial de ajustes a Excel
// @Tags         inventory
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        productId  path  string  true  "ID del producto"
// @Success      200        {file}    file
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments/{productId}/export [get]
func (h *InventoryHandler) ExportHistory(c *fiber.Ctx) error {
	data, filename, err := h.adjust.ExportHistory(c.UserContext(), GetCompanyID(c), c.Params("productId"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Attachment(filename)
	return c.Send(data)
}

// LowStock godoc
// @Summary      Productos en o bajo el punto de reorden
// @Description  Ordenados por prioridad (menor cobertura primero). No crea órdenes.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockItemDTO
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.replenishment.LowStockReport(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// TriggerAutoReorder godoc
// @Summary      Ejecutar el reorden automático
// @Description  Crea órdenes de compra ORDERED por proveedor para los productos con stock bajo y reorden automático.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AutoReorderResult
// @Router       /api/inventory/bot/trigger [post]
func (h *InventoryHandler) TriggerAutoReorder(c *fiber.Ctx) error {
	out, err := h.autoReorder.Run(c.UserContext(), GetCompanyID(c), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

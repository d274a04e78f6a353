package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/malikaashish/Inventory-Management-System/internal/application/dto"
	"github.com/malikaashish/Inventory-Management-System/internal/application/purchasing"
)

// PurchaseHandler órdenes de compra y recepción de mercancía (protegido).
type PurchaseHandler struct {
	uc *purchasing.PurchaseOrderUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *purchasing.PurchaseOrderUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de compra
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "Proveedor, líneas y costos"
// @Success      201   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases/orders [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreatePurchaseOrderRequest
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
// @Summary      Cambiar estado de una orden de compra
// @Description  RECEIVED y PARTIALLY_RECEIVED solo se alcanzan recibiendo mercancía.
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true  "ID de la orden"
// @Param        status  query  string  true  "DRAFT, PENDING_APPROVAL, APPROVED, ORDERED, CANCELLED"
// @Success      200     {object}  dto.PurchaseOrderResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/purchases/orders/{id}/status [patch]
func (h *PurchaseHandler) UpdateStatus(c *fiber.Ctx) error {
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

// Receive godoc
// @Summary      Recibir mercancía de una orden de compra
// @Description  Suma al stock las cantidades recibidas. Si alguna línea excede lo pendiente no se aplica ninguna.
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID de la orden"
// @Param        body  body  dto.ReceivePurchaseOrderRequest  true  "item_id y quantity por línea"
// @Success      200   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchases/orders/{id}/receive [post]
func (h *PurchaseHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceivePurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Receive(c.UserContext(), GetCompanyID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener orden de compra
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/orders/{id} [get]
func (h *PurchaseHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar órdenes de compra
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite (default 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200     {object}  dto.PurchaseOrderListResponse
// @Router       /api/purchases/orders [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Pending godoc
// @Summary      Órdenes de compra pendientes de recibir
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PurchaseOrderResponse
// @Router       /api/purchases/orders/pending [get]
func (h *PurchaseHandler) Pending(c *fiber.Ctx) error {
	out, err := h.uc.Pending(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar la orden de compra en PDF
// @Tags         purchases
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/orders/{id}/pdf [get]
func (h *PurchaseHandler) PDF(c *fiber.Ctx) error {
	data, filename, err := h.uc.PDF(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Attachment(filename)
	return c.Send(data)
}

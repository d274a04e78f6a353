package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseOrderRequest body para POST /api/purchases/orders.
type CreatePurchaseOrderRequest struct {
	SupplierID   string                     `json:"supplier_id" validate:"required,uuid"`
	Items        []PurchaseOrderItemRequest `json:"items" validate:"required,min=1,dive"`
	TaxAmount    decimal.Decimal            `json:"tax_amount"`
	ShippingCost decimal.Decimal            `json:"shipping_cost"`
	ExpectedDate *time.Time                 `json:"expected_date,omitempty"`
	Notes        string                     `json:"notes"`
}

// PurchaseOrderItemRequest línea de compra.
type PurchaseOrderItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int             `json:"quantity" validate:"min=1"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// ReceivePurchaseOrderRequest body para POST /api/purchases/orders/:id/receive.
type ReceivePurchaseOrderRequest struct {
	Items []ReceiveItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ReceiveItemRequest cantidad recibida de una línea de la orden.
type ReceiveItemRequest struct {
	ItemID   string `json:"item_id" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"min=1"`
}

// PurchaseOrderResponse salida de una orden de compra.
type PurchaseOrderResponse struct {
	ID           string                      `json:"id"`
	OrderNumber  string                      `json:"order_number"`
	SupplierID   string                      `json:"supplier_id"`
	SupplierName string                      `json:"supplier_name,omitempty"`
	OrderDate    time.Time                   `json:"order_date"`
	ExpectedDate *time.Time                  `json:"expected_date,omitempty"`
	ReceivedDate *time.Time                  `json:"received_date,omitempty"`
	Status       string                      `json:"status"`
	Subtotal     decimal.Decimal             `json:"subtotal"`
	TaxAmount    decimal.Decimal             `json:"tax_amount"`
	ShippingCost decimal.Decimal             `json:"shipping_cost"`
	TotalAmount  decimal.Decimal             `json:"total_amount"`
	Notes        string                      `json:"notes,omitempty"`
	Items        []PurchaseOrderItemResponse `json:"items"`
	CreatedBy    string                      `json:"created_by,omitempty"`
	ApprovedBy   string                      `json:"approved_by,omitempty"`
	UpdatedBy    string                      `json:"updated_by,omitempty"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

// PurchaseOrderItemResponse salida de una línea de compra.
type PurchaseOrderItemResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	ProductSKU       string          `json:"product_sku"`
	QuantityOrdered  int             `json:"quantity_ordered"`
	QuantityReceived int             `json:"quantity_received"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	LineTotal        decimal.Decimal `json:"line_total"`
}

// PurchaseOrderListResponse lista paginada de órdenes de compra.
type PurchaseOrderListResponse struct {
	Items []PurchaseOrderResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

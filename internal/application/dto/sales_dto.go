package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSalesOrderRequest body para POST /api/sales/orders.
type CreateSalesOrderRequest struct {
	CustomerID      string                  `json:"customer_id,omitempty" validate:"omitempty,uuid"`
	Items           []SalesOrderItemRequest `json:"items" validate:"required,min=1,dive"`
	TaxAmount       decimal.Decimal         `json:"tax_amount"`
	DiscountAmount  decimal.Decimal         `json:"discount_amount"`
	ShippingAddress string                  `json:"shipping_address"`
	Notes           string                  `json:"notes"`
}

// SalesOrderItemRequest línea de venta. UnitPrice nil = precio actual del producto.
type SalesOrderItemRequest struct {
	ProductID       string           `json:"product_id" validate:"required,uuid"`
	Quantity        int              `json:"quantity" validate:"min=1"`
	UnitPrice       *decimal.Decimal `json:"unit_price,omitempty"`
	DiscountPercent decimal.Decimal  `json:"discount_percent"`
}

// SalesOrderResponse salida de una orden de venta.
type SalesOrderResponse struct {
	ID              string                   `json:"id"`
	OrderNumber     string                   `json:"order_number"`
	CustomerID      string                   `json:"customer_id,omitempty"`
	OrderDate       time.Time                `json:"order_date"`
	Status          string                   `json:"status"`
	Subtotal        decimal.Decimal          `json:"subtotal"`
	TaxAmount       decimal.Decimal          `json:"tax_amount"`
	DiscountAmount  decimal.Decimal          `json:"discount_amount"`
	TotalAmount     decimal.Decimal          `json:"total_amount"`
	ShippingAddress string                   `json:"shipping_address,omitempty"`
	Notes           string                   `json:"notes,omitempty"`
	Items           []SalesOrderItemResponse `json:"items"`
	CreatedBy       string                   `json:"created_by"`
	UpdatedBy       string                   `json:"updated_by,omitempty"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

// SalesOrderItemResponse salida de una línea de venta.
type SalesOrderItemResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	ProductSKU      string          `json:"product_sku"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

// SalesOrderListResponse lista paginada de órdenes de venta.
type SalesOrderListResponse struct {
	Items []SalesOrderResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockAdjustmentRequest body para POST /api/inventory/adjust.
// Quantity es puntero para distinguir "ausente" de 0 (CORRECTION a 0 es válido).
type StockAdjustmentRequest struct {
	ProductID       string `json:"product_id" validate:"required,uuid"`
	AdjustmentType  string `json:"adjustment_type" validate:"required,oneof=INCREASE DECREASE CORRECTION"`
	Quantity        *int   `json:"quantity" validate:"required"`
	Reason          string `json:"reason" validate:"required,max=500"`
	ReferenceNumber string `json:"reference_number,omitempty" validate:"omitempty,max=100"`
}

// StockAdjustmentResponse salida de un ajuste registrado.
type StockAdjustmentResponse struct {
	ID              string    `json:"id"`
	ProductID       string    `json:"product_id"`
	ProductSKU      string    `json:"product_sku"`
	AdjustmentType  string    `json:"adjustment_type"`
	QuantityBefore  int       `json:"quantity_before"`
	QuantityAfter   int       `json:"quantity_after"`
	QuantityChange  int       `json:"quantity_change"`
	Reason          string    `json:"reason"`
	ReferenceNumber string    `json:"reference_number,omitempty"`
	AdjustedBy      string    `json:"adjusted_by"`
	CreatedAt       time.Time `json:"created_at"`
}

// StockAdjustmentListResponse historial paginado de ajustes de un producto.
type StockAdjustmentListResponse struct {
	Items []StockAdjustmentResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}

// LowStockItemDTO producto en o por debajo de su punto de reorden, con la sugerencia de compra.
type LowStockItemDTO struct {
	ProductID          string          `json:"product_id"`
	SKU                string          `json:"sku"`
	ProductName        string          `json:"product_name"`
	CurrentStock       int             `json:"current_stock"`
	ReorderPoint       int             `json:"reorder_point"`
	ReorderQuantity    int             `json:"reorder_quantity"`
	AutoReorderEnabled bool            `json:"auto_reorder_enabled"`
	UnitCost           decimal.Decimal `json:"unit_cost"`            // precio del proveedor preferido o costo del producto
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // ReorderQuantity * UnitCost
	SupplierID         string          `json:"supplier_id,omitempty"`
	Priority           int             `json:"priority"` // 1 = más urgente
}

// AutoReorderResult resultado de una corrida del evaluador de reorden automático.
type AutoReorderResult struct {
	CompanyID       string                  `json:"company_id"`
	OrdersCreated   []PurchaseOrderResponse `json:"orders_created"`
	SkippedProducts []SkippedProductDTO     `json:"skipped_products"`
}

// SkippedProductDTO producto candidato que no pudo reordenarse.
type SkippedProductDTO struct {
	ProductID string `json:"product_id"`
	SKU       string `json:"sku"`
	Reason    string `json:"reason"`
}

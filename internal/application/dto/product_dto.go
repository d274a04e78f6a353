package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. QuantityOnHand es el stock inicial.
type CreateProductRequest struct {
	SKU                string          `json:"sku" validate:"required,min=1,max=100"`
	Name               string          `json:"name" validate:"required,min=1,max=200"`
	Description        string          `json:"description"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	CostPrice          decimal.Decimal `json:"cost_price"`
	QuantityOnHand     int             `json:"quantity_on_hand" validate:"min=0"`
	ReorderPoint       *int            `json:"reorder_point"`
	ReorderQuantity    *int            `json:"reorder_quantity"`
	AutoReorderEnabled bool            `json:"auto_reorder_enabled"`
	ExpiryDate         *time.Time      `json:"expiry_date"`
	UnitOfMeasure      string          `json:"unit_of_measure"`
}

// UpdateProductRequest entrada para actualizar un producto (sin stock: se maneja vía ajustes y órdenes).
type UpdateProductRequest struct {
	Name               *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description        *string          `json:"description"`
	UnitPrice          *decimal.Decimal `json:"unit_price"`
	CostPrice          *decimal.Decimal `json:"cost_price"`
	ReorderPoint       *int             `json:"reorder_point"`
	ReorderQuantity    *int             `json:"reorder_quantity"`
	AutoReorderEnabled *bool            `json:"auto_reorder_enabled"`
	ExpiryDate         *time.Time       `json:"expiry_date"`
	UnitOfMeasure      *string          `json:"unit_of_measure"`
	IsActive           *bool            `json:"is_active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                 string          `json:"id"`
	CompanyID          string          `json:"company_id"`
	SKU                string          `json:"sku"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	CostPrice          decimal.Decimal `json:"cost_price"`
	QuantityOnHand     int             `json:"quantity_on_hand"`
	ReorderPoint       int             `json:"reorder_point"`
	ReorderQuantity    int             `json:"reorder_quantity"`
	AutoReorderEnabled bool            `json:"auto_reorder_enabled"`
	ExpiryDate         *time.Time      `json:"expiry_date,omitempty"`
	UnitOfMeasure      string          `json:"unit_of_measure"`
	IsActive           bool            `json:"is_active"`
	IsLowStock         bool            `json:"is_low_stock"`
	IsExpired          bool            `json:"is_expired"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

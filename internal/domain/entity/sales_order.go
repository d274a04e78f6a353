package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de venta.
const (
	SalesStatusPending    = "PENDING"
	SalesStatusConfirmed  = "CONFIRMED"
	SalesStatusProcessing = "PROCESSING"
	SalesStatusShipped    = "SHIPPED"
	SalesStatusDelivered  = "DELIVERED"
	SalesStatusCompleted  = "COMPLETED"
	SalesStatusCancelled  = "CANCELLED"
)

// ValidSalesStatus indica si s es un estado de venta conocido.
func ValidSalesStatus(s string) bool {
	switch s {
	case SalesStatusPending, SalesStatusConfirmed, SalesStatusProcessing, SalesStatusShipped,
		SalesStatusDelivered, SalesStatusCompleted, SalesStatusCancelled:
		return true
	}
	return false
}

// SalesOrder cabecera de una orden de venta. Total = Subtotal + TaxAmount - DiscountAmount.
type SalesOrder struct {
	ID              string
	CompanyID       string
	OrderNumber     string
	CustomerID      string // vacío = venta de mostrador
	OrderDate       time.Time
	Status          string
	Subtotal        decimal.Decimal
	TaxAmount       decimal.Decimal
	DiscountAmount  decimal.Decimal
	TotalAmount     decimal.Decimal
	ShippingAddress string
	Notes           string
	Items           []*SalesOrderItem
	CreatedBy       string
	UpdatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SalesOrderItem línea de venta; UnitPrice y DiscountPercent son una foto al momento de la venta.
type SalesOrderItem struct {
	ID              string
	SalesOrderID    string
	ProductID       string
	ProductSKU      string
	Quantity        int
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	LineTotal       decimal.Decimal
}

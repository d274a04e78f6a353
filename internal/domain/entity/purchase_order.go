package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	PurchaseStatusDraft             = "DRAFT"
	PurchaseStatusPending           = "PENDING"
	PurchaseStatusApproved          = "APPROVED"
	PurchaseStatusOrdered           = "ORDERED"
	PurchaseStatusPartiallyReceived = "PARTIALLY_RECEIVED"
	PurchaseStatusReceived          = "RECEIVED"
	PurchaseStatusCancelled         = "CANCELLED"
)

// ValidPurchaseStatus indica si s es un estado de compra conocido.
func ValidPurchaseStatus(s string) bool {
	switch s {
	case PurchaseStatusDraft, PurchaseStatusPending, PurchaseStatusApproved, PurchaseStatusOrdered,
		PurchaseStatusPartiallyReceived, PurchaseStatusReceived, PurchaseStatusCancelled:
		return true
	}
	return false
}

// PurchaseOrder cabecera de una orden de compra. Total = Subtotal + TaxAmount + ShippingCost.
type PurchaseOrder struct {
	ID           string
	CompanyID    string
	OrderNumber  string
	SupplierID   string
	SupplierName string // solo lectura (join)
	OrderDate    time.Time
	ExpectedDate *time.Time
	ReceivedDate *time.Time // solo cuando todas las líneas están completas
	Status       string
	Subtotal     decimal.Decimal
	TaxAmount    decimal.Decimal
	ShippingCost decimal.Decimal
	TotalAmount  decimal.Decimal
	Notes        string
	Items        []*PurchaseOrderItem
	CreatedBy    string
	ApprovedBy   string
	UpdatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullyReceived es true si cada línea recibió exactamente lo pedido.
func (po *PurchaseOrder) FullyReceived() bool {
	for _, it := range po.Items {
		if it.QuantityReceived != it.QuantityOrdered {
			return false
		}
	}
	return true
}

// PurchaseOrderItem línea de compra. 0 <= QuantityReceived <= QuantityOrdered, solo crece.
type PurchaseOrderItem struct {
	ID               string
	PurchaseOrderID  string
	ProductID        string
	ProductSKU       string
	QuantityOrdered  int
	QuantityReceived int
	UnitCost         decimal.Decimal
	LineTotal        decimal.Decimal
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo.
// QuantityOnHand solo se modifica vía el stock store (ajustes, ventas, recepciones) o edición de catálogo.
type Product struct {
	ID                 string
	CompanyID          string
	SKU                string // único por empresa
	Name               string
	Description        string
	UnitPrice          decimal.Decimal // precio de venta
	CostPrice          decimal.Decimal // costo de compra de referencia
	QuantityOnHand     int             // nunca negativo (CHECK en BD)
	ReorderPoint       int
	ReorderQuantity    int
	AutoReorderEnabled bool
	ExpiryDate         *time.Time // nil = no vence
	UnitOfMeasure      string
	IsActive           bool
	CreatedBy          string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsLowStock es true cuando el stock está en o por debajo del punto de reorden.
func (p *Product) IsLowStock() bool {
	return p.QuantityOnHand <= p.ReorderPoint
}

// IsExpired compara solo la fecha (sin hora): vence el día siguiente a ExpiryDate.
func (p *Product) IsExpired(now time.Time) bool {
	if p.ExpiryDate == nil {
		return false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	ey, em, ed := p.ExpiryDate.Date()
	expiry := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	return expiry.Before(today)
}

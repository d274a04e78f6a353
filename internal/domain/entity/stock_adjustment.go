package entity

import "time"

// Tipos de ajuste manual de stock.
const (
	AdjustmentIncrease   = "INCREASE"   // suma cantidad
	AdjustmentDecrease   = "DECREASE"   // resta cantidad (no puede dejar stock negativo)
	AdjustmentCorrection = "CORRECTION" // fija el valor absoluto
)

// StockAdjustment registro de auditoría inmutable de un ajuste de stock.
// Invariante: QuantityChange == QuantityAfter - QuantityBefore.
type StockAdjustment struct {
	ID              string
	CompanyID       string
	ProductID       string
	ProductSKU      string // solo lectura (join)
	Type            string
	QuantityBefore  int
	QuantityAfter   int
	QuantityChange  int
	Reason          string
	ReferenceNumber string
	AdjustedBy      string // UserID
	CreatedAt       time.Time
}

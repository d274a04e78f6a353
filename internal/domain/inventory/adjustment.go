package inventory

import (
	"github.com/malikaashish/Inventory-Management-System/internal/domain"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
)

// ComputeAdjustment aplica un ajuste manual sobre el stock actual (before) y devuelve el stock
// resultante y el cambio con signo. Siempre se cumple change == after - before.
func ComputeAdjustment(adjType string, before, qty int) (after, change int, err error) {
	switch adjType {
	case entity.AdjustmentIncrease:
		if qty <= 0 {
			return 0, 0, domain.Invalidf("la cantidad debe ser mayor que cero para %s", adjType)
		}
		after = before + qty
	case entity.AdjustmentDecrease:
		if qty <= 0 {
			return 0, 0, domain.Invalidf("la cantidad debe ser mayor que cero para %s", adjType)
		}
		if before < qty {
			return 0, 0, domain.InsufficientStockf("stock insuficiente: disponible %d, solicitado %d", before, qty)
		}
		after = before - qty
	case entity.AdjustmentCorrection:
		if qty < 0 {
			return 0, 0, domain.Invalidf("la cantidad de corrección no puede ser negativa")
		}
		after = qty
	default:
		return 0, 0, domain.Invalidf("tipo de ajuste inválido: %q", adjType)
	}
	return after, after - before, nil
}

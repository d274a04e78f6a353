package inventory

import "github.com/malikaashish/Inventory-Management-System/internal/domain/entity"

// AdjustmentExporter genera el archivo descargable del historial de ajustes de un producto.
type AdjustmentExporter interface {
	AdjustmentHistory(product *entity.Product, adjustments []*entity.StockAdjustment) ([]byte, error)
}

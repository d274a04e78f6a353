package repository

import (
	"context"

	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
)

// StockAdjustmentRepository registro de auditoría de ajustes (solo inserción y consulta).
type StockAdjustmentRepository interface {
	Create(ctx context.Context, adj *entity.StockAdjustment) error
	// ListByProduct ordena del más reciente al más antiguo. limit <= 0 = sin límite.
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockAdjustment, error)
	CountByProduct(ctx context.Context, productID string) (int, error)
}

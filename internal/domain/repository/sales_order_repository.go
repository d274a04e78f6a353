package repository

import (
	"context"

	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
)

// SalesOrderRepository define el puerto de persistencia para órdenes de venta (cabecera + líneas).
type SalesOrderRepository interface {
	// Create inserta cabecera y líneas.
	Create(ctx context.Context, order *entity.SalesOrder) error
	GetByID(ctx context.Context, id string) (*entity.SalesOrder, error)
	// GetForUpdate como GetByID pero bloqueando la cabecera.
	GetForUpdate(ctx context.Context, id string) (*entity.SalesOrder, error)
	// UpdateStatus persiste Status, UpdatedBy y UpdatedAt.
	UpdateStatus(ctx context.Context, order *entity.SalesOrder) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.SalesOrder, error)
	CountByCompany(ctx context.Context, companyID string) (int, error)
}

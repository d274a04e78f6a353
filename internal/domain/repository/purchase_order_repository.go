package repository

import (
	"context"

	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra (cabecera + líneas).
type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	// GetForUpdate bloquea la cabecera; dos recepciones concurrentes de la misma orden se serializan.
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	// Update persiste Status, ApprovedBy, ReceivedDate, UpdatedBy y UpdatedAt.
	Update(ctx context.Context, order *entity.PurchaseOrder) error
	UpdateItemReceived(ctx context.Context, itemID string, quantityReceived int) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.PurchaseOrder, error)
	ListByStatuses(ctx context.Context, companyID string, statuses []string) ([]*entity.PurchaseOrder, error)
	CountByCompany(ctx context.Context, companyID string) (int, error)
}

package repository

import (
	"context"

	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las operaciones de stock (LockForUpdate, DecreaseStock, IncreaseStock, SetQuantityOnHand)
// solo tienen sentido dentro de una transacción (ver ports.TxRunner).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCompanyAndSKU(ctx context.Context, companyID, sku string) (*entity.Product, error)
	// Update actualiza datos de catálogo. No modifica QuantityOnHand.
	Update(ctx context.Context, product *entity.Product) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error)
	// ListLowStock productos activos con quantity_on_hand <= reorder_point.
	ListLowStock(ctx context.Context, companyID string) ([]*entity.Product, error)
	// ListAutoReorderCandidates como ListLowStock pero solo con auto_reorder_enabled.
	ListAutoReorderCandidates(ctx context.Context, companyID string) ([]*entity.Product, error)

	// LockForUpdate lee el producto bloqueando la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	LockForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// DecreaseStock resta qty solo si hay stock suficiente. 0 filas afectadas = stock insuficiente.
	DecreaseStock(ctx context.Context, id string, qty int) (int64, error)
	// IncreaseStock suma qty sin condición.
	IncreaseStock(ctx context.Context, id string, qty int) (int64, error)
	// SetQuantityOnHand fija el stock; el llamador debe haber hecho LockForUpdate.
	SetQuantityOnHand(ctx context.Context, id string, qty int) error
}

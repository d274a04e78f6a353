package repository

import (
	"context"

	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para proveedores y su vínculo con productos.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Supplier, error)

	// LinkProduct crea o reemplaza el vínculo producto-proveedor.
	LinkProduct(ctx context.Context, link *entity.ProductSupplier) error
	ListProductLinks(ctx context.Context, productID string) ([]*entity.ProductSupplier, error)
	// PreferredForProduct devuelve el vínculo preferido (o el más antiguo); nil si no hay ninguno.
	PreferredForProduct(ctx context.Context, productID string) (*entity.ProductSupplier, error)
}

package ports

import (
	"context"

	"github.com/malikaashish/Inventory-Management-System/internal/domain/repository"
)

// Repositories agrupa los repositorios atados a una misma transacción.
type Repositories struct {
	Products       repository.ProductRepository
	Suppliers      repository.SupplierRepository
	Customers      repository.CustomerRepository
	Adjustments    repository.StockAdjustmentRepository
	SalesOrders    repository.SalesOrderRepository
	PurchaseOrders repository.PurchaseOrderRepository
	Notifications  repository.NotificationRepository
	Users          repository.UserRepository
	Companies      repository.CompanyRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Commit si fn devuelve nil; Rollback en cualquier otro caso (incluido panic).
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repositories) error) error
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/malikaashish/Inventory-Management-System/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ports.Repositories) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(Repositories(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Repositories construye todos los repos sobre q (pool o tx).
func Repositories(q Querier) ports.Repositories {
	return ports.Repositories{
		Products:       NewProductRepository(q),
		Suppliers:      NewSupplierRepository(q),
		Customers:      NewCustomerRepository(q),
		Adjustments:    NewStockAdjustmentRepository(q),
		SalesOrders:    NewSalesOrderRepository(q),
		PurchaseOrders: NewPurchaseOrderRepository(q),
		Notifications:  NewNotificationRepository(q),
		Users:          NewUserRepository(q),
		Companies:      NewCompanyRepository(q),
	}
}

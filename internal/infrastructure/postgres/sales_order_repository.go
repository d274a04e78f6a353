package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/repository"
)

var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

const salesOrderColumns = `id, company_id, order_number, COALESCE(customer_id::text, ''), order_date, status,
	subtotal, tax_amount, discount_amount, total_amount, COALESCE(shipping_address, ''), COALESCE(notes, ''),
	created_by, COALESCE(updated_by::text, ''), created_at, updated_at`

// SalesOrderRepo cabecera + líneas de ventas (usable con pool o tx).
type SalesOrderRepo struct {
	q Querier
}

// NewSalesOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesOrderRepository(q Querier) *SalesOrderRepo {
	return &SalesOrderRepo{q: q}
}

func scanSalesOrder(row pgx.Row) (*entity.SalesOrder, error) {
	var o entity.SalesOrder
	if err := row.Scan(&o.ID, &o.CompanyID, &o.OrderNumber, &o.CustomerID, &o.OrderDate, &o.Status,
		&o.Subtotal, &o.TaxAmount, &o.DiscountAmount, &o.TotalAmount, &o.ShippingAddress, &o.Notes,
		&o.CreatedBy, &o.UpdatedBy, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserta la cabecera y luego cada línea.
func (r *SalesOrderRepo) Create(ctx context.Context, o *entity.SalesOrder) error {
	query := `
		INSERT INTO sales_orders (id, company_id, order_number, customer_id, order_date, status, subtotal,
			tax_amount, discount_amount, total_amount, shipping_address, notes, created_by, updated_by,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.CompanyID, o.OrderNumber, nullIfEmpty(o.CustomerID), o.OrderDate, o.Status, o.Subtotal,
		o.TaxAmount, o.DiscountAmount, o.TotalAmount, nullIfEmpty(o.ShippingAddress), nullIfEmpty(o.Notes),
		o.CreatedBy, nullIfEmpty(o.UpdatedBy), o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sales order: %w", err)
	}
	for _, it := range o.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO sales_order_items (id, sales_order_id, product_id, quantity, unit_price, discount_percent, line_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, o.ID, it.ProductID, it.Quantity, it.UnitPrice, it.DiscountPercent, it.LineTotal)
		if err != nil {
			return fmt.Errorf("insert sales order item: %w", err)
		}
	}
	return nil
}

func (r *SalesOrderRepo) GetByID(ctx context.Context, id string) (*entity.SalesOrder, error) {
	return r.get(ctx, `SELECT `+salesOrderColumns+` FROM sales_orders WHERE id = $1`, id)
}

// GetForUpdate bloquea la cabecera hasta el fin de la transacción.
func (r *SalesOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.SalesOrder, error) {
	return r.get(ctx, `SELECT `+salesOrderColumns+` FROM sales_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *SalesOrderRepo) get(ctx context.Context, query, id string) (*entity.SalesOrder, error) {
	if !isUUID(id) {
		return nil, nil
	}
	o, err := scanSalesOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales order: %w", err)
	}
	if o.Items, err = r.items(ctx, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *SalesOrderRepo) items(ctx context.Context, orderID string) ([]*entity.SalesOrderItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT i.id, i.sales_order_id, i.product_id, p.sku, i.quantity, i.unit_price, i.discount_percent, i.line_total
		FROM sales_order_items i JOIN products p ON p.id = i.product_id
		WHERE i.sales_order_id = $1 ORDER BY p.sku`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list sales order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesOrderItem
	for rows.Next() {
		var it entity.SalesOrderItem
		if err := rows.Scan(&it.ID, &it.SalesOrderID, &it.ProductID, &it.ProductSKU, &it.Quantity,
			&it.UnitPrice, &it.DiscountPercent, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("scan sales order item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

func (r *SalesOrderRepo) UpdateStatus(ctx context.Context, o *entity.SalesOrder) error {
	_, err := r.q.Exec(ctx,
		`UPDATE sales_orders SET status = $2, updated_by = $3, updated_at = $4 WHERE id = $1`,
		o.ID, o.Status, nullIfEmpty(o.UpdatedBy), o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update sales order status: %w", err)
	}
	return nil
}

// ListByCompany más recientes primero; incluye las líneas de cada orden.
func (r *SalesOrderRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.SalesOrder, error) {
	rows, err := r.q.Query(ctx, `SELECT `+salesOrderColumns+` FROM sales_orders WHERE company_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, companyID, limitOrAll(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list sales orders: %w", err)
	}
	var list []*entity.SalesOrder
	for rows.Next() {
		o, err := scanSalesOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan sales order: %w", err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range list {
		if o.Items, err = r.items(ctx, o.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *SalesOrderRepo) CountByCompany(ctx context.Context, companyID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM sales_orders WHERE company_id = $1`, companyID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sales orders: %w", err)
	}
	return n, nil
}

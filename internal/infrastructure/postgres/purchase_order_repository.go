package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const purchaseOrderColumns = `po.id, po.company_id, po.order_number, po.supplier_id, s.name, po.order_date,
	po.expected_date, po.received_date, po.status, po.subtotal, po.tax_amount, po.shipping_cost,
	po.total_amount, COALESCE(po.notes, ''), COALESCE(po.created_by::text, ''), COALESCE(po.approved_by::text, ''),
	COALESCE(po.updated_by::text, ''), po.created_at, po.updated_at`

const purchaseOrderFrom = ` FROM purchase_orders po JOIN suppliers s ON s.id = po.supplier_id`

// PurchaseOrderRepo cabecera + líneas de compras (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

func scanPurchaseOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	if err := row.Scan(&o.ID, &o.CompanyID, &o.OrderNumber, &o.SupplierID, &o.SupplierName, &o.OrderDate,
		&o.ExpectedDate, &o.ReceivedDate, &o.Status, &o.Subtotal, &o.TaxAmount, &o.ShippingCost,
		&o.TotalAmount, &o.Notes, &o.CreatedBy, &o.ApprovedBy,
		&o.UpdatedBy, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserta la cabecera y luego cada línea.
func (r *PurchaseOrderRepo) Create(ctx context.Context, o *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, company_id, order_number, supplier_id, order_date, expected_date,
			received_date, status, subtotal, tax_amount, shipping_cost, total_amount, notes, created_by,
			approved_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.CompanyID, o.OrderNumber, o.SupplierID, o.OrderDate, o.ExpectedDate,
		o.ReceivedDate, o.Status, o.Subtotal, o.TaxAmount, o.ShippingCost, o.TotalAmount, nullIfEmpty(o.Notes),
		nullIfEmpty(o.CreatedBy), nullIfEmpty(o.ApprovedBy), nullIfEmpty(o.UpdatedBy), o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase order: %w", err)
	}
	for _, it := range o.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO purchase_order_items (id, purchase_order_id, product_id, quantity_ordered, quantity_received, unit_cost, line_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, o.ID, it.ProductID, it.QuantityOrdered, it.QuantityReceived, it.UnitCost, it.LineTotal)
		if err != nil {
			return fmt.Errorf("insert purchase order item: %w", err)
		}
	}
	return nil
}

func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, `SELECT `+purchaseOrderColumns+purchaseOrderFrom+` WHERE po.id = $1`, id)
}

// GetForUpdate bloquea solo la cabecera (FOR UPDATE OF po).
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, `SELECT `+purchaseOrderColumns+purchaseOrderFrom+` WHERE po.id = $1 FOR UPDATE OF po`, id)
}

func (r *PurchaseOrderRepo) get(ctx context.Context, query, id string) (*entity.PurchaseOrder, error) {
	if !isUUID(id) {
		return nil, nil
	}
	o, err := scanPurchaseOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	if o.Items, err = r.items(ctx, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *PurchaseOrderRepo) items(ctx context.Context, orderID string) ([]*entity.PurchaseOrderItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT i.id, i.purchase_order_id, i.product_id, p.sku, i.quantity_ordered, i.quantity_received,
			i.unit_cost, i.line_total
		FROM purchase_order_items i JOIN products p ON p.id = i.product_id
		WHERE i.purchase_order_id = $1 ORDER BY p.sku`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list purchase order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrderItem
	for rows.Next() {
		var it entity.PurchaseOrderItem
		if err := rows.Scan(&it.ID, &it.PurchaseOrderID, &it.ProductID, &it.ProductSKU, &it.QuantityOrdered,
			&it.QuantityReceived, &it.UnitCost, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

func (r *PurchaseOrderRepo) Update(ctx context.Context, o *entity.PurchaseOrder) error {
	_, err := r.q.Exec(ctx, `
		UPDATE purchase_orders SET status = $2, approved_by = $3, received_date = $4, updated_by = $5, updated_at = $6
		WHERE id = $1`,
		o.ID, o.Status, nullIfEmpty(o.ApprovedBy), o.ReceivedDate, nullIfEmpty(o.UpdatedBy), o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	return nil
}

func (r *PurchaseOrderRepo) UpdateItemReceived(ctx context.Context, itemID string, quantityReceived int) error {
	_, err := r.q.Exec(ctx,
		`UPDATE purchase_order_items SET quantity_received = $2 WHERE id = $1`, itemID, quantityReceived)
	if err != nil {
		return fmt.Errorf("update purchase order item: %w", err)
	}
	return nil
}

func (r *PurchaseOrderRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	return r.list(ctx, `SELECT `+purchaseOrderColumns+purchaseOrderFrom+` WHERE po.company_id = $1
		ORDER BY po.created_at DESC LIMIT $2 OFFSET $3`, companyID, limitOrAll(limit), offset)
}

func (r *PurchaseOrderRepo) ListByStatuses(ctx context.Context, companyID string, statuses []string) ([]*entity.PurchaseOrder, error) {
	return r.list(ctx, `SELECT `+purchaseOrderColumns+purchaseOrderFrom+`
		WHERE po.company_id = $1 AND po.status = ANY($2)
		ORDER BY po.created_at DESC`, companyID, statuses)
}

func (r *PurchaseOrderRepo) list(ctx context.Context, query string, args ...any) ([]*entity.PurchaseOrder, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	var list []*entity.PurchaseOrder
	for rows.Next() {
		o, err := scanPurchaseOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan purchase order: %w", err)
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

func (r *PurchaseOrderRepo) CountByCompany(ctx context.Context, companyID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM purchase_orders WHERE company_id = $1`, companyID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count purchase orders: %w", err)
	}
	return n, nil
}

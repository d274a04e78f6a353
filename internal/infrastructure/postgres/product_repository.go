package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/malikaashish/Inventory-Management-System/internal/domain"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, company_id, sku, name, COALESCE(description, ''), unit_price, cost_price,
	quantity_on_hand, reorder_point, reorder_quantity, auto_reorder_enabled, expiry_date,
	unit_of_measure, is_active, COALESCE(created_by::text, ''), created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.CompanyID, &p.SKU, &p.Name, &p.Description, &p.UnitPrice, &p.CostPrice,
		&p.QuantityOnHand, &p.ReorderPoint, &p.ReorderQuantity, &p.AutoReorderEnabled, &p.ExpiryDate,
		&p.UnitOfMeasure, &p.IsActive, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *ProductRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, company_id, sku, name, description, unit_price, cost_price, quantity_on_hand,
			reorder_point, reorder_quantity, auto_reorder_enabled, expiry_date, unit_of_measure, is_active,
			created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.SKU, p.Name, nullIfEmpty(p.Description), p.UnitPrice, p.CostPrice, p.QuantityOnHand,
		p.ReorderPoint, p.ReorderQuantity, p.AutoReorderEnabled, p.ExpiryDate, p.UnitOfMeasure, p.IsActive,
		nullIfEmpty(p.CreatedBy), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, "get product", `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetByCompanyAndSKU obtiene un producto por empresa y SKU.
func (r *ProductRepo) GetByCompanyAndSKU(ctx context.Context, companyID, sku string) (*entity.Product, error) {
	return r.getOne(ctx, "get product by sku",
		`SELECT `+productColumns+` FROM products WHERE company_id = $1 AND sku = $2`, companyID, sku)
}

// Update actualiza datos de catálogo. quantity_on_hand solo cambia vía las operaciones de stock.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, unit_price = $4, cost_price = $5, reorder_point = $6,
			reorder_quantity = $7, auto_reorder_enabled = $8, expiry_date = $9, unit_of_measure = $10,
			is_active = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, nullIfEmpty(p.Description), p.UnitPrice, p.CostPrice, p.ReorderPoint,
		p.ReorderQuantity, p.AutoReorderEnabled, p.ExpiryDate, p.UnitOfMeasure, p.IsActive, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// ListByCompany lista productos por empresa con paginación.
func (r *ProductRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE company_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, companyID, limitOrAll(limit), offset)
}

func (r *ProductRepo) ListLowStock(ctx context.Context, companyID string) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products
		WHERE company_id = $1 AND is_active AND quantity_on_hand <= reorder_point
		ORDER BY sku`, companyID)
}

func (r *ProductRepo) ListAutoReorderCandidates(ctx context.Context, companyID string) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products
		WHERE company_id = $1 AND is_active AND auto_reorder_enabled AND quantity_on_hand <= reorder_point
		ORDER BY sku`, companyID)
}

// LockForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
func (r *ProductRepo) LockForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, "lock product", `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

// DecreaseStock UPDATE condicional: la comparación y la resta ocurren en la misma sentencia.
func (r *ProductRepo) DecreaseStock(ctx context.Context, id string, qty int) (int64, error) {
	if !isUUID(id) {
		return 0, nil
	}
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET quantity_on_hand = quantity_on_hand - $2, updated_at = now()
		WHERE id = $1 AND quantity_on_hand >= $2`, id, qty)
	if err != nil {
		return 0, fmt.Errorf("decrease stock: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func (r *ProductRepo) IncreaseStock(ctx context.Context, id string, qty int) (int64, error) {
	if !isUUID(id) {
		return 0, nil
	}
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET quantity_on_hand = quantity_on_hand + $2, updated_at = now()
		WHERE id = $1`, id, qty)
	if err != nil {
		return 0, fmt.Errorf("increase stock: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func (r *ProductRepo) SetQuantityOnHand(ctx context.Context, id string, qty int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET quantity_on_hand = $2, updated_at = now() WHERE id = $1`, id, qty)
	if err != nil {
		if isCheckViolation(err) {
			return domain.InsufficientStockf("el stock no puede quedar negativo")
		}
		return fmt.Errorf("set quantity on hand: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFoundf("producto no encontrado: %s", id)
	}
	return nil
}

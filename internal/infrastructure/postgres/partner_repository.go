package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/malikaashish/Inventory-Management-System/internal/domain"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/repository"
)

var (
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
	_ repository.CustomerRepository = (*CustomerRepo)(nil)
)

const supplierColumns = `id, company_id, name, COALESCE(contact_person, ''), COALESCE(email, ''),
	COALESCE(phone, ''), COALESCE(address, ''), is_active, created_at, updated_at`

const linkColumns = `id, product_id, supplier_id, COALESCE(supplier_sku, ''), supplier_price,
	lead_time_days, is_preferred, created_at`

// SupplierRepo proveedores y vínculos producto-proveedor (usable con pool o tx).
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func scanSupplier(row pgx.Row) (*entity.Supplier, error) {
	var s entity.Supplier
	if err := row.Scan(&s.ID, &s.CompanyID, &s.Name, &s.ContactPerson, &s.Email,
		&s.Phone, &s.Address, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (id, company_id, name, contact_person, email, phone, address, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.CompanyID, s.Name, nullIfEmpty(s.ContactPerson), nullIfEmpty(s.Email),
		nullIfEmpty(s.Phone), nullIfEmpty(s.Address), s.IsActive, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	if !isUUID(id) {
		return nil, nil
	}
	s, err := scanSupplier(r.q.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return s, nil
}

func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	query := `
		UPDATE suppliers SET name = $2, contact_person = $3, email = $4, phone = $5, address = $6,
			is_active = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, s.ID, s.Name, nullIfEmpty(s.ContactPerson), nullIfEmpty(s.Email),
		nullIfEmpty(s.Phone), nullIfEmpty(s.Address), s.IsActive, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Supplier, error) {
	rows, err := r.q.Query(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE company_id = $1
		ORDER BY name LIMIT $2 OFFSET $3`, companyID, limitOrAll(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// LinkProduct upsert por (producto, proveedor). Si el vínculo es preferido, los demás dejan de serlo.
func (r *SupplierRepo) LinkProduct(ctx context.Context, l *entity.ProductSupplier) error {
	if l.IsPreferred {
		if _, err := r.q.Exec(ctx,
			`UPDATE product_suppliers SET is_preferred = FALSE WHERE product_id = $1 AND supplier_id <> $2`,
			l.ProductID, l.SupplierID); err != nil {
			return fmt.Errorf("unset preferred supplier: %w", err)
		}
	}
	query := `
		INSERT INTO product_suppliers (id, product_id, supplier_id, supplier_sku, supplier_price, lead_time_days, is_preferred, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (product_id, supplier_id)
		DO UPDATE SET supplier_sku = EXCLUDED.supplier_sku, supplier_price = EXCLUDED.supplier_price,
			lead_time_days = EXCLUDED.lead_time_days, is_preferred = EXCLUDED.is_preferred`
	_, err := r.q.Exec(ctx, query, l.ID, l.ProductID, l.SupplierID, nullIfEmpty(l.SupplierSKU),
		l.SupplierPrice, l.LeadTimeDays, l.IsPreferred, l.CreatedAt)
	if err != nil {
		return fmt.Errorf("link product supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepo) ListProductLinks(ctx context.Context, productID string) ([]*entity.ProductSupplier, error) {
	if !isUUID(productID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `SELECT `+linkColumns+` FROM product_suppliers WHERE product_id = $1
		ORDER BY is_preferred DESC, created_at ASC`, productID)
	if err != nil {
		return nil, fmt.Errorf("list product suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductSupplier
	for rows.Next() {
		var l entity.ProductSupplier
		if err := rows.Scan(&l.ID, &l.ProductID, &l.SupplierID, &l.SupplierSKU, &l.SupplierPrice,
			&l.LeadTimeDays, &l.IsPreferred, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product supplier: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

func (r *SupplierRepo) PreferredForProduct(ctx context.Context, productID string) (*entity.ProductSupplier, error) {
	if !isUUID(productID) {
		return nil, nil
	}
	var l entity.ProductSupplier
	err := r.q.QueryRow(ctx, `SELECT `+linkColumns+` FROM product_suppliers WHERE product_id = $1
		ORDER BY is_preferred DESC, created_at ASC LIMIT 1`, productID).Scan(
		&l.ID, &l.ProductID, &l.SupplierID, &l.SupplierSKU, &l.SupplierPrice,
		&l.LeadTimeDays, &l.IsPreferred, &l.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("preferred supplier: %w", err)
	}
	return &l, nil
}

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, company_id, name, COALESCE(email, ''), COALESCE(phone, ''),
	COALESCE(address, ''), is_active, created_at, updated_at`

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	if err := row.Scan(&c.ID, &c.CompanyID, &c.Name, &c.Email, &c.Phone,
		&c.Address, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (id, company_id, name, email, phone, address, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query, c.ID, c.CompanyID, c.Name, nullIfEmpty(c.Email), nullIfEmpty(c.Phone),
		nullIfEmpty(c.Address), c.IsActive, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	if !isUUID(id) {
		return nil, nil
	}
	c, err := scanCustomer(r.q.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// ListByCompany lista clientes de la empresa ordenados por nombre.
func (r *CustomerRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Customer, error) {
	rows, err := r.q.Query(ctx, `SELECT `+customerColumns+` FROM customers WHERE company_id = $1
		ORDER BY name LIMIT $2 OFFSET $3`, companyID, limitOrAll(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza datos del cliente.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	_, err := r.q.Exec(ctx, `
		UPDATE customers SET name = $2, email = $3, phone = $4, address = $5, is_active = $6, updated_at = $7
		WHERE id = $1`,
		c.ID, c.Name, nullIfEmpty(c.Email), nullIfEmpty(c.Phone), nullIfEmpty(c.Address), c.IsActive, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

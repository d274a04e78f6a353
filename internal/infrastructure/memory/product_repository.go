package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/malikaashish/Inventory-Management-System/internal/domain"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct{ base }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	defer r.guard()()
	st := r.state()
	if p.QuantityOnHand < 0 {
		return fmt.Errorf("insert product: quantity_on_hand negativo")
	}
	for _, existing := range st.products {
		if existing.CompanyID == p.CompanyID && existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	st.products[p.ID] = copyProduct(p)
	st.productOrder = append(st.productOrder, p.ID)
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	defer r.guard()()
	return copyProduct(r.state().products[id]), nil
}

func (r *ProductRepo) GetByCompanyAndSKU(_ context.Context, companyID, sku string) (*entity.Product, error) {
	defer r.guard()()
	for _, p := range r.state().products {
		if p.CompanyID == companyID && p.SKU == sku {
			return copyProduct(p), nil
		}
	}
	return nil, nil
}

// Update copia solo los campos de catálogo; el stock se conserva.
func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	defer r.guard()()
	cur, ok := r.state().products[p.ID]
	if !ok {
		return nil
	}
	qty := cur.QuantityOnHand
	*cur = *p
	cur.QuantityOnHand = qty
	return nil
}

func (r *ProductRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	defer r.guard()()
	st := r.state()
	var all []*entity.Product
	for i := len(st.productOrder) - 1; i >= 0; i-- {
		if p := st.products[st.productOrder[i]]; p.CompanyID == companyID {
			all = append(all, p)
		}
	}
	from, to := page(len(all), limit, offset)
	out := make([]*entity.Product, 0, to-from)
	for _, p := range all[from:to] {
		out = append(out, copyProduct(p))
	}
	return out, nil
}

func (r *ProductRepo) ListLowStock(_ context.Context, companyID string) ([]*entity.Product, error) {
	defer r.guard()()
	return r.filter(companyID, func(p *entity.Product) bool { return p.IsActive && p.IsLowStock() }), nil
}

func (r *ProductRepo) ListAutoReorderCandidates(_ context.Context, companyID string) ([]*entity.Product, error) {
	defer r.guard()()
	return r.filter(companyID, func(p *entity.Product) bool {
		return p.IsActive && p.AutoReorderEnabled && p.IsLowStock()
	}), nil
}

// filter ordenado por SKU, como el ORDER BY del adaptador PostgreSQL.
func (r *ProductRepo) filter(companyID string, keep func(*entity.Product) bool) []*entity.Product {
	var out []*entity.Product
	for _, p := range r.state().products {
		if p.CompanyID == companyID && keep(p) {
			out = append(out, copyProduct(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out
}

// LockForUpdate: dentro de Run el mutex global ya serializa el acceso.
func (r *ProductRepo) LockForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) DecreaseStock(_ context.Context, id string, qty int) (int64, error) {
	defer r.guard()()
	p, ok := r.state().products[id]
	if !ok || p.QuantityOnHand < qty {
		return 0, nil
	}
	p.QuantityOnHand -= qty
	p.UpdatedAt = time.Now()
	return 1, nil
}

func (r *ProductRepo) IncreaseStock(_ context.Context, id string, qty int) (int64, error) {
	defer r.guard()()
	p, ok := r.state().products[id]
	if !ok {
		return 0, nil
	}
	p.QuantityOnHand += qty
	p.UpdatedAt = time.Now()
	return 1, nil
}

func (r *ProductRepo) SetQuantityOnHand(_ context.Context, id string, qty int) error {
	defer r.guard()()
	if qty < 0 {
		return fmt.Errorf("set quantity on hand: quantity_on_hand negativo")
	}
	p, ok := r.state().products[id]
	if !ok {
		return domain.NotFoundf("producto no encontrado: %s", id)
	}
	p.QuantityOnHand = qty
	p.UpdatedAt = time.Now()
	return nil
}

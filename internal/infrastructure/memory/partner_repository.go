package memory

import (
	"context"
	"sort"

	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/repository"
)

var (
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
	_ repository.CustomerRepository = (*CustomerRepo)(nil)
)

// SupplierRepo proveedores y vínculos producto-proveedor en memoria.
type SupplierRepo struct{ base }

func (r *SupplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	defer r.guard()()
	st := r.state()
	cp := *s
	st.suppliers[s.ID] = &cp
	st.supplierOrder = append(st.supplierOrder, s.ID)
	return nil
}

func (r *SupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	defer r.guard()()
	s, ok := r.state().suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *SupplierRepo) Update(_ context.Context, s *entity.Supplier) error {
	defer r.guard()()
	if cur, ok := r.state().suppliers[s.ID]; ok {
		*cur = *s
	}
	return nil
}

func (r *SupplierRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Supplier, error) {
	defer r.guard()()
	st := r.state()
	var all []*entity.Supplier
	for _, id := range st.supplierOrder {
		if s := st.suppliers[id]; s.CompanyID == companyID {
			cp := *s
			all = append(all, &cp)
		}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	from, to := page(len(all), limit, offset)
	return all[from:to], nil
}

// LinkProduct reemplaza el vínculo (producto, proveedor) si existe. Un vínculo preferido
// desmarca a los demás del mismo producto.
func (r *SupplierRepo) LinkProduct(_ context.Context, link *entity.ProductSupplier) error {
	defer r.guard()()
	st := r.state()
	cp := *link
	replaced := false
	for i, l := range st.links {
		if l.ProductID != link.ProductID {
			continue
		}
		if l.SupplierID == link.SupplierID {
			cp.ID = l.ID
			cp.CreatedAt = l.CreatedAt
			st.links[i] = &cp
			replaced = true
		} else if link.IsPreferred {
			l.IsPreferred = false
		}
	}
	if !replaced {
		st.links = append(st.links, &cp)
	}
	return nil
}

func (r *SupplierRepo) ListProductLinks(_ context.Context, productID string) ([]*entity.ProductSupplier, error) {
	defer r.guard()()
	return r.links(productID), nil
}

func (r *SupplierRepo) PreferredForProduct(_ context.Context, productID string) (*entity.ProductSupplier, error) {
	defer r.guard()()
	links := r.links(productID)
	if len(links) == 0 {
		return nil, nil
	}
	return links[0], nil
}

// links ordenados: preferido primero, luego el más antiguo.
func (r *SupplierRepo) links(productID string) []*entity.ProductSupplier {
	var out []*entity.ProductSupplier
	for _, l := range r.state().links {
		if l.ProductID == productID {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsPreferred != out[j].IsPreferred {
			return out[i].IsPreferred
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// CustomerRepo clientes en memoria.
type CustomerRepo struct{ base }

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	defer r.guard()()
	st := r.state()
	cp := *c
	st.customers[c.ID] = &cp
	st.customerOrder = append(st.customerOrder, c.ID)
	return nil
}

func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	defer r.guard()()
	c, ok := r.state().customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *CustomerRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Customer, error) {
	defer r.guard()()
	st := r.state()
	var all []*entity.Customer
	for _, id := range st.customerOrder {
		if c := st.customers[id]; c.CompanyID == companyID {
			cp := *c
			all = append(all, &cp)
		}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	from, to := page(len(all), limit, offset)
	return all[from:to], nil
}

func (r *CustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	defer r.guard()()
	if cur, ok := r.state().customers[c.ID]; ok {
		*cur = *c
	}
	return nil
}

package memory

import (
	"context"

	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/repository"
)

var (
	_ repository.SalesOrderRepository    = (*SalesOrderRepo)(nil)
	_ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)
)

// SalesOrderRepo órdenes de venta en memoria.
type SalesOrderRepo struct{ base }

func (r *SalesOrderRepo) Create(_ context.Context, o *entity.SalesOrder) error {
	defer r.guard()()
	st := r.state()
	st.salesOrders[o.ID] = copySalesOrder(o)
	st.salesOrder = append(st.salesOrder, o.ID)
	return nil
}

func (r *SalesOrderRepo) GetByID(_ context.Context, id string) (*entity.SalesOrder, error) {
	defer r.guard()()
	return copySalesOrder(r.state().salesOrders[id]), nil
}

func (r *SalesOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.SalesOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *SalesOrderRepo) UpdateStatus(_ context.Context, o *entity.SalesOrder) error {
	defer r.guard()()
	if cur, ok := r.state().salesOrders[o.ID]; ok {
		cur.Status = o.Status
		cur.UpdatedBy = o.UpdatedBy
		cur.UpdatedAt = o.UpdatedAt
	}
	return nil
}

func (r *SalesOrderRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.SalesOrder, error) {
	defer r.guard()()
	st := r.state()
	var all []*entity.SalesOrder
	for i := len(st.salesOrder) - 1; i >= 0; i-- {
		if o := st.salesOrders[st.salesOrder[i]]; o.CompanyID == companyID {
			all = append(all, o)
		}
	}
	from, to := page(len(all), limit, offset)
	out := make([]*entity.SalesOrder, 0, to-from)
	for _, o := range all[from:to] {
		out = append(out, copySalesOrder(o))
	}
	return out, nil
}

func (r *SalesOrderRepo) CountByCompany(_ context.Context, companyID string) (int, error) {
	defer r.guard()()
	n := 0
	for _, o := range r.state().salesOrders {
		if o.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

// PurchaseOrderRepo órdenes de compra en memoria.
type PurchaseOrderRepo struct{ base }

func (r *PurchaseOrderRepo) Create(_ context.Context, o *entity.PurchaseOrder) error {
	defer r.guard()()
	st := r.state()
	st.purchaseOrders[o.ID] = copyPurchaseOrder(o)
	st.purchaseOrder = append(st.purchaseOrder, o.ID)
	return nil
}

func (r *PurchaseOrderRepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	defer r.guard()()
	st := r.state()
	po := copyPurchaseOrder(st.purchaseOrders[id])
	if po != nil {
		if s, ok := st.suppliers[po.SupplierID]; ok {
			po.SupplierName = s.Name
		}
	}
	return po, nil
}

func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *PurchaseOrderRepo) Update(_ context.Context, o *entity.PurchaseOrder) error {
	defer r.guard()()
	if cur, ok := r.state().purchaseOrders[o.ID]; ok {
		cur.Status = o.Status
		cur.ApprovedBy = o.ApprovedBy
		cur.ReceivedDate = o.ReceivedDate
		cur.UpdatedBy = o.UpdatedBy
		cur.UpdatedAt = o.UpdatedAt
	}
	return nil
}

func (r *PurchaseOrderRepo) UpdateItemReceived(_ context.Context, itemID string, quantityReceived int) error {
	defer r.guard()()
	for _, po := range r.state().purchaseOrders {
		for _, it := range po.Items {
			if it.ID == itemID {
				it.QuantityReceived = quantityReceived
				return nil
			}
		}
	}
	return nil
}

func (r *PurchaseOrderRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	defer r.guard()()
	all := r.newestFirst(func(o *entity.PurchaseOrder) bool { return o.CompanyID == companyID })
	from, to := page(len(all), limit, offset)
	return all[from:to], nil
}

func (r *PurchaseOrderRepo) ListByStatuses(_ context.Context, companyID string, statuses []string) ([]*entity.PurchaseOrder, error) {
	defer r.guard()()
	want := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		want[s] = true
	}
	return r.newestFirst(func(o *entity.PurchaseOrder) bool {
		return o.CompanyID == companyID && want[o.Status]
	}), nil
}

func (r *PurchaseOrderRepo) CountByCompany(_ context.Context, companyID string) (int, error) {
	defer r.guard()()
	return len(r.newestFirst(func(o *entity.PurchaseOrder) bool { return o.CompanyID == companyID })), nil
}

func (r *PurchaseOrderRepo) newestFirst(keep func(*entity.PurchaseOrder) bool) []*entity.PurchaseOrder {
	st := r.state()
	var out []*entity.PurchaseOrder
	for i := len(st.purchaseOrder) - 1; i >= 0; i-- {
		o := st.purchaseOrders[st.purchaseOrder[i]]
		if !keep(o) {
			continue
		}
		cp := copyPurchaseOrder(o)
		if s, ok := st.suppliers[cp.SupplierID]; ok {
			cp.SupplierName = s.Name
		}
		out = append(out, cp)
	}
	return out
}

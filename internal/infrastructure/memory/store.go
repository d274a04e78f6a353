// Package memory implementa los repositorios y el TxRunner en memoria.
// Se usa en tests y en modo desarrollo (DB_DRIVER=memory).
package memory

import (
	"context"
	"sync"

	"github.com/malikaashish/Inventory-Management-System/internal/application/ports"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
)

var _ ports.TxRunner = (*Store)(nil)

// Store almacén en memoria. Una transacción toma el mutex global durante todo fn
// (aislamiento serializable) y restaura una copia del estado si fn falla.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Run ejecuta fn con repositorios atados a la transacción. Todo o nada.
func (s *Store) Run(ctx context.Context, fn func(repos ports.Repositories) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	defer func() {
		if r := recover(); r != nil {
			s.st = snapshot
			panic(r)
		}
	}()
	if err := fn(s.repositories(true)); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

// Repositories repositorios fuera de transacción: cada llamada toma el mutex por separado.
func (s *Store) Repositories() ports.Repositories {
	return s.repositories(false)
}

func (s *Store) repositories(inTx bool) ports.Repositories {
	b := base{s: s, inTx: inTx}
	return ports.Repositories{
		Products:       &ProductRepo{b},
		Suppliers:      &SupplierRepo{b},
		Customers:      &CustomerRepo{b},
		Adjustments:    &StockAdjustmentRepo{b},
		SalesOrders:    &SalesOrderRepo{b},
		PurchaseOrders: &PurchaseOrderRepo{b},
		Notifications:  &NotificationRepo{b},
		Users:          &UserRepo{b},
		Companies:      &CompanyRepo{b},
	}
}

// base comparte el acceso al estado entre repositorios.
type base struct {
	s    *Store
	inTx bool
}

// guard toma el mutex solo fuera de transacción (dentro ya lo tiene Run).
func (b base) guard() func() {
	if b.inTx {
		return func() {}
	}
	b.s.mu.Lock()
	return b.s.mu.Unlock
}

func (b base) state() *state { return b.s.st }

type state struct {
	products       map[string]*entity.Product
	productOrder   []string
	suppliers      map[string]*entity.Supplier
	supplierOrder  []string
	links          []*entity.ProductSupplier
	customers      map[string]*entity.Customer
	customerOrder  []string
	adjustments    []*entity.StockAdjustment
	salesOrders    map[string]*entity.SalesOrder
	salesOrder     []string
	purchaseOrders map[string]*entity.PurchaseOrder
	purchaseOrder  []string
	notifications  []*entity.Notification
	users          map[string]*entity.User
	userOrder      []string
	companies      map[string]*entity.Company
	companyOrder   []string
	modules        []*entity.CompanyModule
}

func newState() *state {
	return &state{
		products:       map[string]*entity.Product{},
		suppliers:      map[string]*entity.Supplier{},
		customers:      map[string]*entity.Customer{},
		salesOrders:    map[string]*entity.SalesOrder{},
		purchaseOrders: map[string]*entity.PurchaseOrder{},
		users:          map[string]*entity.User{},
		companies:      map[string]*entity.Company{},
	}
}

// clone copia profunda del estado (las entidades se copian, no se comparten).
func (st *state) clone() *state {
	c := newState()
	for k, v := range st.products {
		c.products[k] = copyProduct(v)
	}
	for k, v := range st.suppliers {
		cp := *v
		c.suppliers[k] = &cp
	}
	for k, v := range st.customers {
		cp := *v
		c.customers[k] = &cp
	}
	for k, v := range st.salesOrders {
		c.salesOrders[k] = copySalesOrder(v)
	}
	for k, v := range st.purchaseOrders {
		c.purchaseOrders[k] = copyPurchaseOrder(v)
	}
	for k, v := range st.users {
		cp := *v
		c.users[k] = &cp
	}
	for k, v := range st.companies {
		cp := *v
		c.companies[k] = &cp
	}
	for _, v := range st.links {
		cp := *v
		c.links = append(c.links, &cp)
	}
	for _, v := range st.adjustments {
		cp := *v
		c.adjustments = append(c.adjustments, &cp)
	}
	for _, v := range st.notifications {
		cp := *v
		c.notifications = append(c.notifications, &cp)
	}
	for _, v := range st.modules {
		cp := *v
		c.modules = append(c.modules, &cp)
	}
	c.productOrder = append([]string(nil), st.productOrder...)
	c.supplierOrder = append([]string(nil), st.supplierOrder...)
	c.customerOrder = append([]string(nil), st.customerOrder...)
	c.salesOrder = append([]string(nil), st.salesOrder...)
	c.purchaseOrder = append([]string(nil), st.purchaseOrder...)
	c.userOrder = append([]string(nil), st.userOrder...)
	c.companyOrder = append([]string(nil), st.companyOrder...)
	return c
}

func copyProduct(p *entity.Product) *entity.Product {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

func copySalesOrder(o *entity.SalesOrder) *entity.SalesOrder {
	if o == nil {
		return nil
	}
	cp := *o
	cp.Items = make([]*entity.SalesOrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		ci := *it
		cp.Items = append(cp.Items, &ci)
	}
	return &cp
}

func copyPurchaseOrder(o *entity.PurchaseOrder) *entity.PurchaseOrder {
	if o == nil {
		return nil
	}
	cp := *o
	cp.Items = make([]*entity.PurchaseOrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		ci := *it
		cp.Items = append(cp.Items, &ci)
	}
	return &cp
}

// page aplica limit/offset sobre n elementos; limit <= 0 = sin límite.
func page(n, limit, offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		offset = n
	}
	end := n
	if limit > 0 && offset+limit < n {
		end = offset + limit
	}
	return offset, end
}

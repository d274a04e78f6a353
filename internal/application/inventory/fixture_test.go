package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/malikaashish/Inventory-Management-System/internal/application/events"
	"github.com/malikaashish/Inventory-Management-System/internal/application/notification"
	"github.com/malikaashish/Inventory-Management-System/internal/application/ports"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
	"github.com/malikaashish/Inventory-Management-System/internal/infrastructure/memory"
	"github.com/malikaashish/Inventory-Management-System/pkg/logger"
)

// fixture empresa con un ADMIN sobre el almacén en memoria.
type fixture struct {
	store     *memory.Store
	repos     ports.Repositories
	notifier  *notification.NotificationUseCase
	events    *events.Dispatcher
	companyID string
	adminID   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	dispatcher := events.NewDispatcher(nil, nil, logger.Nop())
	f := &fixture{
		store:    store,
		repos:    store.Repositories(),
		events:   dispatcher,
		notifier: notification.NewNotificationUseCase(store, dispatcher, nil, logger.Nop()),
	}
	f.companyID = f.addCompany(t, "Distribuidora Norte")
	f.adminID = f.addUser(t, f.companyID, entity.RoleAdmin)
	return f
}

func (f *fixture) addCompany(t *testing.T, name string) string {
	t.Helper()
	now := time.Now()
	c := &entity.Company{ID: uuid.NewString(), Name: name, Status: "active", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, f.repos.Companies.Create(context.Background(), c))
	return c.ID
}

func (f *fixture) addUser(t *testing.T, companyID, role string) string {
	t.Helper()
	now := time.Now()
	u := &entity.User{
		ID:        uuid.NewString(),
		CompanyID: companyID,
		Email:     uuid.NewString() + "@test.local",
		Name:      role,
		Role:      role,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, f.repos.Users.Create(context.Background(), u))
	return u.ID
}

// productOpts valores distintos de cero para el producto de prueba.
type productOpts struct {
	stock, reorderPoint, reorderQty int
	autoReorder                     bool
	cost                            string
}

func (f *fixture) addProduct(t *testing.T, companyID, sku string, o productOpts) *entity.Product {
	t.Helper()
	now := time.Now()
	cost := decimal.Zero
	if o.cost != "" {
		cost = decimal.RequireFromString(o.cost)
	}
	p := &entity.Product{
		ID:                 uuid.NewString(),
		CompanyID:          companyID,
		SKU:                sku,
		Name:               "Producto " + sku,
		UnitPrice:          decimal.NewFromInt(10),
		CostPrice:          cost,
		QuantityOnHand:     o.stock,
		ReorderPoint:       o.reorderPoint,
		ReorderQuantity:    o.reorderQty,
		AutoReorderEnabled: o.autoReorder,
		UnitOfMeasure:      "UNIT",
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	require.NoError(t, f.repos.Products.Create(context.Background(), p))
	return p
}

func (f *fixture) addSupplier(t *testing.T, companyID, name string) *entity.Supplier {
	t.Helper()
	now := time.Now()
	s := &entity.Supplier{ID: uuid.NewString(), CompanyID: companyID, Name: name, IsActive: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, f.repos.Suppliers.Create(context.Background(), s))
	return s
}

func (f *fixture) link(t *testing.T, productID, supplierID, price string, leadDays int) {
	t.Helper()
	l := &entity.ProductSupplier{
		ID:           uuid.NewString(),
		ProductID:    productID,
		SupplierID:   supplierID,
		LeadTimeDays: leadDays,
		IsPreferred:  true,
		CreatedAt:    time.Now(),
	}
	if price != "" {
		d := decimal.RequireFromString(price)
		l.SupplierPrice = &d
	}
	require.NoError(t, f.repos.Suppliers.LinkProduct(context.Background(), l))
}

func (f *fixture) stock(t *testing.T, productID string) int {
	t.Helper()
	p, err := f.repos.Products.GetByID(context.Background(), productID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.QuantityOnHand
}

func (f *fixture) unread(t *testing.T, userID string) int {
	t.Helper()
	n, err := f.repos.Notifications.CountUnread(context.Background(), userID)
	require.NoError(t, err)
	return n
}

// fakeExporter registra lo que recibe para verificar el orden del historial.
type fakeExporter struct {
	product *entity.Product
	rows    []*entity.StockAdjustment
}

func (e *fakeExporter) AdjustmentHistory(p *entity.Product, rows []*entity.StockAdjustment) ([]byte, error) {
	e.product, e.rows = p, rows
	return []byte("xlsx"), nil
}

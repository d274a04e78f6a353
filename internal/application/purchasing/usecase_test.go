package purchasing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malikaashish/Inventory-Management-System/internal/application/dto"
	"github.com/malikaashish/Inventory-Management-System/internal/application/events"
	"github.com/malikaashish/Inventory-Management-System/internal/application/notification"
	"github.com/malikaashish/Inventory-Management-System/internal/application/ports"
	"github.com/malikaashish/Inventory-Management-System/internal/application/purchasing"
	"github.com/malikaashish/Inventory-Management-System/internal/domain"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
	"github.com/malikaashish/Inventory-Management-System/internal/infrastructure/memory"
	"github.com/malikaashish/Inventory-Management-System/pkg/logger"
)

type fakeRenderer struct {
	po       *entity.PurchaseOrder
	supplier *entity.Supplier
}

func (r *fakeRenderer) PurchaseOrder(po *entity.PurchaseOrder, supplier *entity.Supplier) ([]byte, error) {
	r.po, r.supplier = po, supplier
	return []byte("%PDF-1.3"), nil
}

type poFixture struct {
	uc         *purchasing.PurchaseOrderUseCase
	renderer   *fakeRenderer
	repos      ports.Repositories
	companyID  string
	adminID    string
	supplierID string
}

func newPOFixture(t *testing.T) *poFixture {
	t.Helper()
	store := memory.NewStore()
	dispatcher := events.NewDispatcher(nil, nil, logger.Nop())
	notifier := notification.NewNotificationUseCase(store, dispatcher, nil, logger.Nop())
	f := &poFixture{renderer: &fakeRenderer{}, repos: store.Repositories()}
	f.uc = purchasing.NewPurchaseOrderUseCase(store, notifier, dispatcher, f.renderer, nil, logger.Nop())

	ctx := context.Background()
	now := time.Now()
	f.companyID = uuid.NewString()
	require.NoError(t, f.repos.Companies.Create(ctx, &entity.Company{ID: f.companyID, Name: "Ferretería", Status: "active", CreatedAt: now, UpdatedAt: now}))
	f.adminID = uuid.NewString()
	require.NoError(t, f.repos.Users.Create(ctx, &entity.User{
		ID: f.adminID, CompanyID: f.companyID, Email: "compras@ferreteria.test", Role: entity.RoleAdmin, Status: "active", CreatedAt: now, UpdatedAt: now,
	}))
	f.supplierID = uuid.NewString()
	require.NoError(t, f.repos.Suppliers.Create(ctx, &entity.Supplier{ID: f.supplierID, CompanyID: f.companyID, Name: "Tornillos SA", IsActive: true, CreatedAt: now, UpdatedAt: now}))
	return f
}

func (f *poFixture) product(t *testing.T, sku string, stock int) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		ID: uuid.NewString(), CompanyID: f.companyID, SKU: sku, Name: sku,
		UnitPrice: decimal.NewFromInt(5), QuantityOnHand: stock, ReorderPoint: 10,
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, f.repos.Products.Create(context.Background(), p))
	return p
}

func (f *poFixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.repos.Products.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.QuantityOnHand
}

// ordered crea una orden y la lleva a ORDERED.
func (f *poFixture) ordered(t *testing.T, lines ...dto.PurchaseOrderItemRequest) *dto.PurchaseOrderResponse {
	t.Helper()
	ctx := context.Background()
	po, err := f.uc.Create(ctx, f.companyID, f.adminID, dto.CreatePurchaseOrderRequest{SupplierID: f.supplierID, Items: lines})
	require.NoError(t, err)
	po, err = f.uc.UpdateStatus(ctx, f.companyID, f.adminID, po.ID, entity.PurchaseStatusOrdered)
	require.NoError(t, err)
	return po
}

func item(productID string, qty int, cost string) dto.PurchaseOrderItemRequest {
	return dto.PurchaseOrderItemRequest{ProductID: productID, Quantity: qty, UnitCost: decimal.RequireFromString(cost)}
}

func TestCreate_Borrador(t *testing.T) {
	f := newPOFixture(t)
	p := f.product(t, "TOR-8", 3)

	po, err := f.uc.Create(context.Background(), f.companyID, f.adminID, dto.CreatePurchaseOrderRequest{
		SupplierID:   f.supplierID,
		Items:        []dto.PurchaseOrderItemRequest{item(p.ID, 40, "0.25")},
		TaxAmount:    decimal.RequireFromString("1.90"),
		ShippingCost: decimal.NewFromInt(3),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusDraft, po.Status)
	assert.Equal(t, "Tornillos SA", po.SupplierName)
	assert.Regexp(t, `^PO\d{8}-`, po.OrderNumber)
	assert.Equal(t, "10", po.Subtotal.String())
	assert.Equal(t, "14.9", po.TotalAmount.String())
	assert.Equal(t, 3, f.stock(t, p.ID), "crear no mueve stock")
}

func TestCreate_Validaciones(t *testing.T) {
	f := newPOFixture(t)
	p := f.product(t, "TOR-8", 3)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, f.companyID, f.adminID, dto.CreatePurchaseOrderRequest{SupplierID: f.supplierID})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = f.uc.Create(ctx, f.companyID, f.adminID, dto.CreatePurchaseOrderRequest{
		SupplierID: f.supplierID, Items: []dto.PurchaseOrderItemRequest{item(p.ID, 1, "-1")},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = f.uc.Create(ctx, f.companyID, f.adminID, dto.CreatePurchaseOrderRequest{
		SupplierID: f.supplierID, Items: []dto.PurchaseOrderItemRequest{item(p.ID, 1, "0.125")},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "costo con 3 decimales")

	_, err = f.uc.Create(ctx, f.companyID, f.adminID, dto.CreatePurchaseOrderRequest{
		SupplierID:   f.supplierID,
		Items:        []dto.PurchaseOrderItemRequest{item(p.ID, 1, "1")},
		ShippingCost: decimal.RequireFromString("3.999"),
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "envío con 3 decimales")

	_, err = f.uc.Create(ctx, f.companyID, f.adminID, dto.CreatePurchaseOrderRequest{
		SupplierID: uuid.NewString(), Items: []dto.PurchaseOrderItemRequest{item(p.ID, 1, "1")},
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = f.uc.Create(ctx, uuid.NewString(), f.adminID, dto.CreatePurchaseOrderRequest{
		SupplierID: f.supplierID, Items: []dto.PurchaseOrderItemRequest{item(p.ID, 1, "1")},
	})
	assert.True(t, errors.Is(err, domain.ErrForbidden), "proveedor de otra empresa")
}

func TestUpdateStatus(t *testing.T) {
	f := newPOFixture(t)
	p := f.product(t, "TOR-8", 3)
	ctx := context.Background()
	po, err := f.uc.Create(ctx, f.companyID, f.adminID, dto.CreatePurchaseOrderRequest{
		SupplierID: f.supplierID, Items: []dto.PurchaseOrderItemRequest{item(p.ID, 10, "1")},
	})
	require.NoError(t, err)

	out, err := f.uc.UpdateStatus(ctx, f.companyID, f.adminID, po.ID, entity.PurchaseStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, f.adminID, out.ApprovedBy)

	_, err = f.uc.UpdateStatus(ctx, f.companyID, f.adminID, po.ID, entity.PurchaseStatusReceived)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "RECEIVED solo vía recepción")
	_, err = f.uc.UpdateStatus(ctx, f.companyID, f.adminID, po.ID, entity.PurchaseStatusPartiallyReceived)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, err = f.uc.UpdateStatus(ctx, f.companyID, f.adminID, po.ID, "SHIPPED")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = f.uc.UpdateStatus(ctx, f.companyID, f.adminID, po.ID, entity.PurchaseStatusCancelled)
	require.NoError(t, err)
	_, err = f.uc.UpdateStatus(ctx, f.companyID, f.adminID, po.ID, entity.PurchaseStatusOrdered)
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition), "CANCELLED es terminal")
	assert.Equal(t, 3, f.stock(t, p.ID))
}

func TestReceive_ParcialYTotal(t *testing.T) {
	f := newPOFixture(t)
	p := f.product(t, "TOR-8", 3)
	ctx := context.Background()
	po := f.ordered(t, item(p.ID, 40, "0.5"))
	itemID := po.Items[0].ID

	out, err := f.uc.Receive(ctx, f.companyID, f.adminID, po.ID, dto.ReceivePurchaseOrderRequest{
		Items: []dto.ReceiveItemRequest{{ItemID: itemID, Quantity: 15}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusPartiallyReceived, out.Status)
	assert.Equal(t, 15, out.Items[0].QuantityReceived)
	assert.Nil(t, out.ReceivedDate)
	assert.Equal(t, 18, f.stock(t, p.ID))

	out, err = f.uc.Receive(ctx, f.companyID, f.adminID, po.ID, dto.ReceivePurchaseOrderRequest{
		Items: []dto.ReceiveItemRequest{{ItemID: itemID, Quantity: 25}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusReceived, out.Status)
	assert.NotNil(t, out.ReceivedDate)
	assert.Equal(t, 43, f.stock(t, p.ID))

	n, err := f.repos.Notifications.CountUnread(ctx, f.adminID)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "aviso de orden recibida")

	_, err = f.uc.Receive(ctx, f.companyID, f.adminID, po.ID, dto.ReceivePurchaseOrderRequest{
		Items: []dto.ReceiveItemRequest{{ItemID: itemID, Quantity: 1}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition), "RECEIVED es terminal")
}

func TestReceive_ExcesoEsAtomico(t *testing.T) {
	f := newPOFixture(t)
	a := f.product(t, "A", 0)
	b := f.product(t, "B", 0)
	ctx := context.Background()
	po := f.ordered(t, item(a.ID, 10, "1"), item(b.ID, 5, "1"))

	_, err := f.uc.Receive(ctx, f.companyID, f.adminID, po.ID, dto.ReceivePurchaseOrderRequest{
		Items: []dto.ReceiveItemRequest{
			{ItemID: po.Items[0].ID, Quantity: 10},
			{ItemID: po.Items[1].ID, Quantity: 6},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Equal(t, 0, f.stock(t, a.ID), "la primera línea no se aplica")
	assert.Equal(t, 0, f.stock(t, b.ID))

	got, err := f.uc.Get(ctx, f.companyID, po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusOrdered, got.Status)
	for _, it := range got.Items {
		assert.Zero(t, it.QuantityReceived)
	}
}

func TestReceive_Validaciones(t *testing.T) {
	f := newPOFixture(t)
	p := f.product(t, "A", 0)
	ctx := context.Background()

	draft, err := f.uc.Create(ctx, f.companyID, f.adminID, dto.CreatePurchaseOrderRequest{
		SupplierID: f.supplierID, Items: []dto.PurchaseOrderItemRequest{item(p.ID, 10, "1")},
	})
	require.NoError(t, err)
	_, err = f.uc.Receive(ctx, f.companyID, f.adminID, draft.ID, dto.ReceivePurchaseOrderRequest{
		Items: []dto.ReceiveItemRequest{{ItemID: draft.Items[0].ID, Quantity: 1}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition), "DRAFT no recibe")

	po := f.ordered(t, item(p.ID, 10, "1"))
	_, err = f.uc.Receive(ctx, f.companyID, f.adminID, po.ID, dto.ReceivePurchaseOrderRequest{})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, err = f.uc.Receive(ctx, f.companyID, f.adminID, po.ID, dto.ReceivePurchaseOrderRequest{
		Items: []dto.ReceiveItemRequest{{ItemID: uuid.NewString(), Quantity: 1}},
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = f.uc.Receive(ctx, uuid.NewString(), f.adminID, po.ID, dto.ReceivePurchaseOrderRequest{
		Items: []dto.ReceiveItemRequest{{ItemID: po.Items[0].ID, Quantity: 1}},
	})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	assert.Equal(t, 0, f.stock(t, p.ID))
}

func TestPendingListYPDF(t *testing.T) {
	f := newPOFixture(t)
	p := f.product(t, "A", 0)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, f.companyID, f.adminID, dto.CreatePurchaseOrderRequest{
		SupplierID: f.supplierID, Items: []dto.PurchaseOrderItemRequest{item(p.ID, 1, "1")},
	})
	require.NoError(t, err)
	po := f.ordered(t, item(p.ID, 2, "1"))

	pending, err := f.uc.Pending(ctx, f.companyID)
	require.NoError(t, err)
	require.Len(t, pending, 1, "DRAFT no cuenta como pendiente")
	assert.Equal(t, po.ID, pending[0].ID)

	list, err := f.uc.List(ctx, f.companyID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Page.Total)

	data, name, err := f.uc.PDF(ctx, f.companyID, po.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.3"), data)
	assert.Equal(t, po.OrderNumber+".pdf", name)
	require.NotNil(t, f.renderer.supplier)
	assert.Equal(t, "Tornillos SA", f.renderer.supplier.Name)
	assert.Len(t, f.renderer.po.Items, 1)
}

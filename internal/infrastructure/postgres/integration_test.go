package postgres_test

import (
	"context"
	"errors"
	"os"
	"sync"
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
	"github.com/malikaashish/Inventory-Management-System/internal/infrastructure/postgres"
	"github.com/malikaashish/Inventory-Management-System/pkg/config"
	"github.com/malikaashish/Inventory-Management-System/pkg/logger"
)

// IMS_TEST_DATABASE_URL apunta a una base descartable; sin ella estas pruebas se omiten.
const testDatabaseEnv = "IMS_TEST_DATABASE_URL"

type pgFixture struct {
	tx        *postgres.TxRunner
	repos     ports.Repositories
	companyID string
	adminID   string
}

func newPGFixture(t *testing.T) *pgFixture {
	t.Helper()
	dsn := os.Getenv(testDatabaseEnv)
	if dsn == "" {
		t.Skipf("%s no definido", testDatabaseEnv)
	}
	require.NoError(t, postgres.Migrate(dsn))

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 10, MinConns: 1})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	f := &pgFixture{tx: postgres.NewTxRunner(pool), repos: postgres.Repositories(pool)}
	now := time.Now()
	f.companyID = uuid.NewString()
	require.NoError(t, f.repos.Companies.Create(ctx, &entity.Company{
		ID: f.companyID, Name: "Integración", Status: entity.CompanyStatusActive, CreatedAt: now, UpdatedAt: now,
	}))
	f.adminID = uuid.NewString()
	require.NoError(t, f.repos.Users.Create(ctx, &entity.User{
		ID: f.adminID, CompanyID: f.companyID, Email: f.adminID + "@integracion.test", PasswordHash: "x",
		Name: "Admin", Role: entity.RoleAdmin, Status: entity.UserStatusActive, CreatedAt: now, UpdatedAt: now,
	}))
	return f
}

func (f *pgFixture) product(t *testing.T, stock int) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		ID: uuid.NewString(), CompanyID: f.companyID, SKU: "SKU-" + uuid.NewString()[:8], Name: "Producto",
		UnitPrice: decimal.NewFromInt(5), CostPrice: decimal.NewFromInt(3), QuantityOnHand: stock,
		ReorderPoint: 1, ReorderQuantity: 10, UnitOfMeasure: "UNIT", IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, f.repos.Products.Create(context.Background(), p))
	return p
}

func (f *pgFixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.repos.Products.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.QuantityOnHand
}

func TestDecreaseStock_ConcurrenteNoSobrevende(t *testing.T) {
	f := newPGFixture(t)
	p := f.product(t, 10)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := f.tx.Run(context.Background(), func(repos ports.Repositories) error {
				n, err := repos.Products.DecreaseStock(context.Background(), p.ID, 3)
				if err != nil {
					return err
				}
				if n == 0 {
					return domain.InsufficientStockf("sin stock")
				}
				return nil
			})
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
				return
			}
			assert.True(t, errors.Is(err, domain.ErrInsufficientStock), "error inesperado: %v", err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, successes)
	assert.Equal(t, 1, f.stock(t, p.ID))
}

func TestSetQuantityOnHand_NegativoViolaCheck(t *testing.T) {
	f := newPGFixture(t)
	p := f.product(t, 4)

	err := f.tx.Run(context.Background(), func(repos ports.Repositories) error {
		return repos.Products.SetQuantityOnHand(context.Background(), p.ID, -1)
	})
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Equal(t, 4, f.stock(t, p.ID))
}

func TestRollback_DeshaceElDescuento(t *testing.T) {
	f := newPGFixture(t)
	p := f.product(t, 10)
	boom := errors.New("boom")

	err := f.tx.Run(context.Background(), func(repos ports.Repositories) error {
		n, err := repos.Products.DecreaseStock(context.Background(), p.ID, 4)
		require.NoError(t, err)
		require.EqualValues(t, 1, n)
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 10, f.stock(t, p.ID))
}

func TestIDMalFormado_NoAbortaLaTransaccion(t *testing.T) {
	f := newPGFixture(t)
	p := f.product(t, 2)

	err := f.tx.Run(context.Background(), func(repos ports.Repositories) error {
		got, err := repos.Products.GetByID(context.Background(), "abc")
		require.NoError(t, err)
		assert.Nil(t, got)
		_, err = repos.Products.LockForUpdate(context.Background(), p.ID)
		return err
	})
	assert.NoError(t, err)
}

func TestReceive_ConcurrenteSeSerializa(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()
	log := logger.Nop()
	dispatcher := events.NewDispatcher(nil, nil, log)
	notifier := notification.NewNotificationUseCase(f.tx, dispatcher, nil, log)
	uc := purchasing.NewPurchaseOrderUseCase(f.tx, notifier, dispatcher, nil, nil, log)

	now := time.Now()
	supplierID := uuid.NewString()
	require.NoError(t, f.repos.Suppliers.Create(ctx, &entity.Supplier{
		ID: supplierID, CompanyID: f.companyID, Name: "Proveedor", IsActive: true, CreatedAt: now, UpdatedAt: now,
	}))
	p := f.product(t, 0)

	po, err := uc.Create(ctx, f.companyID, f.adminID, dto.CreatePurchaseOrderRequest{
		SupplierID: supplierID,
		Items:      []dto.PurchaseOrderItemRequest{{ProductID: p.ID, Quantity: 10, UnitCost: decimal.NewFromInt(2)}},
	})
	require.NoError(t, err)
	po, err = uc.UpdateStatus(ctx, f.companyID, f.adminID, po.ID, entity.PurchaseStatusOrdered)
	require.NoError(t, err)
	itemID := po.Items[0].ID

	var (
		wg   sync.WaitGroup
		errs = make([]error, 2)
	)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Receive(ctx, f.companyID, f.adminID, po.ID, dto.ReceivePurchaseOrderRequest{
				Items: []dto.ReceiveItemRequest{{ItemID: itemID, Quantity: 6}},
			})
		}(i)
	}
	wg.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
			assert.True(t, errors.Is(err, domain.ErrConflict), "error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, failed, "solo una recepción cabe en lo pedido")
	assert.Equal(t, 6, f.stock(t, p.ID))

	got, err := uc.Get(ctx, f.companyID, po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusPartiallyReceived, got.Status)
	assert.Equal(t, 6, got.Items[0].QuantityReceived)
}

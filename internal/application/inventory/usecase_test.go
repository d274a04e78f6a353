package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malikaashish/Inventory-Management-System/internal/application/dto"
	"github.com/malikaashish/Inventory-Management-System/internal/application/inventory"
	"github.com/malikaashish/Inventory-Management-System/internal/domain"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
	"github.com/malikaashish/Inventory-Management-System/pkg/logger"
)

func qty(n int) *int { return &n }

func newAdjustUC(f *fixture, exp inventory.AdjustmentExporter) *inventory.StockAdjustmentUseCase {
	return inventory.NewStockAdjustmentUseCase(f.store, f.notifier, f.events, exp, nil, logger.Nop())
}

func TestAdjust_TiposDeAjuste(t *testing.T) {
	cases := []struct {
		name          string
		adjType       string
		quantity      int
		before, after int
	}{
		{"incremento", entity.AdjustmentIncrease, 7, 20, 27},
		{"decremento", entity.AdjustmentDecrease, 5, 20, 15},
		{"corrección", entity.AdjustmentCorrection, 3, 20, 3},
		{"corrección a cero", entity.AdjustmentCorrection, 0, 20, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			p := f.addProduct(t, f.companyID, "SKU-1", productOpts{stock: tc.before, reorderPoint: 1})
			uc := newAdjustUC(f, nil)

			out, err := uc.Adjust(context.Background(), f.companyID, f.adminID, dto.StockAdjustmentRequest{
				ProductID:      p.ID,
				AdjustmentType: tc.adjType,
				Quantity:       qty(tc.quantity),
				Reason:         "conteo físico",
			})
			require.NoError(t, err)
			assert.Equal(t, tc.before, out.QuantityBefore)
			assert.Equal(t, tc.after, out.QuantityAfter)
			assert.Equal(t, tc.after-tc.before, out.QuantityChange)
			assert.Equal(t, "SKU-1", out.ProductSKU)
			assert.Equal(t, f.adminID, out.AdjustedBy)
			assert.Equal(t, tc.after, f.stock(t, p.ID))
		})
	}
}

func TestAdjust_StockInsuficienteNoModificaNada(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, f.companyID, "SKU-1", productOpts{stock: 4})
	uc := newAdjustUC(f, nil)

	_, err := uc.Adjust(context.Background(), f.companyID, f.adminID, dto.StockAdjustmentRequest{
		ProductID: p.ID, AdjustmentType: entity.AdjustmentDecrease, Quantity: qty(5), Reason: "merma",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Equal(t, 4, f.stock(t, p.ID))

	hist, err := uc.History(context.Background(), f.companyID, p.ID, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, hist.Items)
}

func TestAdjust_Validaciones(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, f.companyID, "SKU-1", productOpts{stock: 4})
	uc := newAdjustUC(f, nil)
	ctx := context.Background()

	_, err := uc.Adjust(ctx, f.companyID, f.adminID, dto.StockAdjustmentRequest{ProductID: p.ID, AdjustmentType: entity.AdjustmentIncrease, Reason: "x"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "quantity ausente")

	_, err = uc.Adjust(ctx, f.companyID, f.adminID, dto.StockAdjustmentRequest{ProductID: p.ID, AdjustmentType: entity.AdjustmentIncrease, Quantity: qty(0), Reason: "x"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "INCREASE con cero")

	_, err = uc.Adjust(ctx, f.companyID, f.adminID, dto.StockAdjustmentRequest{ProductID: p.ID, AdjustmentType: entity.AdjustmentCorrection, Quantity: qty(-1), Reason: "x"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "CORRECTION negativa")

	_, err = uc.Adjust(ctx, f.companyID, f.adminID, dto.StockAdjustmentRequest{ProductID: p.ID, AdjustmentType: entity.AdjustmentIncrease, Quantity: qty(1)})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "reason vacío")

	_, err = uc.Adjust(ctx, f.companyID, f.adminID, dto.StockAdjustmentRequest{ProductID: p.ID, AdjustmentType: "TRANSFER", Quantity: qty(1), Reason: "x"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "tipo desconocido")
}

func TestAdjust_ProductoDeOtraEmpresa(t *testing.T) {
	f := newFixture(t)
	other := f.addCompany(t, "Otra")
	p := f.addProduct(t, other, "SKU-1", productOpts{stock: 4})

	_, err := newAdjustUC(f, nil).Adjust(context.Background(), f.companyID, f.adminID, dto.StockAdjustmentRequest{
		ProductID: p.ID, AdjustmentType: entity.AdjustmentIncrease, Quantity: qty(1), Reason: "x",
	})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	assert.Equal(t, 4, f.stock(t, p.ID))
}

func TestAdjust_NotificaStockBajoALosAdmins(t *testing.T) {
	f := newFixture(t)
	staff := f.addUser(t, f.companyID, entity.RoleInventoryStaff)
	p := f.addProduct(t, f.companyID, "SKU-1", productOpts{stock: 20, reorderPoint: 10})
	uc := newAdjustUC(f, nil)
	ctx := context.Background()

	_, err := uc.Adjust(ctx, f.companyID, staff, dto.StockAdjustmentRequest{
		ProductID: p.ID, AdjustmentType: entity.AdjustmentDecrease, Quantity: qty(5), Reason: "venta",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, f.unread(t, f.adminID), "15 > 10: sin alerta")

	_, err = uc.Adjust(ctx, f.companyID, staff, dto.StockAdjustmentRequest{
		ProductID: p.ID, AdjustmentType: entity.AdjustmentDecrease, Quantity: qty(5), Reason: "venta",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, f.unread(t, f.adminID), "10 <= 10: alerta")
	assert.Equal(t, 0, f.unread(t, staff), "solo los ADMIN reciben alertas")

	list, err := f.repos.Notifications.ListUnread(ctx, f.adminID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.NotificationLowStock, list[0].Type)
	assert.Equal(t, p.ID, list[0].ReferenceID)
}

func TestAdjust_Concurrente(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, f.companyID, "SKU-1", productOpts{stock: 10})
	uc := newAdjustUC(f, nil)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok, fails int
	)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Adjust(context.Background(), f.companyID, f.adminID, dto.StockAdjustmentRequest{
				ProductID: p.ID, AdjustmentType: entity.AdjustmentDecrease, Quantity: qty(6), Reason: "pedido",
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if errors.Is(err, domain.ErrInsufficientStock) {
				fails++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, fails)
	assert.Equal(t, 4, f.stock(t, p.ID))
}

func TestHistory_MasRecientePrimeroYPaginado(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, f.companyID, "SKU-1", productOpts{stock: 0})
	uc := newAdjustUC(f, nil)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		_, err := uc.Adjust(ctx, f.companyID, f.adminID, dto.StockAdjustmentRequest{
			ProductID: p.ID, AdjustmentType: entity.AdjustmentIncrease, Quantity: qty(i), Reason: "entrada",
		})
		require.NoError(t, err)
	}

	page, err := uc.History(ctx, f.companyID, p.ID, 2, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, 3, page.Page.Total)
	assert.Equal(t, 3, page.Items[0].QuantityChange)
	assert.Equal(t, 2, page.Items[1].QuantityChange)

	page, err = uc.History(ctx, f.companyID, p.ID, 2, 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.Items[0].QuantityChange)

	_, err = uc.History(ctx, f.companyID, "no-existe", 20, 0)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestExportHistory(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, f.companyID, "SKU-9", productOpts{stock: 5})
	exp := &fakeExporter{}
	uc := newAdjustUC(f, exp)
	ctx := context.Background()

	_, err := uc.Adjust(ctx, f.companyID, f.adminID, dto.StockAdjustmentRequest{
		ProductID: p.ID, AdjustmentType: entity.AdjustmentIncrease, Quantity: qty(1), Reason: "entrada",
	})
	require.NoError(t, err)

	data, filename, err := uc.ExportHistory(ctx, f.companyID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), data)
	assert.Contains(t, filename, "SKU-9")
	assert.Equal(t, p.ID, exp.product.ID)
	assert.Len(t, exp.rows, 1)
}

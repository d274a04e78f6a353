package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malikaashish/Inventory-Management-System/internal/application/inventory"
)

func TestLowStockReport_OrdenPorCobertura(t *testing.T) {
	f := newFixture(t)
	s := f.addSupplier(t, f.companyID, "Proveedor")
	half := f.addProduct(t, f.companyID, "MITAD", productOpts{stock: 5, reorderPoint: 10, reorderQty: 10, cost: "2"})
	empty := f.addProduct(t, f.companyID, "VACIO", productOpts{stock: 0, reorderPoint: 4, reorderQty: 8, cost: "2"})
	f.addProduct(t, f.companyID, "OK", productOpts{stock: 50, reorderPoint: 10, reorderQty: 10})
	f.link(t, half.ID, s.ID, "1.25", 0)

	items, err := inventory.NewReplenishmentUseCase(f.store).LowStockReport(context.Background(), f.companyID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, empty.ID, items[0].ProductID)
	assert.Equal(t, 1, items[0].Priority)
	assert.Equal(t, "16", items[0].EstimatedOrderCost.String(), "sin proveedor usa el costo del producto")
	assert.Empty(t, items[0].SupplierID)

	assert.Equal(t, half.ID, items[1].ProductID)
	assert.Equal(t, 2, items[1].Priority)
	assert.Equal(t, s.ID, items[1].SupplierID)
	assert.Equal(t, "12.5", items[1].EstimatedOrderCost.String())
}

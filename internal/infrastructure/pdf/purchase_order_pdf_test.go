package pdf

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
)

func TestMarotoRenderer_PurchaseOrder(t *testing.T) {
	po := &entity.PurchaseOrder{
		OrderNumber: "PO20261015-ABCDEF12",
		OrderDate:   time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC),
		Status:      entity.PurchaseStatusOrdered,
		Subtotal:    decimal.RequireFromString("1234.50"),
		TotalAmount: decimal.RequireFromString("1234.50"),
		Items: []*entity.PurchaseOrderItem{
			{ProductSKU: "SKU-1", QuantityOrdered: 10, UnitCost: decimal.RequireFromString("123.45"), LineTotal: decimal.RequireFromString("1234.50")},
		},
	}
	data, err := NewMarotoRenderer().PurchaseOrder(po, &entity.Supplier{Name: "Acme"})
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestMarotoRenderer_MoneyFormat(t *testing.T) {
	g := NewMarotoRenderer()
	assert.Equal(t, "$ 1.234.567,50", g.money(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "$ 0,00", g.money(decimal.Zero))
}

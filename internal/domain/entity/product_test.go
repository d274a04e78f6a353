package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
)

func TestProduct_IsLowStock(t *testing.T) {
	p := &entity.Product{QuantityOnHand: 10, ReorderPoint: 10}
	assert.True(t, p.IsLowStock(), "en el punto de reorden cuenta como bajo")

	p.QuantityOnHand = 11
	assert.False(t, p.IsLowStock())
}

func TestProduct_IsExpired(t *testing.T) {
	now := time.Date(2024, 5, 10, 18, 0, 0, 0, time.UTC)
	yesterday := time.Date(2024, 5, 9, 23, 59, 0, 0, time.UTC)
	today := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	assert.False(t, (&entity.Product{}).IsExpired(now), "sin fecha de vencimiento")
	assert.True(t, (&entity.Product{ExpiryDate: &yesterday}).IsExpired(now))
	assert.False(t, (&entity.Product{ExpiryDate: &today}).IsExpired(now), "vence hoy: aún se puede vender")
}

func TestPurchaseOrder_FullyReceived(t *testing.T) {
	po := &entity.PurchaseOrder{Items: []*entity.PurchaseOrderItem{
		{QuantityOrdered: 10, QuantityReceived: 10},
		{QuantityOrdered: 5, QuantityReceived: 4},
	}}
	assert.False(t, po.FullyReceived())

	po.Items[1].QuantityReceived = 5
	assert.True(t, po.FullyReceived())
}

package inventory_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/malikaashish/Inventory-Management-System/internal/domain/inventory"
)

func TestOrderNumber_Formato(t *testing.T) {
	day := time.Date(2024, 1, 31, 15, 4, 5, 0, time.UTC)
	re := regexp.MustCompile(`^PO20240131-[0-9A-F]{8}$`)

	a := inventory.OrderNumber(inventory.PurchaseOrderPrefix, day)
	b := inventory.OrderNumber(inventory.PurchaseOrderPrefix, day)

	assert.Regexp(t, re, a)
	assert.Regexp(t, re, b)
	assert.NotEqual(t, a, b)
}

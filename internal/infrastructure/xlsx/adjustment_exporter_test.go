package xlsx

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
)

func TestExporter_AdjustmentHistory(t *testing.T) {
	product := &entity.Product{SKU: "SKU-1", Name: "Tornillo", QuantityOnHand: 7}
	adjustments := []*entity.StockAdjustment{
		{Type: entity.AdjustmentDecrease, QuantityBefore: 10, QuantityAfter: 7, QuantityChange: -3, Reason: "merma", AdjustedBy: "u1", CreatedAt: time.Date(2026, 10, 2, 8, 0, 0, 0, time.UTC)},
		{Type: entity.AdjustmentIncrease, QuantityBefore: 0, QuantityAfter: 10, QuantityChange: 10, Reason: "conteo", ReferenceNumber: "INV-1", AdjustedBy: "u1", CreatedAt: time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)},
	}

	data, err := NewExporter().AdjustmentHistory(product, adjustments)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "Tornillo (SKU-1)", rows[0][0])
	assert.Equal(t, "Fecha", rows[2][0])
	assert.Equal(t, []string{"2026-10-02 08:00:00", "DECREASE", "10", "7", "-3", "merma", "", "u1"}, rows[3])
	assert.Equal(t, "INV-1", rows[4][6])
}

func TestExporter_AdjustmentHistory_Empty(t *testing.T) {
	data, err := NewExporter().AdjustmentHistory(&entity.Product{SKU: "X", Name: "X"}, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

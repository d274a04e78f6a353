package inventory_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malikaashish/Inventory-Management-System/internal/domain"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/entity"
	"github.com/malikaashish/Inventory-Management-System/internal/domain/inventory"
)

func TestComputeAdjustment_Increase(t *testing.T) {
	after, change, err := inventory.ComputeAdjustment(entity.AdjustmentIncrease, 10, 5)
	require.NoError(t, err)
	assert.Equal(t, 15, after)
	assert.Equal(t, 5, change)
}

func TestComputeAdjustment_Decrease(t *testing.T) {
	after, change, err := inventory.ComputeAdjustment(entity.AdjustmentDecrease, 10, 4)
	require.NoError(t, err)
	assert.Equal(t, 6, after)
	assert.Equal(t, -4, change)
}

func TestComputeAdjustment_DecreaseHastaCero(t *testing.T) {
	after, change, err := inventory.ComputeAdjustment(entity.AdjustmentDecrease, 7, 7)
	require.NoError(t, err)
	assert.Equal(t, 0, after)
	assert.Equal(t, -7, change)
}

func TestComputeAdjustment_DecreaseStockInsuficiente(t *testing.T) {
	_, _, err := inventory.ComputeAdjustment(entity.AdjustmentDecrease, 3, 4)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.True(t, errors.Is(err, domain.ErrConflict), "stock insuficiente es un conflicto")
}

func TestComputeAdjustment_CantidadNoPositiva(t *testing.T) {
	for _, typ := range []string{entity.AdjustmentIncrease, entity.AdjustmentDecrease} {
		for _, qty := range []int{0, -1} {
			_, _, err := inventory.ComputeAdjustment(typ, 10, qty)
			assert.ErrorIs(t, err, domain.ErrInvalidInput, "%s con qty=%d", typ, qty)
		}
	}
}

// CORRECTION fija el valor absoluto: change == after - before para cualquier par.
func TestComputeAdjustment_CorrectionCambioExacto(t *testing.T) {
	values := []int{0, 1, 5, 10, 99, 1000}
	for _, before := range values {
		for _, target := range values {
			after, change, err := inventory.ComputeAdjustment(entity.AdjustmentCorrection, before, target)
			require.NoError(t, err)
			assert.Equal(t, target, after)
			assert.Equal(t, target-before, change)
		}
	}
}

func TestComputeAdjustment_CorrectionNegativa(t *testing.T) {
	_, _, err := inventory.ComputeAdjustment(entity.AdjustmentCorrection, 10, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestComputeAdjustment_TipoInvalido(t *testing.T) {
	_, _, err := inventory.ComputeAdjustment("TRANSFER", 10, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

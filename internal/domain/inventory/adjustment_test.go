package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/salonops/salon-manager/internal/httperr"
)

func TestDelta(t *testing.T) {
	assert.Equal(t, 5, Delta(AdjustmentAdd, 5))
	assert.Equal(t, -5, Delta(AdjustmentRemove, 5))
}

func TestValidateAdjustment(t *testing.T) {
	t.Run("valid shapes pass", func(t *testing.T) {
		assert.NoError(t, ValidateAdjustment(AdjustmentAdd, 1))
		assert.NoError(t, ValidateAdjustment(AdjustmentRemove, 100))
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		err := ValidateAdjustment("restock", 1)
		assert.Equal(t, "invalid_adjustment_type", httperr.BusinessCode(err))
	})

	t.Run("zero and negative quantities are rejected", func(t *testing.T) {
		for _, qty := range []int{0, -1} {
			err := ValidateAdjustment(AdjustmentAdd, qty)
			assert.Equal(t, httperr.CodeInvalidQuantity, httperr.BusinessCode(err))
		}
	})
}

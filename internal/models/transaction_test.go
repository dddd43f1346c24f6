package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemsTotal(t *testing.T) {
	tr := Transaction{
		Items: []TransactionItem{
			{Quantity: 2, UnitPrice: 10, Total: 20},
			{Quantity: 1, UnitPrice: 35.5, Total: 35.5},
		},
	}

	assert.Equal(t, 55.5, tr.ItemsTotal())
}

func TestAmountMatchesItems(t *testing.T) {
	t.Run("exact match", func(t *testing.T) {
		tr := Transaction{
			Amount: 55.5,
			Items: []TransactionItem{
				{Total: 20},
				{Total: 35.5},
			},
		}
		assert.True(t, tr.AmountMatchesItems())
	})

	t.Run("sub-cent drift still matches", func(t *testing.T) {
		tr := Transaction{
			Amount: 0.3,
			Items: []TransactionItem{
				{Total: 0.1},
				{Total: 0.2},
			},
		}
		assert.True(t, tr.AmountMatchesItems())
	})

	t.Run("a cent or more off does not match", func(t *testing.T) {
		tr := Transaction{
			Amount: 56.0,
			Items:  []TransactionItem{{Total: 55.5}},
		}
		assert.False(t, tr.AmountMatchesItems())
	})
}

func TestEffectivePrice(t *testing.T) {
	override := 45.0

	t.Run("override wins", func(t *testing.T) {
		ls := LocationService{Price: &override}
		assert.Equal(t, 45.0, ls.EffectivePrice(30))
	})

	t.Run("falls back to the base price", func(t *testing.T) {
		ls := LocationService{}
		assert.Equal(t, 30.0, ls.EffectivePrice(30))
	})

	t.Run("nil join falls back too", func(t *testing.T) {
		var ls *LocationService
		assert.Equal(t, 30.0, ls.EffectivePrice(30))
	})
}

func TestStringListCodec(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		raw := EncodeStringList([]string{"a.jpg", "b.jpg"})
		assert.Equal(t, []string{"a.jpg", "b.jpg"}, DecodeStringList(raw))
	})

	t.Run("empty and malformed input decode to an empty list", func(t *testing.T) {
		assert.Equal(t, []string{}, DecodeStringList(""))
		assert.Equal(t, []string{}, DecodeStringList("not json"))
	})

	t.Run("nil encodes to an empty array", func(t *testing.T) {
		assert.Equal(t, "[]", EncodeStringList(nil))
	})
}

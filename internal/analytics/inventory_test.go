package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInventoryReport(t *testing.T) {

	t.Run("empty ledger produces an empty report", func(t *testing.T) {
		report := BuildInventoryReport(nil, 5)

		assert.Equal(t, 0, report.TotalProducts)
		assert.Equal(t, 0, report.TotalUnits)
		assert.Empty(t, report.LowStock)
		assert.Empty(t, report.TopByValue)
		assert.Empty(t, report.Locations)
		assert.Equal(t, 5, report.Threshold)
	})

	t.Run("stock at multiple locations is summed per product", func(t *testing.T) {
		rows := []LedgerRow{
			{ProductID: 1, ProductName: "Shampoo", Price: 10, Cost: 4, LocationID: 1, LocationName: "Downtown", Stock: 8},
			{ProductID: 1, ProductName: "Shampoo", Price: 10, Cost: 4, LocationID: 2, LocationName: "Uptown", Stock: 2},
		}

		report := BuildInventoryReport(rows, 5)

		require.Equal(t, 1, report.TotalProducts)
		assert.Equal(t, 10, report.TotalUnits)
		assert.Equal(t, 40.0, report.TotalValueAtCost)
		assert.Equal(t, 100.0, report.TotalValueAtRetail)

		require.Len(t, report.Locations, 2)
		assert.Equal(t, 8, report.Locations[0].TotalStock)
		assert.Equal(t, 2, report.Locations[1].TotalStock)
	})

	t.Run("thresholds split products into low and out of stock", func(t *testing.T) {
		rows := []LedgerRow{
			{ProductID: 1, ProductName: "Shampoo", Price: 10, LocationID: 1, Stock: 0},
			{ProductID: 2, ProductName: "Conditioner", Price: 12, LocationID: 1, Stock: 3},
			{ProductID: 3, ProductName: "Hair Oil", Price: 25, LocationID: 1, Stock: 5},
			{ProductID: 4, ProductName: "Face Mask", Price: 8, LocationID: 1, Stock: 40},
		}

		report := BuildInventoryReport(rows, 5)

		assert.Equal(t, 1, report.OutOfStockCount)
		// Out of stock also counts as low: 0, 3 and 5 are all <= 5.
		assert.Equal(t, 3, report.LowStockCount)

		require.Len(t, report.LowStock, 3)
		assert.Equal(t, uint(1), report.LowStock[0].ProductID)
		assert.Equal(t, uint(2), report.LowStock[1].ProductID)
		assert.Equal(t, uint(3), report.LowStock[2].ProductID)

		assert.True(t, report.LowStock[0].OutOfStock)
		assert.False(t, report.LowStock[1].OutOfStock)
	})

	t.Run("top by value ranks on retail value, capped at five", func(t *testing.T) {
		var rows []LedgerRow
		for i := 1; i <= 7; i++ {
			rows = append(rows, LedgerRow{
				ProductID:   uint(i),
				ProductName: "P",
				Price:       float64(i),
				LocationID:  1,
				Stock:       10,
			})
		}

		report := BuildInventoryReport(rows, 0)

		require.Len(t, report.TopByValue, 5)
		assert.Equal(t, uint(7), report.TopByValue[0].ProductID)
		assert.Equal(t, 70.0, report.TopByValue[0].ValueAtRetail)
		assert.Equal(t, uint(3), report.TopByValue[4].ProductID)
	})

	t.Run("threshold zero flags only empty products as low", func(t *testing.T) {
		rows := []LedgerRow{
			{ProductID: 1, ProductName: "Shampoo", LocationID: 1, Stock: 0},
			{ProductID: 2, ProductName: "Conditioner", LocationID: 1, Stock: 1},
		}

		report := BuildInventoryReport(rows, 0)

		assert.Equal(t, 1, report.LowStockCount)
		assert.Equal(t, 1, report.OutOfStockCount)
	})
}

package analytics

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/salonops/salon-manager/internal/cache"
)

const topListSize = 5

// ======================================================
// REPORT SHAPES
// ======================================================

// LedgerRow is one stock-ledger row joined with its product and
// location, the raw input of the aggregation.
type LedgerRow struct {
	ProductID    uint    `json:"product_id"`
	ProductName  string  `json:"product_name"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	Cost         float64 `json:"cost"`
	LocationID   uint    `json:"location_id"`
	LocationName string  `json:"location_name"`
	Stock        int     `json:"stock"`
}

type ProductSummary struct {
	ProductID     uint    `json:"product_id"`
	ProductName   string  `json:"product_name"`
	Category      string  `json:"category"`
	TotalStock    int     `json:"total_stock"`
	ValueAtCost   float64 `json:"value_at_cost"`
	ValueAtRetail float64 `json:"value_at_retail"`
	LowStock      bool    `json:"low_stock"`
	OutOfStock    bool    `json:"out_of_stock"`
}

type LocationSummary struct {
	LocationID    uint    `json:"location_id"`
	LocationName  string  `json:"location_name"`
	TotalStock    int     `json:"total_stock"`
	ValueAtRetail float64 `json:"value_at_retail"`
}

type InventoryReport struct {
	TotalProducts      int     `json:"total_products"`
	TotalUnits         int     `json:"total_units"`
	TotalValueAtCost   float64 `json:"total_value_at_cost"`
	TotalValueAtRetail float64 `json:"total_value_at_retail"`

	LowStockCount   int `json:"low_stock_count"`
	OutOfStockCount int `json:"out_of_stock_count"`

	LowStock   []ProductSummary  `json:"low_stock"`
	TopByValue []ProductSummary  `json:"top_by_value"`
	Locations  []LocationSummary `json:"locations"`

	Threshold   int       `json:"threshold"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ======================================================
// AGGREGATION
// ======================================================

// BuildInventoryReport folds ledger rows into the dashboard figures.
// Pure: re-derivable from the ledger at any time, nothing persisted.
func BuildInventoryReport(rows []LedgerRow, threshold int) *InventoryReport {

	report := &InventoryReport{
		LowStock:    []ProductSummary{},
		TopByValue:  []ProductSummary{},
		Locations:   []LocationSummary{},
		Threshold:   threshold,
		GeneratedAt: time.Now().UTC(),
	}

	products := make(map[uint]*ProductSummary)
	locations := make(map[uint]*LocationSummary)
	var productOrder []uint
	var locationOrder []uint

	for _, row := range rows {
		p, ok := products[row.ProductID]
		if !ok {
			p = &ProductSummary{
				ProductID:   row.ProductID,
				ProductName: row.ProductName,
				Category:    row.Category,
			}
			products[row.ProductID] = p
			productOrder = append(productOrder, row.ProductID)
		}
		p.TotalStock += row.Stock
		p.ValueAtCost += float64(row.Stock) * row.Cost
		p.ValueAtRetail += float64(row.Stock) * row.Price

		l, ok := locations[row.LocationID]
		if !ok {
			l = &LocationSummary{
				LocationID:   row.LocationID,
				LocationName: row.LocationName,
			}
			locations[row.LocationID] = l
			locationOrder = append(locationOrder, row.LocationID)
		}
		l.TotalStock += row.Stock
		l.ValueAtRetail += float64(row.Stock) * row.Price

		report.TotalUnits += row.Stock
	}

	var all []ProductSummary
	for _, id := range productOrder {
		p := products[id]
		p.OutOfStock = p.TotalStock == 0
		p.LowStock = p.TotalStock <= threshold

		if p.OutOfStock {
			report.OutOfStockCount++
		}
		if p.LowStock {
			report.LowStockCount++
		}

		report.TotalValueAtCost += p.ValueAtCost
		report.TotalValueAtRetail += p.ValueAtRetail
		all = append(all, *p)
	}

	report.TotalProducts = len(all)

	low := make([]ProductSummary, 0, len(all))
	for _, p := range all {
		if p.LowStock {
			low = append(low, p)
		}
	}
	sort.SliceStable(low, func(i, j int) bool { return low[i].TotalStock < low[j].TotalStock })
	report.LowStock = topN(low, topListSize)

	byValue := append([]ProductSummary(nil), all...)
	sort.SliceStable(byValue, func(i, j int) bool {
		return byValue[i].ValueAtRetail > byValue[j].ValueAtRetail
	})
	report.TopByValue = topN(byValue, topListSize)

	for _, id := range locationOrder {
		report.Locations = append(report.Locations, *locations[id])
	}

	return report
}

func topN(items []ProductSummary, n int) []ProductSummary {
	if len(items) > n {
		items = items[:n]
	}
	return items
}

// ======================================================
// AGGREGATOR (DB + CACHE)
// ======================================================

type InventoryAggregator struct {
	db        *gorm.DB
	cache     *cache.InventoryCache
	threshold int
}

func NewInventoryAggregator(db *gorm.DB, cache *cache.InventoryCache, threshold int) *InventoryAggregator {
	return &InventoryAggregator{
		db:        db,
		cache:     cache,
		threshold: threshold,
	}
}

func (a *InventoryAggregator) LoadLedger(ctx context.Context) ([]LedgerRow, error) {

	var rows []LedgerRow
	err := a.db.WithContext(ctx).
		Table("product_locations").
		Select(`product_locations.product_id,
			products.name AS product_name,
			products.category,
			products.price,
			products.cost,
			product_locations.location_id,
			locations.name AS location_name,
			product_locations.stock`).
		Joins("JOIN products ON products.id = product_locations.product_id").
		Joins("JOIN locations ON locations.id = product_locations.location_id").
		Where("products.active = ?", true).
		Order("product_locations.product_id ASC, product_locations.location_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (a *InventoryAggregator) Report(ctx context.Context) (*InventoryReport, error) {

	var cached InventoryReport
	if a.cache.GetReport(ctx, &cached) {
		return &cached, nil
	}

	rows, err := a.LoadLedger(ctx)
	if err != nil {
		return nil, err
	}

	report := BuildInventoryReport(rows, a.threshold)
	a.cache.SetReport(ctx, report)

	return report, nil
}

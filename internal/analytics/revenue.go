package analytics

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/salonops/salon-manager/internal/models"
)

type RevenueByLocation struct {
	LocationID   uint    `json:"location_id"`
	LocationName string  `json:"location_name"`
	Transactions int64   `json:"transactions"`
	Revenue      float64 `json:"revenue"`
}

type RevenueReport struct {
	From         time.Time           `json:"from"`
	To           time.Time           `json:"to"`
	Transactions int64               `json:"transactions"`
	Revenue      float64             `json:"revenue"`
	ByLocation   []RevenueByLocation `json:"by_location"`
}

// RevenueForPeriod sums paid transactions between from and to,
// broken down per location.
func RevenueForPeriod(ctx context.Context, db *gorm.DB, from, to time.Time) (*RevenueReport, error) {

	report := &RevenueReport{
		From:       from,
		To:         to,
		ByLocation: []RevenueByLocation{},
	}

	err := db.WithContext(ctx).
		Table("transactions").
		Select(`transactions.location_id,
			locations.name AS location_name,
			COUNT(transactions.id) AS transactions,
			COALESCE(SUM(transactions.amount), 0) AS revenue`).
		Joins("JOIN locations ON locations.id = transactions.location_id").
		Where("transactions.status = ? AND transactions.created_at >= ? AND transactions.created_at < ?",
			models.TransactionPaid, from, to).
		Group("transactions.location_id, locations.name").
		Order("revenue DESC").
		Scan(&report.ByLocation).Error
	if err != nil {
		return nil, err
	}

	for _, row := range report.ByLocation {
		report.Transactions += row.Transactions
		report.Revenue += row.Revenue
	}

	return report, nil
}

package relationship

import (
	"context"

	"gorm.io/gorm"

	"github.com/salonops/salon-manager/internal/models"
)

type SyncStats struct {
	ActiveLeft      int64   `json:"active_left"`
	ActiveLocations int64   `json:"active_locations"`
	Expected        int64   `json:"expected"`
	Existing        int64   `json:"existing"`
	Missing         int64   `json:"missing"`
	CompletionPct   float64 `json:"completion_pct"`
}

// ServiceLocationStats reports how complete the service×location
// fan-out currently is, without touching any row.
func (s *Synchronizer) ServiceLocationStats(ctx context.Context) (*SyncStats, error) {
	return s.stats(ctx,
		s.db.WithContext(ctx).Model(&models.Service{}).Where("active = ?", true),
		s.db.WithContext(ctx).Model(&models.LocationService{}),
	)
}

func (s *Synchronizer) StaffLocationStats(ctx context.Context) (*SyncStats, error) {
	return s.stats(ctx,
		s.db.WithContext(ctx).Model(&models.StaffMember{}).Where("active = ?", true),
		s.db.WithContext(ctx).Model(&models.StaffLocation{}),
	)
}

func (s *Synchronizer) stats(ctx context.Context, left *gorm.DB, joins *gorm.DB) (*SyncStats, error) {

	var stats SyncStats

	if err := left.Count(&stats.ActiveLeft).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).
		Model(&models.Location{}).
		Where("active = ?", true).
		Count(&stats.ActiveLocations).Error; err != nil {
		return nil, err
	}

	if err := joins.Count(&stats.Existing).Error; err != nil {
		return nil, err
	}

	stats.Expected = stats.ActiveLeft * stats.ActiveLocations
	stats.Missing = stats.Expected - stats.Existing
	if stats.Missing < 0 {
		// More join rows than active pairs: inactive entities still
		// hold rows, which is fine; report full completion.
		stats.Missing = 0
	}

	if stats.Expected > 0 {
		stats.CompletionPct = float64(stats.Expected-stats.Missing) / float64(stats.Expected) * 100
	} else {
		stats.CompletionPct = 100
	}

	return &stats, nil
}

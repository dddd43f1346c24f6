package relationship

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/salonops/salon-manager/internal/audit"
	"github.com/salonops/salon-manager/internal/models"
)

// ======================================================
// RESULT
// ======================================================

type SyncResult struct {
	ActiveLeft      int64 `json:"active_left"`
	ActiveLocations int64 `json:"active_locations"`
	Expected        int64 `json:"expected"`
	Existing        int64 `json:"existing"`
	Created         int64 `json:"created"`
}

// ======================================================
// SYNCHRONIZER
// ======================================================

// Synchronizer fills in missing service×location and staff×location
// join rows. Insert-only, so re-running it is always safe; the whole
// fan-out runs in one transaction, so a failure midway leaves the
// table exactly as it was.
type Synchronizer struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewSynchronizer(db *gorm.DB, audit *audit.Dispatcher) *Synchronizer {
	return &Synchronizer{db: db, audit: audit}
}

type pairKey struct {
	left     uint
	location uint
}

func (s *Synchronizer) SyncServiceLocations(ctx context.Context) (*SyncResult, error) {

	var result SyncResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var services []models.Service
		if err := tx.Where("active = ?", true).Find(&services).Error; err != nil {
			return err
		}

		var locations []models.Location
		if err := tx.Where("active = ?", true).Find(&locations).Error; err != nil {
			return err
		}

		var existing []models.LocationService
		if err := tx.Find(&existing).Error; err != nil {
			return err
		}

		have := make(map[pairKey]bool, len(existing))
		for _, row := range existing {
			have[pairKey{row.ServiceID, row.LocationID}] = true
		}

		result.ActiveLeft = int64(len(services))
		result.ActiveLocations = int64(len(locations))
		result.Expected = result.ActiveLeft * result.ActiveLocations

		for _, svc := range services {
			for _, loc := range locations {
				if have[pairKey{svc.ID, loc.ID}] {
					result.Existing++
					continue
				}

				row := models.LocationService{
					ServiceID:  svc.ID,
					LocationID: loc.ID,
					Active:     true,
				}
				if err := tx.Create(&row).Error; err != nil {
					return fmt.Errorf("create location_service %d/%d: %w", svc.ID, loc.ID, err)
				}
				result.Created++
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.dispatchSyncEvent("service_locations_synced", &result)
	return &result, nil
}

func (s *Synchronizer) SyncStaffLocations(ctx context.Context) (*SyncResult, error) {

	var result SyncResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var staff []models.StaffMember
		if err := tx.Where("active = ?", true).Find(&staff).Error; err != nil {
			return err
		}

		var locations []models.Location
		if err := tx.Where("active = ?", true).Find(&locations).Error; err != nil {
			return err
		}

		var existing []models.StaffLocation
		if err := tx.Find(&existing).Error; err != nil {
			return err
		}

		have := make(map[pairKey]bool, len(existing))
		for _, row := range existing {
			have[pairKey{row.StaffID, row.LocationID}] = true
		}

		result.ActiveLeft = int64(len(staff))
		result.ActiveLocations = int64(len(locations))
		result.Expected = result.ActiveLeft * result.ActiveLocations

		for _, member := range staff {
			for _, loc := range locations {
				if have[pairKey{member.ID, loc.ID}] {
					result.Existing++
					continue
				}

				row := models.StaffLocation{
					StaffID:    member.ID,
					LocationID: loc.ID,
					Active:     true,
				}
				if err := tx.Create(&row).Error; err != nil {
					return fmt.Errorf("create staff_location %d/%d: %w", member.ID, loc.ID, err)
				}
				result.Created++
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.dispatchSyncEvent("staff_locations_synced", &result)
	return &result, nil
}

func (s *Synchronizer) dispatchSyncEvent(action string, result *SyncResult) {
	if s.audit == nil || result.Created == 0 {
		return
	}

	s.audit.Dispatch(audit.Event{
		Action: action,
		Entity: "location",
		Metadata: map[string]any{
			"expected": result.Expected,
			"created":  result.Created,
		},
	})
}

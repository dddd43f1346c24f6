package location

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"github.com/salonops/salon-manager/internal/audit"
	"github.com/salonops/salon-manager/internal/models"
)

// ======================================================
// RESULTS
// ======================================================

type DuplicateGroup struct {
	NameKey     string `json:"name_key"`
	PreferredID uint   `json:"preferred_id"`
	Duplicates  []uint `json:"duplicates"`
}

type CleanupResult struct {
	Groups  []DuplicateGroup `json:"groups"`
	Deleted int              `json:"deleted"`
	Skipped int              `json:"skipped"`
}

// ======================================================
// DEDUPER
// ======================================================

// Deduper is the operator-triggered repair that merges location rows
// referring to the same real-world site. New rows are protected by the
// unique name key; these operations exist for rows that predate it.
type Deduper struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewDeduper(db *gorm.DB, audit *audit.Dispatcher) *Deduper {
	return &Deduper{db: db, audit: audit}
}

// duplicateGroups buckets all locations by normalized name. The
// preferred row of a group is the oldest one (lowest ID).
func duplicateGroups(tx *gorm.DB) ([]DuplicateGroup, error) {

	var locations []models.Location
	if err := tx.Order("id ASC").Find(&locations).Error; err != nil {
		return nil, err
	}

	byKey := make(map[string][]uint)
	for _, loc := range locations {
		key := models.NormalizeLocationName(loc.Name)
		byKey[key] = append(byKey[key], loc.ID)
	}

	var groups []DuplicateGroup
	for key, ids := range byKey {
		if len(ids) < 2 {
			continue
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		groups = append(groups, DuplicateGroup{
			NameKey:     key,
			PreferredID: ids[0],
			Duplicates:  ids[1:],
		})
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].PreferredID < groups[j].PreferredID })
	return groups, nil
}

func locationHasReferences(tx *gorm.DB, id uint) (bool, error) {

	checks := []any{
		&models.ProductLocation{},
		&models.LocationService{},
		&models.StaffLocation{},
		&models.Appointment{},
		&models.Transaction{},
	}

	for _, model := range checks {
		var count int64
		if err := tx.Model(model).Where("location_id = ?", id).Count(&count).Error; err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}

	return false, nil
}

// Cleanup deletes duplicate rows that nothing references. Duplicates
// still referenced are reported as skipped; migrate-location-refs (or
// fix-locations) moves their references first. Running it twice deletes
// nothing the second time.
func (d *Deduper) Cleanup(ctx context.Context) (*CleanupResult, error) {

	result := CleanupResult{Groups: []DuplicateGroup{}}

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		groups, err := duplicateGroups(tx)
		if err != nil {
			return err
		}
		result.Groups = groups

		for _, group := range groups {
			for _, dupID := range group.Duplicates {
				referenced, err := locationHasReferences(tx, dupID)
				if err != nil {
					return err
				}
				if referenced {
					result.Skipped++
					continue
				}

				if err := tx.Delete(&models.Location{}, dupID).Error; err != nil {
					return err
				}
				result.Deleted++
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Deleted > 0 {
		d.audit.Dispatch(audit.Event{
			Action: "locations_cleaned",
			Entity: "location",
			Metadata: map[string]any{
				"deleted": result.Deleted,
				"skipped": result.Skipped,
			},
		})
	}

	return &result, nil
}

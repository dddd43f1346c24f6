package location

import (
	"context"

	"gorm.io/gorm"

	"github.com/salonops/salon-manager/internal/audit"
	"github.com/salonops/salon-manager/internal/models"
)

type FixResult struct {
	GroupsMerged   int `json:"groups_merged"`
	RowsDeleted    int `json:"rows_deleted"`
	KeysBackfilled int `json:"keys_backfilled"`

	Migrated MigrateResult `json:"migrated"`
}

// Fix is the full repair: for every duplicate group it migrates all
// references onto the preferred row, deletes the duplicates, then
// backfills the normalized name key on rows that predate the unique
// index. Idempotent: a clean table comes back with all zeroes.
func (d *Deduper) Fix(ctx context.Context) (*FixResult, error) {

	var result FixResult

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		groups, err := duplicateGroups(tx)
		if err != nil {
			return err
		}

		for _, group := range groups {
			for _, dupID := range group.Duplicates {
				if err := migrateRefsTx(tx, dupID, group.PreferredID, &result.Migrated); err != nil {
					return err
				}
				if err := tx.Delete(&models.Location{}, dupID).Error; err != nil {
					return err
				}
				result.RowsDeleted++
			}
			result.GroupsMerged++
		}

		// With duplicates gone the normalized key is safe to backfill.
		var missing []models.Location
		if err := tx.Where("name_key IS NULL OR name_key = ''").Find(&missing).Error; err != nil {
			return err
		}

		for _, loc := range missing {
			key := models.NormalizeLocationName(loc.Name)
			if err := tx.Model(&models.Location{}).
				Where("id = ?", loc.ID).
				UpdateColumn("name_key", key).Error; err != nil {
				return err
			}
			result.KeysBackfilled++
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.RowsDeleted > 0 || result.KeysBackfilled > 0 {
		d.audit.Dispatch(audit.Event{
			Action: "locations_fixed",
			Entity: "location",
			Metadata: map[string]any{
				"groups_merged":   result.GroupsMerged,
				"rows_deleted":    result.RowsDeleted,
				"keys_backfilled": result.KeysBackfilled,
			},
		})
	}

	return &result, nil
}

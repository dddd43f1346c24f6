package location

import (
	"context"

	"gorm.io/gorm"

	"github.com/salonops/salon-manager/internal/audit"
	"github.com/salonops/salon-manager/internal/httperr"
	"github.com/salonops/salon-manager/internal/models"
)

type MigrateResult struct {
	LedgerMoved  int `json:"ledger_moved"`
	LedgerMerged int `json:"ledger_merged"`
	JoinsMoved   int `json:"joins_moved"`
	JoinsDropped int `json:"joins_dropped"`
	Appointments int `json:"appointments"`
	Transactions int `json:"transactions"`
}

// MigrateRefs moves every foreign-key reference from one location to
// another, in one transaction. Ledger rows colliding with an existing
// product×target row are merged: quantities add up, the source row goes
// away.
func (d *Deduper) MigrateRefs(ctx context.Context, fromID, toID uint) (*MigrateResult, error) {

	if fromID == toID {
		return nil, httperr.ErrBusiness(httperr.CodeSameLocation)
	}

	var result MigrateResult

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		for _, id := range []uint{fromID, toID} {
			var loc models.Location
			if err := tx.First(&loc, id).Error; err != nil {
				return httperr.ErrBusiness(httperr.CodeLocationNotFound)
			}
		}

		if err := migrateRefsTx(tx, fromID, toID, &result); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	d.audit.Dispatch(audit.Event{
		Action:     "location_refs_migrated",
		Entity:     "location",
		EntityID:   &toID,
		LocationID: &toID,
		Metadata: map[string]any{
			"from": fromID,
			"to":   toID,
		},
	})

	return &result, nil
}

func migrateRefsTx(tx *gorm.DB, fromID, toID uint, result *MigrateResult) error {

	// -------- Stock ledger --------
	var ledger []models.ProductLocation
	if err := tx.Where("location_id = ?", fromID).Find(&ledger).Error; err != nil {
		return err
	}

	for _, row := range ledger {
		var target models.ProductLocation
		err := tx.
			Where("product_id = ? AND location_id = ?", row.ProductID, toID).
			First(&target).Error

		switch {
		case err == nil:
			// Merge: quantities add up on the surviving row.
			if err := tx.Model(&models.ProductLocation{}).
				Where("id = ?", target.ID).
				UpdateColumn("stock", gorm.Expr("stock + ?", row.Stock)).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.ProductLocation{}, row.ID).Error; err != nil {
				return err
			}
			result.LedgerMerged++

		case err == gorm.ErrRecordNotFound:
			if err := tx.Model(&models.ProductLocation{}).
				Where("id = ?", row.ID).
				UpdateColumn("location_id", toID).Error; err != nil {
				return err
			}
			result.LedgerMoved++

		default:
			return err
		}
	}

	// -------- Join rows --------
	if err := migrateJoinRows(tx, fromID, toID, result); err != nil {
		return err
	}

	// -------- Appointments / Transactions --------
	res := tx.Model(&models.Appointment{}).
		Where("location_id = ?", fromID).
		UpdateColumn("location_id", toID)
	if res.Error != nil {
		return res.Error
	}
	result.Appointments += int(res.RowsAffected)

	res = tx.Model(&models.Transaction{}).
		Where("location_id = ?", fromID).
		UpdateColumn("location_id", toID)
	if res.Error != nil {
		return res.Error
	}
	result.Transactions += int(res.RowsAffected)

	return nil
}

func migrateJoinRows(tx *gorm.DB, fromID, toID uint, result *MigrateResult) error {

	// Service joins: drop the source row when the target pair already
	// exists, otherwise repoint it.
	var svcJoins []models.LocationService
	if err := tx.Where("location_id = ?", fromID).Find(&svcJoins).Error; err != nil {
		return err
	}

	for _, row := range svcJoins {
		var count int64
		if err := tx.Model(&models.LocationService{}).
			Where("service_id = ? AND location_id = ?", row.ServiceID, toID).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			if err := tx.Delete(&models.LocationService{}, row.ID).Error; err != nil {
				return err
			}
			result.JoinsDropped++
			continue
		}

		if err := tx.Model(&models.LocationService{}).
			Where("id = ?", row.ID).
			UpdateColumn("location_id", toID).Error; err != nil {
			return err
		}
		result.JoinsMoved++
	}

	var staffJoins []models.StaffLocation
	if err := tx.Where("location_id = ?", fromID).Find(&staffJoins).Error; err != nil {
		return err
	}

	for _, row := range staffJoins {
		var count int64
		if err := tx.Model(&models.StaffLocation{}).
			Where("staff_id = ? AND location_id = ?", row.StaffID, toID).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			if err := tx.Delete(&models.StaffLocation{}, row.ID).Error; err != nil {
				return err
			}
			result.JoinsDropped++
			continue
		}

		if err := tx.Model(&models.StaffLocation{}).
			Where("id = ?", row.ID).
			UpdateColumn("location_id", toID).Error; err != nil {
			return err
		}
		result.JoinsMoved++
	}

	return nil
}

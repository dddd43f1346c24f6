package inventory

import "github.com/salonops/salon-manager/internal/httperr"

// ===============================
// Adjustment Types
// ===============================

type AdjustmentType string

const (
	AdjustmentAdd    AdjustmentType = "add"
	AdjustmentRemove AdjustmentType = "remove"
)

// Delta turns (type, quantity) into the signed amount applied to the
// ledger row. Quantity is always taken as a positive count.
func Delta(t AdjustmentType, quantity int) int {
	if t == AdjustmentRemove {
		return -quantity
	}
	return quantity
}

// ValidateAdjustment rejects malformed requests before any row is
// touched. Removals driving stock negative are rejected at write time by
// the repository; this only covers shape.
func ValidateAdjustment(t AdjustmentType, quantity int) error {
	if t != AdjustmentAdd && t != AdjustmentRemove {
		return httperr.ErrBusiness("invalid_adjustment_type")
	}
	if quantity <= 0 {
		return httperr.ErrBusiness(httperr.CodeInvalidQuantity)
	}
	return nil
}

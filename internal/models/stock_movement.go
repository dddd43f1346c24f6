package models

import "time"

// ===============================
// Movement Reasons
// ===============================

const (
	MovementReasonSale       = "sale"
	MovementReasonPurchase   = "purchase"
	MovementReasonTransfer   = "transfer"
	MovementReasonCorrection = "correction"
	MovementReasonRepair     = "repair"
)

// StockMovement is the append-only trail behind the stock ledger: one row
// per applied adjustment, carrying the before/after quantities so the
// ledger can always be audited against its history.
type StockMovement struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"size:36;index;not null" json:"reference"`

	ProductID  uint `gorm:"not null;index:idx_movement_product_location" json:"product_id"`
	LocationID uint `gorm:"not null;index:idx_movement_product_location" json:"location_id"`

	Delta         int `gorm:"not null" json:"delta"`
	PreviousStock int `json:"previous_stock"`
	NewStock      int `json:"new_stock"`

	Reason string `gorm:"size:50" json:"reason"`
	Notes  string `gorm:"size:255" json:"notes"`

	PerformedBy *uint `json:"performed_by"`

	CreatedAt time.Time `json:"created_at"`
}

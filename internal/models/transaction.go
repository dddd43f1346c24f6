package models

import (
	"math"
	"time"
)

// ===============================
// Transaction Status / Method
// ===============================

const (
	TransactionPending   = "pending"
	TransactionPaid      = "paid"
	TransactionRefunded  = "refunded"
	TransactionCancelled = "cancelled"
)

type Transaction struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"size:36;uniqueIndex;not null" json:"reference"`

	AppointmentID *uint `gorm:"index" json:"appointment_id"`

	LocationID uint     `gorm:"index" json:"location_id"`
	Location   Location `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"location"`

	ClientID *uint `json:"client_id"`

	Amount float64 `json:"amount"`
	Method string  `gorm:"size:20" json:"method"`
	Status string  `gorm:"size:20;default:'pending'" json:"status"`

	Items []TransactionItem `gorm:"constraint:OnDelete:CASCADE;" json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TransactionItem struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	TransactionID uint `gorm:"index" json:"transaction_id"`

	Description string  `gorm:"size:100" json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

func (t *Transaction) ItemsTotal() float64 {
	var sum float64
	for _, it := range t.Items {
		sum += it.Total
	}
	return sum
}

// AmountMatchesItems holds the invariant "amount equals sum of item
// totals" within a cent, so float drift in stored totals cannot reject a
// well-formed transaction.
func (t *Transaction) AmountMatchesItems() bool {
	return math.Abs(t.Amount-t.ItemsTotal()) < 0.01
}

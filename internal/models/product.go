package models

import (
	"encoding/json"
	"time"
)

type Product struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	Price       float64 `json:"price"`
	Cost        float64 `json:"cost"`
	Category    string  `gorm:"size:50" json:"category"`
	Type        string  `gorm:"size:50" json:"type"`
	SKU         string  `gorm:"size:50;index" json:"sku"`

	// JSON-encoded string arrays, kept as text columns.
	Images      string `gorm:"type:text" json:"images"`
	Features    string `gorm:"type:text" json:"features"`
	Ingredients string `gorm:"type:text" json:"ingredients"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Product) ImageList() []string {
	return DecodeStringList(p.Images)
}

func (p *Product) SetImageList(urls []string) {
	p.Images = EncodeStringList(urls)
}

func DecodeStringList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return []string{}
	}
	return out
}

func EncodeStringList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// ProductLocation is the stock ledger: quantity on hand of one product at
// one location, with an optional location-specific price override.
// Rows are created lazily, at zero, on the first adjustment.
type ProductLocation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProductID uint    `gorm:"not null;uniqueIndex:idx_product_location" json:"product_id"`
	Product   Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"product"`

	LocationID uint     `gorm:"not null;uniqueIndex:idx_product_location" json:"location_id"`
	Location   Location `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"location"`

	Stock  int      `gorm:"not null;default:0" json:"stock"`
	Price  *float64 `json:"price,omitempty"`
	Active bool     `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import (
	"strings"
	"time"
)

// ===============================
// Location Kinds
// ===============================

const (
	LocationKindStore       = "store"
	LocationKindHomeService = "home_service"
	LocationKindOnline      = "online"
)

type Location struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`

	// NameKey is the normalized name backing the one-row-per-real-location
	// uniqueness. Nullable so rows created before the index existed can
	// still be loaded and repaired by the fix-locations operation.
	NameKey *string `gorm:"size:100;uniqueIndex" json:"-"`

	Kind     string `gorm:"size:20;default:'store'" json:"kind"`
	Address  string `gorm:"size:255" json:"address"`
	City     string `gorm:"size:100" json:"city"`
	Phone    string `gorm:"size:20" json:"phone"`
	Timezone string `gorm:"size:50" json:"timezone"`

	// default:true means gorm skips a false zero value on Create;
	// deactivate via Update/Save, never via Create.
	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NormalizeLocationName collapses whitespace and case so "Downtown  Spa"
// and "downtown spa" resolve to the same key.
func NormalizeLocationName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func (l *Location) SetNameKey() {
	key := NormalizeLocationName(l.Name)
	l.NameKey = &key
}

package models

import "time"

type Service struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`
	Category    string  `gorm:"size:50" json:"category"`
	// default:true means gorm skips a false zero value on Create;
	// deactivate via Update/Save, never via Create.
	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LocationService marks a service as offered at a location, optionally at
// a location-specific price. The synchronizer keeps the active×active
// fan-out complete.
type LocationService struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceID uint    `gorm:"not null;uniqueIndex:idx_location_service" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service"`

	LocationID uint     `gorm:"not null;uniqueIndex:idx_location_service" json:"location_id"`
	Location   Location `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"location"`

	Price  *float64 `json:"price,omitempty"`
	Active bool     `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EffectivePrice resolves the location override, falling back to the
// service base price.
func (ls *LocationService) EffectivePrice(base float64) float64 {
	if ls != nil && ls.Price != nil {
		return *ls.Price
	}
	return base
}

type StaffService struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StaffID uint `gorm:"not null;uniqueIndex:idx_staff_service" json:"staff_id"`

	ServiceID uint    `gorm:"not null;uniqueIndex:idx_staff_service" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import (
	"time"
)

// CropStatus tracks a listing through its lifecycle.
type CropStatus string

const (
	CropAvailable CropStatus = "available"
	CropPending   CropStatus = "pending"
	CropSold      CropStatus = "sold"
)

func (s CropStatus) Valid() bool {
	switch s {
	case CropAvailable, CropPending, CropSold:
		return true
	}
	return false
}

// Crop is a farmer's offer to sell a quantity of produce at a unit price.
// Quantity decrements as transactions settle; at zero the listing flips
// to sold.
type Crop struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	FarmerID uint `gorm:"index;not null" json:"farmer_id"`

	CropName     string  `gorm:"size:100;not null" json:"crop_name"`
	Category     string  `gorm:"size:50;index;not null" json:"category"` // cereal, vegetable, spice, ...
	Quantity     float64 `gorm:"not null" json:"quantity"`
	Unit         string  `gorm:"size:20;default:'kg'" json:"unit"`
	PricePerUnit float64 `gorm:"not null" json:"price_per_unit"`
	Description  string  `gorm:"type:text" json:"description"`
	Location     string  `gorm:"size:100" json:"location"`
	ImageURL     string  `gorm:"size:255" json:"image_url"`

	Status CropStatus `gorm:"size:20;default:'available'" json:"status"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Seller User `gorm:"foreignKey:FarmerID" json:"seller"`
}

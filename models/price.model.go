package models

import (
	"time"
)

// Price is an immutable reference quote. Rows are seeded at startup and
// appended afterwards, never updated.
type Price struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	CropName string    `gorm:"size:100;not null" json:"crop_name"`
	Location string    `gorm:"size:100" json:"location"`
	Price    float64   `json:"price"`
	Date     time.Time `gorm:"index" json:"date"`
	Source   string    `gorm:"size:50" json:"source"` // demo, agmarknet, data.gov
}

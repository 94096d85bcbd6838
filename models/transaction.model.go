package models

import (
	"time"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return true
	}
	return false
}

type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryShipped   DeliveryStatus = "shipped"
	DeliveryDelivered DeliveryStatus = "delivered"
)

// Transaction is a buyer's commitment to purchase a quantity from a crop
// listing. TotalPrice is snapshotted from the listing price at creation
// and never recomputed.
type Transaction struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	BuyerID uint `gorm:"index;not null" json:"buyer_id"`
	CropID  uint `gorm:"index;not null" json:"crop_id"`

	Quantity   float64 `gorm:"not null" json:"quantity"`
	TotalPrice float64 `gorm:"not null" json:"total_price"`

	PaymentStatus   PaymentStatus `gorm:"size:20;default:'pending'" json:"payment_status"`
	PaymentMethod   string        `gorm:"size:50" json:"payment_method"` // upi, razorpay, bank_transfer
	RazorpayOrderID string        `gorm:"size:100" json:"razorpay_order_id,omitempty"`

	DeliveryStatus    DeliveryStatus `gorm:"size:20;default:'pending'" json:"delivery_status"`
	AgreementAccepted bool           `gorm:"default:false" json:"agreement_accepted"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Crop Crop `gorm:"foreignKey:CropID" json:"crop"`
}

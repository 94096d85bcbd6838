package models

import (
	"time"
)

// Role is the closed set of account roles. Authorization checks compare
// typed values, never raw request strings.
type Role string

const (
	RoleFarmer Role = "farmer"
	RoleBuyer  Role = "buyer"
	RoleAdmin  Role = "admin"
)

// ParseRole maps a request string onto the closed role set. The empty
// string defaults to farmer, matching the signup contract.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleFarmer, RoleBuyer, RoleAdmin:
		return Role(s), true
	case "":
		return RoleFarmer, true
	}
	return "", false
}

func (r Role) Valid() bool {
	switch r {
	case RoleFarmer, RoleBuyer, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Login information
	Username     string `gorm:"unique;not null;size:80" json:"username"`
	Email        string `gorm:"unique;not null;size:120" json:"email"`
	PasswordHash string `gorm:"not null;size:200" json:"-"`

	Role Role `gorm:"not null;size:20" json:"role"`

	// Identity document ('aadhar', 'id_card')
	IDType   string `gorm:"size:50" json:"id_type,omitempty"`
	IDNumber string `gorm:"size:100" json:"id_number,omitempty"`

	// Contact & location
	Phone    string `gorm:"size:20" json:"phone"`
	Address  string `gorm:"size:255" json:"address,omitempty"`
	Location string `gorm:"size:100" json:"location"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Crops        []Crop        `gorm:"foreignKey:FarmerID" json:"-"`
	Transactions []Transaction `gorm:"foreignKey:BuyerID" json:"-"`
}

// PublicUser is the wire shape of a user. The password hash never leaves
// the persistence layer.
type PublicUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
		Phone:    u.Phone,
		Location: u.Location,
	}
}

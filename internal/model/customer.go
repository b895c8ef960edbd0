package model

import "time"

// Customer represents a registered storefront customer. Email uniqueness is
// enforced by the database, not by application code: a duplicate insert
// surfaces as a unique-constraint violation which the repository layer maps
// to a conflict error.
type Customer struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	FirstName    string    `json:"first_name" gorm:"type:varchar(50);not null"`
	LastName     string    `json:"last_name" gorm:"type:varchar(50);not null"`
	Email        string    `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	PhoneNumber  string    `json:"phone_number,omitempty" gorm:"type:varchar(20)"`
	Address      string    `json:"address,omitempty" gorm:"type:varchar(255)"`
	City         string    `json:"city,omitempty" gorm:"type:varchar(50)"`
	PasswordHash string    `json:"-" gorm:"type:varchar(256)"`
	RegisteredAt time.Time `json:"registered_at" gorm:"autoCreateTime"`
}

func (Customer) TableName() string { return "customers" }

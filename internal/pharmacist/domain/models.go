package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Pharmacist struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	Name          string       `gorm:"not null;size:100" json:"name"`
	Email         string       `gorm:"not null;uniqueIndex;size:100" json:"email"`
	PasswordHash  string       `gorm:"not null;column:password" json:"-"`
	Phone         string       `gorm:"size:20" json:"phone"`
	LicenseNumber string       `gorm:"uniqueIndex;size:50" json:"license_number"`
	Role          string       `gorm:"size:50;default:PHARMACIST" json:"role"`
	Active        bool         `gorm:"not null;default:true" json:"active"`
	CreatedAt     time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null" json:"updated_at"`
}

// TableName sets the database table name.
func (Pharmacist) TableName() string { return "pharmacists" }

package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Customer struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"not null;size:100" json:"name"`
	Email     string       `gorm:"size:100" json:"email"`
	Phone     string       `gorm:"size:20;index" json:"phone"`
	Address   string       `gorm:"type:text" json:"address"`
	IDNumber  string       `gorm:"size:20" json:"id_number"`
	Active    bool         `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null" json:"updated_at"`
}

// TableName sets the database table name.
func (Customer) TableName() string { return "customers" }

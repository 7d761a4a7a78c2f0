package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type ActorType string

const (
	ActorTypePharmacist ActorType = "pharmacist"
	ActorTypeSystem     ActorType = "system"
)

// AuditLog is one recorded action against a tracked entity.
type AuditLog struct {
	ID         snowflake.ID      `gorm:"primaryKey" json:"id"`
	ActorType  ActorType         `gorm:"not null;size:20" json:"actor_type"`
	ActorID    *string           `gorm:"size:50" json:"actor_id,omitempty"`
	Action     string            `gorm:"not null;size:100;index" json:"action"`
	TargetType string            `gorm:"not null;size:50;index" json:"target_type"`
	TargetID   *string           `gorm:"size:50" json:"target_id,omitempty"`
	Metadata   datatypes.JSONMap `json:"metadata,omitempty"`
	CreatedAt  time.Time         `gorm:"not null;index" json:"created_at"`
}

// TableName sets the database table name.
func (AuditLog) TableName() string { return "audit_logs" }

package domain

import (
	"context"
	"errors"
	"time"
)

type ListFilter struct {
	Action     string
	TargetType string
	TargetID   string
	StartAt    *time.Time
	EndAt      *time.Time
	Limit      int
}

type Service interface {
	// Record writes an entry. Failures are logged by the caller's policy;
	// a lost audit line never fails the action it describes.
	Record(ctx context.Context, actorType ActorType, actorID *string, action, targetType string, targetID *string, metadata map[string]any) error
	List(ctx context.Context, filter ListFilter) ([]AuditLog, error)
}

var (
	ErrInvalidAction    = errors.New("invalid_action")
	ErrInvalidTimeRange = errors.New("invalid_time_range")
)

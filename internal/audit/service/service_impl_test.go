package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/amancodes12/pharmaease/internal/audit/domain"
	auditrepository "github.com/amancodes12/pharmaease/internal/audit/repository"
	"github.com/amancodes12/pharmaease/internal/clock"
	"github.com/amancodes12/pharmaease/internal/migration"
)

func setup(t *testing.T) (domain.Service, *clock.FakeClock) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, migration.AutoMigrate(db))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fake,
		Repo:  auditrepository.Provide(),
	})
	return svc, fake
}

func TestRecordAndList(t *testing.T) {
	svc, fake := setup(t)
	ctx := context.Background()

	actor := "12345"
	target := "67890"
	require.NoError(t, svc.Record(ctx, domain.ActorTypePharmacist, &actor, "order.create", "order", &target, map[string]any{
		"order_number": "ORD-001",
	}))

	fake.Advance(time.Minute)
	require.NoError(t, svc.Record(ctx, domain.ActorTypeSystem, nil, "batch.expired_deactivated", "stock_batch", nil, nil))

	logs, err := svc.List(ctx, domain.ListFilter{})
	require.NoError(t, err)
	require.Len(t, logs, 2)

	// Newest first.
	assert.Equal(t, "batch.expired_deactivated", logs[0].Action)
	assert.Equal(t, domain.ActorTypeSystem, logs[0].ActorType)
	assert.Nil(t, logs[0].ActorID)

	assert.Equal(t, "order.create", logs[1].Action)
	require.NotNil(t, logs[1].ActorID)
	assert.Equal(t, "12345", *logs[1].ActorID)
	assert.Equal(t, "ORD-001", logs[1].Metadata["order_number"])
}

func TestListFilters(t *testing.T) {
	svc, fake := setup(t)
	ctx := context.Background()

	require.NoError(t, svc.Record(ctx, domain.ActorTypeSystem, nil, "order.create", "order", nil, nil))
	fake.Advance(time.Hour)
	require.NoError(t, svc.Record(ctx, domain.ActorTypeSystem, nil, "order.cancel", "order", nil, nil))

	byAction, err := svc.List(ctx, domain.ListFilter{Action: "order.cancel"})
	require.NoError(t, err)
	require.Len(t, byAction, 1)
	assert.Equal(t, "order.cancel", byAction[0].Action)

	cutoff := fake.Now().Add(-30 * time.Minute)
	recent, err := svc.List(ctx, domain.ListFilter{StartAt: &cutoff})
	require.NoError(t, err)
	assert.Len(t, recent, 1)

	end := cutoff.Add(-time.Hour)
	_, err = svc.List(ctx, domain.ListFilter{StartAt: &cutoff, EndAt: &end})
	assert.ErrorIs(t, err, domain.ErrInvalidTimeRange)
}

func TestRecordRequiresAction(t *testing.T) {
	svc, _ := setup(t)
	err := svc.Record(context.Background(), domain.ActorTypeSystem, nil, "  ", "order", nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidAction)
}

package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/amancodes12/pharmaease/internal/customer/domain"
	customerrepository "github.com/amancodes12/pharmaease/internal/customer/repository"
	"github.com/amancodes12/pharmaease/internal/migration"
)

func setup(t *testing.T) domain.Service {
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

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  customerrepository.Provide(),
	})
}

func TestCustomerLifecycle(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CustomerRequest{
		Name:  "  Anita D'Souza ",
		Phone: "9876500001",
		Email: "anita@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Anita D'Souza", created.Name)
	assert.True(t, created.Active)

	byPhone, err := svc.GetByPhone(ctx, "9876500001")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byPhone.ID)

	inactive := false
	updated, err := svc.Update(ctx, created.ID.String(), domain.CustomerRequest{
		Name:   "Anita D'Souza",
		Phone:  "9876500001",
		Active: &inactive,
	})
	require.NoError(t, err)
	assert.False(t, updated.Active)

	require.NoError(t, svc.Delete(ctx, created.ID.String()))
	_, err = svc.GetByID(ctx, created.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerSearchAndFilter(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CustomerRequest{Name: "Ramesh Kumar", Phone: "111"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, domain.CustomerRequest{Name: "Suresh Kumar", Phone: "222"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CustomerRequest{Name: "Priya Menon", Phone: "333"})
	require.NoError(t, err)

	inactive := false
	_, err = svc.Update(ctx, second.ID.String(), domain.CustomerRequest{Name: "Suresh Kumar", Active: &inactive})
	require.NoError(t, err)

	kumars, err := svc.Search(ctx, "kumar")
	require.NoError(t, err)
	assert.Len(t, kumars, 2)

	active, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	all, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCustomerValidation(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CustomerRequest{Phone: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.GetByID(ctx, "garbage")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.GetByPhone(ctx, "000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

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

	"github.com/amancodes12/pharmaease/internal/migration"
	"github.com/amancodes12/pharmaease/internal/pharmacist/domain"
	pharmacistrepository "github.com/amancodes12/pharmaease/internal/pharmacist/repository"
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
		Repo:  pharmacistrepository.Provide(),
	})
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, domain.RegisterRequest{
		Name:          "Ravi Nair",
		Email:         "  Ravi.Nair@Pharmaease.Local ",
		Password:      "s3cret-pass",
		LicenseNumber: "KL-2031",
	})
	require.NoError(t, err)

	assert.Equal(t, "ravi.nair@pharmaease.local", registered.Email)
	assert.Equal(t, "PHARMACIST", registered.Role)
	assert.True(t, registered.Active)
	assert.NotEqual(t, "s3cret-pass", registered.PasswordHash)

	authed, err := svc.Authenticate(ctx, "RAVI.NAIR@pharmaease.local", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, authed.ID)
}

func TestAuthenticateFailuresLookAlike(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, domain.RegisterRequest{
		Name:     "Meera Joshi",
		Email:    "meera@pharmaease.local",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "meera@pharmaease.local", "wrong-horse")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody@pharmaease.local", "correct-horse")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Update(ctx, registered.ID.String(), domain.UpdateRequest{
		Name:   "Meera Joshi",
		Active: false,
	})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "meera@pharmaease.local", "correct-horse")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{Email: "a@b.c", Password: "longenough"})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Register(ctx, domain.RegisterRequest{Name: "X", Email: "not-an-email", Password: "longenough"})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = svc.Register(ctx, domain.RegisterRequest{Name: "X", Email: "a@b.c", Password: "short"})
	assert.ErrorIs(t, err, domain.ErrInvalidPassword)

	_, err = svc.Register(ctx, domain.RegisterRequest{Name: "X", Email: "dup@b.c", Password: "longenough"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, domain.RegisterRequest{Name: "Y", Email: "DUP@b.c", Password: "longenough"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

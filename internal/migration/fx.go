package migration

import (
	"context"
	"math/rand"
	"time"

	"github.com/amancodes12/pharmaease/internal/config"
	"github.com/amancodes12/pharmaease/internal/seed"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, node *snowflake.Node) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunPostgres(sqlDB); err != nil {
				return err
			}
		} else {
			if err := AutoMigrate(conn); err != nil {
				return err
			}
		}

		if err := seed.EnsureAdminPharmacist(conn); err != nil {
			return err
		}

		if cfg.SeedSampleData {
			rng := rand.New(rand.NewSource(time.Now().UnixNano()))
			generator := seed.NewSampleGenerator(rng, node)
			return generator.Generate(context.Background(), conn)
		}
		return nil
	}),
)

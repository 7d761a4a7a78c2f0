package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/amancodes12/pharmaease/internal/clock"
	"github.com/amancodes12/pharmaease/internal/config"
	"github.com/amancodes12/pharmaease/internal/migration"
	"github.com/amancodes12/pharmaease/internal/observability/tracing"
	"github.com/amancodes12/pharmaease/internal/scheduler"
	"github.com/amancodes12/pharmaease/internal/server"
	"github.com/amancodes12/pharmaease/pkg/db"
	"github.com/amancodes12/pharmaease/pkg/log"
)

func main() {
	app := fx.New(
		config.Module,
		log.Module,
		tracing.Module,
		fx.Provide(newSnowflakeNode),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
		scheduler.Module,
	)
	app.Run()
}

func newSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}

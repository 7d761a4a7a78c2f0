package batch

import (
	"github.com/amancodes12/pharmaease/internal/batch/repository"
	"github.com/amancodes12/pharmaease/internal/batch/service"
	"go.uber.org/fx"
)

var Module = fx.Module("batch.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

package report

import (
	"github.com/amancodes12/pharmaease/internal/report/cache"
	"github.com/amancodes12/pharmaease/internal/report/repository"
	"github.com/amancodes12/pharmaease/internal/report/service"
	"go.uber.org/fx"
)

var Module = fx.Module("report.service",
	fx.Provide(repository.Provide),
	fx.Provide(cache.New),
	fx.Provide(service.New),
)

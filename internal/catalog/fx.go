package catalog

import (
	"github.com/amancodes12/pharmaease/internal/catalog/repository"
	"github.com/amancodes12/pharmaease/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

package inventory

import (
	"github.com/amancodes12/pharmaease/internal/inventory/repository"
	"github.com/amancodes12/pharmaease/internal/inventory/service"
	"go.uber.org/fx"
)

var Module = fx.Module("inventory.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

package order

import (
	"github.com/amancodes12/pharmaease/internal/order/repository"
	"github.com/amancodes12/pharmaease/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

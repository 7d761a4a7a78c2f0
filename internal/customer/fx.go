package customer

import (
	"github.com/amancodes12/pharmaease/internal/customer/repository"
	"github.com/amancodes12/pharmaease/internal/customer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

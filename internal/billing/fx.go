package billing

import (
	"github.com/amancodes12/pharmaease/internal/billing/repository"
	"github.com/amancodes12/pharmaease/internal/billing/service"
	"go.uber.org/fx"
)

var Module = fx.Module("billing.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
	fx.Provide(service.NewIssuer),
)

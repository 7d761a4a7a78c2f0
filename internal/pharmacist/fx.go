package pharmacist

import (
	"github.com/amancodes12/pharmaease/internal/pharmacist/repository"
	"github.com/amancodes12/pharmaease/internal/pharmacist/service"
	"go.uber.org/fx"
)

var Module = fx.Module("pharmacist.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

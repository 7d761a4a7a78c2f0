package audit

import (
	"github.com/amancodes12/pharmaease/internal/audit/repository"
	"github.com/amancodes12/pharmaease/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

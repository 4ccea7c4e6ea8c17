package portal

import (
	"github.com/smallbiznis/invoys/internal/portal/repository"
	"github.com/smallbiznis/invoys/internal/portal/service"
	"go.uber.org/fx"
)

var Module = fx.Module("portal",
	fx.Provide(
		repository.NewRepository,
		service.NewService,
	),
)

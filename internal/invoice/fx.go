package invoice

import (
	"github.com/smallbiznis/invoys/internal/invoice/repository"
	"github.com/smallbiznis/invoys/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice",
	fx.Provide(
		repository.NewRepository,
		service.NewService,
	),
)

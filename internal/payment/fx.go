package payment

import (
	"github.com/smallbiznis/invoys/internal/payment/repository"
	"github.com/smallbiznis/invoys/internal/payment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("payment",
	fx.Provide(
		repository.NewRepository,
		service.NewService,
	),
)

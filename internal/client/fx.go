package client

import (
	"github.com/smallbiznis/invoys/internal/client/repository"
	"github.com/smallbiznis/invoys/internal/client/service"
	"go.uber.org/fx"
)

var Module = fx.Module("client",
	fx.Provide(
		repository.NewRepository,
		service.NewService,
	),
)

package business

import (
	"github.com/smallbiznis/invoys/internal/business/repository"
	"github.com/smallbiznis/invoys/internal/business/service"
	"go.uber.org/fx"
)

var Module = fx.Module("business.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)

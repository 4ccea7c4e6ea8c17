package auth

import (
	"github.com/smallbiznis/invoys/internal/auth/repository"
	"github.com/smallbiznis/invoys/internal/auth/service"
	"github.com/smallbiznis/invoys/internal/auth/session"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.New),
	fx.Provide(session.NewManager),
)

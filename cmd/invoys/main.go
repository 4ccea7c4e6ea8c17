package main

import (
	"github.com/smallbiznis/invoys/internal/server"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		server.Module,
	).Run()
}

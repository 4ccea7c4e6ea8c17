package businessctx

import "go.uber.org/fx"

var Module = fx.Module("businessctx",
	fx.Provide(NewManager),
)

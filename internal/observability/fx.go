package observability

import (
	"github.com/smallbiznis/invoys/internal/observability/logger"
	"github.com/smallbiznis/invoys/internal/observability/metrics"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	fx.Provide(
		logger.New,
		metrics.NewHTTPMetrics,
	),
)

package config

import (
	"fmt"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("config",
	fx.Provide(Load),
	fx.Provide(NewInvoiceDefaultsHolder),
	fx.Invoke(requireSettings),
)

// requireSettings aborts startup when required settings are absent.
func requireSettings(cfg Config, log *zap.Logger) error {
	missing := cfg.Validate()
	if len(missing) == 0 {
		return nil
	}
	log.Error("missing required configuration", zap.Strings("keys", missing))
	return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
}

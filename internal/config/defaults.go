package config

import (
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// InvoiceDefaults are the fallback settings applied when a business has not
// configured its own currency, payment terms, or invoice number prefix.
type InvoiceDefaults struct {
	Currency     string `mapstructure:"currency"`
	PaymentTerms string `mapstructure:"paymentTerms"`
	Prefix       string `mapstructure:"prefix"`
	NumberWidth  int    `mapstructure:"numberWidth"`
}

func DefaultInvoiceDefaults() InvoiceDefaults {
	return InvoiceDefaults{
		Currency:     "USD",
		PaymentTerms: "30 days",
		Prefix:       "INV",
		NumberWidth:  4,
	}
}

// InvoiceDefaultsHolder keeps the current defaults and hot-reloads them when
// the config file changes on disk.
type InvoiceDefaultsHolder struct {
	current atomic.Value // holds InvoiceDefaults
}

func NewInvoiceDefaultsHolder() (*InvoiceDefaultsHolder, error) {
	v := viper.New()

	v.SetConfigName("invoicing")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/invoys")
	v.AddConfigPath(".")

	v.SetEnvPrefix("INVOYS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultInvoiceDefaults()
	v.SetDefault("invoicing.currency", defaults.Currency)
	v.SetDefault("invoicing.paymentTerms", defaults.PaymentTerms)
	v.SetDefault("invoicing.prefix", defaults.Prefix)
	v.SetDefault("invoicing.numberWidth", defaults.NumberWidth)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	holder := &InvoiceDefaultsHolder{}
	cfg, err := unmarshalDefaults(v)
	if err != nil {
		return nil, err
	}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(_ fsnotify.Event) {
		next, err := unmarshalDefaults(v)
		if err != nil {
			zap.L().Warn("ignoring invalid invoicing config reload", zap.Error(err))
			return
		}
		holder.current.Store(next)
		zap.L().Info("reloaded invoicing defaults")
	})

	return holder, nil
}

// Current returns the active defaults snapshot.
func (h *InvoiceDefaultsHolder) Current() InvoiceDefaults {
	cfg, _ := h.current.Load().(InvoiceDefaults)
	return normalizeDefaults(cfg)
}

func unmarshalDefaults(v *viper.Viper) (InvoiceDefaults, error) {
	var cfg InvoiceDefaults
	if err := v.UnmarshalKey("invoicing", &cfg); err != nil {
		return InvoiceDefaults{}, err
	}
	return normalizeDefaults(cfg), nil
}

func normalizeDefaults(cfg InvoiceDefaults) InvoiceDefaults {
	fallback := DefaultInvoiceDefaults()
	if strings.TrimSpace(cfg.Currency) == "" {
		cfg.Currency = fallback.Currency
	}
	if strings.TrimSpace(cfg.PaymentTerms) == "" {
		cfg.PaymentTerms = fallback.PaymentTerms
	}
	if strings.TrimSpace(cfg.Prefix) == "" {
		cfg.Prefix = fallback.Prefix
	}
	if cfg.NumberWidth <= 0 {
		cfg.NumberWidth = fallback.NumberWidth
	}
	return cfg
}

package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// PricingConfig carries file-driven pricing defaults: the set of currencies
// rate rows may be stored in and the fallback numbering templates used when
// neither the order book nor the settings table defines one.
type PricingConfig struct {
	Currencies              []string `mapstructure:"currencies"`
	DefaultCurrency         string   `mapstructure:"defaultCurrency"`
	OrderNumberFormat       string   `mapstructure:"orderNumberFormat"`
	InvoiceNumberFormat     string   `mapstructure:"invoiceNumberFormat"`
	SubcontractNumberFormat string   `mapstructure:"subcontractNumberFormat"`
}

func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		Currencies:              []string{"PLN", "EUR", "USD", "GBP"},
		DefaultCurrency:         "PLN",
		OrderNumberFormat:       "Z/{YYYY}/{NR}",
		InvoiceNumberFormat:     "FV/{YYYY}/{NR}",
		SubcontractNumberFormat: "PZ/{YYYY}/{NR}",
	}
}

type PricingConfigHolder struct {
	current atomic.Value // holds PricingConfig
}

func NewPricingConfigHolder() (*PricingConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("pricing")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/lingora/config")
	v.AddConfigPath("/etc/lingora")
	v.AddConfigPath(".")

	v.SetEnvPrefix("LINGORA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultPricingConfig()
		v.SetDefault("pricing.currencies", defaults.Currencies)
		v.SetDefault("pricing.defaultCurrency", defaults.DefaultCurrency)
		v.SetDefault("pricing.orderNumberFormat", defaults.OrderNumberFormat)
		v.SetDefault("pricing.invoiceNumberFormat", defaults.InvoiceNumberFormat)
		v.SetDefault("pricing.subcontractNumberFormat", defaults.SubcontractNumberFormat)
	}

	var cfg PricingConfig
	if err := v.UnmarshalKey("pricing", &cfg); err != nil {
		return nil, err
	}
	if err := validatePricingConfig(cfg); err != nil {
		return nil, err
	}

	holder := &PricingConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated PricingConfig
		if err := v.UnmarshalKey("pricing", &updated); err != nil {
			log.Printf("[pricing-config] reload failed: %v", err)
			return
		}
		if err := validatePricingConfig(updated); err != nil {
			log.Printf("[pricing-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[pricing-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticPricingConfigHolder wraps a fixed config without file watching.
func NewStaticPricingConfigHolder(cfg PricingConfig) *PricingConfigHolder {
	holder := &PricingConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *PricingConfigHolder) Current() PricingConfig {
	cfg, _ := h.current.Load().(PricingConfig)
	return cfg
}

func validatePricingConfig(cfg PricingConfig) error {
	if len(cfg.Currencies) == 0 {
		return errors.New("pricing config requires at least one currency")
	}
	if strings.TrimSpace(cfg.DefaultCurrency) == "" {
		return errors.New("pricing config requires a default currency")
	}
	found := false
	for _, c := range cfg.Currencies {
		if strings.EqualFold(strings.TrimSpace(c), cfg.DefaultCurrency) {
			found = true
			break
		}
	}
	if !found {
		return errors.New("default currency must be one of the accepted currencies")
	}
	return nil
}

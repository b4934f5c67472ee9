package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/bellavista/storefront/internal/domain/pricing"
)

// Config holds the complete application configuration, loadable from
// environment variables (VISTA_ prefix), flags, or YAML config files.
type Config struct {
	Addr         string `default:"0.0.0.0:8080" usage:"API server listen address"`
	ImageBaseURL string `default:"" usage:"Base URL prepended to catalog image paths" flag:"image-base-url"`
	Pricing      PricingConfig
	Reservation  ReservationConfig
	RateLimit    RateLimitConfig
	CORS         CORSConfig
	Graceful     GracefulConfig
}

// PricingConfig selects the fee table. The named tier supplies the defaults;
// individual values may be overridden per deployment.
type PricingConfig struct {
	Tier                  string `default:"standard" usage:"Fee table: standard or premium"`
	FreeDeliveryThreshold string `default:"" usage:"Override: subtotal above which delivery is free" flag:"free-delivery-threshold"`
	FlatDeliveryFee       string `default:"" usage:"Override: flat delivery fee" flag:"flat-delivery-fee"`
	TaxRate               string `default:"" usage:"Override: tax rate as a decimal fraction" flag:"tax-rate"`
}

// Resolve builds the pricing configuration from the tier and overrides.
func (p PricingConfig) Resolve() (pricing.Config, error) {
	var cfg pricing.Config
	switch p.Tier {
	case "standard":
		cfg = pricing.StandardTier()
	case "premium":
		cfg = pricing.PremiumTier()
	default:
		return pricing.Config{}, errors.Errorf("unknown pricing tier %q", p.Tier)
	}

	if p.FreeDeliveryThreshold != "" {
		v, err := decimal.NewFromString(p.FreeDeliveryThreshold)
		if err != nil {
			return pricing.Config{}, errors.Wrap(err, "parse free delivery threshold")
		}
		cfg.FreeDeliveryThreshold = v
	}
	if p.FlatDeliveryFee != "" {
		v, err := decimal.NewFromString(p.FlatDeliveryFee)
		if err != nil {
			return pricing.Config{}, errors.Wrap(err, "parse flat delivery fee")
		}
		cfg.FlatDeliveryFee = v
	}
	if p.TaxRate != "" {
		v, err := decimal.NewFromString(p.TaxRate)
		if err != nil {
			return pricing.Config{}, errors.Wrap(err, "parse tax rate")
		}
		cfg.TaxRate = v
	}
	return cfg, nil
}

// ReservationConfig controls the reservation flow.
type ReservationConfig struct {
	SubmitDelay time.Duration `default:"1s" usage:"Simulated reservation booking round trip" flag:"reservation-delay"`
}

// RateLimitConfig controls the per-client rate limiter.
type RateLimitConfig struct {
	Max    int           `default:"100" usage:"Max requests per window"`
	Window time.Duration `default:"1m"  usage:"Rate limit window duration"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins []string `default:"*" usage:"Allowed CORS origins"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files, and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "VISTA",
		Files:     []string{"config.yaml", "/etc/bellavista/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()
	return &cfg, nil
}

// applyPlatformDefaults maps platform-provided environment variables (Railway,
// Render, etc.) like PORT onto the VISTA_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	defaultEnvFile = ".env"
	defaultPort    = "8080"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Env      string `env:"KWA_WEB_ENV" envDefault:"dev"`
	Dev      bool   `env:"KWA_WEB_DEV"`
	LogLevel string `env:"KWA_WEB_LOG_LEVEL" envDefault:"info"`

	Server    ServerConfig
	Session   SessionConfig
	Locale    LocaleConfig
	Shop      ShopConfig
	Catalog   CatalogConfig
	Analytics AnalyticsConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port              string        `env:"KWA_WEB_PORT"`
	ReadHeaderTimeout time.Duration `env:"KWA_WEB_READ_HEADER_TIMEOUT" envDefault:"10s"`
	ReadTimeout       time.Duration `env:"KWA_WEB_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout      time.Duration `env:"KWA_WEB_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout       time.Duration `env:"KWA_WEB_IDLE_TIMEOUT" envDefault:"60s"`
	RequestTimeout    time.Duration `env:"KWA_WEB_REQUEST_TIMEOUT" envDefault:"30s"`
	TemplatesDir      string        `env:"KWA_WEB_TEMPLATES_DIR"`
	PublicDir         string        `env:"KWA_WEB_PUBLIC_DIR"`
}

// SessionConfig holds cookie signing material. Empty keys mean a
// process-ephemeral key is generated (dev only).
type SessionConfig struct {
	HashKey  string `env:"KWA_WEB_SESSION_HASH_KEY"`
	BlockKey string `env:"KWA_WEB_SESSION_BLOCK_KEY"`
}

// LocaleConfig controls first-visit locale selection.
type LocaleConfig struct {
	// Negotiate resolves first visits from Accept-Language instead of
	// showing the source locale.
	Negotiate bool `env:"KWA_WEB_NEGOTIATE_LOCALE"`
}

// ShopConfig is the business identity shown on the site.
type ShopConfig struct {
	Name     string `env:"KWA_WEB_SHOP_NAME" envDefault:"Kwa Mugisha Grocery Shop"`
	Phone    string `env:"KWA_WEB_SHOP_PHONE" envDefault:"0788 899 899"`
	WhatsApp string `env:"KWA_WEB_SHOP_WHATSAPP" envDefault:"250788899899"`
	Email    string `env:"KWA_WEB_SHOP_EMAIL" envDefault:"info@kwamugisha.rw"`
	BaseURL  string `env:"KWA_WEB_BASE_URL" envDefault:"http://localhost:8080"`
	Address  string `env:"KWA_WEB_SHOP_ADDRESS" envDefault:"Kigali, Rwanda"`
}

// CatalogConfig locates the product list and sizes the plan cache.
type CatalogConfig struct {
	File      string        `env:"KWA_WEB_CATALOG_FILE" envDefault:"catalog/products.yaml"`
	CacheSize int           `env:"KWA_WEB_CATALOG_CACHE_SIZE" envDefault:"256"`
	CacheTTL  time.Duration `env:"KWA_WEB_CATALOG_CACHE_TTL" envDefault:"10m"`
}

// AnalyticsConfig holds client instrumentation configuration surfaced to templates.
type AnalyticsConfig struct {
	GA4MeasurementID string `env:"KWA_WEB_GA_MEASUREMENT_ID"`
	Debug            bool   `env:"KWA_WEB_ANALYTICS_DEBUG"`
}

// Production reports whether cookies must be marked Secure.
func (c Config) Production() bool { return strings.EqualFold(c.Env, "prod") }

// Addr is the HTTP listen address.
func (c Config) Addr() string { return ":" + c.Server.Port }

// ValidationError lists invalid configuration fields.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "config: invalid configuration: " + strings.Join(e.Problems, "; ")
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile reads dotenv values from path; an empty path disables it.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) { o.envFile = path }
}

// WithEnvMap supplies values that take precedence over every other source.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) { o.envMap = values }
}

// WithoutSystemEnv ignores the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) { o.useSystemEnv = false }
}

// Load merges dotenv file < process env < explicit map and parses the result.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{envFile: defaultEnvFile, useSystemEnv: true}
	for _, opt := range opts {
		opt(&options)
	}

	merged := map[string]string{}
	if options.envFile != "" {
		values, err := godotenv.Read(options.envFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("config: read %s: %w", options.envFile, err)
		}
		for k, v := range values {
			merged[k] = v
		}
	}
	if options.useSystemEnv {
		for k, v := range env.ToMap(os.Environ()) {
			merged[k] = v
		}
	}
	for k, v := range options.envMap {
		merged[k] = v
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: merged}); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}

	// Port resolution: prefer KWA_WEB_PORT, then the platform's PORT, else 8080
	if cfg.Server.Port == "" {
		cfg.Server.Port = merged["PORT"]
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = defaultPort
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	var problems []string
	if n := len(cfg.Session.HashKey); n != 0 && n < 32 {
		problems = append(problems, "KWA_WEB_SESSION_HASH_KEY must be at least 32 bytes")
	}
	if n := len(cfg.Session.BlockKey); n != 0 && n != 16 && n != 24 && n != 32 {
		problems = append(problems, "KWA_WEB_SESSION_BLOCK_KEY must be 16, 24 or 32 bytes")
	}
	if cfg.Production() && cfg.Session.HashKey == "" {
		problems = append(problems, "KWA_WEB_SESSION_HASH_KEY is required in prod")
	}
	if cfg.Catalog.CacheSize <= 0 {
		problems = append(problems, "KWA_WEB_CATALOG_CACHE_SIZE must be positive")
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

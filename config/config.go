package config

import (
	"os"
	"strings"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"github.com/joho/godotenv"

	"github.com/aromanza/gateway/utils"
)

// Cart store backends
const (
	CartStoreSession  = "session"
	CartStoreRedis    = "redis"
	CartStorePostgres = "postgres"
	CartStoreMemory   = "memory"

	// DefaultCartStore must match the default tag of CartConfig.Store
	DefaultCartStore = CartStoreMemory
)

// Payment providers
const (
	PaymentBackend  = "backend"
	PaymentRazorpay = "razorpay"
)

// Config holds the complete gateway configuration, loadable from environment
// variables (AROMANZA_ prefix), flags, or YAML config files.
type Config struct {
	Addr            string        `default:"0.0.0.0:8080" usage:"HTTP listen address"`
	Env             string        `default:"development" usage:"development or production"`
	PublicURL       string        `default:"http://localhost:8080" usage:"URL the gateway is reached at, used for payment callbacks" flag:"public-url"`
	ProfileCacheTTL time.Duration `default:"60s" usage:"How long a fetched profile is trusted, 0 disables" flag:"profile-cache-ttl"`
	API             APIConfig
	Session         SessionConfig
	Cart            CartConfig
	Database        DatabaseConfig
	Redis           RedisConfig
	CORS            CORSConfig
	Log             LogConfig
	Payment         PaymentConfig
	Mail            MailConfig
	Graceful        GracefulConfig
}

// APIConfig points at the Aromanza REST backend
type APIConfig struct {
	URL             string        `usage:"Backend base URL (AROMANZA_API_URL or VITE_API_URL)"`
	Timeout         time.Duration `default:"10s" usage:"Timeout of one backend call"`
	MaxRetries      int           `default:"2" usage:"Retries of idempotent calls on transient failure"`
	RetryInterval   time.Duration `default:"200ms" usage:"First retry delay"`
	BreakerFailures uint32        `default:"5" usage:"Consecutive failures that open the circuit"`
	BreakerOpenFor  time.Duration `default:"30s" usage:"How long the circuit stays open"`
}

// SessionConfig controls the gateway's own cookie
type SessionConfig struct {
	Secret string        `usage:"Key signing the session cookie and profile cache"`
	MaxAge time.Duration `default:"720h" usage:"Session cookie lifetime"`
	Secure bool          `default:"false" usage:"Send the session cookie over HTTPS only"`
}

// CartConfig selects where carts are kept
type CartConfig struct {
	Store string        `default:"memory" usage:"memory, redis, postgres or session (cookie, about a dozen products at most)"`
	TTL   time.Duration `default:"720h" usage:"Lifetime of an untouched cart in memory or redis"`
}

type DatabaseConfig struct {
	URL string `usage:"PostgreSQL connection URL (AROMANZA_DATABASE_URL or DATABASE_URL)"`
}

type RedisConfig struct {
	URL string `usage:"Redis connection URL (AROMANZA_REDIS_URL or REDIS_URL)"`
}

// CORSConfig lists the front-end origins allowed to call with credentials
type CORSConfig struct {
	Origins []string `default:"http://localhost:5173" usage:"Allowed CORS origins"`
}

type LogConfig struct {
	Dir     string `default:"logs" usage:"Directory of the daily log files"`
	Level   string `default:"info" usage:"debug, info, warn or error"`
	Console bool   `default:"true" usage:"Also log to stderr"`
}

// PaymentConfig selects the checkout provider
type PaymentConfig struct {
	Provider          string `default:"backend" usage:"backend or razorpay"`
	RazorpayKeyID     string `usage:"Razorpay key id"`
	RazorpayKeySecret string `usage:"Razorpay key secret"`
	RazorpayCurrency  string `default:"INR" usage:"Currency of razorpay payment links"`
}

// MailConfig is the SMTP account the contact form sends through
type MailConfig struct {
	Host     string `default:"smtp.gmail.com"`
	Port     int    `default:"587"`
	Username string
	Password string
	From     string
	Inbox    string `usage:"Address contact messages are delivered to"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// IsProduction reports whether the gateway runs in production
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// LoadConfig loads .env when present, then environment variables, flags and
// YAML config files.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "load .env")
	}
	return load(aconfig.Config{
		EnvPrefix: "AROMANZA",
		Files:     []string{"config.yaml", "/etc/aromanza/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
}

func load(ac aconfig.Config) (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, ac)
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyPlatformDefaults maps the unprefixed variables hosting platforms and the
// old front-end build provide.
func (c *Config) applyPlatformDefaults() {
	if c.API.URL == "" {
		c.API.URL = os.Getenv("VITE_API_URL")
	}
	if c.Database.URL == "" {
		c.Database.URL = os.Getenv("DATABASE_URL")
	}
	if c.Redis.URL == "" {
		c.Redis.URL = os.Getenv("REDIS_URL")
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == utils.DefaultAddr {
		c.Addr = "0.0.0.0:" + port
	}
	if c.Session.Secret == "" && !c.IsProduction() {
		c.Session.Secret = "aromanza-development-secret"
	}
	c.Cart.Store = strings.ToLower(strings.TrimSpace(c.Cart.Store))
	c.Payment.Provider = strings.ToLower(strings.TrimSpace(c.Payment.Provider))
}

func (c *Config) validate() error {
	if c.API.URL == "" {
		return errors.New("backend URL is required: set AROMANZA_API_URL or VITE_API_URL")
	}
	if c.Session.Secret == "" {
		return errors.New("session secret is required in production: set AROMANZA_SESSION_SECRET")
	}
	switch c.Cart.Store {
	case CartStoreSession, CartStoreMemory:
	case CartStoreRedis:
		if c.Redis.URL == "" {
			return errors.New("cart store redis needs AROMANZA_REDIS_URL or REDIS_URL")
		}
	case CartStorePostgres:
		if c.Database.URL == "" {
			return errors.New("cart store postgres needs AROMANZA_DATABASE_URL or DATABASE_URL")
		}
	default:
		return errors.Errorf("unknown cart store %q", c.Cart.Store)
	}
	switch c.Payment.Provider {
	case PaymentBackend:
	case PaymentRazorpay:
		if c.Payment.RazorpayKeyID == "" || c.Payment.RazorpayKeySecret == "" {
			return errors.New("razorpay provider needs key id and secret")
		}
	default:
		return errors.Errorf("unknown payment provider %q", c.Payment.Provider)
	}
	if c.API.MaxRetries < 0 {
		return errors.New("api max retries cannot be negative")
	}
	return nil
}

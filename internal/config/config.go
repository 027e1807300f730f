package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/shopspring/decimal"
)

type Config struct {
	Server   ServerConfig   `envPrefix:"SERVER_"`
	Log      LogConfig      `envPrefix:"LOG_"`
	Database DatabaseConfig `envPrefix:"DATABASE_"`
	Redis    RedisConfig    `envPrefix:"REDIS_"`
	Kafka    KafkaConfig    `envPrefix:"KAFKA_"`
	Auth     AuthConfig     `envPrefix:"AUTH_"`
	Cart     CartConfig     `envPrefix:"CART_"`
	Catalog  CatalogConfig  `envPrefix:"CATALOG_"`
}

type ServerConfig struct {
	Port         string   `env:"PORT" envDefault:"8080"`
	Host         string   `env:"HOST" envDefault:"0.0.0.0"`
	CORSPattern  string   `env:"CORS_PATTERN" envDefault:"^https?://(localhost|127\\.0\\.0\\.1)(:\\d+)?$"`
	PprofEnabled bool     `env:"PPROF_ENABLED" envDefault:"false"`
	SkipLogPaths []string `env:"SKIP_LOG_PATHS" envSeparator:"," envDefault:"/health,/metrics"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type LogConfig struct {
	Level       string `env:"LEVEL" envDefault:"info"`
	Development bool   `env:"DEVELOPMENT" envDefault:"false"`
}

type DatabaseConfig struct {
	Enabled  bool     `env:"ENABLED" envDefault:"false"`
	Hosts    []string `env:"HOSTS" envSeparator:"," envDefault:"localhost:27017"`
	Direct   bool     `env:"DIRECT" envDefault:"true"`
	Username string   `env:"USERNAME"`
	Password string   `env:"PASSWORD"`
	AuthDB   string   `env:"AUTH_DB" envDefault:"admin"`
	Database string   `env:"DATABASE" envDefault:"storefront"`
}

type RedisConfig struct {
	Enabled  bool   `env:"ENABLED" envDefault:"false"`
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

type KafkaConfig struct {
	Enabled  bool     `env:"ENABLED" envDefault:"false"`
	Brokers  []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic    string   `env:"CART_EVENTS_TOPIC" envDefault:"storefront.cart.events"`
	ClientID string   `env:"CLIENT_ID" envDefault:"storefront"`
}

type AuthConfig struct {
	// shared HS256 secret of the external identity provider
	JWTSecret string `env:"JWT_SECRET"`
	Issuer    string `env:"ISSUER"`
}

type CartConfig struct {
	// snapshot backend: "none", "mongo" or "redis"
	SnapshotBackend  string          `env:"SNAPSHOT_BACKEND" envDefault:"none"`
	SnapshotTTL      time.Duration   `env:"SNAPSHOT_TTL" envDefault:"168h"`
	OperationTimeout time.Duration   `env:"OPERATION_TIMEOUT" envDefault:"3s"`
	TaxRate          decimal.Decimal `env:"TAX_RATE" envDefault:"0.1"`
	// carts untouched for IdleTTL are dropped from memory by a sweep every SweepInterval
	IdleTTL          time.Duration   `env:"IDLE_TTL" envDefault:"30m"`
	SweepInterval    time.Duration   `env:"SWEEP_INTERVAL" envDefault:"1m"`
}

type CatalogConfig struct {
	File string `env:"FILE"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Cart.SnapshotBackend {
	case SnapshotNone:
	case SnapshotMongo:
		if !c.Database.Enabled {
			return fmt.Errorf("cart snapshot backend %q requires DATABASE_ENABLED", c.Cart.SnapshotBackend)
		}
	case SnapshotRedis:
		if !c.Redis.Enabled {
			return fmt.Errorf("cart snapshot backend %q requires REDIS_ENABLED", c.Cart.SnapshotBackend)
		}
	default:
		return fmt.Errorf("unknown cart snapshot backend %q", c.Cart.SnapshotBackend)
	}
	if c.Cart.TaxRate.IsNegative() {
		return fmt.Errorf("cart tax rate must not be negative, got %s", c.Cart.TaxRate)
	}
	if c.Cart.IdleTTL <= 0 || c.Cart.SweepInterval <= 0 {
		return fmt.Errorf("cart idle ttl and sweep interval must be positive, got %s and %s", c.Cart.IdleTTL, c.Cart.SweepInterval)
	}
	return nil
}

const (
	SnapshotNone  = "none"
	SnapshotMongo = "mongo"
	SnapshotRedis = "redis"
)

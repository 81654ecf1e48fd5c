package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
)

// DevJWTSecret is the built-in signing secret. It is only accepted when Env is
// development.
const DevJWTSecret = "woiya-dev-secret"

type Config struct {
	Port      string        `yaml:"port"       env:"PORT, default=8080"`
	Env       string        `yaml:"env"        env:"ENV, default=development"`
	LogLevel  string        `yaml:"log_level"  env:"LOG_LEVEL, default=info"`
	JWTSecret string        `yaml:"jwt_secret" env:"JWT_SECRET, default=woiya-dev-secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"  env:"TOKEN_TTL, default=168h"`

	// AuthRateLimit is requests per second per client IP on /api/auth.
	AuthRateLimit float64       `yaml:"auth_rate_limit" env:"AUTH_RATE_LIMIT, default=5"`
	EscrowHold    time.Duration `yaml:"escrow_hold"     env:"ESCROW_HOLD, default=168h"`

	Mongo   MongoConfig   `yaml:"mongo"`
	Redis   RedisConfig   `yaml:"redis"`
	Gateway GatewayConfig `yaml:"gateway"`
}

type MongoConfig struct {
	URI      string        `yaml:"uri"      env:"MONGO_URI, default=mongodb://localhost:27017/?replicaSet=rs0"`
	Database string        `yaml:"database" env:"MONGO_DB, default=woiya"`
	Timeout  time.Duration `yaml:"timeout"  env:"MONGO_TIMEOUT, default=10s"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"     env:"REDIS_ADDR, default=localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"       env:"REDIS_DB, default=0"`
}

// GatewayConfig sets the simulated latency of the mock payment gateway.
type GatewayConfig struct {
	InitiateDelay time.Duration `yaml:"initiate_delay" env:"GATEWAY_INITIATE_DELAY, default=1s"`
	StatusDelay   time.Duration `yaml:"status_delay"   env:"GATEWAY_STATUS_DELAY, default=500ms"`
	RefundDelay   time.Duration `yaml:"refund_delay"   env:"GATEWAY_REFUND_DELAY, default=1s"`
}

// Load builds the configuration in three layers: struct defaults, then the
// optional YAML file at path, then environment variables. A variable that is
// set always wins over the file.
func Load(ctx context.Context, path string) (*Config, error) {
	return load(ctx, path, envconfig.OsLookuper())
}

func load(ctx context.Context, path string, lookuper envconfig.Lookuper) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config file: %w", err)
		}
		defer f.Close()

		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode config file %s: %w", path, err)
		}
	}

	err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:           cfg,
		Lookuper:         lookuper,
		DefaultOverwrite: true,
	})
	if err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate rejects settings the server must not start with.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET must be set"))
	} else if c.JWTSecret == DevJWTSecret && !c.IsDevelopment() {
		errs = append(errs, errors.New("JWT_SECRET uses the development default outside development"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	if c.EscrowHold <= 0 {
		errs = append(errs, errors.New("ESCROW_HOLD must be positive"))
	}
	if c.AuthRateLimit <= 0 {
		errs = append(errs, errors.New("AUTH_RATE_LIMIT must be positive"))
	}
	if c.Mongo.URI == "" || c.Mongo.Database == "" {
		errs = append(errs, errors.New("MONGO_URI and MONGO_DB must be set"))
	}
	if c.Redis.Addr == "" {
		errs = append(errs, errors.New("REDIS_ADDR must be set"))
	}
	return errors.Join(errs...)
}

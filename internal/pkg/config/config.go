package config

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/legacyapp/user-service/internal/core/domain"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=15s"`

	// SeedClients lists clients upserted at startup, as "id:name:type" entries
	// separated by commas, e.g. "1:Acme:StandardClient".
	SeedClients []string `env:"SEED_CLIENTS"`

	Mongo        MongoConfig
	Redis        RedisConfig
	Credit       CreditConfig
	Registration RegistrationConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=user_registry"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR,       default=localhost:6379"`
	DB       int           `env:"REDIS_DB,         default=0"`
	CacheTTL time.Duration `env:"CREDIT_CACHE_TTL, default=1h"`
}

// CreditConfig points at the external credit bureau.
type CreditConfig struct {
	URL     string        `env:"CREDIT_SERVICE_URL,     default=http://localhost:9090"`
	Timeout time.Duration `env:"CREDIT_SERVICE_TIMEOUT, default=5s"`
}

// RegistrationConfig overrides the registration thresholds. Zero keeps the
// domain defaults.
type RegistrationConfig struct {
	MinimumAge         int `env:"REGISTRATION_MIN_AGE,          default=21"`
	MinimumCreditLimit int `env:"REGISTRATION_MIN_CREDIT_LIMIT, default=500"`
}

// IsDevelopment reports whether the service runs in a local environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ClientSeeds parses SeedClients.
func (c *Config) ClientSeeds() ([]domain.Client, error) {
	clients := make([]domain.Client, 0, len(c.SeedClients))
	for _, entry := range c.SeedClients {
		parts := strings.Split(strings.TrimSpace(entry), ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("config: seed client %q: want id:name:type", entry)
		}
		id, err := strconv.Atoi(parts[0])
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("config: seed client %q: id must be a positive integer", entry)
		}
		clientType, err := domain.ParseClientType(parts[2])
		if err != nil {
			return nil, fmt.Errorf("config: seed client %q: %w", entry, err)
		}
		clients = append(clients, domain.Client{ID: id, Name: parts[1], Type: clientType})
	}
	return clients, nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration from the given lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	return &cfg, nil
}

package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

type Config struct {
	Port        string   `env:"PORT,         default=8000"`
	Env         string   `env:"ENV,          default=development"`
	LogLevel    string   `env:"LOG_LEVEL,    default=info"`
	CORSOrigins []string `env:"CORS_ORIGINS, default=*"`

	Auth  AuthConfig
	Store StoreConfig
	Redis RedisConfig
	GenAI GenAIConfig
}

type AuthConfig struct {
	JWTSecret        string        `env:"JWT_SECRET,         required"`
	AccessTokenTTL   time.Duration `env:"ACCESS_TOKEN_TTL,   default=30m"`
	BcryptCost       int           `env:"BCRYPT_COST,        default=12"`
	LoginMaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS, default=10"`
	LoginWindow      time.Duration `env:"LOGIN_WINDOW,       default=15m"`
}

type StoreConfig struct {
	Driver     string `env:"STORE_DRIVER, default=sqlite"`
	SQLitePath string `env:"SQLITE_PATH,  default=blog.db"`
	MongoURI   string `env:"MONGO_URI,    default=mongodb://localhost:27017"`
	MongoDB    string `env:"MONGO_DB,     default=smart_blog"`
}

// RedisConfig leaves Addr empty by default, which disables login throttling.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// GenAIConfig leaves APIKey empty by default, which puts generation in mock mode.
type GenAIConfig struct {
	APIKey  string        `env:"GENAI_API_KEY"`
	Model   string        `env:"GENAI_MODEL,    default=gemini-2.5-flash"`
	BaseURL string        `env:"GENAI_BASE_URL, default=https://generativelanguage.googleapis.com/"`
	Timeout time.Duration `env:"GENAI_TIMEOUT,  default=60s"`
}

// IsDevelopment reports whether human-friendly logging should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through l and validates it.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	switch cfg.Store.Driver {
	case DriverSQLite, DriverMongo:
	default:
		return nil, fmt.Errorf("config: unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET must not be empty")
	}
	if cfg.Auth.AccessTokenTTL <= 0 {
		return nil, fmt.Errorf("config: ACCESS_TOKEN_TTL must be positive")
	}
	return &cfg, nil
}

package config

import (
	"fmt"
	"net/url"
	"time"

	pkgconfig "github.com/vrikshavalli/storefront/pkg/config"
	"github.com/vrikshavalli/storefront/pkg/database"
	"github.com/vrikshavalli/storefront/pkg/middleware"
)

// Wishlist storage backends.
const (
	WishlistBackendRedis  = "redis"
	WishlistBackendMongo  = "mongo"
	WishlistBackendMemory = "memory"
)

// Product sources.
const (
	ProductSourcePostgres = "postgres"
	ProductSourceMock     = "mock"
	ProductSourceRemote   = "remote"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort            int      `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`
	RequestTimeoutSecs  int      `env:"HTTP_REQUEST_TIMEOUT_SECONDS" envDefault:"30"`
	CORSAllowedOrigins  []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`
	ListingCacheMaxAge  int      `env:"LISTING_CACHE_MAX_AGE" envDefault:"60"`
	ProductListMaxLimit int      `env:"PRODUCT_LIST_MAX_LIMIT" envDefault:"100"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"storefront"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"storefront_secret"`
	PostgresDB   string `env:"POSTGRES_DB" envDefault:"vrikshavalli"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	// Database pool
	DBMaxConns            int32 `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns            int32 `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetimeMins int   `env:"DB_MAX_CONN_LIFETIME_MINUTES" envDefault:"60"`
	DBMaxConnIdleTimeMins int   `env:"DB_MAX_CONN_IDLE_TIME_MINUTES" envDefault:"30"`
	RunMigrations         bool  `env:"DB_RUN_MIGRATIONS" envDefault:"true"`

	// Redis
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Bag lifetime in hours
	SessionTTL int `env:"SESSION_TTL_HOURS" envDefault:"24"`

	// Wishlist
	WishlistBackend    string `env:"WISHLIST_BACKEND" envDefault:"redis"`
	WishlistStorageKey string `env:"WISHLIST_STORAGE_KEY" envDefault:"vrikshavalli-wishlist"`

	// MongoDB, used when WISHLIST_BACKEND=mongo
	MongoURI string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB  string `env:"MONGO_DB" envDefault:"storefront"`

	// Product source for the listing and search endpoints
	ProductSource    string `env:"PRODUCT_SOURCE" envDefault:"postgres"`
	ProductSourceURL string `env:"PRODUCT_SOURCE_URL" envDefault:""`
	MockSeed         uint64 `env:"PRODUCT_MOCK_SEED" envDefault:"1"`

	// Kafka
	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`

	// Admin token for POST /api/products; empty disables the check
	AdminJWTSecret string `env:"ADMIN_JWT_SECRET" envDefault:""`

	// Per-IP rate limits
	EnquiryRateLimitRPS   float64 `env:"ENQUIRY_RATE_LIMIT_RPS" envDefault:"0.2"`
	EnquiryRateLimitBurst int     `env:"ENQUIRY_RATE_LIMIT_BURST" envDefault:"3"`
	SearchRateLimitRPS    float64 `env:"SEARCH_RATE_LIMIT_RPS" envDefault:"20"`
	SearchRateLimitBurst  int     `env:"SEARCH_RATE_LIMIT_BURST" envDefault:"40"`

	// Proxies allowed to set X-Forwarded-For; empty keys limits by socket address
	TrustedProxyCIDRs []string `env:"TRUSTED_PROXY_CIDRS" envSeparator:","`

	// Slow query logging
	SlowQueryThresholdMs int `env:"LOG_SLOW_QUERY_MS" envDefault:"500"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.SessionTTL < 1 {
		return fmt.Errorf("SESSION_TTL_HOURS must be positive, got %d", c.SessionTTL)
	}
	if c.ProductListMaxLimit < 1 {
		return fmt.Errorf("PRODUCT_LIST_MAX_LIMIT must be positive, got %d", c.ProductListMaxLimit)
	}
	if c.ListingCacheMaxAge < 0 {
		return fmt.Errorf("LISTING_CACHE_MAX_AGE must not be negative, got %d", c.ListingCacheMaxAge)
	}
	if c.PostgresHost == "" {
		return fmt.Errorf("POSTGRES_HOST is required")
	}
	if c.WishlistStorageKey == "" {
		return fmt.Errorf("WISHLIST_STORAGE_KEY is required")
	}

	switch c.WishlistBackend {
	case WishlistBackendRedis, WishlistBackendMemory:
	case WishlistBackendMongo:
		if c.MongoURI == "" || c.MongoDB == "" {
			return fmt.Errorf("MONGO_URI and MONGO_DB are required for the mongo wishlist backend")
		}
	default:
		return fmt.Errorf("unknown WISHLIST_BACKEND %q", c.WishlistBackend)
	}

	switch c.ProductSource {
	case ProductSourcePostgres, ProductSourceMock:
	case ProductSourceRemote:
		u, err := url.Parse(c.ProductSourceURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("PRODUCT_SOURCE_URL must be an absolute URL for the remote product source")
		}
	default:
		return fmt.Errorf("unknown PRODUCT_SOURCE %q", c.ProductSource)
	}

	if c.KafkaEnabled && len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when KAFKA_ENABLED is set")
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1.0 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", c.OTELSampleRate)
	}
	if c.EnquiryRateLimitRPS <= 0 || c.EnquiryRateLimitBurst < 1 {
		return fmt.Errorf("ENQUIRY_RATE_LIMIT_RPS and ENQUIRY_RATE_LIMIT_BURST must be positive")
	}
	if c.SearchRateLimitRPS <= 0 || c.SearchRateLimitBurst < 1 {
		return fmt.Errorf("SEARCH_RATE_LIMIT_RPS and SEARCH_RATE_LIMIT_BURST must be positive")
	}
	if _, err := middleware.ParseCIDRs(c.TrustedProxyCIDRs); err != nil {
		return fmt.Errorf("TRUSTED_PROXY_CIDRS: %w", err)
	}
	return nil
}

// Postgres returns the connection settings for database.NewPostgresPool.
func (c *Config) Postgres() *database.PostgresConfig {
	return &database.PostgresConfig{
		Host:            c.PostgresHost,
		Port:            c.PostgresPort,
		User:            c.PostgresUser,
		Password:        c.PostgresPass,
		DBName:          c.PostgresDB,
		SSLMode:         c.PostgresSSL,
		MaxConns:        c.DBMaxConns,
		MinConns:        c.DBMinConns,
		MaxConnLifetime: time.Duration(c.DBMaxConnLifetimeMins) * time.Minute,
		MaxConnIdleTime: time.Duration(c.DBMaxConnIdleTimeMins) * time.Minute,
	}
}

package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vrikshavalli/storefront/internal/config"
	"github.com/vrikshavalli/storefront/internal/event"
	handler "github.com/vrikshavalli/storefront/internal/handler/http"
	mongorepo "github.com/vrikshavalli/storefront/internal/repository/mongo"
	pgrepo "github.com/vrikshavalli/storefront/internal/repository/postgres"
	redisrepo "github.com/vrikshavalli/storefront/internal/repository/redis"
	"github.com/vrikshavalli/storefront/internal/search"
	"github.com/vrikshavalli/storefront/internal/service"
	"github.com/vrikshavalli/storefront/internal/source"
	"github.com/vrikshavalli/storefront/internal/wishlist"
	"github.com/vrikshavalli/storefront/migrations"
	"github.com/vrikshavalli/storefront/pkg/database"
	"github.com/vrikshavalli/storefront/pkg/health"
	"github.com/vrikshavalli/storefront/pkg/httpclient"
	pkgkafka "github.com/vrikshavalli/storefront/pkg/kafka"
	"github.com/vrikshavalli/storefront/pkg/middleware"
	"github.com/vrikshavalli/storefront/pkg/tracing"
)

const (
	serviceName    = "storefront"
	serviceVersion = "1.0.0"

	// maxListingProducts bounds the rows loaded for one category listing.
	maxListingProducts = 500
	// maxSuggestions bounds the products returned by one search request.
	maxSuggestions = 20
	// searchIdleTTL is how long a quiet session keeps its search sequence.
	searchIdleTTL = 10 * time.Minute
	// limiterIdleTTL is how long an idle client IP keeps its token bucket.
	limiterIdleTTL = 10 * time.Minute
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	rdb            *redis.Client
	mongoDB        *mongo.Database
	producer       *pkgkafka.Producer
	limiters       []*middleware.RateLimiter
	tracerShutdown tracing.ShutdownFunc
	httpServer     *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
// On failure every resource opened so far is released.
func NewApp(cfg *config.Config, logger *slog.Logger) (_ *App, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a := &App{cfg: cfg, logger: logger}
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	// Tracing.
	a.tracerShutdown, err = tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	database.SetSlowQueryLogging(time.Duration(cfg.SlowQueryThresholdMs)*time.Millisecond, logger)

	// PostgreSQL.
	a.pool, err = database.NewPostgresPool(ctx, cfg.Postgres(), logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err = database.RegisterPoolMetrics(prometheus.DefaultRegisterer, a.pool, serviceName); err != nil {
		logger.Warn("pool metrics not registered", slog.String("error", err.Error()))
		err = nil
	}
	if cfg.RunMigrations {
		if err = database.RunMigrations(ctx, a.pool, migrations.FS, logger); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	// Redis.
	a.rdb, err = database.NewRedisClient(ctx, database.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	// Wishlist storage.
	var storage wishlist.Storage
	switch cfg.WishlistBackend {
	case config.WishlistBackendMongo:
		a.mongoDB, err = database.NewMongoDatabase(ctx, database.MongoConfig{
			URI:      cfg.MongoURI,
			Database: cfg.MongoDB,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("connect to mongo: %w", err)
		}
		storage = mongorepo.NewWishlistStorage(a.mongoDB)
	case config.WishlistBackendMemory:
		storage = wishlist.NewMemoryStorage()
	default:
		storage = redisrepo.NewWishlistStorage(a.rdb, 0)
	}
	logger.Info("wishlist storage initialized", slog.String("backend", cfg.WishlistBackend))

	// Kafka producer.
	var publisher event.Publisher
	if cfg.KafkaEnabled {
		a.producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		publisher = a.producer
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}

	// Build the dependency graph.
	productRepo := pgrepo.NewProductRepository(a.pool)
	enquiryRepo := pgrepo.NewEnquiryRepository(a.pool)
	bagRepo := redisrepo.NewBagRepository(a.rdb, time.Duration(cfg.SessionTTL)*time.Hour)
	eventProducer := event.NewProducer(publisher, logger)

	src, err := newProductSource(cfg, productRepo, logger)
	if err != nil {
		return nil, err
	}

	services := handler.Services{
		Products:  service.NewProductService(productRepo, logger, cfg.ProductListMaxLimit),
		Listing:   service.NewListingService(src, maxListingProducts),
		Wishlist:  service.NewWishlistService(storage, cfg.WishlistStorageKey, eventProducer, logger),
		Bag:       service.NewBagService(bagRepo, eventProducer, logger),
		Search:    service.NewSearchService(src, search.NewCoordinator(searchIdleTTL), maxSuggestions),
		Enquiries: service.NewEnquiryService(enquiryRepo, eventProducer, logger),
	}

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("postgres", func(ctx context.Context) error {
		return a.pool.Ping(ctx)
	})
	healthHandler.RegisterCritical("redis", func(ctx context.Context) error {
		return a.rdb.Ping(ctx).Err()
	})
	if a.mongoDB != nil {
		healthHandler.RegisterCritical("mongo", func(ctx context.Context) error {
			return a.mongoDB.Client().Ping(ctx, nil)
		})
	}
	if a.producer != nil {
		healthHandler.RegisterNonCritical("kafka", a.producer.Ping)
	}

	enquiryLimiter, err := a.newLimiter(cfg.EnquiryRateLimitRPS, cfg.EnquiryRateLimitBurst, cfg.TrustedProxyCIDRs)
	if err != nil {
		return nil, err
	}
	searchLimiter, err := a.newLimiter(cfg.SearchRateLimitRPS, cfg.SearchRateLimitBurst, cfg.TrustedProxyCIDRs)
	if err != nil {
		return nil, err
	}

	// HTTP router.
	routerCfg := handler.RouterConfig{
		CORSOrigins:        cfg.CORSAllowedOrigins,
		EnquiryLimiter:     enquiryLimiter,
		SearchLimiter:      searchLimiter,
		ListingCacheMaxAge: cfg.ListingCacheMaxAge,
		RequestTimeout:     time.Duration(cfg.RequestTimeoutSecs) * time.Second,
	}
	if cfg.AdminJWTSecret != "" {
		routerCfg.AdminToken = middleware.NewHMACValidator([]byte(cfg.AdminJWTSecret))
	} else {
		logger.Warn("ADMIN_JWT_SECRET is not set, product creation is unauthenticated")
	}

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      handler.NewRouter(services, healthHandler, logger, routerCfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return a, nil
}

// newProductSource builds the source behind the listing and search
// endpoints.
func newProductSource(cfg *config.Config, repo *pgrepo.ProductRepository, logger *slog.Logger) (source.Source, error) {
	switch cfg.ProductSource {
	case config.ProductSourceMock:
		logger.Info("using mock product source", slog.Uint64("seed", cfg.MockSeed))
		return source.NewMockSource(cfg.MockSeed), nil
	case config.ProductSourceRemote:
		client := httpclient.NewCircuitBreakerClient(
			httpclient.New(httpclient.DefaultConfig()),
			httpclient.DefaultCircuitBreakerConfig("product-source"),
			logger,
		)
		logger.Info("using remote product source", slog.String("url", cfg.ProductSourceURL))
		return source.NewRemoteSource(cfg.ProductSourceURL, client), nil
	case config.ProductSourcePostgres:
		return source.NewPostgresSource(repo, maxListingProducts), nil
	default:
		return nil, fmt.Errorf("unknown product source %q", cfg.ProductSource)
	}
}

func (a *App) newLimiter(rps float64, burst int, trustedProxies []string) (*middleware.RateLimiter, error) {
	rl := middleware.NewRateLimiter(rps, burst, limiterIdleTTL)
	a.limiters = append(a.limiters, rl)
	if err := rl.TrustProxies(trustedProxies); err != nil {
		return nil, fmt.Errorf("configure rate limiter: %w", err)
	}
	return rl, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		a.close()
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	a.close()

	a.logger.Info("application shutdown complete")
	return nil
}

// close releases every opened resource. Nil members are skipped.
func (a *App) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, rl := range a.limiters {
		rl.Close()
	}
	a.limiters = nil

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
		a.producer = nil
	}

	if a.mongoDB != nil {
		if err := a.mongoDB.Client().Disconnect(ctx); err != nil {
			a.logger.Error("mongo disconnect error", slog.String("error", err.Error()))
		}
		a.mongoDB = nil
	}

	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
		a.rdb = nil
	}

	if a.pool != nil {
		a.pool.Close()
		a.pool = nil
	}

	if a.tracerShutdown != nil {
		if err := a.tracerShutdown(ctx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
		}
		a.tracerShutdown = nil
	}
}

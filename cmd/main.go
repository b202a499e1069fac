package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/crypto/bcrypt"

	_ "github.com/sbilibin2017/users-api/docs"
	"github.com/sbilibin2017/users-api/internal/handlers"
	"github.com/sbilibin2017/users-api/internal/health"
	"github.com/sbilibin2017/users-api/internal/jwt"
	"github.com/sbilibin2017/users-api/internal/logger"
	"github.com/sbilibin2017/users-api/internal/middlewares"
	"github.com/sbilibin2017/users-api/internal/migrations"
	"github.com/sbilibin2017/users-api/internal/ratelimit"
	"github.com/sbilibin2017/users-api/internal/repositories"
	"github.com/sbilibin2017/users-api/internal/sanitizer"
	"github.com/sbilibin2017/users-api/internal/scheduler"
	"github.com/sbilibin2017/users-api/internal/services"
	"github.com/sbilibin2017/users-api/internal/storage"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

const (
	publicPrefix    = "/public"
	maxRequestBody  = 2 << 20
	shutdownTimeout = 10 * time.Second
)

// config holds every setting read from the environment.
type config struct {
	AppHost  string
	AppPort  string
	LogLevel string

	DBDriver       string
	PGHost         string
	PGPort         int
	PGUser         string
	PGPassword     string
	PGDB           string
	PGMaxOpenConns int
	PGMaxIdleConns int
	SQLitePath     string

	JWTSecret    string
	JWTExpSecond int
	BcryptCost   int

	RateLimitStore          string
	RateLimitPoints         int
	RateLimitDurationSecond int

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int

	StorageDriver  string
	UploadDir      string
	S3Region       string
	S3AccessKey    string
	S3SecretKey    string
	S3BaseEndpoint string
	S3Bucket       string

	KafkaBrokers string
	KafkaTopic   string

	GRPCHost string
	GRPCPort string

	DBPingSchedule string
}

// @title users-api
// @version 1.0.0
// @description User accounts with session tokens, profile images and paginated listing
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns the application configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) (int, error) {
		v, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")

	// Database config
	cfg.DBDriver = getEnv("DB_DRIVER", repositories.DriverPostgres)
	cfg.PGHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PGUser = getEnv("POSTGRES_USER", "user")
	cfg.PGPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PGDB = getEnv("POSTGRES_DB", "database")
	if cfg.PGPort, err = getInt("POSTGRES_PORT", "5432"); err != nil {
		return
	}
	if cfg.PGMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return
	}
	if cfg.PGMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return
	}
	cfg.SQLitePath = getEnv("SQLITE_PATH", "users.db")

	// Auth config
	cfg.JWTSecret = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if cfg.JWTExpSecond, err = getInt("JWT_EXP_SECOND", "900"); err != nil {
		return
	}
	if cfg.BcryptCost, err = getInt("BCRYPT_COST", strconv.Itoa(bcrypt.DefaultCost)); err != nil {
		return
	}

	// Rate limiter config
	cfg.RateLimitStore = getEnv("RATE_LIMIT_STORE", "memory")
	if cfg.RateLimitPoints, err = getInt("RATE_LIMIT_POINTS", "30"); err != nil {
		return
	}
	if cfg.RateLimitDurationSecond, err = getInt("RATE_LIMIT_DURATION_SECOND", "60"); err != nil {
		return
	}

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	if cfg.RedisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return
	}
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return
	}
	if cfg.RedisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return
	}

	// Image storage config
	cfg.StorageDriver = getEnv("STORAGE_DRIVER", "local")
	cfg.UploadDir = getEnv("UPLOAD_DIR", "uploads")
	cfg.S3Region = getEnv("S3_REGION", "us-east-1")
	cfg.S3AccessKey = getEnv("S3_ACCESS_KEY", "")
	cfg.S3SecretKey = getEnv("S3_SECRET_KEY", "")
	cfg.S3BaseEndpoint = getEnv("S3_BASE_ENDPOINT", "")
	cfg.S3Bucket = getEnv("S3_BUCKET", "users-api")

	// Kafka config
	cfg.KafkaBrokers = getEnv("KAFKA_BROKERS", "")
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "user-events")

	// gRPC health config
	cfg.GRPCHost = getEnv("GRPC_HOST", "localhost")
	cfg.GRPCPort = getEnv("GRPC_PORT", "50051")

	cfg.DBPingSchedule = getEnv("DB_PING_SCHEDULE", scheduler.DefaultPingSchedule)

	return
}

// databaseDSN returns the connection string for the configured driver.
func databaseDSN(cfg config) string {
	if cfg.DBDriver == repositories.DriverSQLite {
		return repositories.SQLiteDSN(cfg.SQLitePath)
	}
	return repositories.PostgresDSN(cfg.PGUser, cfg.PGPassword, cfg.PGHost, cfg.PGPort, cfg.PGDB)
}

// run initializes the logger, database, optional Redis and Kafka, the gRPC health
// server, the ping scheduler and the HTTP server, and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	// Connect to the database and apply migrations
	db, err := repositories.Connect(ctx, cfg.DBDriver, databaseDSN(cfg), cfg.PGMaxOpenConns, cfg.PGMaxIdleConns)
	if err != nil {
		return fmt.Errorf("database connection error: %w", err)
	}
	defer db.Close()

	if err := migrations.Up(ctx, db.DB, cfg.DBDriver); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}

	router, cleanup, err := buildRouter(ctx, cfg, db)
	if err != nil {
		return err
	}
	defer cleanup()

	// gRPC health and the keep-alive ping
	healthSrv := health.New(fmt.Sprintf("%s:%s", cfg.GRPCHost, cfg.GRPCPort))
	sched := scheduler.New(db, healthSrv)
	if err := sched.AddPing(cfg.DBPingSchedule); err != nil {
		return fmt.Errorf("invalid DB_PING_SCHEDULE %q: %w", cfg.DBPingSchedule, err)
	}
	startupPing(ctx, sched)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 2)

	go func() {
		if err := healthSrv.Run(ctxShutdown); err != nil {
			errChan <- fmt.Errorf("gRPC health server failed: %w", err)
		}
	}()

	schedDone := make(chan struct{})
	go func() {
		sched.Run(ctxShutdown)
		close(schedDone)
	}()

	go func() {
		logger.Log.Infof("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case runErr = <-errChan:
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	select {
	case <-schedDone:
	case <-shutdownCtx.Done():
		logger.Log.Warn("scheduler did not stop before the shutdown deadline")
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return runErr
}

// startupPing checks the database once before serving so an outage is visible before the first cron run.
func startupPing(ctx context.Context, pinger interface{ Ping(context.Context) error }) {
	if err := pinger.Ping(ctx); err != nil {
		logger.Log.Warnw("database unavailable at startup, health reports NOT_SERVING until the next ping", "error", err)
	}
}

// buildRouter wires stores, services and handlers for cfg onto a chi router.
// The returned cleanup releases the Redis client and Kafka writer when they were opened.
func buildRouter(ctx context.Context, cfg config, db *sqlx.DB) (http.Handler, func(), error) {
	var closers []func() error
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Log.Errorw("cleanup failed", "error", err)
			}
		}
	}

	// Rate limiter store
	var store ratelimit.Store
	switch cfg.RateLimitStore {
	case "memory":
		store = ratelimit.NewMemoryStore()
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			PoolSize:     cfg.RedisPoolSize,
			MinIdleConns: cfg.RedisMinIdleConns,
		})
		closers = append(closers, rdb.Close)
		if err := rdb.Ping(ctx).Err(); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("redis connection error: %w", err)
		}
		store = ratelimit.NewRedisStore(rdb, "ratelimit")
	default:
		return nil, nil, fmt.Errorf("unsupported RATE_LIMIT_STORE %q", cfg.RateLimitStore)
	}
	limiter := ratelimit.New(store, cfg.RateLimitPoints, time.Duration(cfg.RateLimitDurationSecond)*time.Second)

	// Profile image storage
	var (
		images    services.ImageStorage
		uploadDir string
	)
	switch cfg.StorageDriver {
	case "local":
		local, err := storage.NewLocalStorage(cfg.UploadDir, publicPrefix)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("upload dir: %w", err)
		}
		images, uploadDir = local, local.Dir()
	case "s3":
		s3Storage, err := storage.NewS3Storage(ctx, storage.S3Config{
			Region:       cfg.S3Region,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
			BaseEndpoint: cfg.S3BaseEndpoint,
			Bucket:       cfg.S3Bucket,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("s3 storage: %w", err)
		}
		images = s3Storage
	default:
		cleanup()
		return nil, nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	// User events
	var writer services.KafkaWriter
	if cfg.KafkaBrokers != "" {
		kw := &kafka.Writer{
			Addr:     kafka.TCP(strings.Split(cfg.KafkaBrokers, ",")...),
			Topic:    cfg.KafkaTopic,
			Balancer: &kafka.Hash{},
			Async:    true,
		}
		closers = append(closers, kw.Close)
		writer = kw
	}
	events := services.NewEventPublisher(writer)

	tokens := jwt.New(
		jwt.WithSecretKey(cfg.JWTSecret),
		jwt.WithExpiration(time.Duration(cfg.JWTExpSecond)*time.Second),
	)

	// Initialize repositories
	txGetter := middlewares.GetTxFromContext
	userReadRepo := repositories.NewUserReadRepository(db, txGetter)
	userWriteRepo := repositories.NewUserWriteRepository(db, txGetter)
	sessionReadRepo := repositories.NewSessionReadRepository(db, txGetter)
	sessionWriteRepo := repositories.NewSessionWriteRepository(db, txGetter)

	// Initialize services
	authService := services.NewAuthService(
		userReadRepo, userWriteRepo,
		sessionReadRepo, sessionWriteRepo,
		tokens, images, events, cfg.BcryptCost,
	)
	userService := services.NewUserService(userReadRepo, userWriteRepo, events)

	return newRouter(db, authService, userService, limiter, uploadDir), cleanup, nil
}

// newRouter sets up routes and middleware. uploadDir is served under /public when not empty.
func newRouter(
	db *sqlx.DB,
	authService *services.AuthService,
	userService *services.UserService,
	limiter middlewares.Consumer,
	uploadDir string,
) http.Handler {
	notFound := handlers.NewNotFoundHandler()
	tx := middlewares.TxMiddleware(db)

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middlewares.LoggingMiddleware(logger.Log))
	r.Use(middlewares.RateLimitMiddleware(limiter))
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(chimiddleware.RequestSize(maxRequestBody))
			r.Use(middlewares.SanitizerMiddleware(sanitizer.New()))

			// Public routes
			r.With(tx).Post("/register", handlers.NewRegisterHandler(authService))
			r.With(tx).Post("/login", handlers.NewLoginHandler(authService))

			// Protected routes
			r.Group(func(r chi.Router) {
				r.Use(middlewares.AuthMiddleware(authService))

				r.Get("/current-user", handlers.NewCurrentUserHandler(authService))
				r.With(tx).Patch("/current-user", handlers.NewUpdateCurrentUserHandler(authService))
				r.With(tx).Delete("/logout", handlers.NewLogoutHandler(authService))

				r.Get("/users", handlers.NewUsersListHandler(userService))
				r.Get("/users/{id}", handlers.NewUserDetailHandler(userService))
				r.With(tx).Patch("/users/{id}", handlers.NewUserUpdateHandler(userService))
				r.With(tx).Delete("/users/{id}", handlers.NewUserDeleteHandler(userService))
			})
		})
	})

	if uploadDir != "" {
		fs := http.StripPrefix(publicPrefix+"/", http.FileServer(http.Dir(uploadDir)))
		r.Get(publicPrefix+"/*", fs.ServeHTTP)
	}

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	return r
}

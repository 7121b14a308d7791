package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/gw-calculations/internal/health"
	"github.com/sbilibin2017/gw-calculations/internal/jwt"
	"github.com/sbilibin2017/gw-calculations/internal/logger"
	"github.com/sbilibin2017/gw-calculations/internal/middlewares"
	"github.com/sbilibin2017/gw-calculations/internal/migrations"
	"github.com/sbilibin2017/gw-calculations/internal/repositories"
	"github.com/sbilibin2017/gw-calculations/internal/router"
	"github.com/sbilibin2017/gw-calculations/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// config holds everything read from the environment at start-up.
type config struct {
	AppHost  string
	AppPort  string
	LogLevel string

	DatabaseURL    string
	PGMaxOpenConns int
	PGMaxIdleConns int

	RedisHost         string // empty disables token revocation
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int

	KafkaBrokers []string // empty disables event publishing
	KafkaTopic   string

	GRPCHealthPort string

	JWTSecretKey string
	JWTAlgorithm string
	JWTExpire    time.Duration
}

// @title gw-calculations API
// @version 1.0.0
// @description User accounts and stored arithmetic calculations
// @host localhost:8080
// @BasePath /
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
	fmt.Printf("Starting service Version: %s, Commit: %s, Build: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns
// the application, database, Redis, Kafka, health and JWT configuration.
// Variables already present in the environment win over the file.
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

	// PostgreSQL config
	cfg.DatabaseURL = getEnv("DATABASE_URL", "")
	if cfg.DatabaseURL == "" {
		var pgPort int
		if pgPort, err = getInt("POSTGRES_PORT", "5432"); err != nil {
			return
		}
		dsn := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(getEnv("POSTGRES_USER", "user"), getEnv("POSTGRES_PASSWORD", "password")),
			Host:     net.JoinHostPort(getEnv("POSTGRES_HOST", "localhost"), strconv.Itoa(pgPort)),
			Path:     getEnv("POSTGRES_DB", "database"),
			RawQuery: "sslmode=disable",
		}
		cfg.DatabaseURL = dsn.String()
	}
	if cfg.PGMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return
	}
	if cfg.PGMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return
	}

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "")
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

	// Kafka config
	for _, broker := range strings.Split(getEnv("KAFKA_BROKERS", ""), ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			cfg.KafkaBrokers = append(cfg.KafkaBrokers, broker)
		}
	}
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "calculations")

	// gRPC health config
	cfg.GRPCHealthPort = getEnv("GRPC_HEALTH_PORT", "50051")

	// JWT config
	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	cfg.JWTAlgorithm = getEnv("JWT_ALGORITHM", "HS256")
	var expMinutes int
	if expMinutes, err = getInt("JWT_EXPIRE_MINUTES", "30"); err != nil {
		return
	}
	if expMinutes <= 0 {
		err = fmt.Errorf("JWT_EXPIRE_MINUTES must be positive, got %d", expMinutes)
		return
	}
	cfg.JWTExpire = time.Duration(expMinutes) * time.Minute

	return
}

// run initializes the logger, database, Redis, Kafka, health server and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
// kafkaBatchTimeout bounds how long a single event waits for a batch to fill.
const kafkaBatchTimeout = 10 * time.Millisecond

// newKafkaWriter builds the calculation event writer. Events are written one
// at a time, so the batch timeout is the per-publish latency floor.
func newKafkaWriter(cfg config) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           kafkaBatchTimeout,
		WriteTimeout:           5 * time.Second,
		AllowAutoTopicCreation: true,
	}
}

func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	log := logger.Log
	defer log.Sync()
	log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to PostgreSQL
	db, err := sqlx.ConnectContext(ctx, "pgx", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)

	if err := migrations.Run(ctx, db.DB); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	log.Info("Database schema is up to date")

	// Connect to Redis
	var revocations services.RevocationStore
	if cfg.RedisHost != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:         net.JoinHostPort(cfg.RedisHost, strconv.Itoa(cfg.RedisPort)),
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			PoolSize:     cfg.RedisPoolSize,
			MinIdleConns: cfg.RedisMinIdleConns,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("Redis connection error: %w", err)
		}
		defer rdb.Close()
		revocations = repositories.NewTokenRevocationRepository(rdb)
	} else {
		log.Warn("REDIS_HOST is not set, logout will not revoke tokens")
	}

	// Kafka writer
	var kafkaWriter services.KafkaWriter
	if len(cfg.KafkaBrokers) > 0 {
		w := newKafkaWriter(cfg)
		defer w.Close()
		kafkaWriter = w
	} else {
		log.Warn("KAFKA_BROKERS is not set, calculation events will not be published")
	}

	// Initialize JWT service
	tokens, err := jwt.New(
		jwt.WithSecretKey(cfg.JWTSecretKey),
		jwt.WithAlgorithm(cfg.JWTAlgorithm),
		jwt.WithExpiration(cfg.JWTExpire),
	)
	if err != nil {
		return err
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, middlewares.GetTxFromContext)
	calculationRepo := repositories.NewCalculationRepository(db, middlewares.GetTxFromContext)

	// Initialize services
	authService := services.NewAuthService(userRepo, userRepo, tokens)
	gate := services.NewGate(tokens, userRepo, revocations)
	calculationService := services.NewCalculationService(calculationRepo, kafkaWriter)

	// Setup router
	handler := router.New(router.Config{
		Log:          log,
		Tx:           middlewares.TxMiddleware(db),
		Tokener:      tokens,
		Auth:         authService,
		Gate:         gate,
		Calculations: calculationService,
		SwaggerURL:   fmt.Sprintf("http://%s/swagger/doc.json", net.JoinHostPort(cfg.AppHost, cfg.AppPort)),
	})

	srv := &http.Server{
		Addr:    net.JoinHostPort(cfg.AppHost, cfg.AppPort),
		Handler: handler,
	}

	// gRPC health server
	healthLis, err := net.Listen("tcp", net.JoinHostPort(cfg.AppHost, cfg.GRPCHealthPort))
	if err != nil {
		return fmt.Errorf("failed to listen for health checks: %w", err)
	}
	healthSrv := health.NewServer()

	// Graceful shutdown
	errChan := make(chan error, 2)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		log.Infof("gRPC health server listening on %s", healthLis.Addr())
		if err := healthSrv.Serve(healthLis); err != nil {
			errChan <- fmt.Errorf("health server failed: %w", err)
		}
	}()

	go func() {
		log.Infof("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()
	healthSrv.SetServing(true)

	var serveErr error
	select {
	case <-ctxShutdown.Done():
		log.Info("Shutdown signal received, stopping servers...")
	case serveErr = <-errChan:
		log.Errorw("server stopped unexpectedly", "error", serveErr)
	}

	healthSrv.SetServing(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	}
	healthSrv.Stop()

	log.Info("Servers stopped gracefully")
	return serveErr
}

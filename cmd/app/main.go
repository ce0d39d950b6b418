package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"deliveryno/cmd"
	httpin "deliveryno/internal/adapters/in/http"
	"deliveryno/internal/adapters/out/postgres"
	redislock "deliveryno/internal/adapters/out/redis"
	"deliveryno/internal/adapters/out/telegram"
	"deliveryno/internal/core/ports"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustOpenDatabase(configs)

	locker, closeRedis := mustCreateLocker(configs)
	defer closeRedis()

	app := cmd.NewCompositionRoot(configs, gormDB, locker, createNotifier(configs, logger), logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.BootstrapAdmin(ctx); err != nil {
		log.Fatalf("bootstrap admin: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, &app, configs.HTTPPort, logger)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config := cmd.Config{
		HTTPPort:            envOr("HTTP_PORT", "8080"),
		DBHost:              os.Getenv("DB_HOST"),
		DBPort:              envOr("DB_PORT", "5432"),
		DBUser:              os.Getenv("DB_USER"),
		DBPassword:          os.Getenv("DB_PASSWORD"),
		DBName:              os.Getenv("DB_NAME"),
		DBSslMode:           envOr("DB_SSLMODE", "disable"),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		RedisDB:             envInt("REDIS_DB", 0),
		LockTTL:             envDuration("LOCK_TTL", redislock.DefaultTTL),
		TelegramToken:       os.Getenv("TELEGRAM_TOKEN"),
		TelegramAdminChatID: int64(envInt("TELEGRAM_ADMIN_CHAT_ID", 0)),
		AdminID:             os.Getenv("ADMIN_ID"),
		AdminUsername:       envOr("ADMIN_USERNAME", "admin"),
		AdminEmail:          envOr("ADMIN_EMAIL", "admin@localhost"),
		RelayBatchSize:      envInt("RELAY_BATCH_SIZE", 0),
	}
	return config
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("%s: %v", key, err)
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("%s: %v", key, err)
	}
	return d
}

func mustOpenDatabase(c cmd.Config) *gorm.DB {
	if err := postgres.EnsureDatabase(c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode); err != nil {
		log.Fatalf("ensure database: %v", err)
	}

	dsn := postgres.MakeConnectionString(c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("migrate database: %v", err)
	}
	return gormDB
}

// mustCreateLocker returns a nil locker when REDIS_ADDR is unset.
func mustCreateLocker(c cmd.Config) (ports.KeyLocker, func()) {
	if c.RedisAddr == "" {
		return nil, func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("connect redis: %v", err)
	}

	locker, err := redislock.NewLocker(client, c.LockTTL)
	if err != nil {
		log.Fatalf("create locker: %v", err)
	}
	return locker, func() { _ = client.Close() }
}

func createNotifier(c cmd.Config, logger *slog.Logger) ports.Notifier {
	if c.TelegramToken == "" {
		return telegram.NewLogNotifier(logger)
	}
	notifier, err := telegram.NewBotNotifier(c.TelegramToken, c.TelegramAdminChatID)
	if err != nil {
		log.Fatalf("telegram: %v", err)
	}
	return notifier
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, logger *slog.Logger) {
	doc, err := httpin.LoadOpenAPI(ctx)
	if err != nil {
		log.Fatalf("openapi: %v", err)
	}

	server := httpin.NewServer(app.CreateHTTPHandlers(), logger)
	e, err := httpin.NewEcho(server, doc, app.CreateUserLookup())
	if err != nil {
		log.Fatalf("http: %v", err)
	}

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
}

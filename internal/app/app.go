package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/akorbut/storefront/internal/config"
	"github.com/akorbut/storefront/internal/redisx"
	"github.com/akorbut/storefront/internal/s3x"
)

type App struct {
	Config *config.Config
	Logger *slog.Logger
	DB     *sql.DB
	Cache  *redis.Client
	Store  s3x.ObjectStore
}

// NewApp opens the database and the optional redis and S3 clients. Redis and
// S3 are skipped when their config entries are empty.
func NewApp(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	dbPassword := os.Getenv("DB_PASSWORD")
	if dbPassword == "" {
		return nil, fmt.Errorf("DB_PASSWORD environment variable is not set")
	}
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.Database.User,
		dbPassword,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	app := &App{
		Config: cfg,
		Logger: log,
		DB:     db,
	}

	if cfg.Redis.Addr != "" {
		app.Cache = redisx.New(cfg.Redis.Addr)
		if err := redisx.Ping(ctx, app.Cache); err != nil {
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		redisx.TTLProduct = cfg.Redis.CacheTTL
	}

	if cfg.S3.Bucket != "" {
		store, err := s3x.NewClient(ctx, cfg.S3.Bucket, cfg.S3.Region)
		if err != nil {
			return nil, fmt.Errorf("failed to create s3 client: %w", err)
		}
		app.Store = store
	}

	return app, nil
}

func (a *App) Close() error {
	if a.Cache != nil {
		_ = a.Cache.Close()
	}
	return a.DB.Close()
}

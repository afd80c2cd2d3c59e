package app

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/persx/persx-sub000/internal/data/db"
	"github.com/persx/persx-sub000/internal/http"
	"github.com/persx/persx-sub000/internal/observability"
	"github.com/persx/persx-sub000/internal/platform/logger"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Server   *http.Server
	Cfg      Config
	Repos    Repos
	Services Services

	dbService    *db.Service
	clients      Clients
	otelShutdown func(context.Context) error
}

// New builds the full serving graph: logger, database, clients, services
// and the HTTP server. Schema migration runs as part of start-up.
func New(cfg Config) (*App, error) {
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	shutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		Enabled:     cfg.Otel.Enabled,
		ServiceName: cfg.Otel.ServiceName,
		Environment: cfg.Env,
		Version:     Version,
		Endpoint:    cfg.Otel.Endpoint,
		Headers:     cfg.Otel.Headers,
		Insecure:    cfg.Otel.Insecure,
		SampleRatio: cfg.Otel.SampleRatio,
	})

	dbService, err := openDatabase(log, cfg)
	if err != nil {
		_ = shutdown(context.Background())
		log.Sync()
		return nil, err
	}
	theDB := dbService.DB()
	if err := Migrate(theDB); err != nil {
		_ = dbService.Close()
		_ = shutdown(context.Background())
		log.Sync()
		return nil, err
	}

	clients, err := wireClients(log, cfg)
	if err != nil {
		_ = dbService.Close()
		_ = shutdown(context.Background())
		log.Sync()
		return nil, err
	}

	reposet := wireRepos(theDB, log)
	serviceset, err := wireServices(theDB, log, cfg, reposet, clients)
	if err != nil {
		clients.Close(context.Background())
		_ = dbService.Close()
		_ = shutdown(context.Background())
		log.Sync()
		return nil, err
	}
	middleware := wireMiddleware(log, serviceset)
	handlers := wireHandlers(log, theDB, cfg, serviceset)
	server := wireServer(log, cfg, handlers, middleware)

	return &App{
		Log:          log,
		DB:           theDB,
		Server:       server,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		dbService:    dbService,
		clients:      clients,
		otelShutdown: shutdown,
	}, nil
}

func openDatabase(log *logger.Logger, cfg Config) (*db.Service, error) {
	log.Info("Opening database...", "driver", cfg.Database.Driver)
	s, err := db.NewService(log, db.Config{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		SlowQuery:    cfg.Database.SlowQuery,
	})
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	return s, nil
}

// Migrate creates or updates every table plus postgres-only indexes.
func Migrate(theDB *gorm.DB) error {
	if err := db.AutoMigrateAll(theDB); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := db.EnsureContentIndexes(theDB); err != nil {
		return err
	}
	return nil
}

// Run serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	addr := a.Cfg.Addr
	if addr == "" {
		addr = ":8080"
	}
	a.Log.Info("Starting server...", "addr", addr, "env", a.Cfg.Env)
	return a.Server.Run(ctx, addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a.clients.Close(ctx)
	if a.dbService != nil {
		if err := a.dbService.Close(); err != nil {
			a.Log.Warn("database close failed", "error", err)
		}
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	a.Log.Sync()
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"songcalendar/config"
	"songcalendar/internal/api"
	"songcalendar/internal/audio"
	"songcalendar/internal/auth"
	"songcalendar/internal/lib/logger/utils"
	"songcalendar/internal/migrations"
	"songcalendar/internal/service"
	"songcalendar/internal/storage"
	"songcalendar/internal/storage/postgres"
	"songcalendar/internal/storage/sqlite"
)

const shutdownTimeout = 10 * time.Second

type stores struct {
	songs storage.SongStorage
	users storage.UserStorage
	close func()
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			defer utils.Logger.Sync()
			return serve(c.Context, cfg)
		},
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "apply pending Postgres migrations and exit",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			defer utils.Logger.Sync()
			if cfg.StorageDriver != config.DriverPostgres {
				return fmt.Errorf("migrate needs STORAGE_DRIVER=%s, got %s", config.DriverPostgres, cfg.StorageDriver)
			}
			if err := migrations.Up(cfg.DBURL); err != nil {
				return err
			}
			utils.Logger.Info("Database migrations completed successfully")
			return nil
		},
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("env-file"))
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}
	if err := utils.InitLogger(cfg.LogEnv); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, nil
}

// serve starts listening right away behind a Gate and swaps in the router
// once storage is usable or fails after cfg.InitTimeout.
func serve(ctx context.Context, cfg *config.Config) error {
	utils.Logger.Info("Starting Song Calendar API", zap.String("storage", cfg.StorageDriver))
	if cfg.UsesDefaultSecret() {
		utils.Logger.Warn("SESSION_SECRET is not set, using the built-in default")
	}

	gate := &api.Gate{}
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           gate,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		utils.Logger.Info("Server starting", zap.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	initCtx, cancel := context.WithTimeout(ctx, cfg.InitTimeout)
	st, err := initialize(initCtx, cfg, gate)
	cancel()
	if err != nil {
		utils.Logger.Error("Initialization failed", zap.Error(err))
		shutdown(server)
		return err
	}
	defer st.close()

	quit := make(chan os.Signal, 2)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	select {
	case err := <-serverErr:
		return fmt.Errorf("failed to start server: %w", err)
	case sig := <-quit:
		utils.Logger.Info("Server shutting down", zap.String("signal", sig.String()))
	case <-ctx.Done():
	}

	shutdown(server)
	return nil
}

func initialize(ctx context.Context, cfg *config.Config, gate *api.Gate) (*stores, error) {
	st, err := openStores(ctx, cfg)
	if err != nil {
		return nil, err
	}

	authService := service.NewAuthService(st.users)
	if _, err := authService.SeedAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		st.close()
		return nil, err
	}

	diskStore, err := audio.NewDiskStore(cfg.UploadDir, cfg.UploadURLPrefix)
	if err != nil {
		st.close()
		return nil, err
	}

	gate.Ready(api.NewRouter(api.Dependencies{
		Songs:           service.NewSongService(st.songs),
		Auth:            authService,
		Sessions:        auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL),
		Audio:           diskStore,
		UploadDir:       diskStore.Dir(),
		UploadURLPrefix: cfg.UploadURLPrefix,
		MaxUploadSize:   cfg.MaxUploadSize,
	}))
	utils.Logger.Info("Service ready")
	return st, nil
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.StorageDriver == config.DriverSQLite {
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		utils.Logger.Info("SQLite database opened", zap.String("path", cfg.SQLitePath))
		return &stores{songs: store, users: store, close: func() { store.Close() }}, nil
	}

	pool, err := connectWithRetry(ctx, cfg.DBURL)
	if err != nil {
		return nil, err
	}
	utils.Logger.Info("Database connected")

	if cfg.MigrationsEnabled {
		if err := migrations.Up(cfg.DBURL); err != nil {
			pool.Close()
			return nil, err
		}
		utils.Logger.Info("Database migrations completed successfully")
	}

	pg := postgres.NewPgStorage(pool)
	return &stores{songs: pg, users: pg, close: pool.Close}, nil
}

// connectWithRetry keeps trying until the database answers or ctx expires.
func connectWithRetry(ctx context.Context, dbURL string) (*pgxpool.Pool, error) {
	for {
		pool, err := postgres.Connect(ctx, dbURL)
		if err == nil {
			return pool, nil
		}
		utils.Logger.Warn("Database not reachable yet", zap.Error(err))

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("database connection failed: %w", err)
		case <-time.After(time.Second):
		}
	}
}

func shutdown(server *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		utils.Logger.Warn("Server shutdown failed", zap.Error(err))
	}
}

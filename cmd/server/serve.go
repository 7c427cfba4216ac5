package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/scriblyn/backend/internal/middleware"
	"github.com/anonto42/scriblyn/backend/internal/repositories"
	"github.com/anonto42/scriblyn/backend/internal/router"
	"github.com/anonto42/scriblyn/backend/pkg/config"
	"github.com/anonto42/scriblyn/backend/pkg/firebase"
	"github.com/anonto42/scriblyn/backend/pkg/log"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			log.InitLogger(cfg.Env, cfg.LogLevel)
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	opts := router.Options{
		JWTSecret:      cfg.JWTSecret,
		JWTTTL:         cfg.JWTTTL,
		RequestTimeout: cfg.RequestTimeout,
		Metrics:        middleware.NewMetrics(),
	}
	if cfg.IsProduction() && cfg.FrontendURL != "" {
		opts.AllowOrigins = []string{cfg.FrontendURL}
	}
	if cfg.FirebaseCredentialsPath != "" {
		app, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Log.WithError(err).Warn("Firebase unavailable, federated login disabled")
		} else {
			opts.FirebaseAuth = app.AuthClient
		}
	}

	e := router.New(store, opts)

	var metricsServer *http.Server
	if cfg.MetricsPort != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", opts.Metrics.Handler())
		metricsServer = &http.Server{Addr: ":" + cfg.MetricsPort, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			log.Log.WithField("port", cfg.MetricsPort).Info("Metrics listener started")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Log.WithError(err).Error("Metrics listener stopped")
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		log.Log.WithFields(logrus.Fields{"port": cfg.Port, "env": cfg.Env, "store": cfg.Store}).Info("Server started")
		errCh <- e.Start(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "http server")
		}
		return nil
	case <-ctx.Done():
	}

	log.Log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			log.Log.WithError(err).Warn("Metrics listener shutdown failed")
		}
	}
	if err := e.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "graceful shutdown")
	}
	log.Log.Info("Server stopped")
	return nil
}

// openStore selects the repository backend. The returned func releases the
// underlying connections.
func openStore(ctx context.Context, cfg *config.Config) (*repositories.Store, func(), error) {
	if cfg.Store == config.StoreMemory {
		log.Log.Warn("Using in-memory store, data is lost on restart")
		return repositories.NewMemoryStore(), func() {}, nil
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := migrate(ctx, db); err != nil {
		db.CloseDB()
		return nil, nil, err
	}

	store := repositories.NewMongoStore(db.Database)
	if db.Postgres != nil {
		store.Users = repositories.NewPostgresUserRepository(db.Postgres)
		log.Log.Info("Users are stored in PostgreSQL")
	}
	return store, db.CloseDB, nil
}

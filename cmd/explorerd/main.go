// Command explorerd runs the exploration engine HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/opencurricula/explorer/internal/api"
	"github.com/opencurricula/explorer/internal/config"
	"github.com/opencurricula/explorer/internal/db"
	"github.com/opencurricula/explorer/internal/db/migrations"
	"github.com/opencurricula/explorer/internal/dbpool"
	"github.com/opencurricula/explorer/internal/explore"
	"github.com/opencurricula/explorer/internal/store"
)

// version is set at build time via -ldflags.
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := run(log); err != nil {
		log.WithError(err).Fatal("explorerd exited")
	}
}

func run(log *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value())
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		return err
	}

	base := store.Base{Pool: pool, Log: log}
	graph := store.NewGraphStore(base)
	attestations := store.NewAttestationStore(base)

	engine := explore.NewEngine(ctx, graph, attestations, explore.SystemClock{}, explore.Config{
		Estimator: explore.EstimatorConfig{
			PerNodeCostMs:     cfg.PerNodeCostMs,
			CreditDivisor:     cfg.CreditDivisor,
			MaxEstimatedNodes: cfg.MaxEstimatedNodes,
			SampleSize:        explore.DefaultEstimatorConfig.SampleSize,
		},
		CostPreviewThreshold: cfg.CostPreviewThreshold,
	}, log)

	handler := api.NewRouter(ctx, &api.RouterDeps{
		Log:          log,
		Pool:         pool,
		Engine:       engine,
		CallerLookup: &base,
		CORSOrigins:  cfg.CORSOrigins,
		Version:      version,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.WithFields(logrus.Fields{
			"addr":    srv.Addr,
			"version": version,
		}).Info("explorerd listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("explorerd stopped")

	return nil
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GoSim-25-26J-441/issue-tracker/config"
	httpapi "github.com/GoSim-25-26J-441/issue-tracker/internal/api/http"
	"github.com/GoSim-25-26J-441/issue-tracker/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/issue-tracker/internal/bootstrap"
	"github.com/GoSim-25-26J-441/issue-tracker/internal/cronjob"
	"github.com/GoSim-25-26J-441/issue-tracker/internal/issues/repository"
	"github.com/GoSim-25-26J-441/issue-tracker/internal/issues/service"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := bootstrap.OpenStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer stores.Close()

	issues := service.NewIssueService(stores.Issues)
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	deps := bootstrap.RouterDeps{
		ServiceName:    cfg.App.ServiceName,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Issues:         issues,
		Limiter:        limiter,
	}
	if stores.DB != nil {
		deps.DB = stores.DB
	}
	if cached, ok := stores.Issues.(*repository.CachedStore); ok {
		deps.Cache = httpapi.PingFunc(cached.Ping)
	}
	router := bootstrap.BuildRouter(deps)

	scheduler, err := cronjob.NewScheduler(cfg.Jobs.StatsSchedule, issues, limiter)
	if err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		log.Printf("listening on :%s (env=%s, version=%s)", cfg.Server.Port, cfg.App.Environment, cfg.App.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

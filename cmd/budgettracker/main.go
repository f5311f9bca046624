package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"budgettracker/internal/amqp"
	"budgettracker/internal/backend"
	"budgettracker/internal/cli"
	apphttp "budgettracker/internal/http"
	applog "budgettracker/internal/log"
	"budgettracker/internal/services"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	cli.LoadEnvFile()

	logger := cli.SetupLogger(applog.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	factory := backend.NewFactory(logger.Logger)

	storeResult, err := factory.CreateStore(cfg)
	if err != nil {
		logger.Error("Failed to initialize profile store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := storeResult.Cleanup(); err != nil {
			logger.Error("Store cleanup failed", "error", err)
		}
	}()

	rateSource, err := factory.CreateRateSource(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize rate source", "error", err)
		os.Exit(1)
	}

	// AMQP is optional: without a URL commits simply skip the event.
	var publisher services.CommitPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		publisher = amqpClient
		logger.Info("AMQP commit events enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	session := services.NewSession()
	budgetSvc := services.NewBudgetService(storeResult.Store, rateSource, publisher)
	profileSvc := services.NewProfileService(storeResult.Store, session)

	srv := apphttp.NewServer(":"+cfg.Port, budgetSvc, profileSvc, session)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting budgettracker server", "port", cfg.Port,
			"profile_backend", cfg.ProfileBackend, "rates_backend", cfg.RatesBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kislikjeka/moonbank/internal/bank"
	"github.com/kislikjeka/moonbank/internal/registry"
	"github.com/kislikjeka/moonbank/pkg/config"
	"github.com/kislikjeka/moonbank/pkg/logger"
)

func main() {
	// Create context that listens for termination signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewDefault(cfg.Env)
	log.Info("Starting moonbank core",
		"env", cfg.Env,
		"stale_handler_timeout", cfg.StaleHandlerTimeout,
		"stale_check_interval", cfg.StaleCheckInterval,
	)

	// Initialize the account registry and the bank service
	reg := registry.New()
	svc := bank.NewService(reg, bank.Config{
		StaleHandlerTimeout: cfg.StaleHandlerTimeout,
		StaleCheckInterval:  cfg.StaleCheckInterval,
	}, log)
	log.Info("Bank service initialized")

	// The core is transport-less: embedders drive it through the bank.Service
	// API. The process stays up so supervised deployments have a lifecycle to
	// attach to.
	<-ctx.Done()
	log.Info("Shutdown signal received")

	svc.Close()
	log.Info("Bank service stopped gracefully")
}

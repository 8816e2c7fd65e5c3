// Package main provides the entry point for the rent estimator server.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/loyerparis/loyer-server/internal/config"
	"github.com/loyerparis/loyer-server/internal/di"
	"github.com/loyerparis/loyer-server/internal/logger"
)

func main() {
	var opts config.LoadOptions
	flag.StringVar(&opts.ConfigPath, "config", "", "path to a YAML config file (defaults to $CONFIG_PATH or ./config.yaml)")
	flag.StringVar(&opts.EnvFile, "env-file", "", "path to a dotenv file (defaults to ./.env)")
	flag.Parse()

	// Create DI container
	injector := di.NewContainer(opts)

	// Bootstrap all services. A missing or incompatible artifact stops here.
	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap server: %v\n", err)
		_ = injector.Shutdown()
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	// The DI container stops the HTTP server first, then the cache and limiter.
	if report := injector.Shutdown(); !report.Succeed {
		log.Error("Shutdown error", "error", report)
	}

	log.Info("Server stopped")
}

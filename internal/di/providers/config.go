// Package providers contains dependency injection providers for the rent
// estimator server.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/loyerparis/loyer-server/internal/config"
	"github.com/loyerparis/loyer-server/internal/logger"
)

// ProvideConfig provides the application configuration. The load options
// are registered as a value by the container.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	opts := do.MustInvoke[config.LoadOptions](i)
	return config.Load(opts)
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Format:      cfg.Log.Format,
		Level:       logger.ParseLevel(cfg.Log.Level),
		AddSource:   cfg.Environment == "development",
		Environment: cfg.Environment,
	})

	log.Info("Starting Loyer server",
		"environment", cfg.Environment,
		"log_level", cfg.Log.Level,
		"encoder_path", cfg.Model.EncoderPath,
		"model_path", cfg.Model.BoosterPath,
	)

	return log, nil
}

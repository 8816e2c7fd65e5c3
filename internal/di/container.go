// Package di provides dependency injection configuration for the rent
// estimator server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/loyerparis/loyer-server/internal/config"
	"github.com/loyerparis/loyer-server/internal/di/providers"
	"github.com/loyerparis/loyer-server/internal/encoding"
	"github.com/loyerparis/loyer-server/internal/logger"
	"github.com/loyerparis/loyer-server/internal/lookup"
	"github.com/loyerparis/loyer-server/internal/model"
	"github.com/loyerparis/loyer-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer(opts config.LoadOptions) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.ProvideValue(injector, opts)
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Artifacts
	do.Provide(injector, providers.ProvideTranslator)
	do.Provide(injector, providers.ProvideVectorizer)
	do.Provide(injector, providers.ProvideBooster)

	// Request plumbing
	do.Provide(injector, providers.ProvideCache)
	do.Provide(injector, providers.ProvideRateLimiter)

	// Business services
	do.Provide(injector, providers.ProvideEstimateService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services. Artifacts are loaded eagerly so that a
// missing or incompatible model fails startup instead of the first request.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)

	if _, err := do.Invoke[*lookup.Translator](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*encoding.Vectorizer](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*model.Booster](injector); err != nil {
		return err
	}

	if _, err := do.Invoke[*providers.CacheHandle](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*providers.RateLimiterHandle](injector)
	_ = do.MustInvoke[*service.EstimateService](injector)

	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return err
	}

	return nil
}

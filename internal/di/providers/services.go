package providers

import (
	"github.com/samber/do/v2"
	"golang.org/x/text/language"

	"github.com/loyerparis/loyer-server/internal/config"
	"github.com/loyerparis/loyer-server/internal/encoding"
	"github.com/loyerparis/loyer-server/internal/logger"
	"github.com/loyerparis/loyer-server/internal/lookup"
	"github.com/loyerparis/loyer-server/internal/model"
	"github.com/loyerparis/loyer-server/internal/service"
)

// ProvideEstimateService provides the estimate service.
func ProvideEstimateService(i do.Injector) (*service.EstimateService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	translator := do.MustInvoke[*lookup.Translator](i)
	encoder := do.MustInvoke[*encoding.Vectorizer](i)
	booster := do.MustInvoke[*model.Booster](i)
	cacheHandle := do.MustInvoke[*CacheHandle](i)

	// Locale was validated when the config loaded.
	locale := language.Make(cfg.App.Locale)

	var predictionCache service.PredictionCache
	if cacheHandle.Cache != nil {
		predictionCache = cacheHandle.Cache
	}

	return service.NewEstimateService(translator, encoder, booster, predictionCache, locale, log.Logger), nil
}

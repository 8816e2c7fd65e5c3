package providers

import (
	"github.com/samber/do/v2"

	"github.com/loyerparis/loyer-server/internal/config"
	"github.com/loyerparis/loyer-server/internal/encoding"
	"github.com/loyerparis/loyer-server/internal/logger"
	"github.com/loyerparis/loyer-server/internal/lookup"
	"github.com/loyerparis/loyer-server/internal/metrics"
	"github.com/loyerparis/loyer-server/internal/model"
	"github.com/loyerparis/loyer-server/internal/service"
)

// ProvideTranslator provides the label translator built from the static tables.
func ProvideTranslator(i do.Injector) (*lookup.Translator, error) {
	log := do.MustInvoke[*logger.Logger](i)

	tr, err := lookup.New()
	if err != nil {
		return nil, err
	}

	log.Info("Lookup tables loaded", "neighborhoods", len(tr.Neighborhoods()))
	return tr, nil
}

// ProvideVectorizer provides the feature encoder loaded from its artifact.
func ProvideVectorizer(i do.Injector) (*encoding.Vectorizer, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	v, err := encoding.LoadVectorizer(cfg.Model.EncoderPath)
	if err != nil {
		return nil, err
	}

	log.Info("Encoder loaded", "path", cfg.Model.EncoderPath, "columns", v.Width())
	return v, nil
}

// ProvideBooster provides the rent model loaded from its artifact. The model
// is checked against the encoder before it is handed out.
func ProvideBooster(i do.Injector) (*model.Booster, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	encoder := do.MustInvoke[*encoding.Vectorizer](i)

	b, err := model.LoadBooster(cfg.Model.BoosterPath, model.Options{ZeroAsMissing: cfg.Model.ZeroAsMissing})
	if err != nil {
		return nil, err
	}

	if err := service.VerifyArtifacts(encoder, b); err != nil {
		return nil, err
	}

	metrics.SetModelInfo(b.Objective(), b.NumTrees(), b.NumFeature())

	log.Info("Model loaded",
		"path", cfg.Model.BoosterPath,
		"objective", b.Objective(),
		"trees", b.NumTrees(),
		"features", b.NumFeature(),
		"base_score", b.BaseScore(),
	)
	return b, nil
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"golang.org/x/text/language"

	"github.com/loyerparis/loyer-server/internal/cache"
	"github.com/loyerparis/loyer-server/internal/domain"
	domainerrors "github.com/loyerparis/loyer-server/internal/errors"
	"github.com/loyerparis/loyer-server/internal/id"
	"github.com/loyerparis/loyer-server/internal/metrics"
	"github.com/loyerparis/loyer-server/internal/validation"
)

// Translator resolves front-end labels into a feature record.
type Translator interface {
	Translate(req domain.EstimateRequest) (domain.FeatureRecord, error)
	Neighborhoods() []string
	Periods() []string
	RentalTypes() []string
}

// Encoder turns a feature record into the model's input vector.
type Encoder interface {
	Encode(rec domain.FeatureRecord) ([]float64, error)
}

// Predictor evaluates the regression model on one encoded row.
type Predictor interface {
	Predict(ctx context.Context, features []float64) (float64, error)
}

// PredictionCache stores raw predictions keyed by request.
type PredictionCache interface {
	Get(ctx context.Context, req domain.EstimateRequest) (cache.Entry, bool, error)
	Set(ctx context.Context, req domain.EstimateRequest, prediction float64) (bool, error)
}

// EstimateService runs the estimate pipeline: quantity checks, label
// translation, encoding, prediction and rounding. It holds no mutable state
// apart from the optional cache.
type EstimateService struct {
	translator Translator
	encoder    Encoder
	predictor  Predictor
	cache      PredictionCache
	locale     language.Tag
	logger     *slog.Logger
	now        func() time.Time
}

// NewEstimateService creates an estimate service. cache may be nil to
// disable caching.
func NewEstimateService(translator Translator, encoder Encoder, predictor Predictor, cache PredictionCache, locale language.Tag, logger *slog.Logger) *EstimateService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &EstimateService{
		translator: translator,
		encoder:    encoder,
		predictor:  predictor,
		cache:      cache,
		locale:     locale,
		logger:     logger,
		now:        time.Now,
	}
}

var paramsValidator = validation.New()

// ParseEstimateParams checks that every parameter is present and parses the
// quantities. An absent or unparsable parameter is a MissingParameter error;
// a room count that is a number but not a whole one is an InvalidQuantity.
func ParseEstimateParams(raw domain.EstimateParams) (domain.EstimateRequest, error) {
	if err := paramsValidator.Validate(raw); err != nil {
		return domain.EstimateRequest{}, err
	}

	invalid := make(map[string]string)

	rooms, err := strconv.Atoi(raw.MainRooms)
	if err != nil {
		if f, ferr := strconv.ParseFloat(raw.MainRooms, 64); ferr == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return domain.EstimateRequest{}, domainerrors.InvalidQuantityf("main_rooms must be a whole number, got %s", raw.MainRooms).
				WithDetails(map[string]string{"main_rooms": "must be a whole number"})
		}
		invalid["main_rooms"] = "must be an integer"
	}

	area, err := strconv.ParseFloat(raw.Area, 64)
	if err != nil {
		invalid["area"] = "must be a number"
	}

	if len(invalid) > 0 {
		return domain.EstimateRequest{}, domainerrors.MissingParameterWithDetails("invalid or missing parameter", invalid)
	}

	return domain.EstimateRequest{
		Neighborhood: raw.Neighborhood,
		Period:       raw.Period,
		RentalType:   raw.Type,
		MainRooms:    rooms,
		Area:         area,
	}, nil
}

// Estimate predicts the monthly rent for a parsed request.
func (s *EstimateService) Estimate(ctx context.Context, req domain.EstimateRequest) (est *domain.Estimate, err error) {
	start := s.now()
	defer func() { metrics.RecordEstimate(time.Since(start), err) }()

	if err := checkQuantities(req); err != nil {
		return nil, err
	}

	record, err := s.translator.Translate(req)
	if err != nil {
		return nil, err
	}

	features, err := s.encoder.Encode(record)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}

	prediction, cached, err := s.predict(ctx, req, features)
	if err != nil {
		return nil, err
	}

	rent, err := RoundRent(prediction, req.Area)
	if err != nil {
		return nil, err
	}

	estimateID, err := id.Generate(id.PrefixEstimate)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "generate estimate id")
	}

	s.logger.Debug("estimate computed",
		"id", estimateID,
		"neighborhood", req.Neighborhood,
		"prediction", prediction,
		"rent", rent,
		"cached", cached,
	)

	return &domain.Estimate{
		ID:         estimateID,
		Rent:       rent,
		Prediction: prediction,
		Request:    req,
		Record:     record,
		Message:    FormatMessage(s.locale, req, rent),
		Cached:     cached,
		CreatedAt:  s.now().UTC(),
	}, nil
}

// predict consults the cache before running the model.
func (s *EstimateService) predict(ctx context.Context, req domain.EstimateRequest, features []float64) (float64, bool, error) {
	if s.cache != nil {
		entry, ok, err := s.cache.Get(ctx, req)
		switch {
		case err != nil:
			s.logger.Warn("cache lookup failed", "error", err)
		case ok:
			metrics.RecordCacheLookup(true)
			return entry.Prediction, true, nil
		default:
			metrics.RecordCacheLookup(false)
		}
	}

	inferStart := time.Now()
	prediction, err := s.predictor.Predict(ctx, features)
	metrics.RecordInference(time.Since(inferStart))
	if err != nil {
		return 0, false, fmt.Errorf("predict: %w", err)
	}

	if s.cache != nil {
		stored, err := s.cache.Set(ctx, req, prediction)
		switch {
		case err != nil:
			s.logger.Warn("cache store failed", "error", err)
		case !stored:
			metrics.CacheSkips.Inc()
		}
	}

	return prediction, false, nil
}

// Choices lists the labels accepted by Estimate.
func (s *EstimateService) Choices() domain.Choices {
	return domain.Choices{
		Neighborhoods: s.translator.Neighborhoods(),
		Periods:       s.translator.Periods(),
		RentalTypes:   s.translator.RentalTypes(),
	}
}

func checkQuantities(req domain.EstimateRequest) error {
	switch {
	case math.IsNaN(req.Area) || math.IsInf(req.Area, 0):
		return domainerrors.InvalidQuantityf("area must be a finite number, got %v", req.Area).
			WithDetails(map[string]string{"area": "must be finite"})
	case req.Area <= 0:
		return domainerrors.InvalidQuantityf("area must be positive, got %v", req.Area).
			WithDetails(map[string]string{"area": "must be greater than 0"})
	case req.MainRooms <= 0:
		return domainerrors.InvalidQuantityf("main_rooms must be positive, got %d", req.MainRooms).
			WithDetails(map[string]string{"main_rooms": "must be greater than 0"})
	}
	return nil
}

// maxRent bounds the rounded rent so that it converts to int64 exactly.
const maxRent = 1 << 53

// RoundRent returns prediction × area rounded half to even. A non-finite
// prediction is a model defect; a finite one whose rent overflows means
// the area is too large.
func RoundRent(prediction, area float64) (int64, error) {
	if math.IsNaN(prediction) || math.IsInf(prediction, 0) {
		return 0, domainerrors.Internal(fmt.Sprintf("model returned non-finite prediction %v", prediction))
	}
	rent := math.RoundToEven(prediction * area)
	if math.IsNaN(rent) || math.IsInf(rent, 0) || math.Abs(rent) > maxRent {
		return 0, domainerrors.InvalidQuantityf("area %v is too large", area).
			WithDetails(map[string]string{"area": "too large"})
	}
	return int64(rent), nil
}

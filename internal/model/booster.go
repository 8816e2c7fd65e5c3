// Package model evaluates gradient boosted tree ensembles saved in the
// XGBoost JSON model format (Booster.save_model("model.json")).
//
// Only the gbtree booster with numerical splits is supported, which covers
// models trained through the scikit-learn XGBRegressor wrapper.
package model

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	domainerrors "github.com/loyerparis/loyer-server/internal/errors"
)

// ctxCheckInterval is how many trees are evaluated between context checks.
const ctxCheckInterval = 32

// Options tunes how features are fed to the trees.
type Options struct {
	// ZeroAsMissing treats 0 entries as missing values. Models trained on
	// sparse matrices (DictVectorizer output) never saw explicit zeros.
	ZeroAsMissing bool
}

// Booster is a loaded tree ensemble. It is immutable and safe for
// concurrent use.
type Booster struct {
	objective     string
	baseScore     float64
	baseMargin    float32
	numFeature    int
	featureNames  []string
	trees         []tree
	zeroAsMissing bool
	link          func(float32) float32
}

type tree struct {
	left        []int32
	right       []int32
	feature     []int32
	cond        []float32
	defaultLeft []bool
}

// LoadBooster reads an XGBoost JSON model from disk. Every failure is an
// ArtifactLoadFailure.
func LoadBooster(path string, opts Options) (*Booster, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- artifact path comes from configuration
	if err != nil {
		return nil, domainerrors.ArtifactLoadFailuref("read model artifact %s", path).WithCause(err)
	}

	b, err := ParseBooster(data, opts)
	if err != nil {
		return nil, domainerrors.ArtifactLoadFailuref("invalid model artifact %s", path).WithCause(err)
	}
	return b, nil
}

// ParseBooster decodes and validates an XGBoost JSON model document.
func ParseBooster(data []byte, opts Options) (*Booster, error) {
	var doc modelDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}

	learner := doc.Learner
	if learner.GradientBooster.Name != "gbtree" {
		return nil, fmt.Errorf("unsupported booster %q", learner.GradientBooster.Name)
	}

	numFeature, err := strconv.Atoi(learner.ModelParam.NumFeature)
	if err != nil || numFeature <= 0 {
		return nil, fmt.Errorf("invalid num_feature %q", learner.ModelParam.NumFeature)
	}

	if n := learner.ModelParam.NumClass; n != "" && n != "0" && n != "1" {
		return nil, fmt.Errorf("multi-class models are not supported (num_class=%s)", n)
	}
	if n := learner.ModelParam.NumTarget; n != "" && n != "1" {
		return nil, fmt.Errorf("multi-target models are not supported (num_target=%s)", n)
	}

	baseScore, err := parseBaseScore(learner.ModelParam.BaseScore)
	if err != nil {
		return nil, err
	}

	obj := learner.Objective.Name
	link, toMargin, err := objectiveLink(obj)
	if err != nil {
		return nil, err
	}
	baseMargin, err := toMargin(baseScore)
	if err != nil {
		return nil, err
	}

	raw := learner.GradientBooster.Model.Trees
	if len(raw) == 0 {
		return nil, fmt.Errorf("model has no trees")
	}

	b := &Booster{
		objective:     obj,
		baseScore:     baseScore,
		baseMargin:    float32(baseMargin),
		numFeature:    numFeature,
		featureNames:  learner.FeatureNames,
		trees:         make([]tree, 0, len(raw)),
		zeroAsMissing: opts.ZeroAsMissing,
		link:          link,
	}

	for i, rt := range raw {
		t, err := rt.build(numFeature)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		b.trees = append(b.trees, t)
	}

	return b, nil
}

// Predict returns the model output for one dense feature row.
func (b *Booster) Predict(ctx context.Context, features []float64) (float64, error) {
	if len(features) != b.numFeature {
		return 0, domainerrors.SchemaMismatchf("model expects %d features, got %d", b.numFeature, len(features))
	}

	row := make([]float32, len(features))
	missing := make([]bool, len(features))
	for i, f := range features {
		row[i] = float32(f)
		missing[i] = math.IsNaN(f) || (b.zeroAsMissing && f == 0)
	}

	// Leaves are added onto the base margin one tree at a time, in the
	// same order as XGBoost, so float32 rounding matches its output.
	margin := b.baseMargin
	for i := range b.trees {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return 0, fmt.Errorf("predict interrupted: %w", err)
			}
		}
		margin += b.trees[i].leaf(row, missing)
	}

	return float64(b.link(margin)), nil
}

// leaf walks the tree for one row and returns the leaf value.
func (t *tree) leaf(row []float32, missing []bool) float32 {
	node := int32(0)
	for t.left[node] != -1 {
		f := t.feature[node]
		switch {
		case missing[f]:
			if t.defaultLeft[node] {
				node = t.left[node]
			} else {
				node = t.right[node]
			}
		case row[f] < t.cond[node]:
			node = t.left[node]
		default:
			node = t.right[node]
		}
	}
	return t.cond[node]
}

// NumFeature returns the input width the model was trained with.
func (b *Booster) NumFeature() int { return b.numFeature }

// NumTrees returns the number of trees in the ensemble.
func (b *Booster) NumTrees() int { return len(b.trees) }

// Objective returns the training objective name.
func (b *Booster) Objective() string { return b.objective }

// BaseScore returns the global bias in output space.
func (b *Booster) BaseScore() float64 { return b.baseScore }

// FeatureNames returns the feature names stored in the model, if any.
func (b *Booster) FeatureNames() []string {
	return append([]string(nil), b.featureNames...)
}

// parseBaseScore accepts both "5E-1" and the bracketed "[5E-1]" form
// written by newer XGBoost releases.
func parseBaseScore(s string) (float64, error) {
	s = strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "[]"))
	if s == "" {
		return 0.5, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid base_score %q: %w", s, err)
	}
	return v, nil
}

// objectiveLink returns the inverse link applied to the margin and the
// transform turning base_score into a margin.
func objectiveLink(name string) (link func(float32) float32, toMargin func(float64) (float64, error), err error) {
	identity := func(m float32) float32 { return m }

	switch name {
	case "reg:squarederror", "reg:linear", "reg:pseudohubererror",
		"reg:absoluteerror", "reg:squaredlogerror", "reg:quantileerror":
		return identity, func(p float64) (float64, error) { return p, nil }, nil

	case "reg:logistic", "binary:logistic":
		sigmoid := func(m float32) float32 { return float32(1 / (1 + math.Exp(-float64(m)))) }
		logit := func(p float64) (float64, error) {
			if p <= 0 || p >= 1 {
				return 0, fmt.Errorf("base_score %v outside (0, 1) for %s", p, name)
			}
			return -math.Log(1/p - 1), nil
		}
		return sigmoid, logit, nil

	case "count:poisson", "reg:gamma", "reg:tweedie":
		exp := func(m float32) float32 { return float32(math.Exp(float64(m))) }
		log := func(p float64) (float64, error) {
			if p <= 0 {
				return 0, fmt.Errorf("base_score %v must be positive for %s", p, name)
			}
			return math.Log(p), nil
		}
		return exp, log, nil

	default:
		return nil, nil, fmt.Errorf("unsupported objective %q", name)
	}
}

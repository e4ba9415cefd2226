package predict

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/reliefroute/backend/internal/models"
)

// ModelSet is one consistent generation of trained models. Predictions read
// whichever generation was current when they started; Train publishes a new
// set in a single atomic swap so no caller ever observes a half-loaded one.
type ModelSet struct {
	TrainedAt time.Time
	Samples   int
	demand    map[models.ResourceCategory]*regressor
	risk      *classifier
}

// ModelStore holds the current generation. The zero value serves no model,
// which keeps everything on the rule-based path.
type ModelStore struct {
	current atomic.Pointer[ModelSet]
}

func (ms *ModelStore) Current() *ModelSet {
	return ms.current.Load()
}

// Train fits a new generation from the historical corpus and swaps it in.
// Training is an exclusive administrative phase; a minimum sample count
// guards against models fit on next to nothing.
func (ms *ModelStore) Train(corpus []models.HistoricalScenario, minSamples int, logger zerolog.Logger) (*ModelSet, error) {
	if minSamples <= 0 {
		minSamples = 5
	}
	if len(corpus) < minSamples {
		return nil, fmt.Errorf("%w: %d scenarios, need %d", ErrInsufficientHistory, len(corpus), minSamples)
	}

	rows := make([][]float64, len(corpus))
	classRows := make([][]float64, len(corpus))
	labels := make([]models.RiskLevel, len(corpus))
	for i, h := range corpus {
		rows[i] = HistoricalFeatures(h)
		classRows[i] = historicalClassifierFeatures(h)
		labels[i] = riskLabelFromSeverity(h.Severity)
	}

	set := &ModelSet{
		TrainedAt: time.Now().UTC(),
		Samples:   len(corpus),
		demand:    map[models.ResourceCategory]*regressor{},
	}
	for _, cat := range models.CoreCategories() {
		targets := make([]float64, 0, len(corpus))
		catRows := make([][]float64, 0, len(corpus))
		for i, h := range corpus {
			qty, ok := h.Deployed[string(cat)]
			if !ok {
				continue
			}
			targets = append(targets, float64(qty))
			catRows = append(catRows, rows[i])
		}
		if len(catRows) < 2 {
			logger.Warn().Str("category", string(cat)).Int("samples", len(catRows)).
				Msg("too few deployments to fit demand model")
			continue
		}
		reg, err := fitRidge(catRows, targets)
		if err != nil {
			logger.Warn().Err(err).Str("category", string(cat)).Msg("demand model fit failed")
			continue
		}
		set.demand[cat] = reg
	}

	risk, err := fitClassifier(classRows, labels)
	if err != nil {
		logger.Warn().Err(err).Msg("risk classifier fit failed")
	} else {
		set.risk = risk
	}

	ms.current.Store(set)
	logger.Info().Int("samples", set.Samples).Int("demand_models", len(set.demand)).
		Msg("model set trained and swapped")
	return set, nil
}

func riskLabelFromSeverity(severity int) models.RiskLevel {
	switch {
	case severity >= 5:
		return models.RiskCritical
	case severity >= 4:
		return models.RiskHigh
	case severity >= 3:
		return models.RiskModerate
	default:
		return models.RiskLow
	}
}

// HasDemand reports whether this generation can estimate the category.
func (m *ModelSet) HasDemand(cat models.ResourceCategory) bool {
	if m == nil {
		return false
	}
	_, ok := m.demand[cat]
	return ok
}

func (m *ModelSet) HasRisk() bool {
	return m != nil && m.risk != nil
}

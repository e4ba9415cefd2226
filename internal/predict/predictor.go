package predict

import (
	"errors"
	"math"

	"github.com/rs/zerolog"

	"github.com/reliefroute/backend/internal/models"
	"github.com/reliefroute/backend/internal/similarity"
)

var ErrInsufficientHistory = errors.New("insufficient historical scenarios")

// Blend weights are fixed regardless of model confidence or training-set
// size. Deliberately kept as-is; confidence weighting is a product decision,
// not an implementation one.
const (
	weightLearned   = 0.7
	weightRule      = 0.3
	adjustmentBound = 0.15
)

var categoryUnits = map[models.ResourceCategory]string{
	models.ResourceMedicalKits: "kits",
	models.ResourceFoodPackets: "packets",
	models.ResourceWaterLiters: "liters",
	models.ResourceShelterKits: "kits",
}

// Strategy estimates demand for one resource category.
type Strategy interface {
	Name() models.PredictionMethod
	Estimate(s models.Scenario, category models.ResourceCategory) (float64, error)
}

var _ Strategy = RuleBasedStrategy{}

// DemandPredictor blends the learned regressors with the rule-based
// estimator and applies the historical-similarity adjustment.
type DemandPredictor struct {
	Models *ModelStore
	Index  similarity.Index
	K      int
	Logger zerolog.Logger

	rule RuleBasedStrategy
}

// Predict produces one PredictionResult per core category. A learned-model
// failure for one category degrades that category to rule-based; it never
// fails the scenario evaluation.
func (p *DemandPredictor) Predict(s models.Scenario) []models.PredictionResult {
	set := p.Models.Current()
	features, complete := Features(s)

	k := p.K
	if k <= 0 {
		k = 5
	}
	var matches []similarity.Match
	if p.Index != nil {
		matches = p.Index.Nearest(s, k)
	}

	results := make([]models.PredictionResult, 0, len(models.CoreCategories()))
	for _, cat := range models.CoreCategories() {
		ruleEst, _ := p.rule.Estimate(s, cat)

		estimate := ruleEst
		method := models.MethodRuleBased
		var importance map[string]float64

		if complete && set.HasDemand(cat) {
			learned := set.demand[cat].predict(features)
			if math.IsNaN(learned) || math.IsInf(learned, 0) {
				p.Logger.Warn().Str("category", string(cat)).
					Msg("learned estimate non-finite, falling back to rule-based")
			} else {
				estimate = weightLearned*learned + weightRule*ruleEst
				method = models.MethodBlended
				importance = set.demand[cat].importance()
			}
		}

		estimate = adjustTowardHistory(estimate, cat, matches)
		if estimate < 0 {
			estimate = 0
		}

		results = append(results, models.PredictionResult{
			Category: cat,
			// Count-based categories round up so a fractional estimate never
			// under-provisions.
			Quantity:   int(math.Ceil(estimate)),
			Unit:       categoryUnits[cat],
			Method:     method,
			Importance: importance,
		})
	}
	return results
}

// adjustTowardHistory shifts the estimate toward the mean deployment of the
// nearest historical scenarios, bounded to ±15% of the blended estimate.
func adjustTowardHistory(estimate float64, cat models.ResourceCategory, matches []similarity.Match) float64 {
	if len(matches) == 0 || estimate <= 0 {
		return estimate
	}
	sum, n := 0.0, 0
	for _, m := range matches {
		if qty, ok := m.Scenario.Deployed[string(cat)]; ok {
			sum += float64(qty)
			n++
		}
	}
	if n == 0 {
		return estimate
	}
	target := sum / float64(n)
	shift := target - estimate
	bound := adjustmentBound * estimate
	if shift > bound {
		shift = bound
	} else if shift < -bound {
		shift = -bound
	}
	return estimate + shift
}

// RiskClassifier combines the learned classifier with the rule thresholds.
type RiskClassifier struct {
	Models *ModelStore
	Logger zerolog.Logger
}

// Classify returns the final risk verdict. The safety policy takes the
// maximum of the learned and rule-based levels: disagreement is treated as a
// reason for caution, never averaged away.
func (c *RiskClassifier) Classify(s models.Scenario) models.RiskAssessment {
	ruleLevel := RuleRisk(s)

	set := c.Models.Current()
	if !set.HasRisk() {
		return models.RiskAssessment{Level: ruleLevel, Method: models.MethodRuleBased}
	}

	learnedLevel, weights := set.risk.predict(classifierFeatures(s))
	final := models.MaxRisk(learnedLevel, ruleLevel)
	if final != learnedLevel {
		c.Logger.Debug().
			Str("learned", learnedLevel.String()).
			Str("rule", ruleLevel.String()).
			Msg("rule threshold overrode learned risk level")
	}
	return models.RiskAssessment{
		Level:   final,
		Method:  models.MethodBlended,
		Weights: weights,
	}
}

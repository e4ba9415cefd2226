package interpret

import (
	"sort"

	"github.com/reliefroute/backend/internal/ledger"
	"github.com/reliefroute/backend/internal/models"
)

// FactorWeight is one named contribution to a prediction, largest first.
type FactorWeight struct {
	Feature string  `json:"feature"`
	Weight  float64 `json:"weight"`
}

// DemandBreakdown explains one resource category's predicted quantity.
type DemandBreakdown struct {
	Category models.ResourceCategory `json:"category"`
	Method   models.PredictionMethod `json:"method"`
	Factors  []FactorWeight          `json:"factors,omitempty"`
}

// Report is the interpretability view of a recorded decision. RuleBased is
// set when no learned model contributed, so there is no weight vector to
// show and the fixed heuristic formulas applied instead.
type Report struct {
	DecisionID string            `json:"decision_id"`
	RuleBased  bool              `json:"rule_based"`
	Demand     []DemandBreakdown `json:"demand"`
	Risk       struct {
		Level   models.RiskLevel        `json:"level"`
		Method  models.PredictionMethod `json:"method"`
		Factors []FactorWeight          `json:"factors,omitempty"`
	} `json:"risk"`
}

// Reporter reads stored feature weights back out of recorded decisions.
// Weights are captured at prediction time, so a later model retrain does
// not rewrite the explanation of an old decision.
type Reporter struct {
	Ledger *ledger.Ledger
}

func (r *Reporter) Report(decisionID string) (Report, error) {
	d, err := r.Ledger.Get(decisionID)
	if err != nil {
		return Report{}, err
	}

	rep := Report{DecisionID: d.ID, RuleBased: true}
	for _, p := range d.Predictions {
		bd := DemandBreakdown{Category: p.Category, Method: p.Method}
		if p.Method != models.MethodRuleBased {
			rep.RuleBased = false
			bd.Factors = sortedFactors(p.Importance)
		}
		rep.Demand = append(rep.Demand, bd)
	}

	rep.Risk.Level = d.Risk.Level
	rep.Risk.Method = d.Risk.Method
	if d.Risk.Method != models.MethodRuleBased {
		rep.RuleBased = false
		rep.Risk.Factors = sortedFactors(d.Risk.Weights)
	}
	return rep, nil
}

func sortedFactors(weights map[string]float64) []FactorWeight {
	out := make([]FactorWeight, 0, len(weights))
	for name, w := range weights {
		out = append(out, FactorWeight{Feature: name, Weight: w})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		return out[i].Feature < out[j].Feature
	})
	return out
}

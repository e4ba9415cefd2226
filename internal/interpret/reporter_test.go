package interpret

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/reliefroute/backend/internal/ledger"
	"github.com/reliefroute/backend/internal/models"
)

func recordedDecision(t *testing.T, d models.Decision) *ledger.Ledger {
	t.Helper()
	l := ledger.New(nil, nil)
	if err := l.Record(context.Background(), d); err != nil {
		t.Fatalf("record: %v", err)
	}
	return l
}

func TestReportUnknownDecision(t *testing.T) {
	r := &Reporter{Ledger: ledger.New(nil, nil)}
	if _, err := r.Report("missing"); !errors.Is(err, ledger.ErrDecisionNotFound) {
		t.Fatalf("expected ErrDecisionNotFound, got %v", err)
	}
}

func TestReportRuleBasedDecision(t *testing.T) {
	d := models.Decision{
		ID:        "d1",
		CreatedAt: time.Now().UTC(),
		Predictions: []models.PredictionResult{
			{Category: models.ResourceMedicalKits, Method: models.MethodRuleBased},
		},
		Risk: models.RiskAssessment{Level: models.RiskModerate, Method: models.MethodRuleBased},
	}
	r := &Reporter{Ledger: recordedDecision(t, d)}

	rep, err := r.Report("d1")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if !rep.RuleBased {
		t.Fatalf("expected rule-based report")
	}
	if len(rep.Demand) != 1 || len(rep.Demand[0].Factors) != 0 {
		t.Fatalf("rule-based breakdown must carry no factors, got %+v", rep.Demand)
	}
}

func TestReportBlendedFactorsSorted(t *testing.T) {
	d := models.Decision{
		ID:        "d1",
		CreatedAt: time.Now().UTC(),
		Predictions: []models.PredictionResult{
			{
				Category: models.ResourceMedicalKits,
				Method:   models.MethodBlended,
				Importance: map[string]float64{
					"severity":       0.2,
					"hospital_load":  0.5,
					"log_population": 0.3,
				},
			},
		},
		Risk: models.RiskAssessment{
			Level:   models.RiskHigh,
			Method:  models.MethodBlended,
			Weights: map[string]float64{"severity": 0.9, "zones_count": 0.1},
		},
	}
	r := &Reporter{Ledger: recordedDecision(t, d)}

	rep, err := r.Report("d1")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if rep.RuleBased {
		t.Fatalf("blended decision must not be reported rule-based")
	}
	factors := rep.Demand[0].Factors
	if len(factors) != 3 || factors[0].Feature != "hospital_load" {
		t.Fatalf("expected factors sorted by weight, got %+v", factors)
	}
	if rep.Risk.Factors[0].Feature != "severity" {
		t.Fatalf("expected severity to dominate risk factors, got %+v", rep.Risk.Factors)
	}
}

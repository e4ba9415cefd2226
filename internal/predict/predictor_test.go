package predict

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/reliefroute/backend/internal/corpus"
	"github.com/reliefroute/backend/internal/models"
	"github.com/reliefroute/backend/internal/similarity"
)

func floodScenario() models.Scenario {
	return models.Scenario{
		ID:                 "s1",
		DisasterType:       models.DisasterFlood,
		Severity:           3,
		Population:         17850,
		Zones:              []string{"East", "West"},
		HospitalLoad:       71,
		BlockedRoads:       []string{"OMR"},
		Attributes:         map[string]float64{"water_level_m": 1.2, "rainfall_mm_24h": 180},
		LogPopulation:      9.79,
		NormalizedSeverity: 0.6,
	}
}

func trainedStore(t *testing.T) *ModelStore {
	t.Helper()
	c, err := corpus.Load("")
	if err != nil {
		t.Fatalf("load corpus: %v", err)
	}
	ms := &ModelStore{}
	if _, err := ms.Train(c.Historical, 5, zerolog.Nop()); err != nil {
		t.Fatalf("train: %v", err)
	}
	return ms
}

func TestPredictRuleBasedWithoutModels(t *testing.T) {
	p := &DemandPredictor{Models: &ModelStore{}, Logger: zerolog.Nop()}
	results := p.Predict(floodScenario())
	if len(results) != 4 {
		t.Fatalf("expected 4 core categories, got %d", len(results))
	}
	for _, r := range results {
		if r.Method != models.MethodRuleBased {
			t.Fatalf("%s: expected rule_based without models, got %s", r.Category, r.Method)
		}
		if r.Quantity < 0 {
			t.Fatalf("%s: negative quantity %d", r.Category, r.Quantity)
		}
	}
}

func TestPredictBlendsWhereModelsExist(t *testing.T) {
	p := &DemandPredictor{Models: trainedStore(t), Logger: zerolog.Nop()}
	results := p.Predict(floodScenario())

	methods := map[models.ResourceCategory]models.PredictionMethod{}
	for _, r := range results {
		methods[r.Category] = r.Method
	}
	// The corpus records deployments for medical kits and water only; the
	// other categories have no model to blend with.
	if methods[models.ResourceMedicalKits] != models.MethodBlended {
		t.Fatalf("medical kits: expected blended, got %s", methods[models.ResourceMedicalKits])
	}
	if methods[models.ResourceFoodPackets] != models.MethodRuleBased {
		t.Fatalf("food packets: expected rule_based, got %s", methods[models.ResourceFoodPackets])
	}
	for _, r := range results {
		if r.Method == models.MethodBlended && len(r.Importance) == 0 {
			t.Fatalf("%s: blended result missing feature importance", r.Category)
		}
	}
}

func TestPredictIncompleteFeaturesStaysRuleBased(t *testing.T) {
	s := floodScenario()
	delete(s.Attributes, "water_level_m")
	p := &DemandPredictor{Models: trainedStore(t), Logger: zerolog.Nop()}
	for _, r := range p.Predict(s) {
		if r.Method != models.MethodRuleBased {
			t.Fatalf("%s: incomplete features must fall back to rule_based, got %s", r.Category, r.Method)
		}
	}
}

func TestPredictDeterministic(t *testing.T) {
	c, err := corpus.Load("")
	if err != nil {
		t.Fatalf("load corpus: %v", err)
	}
	p := &DemandPredictor{
		Models: trainedStore(t),
		Index:  similarity.NewLinearIndex(c.Historical),
		K:      5,
		Logger: zerolog.Nop(),
	}
	s := floodScenario()
	first := p.Predict(s)
	second := p.Predict(s)
	for i := range first {
		if first[i].Quantity != second[i].Quantity || first[i].Method != second[i].Method {
			t.Fatalf("prediction not deterministic for %s", first[i].Category)
		}
	}
}

func TestAdjustTowardHistoryBounds(t *testing.T) {
	matches := []similarity.Match{
		{Scenario: models.HistoricalScenario{Deployed: map[string]int{"medical_kits": 10000}}},
	}
	if got := adjustTowardHistory(100, models.ResourceMedicalKits, matches); got != 115 {
		t.Fatalf("upward shift capped at +15%%, got %f", got)
	}
	low := []similarity.Match{
		{Scenario: models.HistoricalScenario{Deployed: map[string]int{"medical_kits": 0}}},
	}
	if got := adjustTowardHistory(100, models.ResourceMedicalKits, low); got != 85 {
		t.Fatalf("downward shift capped at -15%%, got %f", got)
	}
	if got := adjustTowardHistory(100, models.ResourceMedicalKits, nil); got != 100 {
		t.Fatalf("no matches leaves estimate alone, got %f", got)
	}
}

func TestTrainInsufficientHistory(t *testing.T) {
	ms := &ModelStore{}
	few := []models.HistoricalScenario{{ID: "h1"}, {ID: "h2"}}
	if _, err := ms.Train(few, 5, zerolog.Nop()); !errors.Is(err, ErrInsufficientHistory) {
		t.Fatalf("expected ErrInsufficientHistory, got %v", err)
	}
	if ms.Current() != nil {
		t.Fatalf("failed training must not swap a model set in")
	}
}

func TestClassifyRuleBasedWithoutModels(t *testing.T) {
	c := &RiskClassifier{Models: &ModelStore{}, Logger: zerolog.Nop()}
	got := c.Classify(floodScenario())
	if got.Method != models.MethodRuleBased {
		t.Fatalf("expected rule_based, got %s", got.Method)
	}
	if got.Level != models.RiskModerate {
		t.Fatalf("severity 3 with hospital load 71 gives MODERATE, got %s", got.Level)
	}
}

func TestClassifyNeverBelowRuleLevel(t *testing.T) {
	c := &RiskClassifier{Models: trainedStore(t), Logger: zerolog.Nop()}
	s := floodScenario()
	s.Severity = 5
	got := c.Classify(s)
	if got.Level < models.RiskCritical {
		t.Fatalf("severity 5 pins the floor at CRITICAL, got %s", got.Level)
	}
	if got.Method != models.MethodBlended {
		t.Fatalf("expected blended with a trained classifier, got %s", got.Method)
	}
}

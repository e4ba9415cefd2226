package similarity

import (
	"testing"

	"github.com/reliefroute/backend/internal/models"
)

func historicalFixture() []models.HistoricalScenario {
	return []models.HistoricalScenario{
		{ID: "h1", DisasterType: models.DisasterFlood, Severity: 3, Population: 20000, HospitalLoad: 70,
			Zones: []string{"East", "West"}, Deployed: map[string]int{"medical_kits": 500}},
		{ID: "h2", DisasterType: models.DisasterFlood, Severity: 5, Population: 500000, HospitalLoad: 95,
			Zones: []string{"North", "South", "Central"}, Deployed: map[string]int{"medical_kits": 4000}},
		{ID: "h3", DisasterType: models.DisasterHeatwave, Severity: 3, Population: 20000, HospitalLoad: 70,
			Zones: []string{"West"}, Deployed: map[string]int{"water_liters": 90000}},
	}
}

func querentFlood() models.Scenario {
	return models.Scenario{
		ID:           "q",
		DisasterType: models.DisasterFlood,
		Severity:     3,
		Population:   18000,
		HospitalLoad: 71,
		Zones:        []string{"East", "West"},
	}
}

func TestNearestOrdersByDistance(t *testing.T) {
	idx := NewLinearIndex(historicalFixture())
	matches := idx.Nearest(querentFlood(), 2)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Scenario.ID != "h1" {
		t.Fatalf("expected h1 closest, got %s", matches[0].Scenario.ID)
	}
	if matches[0].Distance > matches[1].Distance {
		t.Fatalf("matches out of order: %f > %f", matches[0].Distance, matches[1].Distance)
	}
}

func TestNearestPrefersSameDisasterType(t *testing.T) {
	idx := NewLinearIndex(historicalFixture())
	matches := idx.Nearest(querentFlood(), 3)
	for _, m := range matches[:2] {
		if m.Scenario.DisasterType != models.DisasterFlood {
			t.Fatalf("expected flood scenarios ranked first, got %s", m.Scenario.DisasterType)
		}
	}
}

func TestNearestCapsAtK(t *testing.T) {
	idx := NewLinearIndex(historicalFixture())
	if got := idx.Nearest(querentFlood(), 1); len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
}

func TestNearestEmptyCorpus(t *testing.T) {
	idx := NewLinearIndex(nil)
	if got := idx.Nearest(querentFlood(), 5); got != nil {
		t.Fatalf("expected nil matches for empty corpus, got %v", got)
	}
}

func TestDistanceIdenticalScenarioIsZero(t *testing.T) {
	h := historicalFixture()[0]
	s := models.Scenario{
		DisasterType: h.DisasterType,
		Severity:     h.Severity,
		Population:   h.Population,
		HospitalLoad: h.HospitalLoad,
		Zones:        h.Zones,
	}
	if d := Distance(s, h); d != 0 {
		t.Fatalf("expected zero distance, got %f", d)
	}
}

package predict

import (
	"testing"

	"github.com/reliefroute/backend/internal/models"
)

func TestRuleRiskThresholds(t *testing.T) {
	cases := []struct {
		severity int
		hospital float64
		pop      int
		want     models.RiskLevel
	}{
		{1, 10, 1000, models.RiskLow},
		{3, 10, 1000, models.RiskModerate},
		{4, 10, 1000, models.RiskHigh},
		{5, 10, 1000, models.RiskCritical},
		{1, 50, 1000, models.RiskModerate},
		{1, 75, 1000, models.RiskHigh},
		{1, 90, 1000, models.RiskCritical},
		{1, 10, 25000, models.RiskModerate},
		{1, 10, 75000, models.RiskHigh},
		{1, 10, 200000, models.RiskCritical},
	}
	for _, tc := range cases {
		s := models.Scenario{Severity: tc.severity, HospitalLoad: tc.hospital, Population: tc.pop}
		if got := RuleRisk(s); got != tc.want {
			t.Fatalf("sev=%d hosp=%.0f pop=%d: expected %s, got %s",
				tc.severity, tc.hospital, tc.pop, tc.want, got)
		}
	}
}

func TestRuleRiskMonotonicInSeverity(t *testing.T) {
	prev := models.RiskLow
	for sev := 1; sev <= 5; sev++ {
		s := models.Scenario{Severity: sev, HospitalLoad: 40, Population: 10000}
		got := RuleRisk(s)
		if got < prev {
			t.Fatalf("risk dropped from %s to %s at severity %d", prev, got, sev)
		}
		prev = got
	}
}

func TestRuleEstimateMedicalFloor(t *testing.T) {
	s := models.Scenario{DisasterType: models.DisasterFlood, Severity: 1, Population: 100, HospitalLoad: 10}
	got, err := RuleBasedStrategy{}.Estimate(s, models.ResourceMedicalKits)
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if got < 100 {
		t.Fatalf("medical kits floor is 100, got %f", got)
	}
}

func TestRuleEstimateWaterMultipliers(t *testing.T) {
	base := models.Scenario{Severity: 3, Population: 10000}

	heatwave := base
	heatwave.DisasterType = models.DisasterHeatwave
	coastalFlood := base
	coastalFlood.DisasterType = models.DisasterFlood
	coastalFlood.Coastal = true
	quake := base
	quake.DisasterType = models.DisasterEarthquake

	hw, _ := RuleBasedStrategy{}.Estimate(heatwave, models.ResourceWaterLiters)
	cf, _ := RuleBasedStrategy{}.Estimate(coastalFlood, models.ResourceWaterLiters)
	eq, _ := RuleBasedStrategy{}.Estimate(quake, models.ResourceWaterLiters)

	if hw != cf {
		t.Fatalf("heatwave and coastal flood share the 1.5 multiplier: %f vs %f", hw, cf)
	}
	if eq >= hw {
		t.Fatalf("earthquake water estimate should be lower: %f vs %f", eq, hw)
	}
}

func TestRuleEstimateBlockedRoadBuffer(t *testing.T) {
	clear := models.Scenario{DisasterType: models.DisasterFlood, Severity: 3, Population: 50000}
	blocked := clear
	blocked.BlockedRoads = []string{"a", "b", "c"}

	base, _ := RuleBasedStrategy{}.Estimate(clear, models.ResourceFoodPackets)
	buffered, _ := RuleBasedStrategy{}.Estimate(blocked, models.ResourceFoodPackets)
	if buffered <= base {
		t.Fatalf("blocked roads should increase provisioning: %f <= %f", buffered, base)
	}
}

func TestVehicleEstimateFloodEscalation(t *testing.T) {
	s := models.Scenario{DisasterType: models.DisasterFlood, Severity: 5, Zones: []string{"North", "Central"}}
	est := VehicleEstimate(s)
	if est["trucks"] < 2 {
		t.Fatalf("expected at least 2 trucks, got %d", est["trucks"])
	}
	if est["boats"] == 0 {
		t.Fatalf("expected boats for a flood")
	}
	if est["helicopters"] != 2 {
		t.Fatalf("expected 2 helicopters at severity 5, got %d", est["helicopters"])
	}

	mild := models.Scenario{DisasterType: models.DisasterHeatwave, Severity: 2, Zones: []string{"West"}}
	if _, ok := VehicleEstimate(mild)["boats"]; ok {
		t.Fatalf("heatwave should not request boats")
	}
}

package predict

import (
	"math"

	"github.com/reliefroute/backend/internal/models"
)

// RuleBasedStrategy is the deterministic safety fallback. It is a pure
// function of severity, log-population, hospital load, zone count,
// blocked-road count and disaster-specific multipliers, so it is always
// available whatever the state of the trained models.
type RuleBasedStrategy struct{}

func (RuleBasedStrategy) Name() models.PredictionMethod { return models.MethodRuleBased }

func (RuleBasedStrategy) Estimate(s models.Scenario, category models.ResourceCategory) (float64, error) {
	pop := float64(s.Population)
	sev := float64(s.Severity)
	// Blocked roads slow distribution; provision a small buffer per road.
	buffer := 1.0 + 0.02*math.Min(float64(len(s.BlockedRoads)), 5)

	var base float64
	switch category {
	case models.ResourceMedicalKits:
		hospitalFactor := 0.5 + s.HospitalLoad/100.0
		base = math.Max(100, pop*0.15*(sev/3.0)*hospitalFactor)
	case models.ResourceFoodPackets:
		base = pop / 10.0 * (1.0 + 0.05*float64(len(s.Zones)))
	case models.ResourceWaterLiters:
		base = pop * 3.0 * waterMultiplier(s)
	case models.ResourceShelterKits:
		base = pop / 100.0 * shelterMultiplier(s)
	default:
		// Extensible categories scale with log-population and severity.
		base = math.Max(10, s.LogPopulation*sev*10)
	}
	return base * buffer, nil
}

func waterMultiplier(s models.Scenario) float64 {
	switch s.DisasterType {
	case models.DisasterHeatwave:
		return 1.5
	case models.DisasterFlood:
		if s.Coastal {
			// Coastal flooding contaminates supply; more clean water needed.
			return 1.5
		}
		return 1.25
	default:
		return 1.0
	}
}

func shelterMultiplier(s models.Scenario) float64 {
	switch s.DisasterType {
	case models.DisasterFlood, models.DisasterCyclone, models.DisasterEarthquake:
		return 1.25
	default:
		return 1.0
	}
}

// Rule thresholds for risk. Monotonic: raising severity, population or
// hospital load never lowers the level.
func RuleRisk(s models.Scenario) models.RiskLevel {
	level := models.RiskLow
	switch {
	case s.Severity >= 5:
		level = models.RiskCritical
	case s.Severity >= 4:
		level = models.RiskHigh
	case s.Severity >= 3:
		level = models.RiskModerate
	}
	switch {
	case s.HospitalLoad >= 90:
		level = models.MaxRisk(level, models.RiskCritical)
	case s.HospitalLoad >= 75:
		level = models.MaxRisk(level, models.RiskHigh)
	case s.HospitalLoad >= 50:
		level = models.MaxRisk(level, models.RiskModerate)
	}
	switch {
	case s.Population >= 200000:
		level = models.MaxRisk(level, models.RiskCritical)
	case s.Population >= 75000:
		level = models.MaxRisk(level, models.RiskHigh)
	case s.Population >= 25000:
		level = models.MaxRisk(level, models.RiskModerate)
	}
	return level
}

// VehicleEstimate mirrors the operational heuristics for vehicle counts used
// by the recommended-actions generator.
func VehicleEstimate(s models.Scenario) map[string]int {
	numZones := len(s.Zones)
	est := map[string]int{
		"trucks": int(math.Max(2, float64(numZones*2))),
		"drones": int(math.Max(1, float64(numZones))),
	}
	if s.DisasterType == models.DisasterFlood || s.DisasterType == models.DisasterCyclone {
		est["boats"] = int(math.Max(1, float64(s.Severity-1))) * int(math.Max(1, float64(numZones)))
		if s.Severity >= 5 {
			est["helicopters"] = 2
		} else if s.Severity >= 4 {
			est["helicopters"] = 1
		}
	}
	return est
}

package engine

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/reliefroute/backend/internal/models"
	"github.com/reliefroute/backend/internal/utils"
)

func summaryLine(s models.Scenario, risk models.RiskAssessment) string {
	return fmt.Sprintf("%s %s affecting %d zone(s), %d people; hospital load %.0f%%; risk %s",
		s.SeverityLabel, s.DisasterType, len(s.Zones), s.Population, s.HospitalLoad, risk.Level)
}

// recommendedActions mirrors the playbook the operations team works from.
// Ordered most urgent first.
func recommendedActions(s models.Scenario, risk models.RiskAssessment, blockedZones []string) []string {
	var actions []string

	switch risk.Level {
	case models.RiskCritical:
		actions = append(actions,
			"Activate emergency operations center at highest readiness",
			"Request state-level reinforcement and mutual aid")
	case models.RiskHigh:
		actions = append(actions,
			"Place all depot teams on immediate standby",
			"Pre-position ambulances near affected zones")
	case models.RiskModerate:
		actions = append(actions, "Alert zone coordinators and verify communication channels")
	default:
		actions = append(actions, "Monitor situation; no field deployment required yet")
	}

	switch s.DisasterType {
	case models.DisasterFlood:
		actions = append(actions, "Deploy boats to low-lying areas and open elevated shelters")
	case models.DisasterCyclone:
		actions = append(actions, "Issue coastal evacuation advisory and secure loose infrastructure")
	case models.DisasterEarthquake:
		actions = append(actions, "Dispatch urban search and rescue teams for collapse assessment")
	case models.DisasterHeatwave:
		actions = append(actions, "Open cooling centers and distribute water at transit hubs")
	case models.DisasterMedical:
		actions = append(actions, "Coordinate patient transfers to hospitals with spare capacity")
	}

	if s.HospitalLoad >= 85 {
		actions = append(actions, "Arrange overflow medical capacity; nearby hospitals are saturated")
	}
	if len(blockedZones) > 0 {
		actions = append(actions, fmt.Sprintf("Establish air or alternate corridor for unreachable zone(s): %s",
			strings.Join(blockedZones, ", ")))
	}
	return actions
}

// weatherSnapshot is seeded from scenario content, not its ID, so the same
// submission always reports the same conditions.
func weatherSnapshot(s models.Scenario) map[string]any {
	seed := utils.SeedFromParts(string(s.DisasterType), fmt.Sprint(s.Severity), strings.Join(s.Zones, ","))
	rng := rand.New(rand.NewSource(int64(seed)))

	temp := 28.0 + rng.Float64()*6
	humidity := 55 + rng.Intn(25)
	wind := 8.0 + rng.Float64()*12
	rainChance := 10 + rng.Intn(30)

	switch s.DisasterType {
	case models.DisasterFlood:
		rainChance = 70 + rng.Intn(30)
		humidity = 80 + rng.Intn(15)
	case models.DisasterCyclone:
		wind = 60 + rng.Float64()*40*float64(s.Severity)/5
		rainChance = 60 + rng.Intn(40)
	case models.DisasterHeatwave:
		temp = 38 + rng.Float64()*4 + float64(s.Severity)
		humidity = 30 + rng.Intn(20)
		rainChance = rng.Intn(10)
	}

	return map[string]any{
		"temperature_c":   round1(temp),
		"humidity_pct":    humidity,
		"wind_speed_kmph": round1(wind),
		"rain_chance_pct": rainChance,
	}
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

package similarity

import (
	"math"
	"sort"

	"github.com/reliefroute/backend/internal/models"
)

// Match is one historical scenario with its distance to the query.
type Match struct {
	Scenario models.HistoricalScenario
	Distance float64
}

// Index answers nearest-neighbour queries over the historical corpus. The
// implementation (linear scan here, a spatial index later) is invisible to
// the predictors.
type Index interface {
	Nearest(s models.Scenario, k int) []Match
}

// Feature weights from operational tuning of the distance metric.
const (
	weightSeverity     = 2.0
	weightPopulation   = 1.5
	weightHospitalLoad = 1.8
	weightZones        = 1.0
	weightBlocked      = 1.2
	typeMismatchCost   = 0.5
)

// LinearIndex scans the full corpus on every query. The corpus is small and
// read-only, so this stays well inside the evaluation's compute bound.
type LinearIndex struct {
	corpus []models.HistoricalScenario
}

func NewLinearIndex(corpus []models.HistoricalScenario) *LinearIndex {
	return &LinearIndex{corpus: corpus}
}

// Nearest returns up to k matches in ascending distance. Scenarios of the
// same disaster type are preferred; when none exist the whole corpus is
// considered with a categorical penalty. Empty corpus yields an empty,
// perfectly valid result.
func (idx *LinearIndex) Nearest(s models.Scenario, k int) []Match {
	if k <= 0 || len(idx.corpus) == 0 {
		return nil
	}

	sameType := make([]models.HistoricalScenario, 0, len(idx.corpus))
	for _, h := range idx.corpus {
		if h.DisasterType == s.DisasterType {
			sameType = append(sameType, h)
		}
	}
	pool := sameType
	if len(pool) == 0 {
		pool = idx.corpus
	}

	matches := make([]Match, 0, len(pool))
	for _, h := range pool {
		matches = append(matches, Match{Scenario: h, Distance: Distance(s, h)})
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].Scenario.ID < matches[j].Scenario.ID
	})
	if len(matches) > k {
		matches = matches[:k]
	}
	return matches
}

// Distance is a weighted normalized Euclidean distance over severity,
// population, hospital load, zone count and blocked-road count, plus a flat
// penalty when disaster types differ.
func Distance(s models.Scenario, h models.HistoricalScenario) float64 {
	severityDiff := math.Abs(float64(s.Severity-h.Severity)) / 5.0
	popDiff := math.Abs(float64(s.Population-h.Population)) / 100000.0
	hospitalDiff := math.Abs(s.HospitalLoad-h.HospitalLoad) / 100.0
	zonesDiff := math.Abs(float64(len(s.Zones)-len(h.Zones))) / 5.0
	blockedDiff := math.Abs(float64(len(s.BlockedRoads)-len(h.BlockedRoads))) / 5.0

	d := math.Sqrt(
		weightSeverity*severityDiff*severityDiff +
			weightPopulation*popDiff*popDiff +
			weightHospitalLoad*hospitalDiff*hospitalDiff +
			weightZones*zonesDiff*zonesDiff +
			weightBlocked*blockedDiff*blockedDiff)

	if s.DisasterType != h.DisasterType {
		d += typeMismatchCost
	}
	return d
}

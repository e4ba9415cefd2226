package scenario

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/reliefroute/backend/internal/models"
)

var ErrValidation = errors.New("scenario validation failed")

// Raw is the submission payload before canonicalization.
type Raw struct {
	DisasterType       string         `json:"disaster_type" validate:"required"`
	Severity           int            `json:"severity" validate:"required,min=1,max=5"`
	PopulationAffected int            `json:"population_affected" validate:"min=0"`
	ZonesAffected      []string       `json:"zones_affected" validate:"required,min=1"`
	HospitalLoad       float64        `json:"hospital_load" validate:"min=0,max=100"`
	BlockedRoads       []string       `json:"blocked_roads"`
	AvailableResources map[string]int `json:"available_resources"`
	Attributes         map[string]any `json:"attributes"`
	Notes              string         `json:"notes"`
}

// Per-type attribute contract: the keys that feed the learned feature
// vector for each disaster type. All are optional on submission; a
// scenario missing them is still valid and falls back to the rule-based
// path, but a present value must be a finite non-negative number.
var typedAttributes = map[models.DisasterType][]string{
	models.DisasterFlood:      {"water_level_m", "rainfall_mm_24h"},
	models.DisasterCyclone:    {"max_wind_speed_kmph", "translation_speed_kmph"},
	models.DisasterEarthquake: {"magnitude", "epicenter_distance_km", "building_collapse_ratio"},
	models.DisasterHeatwave:   {"max_temp_c", "humidity_pct", "duration_days"},
}

var severityLabels = map[int]string{
	1: "low", 2: "moderate", 3: "moderate", 4: "high", 5: "critical",
}

// Normalizer validates raw input and produces the canonical Scenario. No
// side effects beyond the returned value.
type Normalizer struct {
	validate *validator.Validate
}

func NewNormalizer() *Normalizer {
	return &Normalizer{validate: validator.New()}
}

func (n *Normalizer) Normalize(raw Raw) (models.Scenario, error) {
	if err := n.validate.Struct(raw); err != nil {
		return models.Scenario{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	dt := models.DisasterType(strings.ToLower(strings.TrimSpace(raw.DisasterType)))
	if !knownDisasterType(dt) {
		return models.Scenario{}, fmt.Errorf("%w: unknown disaster type %q", ErrValidation, raw.DisasterType)
	}

	attrs, coastal, err := parseAttributes(dt, raw.Attributes)
	if err != nil {
		return models.Scenario{}, err
	}

	s := models.Scenario{
		ID:            uuid.NewString(),
		SubmittedAt:   time.Now().UTC(),
		DisasterType:  dt,
		Severity:      raw.Severity,
		SeverityLabel: severityLabels[raw.Severity],
		Population:    raw.PopulationAffected,
		Zones:         canonicalSet(raw.ZonesAffected),
		HospitalLoad:  raw.HospitalLoad,
		BlockedRoads:  canonicalSet(raw.BlockedRoads),
		Available:     raw.AvailableResources,
		Attributes:    attrs,
		Coastal:       coastal,
		Notes:         strings.TrimSpace(raw.Notes),

		LogPopulation:      math.Log1p(float64(raw.PopulationAffected)),
		NormalizedSeverity: float64(raw.Severity) / 5.0,
	}
	if s.BlockedRoads == nil {
		s.BlockedRoads = []string{}
	}
	return s, nil
}

func parseAttributes(dt models.DisasterType, raw map[string]any) (map[string]float64, bool, error) {
	attrs := map[string]float64{}
	coastal := false
	for key, val := range raw {
		switch v := val.(type) {
		case float64:
			attrs[key] = v
		case int:
			attrs[key] = float64(v)
		case bool:
			if v {
				attrs[key] = 1
			}
		case string:
			str := strings.ToLower(strings.TrimSpace(v))
			switch key {
			case "inland_or_coastal":
				coastal = str == "coastal"
			case "cyclone_direction":
				// Eastward tracks push the storm surge onshore here.
				if str == "ne" || str == "e" || str == "se" {
					attrs["eastward"] = 1
				} else {
					attrs["eastward"] = 0
				}
			default:
				return nil, false, fmt.Errorf("%w: attribute %q must be numeric", ErrValidation, key)
			}
		default:
			return nil, false, fmt.Errorf("%w: attribute %q has unsupported type", ErrValidation, key)
		}
	}

	for _, key := range typedAttributes[dt] {
		v, ok := attrs[key]
		if !ok {
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return nil, false, fmt.Errorf("%w: attribute %q out of range", ErrValidation, key)
		}
	}
	return attrs, coastal, nil
}

func canonicalSet(values []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func knownDisasterType(dt models.DisasterType) bool {
	for _, known := range models.KnownDisasterTypes() {
		if dt == known {
			return true
		}
	}
	return false
}

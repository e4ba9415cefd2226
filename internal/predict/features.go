package predict

import (
	"math"

	"github.com/reliefroute/backend/internal/models"
)

// FeatureNames is the fixed layout of the numeric feature vector shared by
// the demand models and the risk classifier.
var FeatureNames = []string{
	"severity", "log_population", "hospital_load", "zones_count", "blocked_roads",
	"is_flood", "is_cyclone", "is_earthquake", "is_heatwave",
	"flood_water_level", "flood_rainfall", "flood_coastal",
	"cyclone_wind", "cyclone_speed", "cyclone_eastward",
	"eq_magnitude", "eq_distance", "eq_collapse",
	"heat_temp", "heat_humidity", "heat_duration",
}

// Attribute keys a fully specified submission carries per disaster type.
// They are optional at intake; a scenario missing any of them keeps the
// rule-based path.
var requiredAttrs = map[models.DisasterType][]string{
	models.DisasterFlood:      {"water_level_m", "rainfall_mm_24h"},
	models.DisasterCyclone:    {"max_wind_speed_kmph", "translation_speed_kmph"},
	models.DisasterEarthquake: {"magnitude", "epicenter_distance_km", "building_collapse_ratio"},
	models.DisasterHeatwave:   {"max_temp_c", "humidity_pct", "duration_days"},
}

// Features builds the normalized feature vector for a scenario. The second
// return value reports whether the vector is fully specified for the
// scenario's disaster type; the learned strategy only runs when it is.
func Features(s models.Scenario) ([]float64, bool) {
	f := make([]float64, 0, len(FeatureNames))
	f = append(f,
		float64(s.Severity)/5.0,
		math.Log1p(float64(s.Population))/15.0,
		s.HospitalLoad/100.0,
		float64(len(s.Zones))/5.0,
		float64(len(s.BlockedRoads))/5.0,
	)

	oneHot := map[models.DisasterType]int{
		models.DisasterFlood:      0,
		models.DisasterCyclone:    1,
		models.DisasterEarthquake: 2,
		models.DisasterHeatwave:   3,
	}
	hot := []float64{0, 0, 0, 0}
	idx, encoded := oneHot[s.DisasterType]
	if encoded {
		hot[idx] = 1
	} else {
		// Unencoded types share the mass evenly, as the training data does.
		hot = []float64{0.25, 0.25, 0.25, 0.25}
	}
	f = append(f, hot...)

	attr := func(key string) float64 { return s.Attributes[key] }
	flood := []float64{0, 0, 0}
	cyclone := []float64{0, 0, 0}
	quake := []float64{0, 0, 0}
	heat := []float64{0, 0, 0}
	switch s.DisasterType {
	case models.DisasterFlood:
		coastal := 0.0
		if s.Coastal {
			coastal = 1.0
		}
		flood = []float64{attr("water_level_m"), attr("rainfall_mm_24h") / 500.0, coastal}
	case models.DisasterCyclone:
		cyclone = []float64{
			attr("max_wind_speed_kmph") / 200.0,
			attr("translation_speed_kmph") / 50.0,
			attr("eastward"),
		}
	case models.DisasterEarthquake:
		quake = []float64{
			attr("magnitude") / 10.0,
			attr("epicenter_distance_km") / 200.0,
			attr("building_collapse_ratio"),
		}
	case models.DisasterHeatwave:
		heat = []float64{
			attr("max_temp_c") / 50.0,
			attr("humidity_pct") / 100.0,
			attr("duration_days") / 10.0,
		}
	}
	f = append(f, flood...)
	f = append(f, cyclone...)
	f = append(f, quake...)
	f = append(f, heat...)

	complete := encoded
	for _, key := range requiredAttrs[s.DisasterType] {
		if _, ok := s.Attributes[key]; !ok {
			complete = false
		}
	}
	for _, v := range f {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			complete = false
		}
	}
	return f, complete
}

// HistoricalFeatures converts a corpus record to the same layout. Historical
// records carry no per-type attributes, so those slots stay zero.
func HistoricalFeatures(h models.HistoricalScenario) []float64 {
	s := models.Scenario{
		DisasterType: h.DisasterType,
		Severity:     h.Severity,
		Population:   h.Population,
		Zones:        h.Zones,
		HospitalLoad: h.HospitalLoad,
		BlockedRoads: h.BlockedRoads,
	}
	f, _ := Features(s)
	return f
}

package models

import (
	"encoding/json"
	"fmt"
	"time"
)

type DisasterType string

const (
	DisasterFlood      DisasterType = "flood"
	DisasterCyclone    DisasterType = "cyclone"
	DisasterEarthquake DisasterType = "earthquake"
	DisasterHeatwave   DisasterType = "heatwave"
	DisasterMedical    DisasterType = "medical_emergency"
)

func KnownDisasterTypes() []DisasterType {
	return []DisasterType{DisasterFlood, DisasterCyclone, DisasterEarthquake, DisasterHeatwave, DisasterMedical}
}

type VehicleClass string

const (
	VehicleTruck      VehicleClass = "truck"
	VehicleBoat       VehicleClass = "boat"
	VehicleDrone      VehicleClass = "drone"
	VehicleHelicopter VehicleClass = "helicopter"
)

// RiskLevel is ordered: LOW < MODERATE < HIGH < CRITICAL.
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskModerate
	RiskHigh
	RiskCritical
)

func (r RiskLevel) String() string {
	switch r {
	case RiskCritical:
		return "CRITICAL"
	case RiskHigh:
		return "HIGH"
	case RiskModerate:
		return "MODERATE"
	default:
		return "LOW"
	}
}

func (r RiskLevel) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.String() + `"`), nil
}

func (r *RiskLevel) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch s {
	case "LOW":
		*r = RiskLow
	case "MODERATE":
		*r = RiskModerate
	case "HIGH":
		*r = RiskHigh
	case "CRITICAL":
		*r = RiskCritical
	default:
		return fmt.Errorf("unknown risk level %q", s)
	}
	return nil
}

func MaxRisk(a, b RiskLevel) RiskLevel {
	if a > b {
		return a
	}
	return b
}

// ResourceCategory identifies a deliverable supply category.
type ResourceCategory string

const (
	ResourceMedicalKits ResourceCategory = "medical_kits"
	ResourceFoodPackets ResourceCategory = "food_packets"
	ResourceWaterLiters ResourceCategory = "water_liters"
	ResourceShelterKits ResourceCategory = "shelter_kits"
)

func CoreCategories() []ResourceCategory {
	return []ResourceCategory{ResourceMedicalKits, ResourceFoodPackets, ResourceWaterLiters, ResourceShelterKits}
}

// Scenario is the canonical, immutable form of one submitted disaster event.
// Produced only by the normalizer; never mutated afterwards.
type Scenario struct {
	ID            string             `json:"id"`
	SubmittedAt   time.Time          `json:"submitted_at"`
	DisasterType  DisasterType       `json:"disaster_type"`
	Severity      int                `json:"severity"`
	SeverityLabel string             `json:"severity_label"`
	Population    int                `json:"population_affected"`
	Zones         []string           `json:"zones_affected"`
	HospitalLoad  float64            `json:"hospital_load"`
	BlockedRoads  []string           `json:"blocked_roads"`
	Available     map[string]int     `json:"available_resources,omitempty"`
	Attributes    map[string]float64 `json:"attributes,omitempty"`
	Coastal       bool               `json:"coastal,omitempty"`
	Notes         string             `json:"notes,omitempty"`

	// Derived at normalization time.
	LogPopulation      float64 `json:"log_population"`
	NormalizedSeverity float64 `json:"normalized_severity"`
}

// HistoricalScenario is a past scenario with its recorded deployment outcome.
// Read-only reference data owned by the corpus.
type HistoricalScenario struct {
	ID           string         `json:"id"`
	DisasterType DisasterType   `json:"disaster_type"`
	Severity     int            `json:"severity"`
	Population   int            `json:"population_affected"`
	Zones        []string       `json:"zones_affected"`
	HospitalLoad float64        `json:"hospital_load"`
	BlockedRoads []string       `json:"blocked_roads"`
	Deployed     map[string]int `json:"resources_deployed"`
	Outcome      string         `json:"outcome"`
}

type PredictionMethod string

const (
	MethodLearned   PredictionMethod = "learned"
	MethodRuleBased PredictionMethod = "rule_based"
	MethodBlended   PredictionMethod = "blended"
)

// PredictionResult is one category's demand estimate.
type PredictionResult struct {
	Category   ResourceCategory   `json:"category"`
	Quantity   int                `json:"quantity"`
	Unit       string             `json:"unit"`
	Method     PredictionMethod   `json:"method"`
	Importance map[string]float64 `json:"feature_importance,omitempty"`
}

// RiskAssessment is the composed risk verdict for one scenario.
type RiskAssessment struct {
	Level   RiskLevel          `json:"level"`
	Method  PredictionMethod   `json:"method"`
	Weights map[string]float64 `json:"contributing_weights,omitempty"`
}

type RouteStatus string

const (
	RouteOnTime    RouteStatus = "on_time"
	RouteDelayed   RouteStatus = "delayed"
	RouteCompleted RouteStatus = "completed"
	RouteCancelled RouteStatus = "cancelled"
)

// Route is a planned path for one vehicle class between a depot and a zone.
type Route struct {
	ID          string       `json:"id"`
	Depot       string       `json:"depot"`
	Zone        string       `json:"zone"`
	Vehicle     VehicleClass `json:"vehicle"`
	Path        []string     `json:"path"`
	Roads       []string     `json:"roads"`
	DistanceKm  float64      `json:"distance_km"`
	TimeMin     float64      `json:"time_min"`
	Status      RouteStatus  `json:"status"`
	Alternative bool         `json:"alternative,omitempty"`
}

type AllocationStatus string

const (
	AllocPlanned   AllocationStatus = "planned"
	AllocInTransit AllocationStatus = "in_transit"
	AllocDelivered AllocationStatus = "delivered"
	AllocBlocked   AllocationStatus = "blocked"
)

// Allocation is a planned draw of one resource category from a depot to a zone.
type Allocation struct {
	ID       string           `json:"id"`
	Category ResourceCategory `json:"category"`
	Quantity int              `json:"quantity"`
	Depot    string           `json:"depot"`
	Zone     string           `json:"zone"`
	Status   AllocationStatus `json:"status"`
}

type DecisionStatus string

const (
	DecisionPending  DecisionStatus = "pending"
	DecisionApproved DecisionStatus = "approved"
	DecisionAborted  DecisionStatus = "aborted"
	DecisionModified DecisionStatus = "modified"
)

// AuditRecord is one immutable entry in a decision's audit trail.
type AuditRecord struct {
	Actor      string         `json:"actor"`
	At         time.Time      `json:"at"`
	FromStatus DecisionStatus `json:"from_status"`
	ToStatus   DecisionStatus `json:"to_status"`
	Note       string         `json:"note,omitempty"`
}

// SimilarScenario is a ranked historical match attached to a decision.
type SimilarScenario struct {
	ID           string         `json:"id"`
	Distance     float64        `json:"distance"`
	Severity     int            `json:"severity"`
	HospitalLoad float64        `json:"hospital_load"`
	Deployed     map[string]int `json:"resources_deployed,omitempty"`
}

// Decision is the aggregate output for one scenario submission.
type Decision struct {
	ID              string             `json:"id"`
	CreatedAt       time.Time          `json:"created_at"`
	Scenario        Scenario           `json:"scenario"`
	Summary         string             `json:"scenario_summary"`
	Risk            RiskAssessment     `json:"risk"`
	Predictions     []PredictionResult `json:"predictions"`
	SupplyGap       map[string]int     `json:"supply_gap"`
	TotalGap        int                `json:"total_gap"`
	Coverage        float64            `json:"estimated_coverage"`
	Routes          []Route            `json:"selected_routes"`
	Allocations     []Allocation       `json:"allocations"`
	Actions         []string           `json:"recommended_actions"`
	Similar         []SimilarScenario  `json:"similar_scenarios"`
	Weather         map[string]any     `json:"weather_snapshot,omitempty"`
	BlockedZones    []string           `json:"blocked_zones,omitempty"`
	Status          DecisionStatus     `json:"status"`
	Audit           []AuditRecord      `json:"audit"`
	VehicleEstimate map[string]int     `json:"vehicle_estimate,omitempty"`
}

// Depot is a physical inventory location with per-category stock.
type Depot struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Location  string         `json:"location"`
	Lat       float64        `json:"lat"`
	Lon       float64        `json:"lon"`
	Node      string         `json:"node"`
	Resources map[string]int `json:"resources"`
	Vehicles  map[string]int `json:"vehicles"`
}

// Zone is an affected area requiring delivery.
type Zone struct {
	Name       string  `json:"name"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Node       string  `json:"node"`
	Population int     `json:"population"`
	Hospitals  int     `json:"hospitals"`
}

// ActivityEntry is one event in the bounded activity log.
type ActivityEntry struct {
	ID        string         `json:"id"`
	At        time.Time      `json:"timestamp"`
	EventType string         `json:"event_type"`
	Message   string         `json:"description"`
	Details   map[string]any `json:"details,omitempty"`
}

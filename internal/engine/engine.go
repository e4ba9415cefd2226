package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/reliefroute/backend/internal/allocation"
	"github.com/reliefroute/backend/internal/corpus"
	"github.com/reliefroute/backend/internal/ledger"
	"github.com/reliefroute/backend/internal/models"
	"github.com/reliefroute/backend/internal/predict"
	"github.com/reliefroute/backend/internal/routing"
	"github.com/reliefroute/backend/internal/scenario"
	"github.com/reliefroute/backend/internal/similarity"
)

var ErrUnknownZone = errors.New("unknown zone")

// Engine runs the full evaluation pipeline for one submitted scenario:
// normalize, predict demand and risk, match history, allocate stock, plan
// routes, record the pending decision.
type Engine struct {
	Normalizer *scenario.Normalizer
	Predictor  *predict.DemandPredictor
	Risk       *predict.RiskClassifier
	Planner    *routing.Planner
	Ledger     *ledger.Ledger
	Inventory  *allocation.Inventory
	Corpus     *corpus.Corpus
	Models     *predict.ModelStore
	Activity   *ActivityLog
	Logger     zerolog.Logger
	MinSamples int
}

// Evaluate is side-effect free until the final Record: a failed evaluation
// leaves no decision and no inventory reservation behind.
func (e *Engine) Evaluate(ctx context.Context, raw scenario.Raw) (models.Decision, error) {
	s, err := e.Normalizer.Normalize(raw)
	if err != nil {
		return models.Decision{}, err
	}

	// The three read-only analyses are independent of each other.
	var (
		predictions []models.PredictionResult
		risk        models.RiskAssessment
		matches     []similarity.Match
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		predictions = e.Predictor.Predict(s)
		return nil
	})
	g.Go(func() error {
		risk = e.Risk.Classify(s)
		return nil
	})
	g.Go(func() error {
		matches = e.nearest(s)
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.Decision{}, err
	}

	allocator := &allocation.Allocator{Inventory: e.Inventory, Zones: e.Corpus.Zones}
	plan := allocator.Allocate(s, predictions, e.depotCost(s))

	routes := e.planRoutes(s, plan.Allocations)

	d := models.Decision{
		ID:              uuid.NewString(),
		CreatedAt:       time.Now().UTC(),
		Scenario:        s,
		Risk:            risk,
		Predictions:     predictions,
		SupplyGap:       plan.SupplyGap,
		Routes:          routes,
		Allocations:     plan.Allocations,
		Similar:         similarList(matches),
		Weather:         weatherSnapshot(s),
		BlockedZones:    plan.BlockedZones,
		Status:          models.DecisionPending,
		VehicleEstimate: predict.VehicleEstimate(s),
	}
	d.Summary = summaryLine(s, risk)
	d.Actions = recommendedActions(s, risk, plan.BlockedZones)
	d.TotalGap, d.Coverage = coverage(plan)

	if err := e.Ledger.Record(ctx, d); err != nil {
		// The reservation is only held by the recorded decision; give the
		// stock back if recording failed.
		allocation.Release(e.Inventory, plan.Allocations)
		return models.Decision{}, err
	}

	e.Logger.Info().
		Str("decision_id", d.ID).
		Str("disaster_type", string(s.DisasterType)).
		Int("severity", s.Severity).
		Str("risk", risk.Level.String()).
		Int("total_gap", d.TotalGap).
		Msg("decision recorded")
	if e.Activity != nil {
		e.Activity.Append("decision_created", d.Summary, map[string]any{
			"decision_id": d.ID,
			"risk":        risk.Level.String(),
		})
	}
	return d, nil
}

func (e *Engine) nearest(s models.Scenario) []similarity.Match {
	if e.Predictor.Index == nil {
		return nil
	}
	k := e.Predictor.K
	if k <= 0 {
		k = 5
	}
	return e.Predictor.Index.Nearest(s, k)
}

// depotCost ranks depots for the allocator by truck travel time under the
// scenario's blocked-road overlay.
func (e *Engine) depotCost(s models.Scenario) allocation.DepotCostFn {
	return func(depotID, zoneName string) (float64, bool) {
		depot, ok := e.Inventory.Depot(depotID)
		if !ok {
			return 0, false
		}
		zone, ok := e.Corpus.Zone(zoneName)
		if !ok {
			return 0, false
		}
		res, err := e.Planner.Plan(routing.Request{
			From:         depot.Node,
			To:           zone.Node,
			Vehicle:      models.VehicleTruck,
			BlockedRoads: s.BlockedRoads,
		})
		if err != nil {
			return 0, false
		}
		return res.TimeMin, true
	}
}

// planRoutes produces one route per distinct (depot, zone) pair that
// received stock. When the scenario has blocked roads an alternative route
// avoiding the primary's roads is attached too, if one exists.
func (e *Engine) planRoutes(s models.Scenario, allocations []models.Allocation) []models.Route {
	type pair struct{ depot, zone string }
	seen := map[pair]bool{}
	var pairs []pair
	for _, a := range allocations {
		if a.Status != models.AllocPlanned || a.Depot == "" {
			continue
		}
		p := pair{a.Depot, a.Zone}
		if !seen[p] {
			seen[p] = true
			pairs = append(pairs, p)
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].zone != pairs[j].zone {
			return pairs[i].zone < pairs[j].zone
		}
		return pairs[i].depot < pairs[j].depot
	})

	vehicle := routeVehicle(s)
	var routes []models.Route
	for _, p := range pairs {
		depot, _ := e.Inventory.Depot(p.depot)
		zone, _ := e.Corpus.Zone(p.zone)
		req := routing.Request{
			From:         depot.Node,
			To:           zone.Node,
			Vehicle:      vehicle,
			BlockedRoads: s.BlockedRoads,
		}
		primary, err := e.Planner.Plan(req)
		if err != nil {
			// Reachability was already checked during allocation; a race
			// here only costs a missing route, not a failed decision.
			e.Logger.Warn().Str("depot", p.depot).Str("zone", p.zone).Err(err).
				Msg("route planning failed after allocation")
			continue
		}
		routes = append(routes, models.Route{
			ID:         uuid.NewString(),
			Depot:      p.depot,
			Zone:       p.zone,
			Vehicle:    vehicle,
			Path:       primary.Path,
			Roads:      primary.Roads,
			DistanceKm: primary.DistanceKm,
			TimeMin:    primary.TimeMin,
			Status:     routeStatus(primary.TimeMin),
		})

		if len(s.BlockedRoads) == 0 {
			continue
		}
		alt, err := e.Planner.Alternative(req, primary.Roads)
		if err != nil {
			continue
		}
		routes = append(routes, models.Route{
			ID:          uuid.NewString(),
			Depot:       p.depot,
			Zone:        p.zone,
			Vehicle:     vehicle,
			Path:        alt.Path,
			Roads:       alt.Roads,
			DistanceKm:  alt.DistanceKm,
			TimeMin:     alt.TimeMin,
			Status:      routeStatus(alt.TimeMin),
			Alternative: true,
		})
	}
	return routes
}

// Severe floods put trucks underwater on arterial roads.
func routeVehicle(s models.Scenario) models.VehicleClass {
	if s.DisasterType == models.DisasterFlood && s.Severity >= 4 {
		return models.VehicleBoat
	}
	return models.VehicleTruck
}

func routeStatus(timeMin float64) models.RouteStatus {
	if timeMin >= 90 {
		return models.RouteDelayed
	}
	return models.RouteOnTime
}

func similarList(matches []similarity.Match) []models.SimilarScenario {
	out := make([]models.SimilarScenario, 0, len(matches))
	for _, m := range matches {
		out = append(out, models.SimilarScenario{
			ID:           m.Scenario.ID,
			Distance:     m.Distance,
			Severity:     m.Scenario.Severity,
			HospitalLoad: m.Scenario.HospitalLoad,
			Deployed:     m.Scenario.Deployed,
		})
	}
	return out
}

// coverage aggregates allocated versus demanded units across categories.
func coverage(plan allocation.Plan) (totalGap int, pct float64) {
	demand, allocated := 0, 0
	for cat, d := range plan.Demand {
		demand += d
		allocated += plan.Allocated[cat]
		totalGap += plan.SupplyGap[cat]
	}
	if demand == 0 {
		return 0, 100
	}
	pct = math.Min(100, math.Round(100*float64(allocated)/float64(demand)))
	return totalGap, pct
}

// TrainModels refits the learned models from the historical corpus and
// swaps them in atomically. In-flight evaluations keep the set they loaded.
func (e *Engine) TrainModels() (*predict.ModelSet, error) {
	set, err := e.Models.Train(e.Corpus.Historical, e.MinSamples, e.Logger)
	if err != nil {
		return nil, err
	}
	if e.Activity != nil {
		e.Activity.Append("models_trained",
			fmt.Sprintf("models retrained on %d historical scenarios", set.Samples),
			nil)
	}
	return set, nil
}

// DispatchRequest is a manual stock movement outside a recorded decision.
type DispatchRequest struct {
	Depot    string                  `json:"depot" validate:"required"`
	Zone     string                  `json:"zone" validate:"required"`
	Category models.ResourceCategory `json:"category" validate:"required"`
	Quantity int                     `json:"quantity" validate:"required,min=1"`
	Vehicle  models.VehicleClass     `json:"vehicle"`
}

// Dispatch draws stock immediately and returns the granted allocation with
// its planned route. Partial grants are not an error; callers read Quantity.
func (e *Engine) Dispatch(req DispatchRequest) (models.Allocation, *models.Route, error) {
	depot, ok := e.Inventory.Depot(req.Depot)
	if !ok {
		return models.Allocation{}, nil, fmt.Errorf("unknown depot %q", req.Depot)
	}
	zone, ok := e.Corpus.Zone(req.Zone)
	if !ok {
		return models.Allocation{}, nil, fmt.Errorf("%w: %q", ErrUnknownZone, req.Zone)
	}

	granted := e.Inventory.Draw(req.Depot, req.Category, req.Quantity)
	alloc := models.Allocation{
		ID:       uuid.NewString(),
		Category: req.Category,
		Quantity: granted,
		Depot:    req.Depot,
		Zone:     req.Zone,
		Status:   models.AllocInTransit,
	}

	vehicle := req.Vehicle
	if vehicle == "" {
		vehicle = models.VehicleTruck
	}
	var route *models.Route
	res, err := e.Planner.Plan(routing.Request{From: depot.Node, To: zone.Node, Vehicle: vehicle})
	if err == nil {
		route = &models.Route{
			ID:         uuid.NewString(),
			Depot:      req.Depot,
			Zone:       req.Zone,
			Vehicle:    vehicle,
			Path:       res.Path,
			Roads:      res.Roads,
			DistanceKm: res.DistanceKm,
			TimeMin:    res.TimeMin,
			Status:     routeStatus(res.TimeMin),
		}
	}

	if e.Activity != nil {
		e.Activity.Append("manual_dispatch",
			fmt.Sprintf("dispatched %d %s from %s to %s", granted, req.Category, req.Depot, req.Zone),
			map[string]any{"allocation_id": alloc.ID})
	}
	return alloc, route, nil
}

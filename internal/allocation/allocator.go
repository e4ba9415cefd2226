package allocation

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/reliefroute/backend/internal/models"
)

// DepotCostFn returns the route cost from a depot to a zone under the
// current blocked-road overlay. The second return reports reachability.
type DepotCostFn func(depotID, zone string) (float64, bool)

// Plan is the allocator's output for one scenario.
type Plan struct {
	Allocations []models.Allocation
	// SupplyGap per category: demand minus allocated, floored at zero.
	SupplyGap map[string]int
	Allocated map[string]int
	Demand    map[string]int
	// BlockedZones had no reachable depot; their allocations carry status
	// "blocked" and still reserve no stock.
	BlockedZones []string
}

// Allocator greedily matches predicted demand against depot inventories.
// Deterministic given the same inventory snapshot and zone weights.
type Allocator struct {
	Inventory *Inventory
	Zones     []models.Zone
}

// Allocate processes zones in descending risk-contribution order (scenario
// severity × zone population), splitting each zone's share of demand across
// the nearest depots with remaining stock.
func (a *Allocator) Allocate(s models.Scenario, predictions []models.PredictionResult, cost DepotCostFn) Plan {
	plan := Plan{
		SupplyGap: map[string]int{},
		Allocated: map[string]int{},
		Demand:    map[string]int{},
	}

	zones := a.scenarioZones(s)
	shares := zoneShares(zones)

	blocked := map[string]bool{}
	type rankedDepot struct {
		id   string
		cost float64
	}
	depotsByZone := map[string][]rankedDepot{}
	for _, z := range zones {
		var ranked []rankedDepot
		for _, depotID := range a.Inventory.DepotIDs() {
			c, reachable := cost(depotID, z.Name)
			if !reachable {
				continue
			}
			ranked = append(ranked, rankedDepot{id: depotID, cost: c})
		}
		sort.Slice(ranked, func(i, j int) bool {
			if ranked[i].cost != ranked[j].cost {
				return ranked[i].cost < ranked[j].cost
			}
			return ranked[i].id < ranked[j].id
		})
		if len(ranked) == 0 {
			blocked[z.Name] = true
			plan.BlockedZones = append(plan.BlockedZones, z.Name)
		}
		depotsByZone[z.Name] = ranked
	}

	for _, p := range predictions {
		plan.Demand[string(p.Category)] = p.Quantity
	}

	for _, p := range predictions {
		cat := p.Category
		remaining := p.Quantity
		for i, z := range zones {
			want := int(math.Ceil(float64(p.Quantity) * shares[i]))
			if want > remaining {
				want = remaining
			}
			if want <= 0 {
				continue
			}

			if blocked[z.Name] {
				// No reachable depot: record the need without reserving stock.
				plan.Allocations = append(plan.Allocations, models.Allocation{
					ID:       uuid.NewString(),
					Category: cat,
					Quantity: want,
					Zone:     z.Name,
					Status:   models.AllocBlocked,
				})
				remaining -= want
				continue
			}

			for _, depot := range depotsByZone[z.Name] {
				if want <= 0 {
					break
				}
				granted := a.Inventory.Draw(depot.id, cat, want)
				if granted == 0 {
					continue
				}
				plan.Allocations = append(plan.Allocations, models.Allocation{
					ID:       uuid.NewString(),
					Category: cat,
					Quantity: granted,
					Depot:    depot.id,
					Zone:     z.Name,
					Status:   models.AllocPlanned,
				})
				plan.Allocated[string(cat)] += granted
				want -= granted
				remaining -= granted
			}
			// Whatever this zone could not source becomes supply gap below.
		}
		gap := plan.Demand[string(cat)] - plan.Allocated[string(cat)]
		if gap < 0 {
			gap = 0
		}
		plan.SupplyGap[string(cat)] = gap
	}

	return plan
}

// scenarioZones resolves the scenario's zone names against the known zone
// set and orders them by severity × population, highest contribution first.
func (a *Allocator) scenarioZones(s models.Scenario) []models.Zone {
	byName := make(map[string]models.Zone, len(a.Zones))
	for _, z := range a.Zones {
		byName[z.Name] = z
	}
	zones := make([]models.Zone, 0, len(s.Zones))
	for _, name := range s.Zones {
		if z, ok := byName[name]; ok {
			zones = append(zones, z)
		} else {
			zones = append(zones, models.Zone{Name: name, Population: 1})
		}
	}
	sort.SliceStable(zones, func(i, j int) bool {
		wi := float64(s.Severity) * float64(zones[i].Population)
		wj := float64(s.Severity) * float64(zones[j].Population)
		if wi != wj {
			return wi > wj
		}
		return zones[i].Name < zones[j].Name
	})
	return zones
}

func zoneShares(zones []models.Zone) []float64 {
	total := 0.0
	for _, z := range zones {
		total += float64(z.Population)
	}
	shares := make([]float64, len(zones))
	for i, z := range zones {
		if total > 0 {
			shares[i] = float64(z.Population) / total
		} else if len(zones) > 0 {
			shares[i] = 1.0 / float64(len(zones))
		}
	}
	return shares
}

// Release returns every planned allocation's stock to its depot. Used when a
// decision is aborted.
func Release(inv *Inventory, allocations []models.Allocation) {
	for _, al := range allocations {
		if al.Status == models.AllocBlocked || al.Depot == "" {
			continue
		}
		inv.Release(al.Depot, al.Category, al.Quantity)
	}
}

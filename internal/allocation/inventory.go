package allocation

import (
	"sync"

	"github.com/reliefroute/backend/internal/models"
)

// Inventory is the shared depot stock. The depot map is fixed at
// construction; draws are serialized per depot so the allocation invariant
// holds when concurrent scenarios compete for the same stock: total drawn
// never exceeds what the depot held.
type Inventory struct {
	depots map[string]*depotStock
	order  []string
	meta   map[string]models.Depot
}

type depotStock struct {
	mu    sync.Mutex
	stock map[string]int
}

func NewInventory(depots []models.Depot) *Inventory {
	inv := &Inventory{
		depots: make(map[string]*depotStock, len(depots)),
		meta:   make(map[string]models.Depot, len(depots)),
	}
	for _, d := range depots {
		stock := make(map[string]int, len(d.Resources))
		for k, v := range d.Resources {
			stock[k] = v
		}
		inv.depots[d.ID] = &depotStock{stock: stock}
		inv.order = append(inv.order, d.ID)
		inv.meta[d.ID] = d
	}
	return inv
}

func (inv *Inventory) DepotIDs() []string {
	return append([]string{}, inv.order...)
}

func (inv *Inventory) Depot(id string) (models.Depot, bool) {
	d, ok := inv.meta[id]
	return d, ok
}

// Available returns the current stock of one category at one depot.
func (inv *Inventory) Available(depotID string, cat models.ResourceCategory) int {
	ds, ok := inv.depots[depotID]
	if !ok {
		return 0
	}
	ds.mu.Lock()
	defer ds.mu.Unlock()
	return ds.stock[string(cat)]
}

// Draw removes up to qty units and returns how many were actually granted.
// The check and the decrement happen under the depot lock.
func (inv *Inventory) Draw(depotID string, cat models.ResourceCategory, qty int) int {
	if qty <= 0 {
		return 0
	}
	ds, ok := inv.depots[depotID]
	if !ok {
		return 0
	}
	ds.mu.Lock()
	defer ds.mu.Unlock()
	have := ds.stock[string(cat)]
	if have <= 0 {
		return 0
	}
	granted := qty
	if granted > have {
		granted = have
	}
	ds.stock[string(cat)] = have - granted
	return granted
}

// Release returns previously drawn stock, e.g. when a decision is aborted.
func (inv *Inventory) Release(depotID string, cat models.ResourceCategory, qty int) {
	if qty <= 0 {
		return
	}
	ds, ok := inv.depots[depotID]
	if !ok {
		return
	}
	ds.mu.Lock()
	ds.stock[string(cat)] += qty
	ds.mu.Unlock()
}

// Snapshot returns the depots with their current stock levels.
func (inv *Inventory) Snapshot() []models.Depot {
	out := make([]models.Depot, 0, len(inv.order))
	for _, id := range inv.order {
		d := inv.meta[id]
		ds := inv.depots[id]
		ds.mu.Lock()
		resources := make(map[string]int, len(ds.stock))
		for k, v := range ds.stock {
			resources[k] = v
		}
		ds.mu.Unlock()
		d.Resources = resources
		out = append(out, d)
	}
	return out
}

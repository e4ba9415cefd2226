package routing

import (
	"container/heap"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/reliefroute/backend/internal/models"
	"github.com/reliefroute/backend/internal/roadnet"
)

var (
	ErrRouteUnavailable = errors.New("no feasible route")
	ErrUnknownNode      = errors.New("unknown node")
)

// Per-class multipliers applied to edge traversal time. Edge times in the
// network data are calibrated for trucks.
var vehicleTimeFactor = map[models.VehicleClass]float64{
	models.VehicleTruck:      1.0,
	models.VehicleBoat:       1.6,
	models.VehicleDrone:      0.6,
	models.VehicleHelicopter: 0.4,
}

type Planner struct {
	Net *roadnet.Network
}

type Request struct {
	From         string
	To           string
	Vehicle      models.VehicleClass
	BlockedRoads []string
	// AvoidRoads is added on top of BlockedRoads when re-planning around a
	// previously selected route.
	AvoidRoads []string
}

type Result struct {
	Path       []string
	Roads      []string
	DistanceKm float64
	TimeMin    float64
}

type searchNode struct {
	id    string
	f     float64
	g     float64
	hops  int
	path  []string
	roads []string
	dist  float64
}

type openQueue []*searchNode

func (q openQueue) Len() int { return len(q) }

// Equal-cost candidates are ordered by hop count then by the lexicographic
// node-id sequence so planning is deterministic.
func (q openQueue) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	if q[i].hops != q[j].hops {
		return q[i].hops < q[j].hops
	}
	return strings.Join(q[i].path, "/") < strings.Join(q[j].path, "/")
}

func (q openQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *openQueue) Push(x any) { *q = append(*q, x.(*searchNode)) }

func (q *openQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// Node coordinates in the network data are coarse, so raw straight-line
// distance can exceed real edge travel time. Damping keeps the heuristic
// below the true remaining cost.
const heuristicDamping = 0.3

// Plan runs A* over the blocked-road overlay for one (from, to, vehicle)
// triple. Cost is traversal time for the vehicle class; the heuristic is the
// damped straight-line distance converted to time, which stays admissible.
func (p *Planner) Plan(req Request) (Result, error) {
	if !p.Net.HasNode(req.From) {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownNode, req.From)
	}
	if !p.Net.HasNode(req.To) {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownNode, req.To)
	}

	factor := vehicleTimeFactor[req.Vehicle]
	if factor == 0 {
		factor = 1.0
	}

	blocked := append([]string{}, req.BlockedRoads...)
	blocked = append(blocked, req.AvoidRoads...)
	overlay := p.Net.Overlay(blocked)

	h := func(id string) float64 {
		return overlay.StraightLineKm(id, req.To) * heuristicDamping * factor
	}

	start := &searchNode{id: req.From, f: h(req.From), path: []string{req.From}}
	open := openQueue{start}
	heap.Init(&open)
	closedSet := map[string]bool{}
	gScore := map[string]float64{req.From: 0}

	for open.Len() > 0 {
		cur := heap.Pop(&open).(*searchNode)
		if cur.id == req.To {
			return Result{
				Path:       cur.path,
				Roads:      cur.roads,
				DistanceKm: math.Round(cur.dist*100) / 100,
				TimeMin:    math.Round(cur.g*10) / 10,
			}, nil
		}
		if closedSet[cur.id] {
			continue
		}
		closedSet[cur.id] = true

		for _, e := range overlay.Neighbors(cur.id) {
			if closedSet[e.To] {
				continue
			}
			g := cur.g + e.TimeMin*factor
			if best, seen := gScore[e.To]; seen && g > best {
				continue
			}
			gScore[e.To] = g
			path := append(append([]string{}, cur.path...), e.To)
			roads := append(append([]string{}, cur.roads...), e.Road)
			heap.Push(&open, &searchNode{
				id:    e.To,
				f:     g + h(e.To),
				g:     g,
				hops:  cur.hops + 1,
				path:  path,
				roads: roads,
				dist:  cur.dist + e.DistanceKm,
			})
		}
	}

	return Result{}, fmt.Errorf("%s -> %s (%s): %w", req.From, req.To, req.Vehicle, ErrRouteUnavailable)
}

// Alternative re-plans the same pair while avoiding the roads used by the
// primary route. The caller flags the result as an alternative; it does not
// replace the primary unless explicitly swapped.
func (p *Planner) Alternative(req Request, primaryRoads []string) (Result, error) {
	req.AvoidRoads = append(append([]string{}, req.AvoidRoads...), primaryRoads...)
	return p.Plan(req)
}

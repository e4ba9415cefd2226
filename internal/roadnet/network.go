package roadnet

import (
	"github.com/reliefroute/backend/internal/utils"
)

type NodeKind string

const (
	NodeDepot    NodeKind = "depot"
	NodeJunction NodeKind = "junction"
	NodeZone     NodeKind = "zone"
)

type Node struct {
	ID   string
	Kind NodeKind
	Lat  float64
	Lon  float64
}

// Edge is one bidirectional road segment. Road names are not unique per
// edge: blocking a road removes every segment carrying that name.
type Edge struct {
	From       string
	To         string
	Road       string
	DistanceKm float64
	TimeMin    float64
}

// Network is the immutable base graph. Scenario-scoped road blocks never
// mutate it; they are expressed through an Overlay per evaluation.
type Network struct {
	nodes  map[string]Node
	edges  []Edge
	closed map[string]bool // structurally closed roads, global
}

func New(nodes []Node, edges []Edge) *Network {
	n := &Network{
		nodes:  make(map[string]Node, len(nodes)),
		closed: map[string]bool{},
	}
	for _, nd := range nodes {
		n.nodes[nd.ID] = nd
	}
	n.edges = append(n.edges, edges...)
	return n
}

func (n *Network) Node(id string) (Node, bool) {
	nd, ok := n.nodes[id]
	return nd, ok
}

func (n *Network) HasNode(id string) bool {
	_, ok := n.nodes[id]
	return ok
}

// CloseRoad marks a road as structurally closed for every future overlay.
func (n *Network) CloseRoad(road string) {
	n.closed[road] = true
}

// Overlay is the view of the network for one scenario evaluation: the base
// graph minus structurally closed roads minus the scenario's blocked roads.
type Overlay struct {
	net     *Network
	blocked map[string]bool
	adj     map[string][]Edge
}

// Overlay builds the per-evaluation adjacency with the given roads removed.
func (n *Network) Overlay(blockedRoads []string) *Overlay {
	o := &Overlay{net: n, blocked: make(map[string]bool, len(blockedRoads))}
	for road := range n.closed {
		o.blocked[road] = true
	}
	for _, road := range blockedRoads {
		o.blocked[road] = true
	}
	o.adj = make(map[string][]Edge, len(n.nodes))
	for id := range n.nodes {
		o.adj[id] = nil
	}
	for _, e := range n.edges {
		if o.blocked[e.Road] {
			continue
		}
		o.adj[e.From] = append(o.adj[e.From], e)
		o.adj[e.To] = append(o.adj[e.To], Edge{
			From: e.To, To: e.From, Road: e.Road, DistanceKm: e.DistanceKm, TimeMin: e.TimeMin,
		})
	}
	return o
}

func (o *Overlay) Neighbors(id string) []Edge {
	return o.adj[id]
}

func (o *Overlay) Blocked(road string) bool {
	return o.blocked[road]
}

func (o *Overlay) Node(id string) (Node, bool) {
	return o.net.Node(id)
}

// StraightLineKm is the great-circle distance between two nodes. Road
// distance is always at least this, which keeps the A* heuristic admissible.
func (o *Overlay) StraightLineKm(a, b string) float64 {
	na, okA := o.net.Node(a)
	nb, okB := o.net.Node(b)
	if !okA || !okB {
		return 0
	}
	return utils.HaversineKm(na.Lat, na.Lon, nb.Lat, nb.Lon)
}

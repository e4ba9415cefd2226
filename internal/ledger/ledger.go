package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/reliefroute/backend/internal/allocation"
	"github.com/reliefroute/backend/internal/models"
)

var (
	ErrDecisionNotFound  = errors.New("decision not found")
	ErrInvalidTransition = errors.New("invalid decision transition")
)

// Explicit transition table. pending is the only non-terminal state.
var transitions = map[models.DecisionStatus]map[models.DecisionStatus]bool{
	models.DecisionPending: {
		models.DecisionApproved: true,
		models.DecisionAborted:  true,
		models.DecisionModified: true,
	},
}

// Sink persists decisions and audit records. The in-memory ledger is the
// source of truth during an evaluation; the sink is write-through.
type Sink interface {
	SaveDecision(ctx context.Context, d models.Decision) error
	// RecordTransition must persist the status change and the audit record
	// atomically.
	RecordTransition(ctx context.Context, decisionID string, status models.DecisionStatus, rec models.AuditRecord) error
}

// Ledger owns the Decision lifecycle. Transitions are linearizable per
// decision id: each entry has its own lock, and the status check, status
// write and audit append happen inside one critical section.
type Ledger struct {
	mu        sync.RWMutex
	entries   map[string]*entry
	ordered   []string // insertion order, newest appended last
	inventory *allocation.Inventory
	sink      Sink
}

type entry struct {
	mu       sync.Mutex
	decision models.Decision
}

func New(inv *allocation.Inventory, sink Sink) *Ledger {
	return &Ledger{
		entries:   map[string]*entry{},
		inventory: inv,
		sink:      sink,
	}
}

// Record stores a freshly created decision in pending state.
func (l *Ledger) Record(ctx context.Context, d models.Decision) error {
	if d.Status == "" {
		d.Status = models.DecisionPending
	}
	d.Audit = append(d.Audit, models.AuditRecord{
		Actor:      "engine",
		At:         d.CreatedAt,
		FromStatus: "",
		ToStatus:   d.Status,
		Note:       "decision created",
	})

	l.mu.Lock()
	if _, exists := l.entries[d.ID]; exists {
		l.mu.Unlock()
		return fmt.Errorf("decision %s already recorded", d.ID)
	}
	l.entries[d.ID] = &entry{decision: d}
	l.ordered = append(l.ordered, d.ID)
	l.mu.Unlock()

	if l.sink != nil {
		if err := l.sink.SaveDecision(ctx, d); err != nil {
			// Back out the entry so a failed submission cannot be read or
			// transitioned later. The caller releases the drawn stock.
			l.mu.Lock()
			delete(l.entries, d.ID)
			for i := len(l.ordered) - 1; i >= 0; i-- {
				if l.ordered[i] == d.ID {
					l.ordered = append(l.ordered[:i], l.ordered[i+1:]...)
					break
				}
			}
			l.mu.Unlock()
			return fmt.Errorf("persist decision: %w", err)
		}
	}
	return nil
}

func (l *Ledger) Get(id string) (models.Decision, error) {
	l.mu.RLock()
	e, ok := l.entries[id]
	l.mu.RUnlock()
	if !ok {
		return models.Decision{}, fmt.Errorf("%w: %s", ErrDecisionNotFound, id)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.decision, nil
}

// List returns decisions newest first.
func (l *Ledger) List() []models.Decision {
	l.mu.RLock()
	ids := append([]string{}, l.ordered...)
	l.mu.RUnlock()

	out := make([]models.Decision, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		if d, err := l.Get(ids[i]); err == nil {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Modification is the optional payload for a modify transition.
type Modification struct {
	Allocations []models.Allocation `json:"allocations,omitempty"`
	Routes      []models.Route      `json:"routes,omitempty"`
}

// Approve moves a pending decision to approved.
func (l *Ledger) Approve(ctx context.Context, id, actor, note string) (models.Decision, error) {
	return l.transition(ctx, id, models.DecisionApproved, actor, note, nil)
}

// Abort moves a pending decision to aborted and releases its planned
// allocations back to inventory.
func (l *Ledger) Abort(ctx context.Context, id, actor, note string) (models.Decision, error) {
	return l.transition(ctx, id, models.DecisionAborted, actor, note, nil)
}

// Modify records a human edit of allocations/routes. Terminal for the
// original proposal: a modified decision does not return to pending.
func (l *Ledger) Modify(ctx context.Context, id, actor, note string, mod *Modification) (models.Decision, error) {
	return l.transition(ctx, id, models.DecisionModified, actor, note, mod)
}

func (l *Ledger) transition(ctx context.Context, id string, to models.DecisionStatus, actor, note string, mod *Modification) (models.Decision, error) {
	l.mu.RLock()
	e, ok := l.entries[id]
	l.mu.RUnlock()
	if !ok {
		return models.Decision{}, fmt.Errorf("%w: %s", ErrDecisionNotFound, id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	from := e.decision.Status
	if !transitions[from][to] {
		return models.Decision{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	rec := models.AuditRecord{
		Actor:      actor,
		At:         time.Now().UTC(),
		FromStatus: from,
		ToStatus:   to,
		Note:       note,
	}

	if mod != nil {
		if len(mod.Allocations) > 0 {
			rec.Note = appendDelta(rec.Note, fmt.Sprintf("allocations: %d -> %d", len(e.decision.Allocations), len(mod.Allocations)))
		}
		if len(mod.Routes) > 0 {
			rec.Note = appendDelta(rec.Note, fmt.Sprintf("routes: %d -> %d", len(e.decision.Routes), len(mod.Routes)))
		}
	}

	if l.sink != nil {
		// Sink write happens inside the critical section so the transition
		// and its audit record land atomically or not at all.
		if err := l.sink.RecordTransition(ctx, id, to, rec); err != nil {
			return models.Decision{}, fmt.Errorf("persist transition: %w", err)
		}
	}

	if mod != nil {
		if len(mod.Allocations) > 0 {
			e.decision.Allocations = mod.Allocations
		}
		if len(mod.Routes) > 0 {
			e.decision.Routes = mod.Routes
		}
	}

	e.decision.Status = to
	e.decision.Audit = append(e.decision.Audit, rec)

	if to == models.DecisionAborted && l.inventory != nil {
		allocation.Release(l.inventory, e.decision.Allocations)
	}

	return e.decision, nil
}

func appendDelta(note, delta string) string {
	if note == "" {
		return delta
	}
	return note + "; " + delta
}

package engine

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/reliefroute/backend/internal/models"
)

// ActivityLog is a bounded in-memory ring of operational events. Oldest
// entries are dropped once the limit is reached.
type ActivityLog struct {
	mu      sync.Mutex
	entries []models.ActivityEntry
	limit   int
}

func NewActivityLog(limit int) *ActivityLog {
	if limit <= 0 {
		limit = 100
	}
	return &ActivityLog{limit: limit}
}

func (a *ActivityLog) Append(eventType, message string, details map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, models.ActivityEntry{
		ID:        uuid.NewString(),
		At:        time.Now().UTC(),
		EventType: eventType,
		Message:   message,
		Details:   details,
	})
	if len(a.entries) > a.limit {
		a.entries = a.entries[len(a.entries)-a.limit:]
	}
}

// List returns entries newest first.
func (a *ActivityLog) List() []models.ActivityEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]models.ActivityEntry, len(a.entries))
	for i, e := range a.entries {
		out[len(a.entries)-1-i] = e
	}
	return out
}

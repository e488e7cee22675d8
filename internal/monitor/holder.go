package monitor

import (
	"sync"
	"time"

	"optionscan/internal/models"
)

// Holder keeps the latest completed run's ranked table for the HTTP
// status surface. Each tick replaces the table wholesale; iterations
// never share or mutate a published table.
type Holder struct {
	mu    sync.RWMutex
	table models.ResultTable
	at    time.Time
	runs  int
}

func (h *Holder) Set(table models.ResultTable, at time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.table = table
	h.at = at
	h.runs++
}

// Latest returns the most recent table, its completion time and whether
// any run has completed yet.
func (h *Holder) Latest() (models.ResultTable, time.Time, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.table, h.at, h.runs > 0
}

func (h *Holder) Runs() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.runs
}

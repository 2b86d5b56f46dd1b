// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// recentRunsShown bounds the history slice attached to a stats response.
const recentRunsShown = 20

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler handles stats requests.
type StatsHandler struct {
	statsProvider StatsProvider
	deps          Dependencies
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsProvider StatsProvider, deps Dependencies) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider, deps: deps}
}

// HandleStats handles GET /stats requests. The response bundles the service
// snapshot with the most recent analysis runs.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	stats := h.statsProvider.GetStats()
	if runs, err := h.deps.RecentRuns(r.Context(), recentRunsShown); err == nil {
		stats["recentRuns"] = runs
	}
	writeJSON(w, http.StatusOK, stats)
}

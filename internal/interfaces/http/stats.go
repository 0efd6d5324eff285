package http

import (
	"net/http"

	"tally/internal/domain/stats"
)

type StatsHandler struct {
	service *stats.Service
}

func NewStatsHandler(service *stats.Service) *StatsHandler {
	return &StatsHandler{service: service}
}

// HandleStats serves the aggregated summary over an optional date window.
// Without startDate/endDate the window defaults to the last month.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	q := r.URL.Query()

	start, err := parseOptionalTime(q.Get("startDate"))
	if err != nil {
		http.Error(w, "Invalid startDate", http.StatusBadRequest)
		return
	}
	end, err := parseOptionalTime(q.Get("endDate"))
	if err != nil {
		http.Error(w, "Invalid endDate", http.StatusBadRequest)
		return
	}

	summary, err := h.service.Summary(r.Context(), userID, start, end)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

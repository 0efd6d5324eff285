package http

import (
	"encoding/json"
	"net/http"
	"time"

	"tally/internal/shared/middleware"
)

// userIDFrom pulls the authenticated user id off the request context.
func userIDFrom(r *http.Request) (int64, bool) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	return userID, ok
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// parseDate accepts RFC 3339 timestamps or bare YYYY-MM-DD dates, the two
// shapes clients actually send.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

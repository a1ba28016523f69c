package handlers

import (
	"net/http"
	"strconv"

	"github.com/quillcraft/quillcraft/internal/api/response"
	"github.com/quillcraft/quillcraft/internal/monitor"
)

// HistoryHandler returns recent request logs.
// Query: limit (default 100), since (minutes, default unbounded).
func HistoryHandler(mon *monitor.Monitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 100
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
				limit = l
			}
		}
		since := 0
		if sinceStr := r.URL.Query().Get("since"); sinceStr != "" {
			if s, err := strconv.Atoi(sinceStr); err == nil && s > 0 {
				since = s
			}
		}

		logs := mon.GetLogs(limit, since)
		response.Data(w, http.StatusOK, map[string]any{
			"logs":    logs,
			"count":   len(logs),
			"enabled": mon.IsEnabled(),
		})
	}
}

// StatsHandler returns aggregated request statistics.
func StatsHandler(mon *monitor.Monitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Data(w, http.StatusOK, mon.GetStats())
	}
}

// ClearHistoryHandler clears all request logs.
func ClearHistoryHandler(mon *monitor.Monitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := mon.Clear(); err != nil {
			response.Error(w, http.StatusInternalServerError, "Failed to clear history: "+err.Error(), response.CodeHistory)
			return
		}
		response.Data(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

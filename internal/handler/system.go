package handler

import (
	"net/http"
	"time"

	"shieldex/internal/dataset"
)

var startedAt = time.Now()

// Health reports liveness plus dataset readiness.
func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int(time.Since(startedAt).Seconds()),
		"dataset_size":   len(dataset.Global()),
	})
}

package handler

import (
	"net/http"
	"strconv"

	"shieldex/internal/dataset"
	"shieldex/pkg/logger"
)

// DatasetHandler pages through the global synthetic transaction pool.
type DatasetHandler struct {
	logger logger.Logger
}

func NewDatasetHandler(log logger.Logger) *DatasetHandler {
	return &DatasetHandler{logger: log}
}

// List returns one page of the global dataset.
func (h *DatasetHandler) List(w http.ResponseWriter, r *http.Request) {
	ds := dataset.Global()

	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)
	if limit < 1 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	end := offset + limit
	if offset > len(ds) {
		offset = len(ds)
	}
	if end > len(ds) {
		end = len(ds)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"total":        len(ds),
		"offset":       offset,
		"limit":        limit,
		"transactions": ds[offset:end],
	})
}

func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

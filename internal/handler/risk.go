package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"shieldex/internal/dataset"
	"shieldex/internal/risk"
	"shieldex/internal/sampler"
	"shieldex/pkg/logger"
	"shieldex/pkg/validator"
)

// RiskHandler exposes privacy scoring over sampled wallets.
type RiskHandler struct {
	scorer    *risk.Scorer
	validator *validator.Validator
	logger    logger.Logger
}

func NewRiskHandler(scorer *risk.Scorer, val *validator.Validator, log logger.Logger) *RiskHandler {
	return &RiskHandler{
		scorer:    scorer,
		validator: val,
		logger:    log,
	}
}

type riskReportRequest struct {
	ViewingKey string `json:"viewing_key" validate:"required,viewingkey"`
}

// Report samples the key against the global dataset and returns the
// aggregate privacy report for the resulting wallet.
func (h *RiskHandler) Report(w http.ResponseWriter, r *http.Request) {
	var req riskReportRequest

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		if err == io.EOF {
			respondError(w, http.StatusBadRequest, "Request body is required")
			return
		}
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	view := sampler.Sample(req.ViewingKey, dataset.Global())
	report := h.scorer.Evaluate(view.Transactions)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"fingerprint": view.SeedFingerprint,
		"report":      report,
	})
}

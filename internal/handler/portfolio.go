package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"shieldex/internal/dataset"
	"shieldex/internal/portfolio"
	"shieldex/internal/risk"
	"shieldex/pkg/cache"
	"shieldex/pkg/logger"
	"shieldex/pkg/validator"
)

// PortfolioHandler builds demo portfolios and their risk reports. Built
// portfolios are pure functions of the request options, so responses are
// cached aggressively.
type PortfolioHandler struct {
	scorer    *risk.Scorer
	cache     cache.Cache
	cacheTTL  time.Duration
	validator *validator.Validator
	logger    logger.Logger
}

func NewPortfolioHandler(scorer *risk.Scorer, c cache.Cache, ttl time.Duration, val *validator.Validator, log logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		scorer:    scorer,
		cache:     c,
		cacheTTL:  ttl,
		validator: val,
		logger:    log,
	}
}

type portfolioResponse struct {
	Portfolio *portfolio.Portfolio `json:"portfolio"`
	Report    *risk.Report         `json:"report"`
}

// Build composes a portfolio from the requested wallet counts and attaches
// the aggregate risk report.
func (h *PortfolioHandler) Build(w http.ResponseWriter, r *http.Request) {
	var opts portfolio.Options

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&opts); err != nil {
		if err == io.EOF {
			respondError(w, http.StatusBadRequest, "Request body is required")
			return
		}
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&opts); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	cacheKey := fmt.Sprintf("portfolio:%d:%d:%d:%d:%08x",
		opts.Users, opts.Exchanges, opts.AttackerClusters, opts.Count, opts.Seed)

	var cached portfolioResponse
	if err := h.cache.Get(ctx, cacheKey, &cached); err == nil {
		respondJSON(w, http.StatusOK, &cached)
		return
	}

	p := portfolio.Build(opts, dataset.Global())
	resp := portfolioResponse{
		Portfolio: p,
		Report:    h.scorer.Evaluate(p.Transactions),
	}

	if err := h.cache.Set(ctx, cacheKey, &resp, h.cacheTTL); err != nil {
		h.logger.Warn("Portfolio cache write failed", map[string]interface{}{
			"key":   cacheKey,
			"error": err.Error(),
		})
	}

	respondJSON(w, http.StatusOK, &resp)
}

package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"shieldex/internal/wallet"
	"shieldex/pkg/logger"
	"shieldex/pkg/validator"
)

// WalletHandler manages the active wallet view endpoints.
type WalletHandler struct {
	store     *wallet.Store
	validator *validator.Validator
	logger    logger.Logger
}

// NewWalletHandler creates a WalletHandler.
func NewWalletHandler(store *wallet.Store, val *validator.Validator, log logger.Logger) *WalletHandler {
	return &WalletHandler{
		store:     store,
		validator: val,
		logger:    log,
	}
}

type unlockRequest struct {
	ViewingKey string `json:"viewing_key" validate:"required,viewingkey"`
}

// Unlock sets the viewing key and responds with the derived wallet view.
func (h *WalletHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	var req unlockRequest

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit
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

	h.store.SetKey(req.ViewingKey)
	respondJSON(w, http.StatusOK, h.store.View())
}

// Lock clears the active key and view.
func (h *WalletHandler) Lock(w http.ResponseWriter, r *http.Request) {
	h.store.ClearKey()
	respondJSON(w, http.StatusOK, map[string]string{"state": string(h.store.State())})
}

// Get returns the current wallet view and store state.
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"state":   h.store.State(),
		"loading": h.store.Loading(),
		"wallet":  h.store.View(),
	})
}

package handler

import (
	"net/http"
	"time"

	"shieldex/internal/dataset"
	"shieldex/internal/sampler"
	"shieldex/pkg/logger"

	"github.com/gorilla/websocket"
)

// ScanHandler streams a simulated wallet scan over a websocket. The delay is
// purely cosmetic: the sampled view is computed up front and would be
// identical without any progress events.
type ScanHandler struct {
	upgrader websocket.Upgrader
	steps    int
	stepWait time.Duration
	logger   logger.Logger
}

func NewScanHandler(log logger.Logger) *ScanHandler {
	return &ScanHandler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Demo service; the UI is served from arbitrary origins.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		steps:    5,
		stepWait: 120 * time.Millisecond,
		logger:   log,
	}
}

type scanEvent struct {
	Type    string      `json:"type"`
	Percent int         `json:"percent,omitempty"`
	Height  int64       `json:"height,omitempty"`
	Wallet  interface{} `json:"wallet,omitempty"`
}

// Scan upgrades to a websocket, emits artificial progress events, then sends
// the final wallet view for the requested key.
func (h *ScanHandler) Scan(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("viewing_key")
	if key == "" {
		respondError(w, http.StatusBadRequest, "viewing_key query parameter is required")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("Websocket upgrade failed", map[string]interface{}{"error": err.Error()})
		return
	}
	defer conn.Close()

	view := sampler.Sample(key, dataset.Global())

	var topHeight int64
	for _, tx := range view.Transactions {
		if tx.Height > topHeight {
			topHeight = tx.Height
		}
	}

	for i := 1; i <= h.steps; i++ {
		event := scanEvent{
			Type:    "progress",
			Percent: i * 100 / h.steps,
			Height:  topHeight * int64(i) / int64(h.steps),
		}
		if err := conn.WriteJSON(event); err != nil {
			return
		}
		time.Sleep(h.stepWait)
	}

	_ = conn.WriteJSON(scanEvent{Type: "wallet", Wallet: view})
}

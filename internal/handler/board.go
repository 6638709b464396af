package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dukerupert/choreboard/internal/board"
	"github.com/dukerupert/choreboard/internal/clock"
	"github.com/dukerupert/choreboard/internal/websocket"
)

type BoardHandler struct {
	svc    *board.Service
	logger *slog.Logger
	notifier
}

func NewBoardHandler(svc *board.Service, hub *websocket.Hub, logger *slog.Logger) *BoardHandler {
	return &BoardHandler{svc: svc, logger: logger, notifier: notifier{hub: hub}}
}

// Board returns every column for ?date (default today).
func (h *BoardHandler) Board(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r, h.svc.Clock())
	if !ok {
		return
	}

	view, err := h.svc.Board(r.Context(), date)
	if err != nil {
		writeError(w, h.logger, err, "build board")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *BoardHandler) Export(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Export(r.Context())
	if err != nil {
		writeError(w, h.logger, err, "export board")
		return
	}

	name := fmt.Sprintf("choreboard-%s.json", clock.Today(h.svc.Clock()))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	writeJSON(w, http.StatusOK, snap)
}

// Import replaces the whole board with the posted snapshot.
func (h *BoardHandler) Import(w http.ResponseWriter, r *http.Request) {
	var snap board.Snapshot
	if !decodeJSON(w, r, &snap) {
		return
	}

	res, err := h.svc.Import(r.Context(), snap)
	if err != nil {
		writeError(w, h.logger, err, "import board")
		return
	}

	h.notify(websocket.EntityBoard, websocket.ActionImported, "")
	writeJSON(w, http.StatusOK, res)
}

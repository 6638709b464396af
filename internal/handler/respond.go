// Package handler exposes board.Service over JSON.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/choreboard/internal/board"
	"github.com/dukerupert/choreboard/internal/clock"
	"github.com/dukerupert/choreboard/internal/websocket"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeError maps board errors to statuses. Unexpected errors are logged
// and hidden behind action.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error, action string) {
	var ve *board.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": ve.Error(), "field": ve.Field})
	case errors.Is(err, board.ErrValidation):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, board.ErrNotFound):
		writeMessage(w, http.StatusNotFound, err.Error())
	default:
		logger.Error("request failed", "action", action, "error", err)
		writeMessage(w, http.StatusInternalServerError, "failed to "+action)
	}
}

// decodeJSON reads a JSON body into v, writing a 400 when it cannot.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return false
	}
	return true
}

// dateParam resolves ?date=YYYY-MM-DD in the clock's location, defaulting
// to now.
func dateParam(w http.ResponseWriter, r *http.Request, clk clock.Clock) (time.Time, bool) {
	now := clk.Now()
	s := r.URL.Query().Get("date")
	if s == "" {
		return now, true
	}
	d, err := clock.ParseDate(s, now.Location())
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return d, true
}

// notifier broadcasts change events when a hub is configured.
type notifier struct {
	hub *websocket.Hub
}

func (n notifier) notify(entity, action, id string) {
	if n.hub != nil {
		n.hub.Notify(entity, action, id)
	}
}

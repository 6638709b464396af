package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/dukerupert/choreboard/internal/board"
	"github.com/dukerupert/choreboard/internal/model"
	"github.com/dukerupert/choreboard/internal/websocket"
)

type ChoreHandler struct {
	svc        *board.Service
	logger     *slog.Logger
	autoCredit bool
	notifier
}

// NewChoreHandler creates the completion handler. With autoCredit set,
// completing a chore credits its reward in minutes and undoing the
// completion takes it back.
func NewChoreHandler(svc *board.Service, hub *websocket.Hub, logger *slog.Logger, autoCredit bool) *ChoreHandler {
	return &ChoreHandler{svc: svc, logger: logger, autoCredit: autoCredit, notifier: notifier{hub: hub}}
}

func (h *ChoreHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CompletedBy string `json:"completed_by"`
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	id := r.PathValue("id")
	var before *model.ChoreInstance
	if h.autoCredit {
		var err error
		if before, err = h.svc.GetChore(r.Context(), id); err != nil {
			writeError(w, h.logger, err, "toggle chore")
			return
		}
	}

	c, err := h.svc.ToggleCompletion(r.Context(), id, req.CompletedBy)
	if err != nil {
		writeError(w, h.logger, err, "toggle chore")
		return
	}

	today := h.svc.Today()
	completed := board.IsCompleteOn(*c, today)
	if h.autoCredit {
		h.credit(r, before, c, completed)
	}

	h.notify(websocket.EntityChore, websocket.ActionToggled, c.ID)
	writeJSON(w, http.StatusOK, board.ChoreStatus{ChoreInstance: *c, Completed: completed})
}

// credit moves the chore's reward to whoever did it. Pool chores nobody
// claimed earn nothing.
func (h *ChoreHandler) credit(r *http.Request, before, after *model.ChoreInstance, completed bool) {
	if completed {
		h.adjust(r, after, after.Reward)
		return
	}
	h.adjust(r, before, -after.Reward)
}

// adjust moves delta minutes to the user credited with c's completion.
func (h *ChoreHandler) adjust(r *http.Request, c *model.ChoreInstance, delta int) {
	if delta == 0 {
		return
	}

	beneficiary := c.Assignee.UserID
	if c.CompletedBy != nil {
		beneficiary = *c.CompletedBy
	}
	if beneficiary == "" {
		return
	}

	b, err := h.svc.AdjustBalance(r.Context(), beneficiary, model.CurrencyMinutes, delta)
	if err != nil {
		h.logger.Error("auto credit failed", "chore_id", c.ID, "user_id", beneficiary, "error", err)
		return
	}
	if h.hub != nil {
		h.hub.Broadcast(websocket.NewMessage(websocket.EntityBalance, websocket.ActionUpdated, b.UserID,
			map[string]any{"currency": b.Currency, "amount": b.Amount}))
	}
}

// Reset clears completion on every chore. With auto credit on, rewards
// earned today are taken back.
func (h *ChoreHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var done []model.ChoreInstance
	if h.autoCredit {
		var err error
		if done, err = h.svc.ListCompletedOn(r.Context(), h.svc.Today()); err != nil {
			writeError(w, h.logger, err, "reset chores")
			return
		}
	}

	n, err := h.svc.ResetAllCompletions(r.Context())
	if err != nil {
		writeError(w, h.logger, err, "reset chores")
		return
	}
	for i := range done {
		h.adjust(r, &done[i], -done[i].Reward)
	}

	h.notify(websocket.EntityBoard, websocket.ActionReset, "")
	writeJSON(w, http.StatusOK, map[string]int64{"reset": n})
}

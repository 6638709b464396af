package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/choreboard/internal/board"
	"github.com/dukerupert/choreboard/internal/clock"
	"github.com/dukerupert/choreboard/internal/model"
	"github.com/dukerupert/choreboard/internal/websocket"
)

type UserHandler struct {
	svc    *board.Service
	logger *slog.Logger
	notifier
}

func NewUserHandler(svc *board.Service, hub *websocket.Hub, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, logger: logger, notifier: notifier{hub: hub}}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		writeError(w, h.logger, err, "list users")
		return
	}
	if users == nil {
		users = []model.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	u, err := h.svc.CreateUser(r.Context(), req.Name)
	if err != nil {
		writeError(w, h.logger, err, "create user")
		return
	}

	h.notify(websocket.EntityUser, websocket.ActionCreated, u.ID)
	writeJSON(w, http.StatusCreated, u)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch board.UserPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	u, err := h.svc.UpdateUser(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeError(w, h.logger, err, "update user")
		return
	}

	h.notify(websocket.EntityUser, websocket.ActionUpdated, u.ID)
	writeJSON(w, http.StatusOK, u)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.svc.DeleteUser(r.Context(), id); err != nil {
		writeError(w, h.logger, err, "delete user")
		return
	}

	h.notify(websocket.EntityUser, websocket.ActionDeleted, id)
	w.WriteHeader(http.StatusNoContent)
}

// Chores lists the user's chores due on ?date (default today).
func (h *UserHandler) Chores(w http.ResponseWriter, r *http.Request) {
	h.listChores(w, r, model.UserAssignee(r.PathValue("id")))
}

// PoolChores lists the shared pool's chores due on ?date.
func (h *UserHandler) PoolChores(w http.ResponseWriter, r *http.Request) {
	h.listChores(w, r, model.SharedPool())
}

func (h *UserHandler) listChores(w http.ResponseWriter, r *http.Request, a model.Assignee) {
	date, ok := dateParam(w, r, h.svc.Clock())
	if !ok {
		return
	}

	chores, err := h.svc.ListChoresForAssignee(r.Context(), a, date)
	if err != nil {
		writeError(w, h.logger, err, "list chores")
		return
	}

	day := clock.DateString(date)
	out := make([]board.ChoreStatus, 0, len(chores))
	for _, c := range chores {
		out = append(out, board.ChoreStatus{ChoreInstance: c, Completed: board.IsCompleteOn(c, day)})
	}
	writeJSON(w, http.StatusOK, out)
}

type adjustRequest struct {
	Delta *int `json:"delta"`
}

func (h *UserHandler) Balance(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.GetBalance(r.Context(), r.PathValue("id"), model.Currency(r.PathValue("currency")))
	if err != nil {
		writeError(w, h.logger, err, "get balance")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// AdjustBalance applies {"delta": n} to the wallet. Negative deltas redeem.
func (h *UserHandler) AdjustBalance(w http.ResponseWriter, r *http.Request) {
	var req adjustRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Delta == nil {
		writeMessage(w, http.StatusBadRequest, "delta is required")
		return
	}

	b, err := h.svc.AdjustBalance(r.Context(), r.PathValue("id"), model.Currency(r.PathValue("currency")), *req.Delta)
	if err != nil {
		writeError(w, h.logger, err, "adjust balance")
		return
	}

	if h.hub != nil {
		h.hub.Broadcast(websocket.NewMessage(websocket.EntityBalance, websocket.ActionUpdated, b.UserID,
			map[string]any{"currency": b.Currency, "amount": b.Amount}))
	}
	writeJSON(w, http.StatusOK, b)
}

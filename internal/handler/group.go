package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/choreboard/internal/board"
	"github.com/dukerupert/choreboard/internal/websocket"
)

type GroupHandler struct {
	svc    *board.Service
	logger *slog.Logger
	notifier
}

func NewGroupHandler(svc *board.Service, hub *websocket.Hub, logger *slog.Logger) *GroupHandler {
	return &GroupHandler{svc: svc, logger: logger, notifier: notifier{hub: hub}}
}

func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.svc.ListGroups(r.Context())
	if err != nil {
		writeError(w, h.logger, err, "list chore groups")
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var def board.GroupDefinition
	if !decodeJSON(w, r, &def) {
		return
	}
	def.GroupID = ""
	h.save(w, r, def, http.StatusCreated, websocket.ActionCreated)
}

func (h *GroupHandler) Update(w http.ResponseWriter, r *http.Request) {
	var def board.GroupDefinition
	if !decodeJSON(w, r, &def) {
		return
	}
	def.GroupID = r.PathValue("id")
	h.save(w, r, def, http.StatusOK, websocket.ActionUpdated)
}

func (h *GroupHandler) save(w http.ResponseWriter, r *http.Request, def board.GroupDefinition, status int, action string) {
	g, err := h.svc.DefineOrUpdateGroup(r.Context(), def)
	if err != nil {
		writeError(w, h.logger, err, "save chore group")
		return
	}

	h.notify(websocket.EntityGroup, action, g.ID)
	writeJSON(w, status, g)
}

func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.svc.DeleteGroup(r.Context(), id); err != nil {
		writeError(w, h.logger, err, "delete chore group")
		return
	}

	h.notify(websocket.EntityGroup, websocket.ActionDeleted, id)
	w.WriteHeader(http.StatusNoContent)
}


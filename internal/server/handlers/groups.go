package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vincewoo/splitwiser/internal/server/storage"
	"github.com/vincewoo/splitwiser/pkg/api"
)

// GroupsHandler обрабатывает CRUD запросы для групп расходов
type GroupsHandler struct {
	logger  *slog.Logger
	storage storage.GroupStorage
}

// NewGroupsHandler создает новый handler для групп
func NewGroupsHandler(logger *slog.Logger, storage storage.GroupStorage) *GroupsHandler {
	return &GroupsHandler{
		logger:  logger,
		storage: storage,
	}
}

// Create обрабатывает POST /api/v1/groups
func (h *GroupsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.GroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode group request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		h.sendError(w, "name is required", http.StatusBadRequest)
		return
	}

	group, err := h.storage.CreateGroup(ctx, userID, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create group", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "group created",
		slog.String("user_id", userID),
		slog.String("group_id", group.ID))

	h.sendJSON(w, group, http.StatusCreated)
}

// List обрабатывает GET /api/v1/groups
func (h *GroupsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	groups, err := h.storage.ListGroups(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list groups", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if groups == nil {
		groups = []api.Group{}
	}

	h.sendJSON(w, api.ListGroupsResponse{Groups: groups}, http.StatusOK)
}

// Get обрабатывает GET /api/v1/groups/{id}
func (h *GroupsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	group, err := h.storage.GetGroup(ctx, userID, id)
	if err != nil {
		if errors.Is(err, storage.ErrGroupNotFound) {
			h.sendError(w, "group not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get group", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, group, http.StatusOK)
}

// Update обрабатывает PUT /api/v1/groups/{id}
// Возвращает 409 если версия в запросе устарела
func (h *GroupsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req api.GroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode group request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		h.sendError(w, "name is required", http.StatusBadRequest)
		return
	}

	group, err := h.storage.UpdateGroup(ctx, userID, id, req)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrGroupNotFound):
			h.sendError(w, "group not found", http.StatusNotFound)
		case errors.Is(err, storage.ErrVersionConflict):
			h.logger.WarnContext(ctx, "group version conflict",
				slog.String("user_id", userID),
				slog.Int64("group_id", id),
				slog.Int64("submitted_version", req.Version))
			h.sendError(w, "version conflict: group was modified", http.StatusConflict)
		default:
			h.logger.ErrorContext(ctx, "failed to update group", slog.Any("error", err))
			h.sendError(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	h.sendJSON(w, group, http.StatusOK)
}

// Delete обрабатывает DELETE /api/v1/groups/{id}
// Удаление идемпотентно: повторный delete возвращает 204
func (h *GroupsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.storage.DeleteGroup(ctx, userID, id); err != nil {
		if !errors.Is(err, storage.ErrGroupNotFound) {
			h.logger.ErrorContext(ctx, "failed to delete group", slog.Any("error", err))
			h.sendError(w, "internal server error", http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *GroupsHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

func (h *GroupsHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	h.sendJSON(w, resp, statusCode)
}

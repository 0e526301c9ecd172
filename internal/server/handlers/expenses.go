package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/vincewoo/splitwiser/internal/server/storage"
	"github.com/vincewoo/splitwiser/pkg/api"
)

// ExpensesHandler обрабатывает CRUD запросы для расходов
type ExpensesHandler struct {
	logger  *slog.Logger
	storage storage.ExpenseStorage
}

// NewExpensesHandler создает новый handler для расходов
func NewExpensesHandler(logger *slog.Logger, storage storage.ExpenseStorage) *ExpensesHandler {
	return &ExpensesHandler{
		logger:  logger,
		storage: storage,
	}
}

// Create обрабатывает POST /api/v1/expenses
func (h *ExpensesHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.ExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode expense request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Description == "" {
		h.sendError(w, "description is required", http.StatusBadRequest)
		return
	}
	if req.Amount < 0 {
		h.sendError(w, "amount must not be negative", http.StatusBadRequest)
		return
	}

	expense, err := h.storage.CreateExpense(ctx, userID, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create expense", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "expense created",
		slog.String("user_id", userID),
		slog.String("expense_id", expense.ID))

	h.sendJSON(w, expense, http.StatusCreated)
}

// List обрабатывает GET /api/v1/expenses
func (h *ExpensesHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	expenses, err := h.storage.ListExpenses(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list expenses", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if expenses == nil {
		expenses = []api.Expense{}
	}

	h.sendJSON(w, api.ListExpensesResponse{Expenses: expenses}, http.StatusOK)
}

// Get обрабатывает GET /api/v1/expenses/{id}
func (h *ExpensesHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	expense, err := h.storage.GetExpense(ctx, userID, id)
	if err != nil {
		if errors.Is(err, storage.ErrExpenseNotFound) {
			h.sendError(w, "expense not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get expense", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, expense, http.StatusOK)
}

// Update обрабатывает PUT /api/v1/expenses/{id}
// Возвращает 409 если версия в запросе устарела
func (h *ExpensesHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req api.ExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode expense request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Description == "" {
		h.sendError(w, "description is required", http.StatusBadRequest)
		return
	}

	expense, err := h.storage.UpdateExpense(ctx, userID, id, req)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrExpenseNotFound):
			h.sendError(w, "expense not found", http.StatusNotFound)
		case errors.Is(err, storage.ErrVersionConflict):
			h.logger.WarnContext(ctx, "expense version conflict",
				slog.String("user_id", userID),
				slog.Int64("expense_id", id),
				slog.Int64("submitted_version", req.Version))
			h.sendError(w, "version conflict: expense was modified", http.StatusConflict)
		default:
			h.logger.ErrorContext(ctx, "failed to update expense", slog.Any("error", err))
			h.sendError(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	h.sendJSON(w, expense, http.StatusOK)
}

// Delete обрабатывает DELETE /api/v1/expenses/{id}
// Удаление идемпотентно: повторный delete возвращает 204
func (h *ExpensesHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.storage.DeleteExpense(ctx, userID, id); err != nil {
		if !errors.Is(err, storage.ErrExpenseNotFound) {
			h.logger.ErrorContext(ctx, "failed to delete expense", slog.Any("error", err))
			h.sendError(w, "internal server error", http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseIDParam извлекает числовой id из path parameter (Go 1.22+)
func parseIDParam(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

func (h *ExpensesHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

func (h *ExpensesHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	h.sendJSON(w, resp, statusCode)
}

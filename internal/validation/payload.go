package validation

import (
	"encoding/json"
	"fmt"

	"github.com/vincewoo/splitwiser/internal/models"
	"github.com/vincewoo/splitwiser/pkg/api"
)

// Payload каждой операции валидируется при постановке в очередь,
// а не в момент отправки: битая операция не должна попасть в durable очередь.

// ValidateExpenseRequest проверяет payload операции над расходом
func ValidateExpenseRequest(req *api.ExpenseRequest) error {
	if req.Description == "" {
		return fmt.Errorf("expense description cannot be empty")
	}
	if req.Amount <= 0 {
		return fmt.Errorf("expense amount must be positive, got %d", req.Amount)
	}
	return nil
}

// ValidateGroupRequest проверяет payload операции над группой
func ValidateGroupRequest(req *api.GroupRequest) error {
	if req.Name == "" {
		return fmt.Errorf("group name cannot be empty")
	}
	return nil
}

// ValidateOperationPayload decodes and validates the payload of a pending
// operation according to its kind. Delete operations carry no payload.
func ValidateOperationPayload(kind models.OperationKind, payload json.RawMessage) error {
	switch kind {
	case models.OpCreateExpense, models.OpUpdateExpense:
		var req api.ExpenseRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return fmt.Errorf("invalid expense payload: %w", err)
		}
		return ValidateExpenseRequest(&req)
	case models.OpCreateGroup, models.OpUpdateGroup:
		var req api.GroupRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return fmt.Errorf("invalid group payload: %w", err)
		}
		return ValidateGroupRequest(&req)
	case models.OpDeleteExpense, models.OpDeleteGroup:
		// Delete не несет payload
		return nil
	default:
		return fmt.Errorf("unknown operation kind: %s", kind)
	}
}

package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OperationKind тип операции в очереди отложенных мутаций
type OperationKind string

// Поддерживаемые типы операций
const (
	OpCreateExpense OperationKind = "create_expense"
	OpUpdateExpense OperationKind = "update_expense"
	OpDeleteExpense OperationKind = "delete_expense"
	OpCreateGroup   OperationKind = "create_group"
	OpUpdateGroup   OperationKind = "update_group"
	OpDeleteGroup   OperationKind = "delete_group"
)

// EntityKind тип сущности, к которой относится операция
type EntityKind string

const (
	EntityExpense EntityKind = "expense"
	EntityGroup   EntityKind = "group"
)

// OperationStatus статус отложенной операции
type OperationStatus string

const (
	StatusPending    OperationStatus = "pending"    // ожидает отправки
	StatusProcessing OperationStatus = "processing" // отправляется прямо сейчас
	StatusConflict   OperationStatus = "conflict"   // сервер ответил 409, нужно решение пользователя
	StatusFailed     OperationStatus = "failed"     // исчерпаны попытки, нужен явный retry
)

// MaxRetries максимальное количество попыток перед переводом операции в failed
const MaxRetries = 3

// PendingOperation представляет durable запись о мутации,
// ещё не подтвержденной origin сервером.
// Payload хранится как JSON и валидируется по Kind при постановке в очередь.
type PendingOperation struct {
	CreatedAt time.Time `json:"created_at"`

	// ProcessingAt момент последнего перехода в processing;
	// nil пока операция ни разу не отправлялась
	ProcessingAt *time.Time `json:"processing_at,omitempty"`

	ID         string          `json:"id"`   // UUID операции
	Kind       OperationKind   `json:"kind"` // тип операции
	EntityKind EntityKind      `json:"entity_kind"`
	EntityID   string          `json:"entity_id"` // server id (десятичная строка) или temp id
	LastError  string          `json:"last_error,omitempty"`
	Payload    json.RawMessage `json:"payload"`
	Seq        uint64          `json:"seq"` // монотонный счетчик для устойчивого порядка при равных CreatedAt
	RetryCount int             `json:"retry_count"`
	Status     OperationStatus `json:"status"`
}

// IsCreate reports whether the operation allocates a new server identifier.
func (op *PendingOperation) IsCreate() bool {
	return op.Kind == OpCreateExpense || op.Kind == OpCreateGroup
}

// IsDelete reports whether the operation removes an entity.
func (op *PendingOperation) IsDelete() bool {
	return op.Kind == OpDeleteExpense || op.Kind == OpDeleteGroup
}

// Before определяет порядок обработки операций: строго по CreatedAt,
// при равенстве — по Seq
func (op *PendingOperation) Before(other *PendingOperation) bool {
	if op.CreatedAt.Equal(other.CreatedAt) {
		return op.Seq < other.Seq
	}
	return op.CreatedAt.Before(other.CreatedAt)
}

// EntityKindForOp возвращает тип сущности для типа операции
func EntityKindForOp(kind OperationKind) (EntityKind, error) {
	switch kind {
	case OpCreateExpense, OpUpdateExpense, OpDeleteExpense:
		return EntityExpense, nil
	case OpCreateGroup, OpUpdateGroup, OpDeleteGroup:
		return EntityGroup, nil
	default:
		return "", fmt.Errorf("unknown operation kind: %s", kind)
	}
}

// IDMapping связывает temp id (созданный офлайн) с выданным сервером id.
// Создается один раз при первом успешном Create и больше не меняется.
type IDMapping struct {
	CreatedAt  time.Time  `json:"created_at"`
	TempID     string     `json:"temp_id"`
	ServerID   string     `json:"server_id"`
	EntityKind EntityKind `json:"entity_kind"`
}

// tempIDPrefix префикс клиентских временных идентификаторов
const tempIDPrefix = "tmp_"

// NewTempID generates a client-side temporary identifier for an entity
// created while offline.
func NewTempID() string {
	return tempIDPrefix + uuid.New().String()
}

// IsTempID reports whether s has the shape of a client temporary id.
func IsTempID(s string) bool {
	if !strings.HasPrefix(s, tempIDPrefix) {
		return false
	}
	_, err := uuid.Parse(strings.TrimPrefix(s, tempIDPrefix))
	return err == nil
}

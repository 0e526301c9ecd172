// Package idmap переписывает клиентские временные идентификаторы
// в серверные внутри payload отложенных операций.
//
// Корректность держится на порядке очереди: операция, ссылающаяся на
// temp id, ставится в очередь после операции, создающей эту сущность,
// и очередь выполняется строго в порядке создания. К моменту выполнения
// зависимой операции mapping уже записан.
package idmap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vincewoo/splitwiser/internal/client/storage"
	"github.com/vincewoo/splitwiser/internal/models"
)

// ErrUnresolvedReference сигнализирует что temp id не имеет mapping на момент
// выполнения операции. Это нарушение инварианта порядка очереди, а не
// ожидаемое состояние: такая операция не подлежит retry.
var ErrUnresolvedReference = errors.New("unresolved temp id reference")

// Resolver rewrites temp ids inside operation payloads using stored mappings.
type Resolver struct {
	mappings storage.MappingStorage
}

// NewResolver creates a new Resolver over the given mapping storage.
func NewResolver(mappings storage.MappingStorage) *Resolver {
	return &Resolver{mappings: mappings}
}

// ResolveTempIDs recursively walks the payload and replaces every string with
// the temp id shape by its mapped server id, when a mapping exists. Strings
// without a mapping are left as-is.
func (r *Resolver) ResolveTempIDs(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	if len(payload) == 0 {
		return payload, nil
	}

	var decoded any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}

	resolved, err := r.resolveValue(ctx, decoded)
	if err != nil {
		return nil, err
	}

	out, err := json.Marshal(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	return out, nil
}

// ResolveEntityID resolves the operation's own target id. Unlike payload
// references, a temp target without a mapping is a hard failure: an
// Update/Delete was dispatched before its Create resolved.
func (r *Resolver) ResolveEntityID(ctx context.Context, id string, kind models.EntityKind) (string, error) {
	if !models.IsTempID(id) {
		return id, nil
	}

	m, err := r.mappings.GetMapping(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrMappingNotFound) {
			return "", fmt.Errorf("%w: %s %s", ErrUnresolvedReference, kind, id)
		}
		return "", fmt.Errorf("failed to get mapping: %w", err)
	}

	return m.ServerID, nil
}

// resolveValue обходит произвольную JSON структуру
func (r *Resolver) resolveValue(ctx context.Context, v any) (any, error) {
	switch val := v.(type) {
	case string:
		return r.resolveString(ctx, val)
	case map[string]any:
		for k, item := range val {
			resolved, err := r.resolveValue(ctx, item)
			if err != nil {
				return nil, err
			}
			val[k] = resolved
		}
		return val, nil
	case []any:
		for i, item := range val {
			resolved, err := r.resolveValue(ctx, item)
			if err != nil {
				return nil, err
			}
			val[i] = resolved
		}
		return val, nil
	default:
		// числа, bool, null остаются как есть
		return v, nil
	}
}

// resolveString подменяет temp id на server id если mapping уже существует
func (r *Resolver) resolveString(ctx context.Context, s string) (string, error) {
	if !models.IsTempID(s) {
		return s, nil
	}

	m, err := r.mappings.GetMapping(ctx, s)
	if err != nil {
		if errors.Is(err, storage.ErrMappingNotFound) {
			// Mapping еще нет — оставляем как есть
			return s, nil
		}
		return "", fmt.Errorf("failed to get mapping: %w", err)
	}

	return m.ServerID, nil
}

package syncer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	httpclient "github.com/vincewoo/splitwiser/internal/client/api"
	"github.com/vincewoo/splitwiser/internal/client/idmap"
	"github.com/vincewoo/splitwiser/internal/client/storage"
	"github.com/vincewoo/splitwiser/internal/models"
	"github.com/vincewoo/splitwiser/pkg/api"
)

// Outcome итог одной попытки выполнить операцию
type Outcome int

const (
	// OutcomeSuccess операция подтверждена сервером и удалена из очереди
	OutcomeSuccess Outcome = iota
	// OutcomeConflict сервер ответил 409; операция ждет решения пользователя
	OutcomeConflict
	// OutcomeRetry временная ошибка; операция вернулась в pending
	OutcomeRetry
	// OutcomeFailed попытки исчерпаны либо нарушен инвариант порядка
	OutcomeFailed
)

// Result описывает завершенную попытку обработки операции
type Result struct {
	Err     error
	Op      *models.PendingOperation
	Outcome Outcome
}

// Processor executes one pending operation against the origin server and
// records the outcome back into the durable queue. Errors never escape:
// every failure is folded into operation state and the returned Result.
type Processor struct {
	apiClient httpclient.ClientAPI
	store     Storage
	resolver  *idmap.Resolver
	logger    *slog.Logger
	// onProcessing вызывается сразу после durable перевода операции
	// в processing, до сетевого вызова
	onProcessing func(op *models.PendingOperation)
}

// NewProcessor creates a new operation processor.
func NewProcessor(apiClient httpclient.ClientAPI, store Storage, resolver *idmap.Resolver, logger *slog.Logger, onProcessing func(*models.PendingOperation)) *Processor {
	return &Processor{
		apiClient:    apiClient,
		store:        store,
		resolver:     resolver,
		logger:       logger,
		onProcessing: onProcessing,
	}
}

// Process выполняет одну операцию: processing → резолв id → сетевой вызов →
// фиксация исхода
func (p *Processor) Process(ctx context.Context, accessToken string, op *models.PendingOperation) Result {
	// 1. Помечаем processing до первого сетевого вызова: UI может сразу
	// задизейблить ручной retry. ProcessingAt — якорь для sweep застрявших
	// записей при следующем старте.
	now := time.Now()
	op.Status = models.StatusProcessing
	op.ProcessingAt = &now
	if err := p.store.UpdateOperation(ctx, op); err != nil {
		return p.recordFailure(ctx, op, fmt.Errorf("failed to mark processing: %w", err))
	}
	if p.onProcessing != nil {
		p.onProcessing(op)
	}

	// 2. Переписываем temp id внутри payload
	payload, err := p.resolver.ResolveTempIDs(ctx, op.Payload)
	if err != nil {
		return p.recordFailure(ctx, op, fmt.Errorf("failed to resolve payload: %w", err))
	}

	// 3. Резолвим целевой id операции. Для Create цель и есть temp id —
	// резолвить нечего.
	targetID := op.EntityID
	if !op.IsCreate() {
		targetID, err = p.resolver.ResolveEntityID(ctx, op.EntityID, op.EntityKind)
		if err != nil {
			if errors.Is(err, idmap.ErrUnresolvedReference) {
				// Нарушение инварианта порядка: retry не поможет
				return p.recordHardFailure(ctx, op, err)
			}
			return p.recordFailure(ctx, op, err)
		}
	}

	// 4. Сетевой вызов по типу операции
	serverID, dispatchErr := p.dispatch(ctx, accessToken, op, targetID, payload)

	// 5. Фиксируем исход
	switch {
	case dispatchErr == nil:
		return p.recordSuccess(ctx, op, serverID)
	case errors.Is(dispatchErr, httpclient.ErrConflict):
		return p.recordConflict(ctx, op, dispatchErr)
	default:
		return p.recordFailure(ctx, op, dispatchErr)
	}
}

// dispatch выполняет сетевой вызов и возвращает новый server id для Create
func (p *Processor) dispatch(ctx context.Context, accessToken string, op *models.PendingOperation, targetID string, payload json.RawMessage) (string, error) {
	switch op.Kind {
	case models.OpCreateExpense:
		var req api.ExpenseRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return "", fmt.Errorf("invalid expense payload: %w", err)
		}
		expense, err := p.apiClient.CreateExpense(ctx, accessToken, req)
		if err != nil {
			return "", err
		}
		// Кэш сразу получает серверную копию (version 1): последующие
		// операции в очереди читают версию из нее
		if err := p.store.PutExpense(ctx, expense); err != nil {
			p.logger.Warn("Failed to cache created expense", "expense_id", expense.ID, "error", err)
		}
		return expense.ID, nil

	case models.OpUpdateExpense:
		var req api.ExpenseRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return "", fmt.Errorf("invalid expense payload: %w", err)
		}
		// Версия в payload заморожена на момент постановки в очередь;
		// как и temp id, она резолвится в момент выполнения — иначе Update
		// позади другой операции над той же сущностью детерминированно
		// словил бы 409
		if cached, err := p.store.GetExpense(ctx, targetID); err == nil {
			req.Version = cached.Version
		}
		expense, err := p.apiClient.UpdateExpense(ctx, accessToken, targetID, req)
		if err != nil {
			return "", err
		}
		// Обновляем cache серверной копией
		if err := p.store.PutExpense(ctx, expense); err != nil {
			p.logger.Warn("Failed to cache updated expense", "expense_id", expense.ID, "error", err)
		}
		return "", nil

	case models.OpDeleteExpense:
		// 404 уже трактован клиентом как успех
		return "", p.apiClient.DeleteExpense(ctx, accessToken, targetID)

	case models.OpCreateGroup:
		var req api.GroupRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return "", fmt.Errorf("invalid group payload: %w", err)
		}
		group, err := p.apiClient.CreateGroup(ctx, accessToken, req)
		if err != nil {
			return "", err
		}
		if err := p.store.PutGroup(ctx, group); err != nil {
			p.logger.Warn("Failed to cache created group", "group_id", group.ID, "error", err)
		}
		return group.ID, nil

	case models.OpUpdateGroup:
		var req api.GroupRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return "", fmt.Errorf("invalid group payload: %w", err)
		}
		if cached, err := p.store.GetGroup(ctx, targetID); err == nil {
			req.Version = cached.Version
		}
		group, err := p.apiClient.UpdateGroup(ctx, accessToken, targetID, req)
		if err != nil {
			return "", err
		}
		if err := p.store.PutGroup(ctx, group); err != nil {
			p.logger.Warn("Failed to cache updated group", "group_id", group.ID, "error", err)
		}
		return "", nil

	case models.OpDeleteGroup:
		return "", p.apiClient.DeleteGroup(ctx, accessToken, targetID)

	default:
		return "", fmt.Errorf("unknown operation kind: %s", op.Kind)
	}
}

// recordSuccess удаляет операцию из очереди; для Create еще сохраняет
// mapping и убирает из cache устаревшую optimistic копию под temp ключом
// (серверную копию dispatch уже положил под серверным id)
func (p *Processor) recordSuccess(ctx context.Context, op *models.PendingOperation, serverID string) Result {
	if op.IsCreate() && serverID != "" {
		mapping := &models.IDMapping{
			TempID:     op.EntityID,
			ServerID:   serverID,
			EntityKind: op.EntityKind,
			CreatedAt:  time.Now(),
		}
		if err := p.store.SaveMapping(ctx, mapping); err != nil && !errors.Is(err, storage.ErrMappingExists) {
			// Mapping не записан — зависимые операции не смогут отрезолвиться.
			// Сервер уже создал сущность, поэтому retry операции приведет
			// к дублю; фиксируем как жесткую ошибку для решения пользователя.
			return p.recordHardFailure(ctx, op, fmt.Errorf("failed to save id mapping: %w", err))
		}

		if err := p.dropTempEntity(ctx, op); err != nil && !errors.Is(err, storage.ErrEntityNotFound) {
			p.logger.Warn("Failed to drop optimistic entity",
				"temp_id", op.EntityID,
				"server_id", serverID,
				"error", err)
		}
	}

	if err := p.store.DeleteOperation(ctx, op.ID); err != nil {
		p.logger.Warn("Failed to remove confirmed operation", "op_id", op.ID, "error", err)
	}

	p.logger.Info("Operation confirmed",
		"op_id", op.ID,
		"kind", op.Kind,
		"server_id", serverID)

	return Result{Outcome: OutcomeSuccess, Op: op}
}

// dropTempEntity удаляет optimistic копию под temp ключом
func (p *Processor) dropTempEntity(ctx context.Context, op *models.PendingOperation) error {
	switch op.EntityKind {
	case models.EntityExpense:
		return p.store.DeleteExpense(ctx, op.EntityID)
	case models.EntityGroup:
		return p.store.DeleteGroup(ctx, op.EntityID)
	default:
		return fmt.Errorf("unknown entity kind: %s", op.EntityKind)
	}
}

// recordConflict переводит операцию в conflict; durable запись остается
// в очереди до решения пользователя
func (p *Processor) recordConflict(ctx context.Context, op *models.PendingOperation, cause error) Result {
	op.Status = models.StatusConflict
	op.LastError = cause.Error()
	if err := p.store.UpdateOperation(ctx, op); err != nil {
		p.logger.Error("Failed to persist conflict status", "op_id", op.ID, "error", err)
	}

	p.logger.Warn("Operation conflicted",
		"op_id", op.ID,
		"kind", op.Kind,
		"error", cause)

	return Result{Outcome: OutcomeConflict, Op: op, Err: cause}
}

// recordFailure инкрементирует retry count; после MaxRetries операция
// становится failed, иначе возвращается в pending для следующего drain
func (p *Processor) recordFailure(ctx context.Context, op *models.PendingOperation, cause error) Result {
	op.RetryCount++
	op.LastError = cause.Error()

	outcome := OutcomeRetry
	if op.RetryCount >= models.MaxRetries {
		op.Status = models.StatusFailed
		outcome = OutcomeFailed
	} else {
		op.Status = models.StatusPending
	}

	if err := p.store.UpdateOperation(ctx, op); err != nil {
		p.logger.Error("Failed to persist failure", "op_id", op.ID, "error", err)
	}

	p.logger.Warn("Operation attempt failed",
		"op_id", op.ID,
		"kind", op.Kind,
		"retry_count", op.RetryCount,
		"status", op.Status,
		"error", cause)

	return Result{Outcome: outcome, Op: op, Err: cause}
}

// recordHardFailure переводит операцию в failed без учета retry count
func (p *Processor) recordHardFailure(ctx context.Context, op *models.PendingOperation, cause error) Result {
	op.Status = models.StatusFailed
	op.LastError = cause.Error()
	if err := p.store.UpdateOperation(ctx, op); err != nil {
		p.logger.Error("Failed to persist hard failure", "op_id", op.ID, "error", err)
	}

	p.logger.Error("Operation failed permanently",
		"op_id", op.ID,
		"kind", op.Kind,
		"error", cause)

	return Result{Outcome: OutcomeFailed, Op: op, Err: cause}
}

// Package syncer реализует движок офлайн-синхронизации: durable очередь
// отложенных мутаций выполняется строго в порядке создания против origin
// сервера, ровно один drain за раз.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	httpclient "github.com/vincewoo/splitwiser/internal/client/api"
	"github.com/vincewoo/splitwiser/internal/client/idmap"
	"github.com/vincewoo/splitwiser/internal/client/storage"
	"github.com/vincewoo/splitwiser/internal/models"
	"github.com/vincewoo/splitwiser/internal/validation"
	"github.com/vincewoo/splitwiser/pkg/api"
)

// staleProcessingGrace время с момента перехода в processing, после
// которого застрявшая запись возвращается в pending при старте. Запись
// моложе могла быть оставлена другим процессом, который еще жив.
const staleProcessingGrace = 30 * time.Second

// Storage объединяет клиентские хранилища, нужные движку синхронизации.
// boltdb.Storage реализует весь набор.
type Storage interface {
	storage.QueueStorage
	storage.MappingStorage
	storage.CacheStorage
	storage.MetadataStorage
}

//go:generate moq -out tokens_mock.go . TokenSource

// TokenSource supplies the bearer token for origin server calls. Token
// lifecycle (issuing, refresh) is owned by the auth layer and opaque here.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// Service is the sync orchestrator: it owns the single-flight guarantee,
// drains the queue in creation order and publishes SyncState to observers.
type Service struct {
	apiClient httpclient.ClientAPI
	store     Storage
	tokens    TokenSource
	resolver  *idmap.Resolver
	processor *Processor
	logger    *slog.Logger

	// mu защищает state, observers и флаги; notifyMu сериализует доставку
	// снимков подписчикам
	mu       sync.Mutex
	notifyMu sync.Mutex

	state          models.SyncState
	observers      map[int]Observer
	nextObserverID int

	// syncing это single-flight флаг: выставляется до первой точки
	// ожидания внутри Sync
	syncing bool
	online  bool

	// drainWG отслеживает отсоединенные фоновые drain для тестов и
	// аккуратного завершения
	drainWG sync.WaitGroup
}

// NewService creates a new sync orchestrator. Call Start before use: it
// recovers operations stuck in processing after an abrupt termination and
// loads the initial state from the durable queue.
func NewService(apiClient httpclient.ClientAPI, store Storage, tokens TokenSource, logger *slog.Logger) *Service {
	s := &Service{
		apiClient: apiClient,
		store:     store,
		tokens:    tokens,
		resolver:  idmap.NewResolver(store),
		logger:    logger,
		observers: make(map[int]Observer),
		state: models.SyncState{
			Status: models.SyncIdle,
		},
	}
	s.processor = NewProcessor(apiClient, store, s.resolver, logger, nil)
	return s
}

// Start recovers stale processing records and loads pending/conflict state.
// Запись, оставшаяся в processing после аварийного завершения, в
// неопределенном состоянии: запрос мог дойти до сервера. Возвращаем ее в
// pending, принимая семантику at-least-once.
func (s *Service) Start(ctx context.Context) error {
	stuck, err := s.store.ListOperationsByStatus(ctx, models.StatusProcessing)
	if err != nil {
		return fmt.Errorf("failed to list processing operations: %w", err)
	}

	cutoff := time.Now().Add(-staleProcessingGrace)
	requeued := 0
	for _, op := range stuck {
		// Отсчет с момента перехода в processing, а не с момента постановки
		// в очередь: старая запись могла уйти в отправку секунду назад.
		// Запись без метки осталась от версии, которая ее не писала.
		if op.ProcessingAt != nil && op.ProcessingAt.After(cutoff) {
			continue
		}
		op.Status = models.StatusPending
		if err := s.store.UpdateOperation(ctx, op); err != nil {
			return fmt.Errorf("failed to requeue stuck operation %s: %w", op.ID, err)
		}
		requeued++
	}
	if requeued > 0 {
		s.logger.Warn("Requeued operations stuck in processing", "count", requeued)
	}

	conflicts, err := s.store.ListOperationsByStatus(ctx, models.StatusConflict)
	if err != nil {
		return fmt.Errorf("failed to list conflict operations: %w", err)
	}

	pendingCount, err := s.pendingCount(ctx)
	if err != nil {
		return err
	}

	s.publish(func(st *models.SyncState) {
		st.PendingCount = pendingCount
		st.Conflicts = st.Conflicts[:0]
		for _, op := range conflicts {
			st.Conflicts = append(st.Conflicts, *op)
		}
		if len(conflicts) > 0 {
			st.Status = models.SyncConflict
		}
	})

	return nil
}

// SetOnline records connectivity. The offline→online transition nudges a
// detached sync; the nudge is advisory, callers can always invoke Sync
// directly.
func (s *Service) SetOnline(online bool) {
	s.mu.Lock()
	wasOnline := s.online
	s.online = online
	s.mu.Unlock()

	if online && !wasOnline {
		s.logger.Info("Back online, scheduling sync")
		s.spawnDetachedSync()
	}
}

// Online reports the last recorded connectivity state.
func (s *Service) Online() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.online
}

// QueueOperation validates the operation, assigns its identity and persists
// it, then — when online — nudges a detached drain. The method never fails
// because of network state: a queued operation is the success path.
func (s *Service) QueueOperation(ctx context.Context, op *models.PendingOperation) error {
	entityKind, err := models.EntityKindForOp(op.Kind)
	if err != nil {
		return err
	}
	op.EntityKind = entityKind

	// Payload валидируется здесь, а не при отправке: битая операция
	// не должна попасть в durable очередь
	if err := validation.ValidateOperationPayload(op.Kind, op.Payload); err != nil {
		return fmt.Errorf("invalid operation payload: %w", err)
	}

	if op.ID == "" {
		op.ID = uuid.New().String()
	}
	if op.CreatedAt.IsZero() {
		op.CreatedAt = time.Now()
	}
	op.RetryCount = 0
	op.Status = models.StatusPending
	op.LastError = ""

	if err := s.store.AddOperation(ctx, op); err != nil {
		return fmt.Errorf("failed to persist operation: %w", err)
	}

	pendingCount, err := s.pendingCount(ctx)
	if err != nil {
		s.logger.Warn("Failed to recompute pending count", "error", err)
		pendingCount = -1
	}

	s.publish(func(st *models.SyncState) {
		if pendingCount >= 0 {
			st.PendingCount = pendingCount
		}
	})

	s.logger.Info("Operation queued",
		"op_id", op.ID,
		"kind", op.Kind,
		"entity_id", op.EntityID)

	if s.Online() {
		s.spawnDetachedSync()
	}

	return nil
}

// Sync drains the queue. Idempotent and single-flight: a call that arrives
// while a drain is running is a no-op, and the whole method is a no-op while
// offline. Per-operation failures never escape: they are folded into
// operation state and, in aggregate, into SyncState.
func (s *Service) Sync(ctx context.Context) error {
	s.mu.Lock()
	if !s.online {
		s.mu.Unlock()
		s.logger.Debug("Sync skipped: offline")
		return nil
	}
	if s.syncing {
		s.mu.Unlock()
		s.logger.Debug("Sync skipped: drain already running")
		return nil
	}
	s.syncing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.syncing = false
		s.mu.Unlock()
	}()

	return s.drain(ctx)
}

// RetryFailed resets every failed and conflicted operation back to pending
// with a zero retry count, then runs a sync. A conflicted update is retried
// against the entity version the cache holds at execution time, so the retry
// either lands cleanly or conflicts again on genuinely diverged state.
func (s *Service) RetryFailed(ctx context.Context) error {
	failed, err := s.store.ListOperationsByStatus(ctx, models.StatusFailed)
	if err != nil {
		return fmt.Errorf("failed to list failed operations: %w", err)
	}

	conflicted, err := s.store.ListOperationsByStatus(ctx, models.StatusConflict)
	if err != nil {
		return fmt.Errorf("failed to list conflict operations: %w", err)
	}

	reset := append(failed, conflicted...)
	for _, op := range reset {
		op.Status = models.StatusPending
		op.RetryCount = 0
		op.LastError = ""
		if err := s.store.UpdateOperation(ctx, op); err != nil {
			return fmt.Errorf("failed to reset operation %s: %w", op.ID, err)
		}
	}

	if len(reset) > 0 {
		s.logger.Info("Reset operations for retry",
			"failed", len(failed),
			"conflicts", len(conflicted))
		pendingCount, err := s.pendingCount(ctx)
		s.publish(func(st *models.SyncState) {
			if err == nil {
				st.PendingCount = pendingCount
			}
			st.Conflicts = nil
			if st.Status == models.SyncConflict {
				st.Status = models.SyncIdle
			}
		})
	}

	return s.Sync(ctx)
}

// DiscardOperation removes an operation from the queue. For a Create the
// optimistic cached entity is deleted as well, so the UI never shows an
// orphaned record.
func (s *Service) DiscardOperation(ctx context.Context, id string) error {
	op, err := s.store.GetOperation(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get operation: %w", err)
	}

	if op.IsCreate() {
		var delErr error
		switch op.EntityKind {
		case models.EntityExpense:
			delErr = s.store.DeleteExpense(ctx, op.EntityID)
		case models.EntityGroup:
			delErr = s.store.DeleteGroup(ctx, op.EntityID)
		}
		if delErr != nil && !errors.Is(delErr, storage.ErrEntityNotFound) {
			s.logger.Warn("Failed to delete optimistic entity",
				"entity_id", op.EntityID,
				"error", delErr)
		}
	}

	if err := s.store.DeleteOperation(ctx, id); err != nil {
		return fmt.Errorf("failed to delete operation: %w", err)
	}

	pendingCount, err := s.pendingCount(ctx)
	if err != nil {
		s.logger.Warn("Failed to recompute pending count", "error", err)
		pendingCount = -1
	}

	s.publish(func(st *models.SyncState) {
		if pendingCount >= 0 {
			st.PendingCount = pendingCount
		}
		for i, c := range st.Conflicts {
			if c.ID == id {
				st.Conflicts = append(st.Conflicts[:i], st.Conflicts[i+1:]...)
				break
			}
		}
		if st.Status == models.SyncConflict && len(st.Conflicts) == 0 {
			st.Status = models.SyncIdle
		}
	})

	s.logger.Info("Operation discarded", "op_id", id, "kind", op.Kind)

	return nil
}

// ListOperations returns every queued operation in creation order.
func (s *Service) ListOperations(ctx context.Context) ([]*models.PendingOperation, error) {
	ops, err := s.store.ListAllOperations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}
	return ops, nil
}

// Wait blocks until every detached background drain has finished.
// Используется при завершении процесса и в тестах.
func (s *Service) Wait() {
	s.drainWG.Wait()
}

// spawnDetachedSync запускает drain в фоне. Ошибки фонового drain попадают
// только в state, никогда не к вызывающему.
func (s *Service) spawnDetachedSync() {
	s.drainWG.Add(1)
	go func() {
		defer s.drainWG.Done()
		if err := s.Sync(context.Background()); err != nil {
			// Sync уже записал ошибку в state; здесь только лог
			s.logger.Error("Background sync failed", "error", err)
		}
	}()
}

// drain выполняет один полный проход по очереди
func (s *Service) drain(ctx context.Context) error {
	ops, err := s.store.ListOperationsByStatus(ctx, models.StatusPending)
	if err != nil {
		err = fmt.Errorf("failed to list pending operations: %w", err)
		s.publishError(err)
		return err
	}

	// sync() при пустой очереди и спокойном состоянии — полный no-op:
	// ни переходов состояния, ни сетевых вызовов
	s.mu.Lock()
	quiet := len(ops) == 0 && s.state.Status == models.SyncIdle && len(s.state.Errors) == 0
	s.mu.Unlock()
	if quiet {
		return nil
	}

	// Syncing публикуется на входе в drain, сразу после quiet-проверки:
	// подписчик видит переход даже если drain падает на первом же шаге
	s.publish(func(st *models.SyncState) {
		st.Status = models.SyncSyncing
	})

	accessToken, err := s.tokens.AccessToken(ctx)
	if err != nil {
		err = fmt.Errorf("failed to get access token: %w", err)
		s.publishError(err)
		return err
	}

	s.logger.Info("Starting drain", "pending", len(ops))

	var drainErrors []string

	// Строго последовательно: параллельная отправка позволила бы
	// зависимой операции обогнать Create, от которого она зависит
	for _, op := range ops {
		result := s.processor.Process(ctx, accessToken, op)

		pendingCount, countErr := s.pendingCount(ctx)

		s.publish(func(st *models.SyncState) {
			if countErr == nil {
				st.PendingCount = pendingCount
			}
			if result.Outcome == OutcomeConflict {
				st.Conflicts = append(st.Conflicts, *result.Op)
			}
		})

		if result.Outcome == OutcomeRetry || result.Outcome == OutcomeFailed {
			drainErrors = append(drainErrors, fmt.Sprintf("%s %s: %s", op.Kind, op.EntityID, result.Op.LastError))
		}
	}

	// Best-effort обновление cache свежими данными сервера: ошибка здесь
	// не превращает drain в Error
	if err := s.refreshCache(ctx, accessToken); err != nil {
		s.logger.Warn("Cache refresh failed", "error", err)
	}

	now := time.Now()
	if err := s.store.SaveLastSyncTimestamp(ctx, now.Unix()); err != nil {
		s.logger.Warn("Failed to save last sync timestamp", "error", err)
	}

	s.publish(func(st *models.SyncState) {
		st.LastSync = &now
		switch {
		case len(st.Conflicts) > 0:
			st.Status = models.SyncConflict
			st.Errors = append(st.Errors, drainErrors...)
		case len(drainErrors) > 0:
			st.Status = models.SyncError
			st.Errors = append(st.Errors, drainErrors...)
		default:
			// Чистое завершение: только здесь накопленные ошибки
			// сбрасываются
			st.Status = models.SyncIdle
			st.Errors = nil
		}
	})

	s.logger.Info("Drain finished",
		"processed", len(ops),
		"errors", len(drainErrors))

	return nil
}

// refreshCache перечитывает расходы и группы с сервера и заменяет
// server-keyed записи cache
func (s *Service) refreshCache(ctx context.Context, accessToken string) error {
	expenses, err := s.apiClient.ListExpenses(ctx, accessToken)
	if err != nil {
		return fmt.Errorf("failed to list expenses: %w", err)
	}

	groups, err := s.apiClient.ListGroups(ctx, accessToken)
	if err != nil {
		return fmt.Errorf("failed to list groups: %w", err)
	}

	expensePtrs := make([]*api.Expense, 0, len(expenses))
	for i := range expenses {
		expensePtrs = append(expensePtrs, &expenses[i])
	}
	groupPtrs := make([]*api.Group, 0, len(groups))
	for i := range groups {
		groupPtrs = append(groupPtrs, &groups[i])
	}

	return s.store.ReplaceServerEntities(ctx, expensePtrs, groupPtrs)
}

// publishError записывает инфраструктурную ошибку drain в state
func (s *Service) publishError(err error) {
	s.publish(func(st *models.SyncState) {
		st.Status = models.SyncError
		st.Errors = append(st.Errors, err.Error())
	})
}

// pendingCount считает операции, ожидающие синхронизации
// (pending + processing)
func (s *Service) pendingCount(ctx context.Context) (int, error) {
	pending, err := s.store.CountByStatus(ctx, models.StatusPending)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending operations: %w", err)
	}
	processing, err := s.store.CountByStatus(ctx, models.StatusProcessing)
	if err != nil {
		return 0, fmt.Errorf("failed to count processing operations: %w", err)
	}
	return pending + processing, nil
}

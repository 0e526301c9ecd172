// Package data реализует клиентский сервис расходов и групп: мутации
// уходят на сервер напрямую когда это возможно, иначе встают в durable
// очередь с оптимистическим применением к локальному cache
package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	httpclient "github.com/vincewoo/splitwiser/internal/client/api"
	"github.com/vincewoo/splitwiser/internal/client/storage"
	"github.com/vincewoo/splitwiser/internal/client/syncer"
	"github.com/vincewoo/splitwiser/internal/models"
	"github.com/vincewoo/splitwiser/pkg/api"
)

// Service определяет интерфейс клиентского сервиса данных
type Service interface {
	CreateExpense(ctx context.Context, req api.ExpenseRequest) (*api.Expense, error)
	UpdateExpense(ctx context.Context, id string, req api.ExpenseRequest) (*api.Expense, error)
	DeleteExpense(ctx context.Context, id string) error
	GetExpense(ctx context.Context, id string) (*api.Expense, error)
	ListExpenses(ctx context.Context) ([]*api.Expense, error)
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*api.Expense, error)

	CreateGroup(ctx context.Context, req api.GroupRequest) (*api.Group, error)
	UpdateGroup(ctx context.Context, id string, req api.GroupRequest) (*api.Group, error)
	DeleteGroup(ctx context.Context, id string) error
	GetGroup(ctx context.Context, id string) (*api.Group, error)
	ListGroups(ctx context.Context) ([]*api.Group, error)
}

// Queue абстрагирует движок синхронизации от сервиса данных
type Queue interface {
	QueueOperation(ctx context.Context, op *models.PendingOperation) error
	Online() bool
}

// Storage объединяет cache и очередь, нужные сервису данных
type Storage interface {
	storage.CacheStorage
	storage.QueueStorage
}

// service handles expense and group operations, online-first with an
// offline queue fallback
type service struct {
	apiClient httpclient.ClientAPI
	store     Storage
	queue     Queue
	tokens    syncer.TokenSource
}

// NewService creates a new data service
func NewService(apiClient httpclient.ClientAPI, store Storage, queue Queue, tokens syncer.TokenSource) Service {
	return &service{
		apiClient: apiClient,
		store:     store,
		queue:     queue,
		tokens:    tokens,
	}
}

// CreateExpense creates an expense, directly on the server when possible.
// The offline path returns an optimistic copy under a temp id; the real id
// arrives on the next sync.
func (s *service) CreateExpense(ctx context.Context, req api.ExpenseRequest) (*api.Expense, error) {
	if req.GroupID != "" && models.IsTempID(req.GroupID) {
		// Группа еще не создана на сервере: расход обязан пройти
		// через очередь следом за ней
		return s.queueCreateExpense(ctx, req)
	}

	if s.queue.Online() {
		accessToken, err := s.tokens.AccessToken(ctx)
		if err == nil {
			expense, apiErr := s.apiClient.CreateExpense(ctx, accessToken, req)
			if apiErr == nil {
				if cacheErr := s.store.PutExpense(ctx, expense); cacheErr != nil {
					return nil, fmt.Errorf("failed to cache expense: %w", cacheErr)
				}
				return expense, nil
			}
		}
	}

	return s.queueCreateExpense(ctx, req)
}

// UpdateExpense обновляет расход. Прямой вызов допустим только когда цель
// имеет серверный id и перед ней нет очередных операций: иначе нарушился бы
// порядок мутаций этой сущности.
func (s *service) UpdateExpense(ctx context.Context, id string, req api.ExpenseRequest) (*api.Expense, error) {
	direct, err := s.canCallDirectly(ctx, id)
	if err != nil {
		return nil, err
	}

	if direct {
		accessToken, tokenErr := s.tokens.AccessToken(ctx)
		if tokenErr == nil {
			expense, apiErr := s.apiClient.UpdateExpense(ctx, accessToken, id, req)
			if apiErr == nil {
				if cacheErr := s.store.PutExpense(ctx, expense); cacheErr != nil {
					return nil, fmt.Errorf("failed to cache expense: %w", cacheErr)
				}
				return expense, nil
			}
			// Конфликт при интерактивном update отдаем вызывающему
			// сразу, в очередь такое не кладем
			if errors.Is(apiErr, httpclient.ErrConflict) || errors.Is(apiErr, httpclient.ErrNotFound) {
				return nil, apiErr
			}
		}
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal expense payload: %w", err)
	}
	if err := s.queue.QueueOperation(ctx, &models.PendingOperation{
		Kind:     models.OpUpdateExpense,
		EntityID: id,
		Payload:  payload,
	}); err != nil {
		return nil, err
	}

	return s.applyExpenseOptimistically(ctx, id, req)
}

// DeleteExpense удаляет расход на сервере либо ставит удаление в очередь
func (s *service) DeleteExpense(ctx context.Context, id string) error {
	direct, err := s.canCallDirectly(ctx, id)
	if err != nil {
		return err
	}

	deleted := false
	if direct {
		accessToken, tokenErr := s.tokens.AccessToken(ctx)
		if tokenErr == nil {
			if apiErr := s.apiClient.DeleteExpense(ctx, accessToken, id); apiErr == nil {
				deleted = true
			}
		}
	}

	if !deleted {
		if err := s.queue.QueueOperation(ctx, &models.PendingOperation{
			Kind:     models.OpDeleteExpense,
			EntityID: id,
		}); err != nil {
			return err
		}
	}

	// Из cache запись уходит в обоих случаях: оптимистическое удаление
	if err := s.store.DeleteExpense(ctx, id); err != nil && !errors.Is(err, storage.ErrEntityNotFound) {
		return fmt.Errorf("failed to delete cached expense: %w", err)
	}
	return nil
}

// GetExpense возвращает расход из cache
func (s *service) GetExpense(ctx context.Context, id string) (*api.Expense, error) {
	return s.store.GetExpense(ctx, id)
}

// ListExpenses возвращает все расходы из cache
func (s *service) ListExpenses(ctx context.Context) ([]*api.Expense, error) {
	return s.store.ListExpenses(ctx)
}

// ListExpensesByGroup возвращает расходы группы из cache
func (s *service) ListExpensesByGroup(ctx context.Context, groupID string) ([]*api.Expense, error) {
	return s.store.ListExpensesByGroup(ctx, groupID)
}

// CreateGroup creates a group, directly on the server when possible
func (s *service) CreateGroup(ctx context.Context, req api.GroupRequest) (*api.Group, error) {
	if s.queue.Online() {
		accessToken, err := s.tokens.AccessToken(ctx)
		if err == nil {
			group, apiErr := s.apiClient.CreateGroup(ctx, accessToken, req)
			if apiErr == nil {
				if cacheErr := s.store.PutGroup(ctx, group); cacheErr != nil {
					return nil, fmt.Errorf("failed to cache group: %w", cacheErr)
				}
				return group, nil
			}
		}
	}

	return s.queueCreateGroup(ctx, req)
}

// UpdateGroup обновляет группу, см. UpdateExpense
func (s *service) UpdateGroup(ctx context.Context, id string, req api.GroupRequest) (*api.Group, error) {
	direct, err := s.canCallDirectly(ctx, id)
	if err != nil {
		return nil, err
	}

	if direct {
		accessToken, tokenErr := s.tokens.AccessToken(ctx)
		if tokenErr == nil {
			group, apiErr := s.apiClient.UpdateGroup(ctx, accessToken, id, req)
			if apiErr == nil {
				if cacheErr := s.store.PutGroup(ctx, group); cacheErr != nil {
					return nil, fmt.Errorf("failed to cache group: %w", cacheErr)
				}
				return group, nil
			}
			if errors.Is(apiErr, httpclient.ErrConflict) || errors.Is(apiErr, httpclient.ErrNotFound) {
				return nil, apiErr
			}
		}
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal group payload: %w", err)
	}
	if err := s.queue.QueueOperation(ctx, &models.PendingOperation{
		Kind:     models.OpUpdateGroup,
		EntityID: id,
		Payload:  payload,
	}); err != nil {
		return nil, err
	}

	return s.applyGroupOptimistically(ctx, id, req)
}

// DeleteGroup удаляет группу на сервере либо ставит удаление в очередь
func (s *service) DeleteGroup(ctx context.Context, id string) error {
	direct, err := s.canCallDirectly(ctx, id)
	if err != nil {
		return err
	}

	deleted := false
	if direct {
		accessToken, tokenErr := s.tokens.AccessToken(ctx)
		if tokenErr == nil {
			if apiErr := s.apiClient.DeleteGroup(ctx, accessToken, id); apiErr == nil {
				deleted = true
			}
		}
	}

	if !deleted {
		if err := s.queue.QueueOperation(ctx, &models.PendingOperation{
			Kind:     models.OpDeleteGroup,
			EntityID: id,
		}); err != nil {
			return err
		}
	}

	if err := s.store.DeleteGroup(ctx, id); err != nil && !errors.Is(err, storage.ErrEntityNotFound) {
		return fmt.Errorf("failed to delete cached group: %w", err)
	}
	return nil
}

// GetGroup возвращает группу из cache
func (s *service) GetGroup(ctx context.Context, id string) (*api.Group, error) {
	return s.store.GetGroup(ctx, id)
}

// ListGroups возвращает все группы из cache
func (s *service) ListGroups(ctx context.Context) ([]*api.Group, error) {
	return s.store.ListGroups(ctx)
}

// canCallDirectly решает, можно ли вызвать сервер напрямую для сущности:
// нужен онлайн, серверный id и пустая очередь по этой сущности
func (s *service) canCallDirectly(ctx context.Context, entityID string) (bool, error) {
	if !s.queue.Online() || models.IsTempID(entityID) {
		return false, nil
	}

	ops, err := s.store.ListAllOperations(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to inspect queue: %w", err)
	}
	for _, op := range ops {
		if op.EntityID == entityID && op.Status != models.StatusFailed {
			return false, nil
		}
	}
	return true, nil
}

func (s *service) queueCreateExpense(ctx context.Context, req api.ExpenseRequest) (*api.Expense, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal expense payload: %w", err)
	}

	tempID := models.NewTempID()
	if err := s.queue.QueueOperation(ctx, &models.PendingOperation{
		Kind:     models.OpCreateExpense,
		EntityID: tempID,
		Payload:  payload,
	}); err != nil {
		return nil, err
	}

	now := time.Now()
	expense := &api.Expense{
		ID:          tempID,
		GroupID:     req.GroupID,
		Description: req.Description,
		Currency:    req.Currency,
		PaidBy:      req.PaidBy,
		SplitWith:   req.SplitWith,
		Amount:      req.Amount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.PutExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to cache expense: %w", err)
	}
	return expense, nil
}

func (s *service) queueCreateGroup(ctx context.Context, req api.GroupRequest) (*api.Group, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal group payload: %w", err)
	}

	tempID := models.NewTempID()
	if err := s.queue.QueueOperation(ctx, &models.PendingOperation{
		Kind:     models.OpCreateGroup,
		EntityID: tempID,
		Payload:  payload,
	}); err != nil {
		return nil, err
	}

	now := time.Now()
	group := &api.Group{
		ID:        tempID,
		Name:      req.Name,
		Members:   req.Members,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.PutGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to cache group: %w", err)
	}
	return group, nil
}

// applyExpenseOptimistically накладывает update на cache копию
func (s *service) applyExpenseOptimistically(ctx context.Context, id string, req api.ExpenseRequest) (*api.Expense, error) {
	expense, err := s.store.GetExpense(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrEntityNotFound) {
			// Сущности нет в cache: показываем то, что отправили
			expense = &api.Expense{ID: id, CreatedAt: time.Now()}
		} else {
			return nil, fmt.Errorf("failed to get cached expense: %w", err)
		}
	}

	expense.Description = req.Description
	expense.Amount = req.Amount
	if req.Currency != "" {
		expense.Currency = req.Currency
	}
	if req.GroupID != "" {
		expense.GroupID = req.GroupID
	}
	if req.PaidBy != "" {
		expense.PaidBy = req.PaidBy
	}
	if req.SplitWith != nil {
		expense.SplitWith = req.SplitWith
	}
	expense.UpdatedAt = time.Now()

	if err := s.store.PutExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to cache expense: %w", err)
	}
	return expense, nil
}

// applyGroupOptimistically накладывает update на cache копию
func (s *service) applyGroupOptimistically(ctx context.Context, id string, req api.GroupRequest) (*api.Group, error) {
	group, err := s.store.GetGroup(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrEntityNotFound) {
			group = &api.Group{ID: id, CreatedAt: time.Now()}
		} else {
			return nil, fmt.Errorf("failed to get cached group: %w", err)
		}
	}

	group.Name = req.Name
	if req.Members != nil {
		group.Members = req.Members
	}
	group.UpdatedAt = time.Now()

	if err := s.store.PutGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to cache group: %w", err)
	}
	return group, nil
}

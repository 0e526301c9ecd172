// Package auth хранит сессию пользователя и выдает access token для
// вызовов сервера
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	httpclient "github.com/vincewoo/splitwiser/internal/client/api"
	"github.com/vincewoo/splitwiser/internal/client/storage"
	"github.com/vincewoo/splitwiser/internal/validation"
	"github.com/vincewoo/splitwiser/pkg/api"
)

// Ошибки сервиса авторизации
var (
	// ErrNotAuthenticated нет сохраненной сессии
	ErrNotAuthenticated = errors.New("not authenticated, please login")

	// ErrSessionExpired токен сессии истек, нужен повторный login
	ErrSessionExpired = errors.New("session expired, please login again")
)

// Service предоставляет функции авторизации клиента
type Service struct {
	apiClient httpclient.ClientAPI
	sessions  storage.SessionStorage
}

// NewService создает новый сервис авторизации
func NewService(apiClient httpclient.ClientAPI, sessions storage.SessionStorage) *Service {
	return &Service{
		apiClient: apiClient,
		sessions:  sessions,
	}
}

// Register регистрирует нового пользователя на сервере.
// Пароль уходит на сервер как есть и хешируется там через bcrypt.
func (s *Service) Register(ctx context.Context, username, password string) error {
	if err := validation.ValidateUsername(username); err != nil {
		return fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	_, err := s.apiClient.Register(ctx, api.RegisterRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	return nil
}

// Login аутентифицирует пользователя и сохраняет сессию локально
func (s *Service) Login(ctx context.Context, username, password string) (*storage.Session, error) {
	resp, err := s.apiClient.Login(ctx, api.LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	session := &storage.Session{
		Username:    username,
		AccessToken: resp.AccessToken,
		ExpiresAt:   time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second).Unix(),
	}

	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}

// Logout удаляет локальную сессию. Очередь операций при этом не трогаем:
// после следующего login накопленные мутации продолжат синхронизироваться.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.sessions.DeleteSession(ctx); err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Session возвращает текущую сессию
func (s *Service) Session(ctx context.Context) (*storage.Session, error) {
	session, err := s.sessions.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// AccessToken реализует источник токена для движка синхронизации
func (s *Service) AccessToken(ctx context.Context) (string, error) {
	session, err := s.Session(ctx)
	if err != nil {
		return "", err
	}

	if time.Now().Unix() >= session.ExpiresAt {
		return "", ErrSessionExpired
	}

	return session.AccessToken, nil
}

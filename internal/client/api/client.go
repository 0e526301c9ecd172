package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/vincewoo/splitwiser/pkg/api"
)

// Ошибки уровня протокола. Движок синхронизации различает их через errors.Is:
// конфликт требует решения пользователя, остальное уходит в retry.
var (
	// ErrConflict сервер ответил 409: состояние на сервере разошлось
	// с предположением клиента
	ErrConflict = errors.New("server state conflict")

	// ErrNotFound сервер ответил 404
	ErrNotFound = errors.New("entity not found")
)

//go:generate moq -out client_mock.go . ClientAPI

// ClientAPI определяет интерфейс HTTP клиента origin сервера
type ClientAPI interface {
	// Register регистрирует нового пользователя
	Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error)

	// Login выполняет аутентификацию пользователя
	Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error)

	// Health проверяет доступность сервера
	Health(ctx context.Context) error

	// CreateExpense создает расход, сервер выдает id
	CreateExpense(ctx context.Context, accessToken string, req api.ExpenseRequest) (*api.Expense, error)

	// UpdateExpense обновляет расход; стухшая Version дает ErrConflict
	UpdateExpense(ctx context.Context, accessToken, id string, req api.ExpenseRequest) (*api.Expense, error)

	// DeleteExpense удаляет расход; отсутствие расхода считается успехом
	DeleteExpense(ctx context.Context, accessToken, id string) error

	// ListExpenses возвращает все расходы пользователя
	ListExpenses(ctx context.Context, accessToken string) ([]api.Expense, error)

	// CreateGroup создает группу, сервер выдает id
	CreateGroup(ctx context.Context, accessToken string, req api.GroupRequest) (*api.Group, error)

	// UpdateGroup обновляет группу; стухшая Version дает ErrConflict
	UpdateGroup(ctx context.Context, accessToken, id string, req api.GroupRequest) (*api.Group, error)

	// DeleteGroup удаляет группу; отсутствие группы считается успехом
	DeleteGroup(ctx context.Context, accessToken, id string) error

	// ListGroups возвращает все группы пользователя
	ListGroups(ctx context.Context, accessToken string) ([]api.Group, error)
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Register регистрирует нового пользователя
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error) {
	var resp api.RegisterResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/register", "", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Login выполняет аутентификацию пользователя
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/login", "", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Health проверяет доступность сервера
func (c *Client) Health(ctx context.Context) error {
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/health", "", nil, nil); err != nil {
		return fmt.Errorf("health request failed: %w", err)
	}
	return nil
}

// CreateExpense создает расход на сервере
func (c *Client) CreateExpense(ctx context.Context, accessToken string, req api.ExpenseRequest) (*api.Expense, error) {
	var resp api.Expense
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/expenses", accessToken, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("create expense request failed: %w", err)
	}
	return &resp, nil
}

// UpdateExpense обновляет расход на сервере
func (c *Client) UpdateExpense(ctx context.Context, accessToken, id string, req api.ExpenseRequest) (*api.Expense, error) {
	var resp api.Expense
	path := "/api/v1/expenses/" + url.PathEscape(id)
	err := c.doRequest(ctx, http.MethodPut, path, accessToken, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("update expense request failed: %w", err)
	}
	return &resp, nil
}

// DeleteExpense удаляет расход. 404 трактуется как успех: расхода уже нет.
func (c *Client) DeleteExpense(ctx context.Context, accessToken, id string) error {
	path := "/api/v1/expenses/" + url.PathEscape(id)
	err := c.doRequest(ctx, http.MethodDelete, path, accessToken, nil, nil)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("delete expense request failed: %w", err)
	}
	return nil
}

// ListExpenses возвращает все расходы пользователя
func (c *Client) ListExpenses(ctx context.Context, accessToken string) ([]api.Expense, error) {
	var resp api.ListExpensesResponse
	err := c.doRequest(ctx, http.MethodGet, "/api/v1/expenses", accessToken, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("list expenses request failed: %w", err)
	}
	return resp.Expenses, nil
}

// CreateGroup создает группу на сервере
func (c *Client) CreateGroup(ctx context.Context, accessToken string, req api.GroupRequest) (*api.Group, error) {
	var resp api.Group
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/groups", accessToken, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("create group request failed: %w", err)
	}
	return &resp, nil
}

// UpdateGroup обновляет группу на сервере
func (c *Client) UpdateGroup(ctx context.Context, accessToken, id string, req api.GroupRequest) (*api.Group, error) {
	var resp api.Group
	path := "/api/v1/groups/" + url.PathEscape(id)
	err := c.doRequest(ctx, http.MethodPut, path, accessToken, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("update group request failed: %w", err)
	}
	return &resp, nil
}

// DeleteGroup удаляет группу. 404 трактуется как успех.
func (c *Client) DeleteGroup(ctx context.Context, accessToken, id string) error {
	path := "/api/v1/groups/" + url.PathEscape(id)
	err := c.doRequest(ctx, http.MethodDelete, path, accessToken, nil, nil)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("delete group request failed: %w", err)
	}
	return nil
}

// ListGroups возвращает все группы пользователя
func (c *Client) ListGroups(ctx context.Context, accessToken string) ([]api.Group, error) {
	var resp api.ListGroupsResponse
	err := c.doRequest(ctx, http.MethodGet, "/api/v1/groups", accessToken, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("list groups request failed: %w", err)
	}
	return resp.Groups, nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path, accessToken string, body, result any) error {
	reqURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.statusError(resp.StatusCode, respBody)
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// statusError превращает неуспешный статус в типизированную ошибку
func (c *Client) statusError(statusCode int, respBody []byte) error {
	message := string(respBody)
	var errResp api.ErrorResponse
	if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
		message = errResp.Error
	}

	switch statusCode {
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, message)
	default:
		return fmt.Errorf("server error (%d): %s", statusCode, message)
	}
}

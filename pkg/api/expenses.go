package api

import "time"

// Expense представляет расход в группе
// ID выдается сервером (десятичная строка, autoincrement)
type Expense struct {
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ID          string    `json:"id"`
	GroupID     string    `json:"group_id"`
	Description string    `json:"description"`
	Currency    string    `json:"currency"`
	PaidBy      string    `json:"paid_by"`
	SplitWith   []string  `json:"split_with"`
	Amount      int64     `json:"amount"`  // сумма в минимальных единицах валюты (центы)
	Version     int64     `json:"version"` // инкрементируется сервером при каждом update
}

// ExpenseRequest представляет тело POST /expenses и PUT /expenses/{id}
// Version обязателен только для update: сервер сравнивает его с текущей
// версией и возвращает 409 при расхождении
type ExpenseRequest struct {
	Description string   `json:"description"`
	Currency    string   `json:"currency,omitempty"`
	GroupID     string   `json:"group_id,omitempty"`
	PaidBy      string   `json:"paid_by,omitempty"`
	SplitWith   []string `json:"split_with,omitempty"`
	Amount      int64    `json:"amount"`
	Version     int64    `json:"version,omitempty"`
}

// ListExpensesResponse представляет ответ GET /expenses
type ListExpensesResponse struct {
	Expenses []Expense `json:"expenses"`
}

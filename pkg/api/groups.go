package api

import "time"

// Group представляет группу участников, делящих расходы
type Group struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Members   []string  `json:"members"`
	Version   int64     `json:"version"`
}

// GroupRequest представляет тело POST /groups и PUT /groups/{id}
type GroupRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members,omitempty"`
	Version int64    `json:"version,omitempty"`
}

// ListGroupsResponse представляет ответ GET /groups
type ListGroupsResponse struct {
	Groups []Group `json:"groups"`
}

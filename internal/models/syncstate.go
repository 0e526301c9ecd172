package models

import "time"

// SyncStatus агрегированный статус движка синхронизации
type SyncStatus string

const (
	SyncIdle     SyncStatus = "idle"
	SyncSyncing  SyncStatus = "syncing"
	SyncError    SyncStatus = "error"
	SyncConflict SyncStatus = "conflict"
)

// SyncState is the observable state of the sync engine. It is published to
// subscribers on every transition and never persisted.
type SyncState struct {
	LastSync     *time.Time         `json:"last_sync,omitempty"`
	Status       SyncStatus         `json:"status"`
	Errors       []string           `json:"errors,omitempty"`
	Conflicts    []PendingOperation `json:"conflicts,omitempty"`
	PendingCount int                `json:"pending_count"`
}

// Clone returns a deep enough copy for handing to subscribers: slices are
// copied so a subscriber cannot mutate engine state.
func (s SyncState) Clone() SyncState {
	out := s
	if s.LastSync != nil {
		ts := *s.LastSync
		out.LastSync = &ts
	}
	if len(s.Errors) > 0 {
		out.Errors = append([]string(nil), s.Errors...)
	}
	if len(s.Conflicts) > 0 {
		out.Conflicts = append([]PendingOperation(nil), s.Conflicts...)
	}
	return out
}

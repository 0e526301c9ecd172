package cli

import (
	"context"
	"errors"
	"time"

	"github.com/vincewoo/splitwiser/internal/client/auth"
	"github.com/vincewoo/splitwiser/internal/models"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Status ===")
	c.io.Println()

	session, err := c.authService.Session(ctx)
	switch {
	case errors.Is(err, auth.ErrNotAuthenticated):
		c.io.Println("Session: not authenticated")
		c.io.Println("Run 'splitwiser login' to authenticate.")
	case err != nil:
		return err
	default:
		expiresAt := time.Unix(session.ExpiresAt, 0)
		c.io.Printf("Session: %s\n", session.Username)
		if time.Now().Before(expiresAt) {
			c.io.Printf("Token expires: %s\n", expiresAt.Format(time.RFC3339))
		} else {
			c.io.Println("Token has expired. Please login again.")
		}
	}

	state := c.syncService.State()

	c.io.Println()
	c.io.Printf("Sync status: %s\n", state.Status)
	c.io.Printf("Pending operations: %d\n", state.PendingCount)
	if state.LastSync != nil {
		c.io.Printf("Last sync: %s\n", state.LastSync.Format(time.RFC3339))
	} else {
		c.io.Println("Last sync: never")
	}

	if len(state.Conflicts) > 0 {
		c.io.Printf("Conflicts: %d (run 'splitwiser conflicts' for details)\n", len(state.Conflicts))
	}
	if state.Status == models.SyncError {
		for _, msg := range state.Errors {
			c.io.Printf("  error: %s\n", msg)
		}
	}

	return nil
}

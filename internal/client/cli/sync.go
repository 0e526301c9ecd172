package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/vincewoo/splitwiser/internal/models"
)

func (c *Cli) runSync(ctx context.Context) error {
	if !c.syncService.Online() {
		return fmt.Errorf("offline mode, nothing to sync")
	}

	c.io.Println("Syncing...")

	if err := c.syncService.Sync(ctx); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	state := c.syncService.State()
	switch state.Status {
	case models.SyncConflict:
		c.io.Printf("Sync finished with %d conflict(s). Run 'splitwiser conflicts' for details.\n", len(state.Conflicts))
	case models.SyncError:
		c.io.Println("Sync finished with errors:")
		for _, msg := range state.Errors {
			c.io.Printf("  %s\n", msg)
		}
		c.io.Printf("%d operation(s) still queued.\n", state.PendingCount)
	default:
		c.io.Println("✓ All operations synchronized.")
	}

	return nil
}

func (c *Cli) runRetry(ctx context.Context) error {
	c.io.Println("Retrying failed and conflicted operations...")

	if err := c.syncService.RetryFailed(ctx); err != nil {
		return fmt.Errorf("retry failed: %w", err)
	}

	state := c.syncService.State()
	if state.Status == models.SyncIdle {
		c.io.Println("✓ All operations synchronized.")
	} else {
		c.io.Printf("Sync status: %s, %d operation(s) queued.\n", state.Status, state.PendingCount)
	}

	return nil
}

func (c *Cli) runDiscard(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing operation id. Usage: splitwiser discard <op-id>")
	}

	opID := args[0]
	if err := c.syncService.DiscardOperation(ctx, opID); err != nil {
		return fmt.Errorf("failed to discard operation: %w", err)
	}

	c.io.Printf("✓ Operation %s discarded.\n", opID)

	return nil
}

func (c *Cli) runPending(ctx context.Context) error {
	ops, err := c.syncService.ListOperations(ctx)
	if err != nil {
		return fmt.Errorf("failed to list operations: %w", err)
	}

	if len(ops) == 0 {
		c.io.Println("No queued operations.")
		return nil
	}

	c.io.Printf("Found %d queued operation(s):\n", len(ops))
	c.io.Println()
	for _, op := range ops {
		c.printOperation(op)
	}

	return nil
}

func (c *Cli) runConflicts(ctx context.Context) error {
	state := c.syncService.State()

	if len(state.Conflicts) == 0 {
		c.io.Println("No conflicts.")
		return nil
	}

	c.io.Printf("Found %d conflicted operation(s):\n", len(state.Conflicts))
	c.io.Println()
	for i := range state.Conflicts {
		c.printOperation(&state.Conflicts[i])
	}
	c.io.Println("Resolve with 'splitwiser retry' after fixing, or 'splitwiser discard <op-id>'.")

	return nil
}

func (c *Cli) printOperation(op *models.PendingOperation) {
	c.io.Printf("- %s\n", op.ID)
	c.io.Printf("  kind:    %s\n", op.Kind)
	c.io.Printf("  entity:  %s\n", op.EntityID)
	c.io.Printf("  status:  %s\n", op.Status)
	c.io.Printf("  created: %s\n", op.CreatedAt.Format(time.RFC3339))
	if op.RetryCount > 0 {
		c.io.Printf("  retries: %d\n", op.RetryCount)
	}
	if op.LastError != "" {
		c.io.Printf("  error:   %s\n", op.LastError)
	}
	c.io.Println()
}

// Package cli реализует команды клиента splitwiser
package cli

import (
	"context"
	"fmt"

	"github.com/vincewoo/splitwiser/internal/client/auth"
	"github.com/vincewoo/splitwiser/internal/client/data"
	"github.com/vincewoo/splitwiser/internal/client/iocli"
	"github.com/vincewoo/splitwiser/internal/client/syncer"
)

type Cli struct {
	io          iocli.IO
	authService *auth.Service
	dataService data.Service
	syncService *syncer.Service
}

func New(io iocli.IO, authService *auth.Service, dataService data.Service, syncService *syncer.Service) *Cli {
	return &Cli{
		io:          io,
		authService: authService,
		dataService: dataService,
		syncService: syncService,
	}
}

// Run выполняет команду и возвращает ошибку вызывающему;
// коды выхода — забота cmd/client
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return c.runRegister(ctx)
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "sync":
		return c.runSync(ctx)
	case "retry":
		return c.runRetry(ctx)
	case "discard":
		return c.runDiscard(ctx, args)
	case "pending":
		return c.runPending(ctx)
	case "conflicts":
		return c.runConflicts(ctx)
	case "group":
		return c.runGroup(ctx, args)
	case "expense":
		return c.runExpense(ctx, args)
	default:
		c.PrintUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func (c *Cli) PrintUsage() {
	c.io.Println("Splitwiser Client")
	c.io.Println()
	c.io.Println("Usage:")
	c.io.Println("  splitwiser [OPTIONS] COMMAND")
	c.io.Println()
	c.io.Println("Options:")
	c.io.Println("  --version          Show version information")
	c.io.Println("  --server URL       Server URL (default: http://localhost:8080)")
	c.io.Println("  --db PATH          Path to local database (default: splitwiser-client.db)")
	c.io.Println("  --offline          Work offline, queue all mutations")
	c.io.Println()
	c.io.Println("Commands:")
	c.io.Println("  register                   Register new user")
	c.io.Println("  login                      Login to server")
	c.io.Println("  logout                     Logout (local session only)")
	c.io.Println("  status                     Show session and sync state")
	c.io.Println("  sync                       Push queued operations to server")
	c.io.Println("  retry                      Re-queue failed and conflicted operations, then sync")
	c.io.Println("  discard <op-id>            Drop a queued operation")
	c.io.Println("  pending                    List queued operations")
	c.io.Println("  conflicts                  List operations waiting on a conflict")
	c.io.Println("  group add|list             Manage groups")
	c.io.Println("  expense add|edit|delete|list  Manage expenses")
	c.io.Println()
	c.io.Println("Examples:")
	c.io.Println("  splitwiser register")
	c.io.Println("  splitwiser group add -name 'Ski trip' -members alice,bob")
	c.io.Println("  splitwiser expense add -description Dinner -amount 42.50 -group 7")
	c.io.Println("  splitwiser --offline expense add -description Taxi -amount 12.00")
	c.io.Println("  splitwiser sync")
	c.io.Println("  splitwiser --server https://example.com login")
}

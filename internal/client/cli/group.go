package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/vincewoo/splitwiser/internal/models"
	"github.com/vincewoo/splitwiser/pkg/api"
)

func (c *Cli) runGroup(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. Usage: splitwiser group <add|list>")
	}

	switch args[0] {
	case "add":
		return c.runGroupAdd(ctx, args[1:])
	case "list":
		return c.runGroupList(ctx)
	default:
		return fmt.Errorf("unknown group subcommand: %s. Use: add, list", args[0])
	}
}

func (c *Cli) runGroupAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("group add", flag.ContinueOnError)
	name := fs.String("name", "", "Group name")
	members := fs.String("members", "", "Comma-separated member names")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *name == "" {
		// Имя можно ввести интерактивно
		input, err := c.io.ReadInput("Group name: ")
		if err != nil {
			return fmt.Errorf("failed to read group name: %w", err)
		}
		*name = input
	}

	req := api.GroupRequest{Name: *name}
	if *members != "" {
		for _, m := range strings.Split(*members, ",") {
			if m = strings.TrimSpace(m); m != "" {
				req.Members = append(req.Members, m)
			}
		}
	}

	group, err := c.dataService.CreateGroup(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}

	if models.IsTempID(group.ID) {
		c.io.Printf("✓ Group '%s' queued for creation (temporary id %s).\n", group.Name, group.ID)
		c.io.Println("It will get its real id on the next sync.")
	} else {
		c.io.Printf("✓ Group '%s' created with id %s.\n", group.Name, group.ID)
	}

	return nil
}

func (c *Cli) runGroupList(ctx context.Context) error {
	groups, err := c.dataService.ListGroups(ctx)
	if err != nil {
		return fmt.Errorf("failed to list groups: %w", err)
	}

	if len(groups) == 0 {
		c.io.Println("No groups found.")
		c.io.Println()
		c.io.Println("Use 'splitwiser group add' to create your first group.")
		return nil
	}

	c.io.Printf("Found %d group(s):\n", len(groups))
	c.io.Println()
	for _, group := range groups {
		c.io.Printf("- %s\n", group.Name)
		c.io.Printf("  ID: %s%s\n", group.ID, pendingMarker(group.ID))
		if len(group.Members) > 0 {
			c.io.Printf("  Members: %s\n", strings.Join(group.Members, ", "))
		}
		c.io.Println()
	}

	return nil
}

// pendingMarker помечает сущности, еще не получившие серверный id
func pendingMarker(id string) string {
	if models.IsTempID(id) {
		return " (pending sync)"
	}
	return ""
}

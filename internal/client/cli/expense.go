package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/vincewoo/splitwiser/internal/models"
	"github.com/vincewoo/splitwiser/pkg/api"
)

func (c *Cli) runExpense(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. Usage: splitwiser expense <add|edit|delete|list>")
	}

	switch args[0] {
	case "add":
		return c.runExpenseAdd(ctx, args[1:])
	case "edit":
		return c.runExpenseEdit(ctx, args[1:])
	case "delete":
		return c.runExpenseDelete(ctx, args[1:])
	case "list":
		return c.runExpenseList(ctx, args[1:])
	default:
		return fmt.Errorf("unknown expense subcommand: %s. Use: add, edit, delete, list", args[0])
	}
}

func (c *Cli) runExpenseAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("expense add", flag.ContinueOnError)
	description := fs.String("description", "", "Expense description")
	amount := fs.String("amount", "", "Amount, e.g. 42.50")
	currency := fs.String("currency", "", "Currency code, e.g. USD")
	groupID := fs.String("group", "", "Group id")
	paidBy := fs.String("paid-by", "", "Who paid")
	splitWith := fs.String("split-with", "", "Comma-separated participants")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *description == "" {
		input, err := c.io.ReadInput("Description: ")
		if err != nil {
			return fmt.Errorf("failed to read description: %w", err)
		}
		*description = input
	}
	if *amount == "" {
		input, err := c.io.ReadInput("Amount: ")
		if err != nil {
			return fmt.Errorf("failed to read amount: %w", err)
		}
		*amount = input
	}

	minor, err := models.ParseAmount(*amount)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}

	req := api.ExpenseRequest{
		Description: *description,
		Amount:      minor,
		Currency:    *currency,
		GroupID:     *groupID,
		PaidBy:      *paidBy,
	}
	if *splitWith != "" {
		for _, m := range strings.Split(*splitWith, ",") {
			if m = strings.TrimSpace(m); m != "" {
				req.SplitWith = append(req.SplitWith, m)
			}
		}
	}

	expense, err := c.dataService.CreateExpense(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	if models.IsTempID(expense.ID) {
		c.io.Printf("✓ Expense '%s' (%s) queued for creation (temporary id %s).\n",
			expense.Description, models.FormatAmount(expense.Amount), expense.ID)
	} else {
		c.io.Printf("✓ Expense '%s' (%s) created with id %s.\n",
			expense.Description, models.FormatAmount(expense.Amount), expense.ID)
	}

	return nil
}

func (c *Cli) runExpenseEdit(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing expense id. Usage: splitwiser expense edit <id> [flags]")
	}
	id := args[0]

	current, err := c.dataService.GetExpense(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get expense: %w", err)
	}

	fs := flag.NewFlagSet("expense edit", flag.ContinueOnError)
	description := fs.String("description", current.Description, "Expense description")
	amount := fs.String("amount", models.FormatAmount(current.Amount), "Amount, e.g. 42.50")
	currency := fs.String("currency", current.Currency, "Currency code")
	paidBy := fs.String("paid-by", current.PaidBy, "Who paid")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	minor, err := models.ParseAmount(*amount)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}

	req := api.ExpenseRequest{
		Description: *description,
		Amount:      minor,
		Currency:    *currency,
		GroupID:     current.GroupID,
		PaidBy:      *paidBy,
		SplitWith:   current.SplitWith,
		Version:     current.Version,
	}

	updated, err := c.dataService.UpdateExpense(ctx, id, req)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}

	c.io.Printf("✓ Expense %s updated: %s (%s).\n",
		id, updated.Description, models.FormatAmount(updated.Amount))

	return nil
}

func (c *Cli) runExpenseDelete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing expense id. Usage: splitwiser expense delete <id>")
	}
	id := args[0]

	if err := c.dataService.DeleteExpense(ctx, id); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	c.io.Printf("✓ Expense %s deleted.\n", id)

	return nil
}

func (c *Cli) runExpenseList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("expense list", flag.ContinueOnError)
	groupID := fs.String("group", "", "Only expenses of this group")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var expenses []*api.Expense
	var err error
	if *groupID != "" {
		expenses, err = c.dataService.ListExpensesByGroup(ctx, *groupID)
	} else {
		expenses, err = c.dataService.ListExpenses(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to list expenses: %w", err)
	}

	if len(expenses) == 0 {
		c.io.Println("No expenses found.")
		c.io.Println()
		c.io.Println("Use 'splitwiser expense add' to record your first expense.")
		return nil
	}

	c.io.Printf("Found %d expense(s):\n", len(expenses))
	c.io.Println()
	var total int64
	for _, expense := range expenses {
		c.io.Printf("- %s: %s", expense.Description, models.FormatAmount(expense.Amount))
		if expense.Currency != "" {
			c.io.Printf(" %s", expense.Currency)
		}
		c.io.Println()
		c.io.Printf("  ID: %s%s\n", expense.ID, pendingMarker(expense.ID))
		if expense.GroupID != "" {
			c.io.Printf("  Group: %s\n", expense.GroupID)
		}
		if expense.PaidBy != "" {
			c.io.Printf("  Paid by: %s\n", expense.PaidBy)
		}
		if len(expense.SplitWith) > 0 {
			c.io.Printf("  Split with: %s\n", strings.Join(expense.SplitWith, ", "))
		}
		c.io.Println()
		total += expense.Amount
	}
	c.io.Printf("Total: %s\n", models.FormatAmount(total))

	return nil
}

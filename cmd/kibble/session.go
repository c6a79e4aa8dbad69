package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kibble-money/kibble/internal/cli"
	"github.com/kibble-money/kibble/internal/config"
	"github.com/kibble-money/kibble/internal/ledger"
	"github.com/kibble-money/kibble/internal/service"
	"github.com/kibble-money/kibble/internal/storage"
)

func sessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Interactive budgeting session",
		Long: `Start the menu-driven budgeting session: add or remove categories, record
expenses, review the summary, then save and exit. Nothing is written to disk
until you choose "Save & Exit".`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := storage.NewJSONStore(config.DataFile())
			return runSession(cmd.Context(), store, os.Stdin, os.Stdout)
		},
	}
}

// runSession drives the interactive menu loop. The budget is loaded once at
// startup and written back only on an explicit save-and-exit.
func runSession(ctx context.Context, store service.Storage, in io.Reader, out io.Writer) error {
	led, err := ledger.Open(store)
	if err != nil {
		return fmt.Errorf("failed to load budget: %w", err)
	}

	prompter := cli.NewPrompter(in, out)
	fmt.Fprintln(out, cli.FormatTitle("Welcome to kibble!"))

	for {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Choose an option:")
		fmt.Fprintln(out, "  1. Add a new category")
		fmt.Fprintln(out, "  2. Remove a category")
		fmt.Fprintln(out, "  3. Add an expense")
		fmt.Fprintln(out, "  4. Show summary")
		fmt.Fprintln(out, "  5. Save & Exit")

		choice, err := prompter.ReadChoice(ctx, "Enter choice (1-5)", []string{"1", "2", "3", "4", "5"})
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = sessionAddCategory(ctx, prompter, led, out)
		case "2":
			err = sessionRemoveCategory(ctx, prompter, led, out)
		case "3":
			err = sessionAddExpense(ctx, prompter, led, out)
		case "4":
			renderSummary(out, led.Summarize())
		case "5":
			if err := led.Save(store); err != nil {
				return fmt.Errorf("failed to save budget: %w", err)
			}
			fmt.Fprintln(out, cli.FormatSuccess("Budget saved. Keep your tail wagging!"))
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func sessionAddCategory(ctx context.Context, prompter service.Prompter, led *ledger.Ledger, out io.Writer) error {
	name, err := prompter.ReadLine(ctx, "Category name (e.g., dog treats)")
	if err != nil {
		return err
	}
	if _, exists := led.Category(name); exists {
		fmt.Fprintln(out, cli.FormatError(fmt.Sprintf("Category %q already exists!", ledger.Normalize(name))))
		return nil
	}

	derived, err := prompter.Confirm(ctx, fmt.Sprintf("Would you like help setting a budget limit for %q?", ledger.Normalize(name)))
	if err != nil {
		return err
	}

	if derived {
		income, err := prompter.ReadDecimal(ctx, "What is your total income?")
		if err != nil {
			return err
		}
		percent, err := prompter.ReadDecimal(ctx, "What percentage of your income should go here? (e.g. 20 for 20%)")
		if err != nil {
			return err
		}

		category, addErr := led.AddCategoryFromIncome(name, income, percent)
		if addErr != nil {
			return reportError(out, addErr)
		}
		fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Added category %q with limit %s", category.Name, money(category.Limit))))
		return nil
	}

	limit, err := prompter.ReadDecimal(ctx, fmt.Sprintf("Budget limit for %q", ledger.Normalize(name)))
	if err != nil {
		return err
	}

	category, addErr := led.AddCategory(name, limit)
	if addErr != nil {
		return reportError(out, addErr)
	}
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Added category %q with limit %s", category.Name, money(category.Limit))))
	return nil
}

func sessionRemoveCategory(ctx context.Context, prompter service.Prompter, led *ledger.Ledger, out io.Writer) error {
	name, err := prompter.ReadLine(ctx, "Category name to remove")
	if err != nil {
		return err
	}
	if _, exists := led.Category(name); !exists {
		fmt.Fprintln(out, cli.FormatError(fmt.Sprintf("No such category: %s", ledger.Normalize(name))))
		return nil
	}

	confirmed, err := prompter.Confirm(ctx, fmt.Sprintf("Are you sure you want to remove the category %q?", ledger.Normalize(name)))
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Fprintln(out, cli.FormatInfo("Category removal cancelled."))
		return nil
	}

	if removeErr := led.RemoveCategory(name); removeErr != nil {
		return reportError(out, removeErr)
	}
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Removed category: %s", ledger.Normalize(name))))
	return nil
}

func sessionAddExpense(ctx context.Context, prompter service.Prompter, led *ledger.Ledger, out io.Writer) error {
	name, err := prompter.ReadLine(ctx, "Category name")
	if err != nil {
		return err
	}
	amount, err := prompter.ReadDecimal(ctx, "Expense amount")
	if err != nil {
		return err
	}

	outcome, addErr := led.AddExpense(name, amount)
	if addErr != nil {
		return reportError(out, addErr)
	}

	if outcome.NeedsConfirmation {
		fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf(
			"Adding %s exceeds the budget limit for %q by %s.",
			money(outcome.Amount), outcome.Category, money(outcome.Overrun))))

		confirmed, err := prompter.Confirm(ctx, "Would you still like to proceed?")
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(out, cli.FormatInfo("Expense not added."))
			return nil
		}

		if outcome, addErr = led.ConfirmExpense(name, amount); addErr != nil {
			return reportError(out, addErr)
		}
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Added expense of %s to %q", money(amount), outcome.Category)))
	if outcome.Overrun.IsPositive() {
		fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("You have exceeded the budget for %q!", outcome.Category)))
	}
	return nil
}

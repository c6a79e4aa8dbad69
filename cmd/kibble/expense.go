package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kibble-money/kibble/internal/cli"
)

func expenseCmd() *cobra.Command {
	var preConfirmed bool

	cmd := &cobra.Command{
		Use:   "expense <category> <amount>",
		Short: "Record an expense",
		Long: `Record an expense against a category. If the expense would push spending past
the category's limit, kibble asks before committing it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			led, store, err := openLedger()
			if err != nil {
				return err
			}

			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}

			outcome, err := led.AddExpense(args[0], amount)
			if err != nil {
				return err
			}

			if outcome.NeedsConfirmation {
				if !preConfirmed {
					fmt.Println(cli.FormatWarning(fmt.Sprintf(
						"Adding %s exceeds the budget limit for %q by %s.",
						money(outcome.Amount), outcome.Category, money(outcome.Overrun))))

					prompter := cli.NewPrompter(os.Stdin, os.Stdout)
					confirmed, err := prompter.Confirm(cmd.Context(), "Add it anyway?")
					if err != nil {
						return err
					}
					if !confirmed {
						fmt.Println(cli.FormatInfo("Expense not added."))
						return nil
					}
				}

				if outcome, err = led.ConfirmExpense(args[0], amount); err != nil {
					return err
				}
			}

			if err := led.Save(store); err != nil {
				return fmt.Errorf("failed to save budget: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added expense of %s to %q", money(amount), outcome.Category)))
			if outcome.Overrun.IsPositive() {
				fmt.Println(cli.FormatWarning(fmt.Sprintf("You have exceeded the budget for %q!", outcome.Category)))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&preConfirmed, "yes", false, "Commit over-budget expenses without prompting")

	return cmd
}

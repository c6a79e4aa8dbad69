package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kibble-money/kibble/internal/cli"
	"github.com/kibble-money/kibble/internal/common"
	"github.com/kibble-money/kibble/internal/ledger"
	"github.com/kibble-money/kibble/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage budget categories",
		Long:  `List, add, and remove the spending categories that make up your budget.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(removeCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		Long:  `Display every budget category with its limit, spend, and remaining balance.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			led, _, err := openLedger()
			if err != nil {
				return err
			}

			if led.Len() == 0 {
				fmt.Println(cli.InfoStyle.Render("No categories yet. Use 'kibble categories add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("Category"),
				cli.TableHeaderStyle.Render("Limit"),
				cli.TableHeaderStyle.Render("Spent"),
				cli.TableHeaderStyle.Render("Remaining"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 20),
				strings.Repeat("-", 10),
				strings.Repeat("-", 10),
				strings.Repeat("-", 10))

			for _, cat := range led.Categories() {
				remaining := money(cat.Remaining())
				if cat.Exceeded() {
					remaining = cli.WarningStyle.Render(remaining + " (over budget)")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", cat.Name, money(cat.Limit), money(cat.Spent), remaining)
			}

			return nil
		},
	}
}

func addCategoryCmd() *cobra.Command {
	var (
		limitFlag   string
		incomeFlag  string
		percentFlag string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Long: `Create a new budget category with an explicit --limit, or derive the limit
from --income and --percent (limit = income * percent / 100).`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			led, store, err := openLedger()
			if err != nil {
				return err
			}

			var category *model.Category
			switch {
			case limitFlag != "" && (incomeFlag != "" || percentFlag != ""):
				return fmt.Errorf("--limit cannot be combined with --income/--percent")
			case incomeFlag != "" || percentFlag != "":
				if incomeFlag == "" || percentFlag == "" {
					return fmt.Errorf("--income and --percent must be used together")
				}
				income, err := parseAmount(incomeFlag)
				if err != nil {
					return err
				}
				percent, err := parseAmount(percentFlag)
				if err != nil {
					return err
				}
				category, err = led.AddCategoryFromIncome(args[0], income, percent)
				if err != nil {
					return err
				}
			case limitFlag != "":
				limit, err := parseAmount(limitFlag)
				if err != nil {
					return err
				}
				category, err = led.AddCategory(args[0], limit)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("either --limit or --income/--percent is required")
			}

			if err := led.Save(store); err != nil {
				return fmt.Errorf("failed to save budget: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added category %q with limit %s", category.Name, money(category.Limit))))
			return nil
		},
	}

	cmd.Flags().StringVar(&limitFlag, "limit", "", "Budget limit for the category")
	cmd.Flags().StringVar(&incomeFlag, "income", "", "Total income, for a derived limit")
	cmd.Flags().StringVar(&percentFlag, "percent", "", "Percentage of income to allocate (0-100)")

	return cmd
}

func removeCategoryCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a category",
		Long:  `Remove a category from the budget. Asks for confirmation unless --force is given.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			led, store, err := openLedger()
			if err != nil {
				return err
			}

			name := ledger.Normalize(args[0])
			if _, exists := led.Category(name); !exists {
				return common.NewUserError(fmt.Sprintf("No such category: %s", name), common.ErrCategoryNotFound)
			}

			// Confirm removal
			if !force {
				prompter := cli.NewPrompter(os.Stdin, os.Stdout)
				confirmed, err := prompter.Confirm(cmd.Context(), fmt.Sprintf("Are you sure you want to remove the category %q?", name))
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Println(cli.FormatInfo("Category removal cancelled."))
					return nil
				}
			}

			if err := led.RemoveCategory(name); err != nil {
				return err
			}
			if err := led.Save(store); err != nil {
				return fmt.Errorf("failed to save budget: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Removed category: %s", name)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}

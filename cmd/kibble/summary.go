package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kibble-money/kibble/internal/cli"
	"github.com/kibble-money/kibble/internal/ledger"
)

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the budget summary",
		Long:  `Show every category's spend, limit, and remaining balance, plus the total spent.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			led, _, err := openLedger()
			if err != nil {
				return err
			}

			renderSummary(os.Stdout, led.Summarize())
			return nil
		},
	}
}

// renderSummary writes the per-category table plus the total spend. Shared by
// the summary command and the interactive session.
func renderSummary(out io.Writer, summary ledger.Summary) {
	fmt.Fprintln(out, cli.FormatTitle("Budget Summary"))

	if len(summary.Lines) == 0 {
		fmt.Fprintln(out, cli.InfoStyle.Render("No categories yet. Add one to get started."))
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		cli.TableHeaderStyle.Render("Category"),
		cli.TableHeaderStyle.Render("Spent"),
		cli.TableHeaderStyle.Render("Limit"),
		cli.TableHeaderStyle.Render("Remaining"))

	for _, line := range summary.Lines {
		remaining := money(line.Remaining)
		if line.Exceeded {
			remaining = cli.WarningStyle.Render(remaining)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", line.Name, money(line.Spent), money(line.Limit), remaining)
	}
	_ = w.Flush()

	for _, line := range summary.Lines {
		if line.Exceeded {
			fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("You have exceeded the budget for %q!", line.Name)))
		}
	}

	fmt.Fprintf(out, "Total Spent: %s\n", money(summary.TotalSpent))
}

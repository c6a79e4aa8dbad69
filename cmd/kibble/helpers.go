package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kibble-money/kibble/internal/cli"
	"github.com/kibble-money/kibble/internal/common"
	"github.com/kibble-money/kibble/internal/config"
	"github.com/kibble-money/kibble/internal/ledger"
	"github.com/kibble-money/kibble/internal/storage"
)

// openLedger loads the budget from the configured data file.
func openLedger() (*ledger.Ledger, *storage.JSONStore, error) {
	store := storage.NewJSONStore(config.DataFile())
	led, err := ledger.Open(store)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load budget: %w", err)
	}
	return led, store, nil
}

// parseAmount converts raw user input into a decimal amount.
func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, common.NewUserError(fmt.Sprintf("%q is not a valid number", raw), common.ErrInvalidInput)
	}
	return amount, nil
}

// money renders an amount for display.
func money(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// reportError prints recoverable domain errors to the user and returns nil so
// the caller keeps running; anything else propagates.
func reportError(out io.Writer, err error) error {
	if err == nil {
		return nil
	}
	if common.IsRecoverable(err) {
		fmt.Fprintln(out, cli.FormatError(err.Error()))
		return nil
	}
	return err
}

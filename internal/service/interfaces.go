// Package service defines the interfaces the CLI wires together.
package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/kibble-money/kibble/internal/model"
)

// Storage defines the contract for the persistence layer: whole-state load
// and save of the category mapping. There is no partial update; Save replaces
// everything that was stored before.
type Storage interface {
	Load() (map[string]*model.Category, error)
	Save(categories map[string]*model.Category) error
}

// Prompter collects blocking interactive input from the user. Every method
// suspends until the user supplies an explicit response; there is no timeout
// and no default.
type Prompter interface {
	Confirm(ctx context.Context, question string) (bool, error)
	ReadLine(ctx context.Context, prompt string) (string, error)
	ReadDecimal(ctx context.Context, prompt string) (decimal.Decimal, error)
	ReadChoice(ctx context.Context, prompt string, validChoices []string) (string, error)
}

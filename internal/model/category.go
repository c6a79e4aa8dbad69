// Package model defines the core domain types for the budget tracker.
package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kibble-money/kibble/internal/common"
)

// Category is a single named budget bucket: a spending limit and the amount
// spent against it so far. Spending past the limit is permitted but flagged,
// never silently.
type Category struct {
	Name  string
	Limit decimal.Decimal
	Spent decimal.Decimal
}

// New creates a Category with zero accumulated spend. The name must be
// non-blank after trimming. Limit validation (non-negativity) is the ledger's
// responsibility, not the model's.
func New(name string, limit decimal.Decimal) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name cannot be blank", common.ErrInvalidInput)
	}

	return &Category{
		Name:  name,
		Limit: limit,
		Spent: decimal.Zero,
	}, nil
}

// ExpenseOutcome reports what happened, or would happen, when an expense is
// applied to a category.
type ExpenseOutcome struct {
	Category          string
	Amount            decimal.Decimal
	Projected         decimal.Decimal
	Overrun           decimal.Decimal
	Committed         bool
	NeedsConfirmation bool
}

// Apply records amount against the category when the projected spend stays
// within the limit. An expense that would push spend past the limit is not
// committed; the returned outcome has NeedsConfirmation set so the caller can
// ask the user and follow up with ForceApply.
func (c *Category) Apply(amount decimal.Decimal) ExpenseOutcome {
	projected := c.Spent.Add(amount)
	if projected.GreaterThan(c.Limit) {
		return ExpenseOutcome{
			Category:          c.Name,
			Amount:            amount,
			Projected:         projected,
			Overrun:           projected.Sub(c.Limit),
			NeedsConfirmation: true,
		}
	}

	c.Spent = projected
	return ExpenseOutcome{
		Category:  c.Name,
		Amount:    amount,
		Projected: projected,
		Committed: true,
	}
}

// ForceApply commits amount regardless of the limit. Callers use this after
// the user has explicitly confirmed an overage.
func (c *Category) ForceApply(amount decimal.Decimal) ExpenseOutcome {
	c.Spent = c.Spent.Add(amount)

	outcome := ExpenseOutcome{
		Category:  c.Name,
		Amount:    amount,
		Projected: c.Spent,
		Committed: true,
	}
	if c.Spent.GreaterThan(c.Limit) {
		outcome.Overrun = c.Spent.Sub(c.Limit)
	}
	return outcome
}

// Remaining returns limit - spent. Negative once the budget is exceeded.
func (c *Category) Remaining() decimal.Decimal {
	return c.Limit.Sub(c.Spent)
}

// Exceeded reports whether accumulated spend has passed the limit.
func (c *Category) Exceeded() bool {
	return c.Spent.GreaterThan(c.Limit)
}

// categoryRecord is the fixed on-disk shape of a category. Pointer fields let
// Unmarshal distinguish absent fields from zero values.
type categoryRecord struct {
	Name  *string      `json:"name"`
	Limit *json.Number `json:"limit"`
	Spent *json.Number `json:"spent"`
}

// MarshalJSON encodes the category as {"name": ..., "limit": ..., "spent": ...}
// with limit and spent as JSON numbers.
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name  string      `json:"name"`
		Limit json.Number `json:"limit"`
		Spent json.Number `json:"spent"`
	}{
		Name:  c.Name,
		Limit: json.Number(c.Limit.String()),
		Spent: json.Number(c.Spent.String()),
	})
}

// UnmarshalJSON decodes a persisted category. All three fields must be
// present and well-typed, otherwise the record is malformed.
func (c *Category) UnmarshalJSON(data []byte) error {
	var rec categoryRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("%w: %v", common.ErrMalformedRecord, err)
	}
	if rec.Name == nil || rec.Limit == nil || rec.Spent == nil {
		return fmt.Errorf("%w: name, limit and spent are all required", common.ErrMalformedRecord)
	}

	limit, err := decimal.NewFromString(rec.Limit.String())
	if err != nil {
		return fmt.Errorf("%w: limit %q is not a number", common.ErrMalformedRecord, rec.Limit.String())
	}
	spent, err := decimal.NewFromString(rec.Spent.String())
	if err != nil {
		return fmt.Errorf("%w: spent %q is not a number", common.ErrMalformedRecord, rec.Spent.String())
	}

	c.Name = *rec.Name
	c.Limit = limit
	c.Spent = spent
	return nil
}

// Package ledger owns the collection of budget categories and exposes the
// operations the presentation shell maps its commands onto.
package ledger

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kibble-money/kibble/internal/common"
	"github.com/kibble-money/kibble/internal/model"
	"github.com/kibble-money/kibble/internal/service"
)

var oneHundred = decimal.NewFromInt(100)

// Ledger holds every category keyed by normalized name. Invariant: each key
// equals its category's Name. Insertion order is kept for display.
type Ledger struct {
	categories map[string]*model.Category
	order      []string
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{categories: make(map[string]*model.Category)}
}

// Open loads persisted state from store into a fresh ledger. A store with no
// saved data yields an empty ledger. The stored mapping carries no order, so
// display order after a load is sorted by name.
func Open(store service.Storage) (*Ledger, error) {
	categories, err := store.Load()
	if err != nil {
		return nil, err
	}

	l := &Ledger{
		categories: categories,
		order:      make([]string, 0, len(categories)),
	}
	for name := range categories {
		l.order = append(l.order, name)
	}
	sort.Strings(l.order)

	slog.Debug("ledger loaded", "categories", len(l.order))
	return l, nil
}

// Save persists the full category mapping to store, replacing any prior
// contents.
func (l *Ledger) Save(store service.Storage) error {
	return store.Save(l.categories)
}

// Normalize trims and lowercases a category name the way every ledger
// operation does.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// DerivedLimit computes a budget limit as a percentage of income. Income must
// be non-negative and percent within [0, 100].
func DerivedLimit(income, percent decimal.Decimal) (decimal.Decimal, error) {
	if income.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%w: income cannot be negative", common.ErrInvalidInput)
	}
	if percent.IsNegative() || percent.GreaterThan(oneHundred) {
		return decimal.Decimal{}, fmt.Errorf("%w: percentage must be between 0 and 100", common.ErrInvalidInput)
	}
	return income.Mul(percent).Div(oneHundred), nil
}

// AddCategory creates a category with an explicit limit.
func (l *Ledger) AddCategory(name string, limit decimal.Decimal) (*model.Category, error) {
	key := Normalize(name)
	if key == "" {
		return nil, fmt.Errorf("%w: category name cannot be blank", common.ErrInvalidInput)
	}
	if _, exists := l.categories[key]; exists {
		return nil, fmt.Errorf("%w: %q", common.ErrDuplicateCategory, key)
	}
	if limit.IsNegative() {
		return nil, fmt.Errorf("%w: budget limit cannot be negative", common.ErrInvalidLimit)
	}

	category, err := model.New(key, limit)
	if err != nil {
		return nil, err
	}

	l.categories[key] = category
	l.order = append(l.order, key)
	return category, nil
}

// AddCategoryFromIncome creates a category whose limit is derived from income
// and an allocation percentage. Invalid income or percentage creates nothing.
func (l *Ledger) AddCategoryFromIncome(name string, income, percent decimal.Decimal) (*model.Category, error) {
	limit, err := DerivedLimit(income, percent)
	if err != nil {
		return nil, err
	}
	return l.AddCategory(name, limit)
}

// Category returns the category stored under name, if any.
func (l *Ledger) Category(name string) (*model.Category, bool) {
	category, ok := l.categories[Normalize(name)]
	return category, ok
}

// RemoveCategory deletes a category. Confirmation policy lives with the
// caller; by the time this runs the removal is final.
func (l *Ledger) RemoveCategory(name string) error {
	key := Normalize(name)
	if _, exists := l.categories[key]; !exists {
		return fmt.Errorf("%w: %q", common.ErrCategoryNotFound, key)
	}

	delete(l.categories, key)
	for i, n := range l.order {
		if n == key {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return nil
}

// AddExpense applies amount to the named category. Within-limit expenses
// commit immediately; an overage comes back with NeedsConfirmation set and no
// state change. Call ConfirmExpense once the user agrees to go over budget.
func (l *Ledger) AddExpense(name string, amount decimal.Decimal) (model.ExpenseOutcome, error) {
	if amount.IsNegative() {
		return model.ExpenseOutcome{}, fmt.Errorf("%w: expense amount cannot be negative", common.ErrInvalidInput)
	}
	category, ok := l.Category(name)
	if !ok {
		return model.ExpenseOutcome{}, fmt.Errorf("%w: %q", common.ErrCategoryNotFound, Normalize(name))
	}
	return category.Apply(amount), nil
}

// ConfirmExpense commits an overage expense the user has confirmed.
func (l *Ledger) ConfirmExpense(name string, amount decimal.Decimal) (model.ExpenseOutcome, error) {
	if amount.IsNegative() {
		return model.ExpenseOutcome{}, fmt.Errorf("%w: expense amount cannot be negative", common.ErrInvalidInput)
	}
	category, ok := l.Category(name)
	if !ok {
		return model.ExpenseOutcome{}, fmt.Errorf("%w: %q", common.ErrCategoryNotFound, Normalize(name))
	}
	return category.ForceApply(amount), nil
}

// Line is one category's row in a summary.
type Line struct {
	Name      string
	Spent     decimal.Decimal
	Limit     decimal.Decimal
	Remaining decimal.Decimal
	Exceeded  bool
}

// Summary is the flat per-category report plus the aggregate spend.
type Summary struct {
	Lines      []Line
	TotalSpent decimal.Decimal
}

// Summarize reports every category in display order. It never mutates the
// ledger; exceeded budgets are flagged on their lines and logged as warnings.
func (l *Ledger) Summarize() Summary {
	summary := Summary{
		Lines:      make([]Line, 0, len(l.order)),
		TotalSpent: decimal.Zero,
	}

	for _, name := range l.order {
		category := l.categories[name]
		line := Line{
			Name:      category.Name,
			Spent:     category.Spent,
			Limit:     category.Limit,
			Remaining: category.Remaining(),
			Exceeded:  category.Exceeded(),
		}
		if line.Exceeded {
			slog.Warn("budget exceeded",
				"category", category.Name,
				"overrun", category.Spent.Sub(category.Limit).StringFixed(2))
		}
		summary.Lines = append(summary.Lines, line)
		summary.TotalSpent = summary.TotalSpent.Add(category.Spent)
	}

	return summary
}

// Categories returns the categories in display order.
func (l *Ledger) Categories() []*model.Category {
	categories := make([]*model.Category, 0, len(l.order))
	for _, name := range l.order {
		categories = append(categories, l.categories[name])
	}
	return categories
}

// Len returns the number of categories.
func (l *Ledger) Len() int {
	return len(l.categories)
}

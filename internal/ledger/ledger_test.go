package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kibble-money/kibble/internal/common"
	"github.com/kibble-money/kibble/internal/model"
)

func amt(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

// stubStore is an in-memory Storage for ledger tests.
type stubStore struct {
	categories map[string]*model.Category
	loadErr    error
	saveErr    error
	saved      int
}

func (s *stubStore) Load() (map[string]*model.Category, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.categories == nil {
		return make(map[string]*model.Category), nil
	}
	return s.categories, nil
}

func (s *stubStore) Save(categories map[string]*model.Category) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.categories = categories
	s.saved++
	return nil
}

func TestAddCategory(t *testing.T) {
	tests := []struct {
		name    string
		catName string
		limit   string
		wantErr error
		wantKey string
	}{
		{
			name:    "simple add",
			catName: "food",
			limit:   "200",
			wantKey: "food",
		},
		{
			name:    "name is normalized",
			catName: "  Dog Treats  ",
			limit:   "50",
			wantKey: "dog treats",
		},
		{
			name:    "blank name",
			catName: "   ",
			limit:   "50",
			wantErr: common.ErrInvalidInput,
		},
		{
			name:    "negative limit",
			catName: "food",
			limit:   "-10",
			wantErr: common.ErrInvalidLimit,
		},
		{
			name:    "zero limit is allowed",
			catName: "food",
			limit:   "0",
			wantKey: "food",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			led := New()
			cat, err := led.AddCategory(tt.catName, amt(t, tt.limit))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 0, led.Len(), "failed add must not create a category")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, cat.Name)

			stored, ok := led.Category(tt.catName)
			require.True(t, ok)
			assert.Same(t, cat, stored)
		})
	}
}

func TestAddCategoryDuplicate(t *testing.T) {
	led := New()
	_, err := led.AddCategory("Food", amt(t, "200"))
	require.NoError(t, err)

	// Same name after normalization.
	_, err = led.AddCategory("  FOOD ", amt(t, "300"))
	require.ErrorIs(t, err, common.ErrDuplicateCategory)

	require.Equal(t, 1, led.Len())
	cat, ok := led.Category("food")
	require.True(t, ok)
	assert.Equal(t, "200", cat.Limit.String(), "duplicate add must leave the original untouched")
}

func TestDerivedLimit(t *testing.T) {
	tests := []struct {
		name    string
		income  string
		percent string
		want    string
		wantErr bool
	}{
		{name: "twenty percent", income: "1000", percent: "20", want: "200"},
		{name: "zero percent", income: "1000", percent: "0", want: "0"},
		{name: "hundred percent", income: "1000", percent: "100", want: "1000"},
		{name: "fractional result", income: "999", percent: "33", want: "329.67"},
		{name: "negative income", income: "-1", percent: "20", wantErr: true},
		{name: "negative percent", income: "1000", percent: "-5", wantErr: true},
		{name: "percent above 100", income: "1000", percent: "120", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, err := DerivedLimit(amt(t, tt.income), amt(t, tt.percent))
			if tt.wantErr {
				require.ErrorIs(t, err, common.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.True(t, limit.Equal(amt(t, tt.want)), "got %s, want %s", limit, tt.want)
		})
	}
}

func TestAddCategoryFromIncome(t *testing.T) {
	led := New()

	cat, err := led.AddCategoryFromIncome("savings", amt(t, "1000"), amt(t, "20"))
	require.NoError(t, err)
	assert.Equal(t, "200", cat.Limit.String())

	// Invalid input creates nothing.
	_, err = led.AddCategoryFromIncome("toys", amt(t, "1000"), amt(t, "150"))
	require.ErrorIs(t, err, common.ErrInvalidInput)
	_, ok := led.Category("toys")
	assert.False(t, ok)
}

func TestRemoveCategory(t *testing.T) {
	led := New()
	_, err := led.AddCategory("food", amt(t, "100"))
	require.NoError(t, err)

	require.NoError(t, led.RemoveCategory("FOOD"))
	assert.Equal(t, 0, led.Len())

	err = led.RemoveCategory("nonexistent")
	require.ErrorIs(t, err, common.ErrCategoryNotFound)
}

func TestAddExpense(t *testing.T) {
	t.Run("unknown category", func(t *testing.T) {
		led := New()
		_, err := led.AddExpense("food", amt(t, "10"))
		require.ErrorIs(t, err, common.ErrCategoryNotFound)
	})

	t.Run("negative amount is rejected", func(t *testing.T) {
		led := New()
		cat, err := led.AddCategory("food", amt(t, "100"))
		require.NoError(t, err)

		_, err = led.AddExpense("food", amt(t, "-50"))
		require.ErrorIs(t, err, common.ErrInvalidInput)
		assert.True(t, cat.Spent.IsZero(), "rejected expense must not mutate spend")

		_, err = led.ConfirmExpense("food", amt(t, "-50"))
		require.ErrorIs(t, err, common.ErrInvalidInput)
		assert.True(t, cat.Spent.IsZero())
	})

	t.Run("zero amount commits", func(t *testing.T) {
		led := New()
		_, err := led.AddCategory("food", amt(t, "100"))
		require.NoError(t, err)

		outcome, err := led.AddExpense("food", amt(t, "0"))
		require.NoError(t, err)
		assert.True(t, outcome.Committed)
	})

	t.Run("case-insensitive lookup", func(t *testing.T) {
		led := New()
		_, err := led.AddCategory("Food", amt(t, "200"))
		require.NoError(t, err)

		outcome, err := led.AddExpense("food", amt(t, "50"))
		require.NoError(t, err)
		assert.True(t, outcome.Committed)

		summary := led.Summarize()
		require.Len(t, summary.Lines, 1)
		assert.Equal(t, "food", summary.Lines[0].Name)
		assert.Equal(t, "50", summary.Lines[0].Spent.String())
		assert.Equal(t, "200", summary.Lines[0].Limit.String())
		assert.Equal(t, "150", summary.Lines[0].Remaining.String())
		assert.Equal(t, "50", summary.TotalSpent.String())
	})

	t.Run("declined overage leaves spend unchanged", func(t *testing.T) {
		led := New()
		_, err := led.AddCategory("food", amt(t, "100"))
		require.NoError(t, err)

		outcome, err := led.AddExpense("food", amt(t, "150"))
		require.NoError(t, err)
		assert.True(t, outcome.NeedsConfirmation)
		assert.False(t, outcome.Committed)

		// The shell would prompt here; decline means no follow-up call.
		summary := led.Summarize()
		assert.True(t, summary.Lines[0].Spent.IsZero())
		assert.Equal(t, "100", summary.Lines[0].Remaining.String())
	})

	t.Run("confirmed overage commits and flags the line", func(t *testing.T) {
		led := New()
		_, err := led.AddCategory("food", amt(t, "100"))
		require.NoError(t, err)

		outcome, err := led.AddExpense("food", amt(t, "150"))
		require.NoError(t, err)
		require.True(t, outcome.NeedsConfirmation)

		outcome, err = led.ConfirmExpense("food", amt(t, "150"))
		require.NoError(t, err)
		assert.True(t, outcome.Committed)
		assert.Equal(t, "50", outcome.Overrun.String())

		summary := led.Summarize()
		assert.Equal(t, "150", summary.Lines[0].Spent.String())
		assert.Equal(t, "-50", summary.Lines[0].Remaining.String())
		assert.True(t, summary.Lines[0].Exceeded)
	})
}

func TestSummarizeOrderAndTotal(t *testing.T) {
	led := New()
	for _, name := range []string{"zebra fund", "food", "toys"} {
		_, err := led.AddCategory(name, amt(t, "100"))
		require.NoError(t, err)
	}
	_, err := led.AddExpense("food", amt(t, "25"))
	require.NoError(t, err)
	_, err = led.AddExpense("toys", amt(t, "10"))
	require.NoError(t, err)

	summary := led.Summarize()
	require.Len(t, summary.Lines, 3)

	// Insertion order, not alphabetical.
	assert.Equal(t, "zebra fund", summary.Lines[0].Name)
	assert.Equal(t, "food", summary.Lines[1].Name)
	assert.Equal(t, "toys", summary.Lines[2].Name)
	assert.Equal(t, "35", summary.TotalSpent.String())
}

func TestSummarizeDoesNotMutate(t *testing.T) {
	led := New()
	_, err := led.AddCategory("food", amt(t, "100"))
	require.NoError(t, err)
	_, err = led.AddExpense("food", amt(t, "40"))
	require.NoError(t, err)

	first := led.Summarize()
	second := led.Summarize()
	assert.Equal(t, first, second)
}

func TestOpenAndSave(t *testing.T) {
	food, err := model.New("food", amt(t, "200"))
	require.NoError(t, err)
	food.Apply(amt(t, "75"))
	toys, err := model.New("toys", amt(t, "50"))
	require.NoError(t, err)

	store := &stubStore{categories: map[string]*model.Category{
		"food": food,
		"toys": toys,
	}}

	led, err := Open(store)
	require.NoError(t, err)
	require.Equal(t, 2, led.Len())

	// Display order after a load is sorted by name.
	summary := led.Summarize()
	assert.Equal(t, "food", summary.Lines[0].Name)
	assert.Equal(t, "toys", summary.Lines[1].Name)
	assert.Equal(t, "75", summary.TotalSpent.String())

	_, err = led.AddCategory("vet", amt(t, "300"))
	require.NoError(t, err)
	require.NoError(t, led.Save(store))

	assert.Equal(t, 1, store.saved)
	assert.Len(t, store.categories, 3)
}

func TestOpenEmptyStore(t *testing.T) {
	led, err := Open(&stubStore{})
	require.NoError(t, err)
	assert.Equal(t, 0, led.Len())
	assert.Empty(t, led.Summarize().Lines)
}

package analysis

import (
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAggregator() *Aggregator {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAggregator(NewCategorizer(), logger)
}

func TestAggregate(t *testing.T) {
	aggregator := newTestAggregator()

	transactions := []Transaction{
		{Amount: 120.50, Description: "WALMART #123", Date: "2024-01-05"},
		{Amount: 80.25, Description: "KROGER 221", Date: "2024-01-19"},
		{Amount: 15.75, Description: "STARBUCKS STORE 5", Date: "2024-02-02"},
		{Amount: 42.00, Description: "SHELL OIL 4521", Date: "2024-02-14"},
	}

	agg := aggregator.Aggregate(transactions)

	t.Run("category totals", func(t *testing.T) {
		assert.InDelta(t, 200.75, agg.CategoryTotals[CategoryGroceries], 1e-6)
		assert.InDelta(t, 15.75, agg.CategoryTotals[CategoryDining], 1e-6)
		assert.InDelta(t, 42.00, agg.CategoryTotals[CategoryGas], 1e-6)
	})

	t.Run("sum invariant", func(t *testing.T) {
		var categorySum float64
		for _, total := range agg.CategoryTotals {
			categorySum += total
		}
		assert.InDelta(t, agg.TotalSpending, categorySum, 1e-6)
		assert.InDelta(t, 258.50, agg.TotalSpending, 1e-6)
	})

	t.Run("monthly totals", func(t *testing.T) {
		require.Len(t, agg.MonthlyTotals, 2)
		assert.InDelta(t, 200.75, agg.MonthlyTotals["2024-01"][CategoryGroceries], 1e-6)
		assert.InDelta(t, 15.75, agg.MonthlyTotals["2024-02"][CategoryDining], 1e-6)
	})

	t.Run("monthly averages diluted across all months", func(t *testing.T) {
		// Groceries only appear in January but divide across both months.
		assert.InDelta(t, 100.375, agg.MonthlyAverages[CategoryGroceries], 1e-6)
		assert.InDelta(t, 7.875, agg.MonthlyAverages[CategoryDining], 1e-6)
	})

	t.Run("no warnings for well formed input", func(t *testing.T) {
		assert.Zero(t, agg.Warnings)
	})
}

func TestAggregateOrderIndependence(t *testing.T) {
	aggregator := newTestAggregator()

	transactions := []Transaction{
		{Amount: 10, Description: "WALMART #123", Date: "2024-01-05"},
		{Amount: 20, Description: "STARBUCKS STORE 5", Date: "2024-02-02"},
		{Amount: 30, Description: "SHELL OIL 4521", Date: "2024-03-14"},
		{Amount: 40, Description: "NETFLIX.COM", Date: "2024-03-20"},
		{Amount: 50, Description: "CVS PHARMACY", Date: "2024-04-01"},
	}

	baseline := aggregator.Aggregate(transactions)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 5; i++ {
		shuffled := make([]Transaction, len(transactions))
		copy(shuffled, transactions)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		agg := aggregator.Aggregate(shuffled)
		assert.Equal(t, baseline.CategoryTotals, agg.CategoryTotals)
		assert.Equal(t, baseline.MonthlyTotals, agg.MonthlyTotals)
		assert.InDelta(t, baseline.TotalSpending, agg.TotalSpending, 1e-9)
	}
}

func TestAggregateMalformedInput(t *testing.T) {
	aggregator := newTestAggregator()

	t.Run("degenerate month keys are kept", func(t *testing.T) {
		agg := aggregator.Aggregate([]Transaction{
			{Amount: 25, Description: "WALMART", Date: "not-a-date"},
			{Amount: 10, Description: "KROGER", Date: ""},
		})

		assert.Equal(t, 2, agg.Warnings)
		assert.Contains(t, agg.MonthlyTotals, "not-a-d")
		assert.Contains(t, agg.MonthlyTotals, "")
		assert.InDelta(t, 35, agg.TotalSpending, 1e-6)
	})

	t.Run("negative amounts aggregate with a warning", func(t *testing.T) {
		agg := aggregator.Aggregate([]Transaction{
			{Amount: 100, Description: "WALMART", Date: "2024-01-05"},
			{Amount: -40, Description: "WALMART REFUND", Date: "2024-01-09"},
		})

		assert.Equal(t, 1, agg.Warnings)
		assert.InDelta(t, 60, agg.CategoryTotals[CategoryGroceries], 1e-6)
	})
}

func TestAggregatePreassignedCategory(t *testing.T) {
	aggregator := newTestAggregator()

	t.Run("valid category wins over the categorizer", func(t *testing.T) {
		agg := aggregator.Aggregate([]Transaction{
			{Amount: 30, Description: "WALMART #123", Category: CategoryDining, Date: "2024-01-05"},
		})
		assert.InDelta(t, 30, agg.CategoryTotals[CategoryDining], 1e-6)
		assert.NotContains(t, agg.CategoryTotals, CategoryGroceries)
	})

	t.Run("invalid category falls back to the categorizer", func(t *testing.T) {
		agg := aggregator.Aggregate([]Transaction{
			{Amount: 30, Description: "WALMART #123", Category: Category("bogus"), Date: "2024-01-05"},
		})
		assert.InDelta(t, 30, agg.CategoryTotals[CategoryGroceries], 1e-6)
	})
}

func TestMerchantKey(t *testing.T) {
	aggregator := newTestAggregator()

	t.Run("first twenty trimmed characters identify the merchant", func(t *testing.T) {
		agg := aggregator.Aggregate([]Transaction{
			{Amount: 10, Description: "  STARBUCKS STORE 55512 DOWNTOWN  ", Date: "2024-01-05"},
			{Amount: 12, Description: "STARBUCKS STORE 55512 UPTOWN", Date: "2024-01-06"},
		})

		assert.Equal(t, 2, agg.MerchantFrequency["STARBUCKS STORE 5551"])
	})

	t.Run("multibyte descriptions truncate on characters", func(t *testing.T) {
		agg := aggregator.Aggregate([]Transaction{
			{Amount: 10, Description: "CAFÉ MÜNCHEN ZENTRUM 42", Date: "2024-01-05"},
			{Amount: 12, Description: "CAFÉ MÜNCHEN ZENTRUM 7", Date: "2024-01-06"},
		})

		assert.Equal(t, 2, agg.MerchantFrequency["CAFÉ MÜNCHEN ZENTRUM"])
		for key := range agg.MerchantFrequency {
			assert.True(t, utf8.ValidString(key), "merchant key %q is not valid UTF-8", key)
		}
	})
}

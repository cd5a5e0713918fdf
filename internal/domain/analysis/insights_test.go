package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInsights(t *testing.T) {
	t.Run("empty aggregation yields no insights", func(t *testing.T) {
		agg := &Aggregation{
			CategoryTotals:    map[Category]float64{},
			MerchantFrequency: map[string]int{},
		}
		assert.Empty(t, GenerateInsights(agg))
	})

	t.Run("top category always leads", func(t *testing.T) {
		agg := &Aggregation{
			CategoryTotals: map[Category]float64{
				CategoryGroceries: 300,
				CategoryDining:    700,
			},
			TotalSpending:     1000,
			MonthlyAverages:   map[Category]float64{},
			MerchantFrequency: map[string]int{},
		}

		insights := GenerateInsights(agg)
		require.NotEmpty(t, insights)
		assert.Equal(t, "Your top spending category is dining at $700.00, 70% of total spending.", insights[0])
	})

	t.Run("dining average above threshold emits a nudge", func(t *testing.T) {
		agg := &Aggregation{
			CategoryTotals:    map[Category]float64{CategoryDining: 1200},
			TotalSpending:     1200,
			MonthlyAverages:   map[Category]float64{CategoryDining: 600},
			MerchantFrequency: map[string]int{},
		}

		insights := GenerateInsights(agg)
		assert.Contains(t, insights,
			"You average $600.00 per month on dining; a dining rewards card could earn you significantly more.")
	})

	t.Run("threshold cutoffs are exclusive", func(t *testing.T) {
		agg := &Aggregation{
			CategoryTotals: map[Category]float64{CategoryDining: 500},
			TotalSpending:  500,
			MonthlyAverages: map[Category]float64{
				CategoryDining:    500,
				CategoryTravel:    300,
				CategoryGroceries: 400,
			},
			MerchantFrequency: map[string]int{},
		}

		for _, insight := range GenerateInsights(agg) {
			assert.NotContains(t, insight, "per month on")
		}
	})

	t.Run("concentration high", func(t *testing.T) {
		agg := &Aggregation{
			CategoryTotals: map[Category]float64{
				CategoryDining:    800,
				CategoryGroceries: 100,
				CategoryGas:       50,
				CategoryTravel:    50,
			},
			TotalSpending:     1000,
			MonthlyAverages:   map[Category]float64{},
			MerchantFrequency: map[string]int{},
		}

		insights := GenerateInsights(agg)
		assert.Contains(t, insights,
			"Your spending is concentrated: your top three categories account for 95% of the total.")
	})

	t.Run("diversified spending", func(t *testing.T) {
		totals := make(map[Category]float64)
		for _, category := range Categories {
			totals[category] = 100
		}
		agg := &Aggregation{
			CategoryTotals:    totals,
			TotalSpending:     float64(len(Categories)) * 100,
			MonthlyAverages:   map[Category]float64{},
			MerchantFrequency: map[string]int{},
		}

		insights := GenerateInsights(agg)
		assert.Contains(t, insights, "Your spending is well diversified across categories.")
	})

	t.Run("loyalty requires more than ten visits", func(t *testing.T) {
		agg := &Aggregation{
			CategoryTotals:  map[Category]float64{CategoryDining: 100},
			TotalSpending:   100,
			MonthlyAverages: map[Category]float64{},
			MerchantFrequency: map[string]int{
				"STARBUCKS STORE 5": 11,
				"WALMART #123":      4,
			},
		}

		insights := GenerateInsights(agg)
		assert.Contains(t, insights,
			"You shop frequently at STARBUCKS STORE 5 (11 transactions); a co-branded or loyalty-linked card may add value.")
	})

	t.Run("exactly ten visits is not loyalty", func(t *testing.T) {
		agg := &Aggregation{
			CategoryTotals:    map[Category]float64{CategoryDining: 100},
			TotalSpending:     100,
			MonthlyAverages:   map[Category]float64{},
			MerchantFrequency: map[string]int{"STARBUCKS STORE 5": 10},
		}

		for _, insight := range GenerateInsights(agg) {
			assert.NotContains(t, insight, "shop frequently")
		}
	})
}

package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/FACorreiaa/cardwise-api/pkg/money"
)

// Insight thresholds. All cutoffs are exclusive.
const (
	concentrationHigh = 0.7
	concentrationLow  = 0.4

	diningMonthlyThreshold    = 500.0
	travelMonthlyThreshold    = 300.0
	groceriesMonthlyThreshold = 400.0

	loyaltyMinVisits = 10
)

// GenerateInsights derives templated observations from an aggregation. The
// emission order is fixed: top category, concentration, targeted category
// nudges (dining, travel, groceries), then merchant loyalty.
func GenerateInsights(agg *Aggregation) []string {
	insights := make([]string, 0, 6)
	if len(agg.CategoryTotals) == 0 || agg.TotalSpending <= 0 {
		return insights
	}

	ranked := categoriesByTotal(agg.CategoryTotals)

	top := ranked[0]
	share := int(math.Round(agg.CategoryTotals[top] / agg.TotalSpending * 100))
	insights = append(insights, fmt.Sprintf(
		"Your top spending category is %s at %s, %d%% of total spending.",
		top.Label(), money.Format(agg.CategoryTotals[top]), share,
	))

	if insight, ok := concentrationInsight(ranked, agg); ok {
		insights = append(insights, insight)
	}

	insights = append(insights, targetedInsights(agg.MonthlyAverages)...)

	if insight, ok := loyaltyInsight(agg.MerchantFrequency); ok {
		insights = append(insights, insight)
	}

	return insights
}

// concentrationInsight looks at the share of the top three categories.
// Between the two cutoffs nothing is emitted.
func concentrationInsight(ranked []Category, agg *Aggregation) (string, bool) {
	var topThree float64
	for i, category := range ranked {
		if i >= 3 {
			break
		}
		topThree += agg.CategoryTotals[category]
	}

	ratio := topThree / agg.TotalSpending
	switch {
	case ratio > concentrationHigh:
		return fmt.Sprintf(
			"Your spending is concentrated: your top three categories account for %d%% of the total.",
			int(math.Round(ratio*100)),
		), true
	case ratio < concentrationLow:
		return "Your spending is well diversified across categories.", true
	default:
		return "", false
	}
}

// targetedInsights checks dining, travel, and groceries in that fixed order
// against their monthly-average thresholds.
func targetedInsights(averages map[Category]float64) []string {
	var out []string
	if avg := averages[CategoryDining]; avg > diningMonthlyThreshold {
		out = append(out, fmt.Sprintf(
			"You average %s per month on dining; a dining rewards card could earn you significantly more.",
			money.Format(avg),
		))
	}
	if avg := averages[CategoryTravel]; avg > travelMonthlyThreshold {
		out = append(out, fmt.Sprintf(
			"You average %s per month on travel; a travel rewards card would maximize those purchases.",
			money.Format(avg),
		))
	}
	if avg := averages[CategoryGroceries]; avg > groceriesMonthlyThreshold {
		out = append(out, fmt.Sprintf(
			"You average %s per month on groceries; a grocery rewards card could boost your earnings.",
			money.Format(avg),
		))
	}
	return out
}

func loyaltyInsight(frequency map[string]int) (string, bool) {
	var (
		topMerchant string
		topCount    int
	)
	for merchant, count := range frequency {
		if count > topCount || (count == topCount && merchant < topMerchant) {
			topMerchant = merchant
			topCount = count
		}
	}

	if topCount <= loyaltyMinVisits {
		return "", false
	}
	return fmt.Sprintf(
		"You shop frequently at %s (%d transactions); a co-branded or loyalty-linked card may add value.",
		topMerchant, topCount,
	), true
}

// categoriesByTotal orders categories by descending total, breaking ties by
// name so repeated runs agree.
func categoriesByTotal(totals map[Category]float64) []Category {
	ranked := make([]Category, 0, len(totals))
	for category := range totals {
		ranked = append(ranked, category)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if totals[ranked[i]] != totals[ranked[j]] {
			return totals[ranked[i]] > totals[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	return ranked
}

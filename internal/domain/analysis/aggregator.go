package analysis

import (
	"log/slog"
	"strings"
	"time"
)

// merchantKeyLen is how many leading characters of a trimmed description
// identify a merchant for frequency counting.
const merchantKeyLen = 20

// Aggregation is the result of a single pass over a transaction list.
type Aggregation struct {
	// CategoryTotals maps each observed category to its accumulated amount.
	CategoryTotals map[Category]float64
	// MonthlyTotals maps month key (YYYY-MM) to per-category totals.
	MonthlyTotals map[string]map[Category]float64
	// MerchantFrequency counts transactions per merchant key.
	MerchantFrequency map[string]int
	// TotalSpending is the sum of all transaction amounts.
	TotalSpending float64
	// MonthlyAverages maps each observed category to its average monthly
	// amount across every observed month.
	MonthlyAverages map[Category]float64
	// Months is the number of distinct month keys observed.
	Months int
	// Warnings counts transactions with unparseable dates or negative
	// amounts; they are aggregated as-is, never rejected.
	Warnings int
}

// Aggregator builds spending aggregates from raw transactions.
type Aggregator struct {
	categorizer *Categorizer
	logger      *slog.Logger
}

// NewAggregator creates an aggregator backed by the given categorizer.
func NewAggregator(categorizer *Categorizer, logger *slog.Logger) *Aggregator {
	return &Aggregator{categorizer: categorizer, logger: logger}
}

// Aggregate runs a single O(n) pass over the transactions. A pre-assigned
// valid category on a transaction wins over the categorizer. Malformed dates
// are kept under their own degenerate month key; input validation is the
// caller's job.
func (a *Aggregator) Aggregate(transactions []Transaction) *Aggregation {
	agg := &Aggregation{
		CategoryTotals:    make(map[Category]float64),
		MonthlyTotals:     make(map[string]map[Category]float64),
		MerchantFrequency: make(map[string]int),
	}

	for _, tx := range transactions {
		category := tx.Category
		if !category.Valid() {
			category = a.categorizer.Categorize(tx.Description)
		}

		month := monthKey(tx.Date)
		if !wellFormedMonth(month) || tx.Amount < 0 {
			agg.Warnings++
			a.logger.Warn("malformed transaction aggregated as-is",
				slog.String("date", tx.Date),
				slog.Float64("amount", tx.Amount),
			)
		}

		agg.CategoryTotals[category] += tx.Amount
		if agg.MonthlyTotals[month] == nil {
			agg.MonthlyTotals[month] = make(map[Category]float64)
		}
		agg.MonthlyTotals[month][category] += tx.Amount
		agg.TotalSpending += tx.Amount
		agg.MerchantFrequency[merchantKey(tx.Description)]++
	}

	agg.Months = len(agg.MonthlyTotals)
	agg.MonthlyAverages = monthlyAverages(agg)
	return agg
}

// monthlyAverages divides each category's total across every observed month,
// including months where the category had no activity. Categories idle in
// some months are therefore diluted; downstream reward projections depend on
// this, so do not switch to months-with-activity.
func monthlyAverages(agg *Aggregation) map[Category]float64 {
	months := agg.Months
	if months < 1 {
		months = 1
	}

	averages := make(map[Category]float64, len(agg.CategoryTotals))
	for category := range agg.CategoryTotals {
		var sum float64
		for _, byCategory := range agg.MonthlyTotals {
			sum += byCategory[category]
		}
		averages[category] = sum / float64(months)
	}
	return averages
}

// monthKey derives a YYYY-MM key from the leading characters of the date
// string. Shorter strings are used verbatim as degenerate keys.
func monthKey(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}

func wellFormedMonth(key string) bool {
	_, err := time.Parse("2006-01", key)
	return err == nil
}

func merchantKey(description string) string {
	d := strings.TrimSpace(description)
	runes := []rune(d)
	if len(runes) > merchantKeyLen {
		return string(runes[:merchantKeyLen])
	}
	return d
}

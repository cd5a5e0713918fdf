package analysis

import "math"

// Confidence buckets derived from the data quality score.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// ScoreQuality computes a 0-100 composite of four independently capped
// sub-scores: transaction volume (max 40), time coverage (max 30), category
// diversity (max 20), and description richness (max 10).
func ScoreQuality(transactions []Transaction, agg *Aggregation) int {
	score := volumeScore(len(transactions)) +
		coverageScore(agg.Months) +
		diversityScore(len(agg.CategoryTotals)) +
		richnessScore(transactions)

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

// ConfidenceLevel buckets a quality score into high/medium/low.
func ConfidenceLevel(score int) string {
	switch {
	case score > 70:
		return ConfidenceHigh
	case score > 40:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func volumeScore(count int) int {
	switch {
	case count > 100:
		return 40
	case count > 50:
		return 30
	case count > 20:
		return 20
	default:
		return 10
	}
}

func coverageScore(months int) int {
	switch {
	case months >= 12:
		return 30
	case months >= 6:
		return 25
	case months >= 3:
		return 20
	case months >= 1:
		return 15
	default:
		return 5
	}
}

func diversityScore(categories int) int {
	switch {
	case categories >= 6:
		return 20
	case categories >= 4:
		return 15
	case categories >= 2:
		return 10
	default:
		return 5
	}
}

// richnessScore scales with the fraction of transactions whose description is
// longer than five characters.
func richnessScore(transactions []Transaction) int {
	if len(transactions) == 0 {
		return 0
	}
	rich := 0
	for _, tx := range transactions {
		if len(tx.Description) > 5 {
			rich++
		}
	}
	return int(math.Round(10 * float64(rich) / float64(len(transactions))))
}

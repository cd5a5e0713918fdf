package recommend

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/FACorreiaa/cardwise-api/internal/domain/analysis"
	"github.com/FACorreiaa/cardwise-api/internal/domain/catalog"
	"github.com/FACorreiaa/cardwise-api/pkg/money"
)

// DefaultLimit caps the recommendation list when the caller does not ask for
// a specific size.
const DefaultLimit = 5

// bonusWindowMonths is the conventional welcome-bonus spending window used
// for the feasibility warning.
const bonusWindowMonths = 3

// CategoryReward is one row of a recommendation's category breakdown.
type CategoryReward struct {
	Category       analysis.Category `json:"category"`
	AnnualSpending float64           `json:"annual_spending"`
	EarnRate       float64           `json:"earn_rate"`
	AnnualRewards  float64           `json:"annual_rewards"`
}

// Reasoning explains why an offer was recommended.
type Reasoning struct {
	PrimaryBenefits []string `json:"primary_benefits"`
}

// Recommendation is a scored offer.
type Recommendation struct {
	Offer                catalog.Offer    `json:"offer"`
	AnnualValue          float64          `json:"annual_value"`
	NetAnnualBenefit     float64          `json:"net_annual_benefit"`
	FirstYearValue       float64          `json:"first_year_value"`
	ConfidenceScore      int              `json:"confidence_score"`
	PersonalizationScore int              `json:"personalization_score"`
	RiskFactors          []string         `json:"risk_factors"`
	OptimizationTips     []string         `json:"optimization_tips"`
	CategoryBreakdown    []CategoryReward `json:"category_breakdown"`
	Reasoning            Reasoning        `json:"reasoning"`
}

// Ranker scores a catalog of offers against a spending profile.
type Ranker struct {
	logger *slog.Logger
}

// NewRanker creates a ranker.
func NewRanker(logger *slog.Logger) *Ranker {
	return &Ranker{logger: logger}
}

// Rank scores every complete offer and returns the best ones sorted by net
// annual benefit descending, confidence descending, then offer id ascending.
// Offers missing required fields are skipped rather than aborting the run.
func (r *Ranker) Rank(profile *SpendingProfile, offers []catalog.Offer, limit int) []Recommendation {
	if limit <= 0 {
		limit = DefaultLimit
	}

	recommendations := make([]Recommendation, 0, len(offers))
	for i := range offers {
		offer := offers[i]
		if !offer.Complete() {
			r.logger.Warn("skipping incomplete offer", slog.String("offer_id", offer.ID))
			continue
		}
		recommendations = append(recommendations, r.score(profile, offer))
	}

	sort.Slice(recommendations, func(i, j int) bool {
		a, b := recommendations[i], recommendations[j]
		if a.NetAnnualBenefit != b.NetAnnualBenefit {
			return a.NetAnnualBenefit > b.NetAnnualBenefit
		}
		if a.ConfidenceScore != b.ConfidenceScore {
			return a.ConfidenceScore > b.ConfidenceScore
		}
		return a.Offer.ID < b.Offer.ID
	})

	if len(recommendations) > limit {
		recommendations = recommendations[:limit]
	}
	return recommendations
}

func (r *Ranker) score(profile *SpendingProfile, offer catalog.Offer) Recommendation {
	valuation := ValuePoints(&offer, profile.RedemptionPreference)
	pointDollars := valuation.OptimalValue / 100

	breakdown := categoryBreakdown(profile, &offer, pointDollars)

	var annualValue float64
	for _, row := range breakdown {
		annualValue += row.AnnualRewards
	}

	rec := Recommendation{
		Offer:                offer,
		AnnualValue:          annualValue,
		NetAnnualBenefit:     annualValue - offer.AnnualFee,
		FirstYearValue:       annualValue + offer.WelcomeBonusValue - offer.AnnualFee,
		ConfidenceScore:      confidenceScore(profile, breakdown),
		PersonalizationScore: personalizationScore(profile, &offer, valuation),
		CategoryBreakdown:    breakdown,
	}
	rec.RiskFactors = riskFactors(profile, &offer, annualValue)
	rec.OptimizationTips = optimizationTips(profile, &offer, valuation)
	rec.Reasoning = Reasoning{PrimaryBenefits: primaryBenefits(&offer, valuation, breakdown)}
	return rec
}

// categoryBreakdown projects annual rewards per category the user spends in.
// Categories absent from the offer's earn table pay the base 1x rate. Rows
// are ordered by annual rewards descending, then category ascending.
func categoryBreakdown(profile *SpendingProfile, offer *catalog.Offer, pointDollars float64) []CategoryReward {
	breakdown := make([]CategoryReward, 0, len(profile.MonthlySpending))
	for category, monthly := range profile.MonthlySpending {
		annualSpending := monthly * 12
		earnRate, ok := offer.CategoryEarnRates[category]
		if !ok {
			earnRate = 1
		}
		breakdown = append(breakdown, CategoryReward{
			Category:       category,
			AnnualSpending: annualSpending,
			EarnRate:       earnRate,
			AnnualRewards:  annualSpending * earnRate * pointDollars,
		})
	}

	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].AnnualRewards != breakdown[j].AnnualRewards {
			return breakdown[i].AnnualRewards > breakdown[j].AnnualRewards
		}
		return breakdown[i].Category < breakdown[j].Category
	})
	return breakdown
}

// confidenceScore blends the profile's data quality with how much of the
// user's spending lands in categories where the offer pays above baseline.
func confidenceScore(profile *SpendingProfile, breakdown []CategoryReward) int {
	var total, covered float64
	for _, row := range breakdown {
		total += row.AnnualSpending
		if row.EarnRate > 1 {
			covered += row.AnnualSpending
		}
	}

	coverage := 0.0
	if total > 0 {
		coverage = covered / total
	}

	return clampScore(0.5*float64(profile.DataQuality) + 50*coverage)
}

// personalizationScore measures preference fit independent of dollar value.
func personalizationScore(profile *SpendingProfile, offer *catalog.Offer, valuation PointValuation) int {
	score := 50.0

	if mode, ok := preferredMode(profile.RedemptionPreference); ok {
		if offer.SupportsMode(mode) {
			score += 20
		} else {
			score -= 10
		}
	} else if valuation.RedemptionFlexibility >= 0.75 {
		score += 10
	}

	travelFriendly := offer.SupportsMode(catalog.RedemptionTravel) ||
		offer.CategoryEarnRates[analysis.CategoryTravel] > 1
	switch profile.TravelFrequency {
	case TravelFrequently:
		if travelFriendly {
			score += 15
		}
	case TravelSometimes:
		if travelFriendly {
			score += 5
		}
	case TravelNever:
		if travelFriendly {
			score -= 10
		}
	}

	switch profile.BonusImportance {
	case BonusHigh:
		if offer.WelcomeBonusValue >= 500 {
			score += 10
		}
	case BonusLow:
		if offer.AnnualFee == 0 {
			score += 5
		}
	}

	if holdsSimilarCard(profile.CurrentCards, offer) {
		score -= 25
	}

	return clampScore(score)
}

// holdsSimilarCard fuzzy-matches the user's free-text card list against the
// offer's name and id.
func holdsSimilarCard(cards []string, offer *catalog.Offer) bool {
	for _, card := range cards {
		if card == "" {
			continue
		}
		if fuzzy.MatchNormalizedFold(card, offer.Name) || fuzzy.MatchNormalizedFold(card, offer.ID) {
			return true
		}
	}
	return false
}

func riskFactors(profile *SpendingProfile, offer *catalog.Offer, annualValue float64) []string {
	var risks []string

	if offer.AnnualFee > 0 && profile.PaymentBehavior == PaymentRevolving {
		risks = append(risks,
			"Carrying a balance will likely cost more in interest than this card earns in rewards.")
	}

	monthlyCapacity := profile.TotalMonthlySpending()
	if offer.WelcomeBonusMinSpend > 0 && offer.WelcomeBonusMinSpend > monthlyCapacity*bonusWindowMonths {
		risks = append(risks, fmt.Sprintf(
			"The welcome bonus requires %s in spending within roughly three months, above your current pace of %s per month.",
			money.Format(offer.WelcomeBonusMinSpend), money.Format(monthlyCapacity),
		))
	}

	if offer.AnnualFee > annualValue {
		risks = append(risks, fmt.Sprintf(
			"The %s annual fee exceeds your projected %s in annual rewards.",
			money.Format(offer.AnnualFee), money.Format(annualValue),
		))
	}

	return risks
}

func optimizationTips(profile *SpendingProfile, offer *catalog.Offer, valuation PointValuation) []string {
	var tips []string

	// Heavy spending the offer pays only baseline on suggests pairing.
	total := profile.TotalMonthlySpending()
	if total > 0 {
		var (
			bestCategory analysis.Category
			bestShare    float64
		)
		for category, monthly := range profile.MonthlySpending {
			share := monthly / total
			earnRate, ok := offer.CategoryEarnRates[category]
			if !ok {
				earnRate = 1
			}
			if earnRate <= 1 && share > bestShare {
				bestCategory = category
				bestShare = share
			} else if earnRate <= 1 && share == bestShare && bestCategory != "" && category < bestCategory {
				bestCategory = category
			}
		}
		if bestShare > 0.2 {
			tips = append(tips, fmt.Sprintf(
				"Your %s spending (%d%% of total) earns only the base rate here; consider pairing with a %s-focused card.",
				bestCategory.Label(), int(math.Round(bestShare*100)), bestCategory.Label(),
			))
		}
	}

	if valuation.OptimalValue > valuation.CashbackValue {
		tips = append(tips, fmt.Sprintf(
			"Redeem points as %s for %.2f¢ each instead of %.2f¢ as cash back.",
			valuation.OptimalMode, valuation.OptimalValue, valuation.CashbackValue,
		))
	}

	return tips
}

func primaryBenefits(offer *catalog.Offer, valuation PointValuation, breakdown []CategoryReward) []string {
	var benefits []string

	for _, row := range breakdown {
		if row.EarnRate > 1 {
			benefits = append(benefits, fmt.Sprintf(
				"Earns %.0fx on %s, worth about %s per year.",
				row.EarnRate, row.Category.Label(), money.Format(row.AnnualRewards),
			))
			break
		}
	}

	if offer.WelcomeBonusValue > 0 {
		benefits = append(benefits, fmt.Sprintf(
			"%s welcome bonus.", money.Format(offer.WelcomeBonusValue),
		))
	}
	if offer.AnnualFee == 0 {
		benefits = append(benefits, "No annual fee.")
	}
	if valuation.RedemptionFlexibility >= 0.75 {
		benefits = append(benefits, "Flexible redemption across most modes.")
	}

	return benefits
}

func clampScore(score float64) int {
	rounded := int(math.Round(score))
	if rounded > 100 {
		return 100
	}
	if rounded < 0 {
		return 0
	}
	return rounded
}

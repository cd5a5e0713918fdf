// Package recommend scores and ranks card offers against a spending profile.
// The ranker is a pure function of its inputs: the caller resolves the offer
// catalog before invoking it, so ranking never performs I/O.
package recommend

import (
	"strings"

	"github.com/FACorreiaa/cardwise-api/internal/domain/analysis"
	"github.com/FACorreiaa/cardwise-api/internal/domain/catalog"
)

// Preference fields are closed enumerations with explicit defaults so the
// personalization rules stay exhaustive. Unrecognized input normalizes to
// the default variant rather than erroring.

// CreditScoreBand buckets the user's credit standing.
type CreditScoreBand string

const (
	CreditScoreExcellent CreditScoreBand = "excellent"
	CreditScoreGood      CreditScoreBand = "good"
	CreditScoreFair      CreditScoreBand = "fair"
	CreditScorePoor      CreditScoreBand = "poor"
	CreditScoreUnknown   CreditScoreBand = "unknown"
)

// TravelFrequency is how often the user travels.
type TravelFrequency string

const (
	TravelNever      TravelFrequency = "never"
	TravelRarely     TravelFrequency = "rarely"
	TravelSometimes  TravelFrequency = "sometimes"
	TravelFrequently TravelFrequency = "frequently"
	TravelUnknown    TravelFrequency = "unknown"
)

// RedemptionPreference is how the user prefers to redeem rewards.
type RedemptionPreference string

const (
	PreferCashback        RedemptionPreference = "cashback"
	PreferTravel          RedemptionPreference = "travel"
	PreferTransfer        RedemptionPreference = "transfer"
	PreferStatementCredit RedemptionPreference = "statement_credit"
	PreferFlexible        RedemptionPreference = "flexible"
)

// PaymentBehavior is whether the user pays statements in full.
type PaymentBehavior string

const (
	PaymentFullBalance PaymentBehavior = "full_balance"
	PaymentRevolving   PaymentBehavior = "revolving"
	PaymentUnknown     PaymentBehavior = "unknown"
)

// BonusImportance is how much weight the user puts on welcome bonuses.
type BonusImportance string

const (
	BonusLow     BonusImportance = "low"
	BonusMedium  BonusImportance = "medium"
	BonusHigh    BonusImportance = "high"
	BonusUnknown BonusImportance = "unknown"
)

// SpendingProfile is the derived per-analysis view of the user the ranker
// consumes. MonthlySpending comes from the aggregator's monthly averages and
// DataQuality from the quality scorer.
type SpendingProfile struct {
	AnnualIncome         float64
	CreditScoreBand      CreditScoreBand
	MonthlySpending      map[analysis.Category]float64
	TravelFrequency      TravelFrequency
	RedemptionPreference RedemptionPreference
	CurrentCards         []string
	PaymentBehavior      PaymentBehavior
	BonusImportance      BonusImportance
	DataQuality          int
}

// TotalMonthlySpending sums the profile's monthly category averages.
func (p *SpendingProfile) TotalMonthlySpending() float64 {
	var total float64
	for _, amount := range p.MonthlySpending {
		total += amount
	}
	return total
}

func ParseCreditScoreBand(s string) CreditScoreBand {
	switch CreditScoreBand(normalize(s)) {
	case CreditScoreExcellent, CreditScoreGood, CreditScoreFair, CreditScorePoor:
		return CreditScoreBand(normalize(s))
	default:
		return CreditScoreUnknown
	}
}

func ParseTravelFrequency(s string) TravelFrequency {
	switch TravelFrequency(normalize(s)) {
	case TravelNever, TravelRarely, TravelSometimes, TravelFrequently:
		return TravelFrequency(normalize(s))
	default:
		return TravelUnknown
	}
}

func ParseRedemptionPreference(s string) RedemptionPreference {
	switch RedemptionPreference(normalize(s)) {
	case PreferCashback, PreferTravel, PreferTransfer, PreferStatementCredit:
		return RedemptionPreference(normalize(s))
	default:
		return PreferFlexible
	}
}

func ParsePaymentBehavior(s string) PaymentBehavior {
	switch PaymentBehavior(normalize(s)) {
	case PaymentFullBalance, PaymentRevolving:
		return PaymentBehavior(normalize(s))
	default:
		return PaymentUnknown
	}
}

func ParseBonusImportance(s string) BonusImportance {
	switch BonusImportance(normalize(s)) {
	case BonusLow, BonusMedium, BonusHigh:
		return BonusImportance(normalize(s))
	default:
		return BonusUnknown
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// preferredMode maps a redemption preference to a catalog mode. The flexible
// default has no single mode.
func preferredMode(pref RedemptionPreference) (catalog.RedemptionMode, bool) {
	switch pref {
	case PreferCashback:
		return catalog.RedemptionCashback, true
	case PreferTravel:
		return catalog.RedemptionTravel, true
	case PreferTransfer:
		return catalog.RedemptionTransfer, true
	case PreferStatementCredit:
		return catalog.RedemptionStatementCredit, true
	default:
		return "", false
	}
}

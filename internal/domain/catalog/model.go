// Package catalog owns the candidate card-offer catalog: the Postgres-backed
// source of truth, an in-memory cache for the ranking pipeline, and a bleve
// search index over offer names and issuers.
package catalog

import (
	"github.com/FACorreiaa/cardwise-api/internal/domain/analysis"
)

// RedemptionMode is a way an offer's points can be redeemed.
type RedemptionMode string

const (
	RedemptionCashback        RedemptionMode = "cashback"
	RedemptionTravel          RedemptionMode = "travel"
	RedemptionTransfer        RedemptionMode = "transfer"
	RedemptionStatementCredit RedemptionMode = "statement_credit"
)

// AllRedemptionModes is the full mode set; redemption flexibility is measured
// against its size.
var AllRedemptionModes = []RedemptionMode{
	RedemptionCashback,
	RedemptionTravel,
	RedemptionTransfer,
	RedemptionStatementCredit,
}

// Offer is a candidate card product supplied by the catalog.
type Offer struct {
	ID                   string                           `json:"id"`
	Name                 string                           `json:"name"`
	Issuer               string                           `json:"issuer"`
	AnnualFee            float64                          `json:"annual_fee"`
	WelcomeBonusValue    float64                          `json:"welcome_bonus_value"`
	WelcomeBonusMinSpend float64                          `json:"welcome_bonus_min_spend"`
	CategoryEarnRates    map[analysis.Category]float64    `json:"category_earn_rates"`
	RedemptionModes      []RedemptionMode                 `json:"redemption_modes"`
	// Point values are in cents per point. TravelPointValueCents falls back
	// to the cashback baseline when zero.
	BasePointValueCents   float64 `json:"base_point_value_cents"`
	TravelPointValueCents float64 `json:"travel_point_value_cents,omitempty"`
}

// Complete reports whether the offer carries everything ranking needs.
// Incomplete offers are skipped, not fatal.
func (o *Offer) Complete() bool {
	return o.ID != "" &&
		len(o.CategoryEarnRates) > 0 &&
		len(o.RedemptionModes) > 0 &&
		o.BasePointValueCents > 0
}

// SupportsMode reports whether the offer can redeem via the given mode.
func (o *Offer) SupportsMode(mode RedemptionMode) bool {
	for _, m := range o.RedemptionModes {
		if m == mode {
			return true
		}
	}
	return false
}

// TravelValueCents returns the travel redemption rate, defaulting to the
// cashback baseline.
func (o *Offer) TravelValueCents() float64 {
	if o.TravelPointValueCents > 0 {
		return o.TravelPointValueCents
	}
	return o.BasePointValueCents
}

package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FACorreiaa/cardwise-api/internal/domain/analysis"
	"github.com/FACorreiaa/cardwise-api/internal/domain/catalog"
)

func TestValuePoints(t *testing.T) {
	t.Run("cashback only offer", func(t *testing.T) {
		offer := &catalog.Offer{
			CategoryEarnRates:   map[analysis.Category]float64{analysis.CategoryDining: 3},
			RedemptionModes:     []catalog.RedemptionMode{catalog.RedemptionCashback},
			BasePointValueCents: 1.0,
		}

		valuation := ValuePoints(offer, PreferFlexible)
		assert.Equal(t, 1.0, valuation.OptimalValue)
		assert.Equal(t, catalog.RedemptionCashback, valuation.OptimalMode)
		assert.Equal(t, 0.25, valuation.RedemptionFlexibility)
	})

	t.Run("travel mode pays the travel rate", func(t *testing.T) {
		offer := &catalog.Offer{
			RedemptionModes: []catalog.RedemptionMode{
				catalog.RedemptionCashback, catalog.RedemptionTravel,
			},
			BasePointValueCents:   1.0,
			TravelPointValueCents: 1.5,
		}

		valuation := ValuePoints(offer, PreferFlexible)
		assert.Equal(t, 1.5, valuation.OptimalValue)
		assert.Equal(t, catalog.RedemptionTravel, valuation.OptimalMode)
		assert.Equal(t, 1.5, valuation.TravelValue)
	})

	t.Run("transfer pays the travel rate too", func(t *testing.T) {
		offer := &catalog.Offer{
			RedemptionModes: []catalog.RedemptionMode{
				catalog.RedemptionCashback, catalog.RedemptionTransfer,
			},
			BasePointValueCents:   1.0,
			TravelPointValueCents: 2.0,
		}

		valuation := ValuePoints(offer, PreferFlexible)
		assert.Equal(t, 2.0, valuation.OptimalValue)
		assert.Equal(t, catalog.RedemptionTransfer, valuation.OptimalMode)
	})

	t.Run("travel rate falls back to the baseline", func(t *testing.T) {
		offer := &catalog.Offer{
			RedemptionModes: []catalog.RedemptionMode{
				catalog.RedemptionCashback, catalog.RedemptionTravel,
			},
			BasePointValueCents: 1.0,
		}

		valuation := ValuePoints(offer, PreferFlexible)
		assert.Equal(t, 1.0, valuation.TravelValue)
		assert.Equal(t, 1.0, valuation.OptimalValue)
	})

	t.Run("ties go to the preferred mode", func(t *testing.T) {
		offer := &catalog.Offer{
			RedemptionModes: []catalog.RedemptionMode{
				catalog.RedemptionCashback, catalog.RedemptionTravel,
			},
			BasePointValueCents: 1.0,
		}

		assert.Equal(t, catalog.RedemptionTravel, ValuePoints(offer, PreferTravel).OptimalMode)
		assert.Equal(t, catalog.RedemptionCashback, ValuePoints(offer, PreferCashback).OptimalMode)
	})

	t.Run("full mode set means full flexibility", func(t *testing.T) {
		offer := &catalog.Offer{
			RedemptionModes:     catalog.AllRedemptionModes,
			BasePointValueCents: 1.0,
		}

		assert.Equal(t, 1.0, ValuePoints(offer, PreferFlexible).RedemptionFlexibility)
	})
}

func TestParsePreferences(t *testing.T) {
	t.Run("known values normalize", func(t *testing.T) {
		assert.Equal(t, PreferTravel, ParseRedemptionPreference(" Travel "))
		assert.Equal(t, TravelFrequently, ParseTravelFrequency("FREQUENTLY"))
		assert.Equal(t, PaymentRevolving, ParsePaymentBehavior("revolving"))
		assert.Equal(t, BonusHigh, ParseBonusImportance("high"))
		assert.Equal(t, CreditScoreGood, ParseCreditScoreBand("good"))
	})

	t.Run("unknown values take the default", func(t *testing.T) {
		assert.Equal(t, PreferFlexible, ParseRedemptionPreference("points"))
		assert.Equal(t, TravelUnknown, ParseTravelFrequency(""))
		assert.Equal(t, PaymentUnknown, ParsePaymentBehavior("sometimes"))
		assert.Equal(t, BonusUnknown, ParseBonusImportance("very high"))
		assert.Equal(t, CreditScoreUnknown, ParseCreditScoreBand("750"))
	})
}

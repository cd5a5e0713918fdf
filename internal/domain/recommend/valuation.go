package recommend

import (
	"github.com/FACorreiaa/cardwise-api/internal/domain/catalog"
)

// PointValuation is the per-offer, per-profile estimate of what one point is
// worth. Values are in cents per point.
type PointValuation struct {
	CashbackValue         float64                `json:"cashback_value"`
	TravelValue           float64                `json:"travel_value"`
	OptimalValue          float64                `json:"optimal_value"`
	OptimalMode           catalog.RedemptionMode `json:"optimal_mode"`
	RedemptionFlexibility float64                `json:"redemption_flexibility"`
}

// ValuePoints derives the point valuation for an offer. The optimal value is
// the maximum across the offer's supported modes; when several modes tie, the
// one matching the user's redemption preference wins.
func ValuePoints(offer *catalog.Offer, pref RedemptionPreference) PointValuation {
	valuation := PointValuation{
		CashbackValue:         offer.BasePointValueCents,
		TravelValue:           offer.TravelValueCents(),
		RedemptionFlexibility: float64(len(offer.RedemptionModes)) / float64(len(catalog.AllRedemptionModes)),
	}

	preferred, hasPreference := preferredMode(pref)
	for _, mode := range offer.RedemptionModes {
		value := modeValue(offer, mode)
		better := value > valuation.OptimalValue
		tiedButPreferred := value == valuation.OptimalValue &&
			hasPreference && mode == preferred && valuation.OptimalMode != preferred
		if better || tiedButPreferred {
			valuation.OptimalValue = value
			valuation.OptimalMode = mode
		}
	}

	return valuation
}

// modeValue maps a redemption mode to its cents-per-point rate. Cash-like
// modes pay the baseline; travel and transfer pay the travel rate.
func modeValue(offer *catalog.Offer, mode catalog.RedemptionMode) float64 {
	switch mode {
	case catalog.RedemptionTravel, catalog.RedemptionTransfer:
		return offer.TravelValueCents()
	default:
		return offer.BasePointValueCents
	}
}

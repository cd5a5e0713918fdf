package catalog

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/FACorreiaa/cardwise-api/internal/domain/analysis"
)

// FakeOffers generates plausible card offers for tests and dev seeding.
// Seeded so repeated runs produce the same catalog.
func FakeOffers(count int) []Offer {
	faker := gofakeit.New(42)

	bonusCategories := []analysis.Category{
		analysis.CategoryGroceries,
		analysis.CategoryDining,
		analysis.CategoryGas,
		analysis.CategoryTravel,
		analysis.CategoryStreaming,
		analysis.CategoryOnlineShopping,
	}

	offers := make([]Offer, 0, count)
	for i := 0; i < count; i++ {
		issuer := faker.Company()
		name := fmt.Sprintf("%s %s Card", issuer, faker.Word())

		names := categoryNames(bonusCategories)
		faker.ShuffleStrings(names)
		earnRates := map[analysis.Category]float64{}
		for _, category := range names[:2+faker.Number(0, 2)] {
			earnRates[analysis.Category(category)] = float64(faker.Number(2, 5))
		}

		modes := []RedemptionMode{RedemptionCashback, RedemptionStatementCredit}
		travelValue := 0.0
		if faker.Bool() {
			modes = append(modes, RedemptionTravel)
			travelValue = 1.25
			if faker.Bool() {
				modes = append(modes, RedemptionTransfer)
				travelValue = 1.5
			}
		}

		annualFee := 0.0
		bonus := float64(faker.Number(150, 300))
		minSpend := 500.0
		if faker.Bool() {
			annualFee = float64(faker.Number(1, 6)) * 95
			bonus = float64(faker.Number(500, 1200))
			minSpend = float64(faker.Number(3, 8)) * 1000
		}

		offers = append(offers, Offer{
			ID:                    slug(name, i),
			Name:                  name,
			Issuer:                issuer,
			AnnualFee:             annualFee,
			WelcomeBonusValue:     bonus,
			WelcomeBonusMinSpend:  minSpend,
			CategoryEarnRates:     earnRates,
			RedemptionModes:       modes,
			BasePointValueCents:   1,
			TravelPointValueCents: travelValue,
		})
	}
	return offers
}

func categoryNames(categories []analysis.Category) []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	return names
}

func slug(name string, i int) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, " ", "-")
	return fmt.Sprintf("%s-%03d", s, i)
}

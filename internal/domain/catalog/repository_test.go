package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/cardwise-api/internal/domain/analysis"
)

func offerColumns() []string {
	return []string{
		"id", "name", "issuer", "annual_fee", "welcome_bonus_value", "welcome_bonus_min_spend",
		"category_earn_rates", "redemption_modes", "base_point_value_cents", "travel_point_value_cents",
	}
}

func TestRepositoryListActive(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRepository(mock)

	t.Run("decodes rows", func(t *testing.T) {
		rows := pgxmock.NewRows(offerColumns()).
			AddRow(
				"cash-plus", "Cash Plus Card", "First Bank",
				0.0, 200.0, 500.0,
				[]byte(`{"groceries":3}`), []string{"cashback"}, 1.0, 0.0,
			).
			AddRow(
				"travel-elite", "Travel Elite Card", "Summit Bank",
				95.0, 600.0, 4000.0,
				[]byte(`{"travel":3,"dining":2}`), []string{"cashback", "travel", "transfer"}, 1.0, 1.5,
			)
		mock.ExpectQuery("SELECT id, name, issuer").WillReturnRows(rows)

		offers, err := repo.ListActive(context.Background())
		require.NoError(t, err)
		require.Len(t, offers, 2)

		assert.Equal(t, "cash-plus", offers[0].ID)
		assert.Equal(t, 3.0, offers[0].CategoryEarnRates[analysis.CategoryGroceries])
		assert.Equal(t, []RedemptionMode{RedemptionCashback}, offers[0].RedemptionModes)

		assert.Equal(t, "travel-elite", offers[1].ID)
		assert.Equal(t, 1.5, offers[1].TravelPointValueCents)
		assert.True(t, offers[1].SupportsMode(RedemptionTransfer))
	})

	t.Run("query error", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, issuer").WillReturnError(errors.New("boom"))

		_, err := repo.ListActive(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "list active offers")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryUpsert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRepository(mock)

	offer := Offer{
		ID:                  "cash-plus",
		Name:                "Cash Plus Card",
		Issuer:              "First Bank",
		WelcomeBonusValue:   200,
		CategoryEarnRates:   map[analysis.Category]float64{analysis.CategoryGroceries: 3},
		RedemptionModes:     []RedemptionMode{RedemptionCashback},
		BasePointValueCents: 1,
	}

	mock.ExpectExec("INSERT INTO card_offers").
		WithArgs(
			"cash-plus", "Cash Plus Card", "First Bank",
			0.0, 200.0, 0.0,
			[]byte(`{"groceries":3}`), []string{"cashback"}, 1.0, 0.0,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Upsert(context.Background(), offer))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCount(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRepository(mock)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repository needs; pgxmock satisfies it.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repository handles database operations for card offers.
type Repository struct {
	db DB
}

// NewRepository creates a new offer repository.
func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

// ListActive fetches every active offer ordered by id.
func (r *Repository) ListActive(ctx context.Context) ([]Offer, error) {
	query := `
		SELECT id, name, issuer, annual_fee, welcome_bonus_value, welcome_bonus_min_spend,
		       category_earn_rates, redemption_modes, base_point_value_cents, travel_point_value_cents
		FROM card_offers
		WHERE active = TRUE
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active offers: %w", err)
	}
	defer rows.Close()

	var offers []Offer
	for rows.Next() {
		var (
			offer     Offer
			earnRates []byte
			modes     []string
		)
		if err := rows.Scan(
			&offer.ID, &offer.Name, &offer.Issuer,
			&offer.AnnualFee, &offer.WelcomeBonusValue, &offer.WelcomeBonusMinSpend,
			&earnRates, &modes, &offer.BasePointValueCents, &offer.TravelPointValueCents,
		); err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}

		if err := json.Unmarshal(earnRates, &offer.CategoryEarnRates); err != nil {
			return nil, fmt.Errorf("decode earn rates for offer %s: %w", offer.ID, err)
		}
		offer.RedemptionModes = toModes(modes)
		offers = append(offers, offer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate offers: %w", err)
	}
	return offers, nil
}

// Upsert inserts or replaces an offer by id.
func (r *Repository) Upsert(ctx context.Context, offer Offer) error {
	earnRates, err := json.Marshal(offer.CategoryEarnRates)
	if err != nil {
		return fmt.Errorf("encode earn rates: %w", err)
	}

	query := `
		INSERT INTO card_offers (
			id, name, issuer, annual_fee, welcome_bonus_value, welcome_bonus_min_spend,
			category_earn_rates, redemption_modes, base_point_value_cents, travel_point_value_cents,
			active, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, TRUE, now())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			issuer = EXCLUDED.issuer,
			annual_fee = EXCLUDED.annual_fee,
			welcome_bonus_value = EXCLUDED.welcome_bonus_value,
			welcome_bonus_min_spend = EXCLUDED.welcome_bonus_min_spend,
			category_earn_rates = EXCLUDED.category_earn_rates,
			redemption_modes = EXCLUDED.redemption_modes,
			base_point_value_cents = EXCLUDED.base_point_value_cents,
			travel_point_value_cents = EXCLUDED.travel_point_value_cents,
			active = TRUE,
			updated_at = now()
	`

	_, err = r.db.Exec(ctx, query,
		offer.ID, offer.Name, offer.Issuer,
		offer.AnnualFee, offer.WelcomeBonusValue, offer.WelcomeBonusMinSpend,
		earnRates, toStrings(offer.RedemptionModes),
		offer.BasePointValueCents, offer.TravelPointValueCents,
	)
	if err != nil {
		return fmt.Errorf("upsert offer %s: %w", offer.ID, err)
	}
	return nil
}

// Count returns the number of active offers.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM card_offers WHERE active = TRUE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count offers: %w", err)
	}
	return count, nil
}

func toModes(values []string) []RedemptionMode {
	modes := make([]RedemptionMode, len(values))
	for i, v := range values {
		modes[i] = RedemptionMode(v)
	}
	return modes
}

func toStrings(modes []RedemptionMode) []string {
	values := make([]string, len(modes))
	for i, m := range modes {
		values[i] = string(m)
	}
	return values
}

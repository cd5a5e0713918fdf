// Package report persists finished analysis reports and exports them.
package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/FACorreiaa/cardwise-api/internal/domain/advisor"
)

// ErrNotFound is returned when no stored report matches the id.
var ErrNotFound = errors.New("report: not found")

// DB is the subset of pgxpool.Pool the repository needs; pgxmock satisfies it.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// StoredReport is a persisted analysis with its envelope.
type StoredReport struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Report    *advisor.Report
	CreatedAt time.Time
}

// Repository handles database operations for analysis reports.
type Repository struct {
	db DB
}

// NewRepository creates a new report repository.
func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

// Save stores a report as JSONB and returns its storage id.
func (r *Repository) Save(ctx context.Context, userID uuid.UUID, rep *advisor.Report) (uuid.UUID, error) {
	payload, err := json.Marshal(rep)
	if err != nil {
		return uuid.Nil, fmt.Errorf("encode report: %w", err)
	}

	id := uuid.New()
	query := `
		INSERT INTO analysis_reports (id, user_id, analysis_type, data_quality_score, report)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.Exec(ctx, query, id, userID, string(rep.Metadata.AnalysisType), rep.DataQuality, payload); err != nil {
		return uuid.Nil, fmt.Errorf("insert report: %w", err)
	}
	return id, nil
}

// Get fetches a stored report owned by the given user.
func (r *Repository) Get(ctx context.Context, userID, id uuid.UUID) (*StoredReport, error) {
	query := `
		SELECT id, user_id, report, created_at
		FROM analysis_reports
		WHERE id = $1 AND user_id = $2
	`

	var (
		stored  StoredReport
		payload []byte
	)
	err := r.db.QueryRow(ctx, query, id, userID).Scan(&stored.ID, &stored.UserID, &payload, &stored.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch report %s: %w", id, err)
	}

	stored.Report = &advisor.Report{}
	if err := json.Unmarshal(payload, stored.Report); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", id, err)
	}
	return &stored, nil
}

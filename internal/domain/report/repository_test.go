package report

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/cardwise-api/internal/domain/advisor"
	"github.com/FACorreiaa/cardwise-api/internal/domain/analysis"
)

func sampleReport() *advisor.Report {
	return &advisor.Report{
		SpendingBreakdown: map[analysis.Category]float64{
			analysis.CategoryGroceries: 200.75,
			analysis.CategoryDining:    15.75,
		},
		MonthlyAverages: map[analysis.Category]float64{
			analysis.CategoryGroceries: 100.375,
			analysis.CategoryDining:    7.875,
		},
		TotalSpending: 216.50,
		Insights:      []string{"Your top spending category is groceries at $200.75, 93% of total spending."},
		DataQuality:   45,
		Metadata: advisor.Metadata{
			AnalysisType:     advisor.AnalysisBasic,
			DataQualityScore: 45,
			ConfidenceLevel:  analysis.ConfidenceMedium,
			GeneratedAt:      time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		},
	}
}

func TestRepositorySave(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRepository(mock)
	userID := uuid.New()

	mock.ExpectExec("INSERT INTO analysis_reports").
		WithArgs(pgxmock.AnyArg(), userID, "basic", 45, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	id, err := repo.Save(context.Background(), userID, sampleReport())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGet(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRepository(mock)
	userID := uuid.New()
	reportID := uuid.New()

	t.Run("found", func(t *testing.T) {
		payload, err := json.Marshal(sampleReport())
		require.NoError(t, err)
		createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

		mock.ExpectQuery("SELECT id, user_id, report, created_at").
			WithArgs(reportID, userID).
			WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "report", "created_at"}).
				AddRow(reportID, userID, payload, createdAt))

		stored, err := repo.Get(context.Background(), userID, reportID)
		require.NoError(t, err)
		assert.Equal(t, reportID, stored.ID)
		assert.Equal(t, userID, stored.UserID)
		assert.Equal(t, createdAt, stored.CreatedAt)
		assert.InDelta(t, 216.50, stored.Report.TotalSpending, 1e-6)
		assert.Equal(t, 45, stored.Report.DataQuality)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id, report, created_at").
			WithArgs(reportID, userID).
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.Get(context.Background(), userID, reportID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

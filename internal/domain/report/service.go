package report

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/FACorreiaa/cardwise-api/internal/domain/advisor"
)

// Service handles report persistence and export.
type Service struct {
	repo   *Repository
	logger *slog.Logger
}

// NewService creates a new report service.
func NewService(repo *Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Save persists a finished analysis for the given user.
func (s *Service) Save(ctx context.Context, userID uuid.UUID, rep *advisor.Report) (uuid.UUID, error) {
	id, err := s.repo.Save(ctx, userID, rep)
	if err != nil {
		return uuid.Nil, err
	}
	s.logger.Info("analysis report stored",
		slog.String("report_id", id.String()),
		slog.String("user_id", userID.String()),
	)
	return id, nil
}

// Get fetches a stored report owned by the user.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*StoredReport, error) {
	return s.repo.Get(ctx, userID, id)
}

// Export renders a stored report as an XLSX workbook.
func (s *Service) Export(ctx context.Context, userID, id uuid.UUID) ([]byte, error) {
	stored, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return ExportExcel(stored.Report)
}

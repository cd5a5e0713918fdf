// Package advisor orchestrates the analysis pipeline: aggregation, quality
// scoring, insights, seasonal detection, and offer ranking, assembled into a
// single report. Stages share no state across invocations; concurrent
// analyses are safe without synchronization.
package advisor

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/cardwise-api/internal/domain/analysis"
	"github.com/FACorreiaa/cardwise-api/internal/domain/catalog"
	"github.com/FACorreiaa/cardwise-api/internal/domain/recommend"
	"github.com/FACorreiaa/cardwise-api/pkg/metrics"
)

// ErrNoTransactions is returned when the request carries no transactions;
// nothing is computed in that case.
var ErrNoTransactions = errors.New("advisor: no transactions provided")

// flatCashbackBaseline is the 1% flat-rate card the current-card analysis
// compares against.
const flatCashbackBaseline = 0.01

// AnalysisType selects how much work the pipeline does. All current types
// run the same stages; the type is echoed in metadata for clients.
type AnalysisType string

const (
	AnalysisBasic     AnalysisType = "basic"
	AnalysisEnhanced  AnalysisType = "enhanced"
	AnalysisAIPowered AnalysisType = "ai_powered"
)

// ParseAnalysisType normalizes the requested type, defaulting to basic.
func ParseAnalysisType(s string) AnalysisType {
	switch AnalysisType(s) {
	case AnalysisEnhanced:
		return AnalysisEnhanced
	case AnalysisAIPowered:
		return AnalysisAIPowered
	default:
		return AnalysisBasic
	}
}

// ProfileInput is the user-supplied portion of the spending profile.
type ProfileInput struct {
	AnnualIncome         float64  `json:"annual_income"`
	CreditScoreBand      string   `json:"credit_score_band"`
	TravelFrequency      string   `json:"travel_frequency"`
	RedemptionPreference string   `json:"redemption_preference"`
	CurrentCards         []string `json:"current_cards"`
	PaymentBehavior      string   `json:"payment_behavior"`
	BonusImportance      string   `json:"bonus_importance"`
}

// Request is one analysis invocation.
type Request struct {
	Transactions []analysis.Transaction `json:"transactions"`
	UserProfile  ProfileInput           `json:"user_profile"`
	AnalysisType string                 `json:"analysis_type"`
	Limit        int                    `json:"limit,omitempty"`
}

// CurrentCardAnalysis compares recommendations against a 1% flat-cashback
// baseline.
type CurrentCardAnalysis struct {
	EstimatedAnnualValue float64 `json:"estimated_annual_value"`
	ImprovementPotential float64 `json:"improvement_potential"`
}

// Metadata describes the analysis run.
type Metadata struct {
	AnalysisType         AnalysisType `json:"analysis_type"`
	DataQualityScore     int          `json:"data_quality_score"`
	ConfidenceLevel      string       `json:"confidence_level"`
	RecommendationsCount int          `json:"recommendations_count"`
	GeneratedAt          time.Time    `json:"generated_at"`
}

// Report is the full analysis response.
type Report struct {
	SpendingBreakdown   map[analysis.Category]float64 `json:"spending_breakdown"`
	MonthlyAverages     map[analysis.Category]float64 `json:"monthly_averages"`
	TotalSpending       float64                       `json:"total_spending"`
	Insights            []string                      `json:"insights"`
	SeasonalPatterns    map[string]string             `json:"seasonal_patterns"`
	DataQuality         int                           `json:"data_quality"`
	Recommendations     []recommend.Recommendation    `json:"recommendations"`
	CurrentCardAnalysis CurrentCardAnalysis           `json:"current_card_analysis"`
	Metadata            Metadata                      `json:"analysis_metadata"`
}

// CatalogProvider supplies the resolved offer catalog before ranking runs.
type CatalogProvider interface {
	ActiveOffers(ctx context.Context) ([]catalog.Offer, error)
}

// Service runs the analysis pipeline.
type Service struct {
	aggregator *analysis.Aggregator
	ranker     *recommend.Ranker
	catalog    CatalogProvider
	logger     *slog.Logger
	tracer     trace.Tracer
}

// NewService wires the pipeline stages together.
func NewService(aggregator *analysis.Aggregator, ranker *recommend.Ranker, catalogProvider CatalogProvider, logger *slog.Logger) *Service {
	return &Service{
		aggregator: aggregator,
		ranker:     ranker,
		catalog:    catalogProvider,
		logger:     logger,
		tracer:     otel.Tracer("advisor"),
	}
}

// Analyze runs the full pipeline. Aggregation, quality, insights, and
// seasonal detection either succeed fully or return a typed error; ranking
// degrades independently so users still see their spending breakdown when
// the offer catalog is down.
func (s *Service) Analyze(ctx context.Context, req *Request) (*Report, error) {
	if len(req.Transactions) == 0 {
		return nil, ErrNoTransactions
	}

	ctx, span := s.tracer.Start(ctx, "advisor.Analyze")
	defer span.End()
	start := time.Now()

	agg := s.aggregator.Aggregate(req.Transactions)
	if agg.Warnings > 0 {
		metrics.MalformedTransactions.Add(float64(agg.Warnings))
		s.logger.Warn("analysis contains malformed transactions",
			slog.Int("warnings", agg.Warnings),
			slog.Int("transactions", len(req.Transactions)),
		)
	}

	quality := analysis.ScoreQuality(req.Transactions, agg)
	insights := analysis.GenerateInsights(agg)
	seasonal := analysis.DetectSeasonalPatterns(agg.MonthlyTotals)

	profile := buildProfile(req.UserProfile, agg, quality)
	recommendations := s.rankOffers(ctx, profile, req.Limit)

	analysisType := ParseAnalysisType(req.AnalysisType)
	report := &Report{
		SpendingBreakdown:   agg.CategoryTotals,
		MonthlyAverages:     agg.MonthlyAverages,
		TotalSpending:       agg.TotalSpending,
		Insights:            insights,
		SeasonalPatterns:    seasonal,
		DataQuality:         quality,
		Recommendations:     recommendations,
		CurrentCardAnalysis: currentCardAnalysis(profile, recommendations),
		Metadata: Metadata{
			AnalysisType:         analysisType,
			DataQualityScore:     quality,
			ConfidenceLevel:      analysis.ConfidenceLevel(quality),
			RecommendationsCount: len(recommendations),
			GeneratedAt:          time.Now().UTC(),
		},
	}

	metrics.AnalysesTotal.WithLabelValues(string(analysisType)).Inc()
	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	metrics.RecommendationsReturned.Observe(float64(len(recommendations)))

	return report, nil
}

// rankOffers resolves the catalog and runs the ranker. A failed or empty
// catalog yields an empty recommendation list; an unexpected panic during
// scoring is recovered here so no partial list escapes.
func (s *Service) rankOffers(ctx context.Context, profile *recommend.SpendingProfile, limit int) (recommendations []recommend.Recommendation) {
	recommendations = []recommend.Recommendation{}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("recommendation scoring failed", slog.Any("panic", r))
			recommendations = []recommend.Recommendation{}
		}
	}()

	ctx, span := s.tracer.Start(ctx, "advisor.rankOffers")
	defer span.End()

	offers, err := s.catalog.ActiveOffers(ctx)
	if err != nil {
		metrics.CatalogUnavailable.Inc()
		s.logger.Warn("offer catalog unavailable, skipping recommendations", slog.Any("error", err))
		return recommendations
	}
	if len(offers) == 0 {
		s.logger.Warn("offer catalog is empty, skipping recommendations")
		return recommendations
	}

	return s.ranker.Rank(profile, offers, limit)
}

func buildProfile(input ProfileInput, agg *analysis.Aggregation, quality int) *recommend.SpendingProfile {
	return &recommend.SpendingProfile{
		AnnualIncome:         input.AnnualIncome,
		CreditScoreBand:      recommend.ParseCreditScoreBand(input.CreditScoreBand),
		MonthlySpending:      agg.MonthlyAverages,
		TravelFrequency:      recommend.ParseTravelFrequency(input.TravelFrequency),
		RedemptionPreference: recommend.ParseRedemptionPreference(input.RedemptionPreference),
		CurrentCards:         input.CurrentCards,
		PaymentBehavior:      recommend.ParsePaymentBehavior(input.PaymentBehavior),
		BonusImportance:      recommend.ParseBonusImportance(input.BonusImportance),
		DataQuality:          quality,
	}
}

// currentCardAnalysis estimates what the user earns today on a 1% flat card
// and how much the top recommendation improves on it.
func currentCardAnalysis(profile *recommend.SpendingProfile, recommendations []recommend.Recommendation) CurrentCardAnalysis {
	baseline := profile.TotalMonthlySpending() * 12 * flatCashbackBaseline

	improvement := 0.0
	if len(recommendations) > 0 {
		improvement = math.Max(0, recommendations[0].NetAnnualBenefit-baseline)
	}

	return CurrentCardAnalysis{
		EstimatedAnnualValue: baseline,
		ImprovementPotential: improvement,
	}
}

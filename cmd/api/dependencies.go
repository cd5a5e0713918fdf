package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/FACorreiaa/cardwise-api/internal/domain/advisor"
	advisorhandler "github.com/FACorreiaa/cardwise-api/internal/domain/advisor/handler"
	"github.com/FACorreiaa/cardwise-api/internal/domain/analysis"
	"github.com/FACorreiaa/cardwise-api/internal/domain/catalog"
	cataloghandler "github.com/FACorreiaa/cardwise-api/internal/domain/catalog/handler"
	"github.com/FACorreiaa/cardwise-api/internal/domain/recommend"
	"github.com/FACorreiaa/cardwise-api/internal/domain/report"
	reporthandler "github.com/FACorreiaa/cardwise-api/internal/domain/report/handler"
	"github.com/FACorreiaa/cardwise-api/pkg/config"
	"github.com/FACorreiaa/cardwise-api/pkg/db"
	"github.com/FACorreiaa/cardwise-api/pkg/server"
)

// Dependencies wires config, storage, services, and handlers together.
type Dependencies struct {
	Config *config.Config
	DB     *db.DB
	Logger *slog.Logger

	CatalogRepo *catalog.Repository
	ReportRepo  *report.Repository

	CatalogService *catalog.Service
	ReportService  *report.Service
	AdvisorService *advisor.Service

	AdvisorHandler *advisorhandler.AdvisorHandler
	CatalogHandler *cataloghandler.CatalogHandler
	ReportHandler  *reporthandler.ReportHandler
}

// InitDependencies builds the full dependency graph.
func InitDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Config: cfg, Logger: logger}

	if err := deps.initDatabase(ctx); err != nil {
		return nil, err
	}
	deps.initRepositories()
	if err := deps.initServices(); err != nil {
		return nil, err
	}
	deps.initHandlers()

	return deps, nil
}

func (d *Dependencies) initDatabase(ctx context.Context) error {
	database, err := db.New(ctx, db.Config{
		DSN:      d.Config.Database.DSN(),
		MaxConns: 10,
		MinConns: 2,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	if err := database.Migrate(); err != nil {
		database.Close()
		return fmt.Errorf("run migrations: %w", err)
	}

	d.DB = database
	return nil
}

func (d *Dependencies) initRepositories() {
	d.CatalogRepo = catalog.NewRepository(d.DB.Pool)
	d.ReportRepo = report.NewRepository(d.DB.Pool)
}

func (d *Dependencies) initServices() error {
	catalogService, err := catalog.NewService(d.CatalogRepo, d.Logger)
	if err != nil {
		return fmt.Errorf("init catalog service: %w", err)
	}
	d.CatalogService = catalogService
	d.ReportService = report.NewService(d.ReportRepo, d.Logger)

	categorizer := analysis.NewCategorizer()
	aggregator := analysis.NewAggregator(categorizer, d.Logger)
	ranker := recommend.NewRanker(d.Logger)
	d.AdvisorService = advisor.NewService(aggregator, ranker, d.CatalogService, d.Logger)

	return nil
}

func (d *Dependencies) initHandlers() {
	d.AdvisorHandler = advisorhandler.NewAdvisorHandler(d.AdvisorService, d.ReportService, d.Logger)
	d.CatalogHandler = cataloghandler.NewCatalogHandler(d.CatalogService, d.Logger)
	d.ReportHandler = reporthandler.NewReportHandler(d.ReportService, d.Logger)
}

// Routes registers all API routes.
func (d *Dependencies) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/analyze", d.AdvisorHandler.Analyze)
	mux.HandleFunc("GET /v1/offers", d.CatalogHandler.List)
	mux.HandleFunc("GET /v1/offers/search", d.CatalogHandler.Search)
	mux.HandleFunc("GET /v1/reports/{id}", d.ReportHandler.Get)
	mux.HandleFunc("GET /v1/reports/{id}/export", d.ReportHandler.Export)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := d.DB.Pool.Ping(r.Context()); err != nil {
			server.Error(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
		server.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return mux
}

// Close releases held resources.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}

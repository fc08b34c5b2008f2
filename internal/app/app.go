package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"insights/database"
	analyticsapp "insights/internal/analytics/application"
	analyticsdomain "insights/internal/analytics/domain"
	analyticsinfra "insights/internal/analytics/infrastructure"
	cataloginfra "insights/internal/catalog/infrastructure"
	coachingapp "insights/internal/coaching/application"
	coachinginfra "insights/internal/coaching/infrastructure"
	"insights/internal/config"
	exportapp "insights/internal/export/application"
	salesapp "insights/internal/sales/application"
	salesinfra "insights/internal/sales/infrastructure"
	sharedinfra "insights/internal/shared/infrastructure"
)

// reportCacheShards nombre de shards du cache de rapports (puissance de 2)
const reportCacheShards = 16

// App regroupe la base et les services câblés
type App struct {
	DB        *database.DB
	Log       *logrus.Logger
	Catalog   *cataloginfra.CatalogQueryRepository
	Reports   *analyticsapp.ReportService
	Ingestion *salesapp.IngestionService
	Coaching  *coachingapp.CoachingService
	Exports   *exportapp.ExportService
}

// Open ouvre la base, la provisionne puis câble les services.
// Le provisionnement termine avant toute lecture analytique.
func Open(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*App, error) {
	db, err := database.Open(ctx, cfg.DatabaseOptions(log))
	if err != nil {
		return nil, err
	}

	if err := database.NewSchemaManager(db.Gorm, log).Provision(ctx); err != nil {
		db.Close()
		return nil, err
	}

	a, err := New(db, cfg, log)
	if err != nil {
		db.Close()
		return nil, err
	}
	return a, nil
}

// New câble les services sur une base déjà provisionnée
func New(db *database.DB, cfg *config.Config, log *logrus.Logger) (*App, error) {
	catalog := cataloginfra.NewCatalogQueryRepository(db.Gorm)

	reports := analyticsapp.NewReportService(
		analyticsinfra.NewReportQueryRepository(db.Gorm),
		sharedinfra.NewShardedCache[*analyticsdomain.ReportBundle](reportCacheShards),
		analyticsapp.ReportOptions{
			CacheTTL:      cfg.CacheTTL,
			QueryTimeout:  cfg.QueryTimeout,
			SeriesWorkers: cfg.SeriesWorkers,
		},
		log,
	)

	procedure, err := coachinginfra.NewDecisionProcedure(db.Gorm, cfg.SuggestionQuery)
	if err != nil {
		return nil, fmt.Errorf("decision procedure: %w", err)
	}

	return &App{
		DB:        db,
		Log:       log,
		Catalog:   catalog,
		Reports:   reports,
		Ingestion: salesapp.NewIngestionService(catalog, salesinfra.NewSaleCommandRepository(db.Gorm), reports, log),
		Coaching:  coachingapp.NewCoachingService(coachinginfra.NewScoutingCommandRepository(db.Gorm), procedure, log),
		Exports:   exportapp.NewExportService(reports, log),
	}, nil
}

// Close ferme la base
func (a *App) Close() error {
	return a.DB.Close()
}

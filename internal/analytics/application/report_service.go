package application

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"insights/internal/analytics/domain"
	shareddomain "insights/internal/shared/domain"
	sharedinfra "insights/internal/shared/infrastructure"
)

// ReportQueries lectures analytiques utilisées par le service
// (implémenté par infrastructure.ReportQueryRepository)
type ReportQueries interface {
	KPI(ctx context.Context, dateRange shareddomain.DateRange) (domain.KPI, error)
	CategoryBreakdown(ctx context.Context, dateRange shareddomain.DateRange) ([]*domain.CategoryTotal, error)
	TopProducts(ctx context.Context, limit int) ([]*domain.ProductRanking, error)
	Ledger(ctx context.Context, filter domain.LedgerFilter) ([]*domain.LedgerEntry, error)
}

// ReportOptions réglages du service de rapports
type ReportOptions struct {
	CacheTTL      time.Duration
	QueryTimeout  time.Duration
	SeriesWorkers int
}

// ReportService point d'entrée des rapports: validation, cache, lectures parallèles
type ReportService struct {
	queries ReportQueries
	cache   sharedinfra.Cache[*domain.ReportBundle]
	opts    ReportOptions
	log     *logrus.Logger

	// generation incrémentée à chaque invalidation; un rapport lu avant
	// une invalidation n'est pas mis en cache
	generation atomic.Uint64
}

// NewReportService crée une nouvelle instance de ReportService
func NewReportService(
	queries ReportQueries,
	cache sharedinfra.Cache[*domain.ReportBundle],
	opts ReportOptions,
	log *logrus.Logger,
) *ReportService {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	if opts.SeriesWorkers <= 0 {
		opts.SeriesWorkers = 4
	}
	return &ReportService{
		queries: queries,
		cache:   cache,
		opts:    opts,
		log:     log,
	}
}

// GenerateReportBetween valide les bornes puis génère le rapport.
// start > end échoue avec ErrInvalidRange sans aucune lecture.
func (s *ReportService) GenerateReportBetween(ctx context.Context, start, end shareddomain.Date) (*domain.ReportBundle, error) {
	dateRange, err := shareddomain.NewDateRange(start, end)
	if err != nil {
		return nil, err
	}
	return s.GenerateReport(ctx, dateRange)
}

// GenerateReport retourne KPI, répartition par catégorie, classement et registre.
// Les quatre lectures sont indépendantes et lancées en parallèle; la première
// erreur annule les autres et aucun rapport partiel n'est retourné.
func (s *ReportService) GenerateReport(ctx context.Context, dateRange shareddomain.DateRange) (*domain.ReportBundle, error) {
	if err := validateRange(dateRange); err != nil {
		return nil, err
	}

	cacheKey := s.buildCacheKey(dateRange)
	if cached, found := s.cache.Get(cacheKey); found {
		return cached, nil
	}

	generation := s.generation.Load()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		kpi         domain.KPI
		breakdown   []*domain.CategoryTotal
		topProducts []*domain.ProductRanking
		ledger      []*domain.LedgerEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		kpi, err = s.queries.KPI(gctx, dateRange)
		return err
	})
	g.Go(func() error {
		var err error
		breakdown, err = s.queries.CategoryBreakdown(gctx, dateRange)
		return err
	})
	g.Go(func() error {
		var err error
		topProducts, err = s.queries.TopProducts(gctx, domain.TopProductsLimit)
		return err
	})
	g.Go(func() error {
		var err error
		ledger, err = s.queries.Ledger(gctx, domain.LedgerFilter{Range: dateRange})
		return err
	})

	if err := g.Wait(); err != nil {
		s.log.WithFields(logrus.Fields{
			"range":     dateRange.String(),
			"operation": shareddomain.OperationOf(err),
		}).WithError(err).Error("report generation failed")
		return nil, err
	}

	bundle := domain.NewReportBundle(dateRange, kpi, breakdown, topProducts, ledger)
	if s.generation.Load() == generation {
		s.cache.Set(cacheKey, bundle, s.opts.CacheTTL)
	}

	s.log.WithFields(logrus.Fields{
		"range":      dateRange.String(),
		"sale_count": kpi.SaleCount(),
		"ledger":     len(ledger),
	}).Debug("report generated")

	return bundle, nil
}

// Ledger retourne le registre détaillé seul (affichage tabulaire, export)
func (s *ReportService) Ledger(ctx context.Context, filter domain.LedgerFilter) ([]*domain.LedgerEntry, error) {
	if err := validateRange(filter.Range); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.queries.Ledger(ctx, filter)
}

// KPISeries calcule un KPI par mois calendaire de la période, dans l'ordre des mois.
// Les mois sont répartis sur le pool de workers.
func (s *ReportService) KPISeries(ctx context.Context, dateRange shareddomain.DateRange) ([]domain.KPIPoint, error) {
	if err := validateRange(dateRange); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	months := dateRange.Months()
	points := make([]domain.KPIPoint, len(months))

	pool := sharedinfra.NewWorkerPool(ctx, s.opts.SeriesWorkers)
	pool.Start()

	var submitErr error
	for i, month := range months {
		i, month := i, month
		err := pool.Submit(func(ctx context.Context) error {
			kpi, err := s.queries.KPI(ctx, month)
			if err != nil {
				return err
			}
			points[i] = domain.NewKPIPoint(month, kpi)
			return nil
		})
		if err != nil {
			submitErr = err
			break
		}
	}

	if err := pool.Wait(); err != nil {
		return nil, err
	}
	if submitErr != nil {
		if ctx.Err() != nil {
			return nil, shareddomain.WrapOperation("kpi_series", ctx.Err())
		}
		return nil, shareddomain.WrapOperation("kpi_series", submitErr)
	}

	return points, nil
}

// InvalidateCache vide le cache des rapports (appelé après chaque écriture)
func (s *ReportService) InvalidateCache() {
	s.generation.Add(1)
	s.cache.Clear()
}

func (s *ReportService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.QueryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.opts.QueryTimeout)
}

func (s *ReportService) buildCacheKey(dateRange shareddomain.DateRange) string {
	return sharedinfra.NewCacheKeyBuilder().
		Add("report").
		Add(dateRange.Start().String()).
		Add(dateRange.End().String()).
		AddInt(domain.TopProductsLimit).
		Build()
}

// validateRange rejette la valeur zéro de DateRange, qui contourne NewDateRange
func validateRange(dateRange shareddomain.DateRange) error {
	if dateRange.Start().IsZero() || dateRange.End().IsZero() || dateRange.Start().After(dateRange.End()) {
		return fmt.Errorf("%w: %s", shareddomain.ErrInvalidRange, dateRange)
	}
	return nil
}

package application

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	analyticsdomain "insights/internal/analytics/domain"
	"insights/internal/export/domain"
	shareddomain "insights/internal/shared/domain"
)

// ReportSource lectures fournies par le service de rapports
type ReportSource interface {
	GenerateReport(ctx context.Context, dateRange shareddomain.DateRange) (*analyticsdomain.ReportBundle, error)
	Ledger(ctx context.Context, filter analyticsdomain.LedgerFilter) ([]*analyticsdomain.LedgerEntry, error)
}

// ExportService produit les fichiers CSV / Parquet en mémoire
type ExportService struct {
	reports   ReportSource
	log       *logrus.Logger
	batchSize int
}

// NewExportService crée une nouvelle instance de ExportService
func NewExportService(reports ReportSource, log *logrus.Logger) *ExportService {
	return &ExportService{
		reports:   reports,
		log:       log,
		batchSize: 1000,
	}
}

// Export exécute le job et retourne le contenu du fichier
func (s *ExportService) Export(ctx context.Context, job *domain.ExportJob) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case job.ExportType() == domain.ExportTypeReport:
		data, err = s.ReportCSV(ctx, job.DateRange())
	case job.Format() == domain.ExportFormatParquet:
		data, err = s.LedgerParquet(ctx, job.LedgerFilter())
	default:
		data, err = s.LedgerCSV(ctx, job.LedgerFilter())
	}
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"file":  job.FileName(),
		"bytes": len(data),
	}).Info("export generated")
	return data, nil
}

// LedgerCSV exporte le registre détaillé en CSV
func (s *ExportService) LedgerCSV(ctx context.Context, filter analyticsdomain.LedgerFilter) ([]byte, error) {
	entries, err := s.reports.Ledger(ctx, filter)
	if err != nil {
		return nil, err
	}

	buffer := bytes.NewBuffer(make([]byte, 0, 64*1024))
	w := csv.NewWriter(buffer)

	if err := w.Write(domain.CSVHeaders()); err != nil {
		return nil, err
	}
	for i, entry := range entries {
		if err := w.Write(domain.NewLedgerExportRow(entry).ToCSVRow()); err != nil {
			return nil, err
		}
		if (i+1)%s.batchSize == 0 {
			w.Flush()
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv export error: %w", err)
	}
	return buffer.Bytes(), nil
}

// LedgerParquet exporte le registre détaillé en Parquet (compression Snappy)
func (s *ExportService) LedgerParquet(ctx context.Context, filter analyticsdomain.LedgerFilter) ([]byte, error) {
	entries, err := s.reports.Ledger(ctx, filter)
	if err != nil {
		return nil, err
	}

	var buffer bytes.Buffer
	pw, err := writer.NewParquetWriterFromWriter(&buffer, new(domain.LedgerExportRow), 4)
	if err != nil {
		return nil, fmt.Errorf("parquet writer error: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, entry := range entries {
		if err := pw.Write(domain.NewLedgerExportRow(entry)); err != nil {
			return nil, fmt.Errorf("parquet write error: %w", err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		return nil, fmt.Errorf("parquet flush error: %w", err)
	}
	return buffer.Bytes(), nil
}

// ReportCSV exporte KPI, répartition par catégorie et classement en sections CSV
func (s *ExportService) ReportCSV(ctx context.Context, dateRange shareddomain.DateRange) ([]byte, error) {
	bundle, err := s.reports.GenerateReport(ctx, dateRange)
	if err != nil {
		return nil, err
	}

	buffer := bytes.NewBuffer(make([]byte, 0, 16*1024))
	// sections de largeur variable séparées par une ligne vide
	w := csv.NewWriter(buffer)

	kpi := bundle.KPI()
	records := [][]string{
		{"section", "metric", "value"},
		{"kpi", "period", dateRange.String()},
		{"kpi", "total_revenue", kpi.TotalRevenue().Amount().StringFixed(2)},
		{"kpi", "sale_count", strconv.Itoa(kpi.SaleCount())},
		{"kpi", "average_ticket", kpi.AverageTicket().Amount().StringFixed(2)},
		{},
		{"category", "category_name", "total"},
	}
	for _, ct := range bundle.CategoryBreakdown() {
		records = append(records, []string{"category", ct.CategoryName(), ct.Total().Amount().StringFixed(2)})
	}
	records = append(records, []string{}, []string{"top_product", "product_name", "quantity_total"})
	for _, pr := range bundle.TopProducts() {
		records = append(records, []string{"top_product", pr.ProductName(), strconv.Itoa(pr.QuantityTotal().Value())})
	}

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("csv export error: %w", err)
	}
	return buffer.Bytes(), nil
}

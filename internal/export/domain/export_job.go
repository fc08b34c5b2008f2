package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	analyticsdomain "insights/internal/analytics/domain"
	"insights/internal/shared/domain"
)

// ExportFormat représente le format d'export
type ExportFormat string

const (
	ExportFormatCSV     ExportFormat = "csv"
	ExportFormatParquet ExportFormat = "parquet"
)

// ExportType représente le contenu exporté
type ExportType string

const (
	ExportTypeLedger ExportType = "ledger"
	ExportTypeReport ExportType = "report"
)

// ErrUnsupportedExport combinaison format / contenu non prise en charge
var ErrUnsupportedExport = errors.New("unsupported export")

// ParseExportFormat lit un format saisi en ligne de commande ou en query string
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(s))) {
	case ExportFormatCSV:
		return ExportFormatCSV, nil
	case ExportFormatParquet:
		return ExportFormatParquet, nil
	default:
		return "", fmt.Errorf("%w: format %q", ErrUnsupportedExport, s)
	}
}

// ExportJob représente une demande d'export
type ExportJob struct {
	format       ExportFormat
	exportType   ExportType
	dateRange    domain.DateRange
	categoryName string
}

// NewExportJob crée un nouveau job d'export avec validation.
// Le rapport n'existe qu'en CSV (plusieurs sections de forme différente).
func NewExportJob(format ExportFormat, exportType ExportType, dateRange domain.DateRange, categoryName string) (*ExportJob, error) {
	if format != ExportFormatCSV && format != ExportFormatParquet {
		return nil, fmt.Errorf("%w: format %q", ErrUnsupportedExport, format)
	}
	if exportType != ExportTypeLedger && exportType != ExportTypeReport {
		return nil, fmt.Errorf("%w: type %q", ErrUnsupportedExport, exportType)
	}
	if exportType == ExportTypeReport && format != ExportFormatCSV {
		return nil, fmt.Errorf("%w: report is only available as csv", ErrUnsupportedExport)
	}

	return &ExportJob{
		format:       format,
		exportType:   exportType,
		dateRange:    dateRange,
		categoryName: categoryName,
	}, nil
}

// Format retourne le format d'export
func (ej *ExportJob) Format() ExportFormat {
	return ej.format
}

// ExportType retourne le contenu exporté
func (ej *ExportJob) ExportType() ExportType {
	return ej.exportType
}

// DateRange retourne la période d'export
func (ej *ExportJob) DateRange() domain.DateRange {
	return ej.dateRange
}

// LedgerFilter retourne le filtre du registre correspondant au job
func (ej *ExportJob) LedgerFilter() analyticsdomain.LedgerFilter {
	return analyticsdomain.LedgerFilter{Range: ej.dateRange, CategoryName: ej.categoryName}
}

// FileName nom de fichier proposé au téléchargement
func (ej *ExportJob) FileName() string {
	return fmt.Sprintf("%s_%s_%s.%s", ej.exportType, ej.dateRange.Start(), ej.dateRange.End(), ej.format)
}

// ContentType type MIME du fichier produit
func (ej *ExportJob) ContentType() string {
	if ej.format == ExportFormatParquet {
		return "application/vnd.apache.parquet"
	}
	return "text/csv; charset=utf-8"
}

// LedgerExportRow ligne d'export du registre; colonnes vides pour une vente orpheline
type LedgerExportRow struct {
	SaleID       int64    `parquet:"name=sale_id, type=INT64"`
	SaleDate     string   `parquet:"name=sale_date, type=BYTE_ARRAY, convertedtype=UTF8"`
	ProductName  *string  `parquet:"name=product_name, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	CategoryName *string  `parquet:"name=category_name, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	Quantity     int32    `parquet:"name=quantity, type=INT32"`
	UnitPrice    *float64 `parquet:"name=unit_price, type=DOUBLE, repetitiontype=OPTIONAL"`
	Subtotal     *float64 `parquet:"name=subtotal, type=DOUBLE, repetitiontype=OPTIONAL"`
}

// NewLedgerExportRow convertit une ligne de registre
func NewLedgerExportRow(entry *analyticsdomain.LedgerEntry) *LedgerExportRow {
	return &LedgerExportRow{
		SaleID:       int64(entry.SaleID()),
		SaleDate:     entry.Date().String(),
		ProductName:  entry.ProductName(),
		CategoryName: entry.CategoryName(),
		Quantity:     int32(entry.Quantity().Value()),
		UnitPrice:    moneyToFloat(entry.UnitPrice()),
		Subtotal:     moneyToFloat(entry.Subtotal()),
	}
}

func moneyToFloat(m *domain.Money) *float64 {
	if m == nil {
		return nil
	}
	f := m.Amount().InexactFloat64()
	return &f
}

// ToCSVRow convertit en tableau pour CSV
func (r *LedgerExportRow) ToCSVRow() []string {
	return []string{
		strconv.FormatInt(r.SaleID, 10),
		r.SaleDate,
		stringOrEmpty(r.ProductName),
		stringOrEmpty(r.CategoryName),
		strconv.Itoa(int(r.Quantity)),
		floatOrEmpty(r.UnitPrice),
		floatOrEmpty(r.Subtotal),
	}
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func floatOrEmpty(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', 2, 64)
}

// CSVHeaders retourne les en-têtes CSV
func CSVHeaders() []string {
	return []string{
		"sale_id",
		"sale_date",
		"product_name",
		"category_name",
		"quantity",
		"unit_price",
		"subtotal",
	}
}

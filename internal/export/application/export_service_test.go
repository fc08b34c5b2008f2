package application_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analyticsapp "insights/internal/analytics/application"
	analyticsdomain "insights/internal/analytics/domain"
	analyticsinfra "insights/internal/analytics/infrastructure"
	"insights/internal/export/application"
	"insights/internal/export/domain"
	shareddomain "insights/internal/shared/domain"
	sharedinfra "insights/internal/shared/infrastructure"
	"insights/internal/testhelpers"
)

func setupExport(t *testing.T) (*application.ExportService, *testhelpers.TestContext) {
	t.Helper()
	tc := testhelpers.SetupTestContext(t)
	reports := analyticsapp.NewReportService(
		analyticsinfra.NewReportQueryRepository(tc.DB.Gorm),
		sharedinfra.NewInMemoryCache[*analyticsdomain.ReportBundle](),
		analyticsapp.ReportOptions{QueryTimeout: 5 * time.Second},
		tc.Log,
	)
	return application.NewExportService(reports, tc.Log), tc
}

func fullRange(t *testing.T) shareddomain.DateRange {
	t.Helper()
	dr, err := shareddomain.ParseDateRange("2023-01-01", "2024-12-31")
	require.NoError(t, err)
	return dr
}

func TestExportService_LedgerCSV(t *testing.T) {
	service, tc := setupExport(t)
	tc.InsertSale(t, 999, "2024-06-01", 2)

	data, err := service.LedgerCSV(context.Background(), analyticsdomain.LedgerFilter{Range: fullRange(t)})
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 7, "header + 6 sales")
	assert.Equal(t, domain.CSVHeaders(), records[0])
	// vente orpheline la plus récente: colonnes produit vides
	assert.Equal(t, []string{"2024-06-01", "", "", "2"}, []string{records[1][1], records[1][2], records[1][3], records[1][4]})
	assert.Equal(t, "Teclado RGB", records[5][2])
}

func TestExportService_LedgerParquet(t *testing.T) {
	service, _ := setupExport(t)

	data, err := service.LedgerParquet(context.Background(), analyticsdomain.LedgerFilter{Range: fullRange(t)})
	require.NoError(t, err)
	require.Greater(t, len(data), 8)
	assert.Equal(t, "PAR1", string(data[:4]))
	assert.Equal(t, "PAR1", string(data[len(data)-4:]))
}

func TestExportService_ReportCSV(t *testing.T) {
	service, _ := setupExport(t)
	dr, err := shareddomain.ParseDateRange("2024-01-01", "2024-02-28")
	require.NoError(t, err)

	job, err := domain.NewExportJob(domain.ExportFormatCSV, domain.ExportTypeReport, dr, "")
	require.NoError(t, err)

	data, err := service.Export(context.Background(), job)
	require.NoError(t, err)

	// sections de largeur variable séparées par une ligne vide
	assert.True(t, bytes.HasPrefix(data, []byte("section,metric,value\n")))
	assert.Contains(t, string(data), "\n\ncategory,category_name,total\n")
	assert.Contains(t, string(data), "\n\ntop_product,product_name,quantity_total\n")

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)
	assert.Contains(t, records, []string{"kpi", "total_revenue", "360.00"})
	assert.Contains(t, records, []string{"kpi", "average_ticket", "180.00"})
	assert.Contains(t, records, []string{"category", "Hardware", "360.00"})
	assert.Contains(t, records, []string{"top_product", "Teclado RGB", "8"})
}

func TestExportService_PropagatesStorageErrors(t *testing.T) {
	service, tc := setupExport(t)
	require.NoError(t, tc.DB.Close())

	_, err := service.LedgerCSV(context.Background(), analyticsdomain.LedgerFilter{Range: fullRange(t)})
	assert.ErrorIs(t, err, shareddomain.ErrConnectionFailure)
}

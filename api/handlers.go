package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	analyticsapp "insights/internal/analytics/application"
	analyticsdomain "insights/internal/analytics/domain"
	catalogdomain "insights/internal/catalog/domain"
	coachingapp "insights/internal/coaching/application"
	coachingdomain "insights/internal/coaching/domain"
	exportapp "insights/internal/export/application"
	exportdomain "insights/internal/export/domain"
	salesapp "insights/internal/sales/application"
	shareddomain "insights/internal/shared/domain"
)

// defaultDays période par défaut quand start/end sont absents
const defaultDays = 30

// ProductLister liste le catalogue pour le formulaire de saisie
type ProductLister interface {
	ListProducts(ctx context.Context) ([]*catalogdomain.Product, error)
}

// Handlers contient tous les handlers de l'API
type Handlers struct {
	reports   *analyticsapp.ReportService
	ingestion *salesapp.IngestionService
	coaching  *coachingapp.CoachingService
	exports   *exportapp.ExportService
	catalog   ProductLister
	log       *logrus.Logger
}

// NewHandlers crée une nouvelle instance des handlers
func NewHandlers(
	reports *analyticsapp.ReportService,
	ingestion *salesapp.IngestionService,
	coaching *coachingapp.CoachingService,
	exports *exportapp.ExportService,
	catalog ProductLister,
	log *logrus.Logger,
) *Handlers {
	return &Handlers{
		reports:   reports,
		ingestion: ingestion,
		coaching:  coaching,
		exports:   exports,
		catalog:   catalog,
		log:       log,
	}
}

// RegisterRoutes déclare les routes sous /api
func (h *Handlers) RegisterRoutes(router gin.IRouter) {
	api := router.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/report", h.GetReport)
		api.GET("/ledger", h.GetLedger)
		api.GET("/series", h.GetSeries)
		api.GET("/catalog/products", h.ListProducts)
		api.POST("/sales", h.CreateSale)
		api.POST("/scouting", h.CreateScoutingRecord)
		api.GET("/teams/:id/suggestion", h.GetSuggestion)

		export := api.Group("/export")
		export.GET("/ledger.csv", h.exportHandler(exportdomain.ExportFormatCSV, exportdomain.ExportTypeLedger))
		export.GET("/ledger.parquet", h.exportHandler(exportdomain.ExportFormatParquet, exportdomain.ExportTypeLedger))
		export.GET("/report.csv", h.exportHandler(exportdomain.ExportFormatCSV, exportdomain.ExportTypeReport))
	}
}

// Health handler pour GET /api/health
func (h *Handlers) Health(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "ok", nil)
}

// GetReport handler pour GET /api/report?start=YYYY-MM-DD&end=YYYY-MM-DD (ou ?days=N)
func (h *Handlers) GetReport(c *gin.Context) {
	dateRange, err := parseRange(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	bundle, err := h.reports.GenerateReport(c.Request.Context(), dateRange)
	if err != nil {
		h.fail(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", NewReportResponse(bundle))
}

// GetLedger handler pour GET /api/ledger?start&end&category
func (h *Handlers) GetLedger(c *gin.Context) {
	dateRange, err := parseRange(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	entries, err := h.reports.Ledger(c.Request.Context(), analyticsdomain.LedgerFilter{
		Range:        dateRange,
		CategoryName: c.Query("category"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", NewLedgerResponse(entries))
}

// GetSeries handler pour GET /api/series?start&end
func (h *Handlers) GetSeries(c *gin.Context) {
	dateRange, err := parseRange(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	points, err := h.reports.KPISeries(c.Request.Context(), dateRange)
	if err != nil {
		h.fail(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", NewSeriesResponse(points))
}

// ListProducts handler pour GET /api/catalog/products
func (h *Handlers) ListProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, newProductResponse(p))
	}
	SuccessResponse(c, http.StatusOK, "", resp)
}

// CreateSale handler pour POST /api/sales
func (h *Handlers) CreateSale(c *gin.Context) {
	var req CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	date, err := shareddomain.ParseDate(req.Date)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.ingestion.InsertSale(c.Request.Context(), catalogdomain.ProductID(req.ProductID), date, *req.Quantity)
	if err != nil {
		h.fail(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "Sale recorded", gin.H{"sale_id": int64(id)})
}

// CreateScoutingRecord handler pour POST /api/scouting
func (h *Handlers) CreateScoutingRecord(c *gin.Context) {
	var req CreateScoutingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	record, err := h.coaching.InsertScoutingRecord(
		c.Request.Context(),
		coachingdomain.TeamID(req.TeamID),
		req.TeamName,
		*req.GoalsFor,
		*req.GoalsAgainst,
	)
	if err != nil {
		h.fail(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "Scouting record stored", gin.H{"id": record.ID()})
}

// GetSuggestion handler pour GET /api/teams/:id/suggestion
func (h *Handlers) GetSuggestion(c *gin.Context) {
	teamID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || teamID <= 0 {
		ErrorResponse(c, http.StatusBadRequest, "Invalid team id")
		return
	}

	suggestion, err := h.coaching.TrainingSuggestion(c.Request.Context(), coachingdomain.TeamID(teamID))
	if err != nil {
		h.fail(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", newSuggestionResponse(suggestion))
}

func (h *Handlers) exportHandler(format exportdomain.ExportFormat, exportType exportdomain.ExportType) gin.HandlerFunc {
	return func(c *gin.Context) {
		dateRange, err := parseRange(c)
		if err != nil {
			h.fail(c, err)
			return
		}
		job, err := exportdomain.NewExportJob(format, exportType, dateRange, c.Query("category"))
		if err != nil {
			h.fail(c, err)
			return
		}

		data, err := h.exports.Export(c.Request.Context(), job)
		if err != nil {
			h.fail(c, err)
			return
		}

		c.Header("Content-Disposition", "attachment; filename="+job.FileName())
		c.Data(http.StatusOK, job.ContentType(), data)
	}
}

func (h *Handlers) fail(c *gin.Context, err error) {
	status := mapErrorToStatus(err)
	if status >= http.StatusInternalServerError {
		h.log.WithFields(logrus.Fields{
			"request_id": c.GetString(requestIDKey),
			"operation":  shareddomain.OperationOf(err),
		}).WithError(err).Error("request error")
		ErrorResponse(c, status, http.StatusText(status))
		return
	}
	ErrorResponse(c, status, err.Error())
}

// parseRange lit start/end; à défaut, les `days` derniers jours
func parseRange(c *gin.Context) (shareddomain.DateRange, error) {
	start, end := c.Query("start"), c.Query("end")
	if start != "" || end != "" {
		return shareddomain.ParseDateRange(start, end)
	}

	days := defaultDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return shareddomain.DateRange{}, shareddomain.ErrInvalidRange
		}
		days = n
	}
	return shareddomain.NewDateRangeFromDays(days)
}

package api

import (
	analyticsdomain "insights/internal/analytics/domain"
	catalogdomain "insights/internal/catalog/domain"
	coachingdomain "insights/internal/coaching/domain"
	shareddomain "insights/internal/shared/domain"
)

// DTOs JSON: les montants sont sérialisés en chaîne décimale (pas d'arrondi flottant)

// KPIResponse agrégat principal
type KPIResponse struct {
	TotalRevenue  string `json:"total_revenue" yaml:"total_revenue"`
	AverageTicket string `json:"average_ticket" yaml:"average_ticket"`
	SaleCount     int    `json:"sale_count" yaml:"sale_count"`
	HasSales      bool   `json:"has_sales" yaml:"has_sales"`
	Currency      string `json:"currency" yaml:"currency"`
}

// CategoryTotalResponse ligne de la répartition par catégorie
type CategoryTotalResponse struct {
	CategoryID   int64  `json:"category_id" yaml:"category_id"`
	CategoryName string `json:"category_name" yaml:"category_name"`
	Total        string `json:"total" yaml:"total"`
}

// ProductRankingResponse ligne du classement
type ProductRankingResponse struct {
	ProductID     int64  `json:"product_id" yaml:"product_id"`
	ProductName   string `json:"product_name" yaml:"product_name"`
	QuantityTotal int    `json:"quantity_total" yaml:"quantity_total"`
}

// LedgerEntryResponse ligne du registre; null pour une vente orpheline
type LedgerEntryResponse struct {
	SaleID       int64             `json:"sale_id" yaml:"sale_id"`
	Date         shareddomain.Date `json:"date" yaml:"date"`
	ProductName  *string           `json:"product_name" yaml:"product_name"`
	CategoryName *string           `json:"category_name" yaml:"category_name"`
	Quantity     int               `json:"quantity" yaml:"quantity"`
	UnitPrice    *string           `json:"unit_price" yaml:"unit_price"`
	Subtotal     *string           `json:"subtotal" yaml:"subtotal"`
}

// ReportResponse rapport complet
type ReportResponse struct {
	Start             shareddomain.Date        `json:"start" yaml:"start"`
	End               shareddomain.Date        `json:"end" yaml:"end"`
	KPI               KPIResponse              `json:"kpi" yaml:"kpi"`
	CategoryBreakdown []CategoryTotalResponse  `json:"category_breakdown" yaml:"category_breakdown"`
	TopProducts       []ProductRankingResponse `json:"top_products" yaml:"top_products"`
	Ledger            []LedgerEntryResponse    `json:"ledger" yaml:"ledger"`
}

// KPIPointResponse point de la série mensuelle
type KPIPointResponse struct {
	Start shareddomain.Date `json:"start" yaml:"start"`
	End   shareddomain.Date `json:"end" yaml:"end"`
	KPI   KPIResponse       `json:"kpi" yaml:"kpi"`
}

// ProductResponse produit du catalogue (formulaire de saisie)
type ProductResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CategoryID int64  `json:"category_id"`
	UnitPrice  string `json:"unit_price"`
}

// SuggestionResponse résultat de la procédure de décision
type SuggestionResponse struct {
	TeamID     int64  `json:"team_id"`
	Suggestion string `json:"suggestion"`
	Reason     string `json:"reason"`
}

// CreateSaleRequest corps de POST /api/sales
type CreateSaleRequest struct {
	ProductID int64  `json:"product_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Quantity  *int   `json:"quantity" binding:"required"`
}

// CreateScoutingRequest corps de POST /api/scouting
type CreateScoutingRequest struct {
	TeamID       int64    `json:"team_id" binding:"required"`
	TeamName     string   `json:"team_name" binding:"required"`
	GoalsFor     *float64 `json:"goals_for" binding:"required"`
	GoalsAgainst *float64 `json:"goals_against" binding:"required"`
}

// NewKPIResponse convertit le KPI du domaine
func NewKPIResponse(kpi analyticsdomain.KPI) KPIResponse {
	return KPIResponse{
		TotalRevenue:  kpi.TotalRevenue().Amount().StringFixed(2),
		AverageTicket: kpi.AverageTicket().Amount().StringFixed(2),
		SaleCount:     kpi.SaleCount(),
		HasSales:      kpi.HasSales(),
		Currency:      kpi.TotalRevenue().Currency(),
	}
}

// NewReportResponse convertit un rapport du domaine
func NewReportResponse(bundle *analyticsdomain.ReportBundle) ReportResponse {
	resp := ReportResponse{
		Start:             bundle.DateRange().Start(),
		End:               bundle.DateRange().End(),
		KPI:               NewKPIResponse(bundle.KPI()),
		CategoryBreakdown: make([]CategoryTotalResponse, 0, len(bundle.CategoryBreakdown())),
		TopProducts:       make([]ProductRankingResponse, 0, len(bundle.TopProducts())),
		Ledger:            NewLedgerResponse(bundle.Ledger()),
	}
	for _, ct := range bundle.CategoryBreakdown() {
		resp.CategoryBreakdown = append(resp.CategoryBreakdown, CategoryTotalResponse{
			CategoryID:   int64(ct.CategoryID()),
			CategoryName: ct.CategoryName(),
			Total:        ct.Total().Amount().StringFixed(2),
		})
	}
	for _, pr := range bundle.TopProducts() {
		resp.TopProducts = append(resp.TopProducts, ProductRankingResponse{
			ProductID:     int64(pr.ProductID()),
			ProductName:   pr.ProductName(),
			QuantityTotal: pr.QuantityTotal().Value(),
		})
	}
	return resp
}

// NewLedgerResponse convertit le registre
func NewLedgerResponse(entries []*analyticsdomain.LedgerEntry) []LedgerEntryResponse {
	resp := make([]LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, LedgerEntryResponse{
			SaleID:       int64(e.SaleID()),
			Date:         e.Date(),
			ProductName:  e.ProductName(),
			CategoryName: e.CategoryName(),
			Quantity:     e.Quantity().Value(),
			UnitPrice:    moneyString(e.UnitPrice()),
			Subtotal:     moneyString(e.Subtotal()),
		})
	}
	return resp
}

// NewSeriesResponse convertit la série mensuelle
func NewSeriesResponse(points []analyticsdomain.KPIPoint) []KPIPointResponse {
	resp := make([]KPIPointResponse, 0, len(points))
	for _, p := range points {
		resp = append(resp, KPIPointResponse{
			Start: p.Period().Start(),
			End:   p.Period().End(),
			KPI:   NewKPIResponse(p.KPI()),
		})
	}
	return resp
}

func newProductResponse(p *catalogdomain.Product) ProductResponse {
	return ProductResponse{
		ID:         int64(p.ID()),
		Name:       p.Name(),
		CategoryID: int64(p.CategoryID()),
		UnitPrice:  p.UnitPrice().Amount().StringFixed(2),
	}
}

func newSuggestionResponse(s *coachingdomain.Suggestion) SuggestionResponse {
	return SuggestionResponse{
		TeamID:     int64(s.TeamID()),
		Suggestion: s.Suggestion(),
		Reason:     s.Reason(),
	}
}

func moneyString(m *shareddomain.Money) *string {
	if m == nil {
		return nil
	}
	s := m.Amount().StringFixed(2)
	return &s
}

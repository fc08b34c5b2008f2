package infrastructure

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"insights/internal/analytics/domain"
	catalogdomain "insights/internal/catalog/domain"
	salesdomain "insights/internal/sales/domain"
	shareddomain "insights/internal/shared/domain"
	"insights/internal/shared/infrastructure"
)

// Noms d'opération attachés aux erreurs de stockage
const (
	OpKPI               = "kpi"
	OpCategoryBreakdown = "category_breakdown"
	OpTopProducts       = "top_products"
	OpLedger            = "ledger"
)

// moneyScale échelle des colonnes monétaires (numeric(10,2)).
// SQLite stocke ces colonnes en REAL: les sommes sont ramenées à cette échelle.
const moneyScale = 2

const (
	kpiQuery = `
		SELECT COALESCE(SUM(s.quantity * p.unit_price), 0) AS total_revenue,
		       COUNT(s.id) AS sale_count
		FROM sales s
		INNER JOIN products p ON p.id = s.product_id
		WHERE s.sale_date BETWEEN ? AND ?
	`

	categoryBreakdownQuery = `
		SELECT c.id, c.name,
		       COALESCE(SUM(s.quantity * p.unit_price), 0) AS total
		FROM sales s
		INNER JOIN products p ON p.id = s.product_id
		INNER JOIN categories c ON c.id = p.category_id
		WHERE s.sale_date BETWEEN ? AND ?
		GROUP BY c.id, c.name
		ORDER BY total DESC, c.id ASC
	`

	// Classement sur toutes les ventes: aucun filtre de période
	topProductsQuery = `
		SELECT p.id, p.name,
		       SUM(s.quantity) AS quantity_total
		FROM sales s
		INNER JOIN products p ON p.id = s.product_id
		GROUP BY p.id, p.name
		ORDER BY quantity_total DESC, p.id ASC
		LIMIT ?
	`

	ledgerQuery = `
		SELECT s.id, s.sale_date, p.name, c.name, s.quantity, p.unit_price
		FROM sales s
		LEFT JOIN products p ON p.id = s.product_id
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE s.sale_date BETWEEN ? AND ?
		ORDER BY s.sale_date DESC, s.id ASC
	`

	ledgerByCategoryQuery = `
		SELECT s.id, s.sale_date, p.name, c.name, s.quantity, p.unit_price
		FROM sales s
		LEFT JOIN products p ON p.id = s.product_id
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE s.sale_date BETWEEN ? AND ?
		  AND c.name = ?
		ORDER BY s.sale_date DESC, s.id ASC
	`
)

// ReportQueryRepository repository des quatre requêtes analytiques
// Les agrégats font une jointure interne (ventes orphelines exclues),
// le registre une jointure externe (ventes orphelines conservées).
type ReportQueryRepository struct {
	infrastructure.BaseRepository
}

// NewReportQueryRepository crée un nouveau repository de rapports
func NewReportQueryRepository(db *gorm.DB) *ReportQueryRepository {
	return &ReportQueryRepository{
		BaseRepository: infrastructure.NewBaseRepository(db),
	}
}

// KPI calcule revenu total, nombre de ventes et ticket moyen sur la période
func (r *ReportQueryRepository) KPI(ctx context.Context, dateRange shareddomain.DateRange) (domain.KPI, error) {
	var (
		totalRevenue decimal.Decimal
		saleCount    int
	)

	err := r.QueryRow(ctx, kpiQuery, dateRange.Start().String(), dateRange.End().String()).
		Scan(&totalRevenue, &saleCount)
	if err != nil {
		return domain.KPI{}, shareddomain.WrapOperation(OpKPI, err)
	}

	revenue, err := shareddomain.NewMoney(totalRevenue.Round(moneyScale), shareddomain.DefaultCurrency)
	if err != nil {
		return domain.KPI{}, shareddomain.WrapOperation(OpKPI, err)
	}

	return domain.NewKPI(revenue, saleCount), nil
}

// CategoryBreakdown calcule le revenu par catégorie, trié par total décroissant
func (r *ReportQueryRepository) CategoryBreakdown(ctx context.Context, dateRange shareddomain.DateRange) ([]*domain.CategoryTotal, error) {
	rows, err := r.Query(ctx, categoryBreakdownQuery, dateRange.Start().String(), dateRange.End().String())
	if err != nil {
		return nil, shareddomain.WrapOperation(OpCategoryBreakdown, err)
	}
	defer rows.Close()

	var totals []*domain.CategoryTotal
	for rows.Next() {
		var (
			catID   int64
			catName string
			total   decimal.Decimal
		)
		if err := rows.Scan(&catID, &catName, &total); err != nil {
			return nil, shareddomain.WrapOperation(OpCategoryBreakdown, err)
		}

		money, err := shareddomain.NewMoney(total.Round(moneyScale), shareddomain.DefaultCurrency)
		if err != nil {
			return nil, shareddomain.WrapOperation(OpCategoryBreakdown, err)
		}
		totals = append(totals, domain.NewCategoryTotal(catalogdomain.CategoryID(catID), catName, money))
	}
	if err := rows.Err(); err != nil {
		return nil, shareddomain.WrapOperation(OpCategoryBreakdown, err)
	}

	return totals, nil
}

// TopProducts retourne les produits les plus vendus en quantité, toutes périodes confondues.
// limit est ramené dans [1, TopProductsLimit].
func (r *ReportQueryRepository) TopProducts(ctx context.Context, limit int) ([]*domain.ProductRanking, error) {
	if limit <= 0 || limit > domain.TopProductsLimit {
		limit = domain.TopProductsLimit
	}

	rows, err := r.Query(ctx, topProductsQuery, limit)
	if err != nil {
		return nil, shareddomain.WrapOperation(OpTopProducts, err)
	}
	defer rows.Close()

	var ranking []*domain.ProductRanking
	for rows.Next() {
		var (
			prodID   int64
			prodName string
			totalQty int
		)
		if err := rows.Scan(&prodID, &prodName, &totalQty); err != nil {
			return nil, shareddomain.WrapOperation(OpTopProducts, err)
		}

		qty, err := shareddomain.NewQuantity(totalQty)
		if err != nil {
			return nil, shareddomain.WrapOperation(OpTopProducts, err)
		}
		ranking = append(ranking, domain.NewProductRanking(catalogdomain.ProductID(prodID), prodName, qty))
	}
	if err := rows.Err(); err != nil {
		return nil, shareddomain.WrapOperation(OpTopProducts, err)
	}

	return ranking, nil
}

// Ledger retourne chaque vente de la période avec son produit et sa catégorie,
// triée par date décroissante. Une vente orpheline garde sa ligne (champs nil).
func (r *ReportQueryRepository) Ledger(ctx context.Context, filter domain.LedgerFilter) ([]*domain.LedgerEntry, error) {
	args := []interface{}{filter.Range.Start().String(), filter.Range.End().String()}
	query := ledgerQuery
	if filter.CategoryName != "" {
		query = ledgerByCategoryQuery
		args = append(args, filter.CategoryName)
	}

	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, shareddomain.WrapOperation(OpLedger, err)
	}
	defer rows.Close()

	entries := make([]*domain.LedgerEntry, 0)
	for rows.Next() {
		entry, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, shareddomain.WrapOperation(OpLedger, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, shareddomain.WrapOperation(OpLedger, err)
	}

	return entries, nil
}

func scanLedgerEntry(rows *sql.Rows) (*domain.LedgerEntry, error) {
	var (
		saleID       int64
		saleDate     shareddomain.Date
		productName  sql.NullString
		categoryName sql.NullString
		quantity     int
		unitPrice    decimal.NullDecimal
	)
	if err := rows.Scan(&saleID, &saleDate, &productName, &categoryName, &quantity, &unitPrice); err != nil {
		return nil, err
	}

	qty, err := shareddomain.NewQuantity(quantity)
	if err != nil {
		return nil, err
	}

	var price *shareddomain.Money
	if unitPrice.Valid {
		money, err := shareddomain.NewMoney(unitPrice.Decimal.Round(moneyScale), shareddomain.DefaultCurrency)
		if err != nil {
			return nil, err
		}
		price = &money
	}

	return domain.NewLedgerEntry(
		salesdomain.SaleID(saleID),
		saleDate,
		nullableString(productName),
		nullableString(categoryName),
		qty,
		price,
	), nil
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

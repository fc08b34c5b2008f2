package domain

import (
	catalogdomain "insights/internal/catalog/domain"
	salesdomain "insights/internal/sales/domain"
	"insights/internal/shared/domain"
)

// TopProductsLimit nombre maximum de lignes du classement
const TopProductsLimit = 5

// KPI représente l'agrégat revenu / ticket moyen / nombre de ventes d'une période
type KPI struct {
	totalRevenue  domain.Money
	averageTicket domain.Money
	saleCount     int
}

// NewKPI calcule le ticket moyen à partir du revenu et du nombre de ventes.
// Aucune vente: le ticket moyen vaut zéro (valeur sentinelle), jamais d'erreur.
func NewKPI(totalRevenue domain.Money, saleCount int) KPI {
	return KPI{
		totalRevenue:  totalRevenue,
		averageTicket: totalRevenue.DivideBy(saleCount),
		saleCount:     saleCount,
	}
}

// TotalRevenue retourne Σ(quantité × prix unitaire)
func (k KPI) TotalRevenue() domain.Money {
	return k.totalRevenue
}

// AverageTicket retourne le ticket moyen (zéro si aucune vente)
func (k KPI) AverageTicket() domain.Money {
	return k.averageTicket
}

// SaleCount retourne le nombre de ventes agrégées
func (k KPI) SaleCount() int {
	return k.saleCount
}

// HasSales indique si le ticket moyen est significatif
func (k KPI) HasSales() bool {
	return k.saleCount > 0
}

// CategoryTotal représente le revenu d'une catégorie sur la période
type CategoryTotal struct {
	categoryID   catalogdomain.CategoryID
	categoryName string
	total        domain.Money
}

// NewCategoryTotal crée une nouvelle instance de CategoryTotal
func NewCategoryTotal(categoryID catalogdomain.CategoryID, categoryName string, total domain.Money) *CategoryTotal {
	return &CategoryTotal{
		categoryID:   categoryID,
		categoryName: categoryName,
		total:        total,
	}
}

// CategoryID retourne l'ID de la catégorie
func (ct *CategoryTotal) CategoryID() catalogdomain.CategoryID {
	return ct.categoryID
}

// CategoryName retourne le nom de la catégorie
func (ct *CategoryTotal) CategoryName() string {
	return ct.categoryName
}

// Total retourne le revenu de la catégorie
func (ct *CategoryTotal) Total() domain.Money {
	return ct.total
}

// ProductRanking représente une ligne du classement des produits par quantité
type ProductRanking struct {
	productID     catalogdomain.ProductID
	productName   string
	quantityTotal domain.Quantity
}

// NewProductRanking crée une nouvelle instance de ProductRanking
func NewProductRanking(productID catalogdomain.ProductID, productName string, quantityTotal domain.Quantity) *ProductRanking {
	return &ProductRanking{
		productID:     productID,
		productName:   productName,
		quantityTotal: quantityTotal,
	}
}

// ProductID retourne l'ID du produit
func (pr *ProductRanking) ProductID() catalogdomain.ProductID {
	return pr.productID
}

// ProductName retourne le nom du produit
func (pr *ProductRanking) ProductName() string {
	return pr.productName
}

// QuantityTotal retourne la quantité totale vendue
func (pr *ProductRanking) QuantityTotal() domain.Quantity {
	return pr.quantityTotal
}

// LedgerEntry représente une ligne du registre détaillé.
// Produit ou catégorie absents (référence orpheline): champs nil, la ligne est conservée.
type LedgerEntry struct {
	saleID       salesdomain.SaleID
	date         domain.Date
	productName  *string
	categoryName *string
	quantity     domain.Quantity
	unitPrice    *domain.Money
}

// NewLedgerEntry crée une nouvelle ligne de registre
func NewLedgerEntry(
	saleID salesdomain.SaleID,
	date domain.Date,
	productName *string,
	categoryName *string,
	quantity domain.Quantity,
	unitPrice *domain.Money,
) *LedgerEntry {
	return &LedgerEntry{
		saleID:       saleID,
		date:         date,
		productName:  productName,
		categoryName: categoryName,
		quantity:     quantity,
		unitPrice:    unitPrice,
	}
}

// SaleID retourne l'ID de la vente
func (le *LedgerEntry) SaleID() salesdomain.SaleID {
	return le.saleID
}

// Date retourne le jour de la vente
func (le *LedgerEntry) Date() domain.Date {
	return le.date
}

// ProductName retourne le nom du produit, nil si orphelin
func (le *LedgerEntry) ProductName() *string {
	return le.productName
}

// CategoryName retourne le nom de la catégorie, nil si absente
func (le *LedgerEntry) CategoryName() *string {
	return le.categoryName
}

// Quantity retourne la quantité
func (le *LedgerEntry) Quantity() domain.Quantity {
	return le.quantity
}

// UnitPrice retourne le prix unitaire, nil si produit absent
func (le *LedgerEntry) UnitPrice() *domain.Money {
	return le.unitPrice
}

// Subtotal calcule quantité × prix unitaire; nil si le prix est inconnu
func (le *LedgerEntry) Subtotal() *domain.Money {
	if le.unitPrice == nil {
		return nil
	}
	subtotal := le.unitPrice.MultiplyQuantity(le.quantity)
	return &subtotal
}

// IsOrphan indique une vente dont le produit n'existe pas
func (le *LedgerEntry) IsOrphan() bool {
	return le.productName == nil
}

// LedgerFilter critères du registre détaillé
type LedgerFilter struct {
	Range        domain.DateRange
	CategoryName string // optionnel, comparé par paramètre lié
}

// ReportBundle regroupe les quatre artefacts d'un rapport
type ReportBundle struct {
	dateRange         domain.DateRange
	kpi               KPI
	categoryBreakdown []*CategoryTotal
	topProducts       []*ProductRanking
	ledger            []*LedgerEntry
}

// NewReportBundle assemble un rapport complet
func NewReportBundle(
	dateRange domain.DateRange,
	kpi KPI,
	categoryBreakdown []*CategoryTotal,
	topProducts []*ProductRanking,
	ledger []*LedgerEntry,
) *ReportBundle {
	return &ReportBundle{
		dateRange:         dateRange,
		kpi:               kpi,
		categoryBreakdown: categoryBreakdown,
		topProducts:       topProducts,
		ledger:            ledger,
	}
}

// DateRange retourne la période du rapport
func (rb *ReportBundle) DateRange() domain.DateRange {
	return rb.dateRange
}

// KPI retourne l'agrégat principal
func (rb *ReportBundle) KPI() KPI {
	return rb.kpi
}

// CategoryBreakdown retourne le revenu par catégorie, trié par total décroissant
func (rb *ReportBundle) CategoryBreakdown() []*CategoryTotal {
	return append([]*CategoryTotal{}, rb.categoryBreakdown...)
}

// TopProducts retourne le classement des produits (5 lignes maximum)
func (rb *ReportBundle) TopProducts() []*ProductRanking {
	return append([]*ProductRanking{}, rb.topProducts...)
}

// Ledger retourne le registre détaillé, trié par date décroissante
func (rb *ReportBundle) Ledger() []*LedgerEntry {
	return append([]*LedgerEntry{}, rb.ledger...)
}

// KPIPoint KPI d'un mois, pour la série temporelle du tableau de bord
type KPIPoint struct {
	period domain.DateRange
	kpi    KPI
}

// NewKPIPoint crée un point de série
func NewKPIPoint(period domain.DateRange, kpi KPI) KPIPoint {
	return KPIPoint{period: period, kpi: kpi}
}

// Period retourne la sous-période couverte
func (p KPIPoint) Period() domain.DateRange {
	return p.period
}

// KPI retourne l'agrégat de la sous-période
func (p KPIPoint) KPI() KPI {
	return p.kpi
}

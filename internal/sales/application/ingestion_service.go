package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	catalogdomain "insights/internal/catalog/domain"
	"insights/internal/sales/domain"
	shareddomain "insights/internal/shared/domain"
)

// ProductLookup vérifie l'existence d'un produit au catalogue
type ProductLookup interface {
	FindProduct(ctx context.Context, id catalogdomain.ProductID) (*catalogdomain.Product, error)
}

// SaleWriter persiste une vente
type SaleWriter interface {
	Insert(ctx context.Context, sale *domain.Sale) error
}

// CacheInvalidator vidé après chaque écriture réussie
type CacheInvalidator interface {
	InvalidateCache()
}

// IngestionService saisie manuelle des ventes
type IngestionService struct {
	products ProductLookup
	sales    SaleWriter
	reports  CacheInvalidator
	log      *logrus.Logger
}

// NewIngestionService crée une nouvelle instance de IngestionService
func NewIngestionService(products ProductLookup, sales SaleWriter, reports CacheInvalidator, log *logrus.Logger) *IngestionService {
	return &IngestionService{
		products: products,
		sales:    sales,
		reports:  reports,
		log:      log,
	}
}

// InsertSale valide puis enregistre une vente et retourne son identifiant
func (s *IngestionService) InsertSale(ctx context.Context, productID catalogdomain.ProductID, date shareddomain.Date, quantity int) (domain.SaleID, error) {
	sale, err := domain.NewSale(productID, date, quantity)
	if err != nil {
		return 0, err
	}

	product, err := s.products.FindProduct(ctx, productID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, fmt.Errorf("%w: %d", shareddomain.ErrUnknownProduct, productID)
	}

	if err := s.sales.Insert(ctx, sale); err != nil {
		s.log.WithError(err).WithField("product_id", productID).Error("sale insert failed")
		return 0, err
	}

	if s.reports != nil {
		s.reports.InvalidateCache()
	}

	s.log.WithFields(logrus.Fields{
		"sale_id":  sale.ID(),
		"product":  product.Name(),
		"date":     date.String(),
		"quantity": quantity,
	}).Info("sale recorded")

	return sale.ID(), nil
}

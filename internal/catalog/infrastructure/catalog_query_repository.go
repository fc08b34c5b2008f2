package infrastructure

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"insights/internal/catalog/domain"
	shareddomain "insights/internal/shared/domain"
	"insights/internal/shared/infrastructure"
)

const (
	listCategoriesQuery = `
		SELECT c.id, c.name
		FROM categories c
		ORDER BY c.id
	`

	listProductsQuery = `
		SELECT p.id, p.name, p.category_id, p.unit_price
		FROM products p
		ORDER BY p.id
	`

	findProductQuery = `
		SELECT p.id, p.name, p.category_id, p.unit_price
		FROM products p
		WHERE p.id = ?
	`
)

// CatalogQueryRepository repository pour les requêtes de lecture sur le catalogue
type CatalogQueryRepository struct {
	infrastructure.BaseRepository
}

// NewCatalogQueryRepository crée un nouveau repository de lecture pour le catalogue
func NewCatalogQueryRepository(db *gorm.DB) *CatalogQueryRepository {
	return &CatalogQueryRepository{
		BaseRepository: infrastructure.NewBaseRepository(db),
	}
}

// ListCategories récupère toutes les catégories
func (r *CatalogQueryRepository) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	rows, err := r.Query(ctx, listCategoriesQuery)
	if err != nil {
		return nil, shareddomain.WrapOperation("list_categories", err)
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, shareddomain.WrapOperation("list_categories", err)
		}
		category, err := domain.NewCategory(domain.CategoryID(id), name)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, shareddomain.WrapOperation("list_categories", err)
	}

	return categories, nil
}

// ListProducts récupère tous les produits (formulaire de saisie manuelle)
func (r *CatalogQueryRepository) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	rows, err := r.Query(ctx, listProductsQuery)
	if err != nil {
		return nil, shareddomain.WrapOperation("list_products", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, shareddomain.WrapOperation("list_products", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, shareddomain.WrapOperation("list_products", err)
	}

	return products, nil
}

// FindProduct trouve un produit par son ID; (nil, nil) s'il n'existe pas
func (r *CatalogQueryRepository) FindProduct(ctx context.Context, id domain.ProductID) (*domain.Product, error) {
	rows, err := r.Query(ctx, findProductQuery, int64(id))
	if err != nil {
		return nil, shareddomain.WrapOperation("find_product", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, shareddomain.WrapOperation("find_product", rows.Err())
	}
	product, err := scanProduct(rows)
	if err != nil {
		return nil, shareddomain.WrapOperation("find_product", err)
	}
	return product, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		id         int64
		name       string
		categoryID int64
		unitPrice  decimal.Decimal
	)
	if err := row.Scan(&id, &name, &categoryID, &unitPrice); err != nil {
		return nil, err
	}

	price, err := shareddomain.NewMoney(unitPrice, shareddomain.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	return domain.NewProduct(domain.ProductID(id), name, domain.CategoryID(categoryID), price)
}

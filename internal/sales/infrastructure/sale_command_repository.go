package infrastructure

import (
	"context"

	"gorm.io/gorm"

	"insights/database"
	"insights/internal/sales/domain"
	shareddomain "insights/internal/shared/domain"
	"insights/internal/shared/infrastructure"
)

// SaleCommandRepository repository d'écriture pour les ventes
type SaleCommandRepository struct {
	infrastructure.BaseRepository
}

// NewSaleCommandRepository crée un nouveau repository d'écriture
func NewSaleCommandRepository(db *gorm.DB) *SaleCommandRepository {
	return &SaleCommandRepository{
		BaseRepository: infrastructure.NewBaseRepository(db),
	}
}

// Insert persiste la vente (INSERT paramétré) et lui attribue son identifiant
func (r *SaleCommandRepository) Insert(ctx context.Context, sale *domain.Sale) error {
	row := database.Sale{
		ProductID: int64(sale.ProductID()),
		SaleDate:  sale.Date(),
		Quantity:  sale.Quantity().Value(),
	}
	if err := r.DB().WithContext(ctx).Create(&row).Error; err != nil {
		return shareddomain.WrapOperation("insert_sale", err)
	}
	sale.AssignID(domain.SaleID(row.ID))
	return nil
}

package database

import (
	"time"

	"github.com/shopspring/decimal"

	"insights/internal/shared/domain"
)

// ============================================================================
// MODÈLES DE DONNÉES - Schéma normalisé categories → products → sales
// Pas de contrainte de clé étrangère déclarée: une vente orpheline est tolérée
// (le ledger la garde avec des NULL, les agrégats l'excluent).
// ============================================================================

// Category - Catégorie de produit
type Category struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:120;not null" json:"name"`
}

// Product - Produit, rattaché à une seule catégorie
type Product struct {
	ID         int64           `gorm:"primaryKey" json:"id"`
	Name       string          `gorm:"size:160;not null" json:"name"`
	CategoryID int64           `gorm:"not null;index" json:"category_id"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unit_price"`
}

// Sale - Vente; le sous-total n'est jamais stocké
type Sale struct {
	ID        int64       `gorm:"primaryKey" json:"id"`
	ProductID int64       `gorm:"not null;index" json:"product_id"`
	SaleDate  domain.Date `gorm:"type:date;not null;index" json:"sale_date"`
	Quantity  int         `gorm:"not null" json:"quantity"`
}

// ScoutingRecord - Données de scouting d'une équipe adverse (moyennes de buts)
type ScoutingRecord struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	TeamID       int64     `gorm:"not null;index" json:"team_id"`
	TeamName     string    `gorm:"size:160;not null" json:"team_name"`
	GoalsFor     float64   `gorm:"not null" json:"goals_for"`
	GoalsAgainst float64   `gorm:"not null" json:"goals_against"`
	CreatedAt    time.Time `json:"created_at"`
}

// AllModels liste les tables gérées par le SchemaManager, dans l'ordre de création
func AllModels() []interface{} {
	return []interface{}{&Category{}, &Product{}, &Sale{}, &ScoutingRecord{}}
}

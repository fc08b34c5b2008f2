package database

import (
	"github.com/shopspring/decimal"

	"insights/internal/shared/domain"
)

// FixtureSet jeu de données de démonstration inséré une seule fois
type FixtureSet struct {
	Categories []Category
	Products   []Product
	Sales      []Sale
}

// Fixture retourne le jeu de données figé: 3 catégories, 4 produits, 5 ventes.
// Sur [2024-01-01, 2024-02-28] seules les ventes 1 et 2 (Teclado RGB) tombent
// dans la période: 5×45 + 3×45 = 360.
func Fixture() FixtureSet {
	return FixtureSet{
		Categories: []Category{
			{ID: 1, Name: "Hardware"},
			{ID: 2, Name: "Software"},
			{ID: 3, Name: "Mobiliário"},
		},
		Products: []Product{
			{ID: 1, Name: "Teclado RGB", CategoryID: 1, UnitPrice: decimal.RequireFromString("45.00")},
			{ID: 2, Name: "Rato Pro", CategoryID: 1, UnitPrice: decimal.RequireFromString("30.00")},
			{ID: 3, Name: "Antivírus Plus", CategoryID: 2, UnitPrice: decimal.RequireFromString("25.00")},
			{ID: 4, Name: "Cadeira Gamer", CategoryID: 3, UnitPrice: decimal.RequireFromString("199.90")},
		},
		Sales: []Sale{
			{ID: 1, ProductID: 1, SaleDate: domain.MustParseDate("2024-01-10"), Quantity: 5},
			{ID: 2, ProductID: 1, SaleDate: domain.MustParseDate("2024-02-01"), Quantity: 3},
			{ID: 3, ProductID: 2, SaleDate: domain.MustParseDate("2024-03-05"), Quantity: 3},
			{ID: 4, ProductID: 3, SaleDate: domain.MustParseDate("2024-03-12"), Quantity: 1},
			{ID: 5, ProductID: 4, SaleDate: domain.MustParseDate("2023-12-20"), Quantity: 1},
		},
	}
}

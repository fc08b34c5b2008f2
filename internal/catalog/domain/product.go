package domain

import (
	"errors"

	"insights/internal/shared/domain"
)

// ProductID représente l'identifiant unique d'un produit
type ProductID int64

// Product représente un produit du catalogue, rattaché à une seule catégorie
type Product struct {
	id         ProductID
	name       string
	categoryID CategoryID
	unitPrice  domain.Money
}

// NewProduct crée une nouvelle instance de Product avec validation
// Le prix unitaire est déjà garanti >= 0 par Money.
func NewProduct(
	id ProductID,
	name string,
	categoryID CategoryID,
	unitPrice domain.Money,
) (*Product, error) {
	if id <= 0 {
		return nil, errors.New("invalid product ID")
	}
	if name == "" {
		return nil, errors.New("product name cannot be empty")
	}

	return &Product{
		id:         id,
		name:       name,
		categoryID: categoryID,
		unitPrice:  unitPrice,
	}, nil
}

// ID retourne l'identifiant du produit
func (p *Product) ID() ProductID {
	return p.id
}

// Name retourne le nom du produit
func (p *Product) Name() string {
	return p.name
}

// CategoryID retourne l'identifiant de la catégorie
func (p *Product) CategoryID() CategoryID {
	return p.categoryID
}

// UnitPrice retourne le prix unitaire
func (p *Product) UnitPrice() domain.Money {
	return p.unitPrice
}

// Subtotal calcule quantité × prix unitaire (jamais stocké)
func (p *Product) Subtotal(q domain.Quantity) domain.Money {
	return p.unitPrice.MultiplyQuantity(q)
}

package domain

import (
	"fmt"

	catalogdomain "insights/internal/catalog/domain"
	"insights/internal/shared/domain"
)

// SaleID représente l'identifiant unique d'une vente
type SaleID int64

// Sale représente une vente à enregistrer (seul point de croissance du schéma)
type Sale struct {
	id        SaleID
	productID catalogdomain.ProductID
	date      domain.Date
	quantity  domain.Quantity
}

// NewSale crée une nouvelle vente avec validation
func NewSale(productID catalogdomain.ProductID, date domain.Date, quantity int) (*Sale, error) {
	if productID <= 0 {
		return nil, fmt.Errorf("%w: product id %d", domain.ErrInvalidIdentifier, productID)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("sale date is required")
	}
	q, err := domain.NewQuantity(quantity)
	if err != nil {
		return nil, err
	}

	return &Sale{
		productID: productID,
		date:      date,
		quantity:  q,
	}, nil
}

// ID retourne l'identifiant (0 tant que non persistée)
func (s *Sale) ID() SaleID {
	return s.id
}

// ProductID retourne le produit vendu
func (s *Sale) ProductID() catalogdomain.ProductID {
	return s.productID
}

// Date retourne le jour de la vente
func (s *Sale) Date() domain.Date {
	return s.date
}

// Quantity retourne la quantité vendue
func (s *Sale) Quantity() domain.Quantity {
	return s.quantity
}

// AssignID fixe l'identifiant attribué par la base
func (s *Sale) AssignID(id SaleID) {
	s.id = id
}

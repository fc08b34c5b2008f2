package domain

import (
	"errors"
)

// CategoryID représente l'identifiant unique d'une catégorie
type CategoryID int64

// Category représente une catégorie de produits (immuable une fois créée)
type Category struct {
	id   CategoryID
	name string
}

// NewCategory crée une nouvelle instance de Category avec validation
func NewCategory(id CategoryID, name string) (*Category, error) {
	if id <= 0 {
		return nil, errors.New("invalid category ID")
	}
	if name == "" {
		return nil, errors.New("category name cannot be empty")
	}

	return &Category{
		id:   id,
		name: name,
	}, nil
}

// ID retourne l'identifiant de la catégorie
func (c *Category) ID() CategoryID {
	return c.id
}

// Name retourne le nom de la catégorie
func (c *Category) Name() string {
	return c.name
}

package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultCurrency devise des montants de la base de démonstration
const DefaultCurrency = "EUR"

// Money représente une valeur monétaire avec garanties d'invariants
// Montant en décimal exact: pas d'erreur d'arrondi sur les sommes
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney crée une nouvelle instance de Money avec validation
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, fmt.Errorf("%w: amount cannot be negative", ErrInvalidAmount)
	}
	if currency == "" {
		return Money{}, errors.New("currency cannot be empty")
	}
	return Money{
		amount:   amount,
		currency: currency,
	}, nil
}

// MustNewMoney crée un Money en paniquant si invalide
func MustNewMoney(amount decimal.Decimal, currency string) Money {
	m, err := NewMoney(amount, currency)
	if err != nil {
		panic(fmt.Sprintf("invalid money: %v", err))
	}
	return m
}

// ZeroMoney retourne zéro dans la devise donnée
func ZeroMoney(currency string) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

// Amount retourne le montant
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency retourne la devise
func (m Money) Currency() string {
	return m.currency
}

// Add additionne deux Money (même devise requise)
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("cannot add different currencies: %s and %s", m.currency, other.currency)
	}
	return Money{
		amount:   m.amount.Add(other.amount),
		currency: m.currency,
	}, nil
}

// MultiplyQuantity calcule prix unitaire × quantité (sous-total)
func (m Money) MultiplyQuantity(q Quantity) Money {
	return Money{
		amount:   m.amount.Mul(decimal.NewFromInt(int64(q.Value()))),
		currency: m.currency,
	}
}

// DivideBy divise par un compteur; un compteur nul donne zéro (jamais de division par zéro)
func (m Money) DivideBy(count int) Money {
	if count <= 0 {
		return ZeroMoney(m.currency)
	}
	return Money{
		amount:   m.amount.Div(decimal.NewFromInt(int64(count))),
		currency: m.currency,
	}
}

// IsZero vérifie si le montant est zéro
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Equal compare montant et devise
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String formate le montant avec deux décimales
func (m Money) String() string {
	return m.amount.StringFixed(2) + " " + m.currency
}

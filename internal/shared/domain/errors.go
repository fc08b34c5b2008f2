package domain

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"
)

// Catégories d'erreurs exposées aux appelants
var (
	// ErrInvalidRange période avec start > end, rejetée avant toute requête
	ErrInvalidRange = errors.New("invalid date range")
	// ErrConnectionFailure base de données injoignable, fatal pour la requête en cours
	ErrConnectionFailure = errors.New("connection failure")
	// ErrInvalidQuantity quantité négative
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrInvalidIdentifier identifiant nul ou négatif
	ErrInvalidIdentifier = errors.New("invalid identifier")
	// ErrInvalidAmount montant négatif
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrUnknownProduct la vente référence un produit absent du catalogue
	ErrUnknownProduct = errors.New("unknown product")
	// ErrNoSuggestion la procédure de décision n'a renvoyé aucune ligne
	ErrNoSuggestion = errors.New("no training suggestion available")
)

// OperationError attache le nom de l'opération à une erreur de stockage
type OperationError struct {
	Op  string
	Err error
}

// Error implémente l'interface error
func (e *OperationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap expose l'erreur d'origine à errors.Is / errors.As
func (e *OperationError) Unwrap() error {
	return e.Err
}

// WrapOperation enveloppe err avec le nom de l'opération.
// Les erreurs de connexion sont en plus marquées ErrConnectionFailure.
func WrapOperation(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsConnectionError(err) && !errors.Is(err, ErrConnectionFailure) {
		err = fmt.Errorf("%w: %w", ErrConnectionFailure, err)
	}
	return &OperationError{Op: op, Err: err}
}

// IsConnectionError détecte les erreurs de transport côté driver
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrConnectionFailure) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, driver.ErrBadConn) {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	// database/sql n'exporte pas l'erreur d'une base déjà fermée
	return strings.Contains(err.Error(), "sql: database is closed")
}

// OperationOf retourne le nom de l'opération en échec, ou "" si absent
func OperationOf(err error) string {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr.Op
	}
	return ""
}

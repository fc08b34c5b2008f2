package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shareddomain "insights/internal/shared/domain"
)

func TestNewSale(t *testing.T) {
	date := shareddomain.MustParseDate("2024-01-10")

	sale, err := NewSale(1, date, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, sale.Quantity().Value())
	assert.Equal(t, SaleID(0), sale.ID())

	_, err = NewSale(0, date, 5)
	assert.ErrorIs(t, err, shareddomain.ErrInvalidIdentifier)

	_, err = NewSale(1, date, -1)
	assert.ErrorIs(t, err, shareddomain.ErrInvalidQuantity)

	_, err = NewSale(1, shareddomain.Date{}, 1)
	assert.Error(t, err)
}

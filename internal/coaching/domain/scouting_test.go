package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insights/internal/shared/domain"
)

func TestNewScoutingRecord(t *testing.T) {
	record, err := NewScoutingRecord(1, "Benfica B", 1.8, 0.9)
	require.NoError(t, err)
	assert.Equal(t, TeamID(1), record.TeamID())
	assert.Equal(t, 1.8, record.GoalsFor())

	_, err = NewScoutingRecord(0, "Benfica B", 1, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidIdentifier)

	_, err = NewScoutingRecord(1, "   ", 1, 1)
	assert.Error(t, err)

	_, err = NewScoutingRecord(1, "Benfica B", -0.1, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestNewScoutingRecord_KeepsNameVerbatim(t *testing.T) {
	name := "'); DROP TABLE sales; --"
	record, err := NewScoutingRecord(3, name, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, name, record.TeamName())
}

package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDateRange(t *testing.T) {
	testCases := []struct {
		name    string
		start   string
		end     string
		wantErr bool
	}{
		{name: "ordered range", start: "2024-01-01", end: "2024-02-28"},
		{name: "single day", start: "2024-01-10", end: "2024-01-10"},
		{name: "start after end", start: "2024-03-01", end: "2024-02-01", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dr, err := NewDateRange(MustParseDate(tc.start), MustParseDate(tc.end))
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidRange))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.start, dr.Start().String())
			assert.Equal(t, tc.end, dr.End().String())
		})
	}
}

func TestParseDateRange_BadInput(t *testing.T) {
	_, err := ParseDateRange("2024-13-01", "2024-01-01")
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = ParseDateRange("2024-01-01", "")
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestNewDateRangeFromDays(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)

	dr, err := newDateRangeFromDays(30, now)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-14", dr.Start().String())
	assert.Equal(t, "2024-03-15", dr.End().String())

	_, err = newDateRangeFromDays(-1, now)
	assert.Error(t, err)
}

func TestDateRange_Contains(t *testing.T) {
	dr, err := ParseDateRange("2024-01-01", "2024-02-28")
	require.NoError(t, err)

	assert.True(t, dr.Contains(MustParseDate("2024-01-01")))
	assert.True(t, dr.Contains(MustParseDate("2024-02-28")))
	assert.False(t, dr.Contains(MustParseDate("2023-12-31")))
	assert.False(t, dr.Contains(MustParseDate("2024-02-29")))
}

func TestDateRange_Months(t *testing.T) {
	dr, err := ParseDateRange("2023-12-20", "2024-02-10")
	require.NoError(t, err)

	months := dr.Months()
	require.Len(t, months, 3)
	assert.Equal(t, "2023-12-20..2023-12-31", months[0].String())
	assert.Equal(t, "2024-01-01..2024-01-31", months[1].String())
	assert.Equal(t, "2024-02-01..2024-02-10", months[2].String())
}

func TestDate_Scan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan("2024-01-10"))
	assert.Equal(t, "2024-01-10", d.String())

	require.NoError(t, d.Scan([]byte("2024-02-01 00:00:00+00:00")))
	assert.Equal(t, "2024-02-01", d.String())

	require.NoError(t, d.Scan(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-03-05", d.String())

	assert.Error(t, d.Scan(42))
	assert.Error(t, d.Scan("oops"))
}

func TestDate_JSON(t *testing.T) {
	d := MustParseDate("2024-01-10")
	data, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-10"`, string(data))

	var back Date
	require.NoError(t, back.UnmarshalJSON(data))
	assert.Equal(t, d, back)
}

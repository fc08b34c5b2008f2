package domain

import (
	"errors"
	"fmt"
	"time"
)

// DateRange représente une période inclusive [start, end]
// DESIGN PATTERN: Value Object
//   - Immutable: pas de setters, valeurs fixées à la création
//   - Validation dans les constructeurs (start <= end)
//   - Égalité basée sur les valeurs
type DateRange struct {
	start Date
	end   Date
}

// NewDateRange crée une période inclusive et rejette start > end
func NewDateRange(start, end Date) (DateRange, error) {
	if start.IsZero() || end.IsZero() {
		return DateRange{}, fmt.Errorf("%w: start and end are required", ErrInvalidRange)
	}
	if start.After(end) {
		return DateRange{}, fmt.Errorf("%w: start %s is after end %s", ErrInvalidRange, start, end)
	}
	return DateRange{start: start, end: end}, nil
}

// ParseDateRange lit deux dates YYYY-MM-DD et construit la période
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := ParseDate(start)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	e, err := ParseDate(end)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	return NewDateRange(s, e)
}

// NewDateRangeFromDays crée la période des `days` derniers jours, aujourd'hui inclus
func NewDateRangeFromDays(days int) (DateRange, error) {
	return newDateRangeFromDays(days, time.Now())
}

func newDateRangeFromDays(days int, now time.Time) (DateRange, error) {
	if days < 0 {
		return DateRange{}, errors.New("days cannot be negative")
	}
	end := DateOf(now)
	return DateRange{
		start: end.AddDays(-days),
		end:   end,
	}, nil
}

// Start retourne la date de début
func (dr DateRange) Start() Date {
	return dr.start
}

// End retourne la date de fin
func (dr DateRange) End() Date {
	return dr.end
}

// Contains vérifie si une date tombe dans la période (bornes incluses)
func (dr DateRange) Contains(d Date) bool {
	return !d.Before(dr.start) && !d.After(dr.end)
}

// Months découpe la période en sous-périodes calendaires mensuelles,
// la première et la dernière étant tronquées aux bornes
func (dr DateRange) Months() []DateRange {
	var months []DateRange
	cursor := dr.start
	for !cursor.After(dr.end) {
		next := DateOf(cursor.FirstOfMonth().Time().AddDate(0, 1, 0))
		last := next.AddDays(-1)
		if last.After(dr.end) {
			last = dr.end
		}
		months = append(months, DateRange{start: cursor, end: last})
		cursor = next
	}
	return months
}

// String formate la période pour les logs et les clés de cache
func (dr DateRange) String() string {
	return dr.start.String() + ".." + dr.end.String()
}

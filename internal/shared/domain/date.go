package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout est le format calendaire utilisé partout (stockage, API, CLI)
const DateLayout = "2006-01-02"

// Date représente un jour calendaire, sans heure ni fuseau
// Normalisé à minuit UTC pour que les comparaisons soient stables entre moteurs
type Date struct {
	t time.Time
}

// NewDate construit une Date à partir de ses composantes
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf tronque un instant à son jour calendaire
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate lit une date au format YYYY-MM-DD
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// MustParseDate panique si la date est invalide (fixtures, tests)
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Time retourne l'instant minuit UTC du jour
func (d Date) Time() time.Time {
	return d.t
}

// IsZero vérifie si la date n'a pas été initialisée
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Before indique si d est strictement avant other
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// After indique si d est strictement après other
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// AddDays décale la date de n jours
func (d Date) AddDays(n int) Date {
	return DateOf(d.t.AddDate(0, 0, n))
}

// FirstOfMonth retourne le premier jour du mois de d
func (d Date) FirstOfMonth() Date {
	return NewDate(d.t.Year(), d.t.Month(), 1)
}

// String formate la date en YYYY-MM-DD
func (d Date) String() string {
	return d.t.Format(DateLayout)
}

// Value lie la date comme texte YYYY-MM-DD, compris par SQLite et PostgreSQL
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan accepte les représentations renvoyées par les drivers (time.Time, texte)
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateOf(v.UTC())
		return nil
	case string:
		return d.scanText(v)
	case []byte:
		return d.scanText(string(v))
	case nil:
		*d = Date{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d *Date) scanText(s string) error {
	if len(s) < len(DateLayout) {
		return fmt.Errorf("invalid date %q", s)
	}
	parsed, err := ParseDate(s[:len(DateLayout)])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// GormDataType déclare le type de colonne pour AutoMigrate
func (Date) GormDataType() string {
	return "date"
}

// MarshalJSON sérialise en "YYYY-MM-DD"
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON lit "YYYY-MM-DD"
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML sérialise en "YYYY-MM-DD"
func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

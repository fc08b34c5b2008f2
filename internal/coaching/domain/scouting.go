package domain

import (
	"errors"
	"fmt"
	"strings"

	"insights/internal/shared/domain"
)

// TeamID identifiant d'une équipe adverse
type TeamID int64

// ScoutingRecord moyennes de buts observées pour une équipe adverse
type ScoutingRecord struct {
	id           int64
	teamID       TeamID
	teamName     string
	goalsFor     float64
	goalsAgainst float64
}

// NewScoutingRecord crée un relevé de scouting avec validation.
// Le nom est conservé tel quel: il n'est jamais interprété comme du SQL.
func NewScoutingRecord(teamID TeamID, teamName string, goalsFor, goalsAgainst float64) (*ScoutingRecord, error) {
	if teamID <= 0 {
		return nil, fmt.Errorf("%w: team id %d", domain.ErrInvalidIdentifier, teamID)
	}
	if strings.TrimSpace(teamName) == "" {
		return nil, errors.New("team name is required")
	}
	if goalsFor < 0 || goalsAgainst < 0 {
		return nil, fmt.Errorf("%w: goal averages cannot be negative", domain.ErrInvalidAmount)
	}

	return &ScoutingRecord{
		teamID:       teamID,
		teamName:     teamName,
		goalsFor:     goalsFor,
		goalsAgainst: goalsAgainst,
	}, nil
}

// ID retourne l'identifiant (0 tant que non persisté)
func (r *ScoutingRecord) ID() int64 {
	return r.id
}

// TeamID retourne l'équipe observée
func (r *ScoutingRecord) TeamID() TeamID {
	return r.teamID
}

// TeamName retourne le nom de l'équipe
func (r *ScoutingRecord) TeamName() string {
	return r.teamName
}

// GoalsFor retourne la moyenne de buts marqués
func (r *ScoutingRecord) GoalsFor() float64 {
	return r.goalsFor
}

// GoalsAgainst retourne la moyenne de buts encaissés
func (r *ScoutingRecord) GoalsAgainst() float64 {
	return r.goalsAgainst
}

// AssignID fixe l'identifiant après insertion
func (r *ScoutingRecord) AssignID(id int64) {
	r.id = id
}

// Suggestion résultat de la procédure de décision
type Suggestion struct {
	teamID     TeamID
	suggestion string
	reason     string
}

// NewSuggestion crée une suggestion d'entraînement
func NewSuggestion(teamID TeamID, suggestion, reason string) *Suggestion {
	return &Suggestion{teamID: teamID, suggestion: suggestion, reason: reason}
}

// TeamID retourne l'équipe concernée
func (s *Suggestion) TeamID() TeamID {
	return s.teamID
}

// Suggestion retourne l'entraînement proposé
func (s *Suggestion) Suggestion() string {
	return s.suggestion
}

// Reason retourne la justification
func (s *Suggestion) Reason() string {
	return s.reason
}

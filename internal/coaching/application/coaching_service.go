package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"insights/internal/coaching/domain"
	shareddomain "insights/internal/shared/domain"
)

// ScoutingWriter persiste les relevés de scouting
type ScoutingWriter interface {
	Insert(ctx context.Context, record *domain.ScoutingRecord) error
}

// SuggestionSource procédure de décision côté base
type SuggestionSource interface {
	Suggest(ctx context.Context, teamID domain.TeamID) (*domain.Suggestion, error)
}

// CoachingService saisie du scouting et suggestions d'entraînement
type CoachingService struct {
	records     ScoutingWriter
	suggestions SuggestionSource
	log         *logrus.Logger
}

// NewCoachingService crée une nouvelle instance de CoachingService
func NewCoachingService(records ScoutingWriter, suggestions SuggestionSource, log *logrus.Logger) *CoachingService {
	return &CoachingService{
		records:     records,
		suggestions: suggestions,
		log:         log,
	}
}

// InsertScoutingRecord valide puis enregistre un relevé
func (s *CoachingService) InsertScoutingRecord(ctx context.Context, teamID domain.TeamID, teamName string, goalsFor, goalsAgainst float64) (*domain.ScoutingRecord, error) {
	record, err := domain.NewScoutingRecord(teamID, teamName, goalsFor, goalsAgainst)
	if err != nil {
		return nil, err
	}

	if err := s.records.Insert(ctx, record); err != nil {
		s.log.WithError(err).WithField("team_id", teamID).Error("scouting insert failed")
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"record_id": record.ID(),
		"team_id":   teamID,
	}).Info("scouting record stored")

	return record, nil
}

// TrainingSuggestion interroge la procédure de décision pour une équipe.
// Pas assez de données de scouting: ErrNoSuggestion.
func (s *CoachingService) TrainingSuggestion(ctx context.Context, teamID domain.TeamID) (*domain.Suggestion, error) {
	if teamID <= 0 {
		return nil, shareddomain.ErrInvalidIdentifier
	}

	suggestion, err := s.suggestions.Suggest(ctx, teamID)
	if err != nil {
		if !errors.Is(err, shareddomain.ErrNoSuggestion) {
			s.log.WithError(err).WithField("team_id", teamID).Error("training suggestion failed")
		}
		return nil, err
	}
	return suggestion, nil
}

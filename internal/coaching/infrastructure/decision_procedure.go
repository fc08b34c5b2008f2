package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"insights/internal/coaching/domain"
	shareddomain "insights/internal/shared/domain"
	"insights/internal/shared/infrastructure"
)

// BuiltinSuggestionQuery règles de décision appliquées au dernier relevé de l'équipe.
// Portable SQLite / PostgreSQL; un seul paramètre lié: l'id de l'équipe.
const BuiltinSuggestionQuery = `
	SELECT
		CASE
			WHEN r.goals_against >= 1.5 THEN 'Reforçar organização defensiva'
			WHEN r.goals_for < 1.0 THEN 'Treino de finalização'
			WHEN r.goals_for >= 2.0 THEN 'Pressão alta e bloqueio de transições'
			ELSE 'Manter plano de jogo'
		END AS suggestion,
		CASE
			WHEN r.goals_against >= 1.5 THEN 'O adversário sofre muitos golos: explorar o ataque exige primeiro não conceder'
			WHEN r.goals_for < 1.0 THEN 'O adversário marca pouco: a vitória depende da nossa eficácia'
			WHEN r.goals_for >= 2.0 THEN 'O adversário tem ataque forte: cortar a primeira fase de construção'
			ELSE 'Equipa equilibrada, sem padrão dominante'
		END AS reason
	FROM scouting_records r
	WHERE r.team_id = ?
	ORDER BY r.id DESC
	LIMIT 1
`

// ErrInvalidStatement l'instruction de décision n'a pas exactement un paramètre
var ErrInvalidStatement = errors.New("decision statement must contain exactly one '?' placeholder")

// DecisionProcedure exécute l'instruction de décision configurée.
// L'id d'équipe est toujours lié, jamais interpolé dans le texte SQL.
type DecisionProcedure struct {
	infrastructure.BaseRepository
	statement string
}

// NewDecisionProcedure crée le client; statement vide => BuiltinSuggestionQuery
func NewDecisionProcedure(db *gorm.DB, statement string) (*DecisionProcedure, error) {
	if strings.TrimSpace(statement) == "" {
		statement = BuiltinSuggestionQuery
	}
	if strings.Count(statement, "?") != 1 {
		return nil, ErrInvalidStatement
	}
	return &DecisionProcedure{
		BaseRepository: infrastructure.NewBaseRepository(db),
		statement:      statement,
	}, nil
}

// Suggest retourne la suggestion pour l'équipe, ErrNoSuggestion si aucune ligne
func (p *DecisionProcedure) Suggest(ctx context.Context, teamID domain.TeamID) (*domain.Suggestion, error) {
	var suggestion, reason sql.NullString

	err := p.QueryRow(ctx, p.statement, int64(teamID)).Scan(&suggestion, &reason)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: team %d", shareddomain.ErrNoSuggestion, teamID)
	}
	if err != nil {
		return nil, shareddomain.WrapOperation("training_suggestion", err)
	}
	if !suggestion.Valid {
		return nil, fmt.Errorf("%w: team %d", shareddomain.ErrNoSuggestion, teamID)
	}

	return domain.NewSuggestion(teamID, suggestion.String, reason.String), nil
}

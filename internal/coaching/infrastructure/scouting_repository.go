package infrastructure

import (
	"context"

	"gorm.io/gorm"

	"insights/database"
	"insights/internal/coaching/domain"
	shareddomain "insights/internal/shared/domain"
	"insights/internal/shared/infrastructure"
)

// ScoutingCommandRepository repository d'écriture des relevés de scouting
type ScoutingCommandRepository struct {
	infrastructure.BaseRepository
}

// NewScoutingCommandRepository crée un nouveau repository de scouting
func NewScoutingCommandRepository(db *gorm.DB) *ScoutingCommandRepository {
	return &ScoutingCommandRepository{
		BaseRepository: infrastructure.NewBaseRepository(db),
	}
}

// Insert persiste le relevé (INSERT paramétré) et lui attribue son identifiant
func (r *ScoutingCommandRepository) Insert(ctx context.Context, record *domain.ScoutingRecord) error {
	row := database.ScoutingRecord{
		TeamID:       int64(record.TeamID()),
		TeamName:     record.TeamName(),
		GoalsFor:     record.GoalsFor(),
		GoalsAgainst: record.GoalsAgainst(),
	}
	if err := r.DB().WithContext(ctx).Create(&row).Error; err != nil {
		return shareddomain.WrapOperation("insert_scouting_record", err)
	}
	record.AssignID(row.ID)
	return nil
}

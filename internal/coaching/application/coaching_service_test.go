package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insights/database"
	"insights/internal/coaching/application"
	"insights/internal/coaching/domain"
	"insights/internal/coaching/infrastructure"
	shareddomain "insights/internal/shared/domain"
	"insights/internal/testhelpers"
)

func setupCoaching(t *testing.T, statement string) (*application.CoachingService, *testhelpers.TestContext) {
	t.Helper()
	tc := testhelpers.SetupTestContext(t)
	procedure, err := infrastructure.NewDecisionProcedure(tc.DB.Gorm, statement)
	require.NoError(t, err)
	service := application.NewCoachingService(
		infrastructure.NewScoutingCommandRepository(tc.DB.Gorm),
		procedure,
		tc.Log,
	)
	return service, tc
}

func TestCoachingService_SuggestionFromBuiltinRules(t *testing.T) {
	service, _ := setupCoaching(t, "")
	ctx := context.Background()

	_, err := service.InsertScoutingRecord(ctx, 1, "Sporting B", 0.6, 0.8)
	require.NoError(t, err)

	suggestion, err := service.TrainingSuggestion(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.TeamID(1), suggestion.TeamID())
	assert.Equal(t, "Treino de finalização", suggestion.Suggestion())
	assert.NotEmpty(t, suggestion.Reason())

	// le relevé le plus récent l'emporte
	_, err = service.InsertScoutingRecord(ctx, 1, "Sporting B", 1.2, 2.1)
	require.NoError(t, err)
	suggestion, err = service.TrainingSuggestion(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Reforçar organização defensiva", suggestion.Suggestion())
}

func TestCoachingService_NoScoutingData(t *testing.T) {
	service, _ := setupCoaching(t, "")

	_, err := service.TrainingSuggestion(context.Background(), 42)
	assert.ErrorIs(t, err, shareddomain.ErrNoSuggestion)

	_, err = service.TrainingSuggestion(context.Background(), 0)
	assert.ErrorIs(t, err, shareddomain.ErrInvalidIdentifier)
}

func TestCoachingService_ConfiguredStatement(t *testing.T) {
	service, _ := setupCoaching(t, `SELECT 'Pressing alto', 'Defesa fraca' FROM scouting_records WHERE team_id = ? LIMIT 1`)
	ctx := context.Background()

	_, err := service.InsertScoutingRecord(ctx, 7, "Porto", 1, 1)
	require.NoError(t, err)

	suggestion, err := service.TrainingSuggestion(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Pressing alto", suggestion.Suggestion())
	assert.Equal(t, "Defesa fraca", suggestion.Reason())
}

func TestNewDecisionProcedure_RejectsStatementWithoutSingleParameter(t *testing.T) {
	tc := testhelpers.SetupTestContext(t)

	_, err := infrastructure.NewDecisionProcedure(tc.DB.Gorm, "SELECT 'a', 'b'")
	assert.ErrorIs(t, err, infrastructure.ErrInvalidStatement)

	_, err = infrastructure.NewDecisionProcedure(tc.DB.Gorm, "SELECT ?, ?")
	assert.ErrorIs(t, err, infrastructure.ErrInvalidStatement)
}

func TestCoachingService_InjectionPayloadStoredVerbatim(t *testing.T) {
	service, tc := setupCoaching(t, "")
	payload := "'); DROP TABLE sales; --"

	record, err := service.InsertScoutingRecord(context.Background(), 3, payload, 1, 1)
	require.NoError(t, err)

	var row database.ScoutingRecord
	require.NoError(t, tc.DB.Gorm.First(&row, record.ID()).Error)
	assert.Equal(t, payload, row.TeamName)
	assert.Equal(t, int64(5), tc.CountRows(t, &database.Sale{}), "sales table must be intact")
}

func TestCoachingService_Validation(t *testing.T) {
	service, tc := setupCoaching(t, "")
	ctx := context.Background()

	_, err := service.InsertScoutingRecord(ctx, -1, "X", 1, 1)
	assert.ErrorIs(t, err, shareddomain.ErrInvalidIdentifier)
	_, err = service.InsertScoutingRecord(ctx, 1, "X", 1, -2)
	assert.ErrorIs(t, err, shareddomain.ErrInvalidAmount)
	_, err = service.InsertScoutingRecord(ctx, 1, "", 1, 1)
	assert.Error(t, err)

	assert.Zero(t, tc.CountRows(t, &database.ScoutingRecord{}))
}

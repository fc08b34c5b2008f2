package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insights/database"
	"insights/internal/shared/domain"
	"insights/internal/testhelpers"
)

func TestSchemaManager_ProvisionIsIdempotent(t *testing.T) {
	tc := testhelpers.SetupTestContext(t)
	ctx := context.Background()

	counts := func() [3]int64 {
		return [3]int64{
			tc.CountRows(t, &database.Category{}),
			tc.CountRows(t, &database.Product{}),
			tc.CountRows(t, &database.Sale{}),
		}
	}
	first := counts()
	assert.Equal(t, [3]int64{3, 4, 5}, first)

	require.NoError(t, tc.Schema.Provision(ctx))
	require.NoError(t, tc.Schema.EnsureSchema(ctx))

	seeded, err := tc.Schema.EnsureSeedData(ctx)
	require.NoError(t, err)
	assert.False(t, seeded, "fixture must be inserted once")
	assert.Equal(t, first, counts())
}

func TestSchemaManager_EnsureSeedData_SkipsWhenCategoriesExist(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	schema := database.NewSchemaManager(db.Gorm, testhelpers.NewTestLogger())
	ctx := context.Background()

	require.NoError(t, schema.EnsureSchema(ctx))
	require.NoError(t, db.Gorm.Create(&database.Category{ID: 99, Name: "Existente"}).Error)

	seeded, err := schema.EnsureSeedData(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)

	var products int64
	require.NoError(t, db.Gorm.Model(&database.Product{}).Count(&products).Error)
	assert.Zero(t, products)
}

func TestSchemaManager_FixtureValues(t *testing.T) {
	tc := testhelpers.SetupTestContext(t)

	var product database.Product
	require.NoError(t, tc.DB.Gorm.First(&product, 1).Error)
	assert.Equal(t, "Teclado RGB", product.Name)
	assert.Equal(t, "45", product.UnitPrice.String())

	var sale database.Sale
	require.NoError(t, tc.DB.Gorm.First(&sale, 1).Error)
	assert.Equal(t, "2024-01-10", sale.SaleDate.String())
	assert.Equal(t, 5, sale.Quantity)
}

func TestSchemaManager_StorageUnavailable(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	schema := database.NewSchemaManager(db.Gorm, testhelpers.NewTestLogger())
	require.NoError(t, db.Close())

	err := schema.Provision(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConnectionFailure), "got %v", err)
	assert.Equal(t, "ensure_schema", domain.OperationOf(err))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := database.Open(context.Background(), database.Options{Driver: "oracle", DSN: "x"})
	assert.ErrorIs(t, err, domain.ErrConnectionFailure)
}

func TestSchemaManager_Postgres(t *testing.T) {
	db := testhelpers.SetupPostgresDB(t)
	schema := database.NewSchemaManager(db.Gorm, testhelpers.NewTestLogger())
	ctx := context.Background()

	require.NoError(t, schema.Provision(ctx))
	require.NoError(t, schema.Provision(ctx))

	var categories int64
	require.NoError(t, db.Gorm.Model(&database.Category{}).Count(&categories).Error)
	assert.GreaterOrEqual(t, categories, int64(3))
}

package testhelpers

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"insights/database"
	"insights/internal/shared/domain"
)

// PostgresDSNEnv variable qui active les tests sur un vrai PostgreSQL
const PostgresDSNEnv = "INSIGHTS_TEST_POSTGRES_DSN"

// TestContext contient les dépendances communes aux tests d'intégration
// Note: ne contient PAS les repositories ni les services pour éviter les import cycles;
// chaque test construit les siens à partir de DB.
type TestContext struct {
	DB     *database.DB
	Log    *logrus.Logger
	Schema *database.SchemaManager
}

// NewTestLogger retourne un logger silencieux
func NewTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// SetupTestDB ouvre une base SQLite en mémoire, vide
func SetupTestDB(tb testing.TB) *database.DB {
	tb.Helper()

	db, err := database.Open(context.Background(), database.Options{
		Driver: database.DriverSQLite,
		DSN:    ":memory:",
		Logger: NewTestLogger(),
	})
	if err != nil {
		tb.Fatalf("Failed to open in-memory database: %v", err)
	}
	tb.Cleanup(func() { _ = db.Close() })
	return db
}

// SetupTestContext ouvre une base en mémoire et la provisionne (schéma + jeu de démonstration)
func SetupTestContext(tb testing.TB) *TestContext {
	tb.Helper()

	ctx := &TestContext{Log: NewTestLogger()}
	ctx.DB = SetupTestDB(tb)
	ctx.Schema = database.NewSchemaManager(ctx.DB.Gorm, ctx.Log)

	if err := ctx.Schema.Provision(context.Background()); err != nil {
		tb.Fatalf("Failed to provision database: %v", err)
	}
	return ctx
}

// InsertSale ajoute une vente brute, sans validation (y compris orpheline)
func (ctx *TestContext) InsertSale(tb testing.TB, productID int64, date string, quantity int) int64 {
	tb.Helper()

	sale := database.Sale{
		ProductID: productID,
		SaleDate:  domain.MustParseDate(date),
		Quantity:  quantity,
	}
	if err := ctx.DB.Gorm.Create(&sale).Error; err != nil {
		tb.Fatalf("Failed to insert sale: %v", err)
	}
	return sale.ID
}

// DeleteAllSales vide la table sales (scénarios « aucune vente »)
func (ctx *TestContext) DeleteAllSales(tb testing.TB) {
	tb.Helper()

	if err := ctx.DB.Gorm.Exec("DELETE FROM sales").Error; err != nil {
		tb.Fatalf("Failed to delete sales: %v", err)
	}
}

// CountRows compte les lignes d'un modèle
func (ctx *TestContext) CountRows(tb testing.TB, model interface{}) int64 {
	tb.Helper()

	var n int64
	if err := ctx.DB.Gorm.Model(model).Count(&n).Error; err != nil {
		tb.Fatalf("Failed to count rows: %v", err)
	}
	return n
}

// SetupPostgresDB ouvre le PostgreSQL de test ou skip si non configuré
func SetupPostgresDB(tb testing.TB) *database.DB {
	tb.Helper()

	_ = godotenv.Load("../../.env")

	dsn := os.Getenv(PostgresDSNEnv)
	if dsn == "" {
		tb.Skipf("%s not set, skipping PostgreSQL test", PostgresDSNEnv)
	}

	db, err := database.Open(context.Background(), database.Options{
		Driver: database.DriverPostgres,
		DSN:    dsn,
		Logger: NewTestLogger(),
	})
	if err != nil {
		tb.Skip("Database not available:", err)
	}
	tb.Cleanup(func() { _ = db.Close() })
	return db
}

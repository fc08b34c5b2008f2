package database

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"insights/internal/shared/domain"
	"insights/internal/shared/infrastructure"
)

// SchemaManager crée les tables et insère le jeu de démonstration, de façon idempotente
type SchemaManager struct {
	db  *gorm.DB
	uow infrastructure.UnitOfWork
	log *logrus.Logger
	mu  sync.Mutex
}

// NewSchemaManager crée un SchemaManager sur la session gorm donnée
func NewSchemaManager(db *gorm.DB, log *logrus.Logger) *SchemaManager {
	return &SchemaManager{
		db:  db,
		uow: infrastructure.NewUnitOfWork(db),
		log: log,
	}
}

// EnsureSchema crée les tables absentes; sans effet si elles existent déjà
func (m *SchemaManager) EnsureSchema(ctx context.Context) error {
	if err := m.db.WithContext(ctx).AutoMigrate(AllModels()...); err != nil {
		return domain.WrapOperation("ensure_schema", err)
	}
	return nil
}

// EnsureSeedData insère le jeu de démonstration seulement si la table categories est vide.
// Retourne true si des lignes ont été insérées.
func (m *SchemaManager) EnsureSeedData(ctx context.Context) (bool, error) {
	seeded := false
	err := m.uow.Execute(ctx, func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Category{}).Count(&count).Error; err != nil {
			return fmt.Errorf("count categories: %w", err)
		}
		if count > 0 {
			return nil
		}

		fixture := Fixture()
		if err := tx.Create(&fixture.Categories).Error; err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
		if err := tx.Create(&fixture.Products).Error; err != nil {
			return fmt.Errorf("seed products: %w", err)
		}
		if err := tx.Create(&fixture.Sales).Error; err != nil {
			return fmt.Errorf("seed sales: %w", err)
		}
		if err := resyncSequences(ctx, tx); err != nil {
			return err
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, domain.WrapOperation("ensure_seed_data", err)
	}
	return seeded, nil
}

// Provision exécute EnsureSchema puis EnsureSeedData.
// Barrière d'initialisation: à appeler avant toute requête de reporting.
func (m *SchemaManager) Provision(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.EnsureSchema(ctx); err != nil {
		return err
	}
	seeded, err := m.EnsureSeedData(ctx)
	if err != nil {
		return err
	}
	if m.log != nil {
		m.log.WithField("seeded", seeded).Info("schema provisioned")
	}
	return nil
}

// sequenceResyncStatements recale les séquences PostgreSQL après insertion d'identifiants explicites
var sequenceResyncStatements = []string{
	"SELECT setval(pg_get_serial_sequence('categories', 'id'), (SELECT MAX(id) FROM categories))",
	"SELECT setval(pg_get_serial_sequence('products', 'id'), (SELECT MAX(id) FROM products))",
	"SELECT setval(pg_get_serial_sequence('sales', 'id'), (SELECT MAX(id) FROM sales))",
}

func resyncSequences(ctx context.Context, tx *gorm.DB) error {
	if tx.Dialector.Name() != DriverPostgres {
		return nil
	}
	repo := infrastructure.NewBaseRepository(tx)
	for _, stmt := range sequenceResyncStatements {
		if _, err := repo.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("resync sequence: %w", err)
		}
	}
	return nil
}

package infrastructure

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// UnitOfWork gère les transactions pour les opérations d'écriture
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// GormUnitOfWork implémentation de UnitOfWork avec gorm
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork crée une nouvelle instance de UnitOfWork
func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Execute exécute fn dans une transaction; rollback si fn échoue ou panique
func (uow *GormUnitOfWork) Execute(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return uow.db.WithContext(ctx).Transaction(fn)
}

// BaseRepository structure de base pour les repositories
// Toutes les requêtes passent par Raw/Exec de gorm: les `?` sont liés
// par le dialecte ($n pour PostgreSQL), jamais concaténés au texte SQL.
type BaseRepository struct {
	db *gorm.DB
}

// NewBaseRepository crée un nouveau repository de base
func NewBaseRepository(db *gorm.DB) BaseRepository {
	return BaseRepository{db: db}
}

// DB retourne la session gorm sous-jacente
func (r *BaseRepository) DB() *gorm.DB {
	return r.db
}

// Query exécute une requête de lecture
func (r *BaseRepository) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return r.db.WithContext(ctx).Raw(query, args...).Rows()
}

// QueryRow exécute une requête de lecture pour une seule ligne
func (r *BaseRepository) QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return r.db.WithContext(ctx).Raw(query, args...).Row()
}

// Exec exécute une requête d'écriture et retourne le nombre de lignes touchées
func (r *BaseRepository) Exec(ctx context.Context, query string, args ...interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Exec(query, args...)
	return res.RowsAffected, res.Error
}

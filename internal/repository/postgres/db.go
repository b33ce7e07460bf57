package postgres

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"gymsheet/training-app/internal/domain"
	"gymsheet/training-app/internal/pkg/dbctx"
	"gymsheet/training-app/internal/pkg/logger"
)

// Connect opens a gorm connection against Postgres. Schema migration is a
// separate step so tests can reuse it on other dialects.
func Connect(dsn string, logg *logger.Logger) (*gorm.DB, error) {
	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	logg.Info("database connection established")
	return db, nil
}

// AutoMigrateAll creates or updates the full relational schema.
func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.ExerciseGroupCategory{},
		&domain.Exercise{},
		&domain.Method{},
		&domain.ExerciseGroup{},
		&domain.ExerciseMethod{},
		&domain.ExerciseConfiguration{},
		&domain.TrainingSheet{},
		&domain.TrainingDay{},
	)
}

// SeedCategories inserts the category lookup rows when missing. Categories
// are system-managed; the engine never creates them at request time.
func SeedCategories(db *gorm.DB, names []string) error {
	for _, name := range names {
		cat := domain.ExerciseGroupCategory{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&cat).Error; err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
	}
	return nil
}

// Store owns the shared gorm handle and implements repository.TxRunner.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *gorm.DB { return s.db }

// RunInTx executes fn inside a single transaction; any error from fn rolls
// back every statement issued through the dbctx.
func (s *Store) RunInTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(dbctx.Context{Ctx: ctx, Tx: tx})
	})
}

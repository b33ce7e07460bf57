package repository

import (
	"context"

	"gymsheet/training-app/internal/domain"
	"gymsheet/training-app/internal/pkg/dbctx"
	"gymsheet/training-app/internal/pagination"
)

// Error constants for the repository layer.
var (
	ErrNotFound = RepositoryError("not found")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// TxRunner starts a transaction and hands it to fn through the dbctx. A
// non-nil error from fn rolls the whole transaction back.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(dbc dbctx.Context) error) error
}

// CategoryRepository reads the exercise group category lookup.
type CategoryRepository interface {
	List(dbc dbctx.Context) ([]domain.ExerciseGroupCategory, error)
	Exists(dbc dbctx.Context, id uint) (bool, error)
}

// ExerciseRepository is flat CRUD over the exercise catalog.
type ExerciseRepository interface {
	Create(dbc dbctx.Context, exercise *domain.Exercise) error
	GetByID(dbc dbctx.Context, id uint) (*domain.Exercise, error)
	List(dbc dbctx.Context, page pagination.Params) ([]domain.Exercise, int64, error)
	Update(dbc dbctx.Context, exercise *domain.Exercise) error
	Delete(dbc dbctx.Context, id uint) error
	Exists(dbc dbctx.Context, id uint) (bool, error)
}

// MethodRepository is flat CRUD over the training method catalog.
type MethodRepository interface {
	Create(dbc dbctx.Context, method *domain.Method) error
	GetByID(dbc dbctx.Context, id uint) (*domain.Method, error)
	List(dbc dbctx.Context, page pagination.Params) ([]domain.Method, int64, error)
	Update(dbc dbctx.Context, method *domain.Method) error
	Delete(dbc dbctx.Context, id uint) error
	Exists(dbc dbctx.Context, id uint) (bool, error)
}

// ExerciseGroupRepository persists groups together with their ordered slots
// and configurations. GetFullByID and List always return the canonical full
// graph: methods sorted ascending by order, each with its configurations
// and their exercise/method references.
type ExerciseGroupRepository interface {
	Create(dbc dbctx.Context, group *domain.ExerciseGroup) error
	GetByID(dbc dbctx.Context, id uint) (*domain.ExerciseGroup, error)
	GetFullByID(dbc dbctx.Context, id uint) (*domain.ExerciseGroup, error)
	List(dbc dbctx.Context, page pagination.Params, categoryID *uint) ([]domain.ExerciseGroup, int64, error)
	Update(dbc dbctx.Context, group *domain.ExerciseGroup) error
	Delete(dbc dbctx.Context, id uint) error
	ReferencedBySheet(dbc dbctx.Context, groupID uint) (bool, error)

	CreateMethod(dbc dbctx.Context, method *domain.ExerciseMethod) error
	GetMethodByID(dbc dbctx.Context, id uint) (*domain.ExerciseMethod, error)
	MaxOrder(dbc dbctx.Context, groupID uint) (int, error)
	DeleteMethod(dbc dbctx.Context, id uint) error

	CreateConfiguration(dbc dbctx.Context, cfg *domain.ExerciseConfiguration) error
	GetConfigurationByID(dbc dbctx.Context, id uint) (*domain.ExerciseConfiguration, error)
	GetConfigurationFull(dbc dbctx.Context, id uint) (*domain.ExerciseConfiguration, error)
	UpdateConfiguration(dbc dbctx.Context, cfg *domain.ExerciseConfiguration) error
	DeleteConfiguration(dbc dbctx.Context, id uint) error
}

// TrainingSheetRepository persists sheets and their day links. Full reads
// expand days in insertion order down to the exercise/method references.
type TrainingSheetRepository interface {
	Create(dbc dbctx.Context, sheet *domain.TrainingSheet) error
	CreateDay(dbc dbctx.Context, day *domain.TrainingDay) error
	GetByID(dbc dbctx.Context, id uint) (*domain.TrainingSheet, error)
	GetFullByID(dbc dbctx.Context, id uint) (*domain.TrainingSheet, error)
	GetFullBySlug(dbc dbctx.Context, slug string) (*domain.TrainingSheet, error)
	List(dbc dbctx.Context, page pagination.Params) ([]domain.TrainingSheet, int64, error)
	ListIDs(dbc dbctx.Context, page pagination.Params) ([]uint, int64, error)
	SlugTaken(dbc dbctx.Context, slug string, excludeID uint) (bool, error)
	Update(dbc dbctx.Context, sheet *domain.TrainingSheet) error
	Delete(dbc dbctx.Context, id uint) error
}

package postgres

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gymsheet/training-app/internal/domain"
	"gymsheet/training-app/internal/pagination"
	"gymsheet/training-app/internal/pkg/dbctx"
	"gymsheet/training-app/internal/repository"
)

type trainingSheetRepository struct {
	db *gorm.DB
}

// NewTrainingSheetRepository creates the repository for sheets and their
// day links.
func NewTrainingSheetRepository(db *gorm.DB) repository.TrainingSheetRepository {
	return &trainingSheetRepository{db: db}
}

func (r *trainingSheetRepository) conn(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx.WithContext(dbc.Ctx)
	}
	return r.db.WithContext(dbc.Ctx)
}

// withSheetGraph is the fixed preload set behind every full sheet read:
// sheet -> days (insertion order) -> group -> methods (ordered) ->
// configurations -> exercise, method.
func withSheetGraph(db *gorm.DB) *gorm.DB {
	return db.
		Preload("TrainingDays", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("TrainingDays.ExerciseGroup.Category").
		Preload("TrainingDays.ExerciseGroup.ExerciseMethods", orderedMethods).
		Preload("TrainingDays.ExerciseGroup.ExerciseMethods.ExerciseConfigurations").
		Preload("TrainingDays.ExerciseGroup.ExerciseMethods.ExerciseConfigurations.Exercise").
		Preload("TrainingDays.ExerciseGroup.ExerciseMethods.ExerciseConfigurations.Method")
}

func (r *trainingSheetRepository) Create(dbc dbctx.Context, sheet *domain.TrainingSheet) error {
	// Day links are persisted explicitly by the composer, in payload order.
	return r.conn(dbc).Omit(clause.Associations).Create(sheet).Error
}

func (r *trainingSheetRepository) CreateDay(dbc dbctx.Context, day *domain.TrainingDay) error {
	return r.conn(dbc).Omit(clause.Associations).Create(day).Error
}

func (r *trainingSheetRepository) GetByID(dbc dbctx.Context, id uint) (*domain.TrainingSheet, error) {
	var sheet domain.TrainingSheet
	if err := r.conn(dbc).First(&sheet, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &sheet, nil
}

func (r *trainingSheetRepository) GetFullByID(dbc dbctx.Context, id uint) (*domain.TrainingSheet, error) {
	var sheet domain.TrainingSheet
	if err := withSheetGraph(r.conn(dbc)).First(&sheet, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &sheet, nil
}

func (r *trainingSheetRepository) GetFullBySlug(dbc dbctx.Context, slug string) (*domain.TrainingSheet, error) {
	var sheet domain.TrainingSheet
	err := withSheetGraph(r.conn(dbc)).Where("slug = ?", slug).First(&sheet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &sheet, nil
}

func (r *trainingSheetRepository) List(dbc dbctx.Context, page pagination.Params) ([]domain.TrainingSheet, int64, error) {
	conn := r.conn(dbc)

	var total int64
	if err := conn.Model(&domain.TrainingSheet{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sheets []domain.TrainingSheet
	err := withSheetGraph(conn).
		Order("created_at DESC").
		Offset(page.Skip).
		Limit(page.PageSize).
		Find(&sheets).Error
	if err != nil {
		return nil, 0, err
	}
	return sheets, total, nil
}

func (r *trainingSheetRepository) ListIDs(dbc dbctx.Context, page pagination.Params) ([]uint, int64, error) {
	conn := r.conn(dbc)

	var total int64
	if err := conn.Model(&domain.TrainingSheet{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ids []uint
	err := conn.Model(&domain.TrainingSheet{}).
		Order("created_at DESC").
		Offset(page.Skip).
		Limit(page.PageSize).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, 0, err
	}
	return ids, total, nil
}

func (r *trainingSheetRepository) SlugTaken(dbc dbctx.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.conn(dbc).Model(&domain.TrainingSheet{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *trainingSheetRepository) Update(dbc dbctx.Context, sheet *domain.TrainingSheet) error {
	return r.conn(dbc).Omit(clause.Associations).Save(sheet).Error
}

// Delete removes the sheet and its day links. Referenced groups are owned
// independently and stay untouched.
func (r *trainingSheetRepository) Delete(dbc dbctx.Context, id uint) error {
	conn := r.conn(dbc)

	if err := conn.Where("training_sheet_id = ?", id).
		Delete(&domain.TrainingDay{}).Error; err != nil {
		return err
	}

	result := conn.Delete(&domain.TrainingSheet{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

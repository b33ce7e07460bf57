package postgres

import (
	"errors"

	"gorm.io/gorm"

	"gymsheet/training-app/internal/domain"
	"gymsheet/training-app/internal/pagination"
	"gymsheet/training-app/internal/pkg/dbctx"
	"gymsheet/training-app/internal/repository"
)

type exerciseRepository struct {
	db *gorm.DB
}

// NewExerciseRepository creates the exercise catalog repository.
func NewExerciseRepository(db *gorm.DB) repository.ExerciseRepository {
	return &exerciseRepository{db: db}
}

func (r *exerciseRepository) conn(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx.WithContext(dbc.Ctx)
	}
	return r.db.WithContext(dbc.Ctx)
}

func (r *exerciseRepository) Create(dbc dbctx.Context, exercise *domain.Exercise) error {
	return r.conn(dbc).Create(exercise).Error
}

func (r *exerciseRepository) GetByID(dbc dbctx.Context, id uint) (*domain.Exercise, error) {
	var exercise domain.Exercise
	if err := r.conn(dbc).First(&exercise, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

func (r *exerciseRepository) List(dbc dbctx.Context, page pagination.Params) ([]domain.Exercise, int64, error) {
	conn := r.conn(dbc)

	var total int64
	if err := conn.Model(&domain.Exercise{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var exercises []domain.Exercise
	err := conn.
		Order("created_at DESC").
		Offset(page.Skip).
		Limit(page.PageSize).
		Find(&exercises).Error
	if err != nil {
		return nil, 0, err
	}
	return exercises, total, nil
}

func (r *exerciseRepository) Update(dbc dbctx.Context, exercise *domain.Exercise) error {
	result := r.conn(dbc).Save(exercise)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func (r *exerciseRepository) Delete(dbc dbctx.Context, id uint) error {
	result := r.conn(dbc).Delete(&domain.Exercise{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *exerciseRepository) Exists(dbc dbctx.Context, id uint) (bool, error) {
	var count int64
	err := r.conn(dbc).Model(&domain.Exercise{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

package postgres

import (
	"gorm.io/gorm"

	"gymsheet/training-app/internal/domain"
	"gymsheet/training-app/internal/pkg/dbctx"
	"gymsheet/training-app/internal/repository"
)

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates the read-only category lookup repository.
func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) conn(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx.WithContext(dbc.Ctx)
	}
	return r.db.WithContext(dbc.Ctx)
}

func (r *categoryRepository) List(dbc dbctx.Context) ([]domain.ExerciseGroupCategory, error) {
	var categories []domain.ExerciseGroupCategory
	if err := r.conn(dbc).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) Exists(dbc dbctx.Context, id uint) (bool, error) {
	var count int64
	err := r.conn(dbc).Model(&domain.ExerciseGroupCategory{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

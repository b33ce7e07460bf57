package postgres

import (
	"errors"

	"gorm.io/gorm"

	"gymsheet/training-app/internal/domain"
	"gymsheet/training-app/internal/pagination"
	"gymsheet/training-app/internal/pkg/dbctx"
	"gymsheet/training-app/internal/repository"
)

type methodRepository struct {
	db *gorm.DB
}

// NewMethodRepository creates the training method catalog repository.
func NewMethodRepository(db *gorm.DB) repository.MethodRepository {
	return &methodRepository{db: db}
}

func (r *methodRepository) conn(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx.WithContext(dbc.Ctx)
	}
	return r.db.WithContext(dbc.Ctx)
}

func (r *methodRepository) Create(dbc dbctx.Context, method *domain.Method) error {
	return r.conn(dbc).Create(method).Error
}

func (r *methodRepository) GetByID(dbc dbctx.Context, id uint) (*domain.Method, error) {
	var method domain.Method
	if err := r.conn(dbc).First(&method, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &method, nil
}

func (r *methodRepository) List(dbc dbctx.Context, page pagination.Params) ([]domain.Method, int64, error) {
	conn := r.conn(dbc)

	var total int64
	if err := conn.Model(&domain.Method{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var methods []domain.Method
	err := conn.
		Order("created_at DESC").
		Offset(page.Skip).
		Limit(page.PageSize).
		Find(&methods).Error
	if err != nil {
		return nil, 0, err
	}
	return methods, total, nil
}

func (r *methodRepository) Update(dbc dbctx.Context, method *domain.Method) error {
	return r.conn(dbc).Save(method).Error
}

func (r *methodRepository) Delete(dbc dbctx.Context, id uint) error {
	result := r.conn(dbc).Delete(&domain.Method{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *methodRepository) Exists(dbc dbctx.Context, id uint) (bool, error) {
	var count int64
	err := r.conn(dbc).Model(&domain.Method{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

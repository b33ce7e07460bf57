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

type exerciseGroupRepository struct {
	db *gorm.DB
}

// NewExerciseGroupRepository creates the repository for groups and their
// slot/configuration descendants.
func NewExerciseGroupRepository(db *gorm.DB) repository.ExerciseGroupRepository {
	return &exerciseGroupRepository{db: db}
}

func (r *exerciseGroupRepository) conn(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx.WithContext(dbc.Ctx)
	}
	return r.db.WithContext(dbc.Ctx)
}

// orderedMethods keeps slots in their durable rank, ascending.
func orderedMethods(db *gorm.DB) *gorm.DB {
	return db.Order(clause.OrderByColumn{Column: clause.Column{Name: "order"}})
}

// withGroupGraph is the fixed preload set behind every full group read:
// group -> methods (ordered) -> configurations -> exercise, method.
func withGroupGraph(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Category").
		Preload("ExerciseMethods", orderedMethods).
		Preload("ExerciseMethods.ExerciseConfigurations").
		Preload("ExerciseMethods.ExerciseConfigurations.Exercise").
		Preload("ExerciseMethods.ExerciseConfigurations.Method")
}

func (r *exerciseGroupRepository) Create(dbc dbctx.Context, group *domain.ExerciseGroup) error {
	// Children are persisted explicitly by the composer, in payload order.
	return r.conn(dbc).Omit(clause.Associations).Create(group).Error
}

func (r *exerciseGroupRepository) GetByID(dbc dbctx.Context, id uint) (*domain.ExerciseGroup, error) {
	var group domain.ExerciseGroup
	if err := r.conn(dbc).First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (r *exerciseGroupRepository) GetFullByID(dbc dbctx.Context, id uint) (*domain.ExerciseGroup, error) {
	var group domain.ExerciseGroup
	if err := withGroupGraph(r.conn(dbc)).First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (r *exerciseGroupRepository) List(dbc dbctx.Context, page pagination.Params, categoryID *uint) ([]domain.ExerciseGroup, int64, error) {
	conn := r.conn(dbc)

	countQuery := conn.Model(&domain.ExerciseGroup{})
	findQuery := withGroupGraph(conn)
	if categoryID != nil {
		// A nil filter omits the predicate entirely; it never matches "all ids".
		countQuery = countQuery.Where("category_id = ?", *categoryID)
		findQuery = findQuery.Where("category_id = ?", *categoryID)
	}

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var groups []domain.ExerciseGroup
	err := findQuery.
		Order("created_at DESC").
		Offset(page.Skip).
		Limit(page.PageSize).
		Find(&groups).Error
	if err != nil {
		return nil, 0, err
	}
	return groups, total, nil
}

func (r *exerciseGroupRepository) Update(dbc dbctx.Context, group *domain.ExerciseGroup) error {
	return r.conn(dbc).Omit(clause.Associations).Save(group).Error
}

// Delete removes the group and every descendant method and configuration.
// Callers run it inside a transaction.
func (r *exerciseGroupRepository) Delete(dbc dbctx.Context, id uint) error {
	conn := r.conn(dbc)

	var methodIDs []uint
	if err := conn.Model(&domain.ExerciseMethod{}).
		Where("exercise_group_id = ?", id).
		Pluck("id", &methodIDs).Error; err != nil {
		return err
	}

	if len(methodIDs) > 0 {
		if err := conn.Where("exercise_method_id IN ?", methodIDs).
			Delete(&domain.ExerciseConfiguration{}).Error; err != nil {
			return err
		}
		if err := conn.Where("exercise_group_id = ?", id).
			Delete(&domain.ExerciseMethod{}).Error; err != nil {
			return err
		}
	}

	result := conn.Delete(&domain.ExerciseGroup{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *exerciseGroupRepository) ReferencedBySheet(dbc dbctx.Context, groupID uint) (bool, error) {
	var count int64
	err := r.conn(dbc).Model(&domain.TrainingDay{}).
		Where("exercise_group_id = ?", groupID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *exerciseGroupRepository) CreateMethod(dbc dbctx.Context, method *domain.ExerciseMethod) error {
	return r.conn(dbc).Omit(clause.Associations).Create(method).Error
}

func (r *exerciseGroupRepository) GetMethodByID(dbc dbctx.Context, id uint) (*domain.ExerciseMethod, error) {
	var method domain.ExerciseMethod
	if err := r.conn(dbc).First(&method, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &method, nil
}

func (r *exerciseGroupRepository) MaxOrder(dbc dbctx.Context, groupID uint) (int, error) {
	var max int
	err := r.conn(dbc).Model(&domain.ExerciseMethod{}).
		Where("exercise_group_id = ?", groupID).
		Select(`COALESCE(MAX("order"), 0)`).
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max, nil
}

// DeleteMethod removes one slot and its configurations; sibling slots keep
// their order values untouched.
func (r *exerciseGroupRepository) DeleteMethod(dbc dbctx.Context, id uint) error {
	conn := r.conn(dbc)

	if err := conn.Where("exercise_method_id = ?", id).
		Delete(&domain.ExerciseConfiguration{}).Error; err != nil {
		return err
	}

	result := conn.Delete(&domain.ExerciseMethod{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *exerciseGroupRepository) CreateConfiguration(dbc dbctx.Context, cfg *domain.ExerciseConfiguration) error {
	return r.conn(dbc).Omit(clause.Associations).Create(cfg).Error
}

func (r *exerciseGroupRepository) GetConfigurationByID(dbc dbctx.Context, id uint) (*domain.ExerciseConfiguration, error) {
	var cfg domain.ExerciseConfiguration
	if err := r.conn(dbc).First(&cfg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &cfg, nil
}

func (r *exerciseGroupRepository) GetConfigurationFull(dbc dbctx.Context, id uint) (*domain.ExerciseConfiguration, error) {
	var cfg domain.ExerciseConfiguration
	err := r.conn(dbc).
		Preload("Exercise").
		Preload("Method").
		First(&cfg, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &cfg, nil
}

func (r *exerciseGroupRepository) UpdateConfiguration(dbc dbctx.Context, cfg *domain.ExerciseConfiguration) error {
	return r.conn(dbc).Omit(clause.Associations).Save(cfg).Error
}

func (r *exerciseGroupRepository) DeleteConfiguration(dbc dbctx.Context, id uint) error {
	result := r.conn(dbc).Delete(&domain.ExerciseConfiguration{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

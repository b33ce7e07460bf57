package service

import (
	"context"
	"errors"
	"strings"

	"gymsheet/training-app/internal/domain"
	"gymsheet/training-app/internal/pagination"
	"gymsheet/training-app/internal/pkg/dbctx"
	"gymsheet/training-app/internal/repository"
)

// defaultRest is stored on a slot when the payload omits the rest time.
const defaultRest = "60s"

// ExerciseConfigurationInput is one concrete exercise assignment inside a
// slot. ExerciseID must reference a catalog exercise; MethodID, when
// present, must reference a catalog method.
type ExerciseConfigurationInput struct {
	ExerciseID uint
	MethodID   *uint
	Series     string
	Reps       string
}

// ExerciseMethodInput is one slot of a group creation payload. Rest
// defaults to "60s" and Observations to "" when absent.
type ExerciseMethodInput struct {
	Rest                   *string
	Observations           *string
	ExerciseConfigurations []ExerciseConfigurationInput
}

// CreateGroupInput is the full composite creation payload. An omitted or
// empty ExerciseMethods slice creates a group with zero slots.
type CreateGroupInput struct {
	Name            string
	PublicName      *string
	CategoryID      uint
	ExerciseMethods []ExerciseMethodInput
}

// UpdateGroupInput touches group metadata only; slots and configurations
// are edited through their own operations.
type UpdateGroupInput struct {
	Name       *string
	PublicName *string
}

// UpdateConfigurationInput is a partial configuration edit. ClearMethod
// removes the optional method reference.
type UpdateConfigurationInput struct {
	ExerciseID  *uint
	MethodID    *uint
	ClearMethod bool
	Series      *string
	Reps        *string
}

// GroupService is the composition engine for exercise groups: it creates,
// updates and deletes a group and its ordered slot/configuration
// descendants as one logical unit, and serves the canonical full graph
// used by every read path.
type GroupService interface {
	ListCategories(ctx context.Context) ([]domain.ExerciseGroupCategory, error)

	CreateGroup(ctx context.Context, input CreateGroupInput) (*domain.ExerciseGroup, error)
	UpdateGroup(ctx context.Context, id uint, input UpdateGroupInput) (*domain.ExerciseGroup, error)
	DeleteGroup(ctx context.Context, id uint) error
	GetGroupFull(ctx context.Context, id uint) (*domain.ExerciseGroup, error)
	ListGroups(ctx context.Context, page pagination.Params, categoryID *uint) ([]domain.ExerciseGroup, int64, error)

	AddExerciseMethod(ctx context.Context, groupID uint, input ExerciseMethodInput) (*domain.ExerciseGroup, error)
	DeleteExerciseMethod(ctx context.Context, id uint) error

	GetConfigurationFull(ctx context.Context, id uint) (*domain.ExerciseConfiguration, error)
	UpdateConfiguration(ctx context.Context, id uint, input UpdateConfigurationInput) (*domain.ExerciseConfiguration, error)
	DeleteConfiguration(ctx context.Context, id uint) error
}

type groupService struct {
	tx           repository.TxRunner
	groupRepo    repository.ExerciseGroupRepository
	categoryRepo repository.CategoryRepository
	exerciseRepo repository.ExerciseRepository
	methodRepo   repository.MethodRepository
}

// NewGroupService creates a new instance of groupService.
func NewGroupService(
	tx repository.TxRunner,
	groupRepo repository.ExerciseGroupRepository,
	categoryRepo repository.CategoryRepository,
	exerciseRepo repository.ExerciseRepository,
	methodRepo repository.MethodRepository,
) GroupService {
	return &groupService{
		tx:           tx,
		groupRepo:    groupRepo,
		categoryRepo: categoryRepo,
		exerciseRepo: exerciseRepo,
		methodRepo:   methodRepo,
	}
}

func (s *groupService) ListCategories(ctx context.Context) ([]domain.ExerciseGroupCategory, error) {
	return s.categoryRepo.List(dbctx.New(ctx))
}

// CreateGroup persists the group row first, then its slots in payload
// order (order = index + 1), then each slot's configurations. The whole
// composite write runs in one transaction, so a reference failure on the
// Nth configuration undoes every earlier insert.
func (s *groupService) CreateGroup(ctx context.Context, input CreateGroupInput) (*domain.ExerciseGroup, error) {
	if err := validateGroupInput(input); err != nil {
		return nil, err
	}

	var created *domain.ExerciseGroup
	err := s.tx.RunInTx(ctx, func(dbc dbctx.Context) error {
		ok, err := s.categoryRepo.Exists(dbc, input.CategoryID)
		if err != nil {
			return err
		}
		if !ok {
			return newReferenceError("category", input.CategoryID)
		}

		group := &domain.ExerciseGroup{
			Name:       strings.TrimSpace(input.Name),
			PublicName: input.PublicName,
			CategoryID: input.CategoryID,
		}
		if err := s.groupRepo.Create(dbc, group); err != nil {
			return err
		}

		for i, methodInput := range input.ExerciseMethods {
			if _, err := s.createSlot(dbc, group.ID, i+1, methodInput); err != nil {
				return err
			}
		}

		created, err = s.groupRepo.GetFullByID(dbc, group.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// createSlot persists one slot and its configurations. The slot row must
// exist before its configurations are written.
func (s *groupService) createSlot(dbc dbctx.Context, groupID uint, order int, input ExerciseMethodInput) (*domain.ExerciseMethod, error) {
	rest := defaultRest
	if input.Rest != nil {
		rest = *input.Rest
	}
	observations := ""
	if input.Observations != nil {
		observations = *input.Observations
	}

	method := &domain.ExerciseMethod{
		ExerciseGroupID: groupID,
		Rest:            rest,
		Observations:    observations,
		Order:           order,
	}
	if err := s.groupRepo.CreateMethod(dbc, method); err != nil {
		return nil, err
	}

	for _, cfgInput := range input.ExerciseConfigurations {
		if err := s.checkConfigurationRefs(dbc, cfgInput.ExerciseID, cfgInput.MethodID); err != nil {
			return nil, err
		}
		cfg := &domain.ExerciseConfiguration{
			ExerciseMethodID: method.ID,
			ExerciseID:       cfgInput.ExerciseID,
			MethodID:         cfgInput.MethodID,
			Series:           cfgInput.Series,
			Reps:             cfgInput.Reps,
		}
		if err := s.groupRepo.CreateConfiguration(dbc, cfg); err != nil {
			return nil, err
		}
	}
	return method, nil
}

func (s *groupService) checkConfigurationRefs(dbc dbctx.Context, exerciseID uint, methodID *uint) error {
	ok, err := s.exerciseRepo.Exists(dbc, exerciseID)
	if err != nil {
		return err
	}
	if !ok {
		return newReferenceError("exercise", exerciseID)
	}
	if methodID != nil {
		ok, err := s.methodRepo.Exists(dbc, *methodID)
		if err != nil {
			return err
		}
		if !ok {
			return newReferenceError("method", *methodID)
		}
	}
	return nil
}

// UpdateGroup changes group metadata only: slots and configurations are
// never touched here.
func (s *groupService) UpdateGroup(ctx context.Context, id uint, input UpdateGroupInput) (*domain.ExerciseGroup, error) {
	dbc := dbctx.New(ctx)

	group, err := s.groupRepo.GetByID(dbc, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, newValidationError("name", "must be a non-empty string")
		}
		group.Name = name
	}
	if input.PublicName != nil {
		group.PublicName = input.PublicName
	}

	if err := s.groupRepo.Update(dbc, group); err != nil {
		return nil, err
	}
	return s.groupRepo.GetFullByID(dbc, id)
}

// DeleteGroup cascades to every descendant slot and configuration. A group
// still linked by a training sheet cannot be deleted.
func (s *groupService) DeleteGroup(ctx context.Context, id uint) error {
	err := s.tx.RunInTx(ctx, func(dbc dbctx.Context) error {
		inUse, err := s.groupRepo.ReferencedBySheet(dbc, id)
		if err != nil {
			return err
		}
		if inUse {
			return ErrGroupInUse
		}
		return s.groupRepo.Delete(dbc, id)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return ErrGroupNotFound
	}
	return err
}

// GetGroupFull returns the canonical full graph, or (nil, nil) when the id
// does not exist. Callers surface the not-found response.
func (s *groupService) GetGroupFull(ctx context.Context, id uint) (*domain.ExerciseGroup, error) {
	group, err := s.groupRepo.GetFullByID(dbctx.New(ctx), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return group, nil
}

func (s *groupService) ListGroups(ctx context.Context, page pagination.Params, categoryID *uint) ([]domain.ExerciseGroup, int64, error) {
	return s.groupRepo.List(dbctx.New(ctx), page, categoryID)
}

// AddExerciseMethod appends one slot to an existing group, ranked after
// the current highest order. Existing slots are never renumbered.
func (s *groupService) AddExerciseMethod(ctx context.Context, groupID uint, input ExerciseMethodInput) (*domain.ExerciseGroup, error) {
	if err := validateSlotInput(input, "exerciseMethod"); err != nil {
		return nil, err
	}

	var updated *domain.ExerciseGroup
	err := s.tx.RunInTx(ctx, func(dbc dbctx.Context) error {
		if _, err := s.groupRepo.GetByID(dbc, groupID); err != nil {
			return err
		}

		maxOrder, err := s.groupRepo.MaxOrder(dbc, groupID)
		if err != nil {
			return err
		}
		if _, err := s.createSlot(dbc, groupID, maxOrder+1, input); err != nil {
			return err
		}

		updated, err = s.groupRepo.GetFullByID(dbc, groupID)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return updated, nil
}

// DeleteExerciseMethod removes one slot and its configurations. Sibling
// slots keep their order values, so gaps are expected.
func (s *groupService) DeleteExerciseMethod(ctx context.Context, id uint) error {
	err := s.tx.RunInTx(ctx, func(dbc dbctx.Context) error {
		return s.groupRepo.DeleteMethod(dbc, id)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return ErrExerciseMethodNotFound
	}
	return err
}

// GetConfigurationFull returns the configuration with its exercise and
// method references resolved, or (nil, nil) when absent.
func (s *groupService) GetConfigurationFull(ctx context.Context, id uint) (*domain.ExerciseConfiguration, error) {
	cfg, err := s.groupRepo.GetConfigurationFull(dbctx.New(ctx), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return cfg, nil
}

func (s *groupService) UpdateConfiguration(ctx context.Context, id uint, input UpdateConfigurationInput) (*domain.ExerciseConfiguration, error) {
	if input.Series != nil && strings.TrimSpace(*input.Series) == "" {
		return nil, newValidationError("series", "must be a non-empty string")
	}
	if input.Reps != nil && strings.TrimSpace(*input.Reps) == "" {
		return nil, newValidationError("reps", "must be a non-empty string")
	}

	var updated *domain.ExerciseConfiguration
	err := s.tx.RunInTx(ctx, func(dbc dbctx.Context) error {
		cfg, err := s.groupRepo.GetConfigurationByID(dbc, id)
		if err != nil {
			return err
		}

		if input.ExerciseID != nil {
			cfg.ExerciseID = *input.ExerciseID
		}
		switch {
		case input.ClearMethod:
			cfg.MethodID = nil
		case input.MethodID != nil:
			cfg.MethodID = input.MethodID
		}
		if err := s.checkConfigurationRefs(dbc, cfg.ExerciseID, cfg.MethodID); err != nil {
			return err
		}

		if input.Series != nil {
			cfg.Series = *input.Series
		}
		if input.Reps != nil {
			cfg.Reps = *input.Reps
		}

		if err := s.groupRepo.UpdateConfiguration(dbc, cfg); err != nil {
			return err
		}
		updated, err = s.groupRepo.GetConfigurationFull(dbc, id)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrConfigurationNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *groupService) DeleteConfiguration(ctx context.Context, id uint) error {
	err := s.groupRepo.DeleteConfiguration(dbctx.New(ctx), id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrConfigurationNotFound
	}
	return err
}

// --- payload shape validation ---

func validateGroupInput(input CreateGroupInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return newValidationError("name", "must be a non-empty string")
	}
	if input.CategoryID == 0 {
		return newValidationError("categoryId", "must be a positive integer")
	}
	for _, methodInput := range input.ExerciseMethods {
		if err := validateSlotInput(methodInput, "exerciseMethods"); err != nil {
			return err
		}
	}
	return nil
}

func validateSlotInput(input ExerciseMethodInput, field string) error {
	for _, cfg := range input.ExerciseConfigurations {
		if cfg.ExerciseID == 0 {
			return newValidationError(field+".exerciseId", "must be a positive integer")
		}
		if strings.TrimSpace(cfg.Series) == "" {
			return newValidationError(field+".series", "must be a non-empty string")
		}
		if strings.TrimSpace(cfg.Reps) == "" {
			return newValidationError(field+".reps", "must be a non-empty string")
		}
	}
	return nil
}

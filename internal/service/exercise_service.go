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

// CreateExerciseInput carries the fields of a new catalog exercise.
// Description is the only required field.
type CreateExerciseInput struct {
	Name        *string
	Description string
	VideoURL    *string
	HasMethod   *bool
}

// UpdateExerciseInput is a partial update; nil fields are left unchanged.
type UpdateExerciseInput struct {
	Name        *string
	Description *string
	VideoURL    *string
	HasMethod   *bool
}

// ExerciseService is flat CRUD over the exercise catalog. Exercises are
// only referenced by configurations; composing a group never mutates them.
type ExerciseService interface {
	CreateExercise(ctx context.Context, input CreateExerciseInput) (*domain.Exercise, error)
	GetExerciseByID(ctx context.Context, id uint) (*domain.Exercise, error)
	ListExercises(ctx context.Context, page pagination.Params) ([]domain.Exercise, int64, error)
	UpdateExercise(ctx context.Context, id uint, input UpdateExerciseInput) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, id uint) error
}

type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{exerciseRepo: exerciseRepo}
}

func (s *exerciseService) CreateExercise(ctx context.Context, input CreateExerciseInput) (*domain.Exercise, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, newValidationError("description", "must be a non-empty string")
	}

	hasMethod := true
	if input.HasMethod != nil {
		hasMethod = *input.HasMethod
	}

	exercise := &domain.Exercise{
		Name:        input.Name,
		Description: description,
		VideoURL:    input.VideoURL,
		HasMethod:   hasMethod,
	}
	if err := s.exerciseRepo.Create(dbctx.New(ctx), exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseService) GetExerciseByID(ctx context.Context, id uint) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(dbctx.New(ctx), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseService) ListExercises(ctx context.Context, page pagination.Params) ([]domain.Exercise, int64, error) {
	return s.exerciseRepo.List(dbctx.New(ctx), page)
}

func (s *exerciseService) UpdateExercise(ctx context.Context, id uint, input UpdateExerciseInput) (*domain.Exercise, error) {
	dbc := dbctx.New(ctx)

	exercise, err := s.exerciseRepo.GetByID(dbc, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if description == "" {
			return nil, newValidationError("description", "must be a non-empty string")
		}
		exercise.Description = description
	}
	if input.Name != nil {
		exercise.Name = input.Name
	}
	if input.VideoURL != nil {
		exercise.VideoURL = input.VideoURL
	}
	if input.HasMethod != nil {
		exercise.HasMethod = *input.HasMethod
	}

	if err := s.exerciseRepo.Update(dbc, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseService) DeleteExercise(ctx context.Context, id uint) error {
	err := s.exerciseRepo.Delete(dbctx.New(ctx), id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrExerciseNotFound
	}
	return err
}

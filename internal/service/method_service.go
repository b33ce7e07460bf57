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

// CreateMethodInput carries a new training method; name and description
// are both required.
type CreateMethodInput struct {
	Name        string
	Description string
}

// UpdateMethodInput is a partial update; nil fields are left unchanged.
type UpdateMethodInput struct {
	Name        *string
	Description *string
}

// MethodService is flat CRUD over the training method catalog.
type MethodService interface {
	CreateMethod(ctx context.Context, input CreateMethodInput) (*domain.Method, error)
	GetMethodByID(ctx context.Context, id uint) (*domain.Method, error)
	ListMethods(ctx context.Context, page pagination.Params) ([]domain.Method, int64, error)
	UpdateMethod(ctx context.Context, id uint, input UpdateMethodInput) (*domain.Method, error)
	DeleteMethod(ctx context.Context, id uint) error
}

type methodService struct {
	methodRepo repository.MethodRepository
}

// NewMethodService creates a new instance of methodService.
func NewMethodService(methodRepo repository.MethodRepository) MethodService {
	return &methodService{methodRepo: methodRepo}
}

func (s *methodService) CreateMethod(ctx context.Context, input CreateMethodInput) (*domain.Method, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, newValidationError("name", "must be a non-empty string")
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, newValidationError("description", "must be a non-empty string")
	}

	method := &domain.Method{Name: name, Description: description}
	if err := s.methodRepo.Create(dbctx.New(ctx), method); err != nil {
		return nil, err
	}
	return method, nil
}

func (s *methodService) GetMethodByID(ctx context.Context, id uint) (*domain.Method, error) {
	method, err := s.methodRepo.GetByID(dbctx.New(ctx), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMethodNotFound
		}
		return nil, err
	}
	return method, nil
}

func (s *methodService) ListMethods(ctx context.Context, page pagination.Params) ([]domain.Method, int64, error) {
	return s.methodRepo.List(dbctx.New(ctx), page)
}

func (s *methodService) UpdateMethod(ctx context.Context, id uint, input UpdateMethodInput) (*domain.Method, error) {
	dbc := dbctx.New(ctx)

	method, err := s.methodRepo.GetByID(dbc, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMethodNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, newValidationError("name", "must be a non-empty string")
		}
		method.Name = name
	}
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if description == "" {
			return nil, newValidationError("description", "must be a non-empty string")
		}
		method.Description = description
	}

	if err := s.methodRepo.Update(dbc, method); err != nil {
		return nil, err
	}
	return method, nil
}

func (s *methodService) DeleteMethod(ctx context.Context, id uint) error {
	err := s.methodRepo.Delete(dbctx.New(ctx), id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrMethodNotFound
	}
	return err
}

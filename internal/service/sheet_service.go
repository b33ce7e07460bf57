package service

import (
	"context"
	"errors"
	"strings"

	"gymsheet/training-app/internal/domain"
	"gymsheet/training-app/internal/pagination"
	"gymsheet/training-app/internal/pkg/dbctx"
	"gymsheet/training-app/internal/pkg/logger"
	"gymsheet/training-app/internal/repository"
	"gymsheet/training-app/internal/storage"
)

// TrainingDayInput links one pre-existing group into a sheet. Groups are
// never created inline here, only referenced.
type TrainingDayInput struct {
	ExerciseGroupID uint
}

// CreateSheetInput is the composite sheet creation payload. Day sequence
// is the array position (day 1..N).
type CreateSheetInput struct {
	Name         string
	PublicName   *string
	Slug         *string
	PDFPath      *string
	TrainingDays []TrainingDayInput
}

// UpdateSheetInput is a partial metadata update; nil fields are left
// unchanged. A new PDFPath replaces the stored file.
type UpdateSheetInput struct {
	Name       *string
	PublicName *string
	Slug       *string
	PDFPath    *string
}

// SheetService composes training sheets out of existing exercise groups
// and serves the canonical full sheet graph.
type SheetService interface {
	CreateSheet(ctx context.Context, input CreateSheetInput) (*domain.TrainingSheet, error)
	UpdateSheet(ctx context.Context, id uint, input UpdateSheetInput) (*domain.TrainingSheet, error)
	DeleteSheet(ctx context.Context, id uint) error
	GetSheetFull(ctx context.Context, id uint) (*domain.TrainingSheet, error)
	GetSheetBySlug(ctx context.Context, slug string) (*domain.TrainingSheet, error)
	ListSheets(ctx context.Context, page pagination.Params) ([]domain.TrainingSheet, int64, error)
	ListSheetIDs(ctx context.Context, page pagination.Params) ([]uint, int64, error)
}

type sheetService struct {
	tx          repository.TxRunner
	sheetRepo   repository.TrainingSheetRepository
	groupRepo   repository.ExerciseGroupRepository
	fileStorage storage.FileStorage
	log         *logger.Logger
}

// NewSheetService creates a new instance of sheetService.
func NewSheetService(
	tx repository.TxRunner,
	sheetRepo repository.TrainingSheetRepository,
	groupRepo repository.ExerciseGroupRepository,
	fileStorage storage.FileStorage,
	logg *logger.Logger,
) SheetService {
	return &sheetService{
		tx:          tx,
		sheetRepo:   sheetRepo,
		groupRepo:   groupRepo,
		fileStorage: fileStorage,
		log:         logg.With("service", "sheetService"),
	}
}

// CreateSheet persists the sheet row, then one day link per entry in
// payload order, all in a single transaction. Every referenced group must
// already exist.
func (s *sheetService) CreateSheet(ctx context.Context, input CreateSheetInput) (*domain.TrainingSheet, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, newValidationError("name", "must be a non-empty string")
	}
	for _, day := range input.TrainingDays {
		if day.ExerciseGroupID == 0 {
			return nil, newValidationError("trainingDays.exerciseGroupId", "must be a positive integer")
		}
	}

	var created *domain.TrainingSheet
	err := s.tx.RunInTx(ctx, func(dbc dbctx.Context) error {
		if input.Slug != nil {
			taken, err := s.sheetRepo.SlugTaken(dbc, *input.Slug, 0)
			if err != nil {
				return err
			}
			if taken {
				return ErrSlugTaken
			}
		}

		sheet := &domain.TrainingSheet{
			Name:       strings.TrimSpace(input.Name),
			PublicName: input.PublicName,
			Slug:       input.Slug,
			PDFPath:    input.PDFPath,
		}
		if err := s.sheetRepo.Create(dbc, sheet); err != nil {
			return err
		}

		for _, dayInput := range input.TrainingDays {
			if _, err := s.groupRepo.GetByID(dbc, dayInput.ExerciseGroupID); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return newReferenceError("exerciseGroup", dayInput.ExerciseGroupID)
				}
				return err
			}
			day := &domain.TrainingDay{
				TrainingSheetID: sheet.ID,
				ExerciseGroupID: dayInput.ExerciseGroupID,
			}
			if err := s.sheetRepo.CreateDay(dbc, day); err != nil {
				return err
			}
		}

		var err error
		created, err = s.sheetRepo.GetFullByID(dbc, sheet.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateSheet edits sheet metadata. When PDFPath replaces a previously
// stored file, the new path is committed first and the old object is
// released best-effort afterwards: a crash between the two steps leaves an
// orphaned object to garbage-collect, never a record pointing at a removed
// file.
func (s *sheetService) UpdateSheet(ctx context.Context, id uint, input UpdateSheetInput) (*domain.TrainingSheet, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, newValidationError("name", "must be a non-empty string")
	}

	var replacedPDF *string
	var updated *domain.TrainingSheet
	err := s.tx.RunInTx(ctx, func(dbc dbctx.Context) error {
		sheet, err := s.sheetRepo.GetByID(dbc, id)
		if err != nil {
			return err
		}

		if input.Slug != nil && (sheet.Slug == nil || *sheet.Slug != *input.Slug) {
			taken, err := s.sheetRepo.SlugTaken(dbc, *input.Slug, id)
			if err != nil {
				return err
			}
			if taken {
				return ErrSlugTaken
			}
			sheet.Slug = input.Slug
		}

		if input.Name != nil {
			sheet.Name = strings.TrimSpace(*input.Name)
		}
		if input.PublicName != nil {
			sheet.PublicName = input.PublicName
		}
		if input.PDFPath != nil {
			if sheet.PDFPath != nil && *sheet.PDFPath != *input.PDFPath {
				replacedPDF = sheet.PDFPath
			}
			sheet.PDFPath = input.PDFPath
		}

		if err := s.sheetRepo.Update(dbc, sheet); err != nil {
			return err
		}
		updated, err = s.sheetRepo.GetFullByID(dbc, id)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSheetNotFound
		}
		return nil, err
	}

	if replacedPDF != nil && s.fileStorage != nil {
		if err := s.fileStorage.DeleteObject(ctx, *replacedPDF); err != nil {
			s.log.Warn("failed to release replaced sheet pdf", "sheetId", id, "objectKey", *replacedPDF, "error", err)
		}
	}
	return updated, nil
}

// DeleteSheet removes the sheet and its day links; referenced groups stay
// untouched. A stored PDF is released best-effort after the commit.
func (s *sheetService) DeleteSheet(ctx context.Context, id uint) error {
	var pdfPath *string
	err := s.tx.RunInTx(ctx, func(dbc dbctx.Context) error {
		sheet, err := s.sheetRepo.GetByID(dbc, id)
		if err != nil {
			return err
		}
		pdfPath = sheet.PDFPath
		return s.sheetRepo.Delete(dbc, id)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSheetNotFound
		}
		return err
	}

	if pdfPath != nil && s.fileStorage != nil {
		if err := s.fileStorage.DeleteObject(ctx, *pdfPath); err != nil {
			s.log.Warn("failed to release deleted sheet pdf", "sheetId", id, "objectKey", *pdfPath, "error", err)
		}
	}
	return nil
}

// GetSheetFull returns the canonical full graph, or (nil, nil) when the id
// does not exist.
func (s *sheetService) GetSheetFull(ctx context.Context, id uint) (*domain.TrainingSheet, error) {
	sheet, err := s.sheetRepo.GetFullByID(dbctx.New(ctx), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return sheet, nil
}

// GetSheetBySlug serves the public slug fetch with the same full graph
// shape, or (nil, nil) when the slug is unknown.
func (s *sheetService) GetSheetBySlug(ctx context.Context, slug string) (*domain.TrainingSheet, error) {
	sheet, err := s.sheetRepo.GetFullBySlug(dbctx.New(ctx), slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return sheet, nil
}

func (s *sheetService) ListSheets(ctx context.Context, page pagination.Params) ([]domain.TrainingSheet, int64, error) {
	return s.sheetRepo.List(dbctx.New(ctx), page)
}

func (s *sheetService) ListSheetIDs(ctx context.Context, page pagination.Params) ([]uint, int64, error) {
	return s.sheetRepo.ListIDs(dbctx.New(ctx), page)
}

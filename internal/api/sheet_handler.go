package api

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gymsheet/training-app/internal/domain"
	"gymsheet/training-app/internal/pkg/logger"
	"gymsheet/training-app/internal/service"
	"gymsheet/training-app/internal/storage"
)

// SheetHandler holds the sheet composition engine and the file-storage
// collaborator used for PDF replacement.
type SheetHandler struct {
	sheetService service.SheetService
	fileStorage  storage.FileStorage
	log          *logger.Logger
}

// NewSheetHandler creates a new SheetHandler.
func NewSheetHandler(sheetService service.SheetService, fileStorage storage.FileStorage, logg *logger.Logger) *SheetHandler {
	return &SheetHandler{sheetService: sheetService, fileStorage: fileStorage, log: logg}
}

// --- DTOs ---

type TrainingDayRequest struct {
	ExerciseGroupID uint `json:"exerciseGroupId" binding:"required,gt=0"`
}

// CreateSheetRequest defines the composite sheet payload: metadata plus
// one entry per day, each linking a pre-existing group.
type CreateSheetRequest struct {
	Name         string               `json:"name" binding:"required"`
	PublicName   *string              `json:"publicName"`
	Slug         *string              `json:"slug"`
	TrainingDays []TrainingDayRequest `json:"trainingDays" binding:"omitempty,dive"`
}

type UpdateSheetRequest struct {
	Name       *string `json:"name"`
	PublicName *string `json:"publicName"`
	Slug       *string `json:"slug"`
}

type TrainingDayResponse struct {
	ID            uint           `json:"id"`
	ExerciseGroup *GroupResponse `json:"exerciseGroup,omitempty"`
}

// SheetResponse is the canonical full sheet shape: days in sequence, each
// expanded down to its group's configurations.
type SheetResponse struct {
	ID           uint                  `json:"id"`
	Name         string                `json:"name"`
	PublicName   *string               `json:"publicName,omitempty"`
	Slug         *string               `json:"slug,omitempty"`
	PDFPath      *string               `json:"pdfPath,omitempty"`
	TrainingDays []TrainingDayResponse `json:"trainingDays"`
	CreatedAt    time.Time             `json:"createdAt"`
}

// MapSheetToResponse converts a full domain.TrainingSheet graph to its
// canonical response shape.
func MapSheetToResponse(sheet *domain.TrainingSheet) SheetResponse {
	if sheet == nil {
		return SheetResponse{}
	}
	days := make([]TrainingDayResponse, len(sheet.TrainingDays))
	for i := range sheet.TrainingDays {
		day := &sheet.TrainingDays[i]
		days[i] = TrainingDayResponse{ID: day.ID}
		if day.ExerciseGroup != nil {
			group := MapGroupToResponse(day.ExerciseGroup)
			days[i].ExerciseGroup = &group
		}
	}
	return SheetResponse{
		ID:           sheet.ID,
		Name:         sheet.Name,
		PublicName:   sheet.PublicName,
		Slug:         sheet.Slug,
		PDFPath:      sheet.PDFPath,
		TrainingDays: days,
		CreatedAt:    sheet.CreatedAt,
	}
}

func mapSheetsToResponse(sheets []domain.TrainingSheet) []SheetResponse {
	responses := make([]SheetResponse, len(sheets))
	for i := range sheets {
		responses[i] = MapSheetToResponse(&sheets[i])
	}
	return responses
}

// --- Handler Methods ---

func (h *SheetHandler) CreateSheet(c *gin.Context) {
	var req CreateSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	days := make([]service.TrainingDayInput, len(req.TrainingDays))
	for i, day := range req.TrainingDays {
		days[i] = service.TrainingDayInput{ExerciseGroupID: day.ExerciseGroupID}
	}

	sheet, err := h.sheetService.CreateSheet(c.Request.Context(), service.CreateSheetInput{
		Name:         req.Name,
		PublicName:   req.PublicName,
		Slug:         req.Slug,
		TrainingDays: days,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, MapSheetToResponse(sheet))
}

func (h *SheetHandler) GetSheet(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	sheet, err := h.sheetService.GetSheetFull(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	if sheet == nil {
		abortWithError(c, http.StatusNotFound, "Training sheet not found.")
		return
	}
	c.JSON(http.StatusOK, MapSheetToResponse(sheet))
}

func (h *SheetHandler) GetSheetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	sheet, err := h.sheetService.GetSheetBySlug(c.Request.Context(), slug)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	if sheet == nil {
		abortWithError(c, http.StatusNotFound, "Training sheet not found.")
		return
	}
	c.JSON(http.StatusOK, MapSheetToResponse(sheet))
}

func (h *SheetHandler) ListSheets(c *gin.Context) {
	page, ok := parsePageParams(c)
	if !ok {
		return
	}
	sheets, total, err := h.sheetService.ListSheets(c.Request.Context(), page)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, newListResponse(mapSheetsToResponse(sheets), total, page))
}

func (h *SheetHandler) ListSheetIDs(c *gin.Context) {
	page, ok := parsePageParams(c)
	if !ok {
		return
	}
	ids, total, err := h.sheetService.ListSheetIDs(c.Request.Context(), page)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, newListResponse(ids, total, page))
}

func (h *SheetHandler) UpdateSheet(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UpdateSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	sheet, err := h.sheetService.UpdateSheet(c.Request.Context(), id, service.UpdateSheetInput{
		Name:       req.Name,
		PublicName: req.PublicName,
		Slug:       req.Slug,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, MapSheetToResponse(sheet))
}

// ReplaceSheetPDF accepts a multipart PDF upload, stores it, and commits
// the new path through the engine, which releases the previous object.
func (h *SheetHandler) ReplaceSheetPDF(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "A 'file' form field is required.")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Could not read the uploaded file.")
		return
	}
	defer file.Close()

	objectKey := fmt.Sprintf("sheets/%d/%s%s", id, uuid.New().String(), filepath.Ext(fileHeader.Filename))
	storedPath, err := h.fileStorage.Upload(c.Request.Context(), objectKey, "application/pdf", file, fileHeader.Size)
	if err != nil {
		h.log.Error("pdf upload failed", "sheetId", id, "error", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to store the uploaded file.")
		return
	}

	sheet, err := h.sheetService.UpdateSheet(c.Request.Context(), id, service.UpdateSheetInput{
		PDFPath: &storedPath,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, MapSheetToResponse(sheet))
}

// GetSheetPDFURL returns a temporary download URL for the stored PDF.
func (h *SheetHandler) GetSheetPDFURL(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	sheet, err := h.sheetService.GetSheetFull(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	if sheet == nil {
		abortWithError(c, http.StatusNotFound, "Training sheet not found.")
		return
	}
	if sheet.PDFPath == nil {
		abortWithError(c, http.StatusNotFound, "Training sheet has no stored PDF.")
		return
	}

	url, err := h.fileStorage.GeneratePresignedDownloadURL(c.Request.Context(), *sheet.PDFPath, storage.DefaultPresignedURLExpiry)
	if err != nil {
		h.log.Error("pdf presign failed", "sheetId", id, "error", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to generate download URL.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *SheetHandler) DeleteSheet(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.sheetService.DeleteSheet(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

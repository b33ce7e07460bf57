package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gymsheet/training-app/internal/domain"
	"gymsheet/training-app/internal/pkg/logger"
	"gymsheet/training-app/internal/service"
)

// ExerciseHandler holds the exercise catalog service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
	log             *logger.Logger
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService, logg *logger.Logger) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService, log: logg}
}

// --- DTOs ---

// CreateExerciseRequest defines the expected JSON for creating an exercise.
type CreateExerciseRequest struct {
	Name        *string `json:"name"`
	Description string  `json:"description" binding:"required"`
	VideoURL    *string `json:"videoUrl" binding:"omitempty,url"`
	HasMethod   *bool   `json:"hasMethod"`
}

// UpdateExerciseRequest is a partial update; omitted fields stay unchanged.
type UpdateExerciseRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	VideoURL    *string `json:"videoUrl" binding:"omitempty,url"`
	HasMethod   *bool   `json:"hasMethod"`
}

// ExerciseResponse is the DTO for returning exercise details.
type ExerciseResponse struct {
	ID          uint      `json:"id"`
	Name        *string   `json:"name,omitempty"`
	Description string    `json:"description"`
	VideoURL    *string   `json:"videoUrl,omitempty"`
	HasMethod   bool      `json:"hasMethod"`
	CreatedAt   time.Time `json:"createdAt"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:          ex.ID,
		Name:        ex.Name,
		Description: ex.Description,
		VideoURL:    ex.VideoURL,
		HasMethod:   ex.HasMethod,
		CreatedAt:   ex.CreatedAt,
	}
}

func mapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		responses[i] = MapExerciseToResponse(&exercises[i])
	}
	return responses
}

// --- Handler Methods ---

func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), service.CreateExerciseInput{
		Name:        req.Name,
		Description: req.Description,
		VideoURL:    req.VideoURL,
		HasMethod:   req.HasMethod,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	exercise, err := h.exerciseService.GetExerciseByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	page, ok := parsePageParams(c)
	if !ok {
		return
	}
	exercises, total, err := h.exerciseService.ListExercises(c.Request.Context(), page)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, newListResponse(mapExercisesToResponse(exercises), total, page))
}

func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UpdateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.exerciseService.UpdateExercise(c.Request.Context(), id, service.UpdateExerciseInput{
		Name:        req.Name,
		Description: req.Description,
		VideoURL:    req.VideoURL,
		HasMethod:   req.HasMethod,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.exerciseService.DeleteExercise(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

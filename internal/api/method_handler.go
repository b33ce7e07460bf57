package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gymsheet/training-app/internal/domain"
	"gymsheet/training-app/internal/pkg/logger"
	"gymsheet/training-app/internal/service"
)

// MethodHandler holds the training method catalog service dependency.
type MethodHandler struct {
	methodService service.MethodService
	log           *logger.Logger
}

// NewMethodHandler creates a new MethodHandler.
func NewMethodHandler(methodService service.MethodService, logg *logger.Logger) *MethodHandler {
	return &MethodHandler{methodService: methodService, log: logg}
}

// --- DTOs ---

type CreateMethodRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type UpdateMethodRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// MethodResponse is the DTO for returning method details.
type MethodResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// MapMethodToResponse converts a domain.Method to MethodResponse.
func MapMethodToResponse(m *domain.Method) MethodResponse {
	if m == nil {
		return MethodResponse{}
	}
	return MethodResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}

func mapMethodsToResponse(methods []domain.Method) []MethodResponse {
	responses := make([]MethodResponse, len(methods))
	for i := range methods {
		responses[i] = MapMethodToResponse(&methods[i])
	}
	return responses
}

// --- Handler Methods ---

func (h *MethodHandler) CreateMethod(c *gin.Context) {
	var req CreateMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	method, err := h.methodService.CreateMethod(c.Request.Context(), service.CreateMethodInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, MapMethodToResponse(method))
}

func (h *MethodHandler) GetMethod(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	method, err := h.methodService.GetMethodByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, MapMethodToResponse(method))
}

func (h *MethodHandler) ListMethods(c *gin.Context) {
	page, ok := parsePageParams(c)
	if !ok {
		return
	}
	methods, total, err := h.methodService.ListMethods(c.Request.Context(), page)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, newListResponse(mapMethodsToResponse(methods), total, page))
}

func (h *MethodHandler) UpdateMethod(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UpdateMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	method, err := h.methodService.UpdateMethod(c.Request.Context(), id, service.UpdateMethodInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, MapMethodToResponse(method))
}

func (h *MethodHandler) DeleteMethod(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.methodService.DeleteMethod(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

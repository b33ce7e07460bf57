package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gymsheet/training-app/internal/pagination"
	"gymsheet/training-app/internal/pkg/logger"
	"gymsheet/training-app/internal/service"
)

func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// parseIDParam reads a positive integer :id path parameter.
func parseIDParam(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		abortWithError(c, http.StatusBadRequest, "Invalid id parameter.")
		return 0, false
	}
	return uint(n), true
}

// parsePageParams normalizes the page/pageSize query parameters. Invalid
// input is surfaced as a validation error, never silently defaulted.
func parsePageParams(c *gin.Context) (pagination.Params, bool) {
	page, err := pagination.Parse(c.Query("page"), c.Query("pageSize"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return pagination.Params{}, false
	}
	return page, true
}

// ListResponse is the envelope shared by every paginated list endpoint.
type ListResponse[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

func newListResponse[T any](items []T, total int64, page pagination.Params) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{
		Items:    items,
		Total:    total,
		Page:     page.Page,
		PageSize: page.PageSize,
	}
}

// respondServiceError maps the engine's typed errors onto HTTP status
// codes. Status selection lives here, never in the engine.
func respondServiceError(c *gin.Context, logg *logger.Logger, err error) {
	var validationErr *service.ValidationError
	var referenceErr *service.ReferenceError

	switch {
	case errors.As(err, &validationErr):
		abortWithError(c, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &referenceErr):
		abortWithError(c, http.StatusNotFound, referenceErr.Error())
	case errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, service.ErrMethodNotFound),
		errors.Is(err, service.ErrGroupNotFound),
		errors.Is(err, service.ErrExerciseMethodNotFound),
		errors.Is(err, service.ErrConfigurationNotFound),
		errors.Is(err, service.ErrSheetNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrGroupInUse), errors.Is(err, service.ErrSlugTaken):
		abortWithError(c, http.StatusConflict, err.Error())
	default:
		logg.Error("request failed", "path", c.FullPath(), "error", err)
		abortWithError(c, http.StatusInternalServerError, "Internal server error.")
	}
}

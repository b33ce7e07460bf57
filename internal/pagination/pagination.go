// Package pagination normalizes the page/pageSize query parameters and the
// category filter shared by every list endpoint. It is pure input
// normalization and keeps no state.
package pagination

import (
	"errors"
	"strconv"
	"strings"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// CategoryAll is the sentinel a client may send to mean "no category filter".
const CategoryAll = "all"

var (
	ErrInvalidPagination = errors.New("page and pageSize must be numeric")
	ErrInvalidCategory   = errors.New("categoryId must be a positive integer or \"all\"")
)

// Params is the normalized result: Page and PageSize are clamped to sane
// bounds and Skip is the row offset for the underlying query.
type Params struct {
	Page     int
	PageSize int
	Skip     int
}

// Parse normalizes raw page/pageSize values. Empty strings take the
// defaults; non-numeric values are an error the caller must surface as a
// validation failure rather than silently defaulting. Out-of-range numeric
// values are clamped, not rejected.
func Parse(pageRaw, pageSizeRaw string) (Params, error) {
	page := DefaultPage
	if pageRaw != "" {
		n, err := strconv.Atoi(pageRaw)
		if err != nil {
			return Params{}, ErrInvalidPagination
		}
		page = n
	}

	pageSize := DefaultPageSize
	if pageSizeRaw != "" {
		n, err := strconv.Atoi(pageSizeRaw)
		if err != nil {
			return Params{}, ErrInvalidPagination
		}
		pageSize = n
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return Params{
		Page:     page,
		PageSize: pageSize,
		Skip:     (page - 1) * pageSize,
	}, nil
}

// ParseCategoryFilter interprets a raw categoryId value. An absent value or
// the literal "all" means no filter (nil): the caller omits the category
// predicate entirely instead of matching every id. Any other value must be
// a positive integer.
func ParseCategoryFilter(raw string) (*uint, error) {
	if raw == "" || strings.EqualFold(raw, CategoryAll) {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return nil, ErrInvalidCategory
	}
	id := uint(n)
	return &id, nil
}

package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	p, err := Parse("", "")
	require.NoError(t, err)
	assert.Equal(t, Params{Page: 1, PageSize: 10, Skip: 0}, p)
}

func TestParseClamping(t *testing.T) {
	p, err := Parse("0", "500")
	require.NoError(t, err)
	assert.Equal(t, Params{Page: 1, PageSize: 100, Skip: 0}, p)

	p, err = Parse("-2", "0")
	require.NoError(t, err)
	assert.Equal(t, Params{Page: 1, PageSize: 1, Skip: 0}, p)
}

func TestParseSkip(t *testing.T) {
	p, err := Parse("3", "25")
	require.NoError(t, err)
	assert.Equal(t, Params{Page: 3, PageSize: 25, Skip: 50}, p)
}

func TestParseNonNumeric(t *testing.T) {
	_, err := Parse("abc", "10")
	assert.ErrorIs(t, err, ErrInvalidPagination)

	_, err = Parse("1", "ten")
	assert.ErrorIs(t, err, ErrInvalidPagination)
}

func TestParseCategoryFilterNoFilter(t *testing.T) {
	for _, raw := range []string{"", "all", "ALL"} {
		id, err := ParseCategoryFilter(raw)
		require.NoError(t, err, "raw=%q", raw)
		assert.Nil(t, id, "raw=%q", raw)
	}
}

func TestParseCategoryFilterValid(t *testing.T) {
	id, err := ParseCategoryFilter("7")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, uint(7), *id)
}

func TestParseCategoryFilterInvalid(t *testing.T) {
	for _, raw := range []string{"0", "-3", "seven", "1.5"} {
		_, err := ParseCategoryFilter(raw)
		assert.ErrorIs(t, err, ErrInvalidCategory, "raw=%q", raw)
	}
}

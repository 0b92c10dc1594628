package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paramsFor(t *testing.T, query string) PaginationParams {
	t.Helper()
	app := fiber.New()
	var got PaginationParams
	app.Get("/", func(c *fiber.Ctx) error {
		got = GetPaginationParams(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/?"+query, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return got
}

func TestGetPaginationParams(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  PaginationParams
	}{
		{"defaults", "", PaginationParams{Page: 0, Size: 10}},
		{"explicit", "page=2&size=25&search=maria", PaginationParams{Page: 2, Size: 25, Search: "maria"}},
		{"negative page clamps to zero", "page=-1", PaginationParams{Page: 0, Size: 10}},
		{"size outside the allowed set", "size=33", PaginationParams{Page: 0, Size: 10}},
		{"non-numeric values", "page=abc&size=xyz", PaginationParams{Page: 0, Size: 10}},
		{"largest allowed size", "size=100", PaginationParams{Page: 0, Size: 100}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, paramsFor(t, tc.query))
		})
	}
}

func TestCalculatePagination(t *testing.T) {
	meta := CalculatePagination(0, 10, 35)
	assert.Equal(t, 0, meta.CurrentPage)
	assert.Equal(t, 4, meta.TotalPages)
	assert.True(t, meta.HasMore)

	meta = CalculatePagination(3, 10, 35)
	assert.False(t, meta.HasMore)

	meta = CalculatePagination(0, 10, 0)
	assert.Equal(t, 0, meta.TotalPages)
	assert.False(t, meta.HasMore)
}

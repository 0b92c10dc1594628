package utils

import (
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// PaginationParams represents pagination query parameters. Pages are
// zero-indexed: page 0 is the first page.
type PaginationParams struct {
	Page   int    `json:"page"`
	Size   int    `json:"size"`
	Search string `json:"search"`
}

// PaginationMeta contains pagination metadata
type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasMore     bool  `json:"has_more"`
}

// PaginatedResponse represents a paginated API response
type PaginatedResponse struct {
	Success    bool           `json:"success"`
	Message    string         `json:"message"`
	Data       interface{}    `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

// GetPaginationParams extracts pagination parameters from query string
func GetPaginationParams(c *fiber.Ctx) PaginationParams {
	page, _ := strconv.Atoi(c.Query("page", "0"))
	size, _ := strconv.Atoi(c.Query("size", "10"))
	search := c.Query("search", "")

	if page < 0 {
		page = 0
	}

	// Validate size options
	validSizes := []int{10, 25, 50, 100}
	isValidSize := false
	for _, validSize := range validSizes {
		if size == validSize {
			isValidSize = true
			break
		}
	}
	if !isValidSize {
		size = 10
	}

	return PaginationParams{
		Page:   page,
		Size:   size,
		Search: search,
	}
}

// CalculatePagination calculates pagination metadata
func CalculatePagination(page, size int, total int64) PaginationMeta {
	if page < 0 {
		page = 0
	}
	if size < 1 {
		size = 10
	}

	totalPages := int(math.Ceil(float64(total) / float64(size)))

	return PaginationMeta{
		CurrentPage: page,
		PerPage:     size,
		Total:       total,
		TotalPages:  totalPages,
		HasMore:     page+1 < totalPages,
	}
}

// PaginatedResponseBuilder creates a paginated response
func PaginatedResponseBuilder(c *fiber.Ctx, message string, data interface{}, pagination PaginationMeta) error {
	response := PaginatedResponse{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: pagination,
	}

	return c.JSON(response)
}

package handler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"user-management/internal/models"
	"user-management/internal/service"
	"user-management/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const exportDir = "./storage/exports"

type UserHandler struct {
	userService  *service.UserService
	excelService *service.ExcelService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService:  userService,
		excelService: service.NewExcelService(),
	}
}

func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	params := utils.GetPaginationParams(c)

	users, total, err := h.userService.List(params.Page, params.Size, params.Search)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve users", err)
	}

	pagination := utils.CalculatePagination(params.Page, params.Size, int64(total))

	responseData := fiber.Map{
		"users":      users,
		"pagination": pagination,
	}

	return utils.PaginatedResponseBuilder(c, "Users retrieved successfully", responseData, pagination)
}

func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid user ID", err)
	}

	user, err := h.userService.Get(id)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "User not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve user", err)
	}

	return utils.SuccessResponse(c, "User retrieved successfully", user)
}

func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req models.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	user, err := h.userService.Create(req)
	if err != nil {
		return userErrorResponse(c, err, "Failed to create user")
	}

	return utils.SuccessResponse(c, "User created successfully", user)
}

func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid user ID", err)
	}

	var req models.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	user, err := h.userService.Update(id, req)
	if err != nil {
		return userErrorResponse(c, err, "Failed to update user")
	}

	return utils.SuccessResponse(c, "User updated successfully", user)
}

func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid user ID", err)
	}

	if err := h.userService.Delete(id); err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "User not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete user", err)
	}

	return utils.SuccessResponse(c, "User deleted successfully", nil)
}

func (h *UserHandler) ExportUsers(c *fiber.Ctx) error {
	// Export everything in one sheet, search filter included
	users, _, err := h.userService.List(0, 1000000, c.Query("search", ""))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve users", err)
	}

	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to prepare export directory", err)
	}

	exportFileName := fmt.Sprintf("users_export_%s.xlsx", time.Now().Format("20060102_150405"))
	exportPath := filepath.Join(exportDir, exportFileName)

	if err := h.excelService.ExportUsers(users, exportPath); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to export users", err)
	}

	return c.Download(exportPath, exportFileName)
}

func (h *UserHandler) DownloadTemplate(c *fiber.Ctx) error {
	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to prepare export directory", err)
	}

	templateFileName := "users_import_template.xlsx"
	templatePath := filepath.Join(exportDir, templateFileName)

	if err := h.excelService.GenerateUserTemplate(templatePath); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate template", err)
	}

	return c.Download(templatePath, templateFileName)
}

// userErrorResponse maps service errors to HTTP statuses: validation
// failures are 400, a taken email is 409, a missing record is 404.
func userErrorResponse(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, models.ErrUserNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, "User not found", err)
	case errors.Is(err, models.ErrEmailTaken):
		return utils.ErrorResponse(c, fiber.StatusConflict, "Email already exists", err)
	case errors.Is(err, models.ErrNameRequired),
		errors.Is(err, models.ErrEmailRequired),
		errors.Is(err, models.ErrEmailInvalid):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
	default:
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, fallback, err)
	}
}

package handler

import (
	"user-management/internal/models"
	"user-management/internal/service"
	"user-management/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if req.Username == "" || req.Password == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Username and password are required", nil)
	}

	resp, err := h.authService.Login(req)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, err.Error(), nil)
	}

	return utils.SuccessResponse(c, "Login successful", resp)
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if req.Username == "" || req.Password == "" || req.Email == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Username, email and password are required", nil)
	}

	operator, err := h.authService.Register(req)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	return utils.SuccessResponse(c, "Operator registered successfully", operator)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	operatorID, ok := c.Locals("operator_id").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Not authenticated", nil)
	}

	operator, err := h.authService.GetOperatorByID(operatorID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Operator not found", err)
	}

	return utils.SuccessResponse(c, "Operator retrieved successfully", operator)
}

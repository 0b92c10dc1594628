package handler

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"user-management/internal/config"
	"user-management/internal/models"
	"user-management/internal/repository"
	"user-management/internal/service"
	"user-management/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// TaskImportUsers is the asynq task type handled by cmd/worker.
const TaskImportUsers = "users:import"

type ImportHandler struct {
	importService *service.ImportService
	sessionRepo   *repository.ImportSessionRepository
	asynqClient   *asynq.Client
	cfg           *config.Config
}

func NewImportHandler(
	importService *service.ImportService,
	sessionRepo *repository.ImportSessionRepository,
	asynqClient *asynq.Client,
	cfg *config.Config,
) *ImportHandler {
	return &ImportHandler{
		importService: importService,
		sessionRepo:   sessionRepo,
		asynqClient:   asynqClient,
		cfg:           cfg,
	}
}

// ImportUsers runs a synchronous import of the uploaded workbook and
// returns the full report. Row-level problems land in the report, not in
// the HTTP status.
func (h *ImportHandler) ImportUsers(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File is required", err)
	}

	if !strings.HasSuffix(strings.ToLower(file.Filename), ".xlsx") {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Only Excel files (.xlsx) are allowed", nil)
	}
	if file.Size > int64(h.cfg.UploadMaxSize) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File size exceeds maximum limit", nil)
	}

	src, err := file.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to read file", err)
	}
	defer src.Close()

	result := h.importService.ImportUsers(src)

	return utils.SuccessResponse(c, "Import finished", result)
}

type importTaskPayload struct {
	SessionID   int    `json:"session_id"`
	SessionCode string `json:"session_code"`
}

// ImportUsersAsync saves the upload, records an import session and queues
// the run for the background worker.
func (h *ImportHandler) ImportUsersAsync(c *fiber.Ctx) error {
	operatorID, _ := c.Locals("operator_id").(int)

	file, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File is required", err)
	}

	ext := filepath.Ext(file.Filename)
	if strings.ToLower(ext) != ".xlsx" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Only Excel files (.xlsx) are allowed", nil)
	}
	if file.Size > int64(h.cfg.UploadMaxSize) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File size exceeds maximum limit", nil)
	}

	if h.asynqClient == nil {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "Background import is not available (Redis not connected)", nil)
	}

	if err := os.MkdirAll(h.cfg.UploadPath, 0o755); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to prepare upload directory", err)
	}

	sessionCode := fmt.Sprintf("IMPORT-%s", uuid.New().String()[:8])
	filePath := filepath.Join(h.cfg.UploadPath, fmt.Sprintf("%s%s", sessionCode, ext))
	if err := c.SaveFile(file, filePath); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save file", err)
	}

	session := &models.ImportSession{
		SessionCode: sessionCode,
		OperatorID:  operatorID,
		Filename:    file.Filename,
		FilePath:    filePath,
		Status:      models.ImportStatusUploaded,
	}
	if err := h.sessionRepo.Create(session); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create import session", err)
	}

	payload, _ := json.Marshal(importTaskPayload{
		SessionID:   session.ID,
		SessionCode: session.SessionCode,
	})
	task := asynq.NewTask(TaskImportUsers, payload)
	info, err := h.asynqClient.Enqueue(task)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to queue import task", err)
	}

	return utils.SuccessResponse(c, "Import queued", fiber.Map{
		"job_id":  info.ID,
		"session": session,
	})
}

func (h *ImportHandler) GetImportSessions(c *fiber.Ctx) error {
	params := utils.GetPaginationParams(c)

	sessions, total, err := h.sessionRepo.FindAll(params.Size, params.Page*params.Size)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve import sessions", err)
	}

	pagination := utils.CalculatePagination(params.Page, params.Size, int64(total))

	responseData := fiber.Map{
		"sessions":   sessions,
		"pagination": pagination,
	}

	return utils.PaginatedResponseBuilder(c, "Import sessions retrieved successfully", responseData, pagination)
}

func (h *ImportHandler) GetImportSession(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid session ID", err)
	}

	session, err := h.sessionRepo.FindByID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Import session not found", err)
	}

	return utils.SuccessResponse(c, "Import session retrieved successfully", session)
}

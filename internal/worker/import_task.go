package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"user-management/internal/config"
	"user-management/internal/models"
	"user-management/internal/repository"
	"user-management/internal/service"
	"user-management/internal/utils"

	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ImportTaskHandler runs queued user imports: it opens the saved upload,
// feeds it through the same import pipeline the synchronous endpoint
// uses, and records the outcome on the session row.
type ImportTaskHandler struct {
	redis         *redis.Client
	cfg           *config.Config
	importService *service.ImportService
	sessionRepo   *repository.ImportSessionRepository
	logger        *logrus.Logger
}

func NewImportTaskHandler(db *sqlx.DB, redis *redis.Client, cfg *config.Config) *ImportTaskHandler {
	userRepo := repository.NewUserRepository(db)
	logger := utils.GetLogger()

	return &ImportTaskHandler{
		redis:         redis,
		cfg:           cfg,
		importService: service.NewImportService(userRepo, logger),
		sessionRepo:   repository.NewImportSessionRepository(db),
		logger:        logger,
	}
}

type ImportTaskPayload struct {
	SessionID   int    `json:"session_id"`
	SessionCode string `json:"session_code"`
}

func (h *ImportTaskHandler) Handle(ctx context.Context, task *asynq.Task) error {
	var payload ImportTaskPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	log := h.logger.WithFields(logrus.Fields{
		"session_id":   payload.SessionID,
		"session_code": payload.SessionCode,
	})
	log.Info("starting queued user import")

	session, err := h.sessionRepo.FindByID(payload.SessionID)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}
	if session.Status == models.ImportStatusCompleted || session.Status == models.ImportStatusFailed {
		log.WithField("status", session.Status).Info("session already finished, skipping")
		return nil
	}

	if err := h.sessionRepo.UpdateStatus(session.ID, models.ImportStatusProcessing); err != nil {
		return fmt.Errorf("failed to update session status: %w", err)
	}
	h.setProgress(ctx, session.ID, models.ImportStatusProcessing)

	f, err := os.Open(session.FilePath)
	if err != nil {
		log.WithError(err).Error("uploaded file is gone")
		h.sessionRepo.UpdateStatus(session.ID, models.ImportStatusFailed)
		h.setProgress(ctx, session.ID, models.ImportStatusFailed)
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer f.Close()

	result := h.importService.ImportUsers(f)

	status := models.ImportStatusCompleted
	if result.TotalRows == 0 && len(result.Errors) > 0 {
		status = models.ImportStatusFailed
	}

	errorReport := strings.Join(result.Errors, "\n")
	if err := h.sessionRepo.RecordResult(session.ID, status, result, errorReport); err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}
	h.setProgress(ctx, session.ID, status)

	log.WithFields(logrus.Fields{
		"total_rows": result.TotalRows,
		"inserted":   result.Inserted,
		"rejected":   len(result.Errors),
		"status":     status,
	}).Info("queued user import finished")

	return nil
}

func (h *ImportTaskHandler) setProgress(ctx context.Context, sessionID int, status string) {
	if h.redis == nil {
		return
	}
	key := fmt.Sprintf("import:progress:%d", sessionID)
	h.redis.Set(ctx, key, status, 24*time.Hour)
}

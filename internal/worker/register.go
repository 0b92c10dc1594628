package worker

import (
	"user-management/internal/config"
	"user-management/internal/handler"

	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

func RegisterHandlers(mux *asynq.ServeMux, db *sqlx.DB, redis *redis.Client, cfg *config.Config) {
	importHandler := NewImportTaskHandler(db, redis, cfg)

	mux.HandleFunc(handler.TaskImportUsers, importHandler.Handle)
}

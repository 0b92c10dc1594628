package repository

import (
	"time"

	"user-management/internal/models"

	"github.com/jmoiron/sqlx"
)

type ImportSessionRepository struct {
	db *sqlx.DB
}

func NewImportSessionRepository(db *sqlx.DB) *ImportSessionRepository {
	return &ImportSessionRepository{db: db}
}

func (r *ImportSessionRepository) Create(session *models.ImportSession) error {
	now := time.Now()
	session.CreatedAt = now
	session.UpdatedAt = now

	query := `INSERT INTO import_sessions
	          (session_code, operator_id, filename, file_path, total_rows, inserted, failed_rows, status, error_report, created_at, updated_at)
	          VALUES (:session_code, :operator_id, :filename, :file_path, :total_rows, :inserted, :failed_rows, :status, :error_report, :created_at, :updated_at)`
	result, err := r.db.NamedExec(query, session)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	session.ID = int(id)
	return nil
}

func (r *ImportSessionRepository) FindByID(id int) (*models.ImportSession, error) {
	var session models.ImportSession
	query := "SELECT * FROM import_sessions WHERE id = ? LIMIT 1"
	err := r.db.Get(&session, query, id)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *ImportSessionRepository) FindByCode(code string) (*models.ImportSession, error) {
	var session models.ImportSession
	query := "SELECT * FROM import_sessions WHERE session_code = ? LIMIT 1"
	err := r.db.Get(&session, query, code)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *ImportSessionRepository) FindAll(limit, offset int) ([]models.ImportSession, int, error) {
	var sessions []models.ImportSession
	var total int

	if err := r.db.Get(&total, "SELECT COUNT(*) FROM import_sessions"); err != nil {
		return nil, 0, err
	}

	query := `SELECT * FROM import_sessions
	          ORDER BY created_at DESC, id DESC
	          LIMIT ? OFFSET ?`
	if err := r.db.Select(&sessions, query, limit, offset); err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}

func (r *ImportSessionRepository) UpdateStatus(id int, status string) error {
	query := "UPDATE import_sessions SET status = ?, updated_at = ? WHERE id = ?"
	_, err := r.db.Exec(query, status, time.Now(), id)
	return err
}

// RecordResult stores the outcome of a finished run on the session row.
func (r *ImportSessionRepository) RecordResult(id int, status string, result models.ImportResult, errorReport string) error {
	query := `UPDATE import_sessions
	          SET status = ?, total_rows = ?, inserted = ?, failed_rows = ?, error_report = ?, updated_at = ?
	          WHERE id = ?`
	_, err := r.db.Exec(query, status, result.TotalRows, result.Inserted, len(result.Errors), errorReport, time.Now(), id)
	return err
}

package models

import "time"

// Import session statuses.
const (
	ImportStatusUploaded   = "uploaded"
	ImportStatusProcessing = "processing"
	ImportStatusCompleted  = "completed"
	ImportStatusFailed     = "failed"
)

// ImportSession tracks one background import of an uploaded spreadsheet.
type ImportSession struct {
	ID          int       `db:"id" json:"id"`
	SessionCode string    `db:"session_code" json:"session_code"`
	OperatorID  int       `db:"operator_id" json:"operator_id"`
	Filename    string    `db:"filename" json:"filename"`
	FilePath    string    `db:"file_path" json:"file_path"`
	TotalRows   int       `db:"total_rows" json:"total_rows"`
	Inserted    int       `db:"inserted" json:"inserted"`
	FailedRows  int       `db:"failed_rows" json:"failed_rows"`
	Status      string    `db:"status" json:"status"`
	ErrorReport string    `db:"error_report" json:"error_report"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

package service

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"user-management/internal/models"

	"github.com/sirupsen/logrus"
)

// ImportService runs one bulk import per call: parse the workbook,
// validate every row independently, reject duplicate emails against the
// store and within the batch, and insert whatever survives. A bad row
// never aborts the run.
type ImportService struct {
	users  UserStore
	excel  *ExcelService
	logger *logrus.Logger
}

func NewImportService(users UserStore, logger *logrus.Logger) *ImportService {
	return &ImportService{
		users:  users,
		excel:  NewExcelService(),
		logger: logger,
	}
}

// ImportUsers processes one uploaded workbook and always returns a
// report, never an error: a parse failure or a store outage degenerates
// to a result with zero inserts and one explanatory entry. Rows inserted
// before a store outage stay inserted.
func (s *ImportService) ImportUsers(r io.Reader) models.ImportResult {
	rows, err := s.excel.ParseUserRows(r)
	if err != nil {
		return models.ImportResult{
			Errors: []string{fmt.Sprintf("failed to process file: %v", err)},
		}
	}

	result := models.ImportResult{
		TotalRows: len(rows),
		Errors:    []string{},
	}

	// Emails accepted earlier in this same run. Duplicates inside one
	// file must not depend on the store making writes visible to the
	// FindByEmail below, so they are tracked here.
	accepted := make(map[string]struct{}, len(rows))

	for _, row := range rows {
		user, reason := validateUserRow(row)
		if reason != "" {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", row.Line, reason))
			continue
		}

		existing, err := s.users.FindByEmail(user.Email)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			result.Errors = append(result.Errors, fmt.Sprintf("import aborted at row %d: %v", row.Line, err))
			return result
		}
		if existing != nil {
			result.Errors = append(result.Errors, duplicateRowError(row.Line, user.Email))
			continue
		}

		if _, dup := accepted[strings.ToLower(user.Email)]; dup {
			result.Errors = append(result.Errors, duplicateRowError(row.Line, user.Email))
			continue
		}

		if err := s.users.Create(&user); err != nil {
			// Unique index violation from a concurrent writer.
			if errors.Is(err, models.ErrEmailTaken) {
				result.Errors = append(result.Errors, duplicateRowError(row.Line, user.Email))
				continue
			}
			result.Errors = append(result.Errors, fmt.Sprintf("import aborted at row %d: %v", row.Line, err))
			return result
		}
		accepted[strings.ToLower(user.Email)] = struct{}{}
		result.Inserted++
	}

	s.logger.WithFields(logrus.Fields{
		"total_rows": result.TotalRows,
		"inserted":   result.Inserted,
		"rejected":   len(result.Errors),
	}).Info("user import finished")

	return result
}

// validateUserRow applies the field rules in order and stops at the first
// failure. On success it returns the normalized record: name and email
// trimmed, status trimmed and upper-cased, blank status defaulted to
// ACTIVE. Uniqueness is checked by the caller, not here.
func validateUserRow(row models.UserRow) (models.User, string) {
	name := strings.TrimSpace(row.Name)
	if name == "" {
		return models.User{}, "empty name"
	}

	email := strings.TrimSpace(row.Email)
	if email == "" {
		return models.User{}, "empty email"
	}
	// Weak format check on purpose: anything containing "@" passes.
	if !strings.Contains(email, "@") {
		return models.User{}, "invalid email"
	}

	status := strings.ToUpper(strings.TrimSpace(row.Status))
	if status == "" {
		status = models.DefaultStatus
	}

	return models.User{Name: name, Email: email, Status: status}, ""
}

func duplicateRowError(line int, email string) string {
	return fmt.Sprintf("Row %d: email already exists (%s)", line, email)
}

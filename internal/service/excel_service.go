package service

import (
	"fmt"
	"io"

	"user-management/internal/models"

	"github.com/xuri/excelize/v2"
)

// ExcelService reads and writes the user spreadsheets. The import format
// is fixed: first sheet, header on row 1, then one record per row with
// the cells name | email | status (optional).
type ExcelService struct{}

func NewExcelService() *ExcelService {
	return &ExcelService{}
}

var userSheetHeaders = []string{"Name", "Email", "Status"}

// ParseUserRows decodes an uploaded workbook into raw rows. Row 1 is
// always treated as a header and discarded regardless of its content.
// Missing cells become empty strings; excelize renders numeric and
// boolean cells as text, so a malformed cell never fails the row. Only
// an unreadable workbook fails the call.
func (s *ExcelService) ParseUserRows(r io.Reader) ([]models.UserRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	// Get first sheet
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	// Data rows start after the header, so the first one is file line 2.
	userRows := []models.UserRow{}
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		userRows = append(userRows, models.UserRow{
			Line:   i + 1,
			Name:   getCellValue(row, 0),
			Email:  getCellValue(row, 1),
			Status: getCellValue(row, 2),
		})
	}

	return userRows, nil
}

// ExportUsers writes the given records to an .xlsx file.
func (s *ExcelService) ExportUsers(users []models.User, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Users"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}

	headers := append([]string{}, userSheetHeaders...)
	headers = append(headers, "Created At")
	for i, header := range headers {
		cell := fmt.Sprintf("%s1", getColumnName(i))
		f.SetCellValue(sheetName, cell, header)
	}

	// Set header style
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", getColumnName(len(headers)-1)), headerStyle)

	for i, user := range users {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), user.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), user.Email)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), user.Status)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), user.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	f.SetColWidth(sheetName, "A", "A", 30)
	f.SetColWidth(sheetName, "B", "B", 35)
	f.SetColWidth(sheetName, "C", "C", 12)
	f.SetColWidth(sheetName, "D", "D", 20)

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	return f.SaveAs(outputPath)
}

// GenerateUserTemplate creates an import template with sample rows.
func (s *ExcelService) GenerateUserTemplate(outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Users"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}

	for i, header := range userSheetHeaders {
		cell := fmt.Sprintf("%s1", getColumnName(i))
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", getColumnName(len(userSheetHeaders)-1)), headerStyle)

	sampleData := [][]interface{}{
		{"Maria Silva", "maria.silva@example.com", "ACTIVE"},
		{"John Doe", "john.doe@example.com", ""},
		{"Ana Souza", "ana.souza@example.com", "INACTIVE"},
	}
	for rowIdx, rowData := range sampleData {
		row := rowIdx + 2
		for colIdx, value := range rowData {
			cell := fmt.Sprintf("%s%d", getColumnName(colIdx), row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 30)
	f.SetColWidth(sheetName, "B", "B", 35)
	f.SetColWidth(sheetName, "C", "C", 12)

	// Add instructions
	instructionsStartRow := len(sampleData) + 4
	instructions := []string{
		"Instructions:",
		"1. Name: full name of the user (required)",
		"2. Email: unique email address (required)",
		"3. Status: ACTIVE or INACTIVE (blank defaults to ACTIVE)",
		"",
		"Note: Do not modify the header row. Fill data starting from row 2.",
	}
	for i, instruction := range instructions {
		cell := fmt.Sprintf("A%d", instructionsStartRow+i)
		f.SetCellValue(sheetName, cell, instruction)
	}

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	return f.SaveAs(outputPath)
}

// Helper functions
func getCellValue(row []string, index int) string {
	if index < len(row) {
		return row[index]
	}
	return ""
}

func getColumnName(index int) string {
	result := ""
	for index >= 0 {
		result = string(rune('A'+(index%26))) + result
		index = index/26 - 1
	}
	return result
}

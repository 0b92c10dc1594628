package main

import (
	"fmt"
	"log"
	"os"

	"github.com/xuri/excelize/v2"
)

// Generates a users import workbook with a mix of valid and deliberately
// broken rows, useful for exercising the import endpoint by hand.
func main() {
	outputPath := "test_users.xlsx"
	if len(os.Args) > 1 {
		outputPath = os.Args[1]
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Users"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		log.Fatalf("Failed to create sheet: %v", err)
	}

	headers := []string{"Name", "Email", "Status"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	f.SetCellStyle(sheetName, "A1", "C1", headerStyle)

	rows := [][]interface{}{
		// Valid rows
		{"Ana Lima", "ana.lima@example.com", ""},
		{"Bruno Costa", "bruno.costa@example.com", "active"},
		{"Carla Dias", "carla.dias@example.com", "INACTIVE"},
		// Broken rows: blank name, blank email, no "@", duplicates
		{"", "no.name@example.com", "ACTIVE"},
		{"Diego Reis", "", "ACTIVE"},
		{"Elisa Nunes", "not-an-email", "ACTIVE"},
		{"Fabio Melo", "ana.lima@example.com", "ACTIVE"},
		{"Gabi Rocha", "ANA.LIMA@EXAMPLE.COM", "ACTIVE"},
	}
	for rowIdx, rowData := range rows {
		row := rowIdx + 2
		for colIdx, value := range rowData {
			cell := fmt.Sprintf("%c%d", 'A'+colIdx, row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 25)
	f.SetColWidth(sheetName, "B", "B", 35)
	f.SetColWidth(sheetName, "C", "C", 12)

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	if err := f.SaveAs(outputPath); err != nil {
		log.Fatalf("Failed to save file: %v", err)
	}

	fmt.Printf("Generated %s with %d data rows (3 valid, 5 broken)\n", outputPath, len(rows))
}

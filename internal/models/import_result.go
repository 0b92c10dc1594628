package models

// UserRow is one raw spreadsheet row as decoded from the upload, before
// any validation. Line is the 1-based row number in the file, counting
// the header as line 1, so the first data row is line 2.
type UserRow struct {
	Line   int
	Name   string
	Email  string
	Status string
}

// ImportResult summarizes one import run. Every rejected row contributes
// one entry to Errors in file order, formatted "Row {n}: {reason}".
type ImportResult struct {
	TotalRows int      `json:"total_rows"`
	Inserted  int      `json:"inserted"`
	Errors    []string `json:"errors"`
}

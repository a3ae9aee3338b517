package service

import "fmt"

// RowError is one failed import row. Index is the spreadsheet line the
// user sees: 1-indexed data position plus the header row.
type RowError struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Error string `json:"error"`
}

// ImportReport is the result shape of the store and visit imports.
// Partial failure is communicated here, not via the HTTP status.
type ImportReport struct {
	Success  int        `json:"success"`
	Failed   int        `json:"failed"`
	Errors   []RowError `json:"errors"`
	Warnings []string   `json:"warnings,omitempty"`
}

// ImportSummary is the result shape of the plan, issue and
// order-tracking imports.
type ImportSummary struct {
	SuccessCount int      `json:"successCount"`
	Errors       []string `json:"errors"`
	Warnings     []string `json:"warnings,omitempty"`
}

// rowNumber converts a 0-based slice index to the user-visible row
// number, accounting for the conceptual header row.
func rowNumber(i int) int {
	return i + 2
}

func rowErrorf(i int, format string, args ...interface{}) string {
	return fmt.Sprintf("Row %d: %s", rowNumber(i), fmt.Sprintf(format, args...))
}

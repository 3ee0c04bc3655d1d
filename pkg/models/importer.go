package models

// ImportResult summarizes a CSV or Google Sheets import run.
type ImportResult struct {
	TotalRows         int      `json:"total_rows"`
	SuccessfulImports int      `json:"successful_imports"`
	FailedImports     int      `json:"failed_imports"`
	DuplicatesSkipped int      `json:"duplicates_skipped"`
	Errors            []string `json:"errors"`
	CreatedItems      []string `json:"created_items"`
}

// SheetsPreview is the response of POST /api/import/google-sheets/preview.
type SheetsPreview struct {
	Columns       []string         `json:"columns"`
	PreviewData   []map[string]any `json:"preview_data"`
	TotalRows     int              `json:"total_rows"`
	SpreadsheetID string           `json:"spreadsheet_id"`
}

// CSVPreview is the response of POST /api/import/csv/preview.
type CSVPreview struct {
	Columns     []string         `json:"columns"`
	PreviewData []map[string]any `json:"preview_data"`
	TotalRows   int              `json:"total_rows"`
}

// SheetsImportRequest is the body of the Google Sheets preview and import
// endpoints. Mappings maps sheet column names to CRM field names.
type SheetsImportRequest struct {
	SpreadsheetID string            `json:"spreadsheet_id"`
	SheetName     string            `json:"sheet_name,omitempty"`
	Mappings      map[string]string `json:"mappings,omitempty"`
	TagIDs        []string          `json:"tag_ids,omitempty"`
}

package suites

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"

	"github.com/lolijho/crm-grab-backend-sub000/internal/harness"
	"github.com/lolijho/crm-grab-backend-sub000/pkg/models"
)

// csvUpload packages data as a multipart form with a single "file" field
// and returns the body plus its content type.
func csvUpload(filename string, data []byte) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// runImport exercises CSV upload and the Google Sheets import flow.
func runImport(ctx context.Context, sc *Context) error {
	if err := sc.login(ctx); err != nil {
		return err
	}

	batch := uuid.NewString()[:8]
	contactsCSV := []byte(fmt.Sprintf(
		"first_name,last_name,email,phone\n"+
			"Marco,Galli,marco.galli-%s@example.com,+39 333 0000001\n"+
			"Sara,Riva,sara.riva-%s@example.com,+39 333 0000002\n"+
			",,missing.name-%s@example.com,\n",
		batch, batch, batch))

	body, contentType, err := csvUpload("contacts.csv", contactsCSV)
	if err != nil {
		return err
	}
	sc.Runner.Run(ctx, harness.Case{
		Name:           "preview CSV before import",
		Method:         http.MethodPost,
		Path:           "/api/import/csv/preview",
		RawBody:        body,
		ContentType:    contentType,
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.FieldEquals("total_rows", 3),
			harness.Expr(sc.Expr, `"email" in body.columns`),
			harness.Expr(sc.Expr, "len(body.preview_data) == 3"),
		},
	})

	body, contentType, err = csvUpload("broken.csv", []byte("first_name,last_name\n\"unterminated,row\n"))
	if err != nil {
		return err
	}
	sc.Runner.Run(ctx, harness.Case{
		Name:           "preview rejects malformed CSV",
		Method:         http.MethodPost,
		Path:           "/api/import/csv/preview",
		RawBody:        body,
		ContentType:    contentType,
		ExpectedStatus: http.StatusBadRequest,
	})

	body, contentType, err = csvUpload("contacts.csv", contactsCSV)
	if err != nil {
		return err
	}
	sc.Runner.Run(ctx, harness.Case{
		Name:           "import contacts from CSV",
		Method:         http.MethodPost,
		Path:           "/api/import/csv/contacts",
		RawBody:        body,
		ContentType:    contentType,
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.FieldEquals("total_rows", 3),
			harness.FieldEquals("successful_imports", 2),
			harness.FieldEquals("failed_imports", 1),
			harness.FieldEquals("duplicates_skipped", 0),
		},
	})

	// Re-uploading the same file must skip the two existing contacts.
	body, contentType, err = csvUpload("contacts.csv", contactsCSV)
	if err != nil {
		return err
	}
	sc.Runner.Run(ctx, harness.Case{
		Name:           "re-import skips duplicates",
		Method:         http.MethodPost,
		Path:           "/api/import/csv/contacts",
		RawBody:        body,
		ContentType:    contentType,
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.FieldEquals("successful_imports", 0),
			harness.FieldEquals("duplicates_skipped", 2),
		},
	})

	ordersCSV := []byte(fmt.Sprintf(
		"contact_email,product_name,quantity,unit_price\n"+
			"marco.galli-%s@example.com,Corso Base,1,100\n"+
			"unknown-%s@example.com,Corso Base,1,100\n",
		batch, batch))
	body, contentType, err = csvUpload("orders.csv", ordersCSV)
	if err != nil {
		return err
	}
	sc.Runner.Run(ctx, harness.Case{
		Name:           "import orders from CSV",
		Method:         http.MethodPost,
		Path:           "/api/import/csv/orders",
		RawBody:        body,
		ContentType:    contentType,
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.FieldEquals("successful_imports", 1),
			harness.FieldEquals("failed_imports", 1),
		},
	})

	spreadsheetID := sc.Config.SpreadsheetID
	if spreadsheetID == "" {
		spreadsheetID = "acceptance-sheet"
	}

	sc.Runner.Run(ctx, harness.Case{
		Name:           "sheets preview requires spreadsheet id",
		Method:         http.MethodPost,
		Path:           "/api/import/google-sheets/preview",
		Body:           models.SheetsImportRequest{},
		ExpectedStatus: http.StatusBadRequest,
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "sheets preview",
		Method:         http.MethodPost,
		Path:           "/api/import/google-sheets/preview",
		Body:           models.SheetsImportRequest{SpreadsheetID: spreadsheetID},
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.RequireFields("columns", "preview_data", "total_rows"),
			harness.FieldEquals("spreadsheet_id", spreadsheetID),
		},
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:   "sheets import contacts",
		Method: http.MethodPost,
		Path:   "/api/import/google-sheets/contacts",
		Body: models.SheetsImportRequest{
			SpreadsheetID: spreadsheetID,
			Mappings:      map[string]string{"first_name": "first_name", "last_name": "last_name", "email": "email", "phone": "phone"},
		},
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.Expr(sc.Expr, "body.successful_imports + body.duplicates_skipped == body.total_rows"),
		},
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "sheets import orders",
		Method:         http.MethodPost,
		Path:           "/api/import/google-sheets/orders",
		Body:           models.SheetsImportRequest{SpreadsheetID: spreadsheetID},
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.Expr(sc.Expr, "body.successful_imports + body.failed_imports == body.total_rows"),
		},
	})
	return nil
}

package mockcrm

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lolijho/crm-grab-backend-sub000/pkg/models"
)

// fakeSheet is the Google Sheets document the mock serves for any
// spreadsheet id, so import flows can run without Google credentials.
var fakeSheet = struct {
	columns []string
	rows    [][]string
}{
	columns: []string{"first_name", "last_name", "email", "phone"},
	rows: [][]string{
		{"Giulia", "Bianchi", "giulia.bianchi@example.com", "+39 333 1111111"},
		{"Luca", "Verdi", "luca.verdi@example.com", "+39 333 2222222"},
		{"Anna", "Neri", "anna.neri@example.com", ""},
	},
}

func readCSVUpload(c *gin.Context) ([]map[string]string, error) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("file field missing: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV: %w", err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("empty CSV")
	}

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := map[string]string{}
		for i, col := range header {
			if i < len(record) {
				row[strings.TrimSpace(col)] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// csvPreview returns the column headers and the first rows of an uploaded
// CSV, so a mapping can be chosen before importing.
func (s *Server) csvPreview(c *gin.Context) {
	rows, err := readCSVUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": fmt.Sprintf("Error previewing CSV: %v", err)})
		return
	}

	const previewRows = 5
	preview := make([]map[string]string, 0, previewRows)
	for i, row := range rows {
		if i == previewRows {
			break
		}
		preview = append(preview, row)
	}

	var columns []string
	if len(rows) > 0 {
		columns = sortedKeys(rows[0])
	}
	c.JSON(http.StatusOK, gin.H{
		"columns":      columns,
		"preview_data": preview,
		"total_rows":   len(rows),
	})
}

func sortedKeys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (s *Server) importCSVContacts(c *gin.Context) {
	rows, err := readCSVUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": fmt.Sprintf("Error importing contacts: %v", err)})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	c.JSON(http.StatusOK, s.importContactRows(rows))
}

func (s *Server) importContactRows(rows []map[string]string) models.ImportResult {
	result := models.ImportResult{
		TotalRows:    len(rows),
		Errors:       []string{},
		CreatedItems: []string{},
	}
	for i, row := range rows {
		first, last := row["first_name"], row["last_name"]
		if first == "" && last == "" {
			result.FailedImports++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: missing name", i+1))
			continue
		}
		email := strings.ToLower(row["email"])
		if email != "" && s.store.contactByEmail(email) != nil {
			result.DuplicatesSkipped++
			continue
		}
		contact := &models.Contact{
			FirstName: first,
			LastName:  last,
			Email:     email,
			Phone:     row["phone"],
			City:      row["city"],
			Notes:     row["notes"],
			Source:    "import",
		}
		s.store.addContact(contact)
		result.SuccessfulImports++
		result.CreatedItems = append(result.CreatedItems, contact.ID)
	}
	return result
}

func (s *Server) importCSVOrders(c *gin.Context) {
	rows, err := readCSVUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": fmt.Sprintf("Error importing orders: %v", err)})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	result := models.ImportResult{
		TotalRows:    len(rows),
		Errors:       []string{},
		CreatedItems: []string{},
	}
	for i, row := range rows {
		contact := s.store.contactByEmail(row["contact_email"])
		if contact == nil {
			result.FailedImports++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: no contact with email %q", i+1, row["contact_email"]))
			continue
		}
		quantity, _ := strconv.Atoi(row["quantity"])
		if quantity < 1 {
			quantity = 1
		}
		unitPrice, _ := strconv.ParseFloat(row["unit_price"], 64)
		order := &models.Order{
			ContactID:     contact.ID,
			Status:        "completed",
			PaymentStatus: "paid",
			Items: []models.OrderItem{{
				ProductName: row["product_name"],
				Quantity:    quantity,
				UnitPrice:   unitPrice,
				TotalPrice:  unitPrice * float64(quantity),
			}},
		}
		s.store.addOrder(order)
		result.SuccessfulImports++
		result.CreatedItems = append(result.CreatedItems, order.ID)
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) sheetsPreview(c *gin.Context) {
	var req models.SheetsImportRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SpreadsheetID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "spreadsheet_id is required"})
		return
	}

	preview := make([]map[string]any, 0, len(fakeSheet.rows))
	for _, row := range fakeSheet.rows {
		item := map[string]any{}
		for i, col := range fakeSheet.columns {
			item[col] = row[i]
		}
		preview = append(preview, item)
	}
	c.JSON(http.StatusOK, models.SheetsPreview{
		Columns:       fakeSheet.columns,
		PreviewData:   preview,
		TotalRows:     len(fakeSheet.rows),
		SpreadsheetID: req.SpreadsheetID,
	})
}

func (s *Server) sheetsImportContacts(c *gin.Context) {
	var req models.SheetsImportRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SpreadsheetID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "spreadsheet_id is required"})
		return
	}

	rows := make([]map[string]string, 0, len(fakeSheet.rows))
	for _, record := range fakeSheet.rows {
		row := map[string]string{}
		for i, col := range fakeSheet.columns {
			field := col
			if mapped, ok := req.Mappings[col]; ok {
				field = mapped
			}
			row[field] = record[i]
		}
		rows = append(rows, row)
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	c.JSON(http.StatusOK, s.importContactRows(rows))
}

// sheetsImportOrders: the fake sheet holds contact rows only, so order
// import reports every row as failed unless a contact with a matching email
// already exists.
func (s *Server) sheetsImportOrders(c *gin.Context) {
	var req models.SheetsImportRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SpreadsheetID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "spreadsheet_id is required"})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	result := models.ImportResult{
		TotalRows:    len(fakeSheet.rows),
		Errors:       []string{},
		CreatedItems: []string{},
	}
	for i, record := range fakeSheet.rows {
		email := record[2]
		contact := s.store.contactByEmail(email)
		if contact == nil {
			result.FailedImports++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: no contact with email %q", i+1, email))
			continue
		}
		order := &models.Order{
			ContactID:     contact.ID,
			Status:        "completed",
			PaymentStatus: "paid",
			Items: []models.OrderItem{{
				ProductName: "Sheet import",
				Quantity:    1,
			}},
		}
		s.store.addOrder(order)
		result.SuccessfulImports++
		result.CreatedItems = append(result.CreatedItems, order.ID)
	}
	c.JSON(http.StatusOK, result)
}

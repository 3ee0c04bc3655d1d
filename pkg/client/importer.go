package client

import (
	"context"
	"net/http"

	"github.com/lolijho/crm-grab-backend-sub000/pkg/models"
)

// ImportCSVPreview uploads a CSV file and returns its columns and first rows
// without importing anything.
func (c *Client) ImportCSVPreview(ctx context.Context, filename string, data []byte) (*models.CSVPreview, error) {
	resp, err := c.DoMultipart(ctx, http.MethodPost, "/api/import/csv/preview", "file", filename, data)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}
	var out models.CSVPreview
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ImportCSVContacts uploads a CSV file to POST /api/import/csv/contacts.
func (c *Client) ImportCSVContacts(ctx context.Context, filename string, data []byte) (*models.ImportResult, error) {
	return c.importCSV(ctx, "/api/import/csv/contacts", filename, data)
}

// ImportCSVOrders uploads a CSV file to POST /api/import/csv/orders.
func (c *Client) ImportCSVOrders(ctx context.Context, filename string, data []byte) (*models.ImportResult, error) {
	return c.importCSV(ctx, "/api/import/csv/orders", filename, data)
}

func (c *Client) importCSV(ctx context.Context, path, filename string, data []byte) (*models.ImportResult, error) {
	resp, err := c.DoMultipart(ctx, http.MethodPost, path, "file", filename, data)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}
	var out models.ImportResult
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SheetsPreview previews a Google Sheets document before import.
func (c *Client) SheetsPreview(ctx context.Context, req models.SheetsImportRequest) (*models.SheetsPreview, error) {
	var out models.SheetsPreview
	if err := c.decodeExpected(ctx, http.MethodPost, "/api/import/google-sheets/preview", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// SheetsImportContacts imports contacts from a Google Sheets document.
func (c *Client) SheetsImportContacts(ctx context.Context, req models.SheetsImportRequest) (*models.ImportResult, error) {
	var out models.ImportResult
	if err := c.decodeExpected(ctx, http.MethodPost, "/api/import/google-sheets/contacts", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// SheetsImportOrders imports orders from a Google Sheets document.
func (c *Client) SheetsImportOrders(ctx context.Context, req models.SheetsImportRequest) (*models.ImportResult, error) {
	var out models.ImportResult
	if err := c.decodeExpected(ctx, http.MethodPost, "/api/import/google-sheets/orders", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

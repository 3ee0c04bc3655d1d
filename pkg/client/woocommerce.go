package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/lolijho/crm-grab-backend-sub000/pkg/models"
)

// WooSyncStatus returns the current synchronization status.
func (c *Client) WooSyncStatus(ctx context.Context) (*models.WooSyncStatus, error) {
	var out models.WooSyncStatus
	if err := c.decodeExpected(ctx, http.MethodGet, "/api/woocommerce/sync/status", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// WooSyncCustomers triggers a customer sync; fullSync forces a non-incremental run.
func (c *Client) WooSyncCustomers(ctx context.Context, fullSync bool) (*models.WooSyncAck, error) {
	return c.triggerSync(ctx, "/api/woocommerce/sync/customers", fullSync)
}

// WooSyncProducts triggers a product sync.
func (c *Client) WooSyncProducts(ctx context.Context, fullSync bool) (*models.WooSyncAck, error) {
	return c.triggerSync(ctx, "/api/woocommerce/sync/products", fullSync)
}

// WooSyncOrders triggers an order sync.
func (c *Client) WooSyncOrders(ctx context.Context, fullSync bool) (*models.WooSyncAck, error) {
	return c.triggerSync(ctx, "/api/woocommerce/sync/orders", fullSync)
}

// WooSyncAll triggers a full synchronization: customers, then products,
// then orders.
func (c *Client) WooSyncAll(ctx context.Context) (*models.WooSyncAck, error) {
	var out models.WooSyncAck
	if err := c.decodeExpected(ctx, http.MethodPost, "/api/woocommerce/sync/all", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) triggerSync(ctx context.Context, path string, fullSync bool) (*models.WooSyncAck, error) {
	q := url.Values{}
	if fullSync {
		q.Set("full_sync", strconv.FormatBool(fullSync))
	}
	var out models.WooSyncAck
	if err := c.decodeExpected(ctx, http.MethodPost, path, nil, &out, http.StatusOK, WithQuery(q)); err != nil {
		return nil, err
	}
	return &out, nil
}

// WooTestConnection probes the WooCommerce API connection.
func (c *Client) WooTestConnection(ctx context.Context) (*Response, error) {
	return c.Do(ctx, http.MethodGet, "/api/woocommerce/test-connection", nil)
}

// WooSyncSettings fetches the sync settings.
func (c *Client) WooSyncSettings(ctx context.Context) (*models.WooSyncSettings, error) {
	var out models.WooSyncSettings
	if err := c.decodeExpected(ctx, http.MethodGet, "/api/woocommerce/sync/settings", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateWooSyncSettings stores new sync settings. The backend restarts its
// schedulers when intervals change.
func (c *Client) UpdateWooSyncSettings(ctx context.Context, settings map[string]any) (*models.WooSyncSettings, error) {
	var out models.WooSyncSettings
	if err := c.decodeExpected(ctx, http.MethodPut, "/api/woocommerce/sync/settings", settings, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

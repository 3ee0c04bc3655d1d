package models

import "time"

// WooSyncSettings controls the background WooCommerce synchronization.
// Intervals are minutes; FullSyncHour is the hour of day (UTC) for the
// nightly full sync.
type WooSyncSettings struct {
	AutoSyncEnabled       bool       `json:"auto_sync_enabled"`
	SyncCustomersEnabled  bool       `json:"sync_customers_enabled"`
	SyncProductsEnabled   bool       `json:"sync_products_enabled"`
	SyncOrdersEnabled     bool       `json:"sync_orders_enabled"`
	SyncIntervalOrders    int        `json:"sync_interval_orders"`
	SyncIntervalCustomers int        `json:"sync_interval_customers"`
	SyncIntervalProducts  int        `json:"sync_interval_products"`
	FullSyncHour          int        `json:"full_sync_hour"`
	LastUpdated           *time.Time `json:"last_updated,omitempty"`
	UpdatedBy             string     `json:"updated_by,omitempty"`
}

// WooSyncStatus is the response of GET /api/woocommerce/sync/status.
type WooSyncStatus struct {
	WooCommerceConnection bool             `json:"woocommerce_connection"`
	LastCustomerSync      *time.Time       `json:"last_customer_sync,omitempty"`
	LastProductSync       *time.Time       `json:"last_product_sync,omitempty"`
	LastOrderSync         *time.Time       `json:"last_order_sync,omitempty"`
	CustomerCount         int              `json:"customer_count"`
	ProductCount          int              `json:"product_count"`
	OrderCount            int              `json:"order_count"`
	RecentSyncLogs        []map[string]any `json:"recent_sync_logs"`
}

// WooSyncAck acknowledges a triggered sync.
type WooSyncAck struct {
	Message     string `json:"message"`
	FullSync    bool   `json:"full_sync,omitempty"`
	InitiatedBy string `json:"initiated_by,omitempty"`
}

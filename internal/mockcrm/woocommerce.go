package mockcrm

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// runSync simulates a WooCommerce sync pass: it bumps the entity counters
// and appends a sync log entry. Real syncs run in the background; callers
// poll the status endpoint afterwards.
func (s *Server) runSync(entity string, fullSync bool, initiatedBy string) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	t := time.Now().UTC()
	switch entity {
	case "customers":
		s.store.wcCustomers += 2
		s.store.lastCustSync = &t
	case "products":
		s.store.wcProducts += 3
		s.store.lastProdSync = &t
	case "orders":
		s.store.wcOrders++
		s.store.lastOrdSync = &t
	}
	log := map[string]any{
		"id":           newID(),
		"sync_type":    entity,
		"full_sync":    fullSync,
		"status":       "completed",
		"started_at":   t,
		"initiated_by": initiatedBy,
	}
	s.store.syncLogs = append([]map[string]any{log}, s.store.syncLogs...)
	if len(s.store.syncLogs) > 10 {
		s.store.syncLogs = s.store.syncLogs[:10]
	}
}

func (s *Server) wooSyncStatus(c *gin.Context) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	logs := s.store.syncLogs
	if logs == nil {
		logs = []map[string]any{}
	}
	c.JSON(http.StatusOK, gin.H{
		"woocommerce_connection": true,
		"last_customer_sync":     s.store.lastCustSync,
		"last_product_sync":      s.store.lastProdSync,
		"last_order_sync":        s.store.lastOrdSync,
		"customer_count":         s.store.wcCustomers,
		"product_count":          s.store.wcProducts,
		"order_count":            s.store.wcOrders,
		"recent_sync_logs":       logs,
	})
}

func (s *Server) triggerSyncHandler(entity string) gin.HandlerFunc {
	return func(c *gin.Context) {
		fullSync := c.Query("full_sync") == "true"
		user := currentUser(c)
		go s.runSync(entity, fullSync, user.Email)
		c.JSON(http.StatusOK, gin.H{
			"message":      "WooCommerce " + entity[:len(entity)-1] + " sync initiated",
			"full_sync":    fullSync,
			"initiated_by": user.Email,
		})
	}
}

func (s *Server) wooSyncCustomers(c *gin.Context) { s.triggerSyncHandler("customers")(c) }
func (s *Server) wooSyncProducts(c *gin.Context)  { s.triggerSyncHandler("products")(c) }
func (s *Server) wooSyncOrders(c *gin.Context)    { s.triggerSyncHandler("orders")(c) }

func (s *Server) wooSyncAll(c *gin.Context) {
	user := currentUser(c)
	go func() {
		// Customers first, then products, then orders, like the backend.
		s.runSync("customers", true, user.Email)
		s.runSync("products", true, user.Email)
		s.runSync("orders", true, user.Email)
	}()
	c.JSON(http.StatusOK, gin.H{
		"message":      "Full WooCommerce synchronization initiated",
		"initiated_by": user.Email,
	})
}

func (s *Server) wooTestConnection(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "connected",
		"message": "WooCommerce API connection successful",
	})
}

func (s *Server) wooSyncSettingsGet(c *gin.Context) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	c.JSON(http.StatusOK, s.store.wcSettings)
}

func (s *Server) wooSyncSettingsPut(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	settings := &s.store.wcSettings
	if v, ok := fields["auto_sync_enabled"].(bool); ok {
		settings.AutoSyncEnabled = v
	}
	if v, ok := fields["sync_customers_enabled"].(bool); ok {
		settings.SyncCustomersEnabled = v
	}
	if v, ok := fields["sync_products_enabled"].(bool); ok {
		settings.SyncProductsEnabled = v
	}
	if v, ok := fields["sync_orders_enabled"].(bool); ok {
		settings.SyncOrdersEnabled = v
	}
	if v, ok := fields["sync_interval_orders"].(float64); ok {
		settings.SyncIntervalOrders = int(v)
	}
	if v, ok := fields["sync_interval_customers"].(float64); ok {
		settings.SyncIntervalCustomers = int(v)
	}
	if v, ok := fields["sync_interval_products"].(float64); ok {
		settings.SyncIntervalProducts = int(v)
	}
	if v, ok := fields["full_sync_hour"].(float64); ok {
		settings.FullSyncHour = int(v)
	}
	settings.LastUpdated = now()
	settings.UpdatedBy = currentUser(c).ID
	c.JSON(http.StatusOK, settings)
}

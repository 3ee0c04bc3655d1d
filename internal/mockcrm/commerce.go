package mockcrm

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lolijho/crm-grab-backend-sub000/pkg/models"
)

func (s *Server) listProducts(c *gin.Context) {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 100)

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	all := make([]models.Product, 0, len(s.store.productOrder))
	for _, id := range s.store.productOrder {
		all = append(all, *s.store.products[id])
	}
	start, end, pagination := paginate(len(all), page, limit)
	c.JSON(http.StatusOK, gin.H{"data": all[start:end], "pagination": pagination})
}

func (s *Server) createProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	if product.Name == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "name is required"})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	s.store.addProduct(&product)
	c.JSON(http.StatusOK, product)
}

func (s *Server) getProduct(c *gin.Context) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	product, ok := s.store.products[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (s *Server) updateProduct(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	product, ok := s.store.products[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Product not found"})
		return
	}
	if v, ok := fields["name"].(string); ok {
		product.Name = v
	}
	if v, ok := fields["description"].(string); ok {
		product.Description = v
	}
	if v, ok := fields["price"].(float64); ok {
		product.Price = v
	}
	if v, ok := fields["category"].(string); ok {
		product.Category = v
	}
	if v, ok := fields["sku"].(string); ok {
		product.SKU = v
	}
	if v, ok := fields["is_active"].(bool); ok {
		product.IsActive = v
	}
	if v, ok := fields["course_id"].(string); ok {
		product.CourseID = v
	}
	if v, ok := fields["crm_product_id"].(string); ok {
		product.CRMProductID = v
	}
	product.UpdatedAt = now()
	c.JSON(http.StatusOK, product)
}

func (s *Server) deleteProduct(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	id := c.Param("id")
	if _, ok := s.store.products[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Product not found"})
		return
	}
	delete(s.store.products, id)
	s.store.productOrder = remove(s.store.productOrder, id)
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

func (s *Server) listCRMProducts(c *gin.Context) {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 100)

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	all := make([]models.CRMProduct, 0, len(s.store.crmOrder))
	for _, id := range s.store.crmOrder {
		all = append(all, *s.store.crmProducts[id])
	}
	start, end, pagination := paginate(len(all), page, limit)
	c.JSON(http.StatusOK, gin.H{"data": all[start:end], "pagination": pagination})
}

func (s *Server) createCRMProduct(c *gin.Context) {
	var product models.CRMProduct
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	if product.Name == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "name is required"})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	s.store.addCRMProduct(&product)
	c.JSON(http.StatusOK, product)
}

func (s *Server) getCRMProduct(c *gin.Context) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	product, ok := s.store.crmProducts[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "CRM product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (s *Server) updateCRMProduct(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	product, ok := s.store.crmProducts[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "CRM product not found"})
		return
	}
	if v, ok := fields["name"].(string); ok {
		product.Name = v
	}
	if v, ok := fields["description"].(string); ok {
		product.Description = v
	}
	if v, ok := fields["base_price"].(float64); ok {
		product.BasePrice = v
	}
	if v, ok := fields["category"].(string); ok {
		product.Category = v
	}
	if v, ok := fields["is_active"].(bool); ok {
		product.IsActive = v
	}
	product.UpdatedAt = now()
	c.JSON(http.StatusOK, product)
}

func (s *Server) deleteCRMProduct(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	id := c.Param("id")
	if _, ok := s.store.crmProducts[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "CRM product not found"})
		return
	}
	delete(s.store.crmProducts, id)
	s.store.crmOrder = remove(s.store.crmOrder, id)
	c.JSON(http.StatusOK, gin.H{"message": "CRM product deleted successfully"})
}

// crmProductPaymentLinks: payment links live in WooCommerce; the mock keeps
// the count at zero and returns an empty list.
func (s *Server) crmProductPaymentLinks(c *gin.Context) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	if _, ok := s.store.crmProducts[c.Param("id")]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "CRM product not found"})
		return
	}
	c.JSON(http.StatusOK, []map[string]any{})
}

func (s *Server) listOrders(c *gin.Context) {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 100)

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	all := make([]models.Order, 0, len(s.store.orderOrder))
	for _, id := range s.store.orderOrder {
		all = append(all, *s.enrichOrder(s.store.orders[id]))
	}
	start, end, pagination := paginate(len(all), page, limit)
	c.JSON(http.StatusOK, gin.H{"orders": all[start:end], "pagination": pagination})
}

// listOrdersLegacy serves the pre-pagination route: every order as a bare
// array.
func (s *Server) listOrdersLegacy(c *gin.Context) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	all := make([]models.Order, 0, len(s.store.orderOrder))
	for _, id := range s.store.orderOrder {
		all = append(all, *s.enrichOrder(s.store.orders[id]))
	}
	c.JSON(http.StatusOK, all)
}

func (s *Server) enrichOrder(o *models.Order) *models.Order {
	enriched := *o
	if contact, ok := s.store.contacts[o.ContactID]; ok {
		enriched.Contact = map[string]any{
			"id":         contact.ID,
			"first_name": contact.FirstName,
			"last_name":  contact.LastName,
			"email":      contact.Email,
		}
	}
	return &enriched
}

func (s *Server) createOrder(c *gin.Context) {
	var req models.OrderCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "items are required"})
		return
	}
	for _, item := range req.Items {
		if item.TotalPrice <= 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "total_price is required on every item"})
			return
		}
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if req.ContactID != "" {
		if _, ok := s.store.contacts[req.ContactID]; !ok {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Contact not found"})
			return
		}
	}
	order := &models.Order{
		ContactID:     req.ContactID,
		Status:        req.Status,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: req.PaymentStatus,
		Notes:         req.Notes,
		Items:         req.Items,
	}
	s.store.addOrder(order)
	c.JSON(http.StatusOK, s.enrichOrder(order))
}

func (s *Server) getOrder(c *gin.Context) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	order, ok := s.store.orders[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, s.enrichOrder(order))
}

func (s *Server) updateOrder(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	order, ok := s.store.orders[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Order not found"})
		return
	}
	if v, ok := fields["status"].(string); ok {
		order.Status = v
	}
	if v, ok := fields["payment_method"].(string); ok {
		order.PaymentMethod = v
	}
	if v, ok := fields["payment_status"].(string); ok {
		order.PaymentStatus = v
	}
	if v, ok := fields["notes"].(string); ok {
		order.Notes = v
	}
	order.UpdatedAt = now()
	c.JSON(http.StatusOK, s.enrichOrder(order))
}

func (s *Server) deleteOrder(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	id := c.Param("id")
	if _, ok := s.store.orders[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Order not found"})
		return
	}
	delete(s.store.orders, id)
	s.store.orderOrder = remove(s.store.orderOrder, id)
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}

func (s *Server) listTags(c *gin.Context) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	out := []models.Tag{}
	for _, t := range s.store.tags {
		out = append(out, *t)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) createTag(c *gin.Context) {
	var tag models.Tag
	if err := c.ShouldBindJSON(&tag); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	if tag.Name == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "name is required"})
		return
	}
	if tag.Category == "" {
		tag.Category = "general"
	}
	if tag.Color == "" {
		tag.Color = "#3B82F6"
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	tag.ID = newID()
	tag.CreatedAt = now()
	s.store.tags[tag.ID] = &tag
	c.JSON(http.StatusOK, tag)
}

func (s *Server) deleteTag(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	id := c.Param("id")
	if _, ok := s.store.tags[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Tag not found"})
		return
	}
	delete(s.store.tags, id)
	c.JSON(http.StatusOK, gin.H{"message": "Tag deleted successfully"})
}

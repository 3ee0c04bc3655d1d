package mockcrm

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lolijho/crm-grab-backend-sub000/pkg/models"
)

func intQuery(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}

func (s *Server) listContacts(c *gin.Context) {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 100)
	search := strings.ToLower(strings.TrimSpace(c.Query("search")))
	status := c.Query("status")
	language := c.Query("language")
	courseID := c.Query("course_id")
	tagID := c.Query("tag_id")
	productID := c.Query("product_id")
	hasOrdersParam := c.Query("has_orders")

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	var filtered []models.Contact
	for _, id := range s.store.contactOrder {
		contact := s.store.contacts[id]
		if status != "" && contact.Status != status {
			continue
		}
		if language != "" && contact.Language != language {
			continue
		}
		if search != "" && !contactMatches(contact, search) {
			continue
		}
		if courseID != "" && !s.enrolledIn(contact.ID, courseID) {
			continue
		}
		if tagID != "" && !hasTag(contact, tagID) {
			continue
		}
		if hasOrdersParam != "" {
			want, _ := strconv.ParseBool(hasOrdersParam)
			if s.hasOrders(contact.ID) != want {
				continue
			}
		}
		if productID != "" && !s.orderedProduct(contact.ID, productID) {
			continue
		}
		filtered = append(filtered, *contact)
	}

	start, end, pagination := paginate(len(filtered), page, limit)
	pageItems := filtered[start:end]
	if pageItems == nil {
		pageItems = []models.Contact{}
	}
	c.JSON(http.StatusOK, gin.H{
		"contacts":   pageItems,
		"pagination": pagination,
	})
}

func contactMatches(contact *models.Contact, search string) bool {
	return strings.Contains(strings.ToLower(contact.FirstName), search) ||
		strings.Contains(strings.ToLower(contact.LastName), search) ||
		strings.Contains(strings.ToLower(contact.Email), search)
}

func hasTag(contact *models.Contact, tagID string) bool {
	for _, t := range contact.Tags {
		if t.ID == tagID {
			return true
		}
	}
	return false
}

func (s *Server) enrolledIn(contactID, courseID string) bool {
	for _, e := range s.store.enrollments {
		if e.ContactID == contactID && e.CourseID == courseID {
			return true
		}
	}
	return false
}

func (s *Server) hasOrders(contactID string) bool {
	for _, id := range s.store.orderOrder {
		if s.store.orders[id].ContactID == contactID {
			return true
		}
	}
	return false
}

func (s *Server) orderedProduct(contactID, productID string) bool {
	for _, id := range s.store.orderOrder {
		o := s.store.orders[id]
		if o.ContactID != contactID {
			continue
		}
		for _, item := range o.Items {
			if item.ProductID == productID {
				return true
			}
		}
	}
	return false
}

// listContactsLegacy is the pre-pagination variant returning a bare array.
func (s *Server) listContactsLegacy(c *gin.Context) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	out := make([]models.Contact, 0, len(s.store.contactOrder))
	for _, id := range s.store.contactOrder {
		out = append(out, *s.store.contacts[id])
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) createContact(c *gin.Context) {
	var req models.ContactCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	if req.FirstName == "" || req.LastName == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "first_name and last_name are required"})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	contact := &models.Contact{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		Notes:      req.Notes,
		Source:     req.Source,
		Status:     req.Status,
		Language:   req.Language,
	}
	for _, tagID := range req.TagIDs {
		if tag, ok := s.store.tags[tagID]; ok {
			contact.Tags = append(contact.Tags, *tag)
		}
	}
	s.store.addContact(contact)
	c.JSON(http.StatusOK, contact)
}

func (s *Server) getContact(c *gin.Context) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	contact, ok := s.store.contacts[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Contact not found"})
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (s *Server) updateContact(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	contact, ok := s.store.contacts[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Contact not found"})
		return
	}
	applyContactUpdate(contact, fields)
	contact.UpdatedAt = now()
	c.JSON(http.StatusOK, contact)
}

func applyContactUpdate(contact *models.Contact, fields map[string]any) {
	setString := func(key string, dst *string) {
		if v, ok := fields[key].(string); ok {
			*dst = v
		}
	}
	setString("first_name", &contact.FirstName)
	setString("last_name", &contact.LastName)
	setString("email", &contact.Email)
	setString("phone", &contact.Phone)
	setString("address", &contact.Address)
	setString("city", &contact.City)
	setString("postal_code", &contact.PostalCode)
	setString("country", &contact.Country)
	setString("notes", &contact.Notes)
	setString("source", &contact.Source)
	setString("status", &contact.Status)
	setString("language", &contact.Language)
}

func (s *Server) deleteContact(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	id := c.Param("id")
	if _, ok := s.store.contacts[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Contact not found"})
		return
	}
	s.store.removeContact(id)
	c.JSON(http.StatusOK, gin.H{"message": "Contact deleted successfully"})
}

func (s *Server) addContactTags(c *gin.Context) {
	var req struct {
		TagIDs []string `json:"tag_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	contact, ok := s.store.contacts[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Contact not found"})
		return
	}
	for _, tagID := range req.TagIDs {
		tag, ok := s.store.tags[tagID]
		if !ok || hasTag(contact, tagID) {
			continue
		}
		contact.Tags = append(contact.Tags, *tag)
	}
	contact.UpdatedAt = now()
	c.JSON(http.StatusOK, gin.H{"message": "Tags added", "tags": contact.Tags})
}

// associateProduct creates a completed order holding the product, which is
// how the backend records a manual purchase.
func (s *Server) associateProduct(c *gin.Context) {
	var req struct {
		ProductID string `json:"product_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "product_id is required"})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	contact, ok := s.store.contacts[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Contact not found"})
		return
	}
	product, ok := s.store.products[req.ProductID]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Product not found"})
		return
	}

	order := &models.Order{
		ContactID:     contact.ID,
		Status:        "completed",
		PaymentStatus: "paid",
		Items: []models.OrderItem{{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    1,
			UnitPrice:   product.Price,
			TotalPrice:  product.Price,
		}},
	}
	s.store.addOrder(order)

	// A product linked to a course enrolls the buyer.
	if product.CourseID != "" {
		if _, ok := s.store.courses[product.CourseID]; ok {
			s.store.enroll(product.CourseID, contact.ID, "order")
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product associated", "order_id": order.ID})
}

func (s *Server) associateCourse(c *gin.Context) {
	var req struct {
		CourseID string `json:"course_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.CourseID == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "course_id is required"})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	contact, ok := s.store.contacts[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Contact not found"})
		return
	}
	if _, ok := s.store.courses[req.CourseID]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Course not found"})
		return
	}

	enrollment, created := s.store.enroll(req.CourseID, contact.ID, "manual")
	msg := "Course associated"
	if !created {
		msg = "Contact already enrolled"
	}
	c.JSON(http.StatusOK, gin.H{"message": msg, "enrollment_id": enrollment.ID})
}

func (s *Server) contactCourses(c *gin.Context) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	contactID := c.Param("id")
	if _, ok := s.store.contacts[contactID]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Contact not found"})
		return
	}

	out := []models.Enrollment{}
	for _, e := range s.store.enrollments {
		if e.ContactID != contactID {
			continue
		}
		enriched := *e
		if course, ok := s.store.courses[e.CourseID]; ok {
			enriched.Course = map[string]any{
				"id":    course.ID,
				"title": course.Title,
				"price": course.Price,
			}
		}
		out = append(out, enriched)
	}
	c.JSON(http.StatusOK, out)
}

package mockcrm

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/lolijho/crm-grab-backend-sub000/pkg/models"
)

// requireAdmin rejects non-admin callers with 403. Runs after requireAuth.
func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if u := currentUser(c); u == nil || u.Role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "Admin access required"})
			return
		}
		c.Next()
	}
}

func (s *Server) dashboardStats(c *gin.Context) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"total_contacts":  s.store.countContacts(""),
		"active_students": s.store.countContacts(models.StatusStudent),
		"total_orders":    len(s.store.orders),
		"leads":           s.store.countContacts(models.StatusLead),
	})
}

// dashboardInitialData bundles the stats, the first contact page and the
// small catalogs, for one-request dashboard loading.
func (s *Server) dashboardInitialData(c *gin.Context) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	const perPage = 100
	start, end, p := paginate(len(s.store.contactOrder), 1, perPage)
	contacts := make([]*models.Contact, 0, end-start)
	for _, id := range s.store.contactOrder[start:end] {
		contacts = append(contacts, s.store.contacts[id])
	}

	products := make([]*models.Product, 0, len(s.store.productOrder))
	for _, id := range s.store.productOrder {
		products = append(products, s.store.products[id])
	}
	courses := make([]*models.Course, 0, len(s.store.courseOrder))
	for _, id := range s.store.courseOrder {
		courses = append(courses, s.store.courses[id])
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": gin.H{
			"total_contacts":  s.store.countContacts(""),
			"active_students": s.store.countContacts(models.StatusStudent),
			"total_orders":    len(s.store.orders),
			"total_products":  len(s.store.products),
			"total_courses":   len(s.store.courses),
			"leads":           s.store.countContacts(models.StatusLead),
		},
		"contacts": gin.H{"contacts": contacts, "pagination": p},
		"products": products,
		"courses":  courses,
	})
}

func (s *Server) adminListUsers(c *gin.Context) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	users := make([]*models.User, 0, len(s.store.userOrder))
	for _, id := range s.store.userOrder {
		users = append(users, s.store.users[id])
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) adminCreateUser(c *gin.Context) {
	var req models.AdminUserCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if s.store.userByEmail(req.Email) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Email already registered"})
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "User creation failed"})
		return
	}
	role := req.Role
	if role == "" {
		role = "user"
	}

	// Admin-created accounts skip email verification.
	user := &models.User{
		ID:         newID(),
		Name:       req.Name,
		Email:      req.Email,
		Role:       role,
		IsVerified: true,
		IsActive:   true,
		CreatedAt:  now(),
	}
	s.store.addUser(user, string(hash))

	c.JSON(http.StatusOK, gin.H{
		"message": "User created successfully",
		"user":    user,
	})
}

func (s *Server) adminUpdateUser(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	user, ok := s.store.users[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
		return
	}

	if v, ok := fields["name"].(string); ok {
		user.Name = v
	}
	if v, ok := fields["role"].(string); ok {
		user.Role = v
	}
	if v, ok := fields["is_verified"].(bool); ok {
		user.IsVerified = v
	}
	if v, ok := fields["is_active"].(bool); ok {
		user.IsActive = v
	}
	if v, ok := fields["email"].(string); ok && v != user.Email {
		if s.store.userByEmail(v) != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Email already in use"})
			return
		}
		user.Email = v
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    user,
	})
}

func (s *Server) adminDeleteUser(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	id := c.Param("id")
	if id == currentUser(c).ID {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Cannot delete your own account"})
		return
	}
	if _, ok := s.store.users[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
		return
	}
	s.store.removeUser(id)

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func (s *Server) adminUserStats(c *gin.Context) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	var verified, admins, managers, regular int
	for _, u := range s.store.users {
		if u.IsVerified {
			verified++
		}
		switch u.Role {
		case "admin":
			admins++
		case "manager":
			managers++
		default:
			regular++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"total_users":      len(s.store.users),
		"verified_users":   verified,
		"unverified_users": len(s.store.users) - verified,
		"users_by_role": gin.H{
			"admin":   admins,
			"manager": managers,
			"user":    regular,
		},
	})
}

package mockcrm

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lolijho/crm-grab-backend-sub000/pkg/models"
)

func (s *Server) listCourses(c *gin.Context) {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 100)
	search := strings.ToLower(strings.TrimSpace(c.Query("search")))
	language := c.Query("language")
	category := c.Query("category")

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	var filtered []models.Course
	for _, id := range s.store.courseOrder {
		course := s.store.courses[id]
		if language != "" && course.Language != language {
			continue
		}
		if category != "" && course.Category != category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(course.Title), search) {
			continue
		}
		filtered = append(filtered, *course)
	}

	start, end, pagination := paginate(len(filtered), page, limit)
	pageItems := filtered[start:end]
	if pageItems == nil {
		pageItems = []models.Course{}
	}
	c.JSON(http.StatusOK, gin.H{"data": pageItems, "pagination": pagination})
}

func (s *Server) createCourse(c *gin.Context) {
	var course models.Course
	if err := c.ShouldBindJSON(&course); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	if course.Title == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "title is required"})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	s.store.addCourse(&course)
	c.JSON(http.StatusOK, course)
}

func (s *Server) getCourse(c *gin.Context) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	course, ok := s.store.courses[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Course not found"})
		return
	}
	c.JSON(http.StatusOK, course)
}

func (s *Server) updateCourse(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	course, ok := s.store.courses[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Course not found"})
		return
	}
	if v, ok := fields["title"].(string); ok {
		course.Title = v
	}
	if v, ok := fields["description"].(string); ok {
		course.Description = v
	}
	if v, ok := fields["instructor"].(string); ok {
		course.Instructor = v
	}
	if v, ok := fields["duration"].(string); ok {
		course.Duration = v
	}
	if v, ok := fields["price"].(float64); ok {
		course.Price = v
	}
	if v, ok := fields["category"].(string); ok {
		course.Category = v
	}
	if v, ok := fields["language"].(string); ok {
		course.Language = v
	}
	if v, ok := fields["is_active"].(bool); ok {
		course.IsActive = v
	}
	if v, ok := fields["max_students"].(float64); ok {
		m := int(v)
		course.MaxStudents = &m
	}
	course.UpdatedAt = now()
	c.JSON(http.StatusOK, course)
}

// deleteCourse also removes the course's enrollments, matching the backend
// cleanup behavior the deletion tests assert on.
func (s *Server) deleteCourse(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	id := c.Param("id")
	if _, ok := s.store.courses[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Course not found"})
		return
	}
	s.store.removeCourse(id)
	c.JSON(http.StatusOK, gin.H{"message": "Course deleted successfully"})
}

func (s *Server) courseLanguages(c *gin.Context) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	languages := s.store.distinctCourseValues(func(course *models.Course) string { return course.Language })
	if languages == nil {
		languages = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"languages": languages})
}

func (s *Server) courseCategories(c *gin.Context) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	categories := s.store.distinctCourseValues(func(course *models.Course) string { return course.Category })
	if categories == nil {
		categories = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (s *Server) courseInstructors(c *gin.Context) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	instructors := s.store.distinctCourseValues(func(course *models.Course) string { return course.Instructor })
	if instructors == nil {
		instructors = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"instructors": instructors})
}

func (s *Server) enrollContact(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	courseID := c.Param("id")
	contactID := c.Param("contact_id")
	if _, ok := s.store.courses[courseID]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Course not found"})
		return
	}
	if _, ok := s.store.contacts[contactID]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Contact not found"})
		return
	}

	enrollment, created := s.store.enroll(courseID, contactID, "manual")
	if !created {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Contact already enrolled in this course"})
		return
	}

	// Enrolling promotes a lead to student.
	if contact := s.store.contacts[contactID]; contact.Status == models.StatusLead {
		contact.Status = models.StatusStudent
		contact.UpdatedAt = now()
	}
	c.JSON(http.StatusOK, enrollment)
}

func (s *Server) courseStudents(c *gin.Context) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	courseID := c.Param("id")
	if _, ok := s.store.courses[courseID]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Course not found"})
		return
	}

	out := []models.Contact{}
	for _, e := range s.store.enrollments {
		if e.CourseID != courseID {
			continue
		}
		if contact, ok := s.store.contacts[e.ContactID]; ok {
			out = append(out, *contact)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) listEnrollments(c *gin.Context) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	out := []models.Enrollment{}
	for _, e := range s.store.enrollments {
		out = append(out, *e)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) deleteEnrollment(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	id := c.Param("id")
	if _, ok := s.store.enrollments[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Enrollment not found"})
		return
	}
	delete(s.store.enrollments, id)
	c.JSON(http.StatusOK, gin.H{"message": "Enrollment removed successfully"})
}

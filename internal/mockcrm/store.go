package mockcrm

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lolijho/crm-grab-backend-sub000/pkg/models"
)

// store is the in-memory state behind the mock backend. All access goes
// through the mutex; handlers run concurrently under gin.
type store struct {
	mu sync.RWMutex

	users         map[string]*models.User
	userOrder     []string
	passwords     map[string]string // user id -> bcrypt hash
	tokens        map[string]*accountToken
	contacts      map[string]*models.Contact
	contactOrder  []string // insertion order, list responses are stable
	courses       map[string]*models.Course
	courseOrder   []string
	products      map[string]*models.Product
	productOrder  []string
	crmProducts   map[string]*models.CRMProduct
	crmOrder      []string
	orders        map[string]*models.Order
	orderOrder    []string
	orderSeq      int
	tags          map[string]*models.Tag
	enrollments   map[string]*models.Enrollment
	messages      []models.Message
	inboundEmails []models.InboundEmail
	emailSettings models.EmailSettings

	wcSettings   models.WooSyncSettings
	wcCustomers  int
	wcProducts   int
	wcOrders     int
	lastCustSync *time.Time
	lastProdSync *time.Time
	lastOrdSync  *time.Time
	syncLogs     []map[string]any
}

func newStore() *store {
	return &store{
		users:       map[string]*models.User{},
		passwords:   map[string]string{},
		tokens:      map[string]*accountToken{},
		contacts:    map[string]*models.Contact{},
		courses:     map[string]*models.Course{},
		products:    map[string]*models.Product{},
		crmProducts: map[string]*models.CRMProduct{},
		orders:      map[string]*models.Order{},
		tags:        map[string]*models.Tag{},
		enrollments: map[string]*models.Enrollment{},
		wcSettings: models.WooSyncSettings{
			AutoSyncEnabled:       true,
			SyncCustomersEnabled:  true,
			SyncProductsEnabled:   true,
			SyncOrdersEnabled:     true,
			SyncIntervalOrders:    15,
			SyncIntervalCustomers: 30,
			SyncIntervalProducts:  60,
			FullSyncHour:          2,
		},
	}
}

// accountToken is a single-use email-verification or password-reset token.
type accountToken struct {
	UserID    string
	Type      string // email_verification | password_reset
	ExpiresAt time.Time
}

func (s *store) addUser(u *models.User, passwordHash string) {
	s.users[u.ID] = u
	s.userOrder = append(s.userOrder, u.ID)
	s.passwords[u.ID] = passwordHash
}

func (s *store) removeUser(id string) {
	delete(s.users, id)
	delete(s.passwords, id)
	s.userOrder = remove(s.userOrder, id)
	for tok, t := range s.tokens {
		if t.UserID == id {
			delete(s.tokens, tok)
		}
	}
}

// issueToken replaces any token of the same type for the user.
func (s *store) issueToken(userID, typ string, ttl time.Duration) string {
	for tok, t := range s.tokens {
		if t.UserID == userID && t.Type == typ {
			delete(s.tokens, tok)
		}
	}
	tok := newID()
	s.tokens[tok] = &accountToken{
		UserID:    userID,
		Type:      typ,
		ExpiresAt: time.Now().UTC().Add(ttl),
	}
	return tok
}

// consumeToken returns the owning user id and deletes the token. Expired
// or mistyped tokens do not match.
func (s *store) consumeToken(tok, typ string) (string, bool) {
	t, ok := s.tokens[tok]
	if !ok || t.Type != typ || time.Now().UTC().After(t.ExpiresAt) {
		return "", false
	}
	delete(s.tokens, tok)
	return t.UserID, true
}

func (s *store) countContacts(status string) int {
	if status == "" {
		return len(s.contacts)
	}
	n := 0
	for _, c := range s.contacts {
		if c.Status == status {
			n++
		}
	}
	return n
}

func newID() string { return uuid.NewString() }

func now() *time.Time {
	t := time.Now().UTC()
	return &t
}

func (s *store) addContact(c *models.Contact) {
	c.ID = newID()
	c.CreatedAt = now()
	c.UpdatedAt = now()
	if c.Status == "" {
		c.Status = models.StatusLead
	}
	s.contacts[c.ID] = c
	s.contactOrder = append(s.contactOrder, c.ID)
}

func (s *store) removeContact(id string) {
	delete(s.contacts, id)
	s.contactOrder = remove(s.contactOrder, id)
}

func (s *store) addCourse(c *models.Course) {
	c.ID = newID()
	c.CreatedAt = now()
	c.UpdatedAt = now()
	s.courses[c.ID] = c
	s.courseOrder = append(s.courseOrder, c.ID)
}

func (s *store) removeCourse(id string) {
	delete(s.courses, id)
	s.courseOrder = remove(s.courseOrder, id)
	for eid, e := range s.enrollments {
		if e.CourseID == id {
			delete(s.enrollments, eid)
		}
	}
}

func (s *store) addProduct(p *models.Product) {
	p.ID = newID()
	p.CreatedAt = now()
	p.UpdatedAt = now()
	if p.Source == "" {
		p.Source = "manual"
	}
	s.products[p.ID] = p
	s.productOrder = append(s.productOrder, p.ID)
}

func (s *store) addCRMProduct(p *models.CRMProduct) {
	p.ID = newID()
	p.CreatedAt = now()
	p.UpdatedAt = now()
	s.crmProducts[p.ID] = p
	s.crmOrder = append(s.crmOrder, p.ID)
}

func (s *store) addOrder(o *models.Order) {
	o.ID = newID()
	o.CreatedAt = now()
	o.UpdatedAt = now()
	s.orderSeq++
	o.OrderNumber = fmt.Sprintf("ORD-%05d", s.orderSeq)
	if o.Status == "" {
		o.Status = "pending"
	}
	if o.PaymentStatus == "" {
		o.PaymentStatus = "pending"
	}
	var total float64
	for i := range o.Items {
		o.Items[i].ID = newID()
		o.Items[i].OrderID = o.ID
		o.Items[i].CreatedAt = now()
		total += o.Items[i].TotalPrice
	}
	o.TotalAmount = total
	s.orders[o.ID] = o
	s.orderOrder = append(s.orderOrder, o.ID)
}

func (s *store) enroll(courseID, contactID, source string) (*models.Enrollment, bool) {
	for _, e := range s.enrollments {
		if e.CourseID == courseID && e.ContactID == contactID {
			return e, false
		}
	}
	e := &models.Enrollment{
		ID:         newID(),
		CourseID:   courseID,
		ContactID:  contactID,
		EnrolledAt: now(),
		Status:     "active",
		Source:     source,
	}
	s.enrollments[e.ID] = e
	return e, true
}

func (s *store) contactByEmail(email string) *models.Contact {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, id := range s.contactOrder {
		c := s.contacts[id]
		if strings.ToLower(c.Email) == email {
			return c
		}
	}
	return nil
}

func (s *store) userByEmail(email string) *models.User {
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u
		}
	}
	return nil
}

// distinct collects non-empty distinct values of a course attribute.
func (s *store) distinctCourseValues(get func(*models.Course) string) []string {
	seen := map[string]bool{}
	var out []string
	for _, id := range s.courseOrder {
		v := get(s.courses[id])
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

func remove(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// paginate clamps page/limit and returns the slice bounds plus the envelope.
// Totals are estimated the way the backend computes them: rows skipped plus
// rows returned, plus one when another page exists. Only the last page
// carries the true count; a past-the-end page over-reports.
func paginate(total, page, limit int) (start, end int, p models.Pagination) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 100
	}
	skip := (page - 1) * limit
	start = skip
	if start > total {
		start = total
	}
	end = start + limit
	if end > total {
		end = total
	}
	hasMore := end < total
	estimated := skip + (end - start)
	totalPages := page
	if hasMore {
		estimated++
		totalPages++
	}
	p = models.Pagination{
		CurrentPage: page,
		PerPage:     limit,
		TotalCount:  estimated,
		TotalPages:  totalPages,
		HasMore:     hasMore,
	}
	return start, end, p
}

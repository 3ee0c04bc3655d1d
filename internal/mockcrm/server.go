// Package mockcrm is an in-memory stand-in for the CRM backend. It
// implements the HTTP contract the acceptance suites exercise so the
// harness can be verified without a deployment: JWT login, contact/course/
// product/order CRUD with the pagination envelope, enrollments, imports,
// the signed Postmark inbound webhook, email settings and WooCommerce sync.
package mockcrm

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Config seeds the mock backend.
type Config struct {
	JWTSecret     string
	WebhookSecret string
	AdminEmail    string
	AdminPassword string
}

func (c Config) withDefaults() Config {
	if c.JWTSecret == "" {
		c.JWTSecret = "mock-jwt-secret"
	}
	if c.AdminEmail == "" {
		c.AdminEmail = "admin@grabovoi.com"
	}
	if c.AdminPassword == "" {
		c.AdminPassword = "admin123"
	}
	return c
}

// Server is the mock backend.
type Server struct {
	cfg    Config
	store  *store
	router *gin.Engine
	log    *zap.SugaredLogger
	cron   *cron.Cron
}

// New builds the mock backend and seeds the admin account.
func New(cfg Config, log *zap.SugaredLogger) (*Server, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	cfg = cfg.withDefaults()

	s := &Server{
		cfg:   cfg,
		store: newStore(),
		log:   log,
	}
	if err := s.seedAdmin(); err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api")

	// Unauthenticated surface.
	api.GET("/health", s.health)
	api.POST("/login", s.login)
	api.POST("/register", s.register)
	api.POST("/verify-email", s.verifyEmail)
	api.POST("/forgot-password", s.forgotPassword)
	api.POST("/reset-password", s.resetPassword)
	api.POST("/webhooks/postmark/inbound", s.postmarkInbound)

	// Everything else requires a bearer token.
	authed := api.Group("")
	authed.Use(s.requireAuth())
	{
		authed.GET("/auth/me", s.me)

		authed.GET("/contacts", s.listContacts)
		authed.GET("/contacts/original", s.listContactsLegacy)
		authed.POST("/contacts", s.createContact)
		authed.GET("/contacts/:id", s.getContact)
		authed.PUT("/contacts/:id", s.updateContact)
		authed.DELETE("/contacts/:id", s.deleteContact)
		authed.POST("/contacts/:id/tags", s.addContactTags)
		authed.POST("/contacts/:id/associate-product", s.associateProduct)
		authed.POST("/contacts/:id/associate-course", s.associateCourse)
		authed.GET("/contacts/:id/courses", s.contactCourses)

		authed.GET("/courses", s.listCourses)
		authed.POST("/courses", s.createCourse)
		authed.GET("/courses/languages", s.courseLanguages)
		authed.GET("/courses/categories", s.courseCategories)
		authed.GET("/courses/instructors", s.courseInstructors)
		authed.GET("/courses/:id", s.getCourse)
		authed.PUT("/courses/:id", s.updateCourse)
		authed.DELETE("/courses/:id", s.deleteCourse)
		authed.POST("/courses/:id/enroll/:contact_id", s.enrollContact)
		authed.GET("/courses/:id/students", s.courseStudents)
		authed.GET("/enrollments", s.listEnrollments)
		authed.DELETE("/enrollments/:id", s.deleteEnrollment)

		authed.GET("/products", s.listProducts)
		authed.POST("/products", s.createProduct)
		authed.GET("/products/:id", s.getProduct)
		authed.PUT("/products/:id", s.updateProduct)
		authed.DELETE("/products/:id", s.deleteProduct)

		authed.GET("/crm-products", s.listCRMProducts)
		authed.POST("/crm-products", s.createCRMProduct)
		authed.GET("/crm-products/:id", s.getCRMProduct)
		authed.PUT("/crm-products/:id", s.updateCRMProduct)
		authed.DELETE("/crm-products/:id", s.deleteCRMProduct)
		authed.GET("/crm-products/:id/payment-links", s.crmProductPaymentLinks)

		authed.GET("/orders", s.listOrders)
		authed.GET("/orders/original", s.listOrdersLegacy)
		authed.POST("/orders", s.createOrder)
		authed.GET("/orders/:id", s.getOrder)
		authed.PUT("/orders/:id", s.updateOrder)
		authed.DELETE("/orders/:id", s.deleteOrder)

		authed.GET("/tags", s.listTags)
		authed.POST("/tags", s.createTag)
		authed.DELETE("/tags/:id", s.deleteTag)

		authed.POST("/import/csv/preview", s.csvPreview)
		authed.POST("/import/csv/contacts", s.importCSVContacts)
		authed.POST("/import/csv/orders", s.importCSVOrders)
		authed.POST("/import/google-sheets/preview", s.sheetsPreview)
		authed.POST("/import/google-sheets/contacts", s.sheetsImportContacts)
		authed.POST("/import/google-sheets/orders", s.sheetsImportOrders)

		authed.GET("/email-settings", s.getEmailSettings)
		authed.PUT("/email-settings", s.updateEmailSettings)
		authed.POST("/messages/send-email", s.sendEmail)
		authed.GET("/messages", s.listMessages)
		authed.GET("/messages/client/:client_id", s.messagesByClient)
		authed.GET("/inbound-emails", s.listInboundEmails)
		authed.GET("/inbound-emails/:id", s.getInboundEmail)

		authed.GET("/woocommerce/sync/status", s.wooSyncStatus)
		authed.POST("/woocommerce/sync/customers", s.wooSyncCustomers)
		authed.POST("/woocommerce/sync/products", s.wooSyncProducts)
		authed.POST("/woocommerce/sync/orders", s.wooSyncOrders)
		authed.POST("/woocommerce/sync/all", s.wooSyncAll)
		authed.GET("/woocommerce/test-connection", s.wooTestConnection)
		authed.GET("/woocommerce/sync/settings", s.wooSyncSettingsGet)
		authed.PUT("/woocommerce/sync/settings", s.wooSyncSettingsPut)

		authed.GET("/dashboard/stats", s.dashboardStats)
		authed.GET("/dashboard/initial-data", s.dashboardInitialData)

		// Admin-only surface.
		admin := authed.Group("/admin")
		admin.Use(requireAdmin())
		{
			admin.GET("/users", s.adminListUsers)
			admin.POST("/users", s.adminCreateUser)
			admin.GET("/users/stats", s.adminUserStats)
			admin.PUT("/users/:id", s.adminUpdateUser)
			admin.DELETE("/users/:id", s.adminDeleteUser)
		}
	}

	s.router = router
	return s, nil
}

// Handler returns the HTTP handler, for httptest and for serving.
func (s *Server) Handler() http.Handler { return s.router }

// StartAutoSync launches the interval auto-sync jobs when enabled in
// settings. Stop with StopAutoSync.
func (s *Server) StartAutoSync() {
	s.store.mu.RLock()
	settings := s.store.wcSettings
	s.store.mu.RUnlock()
	if !settings.AutoSyncEnabled {
		return
	}

	s.cron = cron.New()
	addEvery := func(minutes int, job func()) {
		if minutes <= 0 {
			return
		}
		spec := "@every " + (time.Duration(minutes) * time.Minute).String()
		if _, err := s.cron.AddFunc(spec, job); err != nil {
			s.log.Warnw("failed to schedule auto-sync job", "spec", spec, "error", err)
		}
	}
	if settings.SyncCustomersEnabled {
		addEvery(settings.SyncIntervalCustomers, func() { s.runSync("customers", false, "scheduler") })
	}
	if settings.SyncProductsEnabled {
		addEvery(settings.SyncIntervalProducts, func() { s.runSync("products", false, "scheduler") })
	}
	if settings.SyncOrdersEnabled {
		addEvery(settings.SyncIntervalOrders, func() { s.runSync("orders", false, "scheduler") })
	}
	s.cron.Start()
	s.log.Infow("auto-sync scheduler started",
		"customers_min", settings.SyncIntervalCustomers,
		"products_min", settings.SyncIntervalProducts,
		"orders_min", settings.SyncIntervalOrders)
}

// StopAutoSync stops the scheduler if it is running.
func (s *Server) StopAutoSync() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "grabovoi-crm-mock"})
}

package models

import "time"

// Product is a sellable product, either synced from WooCommerce or created
// manually.
type Product struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	Price        float64    `json:"price"`
	Category     string     `json:"category,omitempty"`
	SKU          string     `json:"sku,omitempty"`
	IsActive     bool       `json:"is_active"`
	CourseID     string     `json:"course_id,omitempty"`
	CRMProductID string     `json:"crm_product_id,omitempty"`
	Source       string     `json:"source,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// CRMProduct is a custom CRM product, kept separate from the WooCommerce
// catalog.
type CRMProduct struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Description       string     `json:"description,omitempty"`
	BasePrice         float64    `json:"base_price"`
	Category          string     `json:"category,omitempty"`
	IsActive          bool       `json:"is_active"`
	PaymentLinksCount int        `json:"payment_links_count"`
	CreatedAt         *time.Time `json:"created_at,omitempty"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}

// OrderItem is a single line of an order.
type OrderItem struct {
	ID          string     `json:"id,omitempty"`
	OrderID     string     `json:"order_id,omitempty"`
	ProductID   string     `json:"product_id,omitempty"`
	ProductName string     `json:"product_name"`
	Quantity    int        `json:"quantity"`
	UnitPrice   float64    `json:"unit_price"`
	TotalPrice  float64    `json:"total_price"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// Order is a purchase tied to a contact.
type Order struct {
	ID            string         `json:"id"`
	OrderNumber   string         `json:"order_number"`
	ContactID     string         `json:"contact_id,omitempty"`
	Status        string         `json:"status"`
	PaymentMethod string         `json:"payment_method,omitempty"`
	PaymentStatus string         `json:"payment_status"`
	Notes         string         `json:"notes,omitempty"`
	TotalAmount   float64        `json:"total_amount"`
	Contact       map[string]any `json:"contact,omitempty"`
	Items         []OrderItem    `json:"items,omitempty"`
	CreatedAt     *time.Time     `json:"created_at,omitempty"`
	UpdatedAt     *time.Time     `json:"updated_at,omitempty"`
}

// OrderCreate is the body of POST /api/orders.
type OrderCreate struct {
	ContactID     string      `json:"contact_id,omitempty"`
	Status        string      `json:"status,omitempty"`
	PaymentMethod string      `json:"payment_method,omitempty"`
	PaymentStatus string      `json:"payment_status,omitempty"`
	Notes         string      `json:"notes,omitempty"`
	Items         []OrderItem `json:"items"`
}

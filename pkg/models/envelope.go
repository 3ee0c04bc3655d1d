package models

// Pagination is the envelope attached to every paginated list response.
type Pagination struct {
	CurrentPage int  `json:"current_page"`
	PerPage     int  `json:"per_page"`
	TotalCount  int  `json:"total_count"`
	TotalPages  int  `json:"total_pages"`
	HasMore     bool `json:"has_more,omitempty"`
}

// ContactList is the response of GET /api/contacts.
type ContactList struct {
	Contacts   []Contact  `json:"contacts"`
	Pagination Pagination `json:"pagination"`
}

// OrderList is the response of GET /api/orders.
type OrderList struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}

// CourseList is the response of GET /api/courses.
type CourseList struct {
	Data       []Course   `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// ProductList is the response of GET /api/products.
type ProductList struct {
	Data       []Product  `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// CRMProductList is the response of GET /api/crm-products.
type CRMProductList struct {
	Data       []CRMProduct `json:"data"`
	Pagination Pagination   `json:"pagination"`
}

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/lolijho/crm-grab-backend-sub000/pkg/models"
)

// ContactFilter holds the query parameters of GET /api/contacts. Zero
// values are omitted.
type ContactFilter struct {
	Page      int
	Limit     int
	Search    string
	Status    string
	Language  string
	HasOrders *bool
	CourseID  string
	TagID     string
	ProductID string
}

// Values encodes the filter as URL query parameters.
func (f ContactFilter) Values() url.Values {
	v := url.Values{}
	if f.Page > 0 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.Status != "" {
		v.Set("status", f.Status)
	}
	if f.Language != "" {
		v.Set("language", f.Language)
	}
	if f.HasOrders != nil {
		v.Set("has_orders", strconv.FormatBool(*f.HasOrders))
	}
	if f.CourseID != "" {
		v.Set("course_id", f.CourseID)
	}
	if f.TagID != "" {
		v.Set("tag_id", f.TagID)
	}
	if f.ProductID != "" {
		v.Set("product_id", f.ProductID)
	}
	return v
}

// ListContacts returns the paginated contact list.
func (c *Client) ListContacts(ctx context.Context, filter ContactFilter) (*models.ContactList, error) {
	var out models.ContactList
	if err := c.decodeExpected(ctx, http.MethodGet, "/api/contacts", nil, &out, http.StatusOK, WithQuery(filter.Values())); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListContactsLegacy returns the bare-list legacy variant.
func (c *Client) ListContactsLegacy(ctx context.Context) ([]models.Contact, error) {
	var out []models.Contact
	if err := c.decodeExpected(ctx, http.MethodGet, "/api/contacts/original", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// GetContact fetches one contact by id.
func (c *Client) GetContact(ctx context.Context, id string) (*models.Contact, error) {
	var out models.Contact
	if err := c.decodeExpected(ctx, http.MethodGet, "/api/contacts/"+id, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateContact creates a contact.
func (c *Client) CreateContact(ctx context.Context, req models.ContactCreate) (*models.Contact, error) {
	var out models.Contact
	if err := c.decodeExpected(ctx, http.MethodPost, "/api/contacts", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateContact applies a partial update.
func (c *Client) UpdateContact(ctx context.Context, id string, fields map[string]any) (*models.Contact, error) {
	var out models.Contact
	if err := c.decodeExpected(ctx, http.MethodPut, "/api/contacts/"+id, fields, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteContact removes a contact.
func (c *Client) DeleteContact(ctx context.Context, id string) error {
	return c.decodeExpected(ctx, http.MethodDelete, "/api/contacts/"+id, nil, nil, http.StatusOK)
}

// AddContactTags attaches tags to a contact.
func (c *Client) AddContactTags(ctx context.Context, contactID string, tagIDs []string) error {
	body := map[string]any{"tag_ids": tagIDs}
	return c.decodeExpected(ctx, http.MethodPost, "/api/contacts/"+contactID+"/tags", body, nil, http.StatusOK)
}

// AssociateProduct links a product to a contact, creating the backing order.
func (c *Client) AssociateProduct(ctx context.Context, contactID, productID string) error {
	body := map[string]any{"product_id": productID}
	path := fmt.Sprintf("/api/contacts/%s/associate-product", contactID)
	return c.decodeExpected(ctx, http.MethodPost, path, body, nil, http.StatusOK)
}

// AssociateCourse enrolls a contact through the association endpoint.
func (c *Client) AssociateCourse(ctx context.Context, contactID, courseID string) error {
	body := map[string]any{"course_id": courseID}
	path := fmt.Sprintf("/api/contacts/%s/associate-course", contactID)
	return c.decodeExpected(ctx, http.MethodPost, path, body, nil, http.StatusOK)
}

// ContactCourses lists the courses a contact is enrolled in.
func (c *Client) ContactCourses(ctx context.Context, contactID string) ([]models.Enrollment, error) {
	var out []models.Enrollment
	path := fmt.Sprintf("/api/contacts/%s/courses", contactID)
	if err := c.decodeExpected(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

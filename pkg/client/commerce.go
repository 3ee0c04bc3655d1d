package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/lolijho/crm-grab-backend-sub000/pkg/models"
)

func pageQuery(page, limit int) url.Values {
	v := url.Values{}
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	return v
}

// ListProducts returns the paginated product list.
func (c *Client) ListProducts(ctx context.Context, page, limit int) (*models.ProductList, error) {
	var out models.ProductList
	if err := c.decodeExpected(ctx, http.MethodGet, "/api/products", nil, &out, http.StatusOK, WithQuery(pageQuery(page, limit))); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProduct creates a product.
func (c *Client) CreateProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	var out models.Product
	if err := c.decodeExpected(ctx, http.MethodPost, "/api/products", product, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProduct fetches one product by id.
func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var out models.Product
	if err := c.decodeExpected(ctx, http.MethodGet, "/api/products/"+id, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProduct applies a partial update.
func (c *Client) UpdateProduct(ctx context.Context, id string, fields map[string]any) (*models.Product, error) {
	var out models.Product
	if err := c.decodeExpected(ctx, http.MethodPut, "/api/products/"+id, fields, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.decodeExpected(ctx, http.MethodDelete, "/api/products/"+id, nil, nil, http.StatusOK)
}

// ListCRMProducts returns the paginated CRM product list.
func (c *Client) ListCRMProducts(ctx context.Context, page, limit int) (*models.CRMProductList, error) {
	var out models.CRMProductList
	if err := c.decodeExpected(ctx, http.MethodGet, "/api/crm-products", nil, &out, http.StatusOK, WithQuery(pageQuery(page, limit))); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCRMProduct creates a CRM product.
func (c *Client) CreateCRMProduct(ctx context.Context, product models.CRMProduct) (*models.CRMProduct, error) {
	var out models.CRMProduct
	if err := c.decodeExpected(ctx, http.MethodPost, "/api/crm-products", product, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCRMProduct fetches one CRM product by id.
func (c *Client) GetCRMProduct(ctx context.Context, id string) (*models.CRMProduct, error) {
	var out models.CRMProduct
	if err := c.decodeExpected(ctx, http.MethodGet, "/api/crm-products/"+id, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCRMProduct applies a partial update.
func (c *Client) UpdateCRMProduct(ctx context.Context, id string, fields map[string]any) (*models.CRMProduct, error) {
	var out models.CRMProduct
	if err := c.decodeExpected(ctx, http.MethodPut, "/api/crm-products/"+id, fields, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCRMProduct removes a CRM product.
func (c *Client) DeleteCRMProduct(ctx context.Context, id string) error {
	return c.decodeExpected(ctx, http.MethodDelete, "/api/crm-products/"+id, nil, nil, http.StatusOK)
}

// CRMProductPaymentLinks lists the payment links attached to a CRM product.
func (c *Client) CRMProductPaymentLinks(ctx context.Context, id string) ([]map[string]any, error) {
	var out []map[string]any
	if err := c.decodeExpected(ctx, http.MethodGet, "/api/crm-products/"+id+"/payment-links", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// ListOrders returns the paginated order list.
func (c *Client) ListOrders(ctx context.Context, page, limit int) (*models.OrderList, error) {
	var out models.OrderList
	if err := c.decodeExpected(ctx, http.MethodGet, "/api/orders", nil, &out, http.StatusOK, WithQuery(pageQuery(page, limit))); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListOrdersLegacy returns the bare-list legacy variant of the order list.
func (c *Client) ListOrdersLegacy(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	if err := c.decodeExpected(ctx, http.MethodGet, "/api/orders/original", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateOrder creates an order with its items.
func (c *Client) CreateOrder(ctx context.Context, req models.OrderCreate) (*models.Order, error) {
	var out models.Order
	if err := c.decodeExpected(ctx, http.MethodPost, "/api/orders", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetOrder fetches one order by id.
func (c *Client) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var out models.Order
	if err := c.decodeExpected(ctx, http.MethodGet, "/api/orders/"+id, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateOrder applies a partial update.
func (c *Client) UpdateOrder(ctx context.Context, id string, fields map[string]any) (*models.Order, error) {
	var out models.Order
	if err := c.decodeExpected(ctx, http.MethodPut, "/api/orders/"+id, fields, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteOrder removes an order.
func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	return c.decodeExpected(ctx, http.MethodDelete, "/api/orders/"+id, nil, nil, http.StatusOK)
}

// ListTags lists all tags.
func (c *Client) ListTags(ctx context.Context) ([]models.Tag, error) {
	var out []models.Tag
	if err := c.decodeExpected(ctx, http.MethodGet, "/api/tags", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTag creates a tag.
func (c *Client) CreateTag(ctx context.Context, tag models.Tag) (*models.Tag, error) {
	var out models.Tag
	if err := c.decodeExpected(ctx, http.MethodPost, "/api/tags", tag, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTag removes a tag.
func (c *Client) DeleteTag(ctx context.Context, id string) error {
	return c.decodeExpected(ctx, http.MethodDelete, "/api/tags/"+id, nil, nil, http.StatusOK)
}

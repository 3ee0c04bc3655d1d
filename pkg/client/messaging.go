package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/lolijho/crm-grab-backend-sub000/pkg/models"
	"github.com/lolijho/crm-grab-backend-sub000/pkg/signature"
)

// PostInbound delivers a raw webhook payload signed with secret. The body is
// sent byte-exact so the digest the backend computes matches.
func (c *Client) PostInbound(ctx context.Context, secret string, payload []byte) (*Response, error) {
	sig := signature.Sign(secret, payload)
	return c.PostInboundSigned(ctx, sig, payload)
}

// PostInboundSigned delivers a webhook payload with an explicit signature
// header value; pass an empty sig to omit the header.
func (c *Client) PostInboundSigned(ctx context.Context, sig string, payload []byte) (*Response, error) {
	opts := []RequestOption{WithRawBody("application/json", payload), WithoutAuth()}
	if sig != "" {
		opts = append(opts, WithHeader(signature.Header, sig))
	}
	return c.Do(ctx, http.MethodPost, "/api/webhooks/postmark/inbound", nil, opts...)
}

// ListInboundEmails returns inbound emails, newest first. The endpoint uses
// limit/skip rather than the pagination envelope.
func (c *Client) ListInboundEmails(ctx context.Context, limit, skip int) ([]models.InboundEmail, error) {
	var out []models.InboundEmail
	if err := c.decodeExpected(ctx, http.MethodGet, "/api/inbound-emails", nil, &out, http.StatusOK, WithQuery(limitSkipQuery(limit, skip))); err != nil {
		return nil, err
	}
	return out, nil
}

// GetInboundEmail fetches one inbound email by id.
func (c *Client) GetInboundEmail(ctx context.Context, id string) (*models.InboundEmail, error) {
	var out models.InboundEmail
	if err := c.decodeExpected(ctx, http.MethodGet, "/api/inbound-emails/"+id, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendEmail sends an outbound email to a contact.
func (c *Client) SendEmail(ctx context.Context, req models.SendEmailRequest) (*models.Message, error) {
	var out models.Message
	if err := c.decodeExpected(ctx, http.MethodPost, "/api/messages/send-email", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMessages returns the caller's outbound messages, newest first.
func (c *Client) ListMessages(ctx context.Context, limit, skip int) ([]models.Message, error) {
	var out []models.Message
	if err := c.decodeExpected(ctx, http.MethodGet, "/api/messages", nil, &out, http.StatusOK, WithQuery(limitSkipQuery(limit, skip))); err != nil {
		return nil, err
	}
	return out, nil
}

// MessagesByClient returns the caller's messages sent to one contact.
func (c *Client) MessagesByClient(ctx context.Context, clientID string) ([]models.Message, error) {
	var out []models.Message
	if err := c.decodeExpected(ctx, http.MethodGet, "/api/messages/client/"+clientID, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func limitSkipQuery(limit, skip int) url.Values {
	v := url.Values{}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	if skip > 0 {
		v.Set("skip", strconv.Itoa(skip))
	}
	return v
}

// GetEmailSettings fetches the SMTP settings.
func (c *Client) GetEmailSettings(ctx context.Context) (*models.EmailSettings, error) {
	var out models.EmailSettings
	if err := c.decodeExpected(ctx, http.MethodGet, "/api/email-settings", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateEmailSettings stores new SMTP settings.
func (c *Client) UpdateEmailSettings(ctx context.Context, settings models.EmailSettings) (*models.EmailSettings, error) {
	var out models.EmailSettings
	if err := c.decodeExpected(ctx, http.MethodPut, "/api/email-settings", settings, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

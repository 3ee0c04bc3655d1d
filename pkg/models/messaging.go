package models

import "time"

// Message is an outbound email sent through the CRM.
type Message struct {
	ID             string     `json:"id"`
	RecipientID    string     `json:"recipient_id"`
	RecipientEmail string     `json:"recipient_email"`
	RecipientName  string     `json:"recipient_name,omitempty"`
	Subject        string     `json:"subject"`
	Content        string     `json:"content"`
	MessageType    string     `json:"message_type"`
	Status         string     `json:"status"` // sent, failed, pending
	SentAt         *time.Time `json:"sent_at,omitempty"`
	ErrorMessage   string     `json:"error_message,omitempty"`
	CreatedBy      string     `json:"created_by"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
}

// SendEmailRequest is the body of POST /api/messages/send-email.
type SendEmailRequest struct {
	RecipientID    string `json:"recipient_id"`
	RecipientEmail string `json:"recipient_email"`
	Subject        string `json:"subject"`
	Content        string `json:"content"`
	MessageType    string `json:"message_type,omitempty"`
}

// InboundEmail is an email received through the Postmark inbound webhook.
type InboundEmail struct {
	ID           string     `json:"id"`
	MessageID    string     `json:"message_id"`
	FromEmail    string     `json:"from_email"`
	FromName     string     `json:"from_name,omitempty"`
	ToEmail      string     `json:"to_email"`
	Subject      string     `json:"subject"`
	TextBody     string     `json:"text_body,omitempty"`
	HTMLBody     string     `json:"html_body,omitempty"`
	ReceivedDate *time.Time `json:"received_date,omitempty"`
	Processed    bool       `json:"processed"`
	ClientID     string     `json:"client_id,omitempty"`
	ClientName   string     `json:"client_name,omitempty"`
	PostmarkID   string     `json:"postmark_id,omitempty"`
}

// PostmarkInbound mirrors the Postmark inbound webhook payload fields the
// backend extracts.
type PostmarkInbound struct {
	MessageID string           `json:"MessageID"`
	From      string           `json:"From"`
	FromName  string           `json:"FromName,omitempty"`
	To        string           `json:"To"`
	Subject   string           `json:"Subject"`
	TextBody  string           `json:"TextBody,omitempty"`
	HTMLBody  string           `json:"HtmlBody,omitempty"`
	Date      string           `json:"Date,omitempty"`
	Headers   []map[string]any `json:"Headers,omitempty"`
}

// EmailSettings is the SMTP configuration exchanged on /api/email-settings.
type EmailSettings struct {
	SMTPServer string `json:"smtp_server,omitempty"`
	SMTPPort   int    `json:"smtp_port,omitempty"`
	Username   string `json:"username,omitempty"`
	Password   string `json:"password,omitempty"`
	FromEmail  string `json:"from_email,omitempty"`
	FromName   string `json:"from_name,omitempty"`
	UseTLS     *bool  `json:"use_tls,omitempty"`
}

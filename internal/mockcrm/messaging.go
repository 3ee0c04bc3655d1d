package mockcrm

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lolijho/crm-grab-backend-sub000/pkg/models"
	"github.com/lolijho/crm-grab-backend-sub000/pkg/signature"
)

func (s *Server) getEmailSettings(c *gin.Context) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	c.JSON(http.StatusOK, s.store.emailSettings)
}

func (s *Server) updateEmailSettings(c *gin.Context) {
	var settings models.EmailSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	s.store.emailSettings = settings
	c.JSON(http.StatusOK, settings)
}

// sendEmail records the message as sent; the mock has no SMTP transport.
func (s *Server) sendEmail(c *gin.Context) {
	var req models.SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	if req.RecipientEmail == "" || req.Subject == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "recipient_email and subject are required"})
		return
	}
	messageType := req.MessageType
	if messageType == "" {
		messageType = "email"
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	msg := models.Message{
		ID:             newID(),
		RecipientID:    req.RecipientID,
		RecipientEmail: req.RecipientEmail,
		Subject:        req.Subject,
		Content:        req.Content,
		MessageType:    messageType,
		Status:         "sent",
		SentAt:         now(),
		CreatedBy:      currentUser(c).ID,
		CreatedAt:      now(),
	}
	if contact, ok := s.store.contacts[req.RecipientID]; ok {
		msg.RecipientName = strings.TrimSpace(contact.FirstName + " " + contact.LastName)
	}
	s.store.messages = append([]models.Message{msg}, s.store.messages...)
	c.JSON(http.StatusOK, msg)
}

func (s *Server) listMessages(c *gin.Context) {
	limit := intQuery(c, "limit", 50)
	skip := intQuery(c, "skip", 0)
	recipientID := c.Query("recipient_id")
	userID := currentUser(c).ID

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	out := []models.Message{}
	for _, m := range s.store.messages {
		if m.CreatedBy != userID {
			continue
		}
		if recipientID != "" && m.RecipientID != recipientID {
			continue
		}
		out = append(out, m)
	}
	c.JSON(http.StatusOK, window(out, limit, skip))
}

// messagesByClient returns every message the caller sent to one contact,
// newest first.
func (s *Server) messagesByClient(c *gin.Context) {
	clientID := c.Param("client_id")
	userID := currentUser(c).ID

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	out := []models.Message{}
	for _, m := range s.store.messages {
		if m.CreatedBy == userID && m.RecipientID == clientID {
			out = append(out, m)
		}
	}
	c.JSON(http.StatusOK, out)
}

func window[T any](items []T, limit, skip int) []T {
	if skip > len(items) {
		skip = len(items)
	}
	items = items[skip:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// postmarkInbound authenticates the webhook by HMAC signature over the raw
// body, then records the email and links it to a contact by sender address.
func (s *Server) postmarkInbound(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Unreadable body"})
		return
	}

	sig := c.GetHeader(signature.Header)
	if !signature.Verify(s.cfg.WebhookSecret, body, sig) {
		s.log.Warnw("invalid inbound webhook signature")
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid webhook signature"})
		return
	}

	var payload models.PostmarkInbound
	if err := json.Unmarshal(body, &payload); err != nil || payload.From == "" || payload.To == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid email data"})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	email := models.InboundEmail{
		ID:           newID(),
		MessageID:    payload.MessageID,
		FromEmail:    strings.ToLower(payload.From),
		FromName:     payload.FromName,
		ToEmail:      strings.ToLower(payload.To),
		Subject:      payload.Subject,
		TextBody:     payload.TextBody,
		HTMLBody:     payload.HTMLBody,
		ReceivedDate: now(),
	}
	if contact := s.store.contactByEmail(email.FromEmail); contact != nil {
		email.ClientID = contact.ID
		email.ClientName = strings.TrimSpace(contact.FirstName + " " + contact.LastName)
		email.Processed = true
	}
	s.store.inboundEmails = append([]models.InboundEmail{email}, s.store.inboundEmails...)

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"message":  "Email processed successfully",
		"email_id": email.ID,
	})
}

func (s *Server) listInboundEmails(c *gin.Context) {
	limit := intQuery(c, "limit", 50)
	skip := intQuery(c, "skip", 0)
	clientID := c.Query("client_id")

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	out := []models.InboundEmail{}
	for _, e := range s.store.inboundEmails {
		if clientID != "" && e.ClientID != clientID {
			continue
		}
		out = append(out, e)
	}
	c.JSON(http.StatusOK, window(out, limit, skip))
}

func (s *Server) getInboundEmail(c *gin.Context) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	id := c.Param("id")
	for _, e := range s.store.inboundEmails {
		if e.ID == id {
			c.JSON(http.StatusOK, e)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "Email not found"})
}

package suites

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lolijho/crm-grab-backend-sub000/internal/harness"
	"github.com/lolijho/crm-grab-backend-sub000/pkg/models"
)

// runMessaging exercises email settings and outbound messages.
func runMessaging(ctx context.Context, sc *Context) error {
	if err := sc.login(ctx); err != nil {
		return err
	}
	api := sc.Runner.Client()

	sc.Runner.Run(ctx, harness.Case{
		Name:           "email settings",
		Method:         http.MethodGet,
		Path:           "/api/email-settings",
		ExpectedStatus: http.StatusOK,
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:   "update email settings",
		Method: http.MethodPut,
		Path:   "/api/email-settings",
		Body: models.EmailSettings{
			SMTPServer: "smtp.example.com",
			SMTPPort:   587,
			FromEmail:  "noreply@grabovoi.com",
			FromName:   "Grabovoi CRM",
		},
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.FieldEquals("smtp_server", "smtp.example.com"),
			harness.FieldEquals("smtp_port", 587),
		},
	})

	recipient, err := api.CreateContact(ctx, models.ContactCreate{
		FirstName: "Franca",
		LastName:  "Riva",
		Email:     uniqueEmail("franca.riva"),
		Status:    models.StatusClient,
	})
	if err != nil {
		return fmt.Errorf("setup recipient: %w", err)
	}

	sc.Runner.Run(ctx, harness.Case{
		Name:   "send email",
		Method: http.MethodPost,
		Path:   "/api/messages/send-email",
		Body: models.SendEmailRequest{
			RecipientID:    recipient.ID,
			RecipientEmail: recipient.Email,
			Subject:        "Benvenuta",
			Content:        "Grazie per la registrazione.",
		},
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.FieldEquals("status", "sent"),
			harness.FieldEquals("recipient_email", recipient.Email),
		},
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "messages listing",
		Method:         http.MethodGet,
		Path:           "/api/messages",
		Query:          mustQuery("limit", "10", "skip", "0"),
		ExpectedStatus: http.StatusOK,
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "messages filtered by client",
		Method:         http.MethodGet,
		Path:           "/api/messages/client/" + recipient.ID,
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			func(r *harness.Result) error {
				var msgs []models.Message
				if err := json.Unmarshal(r.Raw, &msgs); err != nil {
					return fmt.Errorf("client messages is not an array: %w", err)
				}
				for _, m := range msgs {
					if m.RecipientID != recipient.ID {
						return fmt.Errorf("message %s addressed to %s leaked into client filter", m.ID, m.RecipientID)
					}
				}
				if len(msgs) == 0 {
					return fmt.Errorf("sent message missing from client filter")
				}
				return nil
			},
		},
	})

	messages, err := api.ListMessages(ctx, 50, 0)
	if err != nil {
		return fmt.Errorf("list messages: %w", err)
	}
	found := false
	for _, m := range messages {
		if m.RecipientID == recipient.ID {
			found = true
			break
		}
	}
	if !found {
		sc.Log.Warnw("sent message not present in listing", "recipient", recipient.ID)
	}
	return nil
}

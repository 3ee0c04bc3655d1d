package suites

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/lolijho/crm-grab-backend-sub000/internal/harness"
	"github.com/lolijho/crm-grab-backend-sub000/pkg/models"
	"github.com/lolijho/crm-grab-backend-sub000/pkg/signature"
)

// runInbound exercises the signed Postmark webhook and the inbound email
// listing. The valid-signature cases need the webhook secret; without one
// only the rejection paths run.
func runInbound(ctx context.Context, sc *Context) error {
	if err := sc.login(ctx); err != nil {
		return err
	}
	api := sc.Runner.Client()

	sender, err := api.CreateContact(ctx, models.ContactCreate{
		FirstName: "Elena",
		LastName:  "Conti",
		Email:     uniqueEmail("elena.conti"),
		Status:    models.StatusClient,
	})
	if err != nil {
		return fmt.Errorf("setup sender: %w", err)
	}

	payload, err := json.Marshal(models.PostmarkInbound{
		MessageID: "msg-" + uuid.NewString()[:8],
		From:      sender.Email,
		FromName:  "Elena Conti",
		To:        "support@grabovoi.com",
		Subject:   "Domanda sul corso",
		TextBody:  "Buongiorno, avrei una domanda.",
	})
	if err != nil {
		return err
	}

	sc.Runner.Run(ctx, harness.Case{
		Name:           "webhook rejects missing signature",
		Method:         http.MethodPost,
		Path:           "/api/webhooks/postmark/inbound",
		NoAuth:         true,
		RawBody:        payload,
		ExpectedStatus: http.StatusUnauthorized,
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "webhook rejects invalid signature",
		Method:         http.MethodPost,
		Path:           "/api/webhooks/postmark/inbound",
		NoAuth:         true,
		RawBody:        payload,
		Headers:        map[string]string{signature.Header: signature.Sign("not-the-secret", payload)},
		ExpectedStatus: http.StatusUnauthorized,
	})

	if sc.Config.WebhookSecret == "" {
		sc.Log.Warnw("webhook secret not configured, skipping signed webhook cases")
		return nil
	}

	res := sc.Runner.Run(ctx, harness.Case{
		Name:           "webhook accepts signed payload",
		Method:         http.MethodPost,
		Path:           "/api/webhooks/postmark/inbound",
		NoAuth:         true,
		RawBody:        payload,
		Headers:        map[string]string{signature.Header: signature.Sign(sc.Config.WebhookSecret, payload)},
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.FieldEquals("status", "success"),
			harness.NonEmptyString("email_id"),
		},
	})
	emailID, _ := res.Body["email_id"].(string)

	sc.Runner.Run(ctx, harness.Case{
		Name:           "inbound emails listing",
		Method:         http.MethodGet,
		Path:           "/api/inbound-emails",
		Query:          mustQuery("limit", "10", "skip", "0"),
		ExpectedStatus: http.StatusOK,
	})

	if emailID != "" {
		// The webhook links the email to the contact by sender address.
		sc.Runner.Run(ctx, harness.Case{
			Name:           "inbound email linked to contact",
			Method:         http.MethodGet,
			Path:           "/api/inbound-emails/" + emailID,
			ExpectedStatus: http.StatusOK,
			Checks: []harness.Check{
				harness.FieldEquals("from_email", sender.Email),
				harness.FieldEquals("client_id", sender.ID),
			},
		})
	}
	return nil
}

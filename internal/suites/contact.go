package suites

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lolijho/crm-grab-backend-sub000/internal/harness"
	"github.com/lolijho/crm-grab-backend-sub000/pkg/models"
)

// runContact walks one contact through tags, a product purchase and a
// course association, then verifies the side effects.
func runContact(ctx context.Context, sc *Context) error {
	if err := sc.login(ctx); err != nil {
		return err
	}
	api := sc.Runner.Client()

	contact, err := api.CreateContact(ctx, models.ContactCreate{
		FirstName: "Giulia",
		LastName:  "Bianchi",
		Email:     uniqueEmail("giulia.bianchi"),
		Status:    models.StatusLead,
	})
	if err != nil {
		return fmt.Errorf("setup contact: %w", err)
	}

	tag, err := api.CreateTag(ctx, models.Tag{Name: "vip-" + contact.ID[:8], Category: "interest", Color: "#7c3aed"})
	if err != nil {
		return fmt.Errorf("setup tag: %w", err)
	}

	course, err := api.CreateCourse(ctx, models.Course{
		Title:    "Corso Base",
		Price:    199,
		Language: "it",
		IsActive: true,
	})
	if err != nil {
		return fmt.Errorf("setup course: %w", err)
	}

	product, err := api.CreateProduct(ctx, models.Product{
		Name:     "Corso Base (prodotto)",
		Price:    199,
		IsActive: true,
		CourseID: course.ID,
	})
	if err != nil {
		return fmt.Errorf("setup product: %w", err)
	}

	sc.Runner.Run(ctx, harness.Case{
		Name:           "add tags to contact",
		Method:         http.MethodPost,
		Path:           "/api/contacts/" + contact.ID + "/tags",
		Body:           map[string]any{"tag_ids": []string{tag.ID}},
		ExpectedStatus: http.StatusOK,
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "contact detail carries tags",
		Method:         http.MethodGet,
		Path:           "/api/contacts/" + contact.ID,
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.Expr(sc.Expr, "len(body.tags) == 1"),
		},
	})

	// Buying a product backed by a course creates a completed order and
	// enrolls the contact.
	sc.Runner.Run(ctx, harness.Case{
		Name:           "associate product with contact",
		Method:         http.MethodPost,
		Path:           "/api/contacts/" + contact.ID + "/associate-product",
		Body:           map[string]any{"product_id": product.ID},
		ExpectedStatus: http.StatusOK,
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "contact has an order after purchase",
		Method:         http.MethodGet,
		Path:           "/api/contacts",
		Query:          mustQuery("has_orders", "true", "limit", "100"),
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.Expr(sc.Expr, fmt.Sprintf(`any(body.contacts, {.id == %q})`, contact.ID)),
		},
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "contact courses after purchase",
		Method:         http.MethodGet,
		Path:           "/api/contacts/" + contact.ID + "/courses",
		ExpectedStatus: http.StatusOK,
	})

	enrollments, err := api.ContactCourses(ctx, contact.ID)
	if err != nil {
		return fmt.Errorf("contact courses: %w", err)
	}
	if len(enrollments) != 1 {
		sc.Log.Warnw("unexpected enrollment count after purchase", "contact", contact.ID, "count", len(enrollments))
	}

	secondCourse, err := api.CreateCourse(ctx, models.Course{Title: "Corso Avanzato", Price: 399, Language: "it", IsActive: true})
	if err != nil {
		return fmt.Errorf("setup second course: %w", err)
	}
	sc.Runner.Run(ctx, harness.Case{
		Name:           "associate course directly",
		Method:         http.MethodPost,
		Path:           "/api/contacts/" + contact.ID + "/associate-course",
		Body:           map[string]any{"course_id": secondCourse.ID},
		ExpectedStatus: http.StatusOK,
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "filter contacts by course",
		Method:         http.MethodGet,
		Path:           "/api/contacts",
		Query:          mustQuery("course_id", secondCourse.ID, "limit", "100"),
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.Expr(sc.Expr, fmt.Sprintf(`any(body.contacts, {.id == %q})`, contact.ID)),
		},
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "filter contacts by tag",
		Method:         http.MethodGet,
		Path:           "/api/contacts",
		Query:          mustQuery("tag_id", tag.ID, "limit", "100"),
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.Expr(sc.Expr, "len(body.contacts) == 1"),
		},
	})
	return nil
}

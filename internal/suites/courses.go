package suites

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lolijho/crm-grab-backend-sub000/internal/harness"
	"github.com/lolijho/crm-grab-backend-sub000/pkg/models"
)

// runCourses exercises course CRUD, the filter endpoints and enrollment,
// including the lead-to-student promotion and enrollment cleanup on
// course deletion.
func runCourses(ctx context.Context, sc *Context) error {
	if err := sc.login(ctx); err != nil {
		return err
	}
	api := sc.Runner.Client()

	maxStudents := 25
	res := sc.Runner.Run(ctx, harness.Case{
		Name:   "create course",
		Method: http.MethodPost,
		Path:   "/api/courses",
		Body: models.Course{
			Title:       "Numeri e Sequenze",
			Description: "Corso introduttivo",
			Instructor:  "Anna Verdi",
			Duration:    "6 settimane",
			Price:       149,
			Category:    "base",
			Language:    "it",
			IsActive:    true,
			MaxStudents: &maxStudents,
		},
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.RequireFields("id", "title", "price"),
			harness.FieldEquals("language", "it"),
		},
	})
	courseID, _ := res.Body["id"].(string)
	if courseID == "" {
		return fmt.Errorf("create course returned no id")
	}

	sc.Runner.Run(ctx, harness.Case{
		Name:           "list courses with pagination",
		Method:         http.MethodGet,
		Path:           "/api/courses",
		Query:          mustQuery("page", "1", "limit", "10"),
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.Pagination("data", 10),
		},
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "filter courses by language",
		Method:         http.MethodGet,
		Path:           "/api/courses",
		Query:          mustQuery("language", "it", "limit", "50"),
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.Expr(sc.Expr, `all(body.data, {.language == "it"})`),
		},
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "update course price",
		Method:         http.MethodPut,
		Path:           "/api/courses/" + courseID,
		Body:           map[string]any{"price": 179.0},
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.FieldEquals("price", 179.0),
		},
	})

	for _, tc := range []struct{ name, path, key string }{
		{"course languages", "/api/courses/languages", "languages"},
		{"course categories", "/api/courses/categories", "categories"},
		{"course instructors", "/api/courses/instructors", "instructors"},
	} {
		sc.Runner.Run(ctx, harness.Case{
			Name:           tc.name,
			Method:         http.MethodGet,
			Path:           tc.path,
			ExpectedStatus: http.StatusOK,
			Checks: []harness.Check{
				harness.RequireFields(tc.key),
			},
		})
	}

	student, err := api.CreateContact(ctx, models.ContactCreate{
		FirstName: "Luca",
		LastName:  "Ferrari",
		Email:     uniqueEmail("luca.ferrari"),
		Status:    models.StatusLead,
	})
	if err != nil {
		return fmt.Errorf("setup student: %w", err)
	}

	sc.Runner.Run(ctx, harness.Case{
		Name:           "enroll contact",
		Method:         http.MethodPost,
		Path:           "/api/courses/" + courseID + "/enroll/" + student.ID,
		ExpectedStatus: http.StatusOK,
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "double enrollment is rejected",
		Method:         http.MethodPost,
		Path:           "/api/courses/" + courseID + "/enroll/" + student.ID,
		ExpectedStatus: http.StatusBadRequest,
	})

	// Enrolling promotes a lead to student.
	sc.Runner.Run(ctx, harness.Case{
		Name:           "enrollment promotes lead to student",
		Method:         http.MethodGet,
		Path:           "/api/contacts/" + student.ID,
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.FieldEquals("status", models.StatusStudent),
		},
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "course students",
		Method:         http.MethodGet,
		Path:           "/api/courses/" + courseID + "/students",
		ExpectedStatus: http.StatusOK,
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "delete course",
		Method:         http.MethodDelete,
		Path:           "/api/courses/" + courseID,
		ExpectedStatus: http.StatusOK,
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "deleted course is gone",
		Method:         http.MethodGet,
		Path:           "/api/courses/" + courseID,
		ExpectedStatus: http.StatusNotFound,
	})

	// Deleting the course must also drop its enrollments.
	enrollments, err := api.ContactCourses(ctx, student.ID)
	if err != nil {
		return fmt.Errorf("contact courses after delete: %w", err)
	}
	if len(enrollments) != 0 {
		sc.Log.Warnw("enrollments survived course deletion", "contact", student.ID, "count", len(enrollments))
	}
	sc.Runner.Run(ctx, harness.Case{
		Name:           "enrollments removed with course",
		Method:         http.MethodGet,
		Path:           "/api/contacts/" + student.ID + "/courses",
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			func(r *harness.Result) error {
				var list []any
				if err := json.Unmarshal(r.Raw, &list); err != nil {
					return fmt.Errorf("decode enrollment list: %w", err)
				}
				if len(list) != 0 {
					return fmt.Errorf("%d enrollments survived course deletion", len(list))
				}
				return nil
			},
		},
	})
	return nil
}

package harness

import (
	"fmt"
	"strings"
)

// RequireFields fails unless every named top-level field is present in the
// response body.
func RequireFields(fields ...string) Check {
	return func(r *Result) error {
		for _, f := range fields {
			if _, ok := r.Body[f]; !ok {
				return fmt.Errorf("missing response field %q", f)
			}
		}
		return nil
	}
}

// FieldEquals fails unless the dotted path resolves to want.
func FieldEquals(path string, want any) Check {
	return func(r *Result) error {
		got, ok := lookup(r.Body, path)
		if !ok {
			return fmt.Errorf("missing response field %q", path)
		}
		if !equalJSON(got, want) {
			return fmt.Errorf("field %q = %v, want %v", path, got, want)
		}
		return nil
	}
}

// NonEmptyString fails unless the dotted path resolves to a non-empty string.
func NonEmptyString(path string) Check {
	return func(r *Result) error {
		got, ok := lookup(r.Body, path)
		if !ok {
			return fmt.Errorf("missing response field %q", path)
		}
		s, ok := got.(string)
		if !ok || s == "" {
			return fmt.Errorf("field %q is not a non-empty string (got %v)", path, got)
		}
		return nil
	}
}

// Pagination validates the pagination envelope under the given key
// ("contacts", "orders" or "data") and requires per_page to equal the
// requested limit when limit > 0.
func Pagination(listKey string, limit int) Check {
	return func(r *Result) error {
		if _, ok := r.Body[listKey]; !ok {
			return fmt.Errorf("missing list field %q", listKey)
		}
		raw, ok := r.Body["pagination"]
		if !ok {
			return fmt.Errorf("missing pagination envelope")
		}
		p, ok := raw.(map[string]any)
		if !ok {
			return fmt.Errorf("pagination is not an object")
		}
		for _, f := range []string{"current_page", "per_page", "total_count", "total_pages"} {
			if _, ok := p[f]; !ok {
				return fmt.Errorf("missing pagination field %q", f)
			}
		}
		if limit > 0 {
			perPage, _ := p["per_page"].(float64)
			if int(perPage) != limit {
				return fmt.Errorf("per_page = %d, want %d", int(perPage), limit)
			}
		}
		return nil
	}
}

// Expr evaluates a boolean expression against {"status": code, "body": body}.
func Expr(engine *ExprEngine, expression string) Check {
	return func(r *Result) error {
		env := map[string]any{
			"status": r.StatusCode,
			"body":   r.Body,
		}
		ok, err := engine.EvalBool(expression, env)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("assertion %q failed", expression)
		}
		return nil
	}
}

// lookup resolves a dotted path ("user.role") inside nested JSON objects.
func lookup(body map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	var cur any = body
	for _, part := range parts {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// equalJSON compares a decoded JSON value with an expectation, tolerating
// the float64 representation json.Unmarshal gives numbers.
func equalJSON(got, want any) bool {
	switch w := want.(type) {
	case int:
		g, ok := got.(float64)
		return ok && g == float64(w)
	case float64:
		g, ok := got.(float64)
		return ok && g == w
	default:
		return got == want
	}
}

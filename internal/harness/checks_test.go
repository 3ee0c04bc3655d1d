package harness

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resultWithBody(t *testing.T, raw string) *Result {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &body))
	return &Result{StatusCode: 200, Body: body}
}

func TestRequireFields(t *testing.T) {
	res := resultWithBody(t, `{"id":"c1","first_name":"Mario","email":"m@example.com","status":"lead"}`)

	assert.NoError(t, RequireFields("id", "first_name", "email", "status")(res))
	assert.Error(t, RequireFields("id", "last_name")(res))
}

func TestFieldEquals(t *testing.T) {
	res := resultWithBody(t, `{"user":{"role":"admin"},"base_price":99.99,"count":3}`)

	assert.NoError(t, FieldEquals("user.role", "admin")(res))
	assert.NoError(t, FieldEquals("base_price", 99.99)(res))
	assert.NoError(t, FieldEquals("count", 3)(res))
	assert.Error(t, FieldEquals("user.role", "user")(res))
	assert.Error(t, FieldEquals("user.missing", "x")(res))
}

func TestNonEmptyString(t *testing.T) {
	res := resultWithBody(t, `{"access_token":"abc123","empty":"","num":5}`)

	assert.NoError(t, NonEmptyString("access_token")(res))
	assert.Error(t, NonEmptyString("empty")(res))
	assert.Error(t, NonEmptyString("num")(res))
	assert.Error(t, NonEmptyString("missing")(res))
}

func TestPaginationCheck(t *testing.T) {
	ok := resultWithBody(t, `{
		"contacts": [],
		"pagination": {"current_page":1,"per_page":20,"total_count":0,"total_pages":0}
	}`)
	assert.NoError(t, Pagination("contacts", 20)(ok))
	assert.Error(t, Pagination("contacts", 50)(ok), "per_page must match the requested limit")
	assert.Error(t, Pagination("data", 20)(ok), "wrong list key")

	missing := resultWithBody(t, `{"contacts": []}`)
	assert.Error(t, Pagination("contacts", 0)(missing))

	incomplete := resultWithBody(t, `{"contacts":[],"pagination":{"current_page":1}}`)
	assert.Error(t, Pagination("contacts", 0)(incomplete))
}

func TestExprCheck(t *testing.T) {
	engine := NewExprEngine()
	res := resultWithBody(t, `{"user":{"role":"admin"},"access_token":"tok"}`)

	assert.NoError(t, Expr(engine, `body.user.role == "admin"`)(res))
	assert.NoError(t, Expr(engine, `status == 200 && len(body.access_token) > 0`)(res))
	assert.Error(t, Expr(engine, `body.user.role == "user"`)(res))
	assert.Error(t, Expr(engine, `body.access_token`)(res), "non-boolean expression")
}

func TestExprEngineCachesPrograms(t *testing.T) {
	engine := NewExprEngine()
	env := map[string]any{"status": 200}

	for i := 0; i < 3; i++ {
		ok, err := engine.EvalBool("status == 200", env)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	assert.Len(t, engine.cache, 1)
}

package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
)

var epoch = time.Unix(0, 0).UTC()

// todoIDRequest builds a /todos/{id} request with the chi route param set,
// as the router would.
func todoIDRequest(method, id string) *http.Request {
	r := httptest.NewRequest(method, "/todos/"+id, http.NoBody)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// validTodo is the stored todo the listing scenarios start from.
func validTodo() todo.Todo {
	return todo.Todo{ID: 1, Title: "test", Description: "test object", DueDate: epoch}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out), "body = %s", rec.Body.String())
	return out
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "body = %s", rec.Body.String())
}

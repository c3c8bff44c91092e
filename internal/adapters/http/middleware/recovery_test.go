package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/todo-service/internal/adapters/http/middleware"
)

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
		wantBody   string
	}{
		{
			name: "no panic",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("ok"))
			},
			wantStatus: http.StatusOK,
			wantBody:   "ok",
		},
		{
			name:       "string panic",
			handler:    func(http.ResponseWriter, *http.Request) { panic("something went wrong") },
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "non-string panic",
			handler:    func(http.ResponseWriter, *http.Request) { panic(42) },
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "panic after commit keeps the committed response",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusPartialContent)
				_, _ = w.Write([]byte("[]"))
				panic("late panic")
			},
			wantStatus: http.StatusPartialContent,
			wantBody:   "[]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			middleware.Recovery(discardLogger())(tt.handler).
				ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/todos", http.NoBody))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestRecovery_RepanicsAbortHandler(t *testing.T) {
	t.Parallel()

	handler := middleware.Recovery(discardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/todos", http.NoBody))
	})
}

func TestRecovery_LogsPanicWithStackAndRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := middleware.Chain(
		middleware.Recovery(jsonLogger(&buf)),
		middleware.RequestID(),
	)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("test panic value") }))

	req := httptest.NewRequest(http.MethodDelete, "/todos/7", http.NoBody)
	req.Header.Set("X-Request-ID", "req-panic")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	entry := logEntries(t, &buf)["panic recovered"]
	require.NotNil(t, entry)
	assert.Equal(t, "test panic value", entry["panic"])
	assert.Equal(t, "req-panic", entry["request_id"])
	assert.Equal(t, "/todos/7", entry["path"])
	assert.Contains(t, entry["stack"], "goroutine")
}

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsamuelsen11/todo-service/internal/adapters/http/middleware"
)

func TestCorrelationID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		header      string
		wantRequest bool // expect the request ID instead of the header
	}{
		{name: "incoming header wins", header: "corr-abc"},
		{name: "missing header falls back", header: "", wantRequest: true},
		{name: "oversized header falls back", header: strings.Repeat("c", 200), wantRequest: true},
		{name: "header with spaces falls back", header: "corr abc", wantRequest: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotID string
			handler := middleware.RequestID()(
				middleware.CorrelationID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
					gotID = middleware.CorrelationIDFromContext(r.Context())
				})),
			)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/todos", http.NoBody)
			req.Header.Set("X-Request-ID", "req-123")
			if tt.header != "" {
				req.Header.Set("X-Correlation-ID", tt.header)
			}
			handler.ServeHTTP(rec, req)

			want := tt.header
			if tt.wantRequest {
				want = "req-123"
			}
			assert.Equal(t, want, gotID)
			assert.Equal(t, want, rec.Header().Get("X-Correlation-ID"))
		})
	}
}

func TestCorrelationIDFromContext(t *testing.T) {
	t.Parallel()

	assert.Empty(t, middleware.CorrelationIDFromContext(context.Background()))

	ctx := middleware.WithCorrelationID(context.Background(), "test-corr")
	assert.Equal(t, "test-corr", middleware.CorrelationIDFromContext(ctx))
}

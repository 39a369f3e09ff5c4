package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"generated when absent", "", false},
		{"kept when well formed", "abc-123_X.y", true},
		{"replaced when too long", strings.Repeat("a", 65), false},
		{"replaced when it has spaces", "id with spaces", false},
		{"replaced on newline injection", "id\nlevel=ERROR", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var seen string
			handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = GetRequestID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if seen == "" {
				t.Fatal("request id missing from context")
			}
			if rec.Header().Get(RequestIDHeader) != seen {
				t.Errorf("response header %q != context %q", rec.Header().Get(RequestIDHeader), seen)
			}
			if tt.keep && seen != tt.incoming {
				t.Errorf("expected incoming id to be kept, got %q", seen)
			}
			if !tt.keep && seen == tt.incoming {
				t.Errorf("expected incoming id %q to be replaced", tt.incoming)
			}
		})
	}
}

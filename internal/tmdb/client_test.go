package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cinefav/cinefav/internal/metrics"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *metrics.InMemoryRecorder) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	rec := metrics.NewInMemory()
	c, err := NewClient(Config{BaseURL: srv.URL + "/3", APIKey: "secret-token", Timeout: time.Second}, rec)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return c, rec
}

func TestClient_Trending(t *testing.T) {
	t.Parallel()

	payload := `{"page":1,"results":[{"id":550,"title":"Fight Club"}]}`
	c, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/3/trending/movie/day" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("language"); got != "en-US" {
			t.Errorf("language = %q, want en-US", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret-token" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	})

	got, err := c.Trending(context.Background())
	if err != nil {
		t.Fatalf("Trending failed: %v", err)
	}
	if string(got) != payload {
		t.Errorf("Trending = %s, want %s", got, payload)
	}
	if s := rec.Snapshot(); s.UpstreamRequests != 1 || s.UpstreamFailures != 0 {
		t.Errorf("unexpected metrics %+v", s)
	}
}

func TestClient_Recommendations(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/3/movie/550/recommendations" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("page") != "1" || q.Get("language") != "en-US" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"results":[]}`))
	})

	got, err := c.Recommendations(context.Background(), 550)
	if err != nil {
		t.Fatalf("Recommendations failed: %v", err)
	}
	if string(got) != `{"results":[]}` {
		t.Errorf("Recommendations = %s", got)
	}
}

func TestClient_StatusError(t *testing.T) {
	t.Parallel()

	tests := []int{http.StatusNotFound, http.StatusUnauthorized, http.StatusTooManyRequests, http.StatusServiceUnavailable}

	for _, code := range tests {
		t.Run(http.StatusText(code), func(t *testing.T) {
			t.Parallel()

			c, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(code)
				_, _ = w.Write([]byte(`{"status_message":"nope"}`))
			})

			_, err := c.Trending(context.Background())
			var statusErr *StatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("expected *StatusError, got %v", err)
			}
			if statusErr.StatusCode != code {
				t.Errorf("StatusCode = %d, want %d", statusErr.StatusCode, code)
			}
			if rec.Snapshot().UpstreamFailures != 1 {
				t.Error("expected a recorded upstream failure")
			}
		})
	}
}

func TestClient_InvalidPayload(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	})

	if _, err := c.Trending(context.Background()); !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
}

func TestClient_Timeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL, APIKey: "k", Timeout: 50 * time.Millisecond}, nil)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	if _, err := c.Trending(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestClient_ConnectionRefused(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewClient(Config{BaseURL: url, APIKey: "k"}, nil)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	if _, err := c.Recommendations(context.Background(), 1); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestClient_OffHostRedirectNotFollowed(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "http://elsewhere.invalid/steal", http.StatusFound)
	})

	_, err := c.Trending(context.Background())
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusFound {
		t.Fatalf("expected StatusError 302, got %v", err)
	}
}

func TestNewClient_Validation(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(Config{}, nil); err == nil {
		t.Error("expected error without API key")
	}
	if _, err := NewClient(Config{APIKey: "k", BaseURL: "not a url"}, nil); err == nil {
		t.Error("expected error for relative base URL")
	}

	c, err := NewClient(Config{APIKey: "k"}, nil)
	if err != nil {
		t.Fatalf("NewClient with defaults failed: %v", err)
	}
	if c.baseURL.String() != DefaultBaseURL || c.language != DefaultLanguage {
		t.Errorf("defaults not applied: %s %s", c.baseURL, c.language)
	}
}

package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"
)

func newTestServer(t *testing.T, handler http.Handler) (*Server, net.Listener) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := New(handler, Config{
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		ShutdownTimeout: 2 * time.Second,
	}, logger)
	return srv, ln
}

func TestServer_ServesAndShutsDownInReverseOrder(t *testing.T) {
	t.Parallel()

	srv, ln := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	var (
		mu    sync.Mutex
		order []string
	)
	for _, name := range []string{"postgres", "redis", "metrics"} {
		srv.OnShutdown(name, func(ctx context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
			return nil
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusTeapot {
		t.Errorf("status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	want := []string{"metrics", "redis", "postgres"}
	if len(order) != len(want) {
		t.Fatalf("shutdown order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("shutdown order = %v, want %v", order, want)
			break
		}
	}
}

func TestServer_ShutdownErrorsJoined(t *testing.T) {
	t.Parallel()

	srv, ln := newTestServer(t, http.NotFoundHandler())
	errRedis := errors.New("redis close failed")
	errDB := errors.New("pool close failed")
	srv.OnShutdown("postgres", func(ctx context.Context) error { return errDB })
	srv.OnShutdown("redis", func(ctx context.Context) error { return errRedis })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := srv.Serve(ctx, ln)
	if !errors.Is(err, errRedis) || !errors.Is(err, errDB) {
		t.Errorf("Serve error = %v, want both component errors", err)
	}
}

func TestServer_ServeFailureStopsComponents(t *testing.T) {
	t.Parallel()

	srv, ln := newTestServer(t, http.NotFoundHandler())
	if err := ln.Close(); err != nil {
		t.Fatalf("close listener: %v", err)
	}

	var (
		mu      sync.Mutex
		stopped []string
	)
	errRedis := errors.New("redis close failed")
	srv.OnShutdown("postgres", func(ctx context.Context) error {
		mu.Lock()
		defer mu.Unlock()
		stopped = append(stopped, "postgres")
		return nil
	})
	srv.OnShutdown("redis", func(ctx context.Context) error {
		mu.Lock()
		defer mu.Unlock()
		stopped = append(stopped, "redis")
		return errRedis
	})

	done := make(chan error, 1)
	go func() { done <- srv.Serve(context.Background(), ln) }()

	var err error
	select {
	case err = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after listener failure")
	}
	if err == nil {
		t.Fatal("Serve returned nil on a closed listener")
	}
	if !errors.Is(err, errRedis) {
		t.Errorf("Serve error = %v, want component error joined", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(stopped) != 2 || stopped[0] != "redis" || stopped[1] != "postgres" {
		t.Errorf("stopped = %v, want [redis postgres]", stopped)
	}
}

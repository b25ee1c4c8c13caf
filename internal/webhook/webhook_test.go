package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	logx "courierbot/pkg/logx"
)

func TestSendPostsJSON(t *testing.T) {
	t.Parallel()

	var got payload
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(func() string { return srv.URL }, Config{}, logx.Nop())
	if err := c.Send(context.Background(), "hello couriers"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if contentType != "application/json" {
		t.Fatalf("Content-Type = %q", contentType)
	}
	if got.Content != "hello couriers" {
		t.Fatalf("content = %q", got.Content)
	}
}

func TestSendNon2xxIsFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(func() string { return srv.URL }, Config{}, logx.Nop())
	if err := c.Send(context.Background(), "x"); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestSendMissingURL(t *testing.T) {
	t.Parallel()
	c := New(func() string { return "" }, Config{}, logx.Nop())
	if err := c.Send(context.Background(), "x"); err == nil {
		t.Fatal("expected error when webhook url is unset")
	}
}

func TestSendReadsURLPerCall(t *testing.T) {
	t.Parallel()

	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	url := ""
	c := New(func() string { return url }, Config{}, logx.Nop())
	if err := c.Send(context.Background(), "x"); err == nil {
		t.Fatal("expected failure before url is configured")
	}

	url = srv.URL
	if err := c.Send(context.Background(), "x"); err != nil {
		t.Fatalf("Send after url configured: %v", err)
	}
	if hits != 1 {
		t.Fatalf("hits = %d, want 1", hits)
	}
}

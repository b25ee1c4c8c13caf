// Package webhook delivers courier notifications to the configured chat
// webhook. The sink is opaque: one POST per accepted request, any 2xx is
// success, no retries.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	logx "courierbot/pkg/logx"
)

type Config struct {
	RatePerSec int           // default 1
	Burst      int           // default 5
	Timeout    time.Duration // default 10s
}

// Client posts `{"content": ...}` to the webhook URL. The URL is resolved
// per send so config rotations apply without a restart. Constructed once
// at startup and shared read-only across event handlers.
type Client struct {
	url     func() string
	http    *http.Client
	limiter *rate.Limiter
	log     logx.Logger
}

type payload struct {
	Content string `json:"content"`
}

func New(url func() string, cfg Config, log logx.Logger) *Client {
	if cfg.RatePerSec <= 0 {
		cfg.RatePerSec = 1
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Client{
		url:     url,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.Burst),
		log:     log,
	}
}

// Send delivers one notification. Non-2xx responses and transport errors
// are both delivery failures.
func (c *Client) Send(ctx context.Context, content string) error {
	url := strings.TrimSpace(c.url())
	if url == "" {
		return errors.New("webhook url is not configured")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	body, err := json.Marshal(payload{Content: content})
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	c.log.Debug("webhook delivered", logx.Int("status", resp.StatusCode))
	return nil
}

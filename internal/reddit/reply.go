// Package reddit is the comment-reply collaborator: it posts the
// acknowledgment/suppression replies under the triggering comment.
// Retrieval-side API semantics live with the hosting trigger, not here.
package reddit

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	logx "courierbot/pkg/logx"
)

const defaultBaseURL = "https://oauth.reddit.com"

type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration // default 10s
}

// Client posts replies via the Reddit comment API. Constructed once at
// startup and shared read-only across event handlers. No retries: a
// failed reply surfaces to the caller and is not replayed.
type Client struct {
	base  string
	token string
	http  *http.Client
	log   logx.Logger
}

func New(cfg Config, log logx.Logger) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Client{
		base:  base,
		token: cfg.Token,
		http:  &http.Client{Timeout: cfg.Timeout},
		log:   log,
	}
}

// Reply posts text as a child of the given comment fullname (t1_...).
func (c *Client) Reply(ctx context.Context, commentID, text string) error {
	form := url.Values{
		"api_type": {"json"},
		"thing_id": {commentID},
		"text":     {text},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.base+"/api/comment", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("reply to %s: status %d", commentID, resp.StatusCode)
	}
	c.log.Debug("reply posted", logx.String("comment", commentID))
	return nil
}

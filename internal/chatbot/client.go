// Package chatbot is a client for the conversational upstream (a Rasa REST
// webhook). It forwards a visitor message, normalizes the reply array, and
// tracks whether the upstream is reachable.
package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"
)

// ErrUnavailable wraps every failure to obtain a reply from the upstream.
var ErrUnavailable = errors.New("chatbot unavailable")

// Button is a quick-reply suggestion.
type Button struct {
	Title   string `json:"title"`
	Payload string `json:"payload"`
}

// Message is one bot utterance as returned to the frontend.
type Message struct {
	RecipientID string          `json:"recipient_id,omitempty"`
	Text        string          `json:"text,omitempty"`
	Image       string          `json:"image,omitempty"`
	Buttons     []Button        `json:"buttons"`
	Custom      json.RawMessage `json:"custom"`
}

// upstreamMessage is the raw Rasa shape; json_message is an older alias of custom.
type upstreamMessage struct {
	RecipientID string          `json:"recipient_id"`
	Text        string          `json:"text"`
	Image       string          `json:"image"`
	Buttons     []Button        `json:"buttons"`
	Custom      json.RawMessage `json:"custom"`
	JSONMessage json.RawMessage `json:"json_message"`
}

// Config configures a Client.
type Config struct {
	URL        string        // webhook, e.g. http://localhost:5005/webhooks/rest/webhook
	HealthURL  string        // defaults to the webhook's scheme://host/
	Timeout    time.Duration // per attempt
	Attempts   int           // total attempts on transient failures
	Backoff    time.Duration // pause between attempts
	HTTPClient *http.Client
}

// Client talks to the upstream. It is safe for concurrent use.
type Client struct {
	cfg    Config
	online atomic.Bool
}

// New returns a Client with defaults applied. The upstream starts out
// marked online; the first failure flips it.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Attempts < 1 {
		cfg.Attempts = 2
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 200 * time.Millisecond
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	if cfg.HealthURL == "" {
		cfg.HealthURL = healthURLFor(cfg.URL)
	}
	c := &Client{cfg: cfg}
	c.online.Store(true)
	return c
}

// Online reports the last known upstream state.
func (c *Client) Online() bool { return c.online.Load() }

// Send forwards message for sender and returns the bot replies. A 204, an
// empty body, or a non-JSON body yields an empty slice. Network errors,
// timeouts and 5xx responses are retried up to Attempts times and then
// reported as ErrUnavailable. Other non-2xx answers are returned unwrapped.
func (c *Client) Send(ctx context.Context, sender, message string) ([]Message, error) {
	body, err := json.Marshal(map[string]string{"sender": sender, "message": message})
	if err != nil {
		return nil, fmt.Errorf("marshal chatbot payload: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < c.cfg.Attempts; attempt++ {
		msgs, retry, err := c.callOnce(ctx, body)
		if err == nil {
			c.online.Store(true)
			return msgs, nil
		}
		if !retry {
			// the upstream answered, so it stays online
			return nil, err
		}
		lastErr = err
		if attempt == c.cfg.Attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			c.online.Store(false)
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, ctx.Err())
		case <-time.After(c.cfg.Backoff):
		}
	}
	c.online.Store(false)
	return nil, fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}

func (c *Client) callOnce(ctx context.Context, body []byte) (msgs []Message, retry bool, err error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("build chatbot request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("chatbot request failed: %w", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, true, fmt.Errorf("read chatbot response: %w", err)
	}

	if resp.StatusCode >= 500 {
		return nil, true, fmt.Errorf("chatbot temporary status %d", resp.StatusCode)
	}
	if resp.StatusCode == http.StatusNoContent {
		return []Message{}, false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, false, fmt.Errorf("chatbot status %d", resp.StatusCode)
	}
	return decodeMessages(b), false, nil
}

// decodeMessages turns an upstream body into replies. Anything that is not a
// JSON array of messages (or a single message object) becomes an empty slice.
func decodeMessages(b []byte) []Message {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return []Message{}
	}
	var raw []upstreamMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		var one upstreamMessage
		if err := json.Unmarshal(trimmed, &one); err != nil {
			return []Message{}
		}
		raw = []upstreamMessage{one}
	}
	out := make([]Message, 0, len(raw))
	for _, m := range raw {
		custom := m.Custom
		if isNull(custom) {
			custom = m.JSONMessage
		}
		if isNull(custom) {
			custom = nil
		}
		buttons := m.Buttons
		if buttons == nil {
			buttons = []Button{}
		}
		out = append(out, Message{
			RecipientID: m.RecipientID,
			Text:        m.Text,
			Image:       m.Image,
			Buttons:     buttons,
			Custom:      custom,
		})
	}
	return out
}

func isNull(r json.RawMessage) bool {
	t := bytes.TrimSpace(r)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

// Ping checks the upstream health URL and records the result.
func (c *Client) Ping(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	ok := false
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.HealthURL, nil)
	if err == nil {
		if resp, err := c.cfg.HTTPClient.Do(req); err == nil {
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
			resp.Body.Close()
			ok = resp.StatusCode >= 200 && resp.StatusCode < 300
		}
	}
	c.online.Store(ok)
	return ok
}

// Monitor pings the upstream every interval while it is marked offline,
// until ctx is done. onChange, when set, is called on every state flip.
func (c *Client) Monitor(ctx context.Context, interval time.Duration, onChange func(online bool)) {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	last := c.Online()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
		now := c.Online()
		if !now {
			now = c.Ping(ctx)
		}
		if now != last && onChange != nil {
			onChange(now)
		}
		last = now
	}
}

func healthURLFor(webhook string) string {
	u, err := url.Parse(webhook)
	if err != nil || u.Host == "" {
		return strings.TrimRight(webhook, "/")
	}
	return u.Scheme + "://" + u.Host + "/"
}

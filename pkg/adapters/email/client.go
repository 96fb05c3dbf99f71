package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.resend.com"
	DefaultFrom    = "Insurance Form <onboarding@resend.dev>"
	DefaultTimeout = 30 * time.Second
)

// ErrMissingAPIKey is returned by NewClient without an API key.
var ErrMissingAPIKey = errors.New("email: missing API key")

// Config configures the Resend client.
type Config struct {
	APIKey  string
	BaseURL string
	From    string
	To      []string
	Timeout time.Duration
}

// ConfigFromEnv reads RESEND_API_KEY, RESEND_BASE_URL, RESEND_FROM and NOTIFICATION_EMAIL.
// NOTIFICATION_EMAIL may hold several comma separated addresses.
func ConfigFromEnv() Config {
	return Config{
		APIKey:  strings.TrimSpace(os.Getenv("RESEND_API_KEY")),
		BaseURL: strings.TrimSpace(os.Getenv("RESEND_BASE_URL")),
		From:    strings.TrimSpace(os.Getenv("RESEND_FROM")),
		To:      SplitAddresses(os.Getenv("NOTIFICATION_EMAIL")),
	}
}

// SplitAddresses splits a comma separated recipient list, dropping blanks.
func SplitAddresses(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Message is one outgoing mail.
type Message struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type sendResponse struct {
	ID string `json:"id"`
}

type errorResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// HTTPError is a non-2xx answer from the mail API.
type HTTPError struct {
	StatusCode int
	Body       string
	Message    string
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "resend: <nil error>"
	}
	if strings.TrimSpace(e.Message) != "" {
		return fmt.Sprintf("resend http %d: %s", e.StatusCode, e.Message)
	}
	msg := strings.TrimSpace(e.Body)
	if msg == "" {
		msg = "<empty body>"
	}
	if len(msg) > 4000 {
		msg = msg[:4000] + "..."
	}
	return fmt.Sprintf("resend http %d: %s", e.StatusCode, msg)
}

// HTTPStatusCode reports the status of the failed call.
func (e *HTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

// Client sends mail through the Resend REST API. It makes exactly one attempt per message.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient validates cfg and fills its defaults.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if len(cfg.To) == 0 {
		return nil, errors.New("email: at least one recipient required")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if strings.TrimSpace(cfg.From) == "" {
		cfg.From = DefaultFrom
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Send posts msg, filling From and To from the config when empty, and returns the message ID.
func (c *Client) Send(ctx context.Context, msg Message) (string, error) {
	if msg.From == "" {
		msg.From = c.cfg.From
	}
	if len(msg.To) == 0 {
		msg.To = c.cfg.To
	}
	if strings.TrimSpace(msg.Subject) == "" {
		return "", errors.New("email: subject required")
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(msg); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/emails", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return "", readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		he := &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
		var er errorResponse
		if json.Unmarshal(raw, &er) == nil {
			he.Message = er.Message
		}
		return "", he
	}

	var out sendResponse
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return "", fmt.Errorf("resend: decode response: %w", err)
		}
	}
	return out.ID, nil
}

package completion

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
)

const (
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	DefaultModel   = "openai/gpt-4o-mini"
	defaultTimeout = 60 * time.Second

	// maxErrorBody caps how much of a failed response is kept in StatusError.
	maxErrorBody = 4 << 10

	// maxResponseBody caps a successful response.
	maxResponseBody = 1 << 20
)

// AuthStyle selects how the API key is sent.
type AuthStyle string

const (
	AuthBearer   AuthStyle = "bearer"
	AuthRapidAPI AuthStyle = "rapidapi"
)

// Options configures a Client. Zero values take defaults.
type Options struct {
	APIKey       string
	BaseURL      string
	Model        string
	AuthStyle    AuthStyle
	RapidAPIHost string
	Timeout      time.Duration
}

// ErrDecode is wrapped when a 2xx response body is not a completion envelope.
var ErrDecode = errors.New("decoding completion response")

// StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// Client sends single-turn chat completion requests. It never retries.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	auth       AuthStyle
	rapidHost  string
	httpClient *http.Client
	referer    string
	title      string
}

// NewClient creates a client from opts.
func NewClient(opts Options) *Client {
	c := &Client{
		apiKey:    opts.APIKey,
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		model:     opts.Model,
		auth:      opts.AuthStyle,
		rapidHost: opts.RapidAPIHost,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		referer: "https://github.com/kalambet/careercompass",
		title:   "careercompass",
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.model == "" {
		c.model = DefaultModel
	}
	if c.auth == "" {
		c.auth = AuthBearer
	}
	if c.httpClient.Timeout <= 0 {
		c.httpClient.Timeout = defaultTimeout
	}
	return c
}

// NewClientWithBaseURL creates a bearer-auth client pointing at a custom base URL (for testing).
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	return NewClient(Options{APIKey: apiKey, BaseURL: baseURL})
}

// Model returns the model name sent with every request.
func (c *Client) Model() string { return c.model }

// Complete sends prompt as a single user message and returns the text of the
// first choice.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(ChatRequest{
		Model:    c.model,
		Messages: []Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &StatusError{Code: resp.StatusCode, Body: string(respBody)}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody+1))
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if len(data) > maxResponseBody {
		return "", fmt.Errorf("%w: response exceeds %d bytes", ErrDecode, maxResponseBody)
	}

	var out ChatResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return out.Text(), nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	switch c.auth {
	case AuthRapidAPI:
		req.Header.Set("x-rapidapi-key", c.apiKey)
		host := c.rapidHost
		if host == "" {
			host = req.URL.Host
		}
		req.Header.Set("x-rapidapi-host", host)
	default:
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("HTTP-Referer", c.referer)
		req.Header.Set("X-Title", c.title)
	}
}

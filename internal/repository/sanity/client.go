package sanity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// placeholderProjectID is what deployments without a content service leave
// in the environment. A client built with it reports Configured() == false
// and the catalog runs entirely off the local store.
const placeholderProjectID = "placeholder"

var ErrNotConfigured = errors.New("sanity: client not configured")

type Config struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	Token      string
	UseCDN     bool
	Timeout    time.Duration

	// BaseURL overrides the derived API host, used by tests.
	BaseURL string
}

// Client talks to the Sanity HTTP API: GROQ queries via the query endpoint
// and document writes via the mutate endpoint.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.Dataset == "" {
		cfg.Dataset = "production"
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2023-05-03"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
	}
}

// Configured reports whether the client points at a real project.
func (c *Client) Configured() bool {
	return c.cfg.ProjectID != "" && c.cfg.ProjectID != placeholderProjectID
}

// CanWrite reports whether mutations can be attempted.
func (c *Client) CanWrite() bool {
	return c.Configured() && c.cfg.Token != ""
}

func (c *Client) baseURL() string {
	if c.cfg.BaseURL != "" {
		return c.cfg.BaseURL
	}
	host := "api.sanity.io"
	// The CDN only serves unauthenticated reads.
	if c.cfg.UseCDN && c.cfg.Token == "" {
		host = "apicdn.sanity.io"
	}
	return fmt.Sprintf("https://%s.%s", c.cfg.ProjectID, host)
}

// query runs a GROQ query and decodes the result payload into out. Params
// are sent as $-prefixed JSON-encoded query parameters.
func (c *Client) query(ctx context.Context, groq string, params map[string]string, out any) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	values := url.Values{}
	values.Set("query", groq)
	for name, value := range params {
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode query param %q: %w", name, err)
		}
		values.Set("$"+name, string(encoded))
	}

	endpoint := fmt.Sprintf("%s/v%s/data/query/%s?%s",
		c.baseURL(), c.cfg.APIVersion, c.cfg.Dataset, values.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build query request: %w", err)
	}
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("query content service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError("query", resp)
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode query response: %w", err)
	}
	if out == nil || len(envelope.Result) == 0 || string(envelope.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("decode query result: %w", err)
	}
	return nil
}

type mutation map[string]any

// mutate posts mutations and returns the resulting documents.
func (c *Client) mutate(ctx context.Context, mutations []mutation) ([]json.RawMessage, error) {
	if !c.CanWrite() {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(map[string]any{"mutations": mutations})
	if err != nil {
		return nil, fmt.Errorf("encode mutations: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v%s/data/mutate/%s?returnDocuments=true",
		c.baseURL(), c.cfg.APIVersion, c.cfg.Dataset)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build mutate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mutate content service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError("mutate", resp)
	}

	var envelope struct {
		Results []struct {
			Document json.RawMessage `json:"document"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode mutate response: %w", err)
	}

	docs := make([]json.RawMessage, 0, len(envelope.Results))
	for _, result := range envelope.Results {
		docs = append(docs, result.Document)
	}
	return docs, nil
}

func apiError(op string, resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("sanity %s: unexpected status %d: %s", op, resp.StatusCode, bytes.TrimSpace(snippet))
}

package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"intranet/internal/types"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const maxResponseBytes = 1 << 20

type Config struct {
	// Total timeout for one request, body included. A context deadline can
	// still shorten it.
	Timeout time.Duration

	DialTimeout     time.Duration
	KeepAlive       time.Duration
	ResponseHeader  time.Duration
	IdleConnTimeout time.Duration

	MaxIdleConnsPerHost int
}

func DefaultConfig() Config {
	return Config{
		Timeout:             types.DefaultAPITimeout,
		DialTimeout:         5 * time.Second,
		KeepAlive:           30 * time.Second,
		ResponseHeader:      10 * time.Second,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 10,
	}
}

// NewHTTPClient builds the transport used to reach the client API.
func NewHTTPClient(cfg Config) *http.Client {
	dialer := &net.Dialer{
		Timeout:   cfg.DialTimeout,
		KeepAlive: cfg.KeepAlive,
	}
	tr := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		MaxIdleConnsPerHost:   cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:       cfg.IdleConnTimeout,
		ResponseHeaderTimeout: cfg.ResponseHeader,
	}
	return &http.Client{
		Transport: tr,
		Timeout:   cfg.Timeout,
	}
}

// Client talks to the `/clients/` endpoints. BaseURL is the create endpoint;
// records are fetched from BaseURL + client id.
type Client struct {
	baseURL string
	http    *http.Client
}

// New validates baseURL and returns a Client. A nil httpClient selects
// NewHTTPClient(DefaultConfig()).
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", baseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid api url %q: must be an absolute http(s) url", baseURL)
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if httpClient == nil {
		httpClient = NewHTTPClient(DefaultConfig())
	}
	return &Client{baseURL: baseURL, http: httpClient}, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Create posts raw fields to the API. Field validation happens server side.
func (c *Client) Create(ctx context.Context, fields map[string]any) (types.ClientRecord, error) {
	body, err := json.Marshal(fields)
	if err != nil {
		return types.ClientRecord{}, fmt.Errorf("marshal client: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return types.ClientRecord{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) Get(ctx context.Context, clientID string) (types.ClientRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+url.PathEscape(clientID), nil)
	if err != nil {
		return types.ClientRecord{}, err
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) (types.ClientRecord, error) {
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return types.ClientRecord{}, fmt.Errorf("%s %s: %w", req.Method, req.URL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return types.ClientRecord{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return types.ClientRecord{}, newStatusError(resp.StatusCode, body)
	}
	var record types.ClientRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return types.ClientRecord{}, fmt.Errorf("decode client: %w", err)
	}
	return record, nil
}

// Package huuto provides a client for the Huuto.net marketplace REST API.
//
// The client wraps the JSON-over-HTTPS endpoints for items, bids, categories,
// images, offers, questions and user data behind typed methods. Parameters
// are validated locally before any request is sent, because the remote API
// silently drops malformed parameters instead of rejecting them.
package huuto

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/akardes/huutonet-client/pkg/logger"
)

const (
	defaultBaseURL = "https://api.huuto.net/1.1"
	defaultTimeout = 30 * time.Second

	tokenHeader     = "X-HuutoApiToken"
	requestIDHeader = "X-Request-ID"
)

// Client talks to the Huuto.net API. It owns the token lifecycle: before
// every authenticated call the persisted token is checked for expiry and
// exchanged for a fresh one when needed.
type Client struct {
	baseURL  string
	username string
	password string
	client   *http.Client
	log      *slog.Logger
	store    TokenStore
	nowFunc  func() time.Time
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithLogger overrides the logger built from the config's logging section.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// WithTokenStore overrides where the token record is persisted. The default
// is an in-memory store, which loses the token when the process exits.
func WithTokenStore(s TokenStore) Option {
	return func(c *Client) {
		c.store = s
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) Option {
	return func(c *Client) {
		c.nowFunc = f
	}
}

// New creates a Huuto.net API client from cfg.
func New(cfg *Config, opts ...Option) *Client {
	c := &Client{
		baseURL:  defaultBaseURL,
		username: cfg.Huuto.Username,
		password: cfg.Huuto.Password,
		client:   &http.Client{Timeout: defaultTimeout},
		log:      logger.New(cfg.Logging.Level, cfg.Logging.Format),
		store:    NewMemoryTokenStore(cfg.Token),
		nowFunc:  time.Now,
	}
	if cfg.Huuto.BaseURL != "" {
		c.baseURL = cfg.Huuto.BaseURL
	}
	if cfg.Huuto.Timeout > 0 {
		c.client.Timeout = cfg.Huuto.Timeout
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromFile loads the config file at path and returns a client whose token
// record is persisted back into the same file after each credential exchange.
func NewFromFile(path string, opts ...Option) (*Client, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	opts = append([]Option{WithTokenStore(NewFileTokenStore(path))}, opts...)

	return New(cfg, opts...), nil
}

// Endpoints lists all API methods and their endpoints from the API root.
func (c *Client) Endpoints(ctx context.Context) (Document, error) {
	return c.get(ctx, "/", nil, false)
}

package backend

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultBaseURL   = "http://localhost:8000"
	defaultUserAgent = "spigell/cvwizard"
	defaultTimeout   = 60 * time.Second

	csrfHeader    = "X-CSRFToken"
	csrfCookie    = "csrftoken"
	sessionCookie = "sessionid"
)

// Config describes how to reach the writing backend. Tokens are resolved by
// the caller; empty tokens are simply not sent.
type Config struct {
	BaseURL      string
	Timeout      time.Duration
	UserAgent    string
	CSRFToken    string
	SessionToken string
}

// Client talks JSON over HTTP to the writing backend.
type Client struct {
	baseURL      string
	csrfToken    string
	sessionToken string
	logger       *zap.Logger
	HTTPClient   *http.Client
	UserAgent    string
}

func New(logger *zap.Logger, cfg Config) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	ua := strings.TrimSpace(cfg.UserAgent)
	if ua == "" {
		ua = defaultUserAgent
	}

	return &Client{
		baseURL:      baseURL,
		csrfToken:    strings.TrimSpace(cfg.CSRFToken),
		sessionToken: strings.TrimSpace(cfg.SessionToken),
		logger:       logger,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		UserAgent: ua,
	}
}

// BaseURL returns the backend root the client sends requests to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

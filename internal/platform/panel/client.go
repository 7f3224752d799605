package panel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-logr/logr"
)

const (
	// DefaultTimeout bounds each panel request.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent is sent on the token request; the panel's admin
	// routes are written for browsers.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36"

	maxErrorBody = 512
)

// Client is a cookie-authenticated client for the panel web UI.
// It is not safe for concurrent use.
type Client struct {
	base       string
	baseURL    *url.URL
	httpClient *http.Client
	userAgent  string
	logger     logr.Logger
	session    *Session
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the HTTP client. Its cookie jar is replaced by the session's.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		cp := *hc
		c.httpClient = &cp
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger for request diagnostics.
func WithLogger(l logr.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// WithUserAgent overrides the User-Agent of the token request.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a Client for the panel at baseURL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	base := NormalizeURL(baseURL)
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid panel URL %q: %w", baseURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid panel URL %q: no host", baseURL)
	}

	c := &Client{
		base:       base,
		baseURL:    u,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		userAgent:  DefaultUserAgent,
		logger:     logr.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.reset(); err != nil {
		return nil, err
	}
	return c, nil
}

// BaseURL returns the normalized panel URL.
func (c *Client) BaseURL() string {
	return c.base
}

// Session returns the current cookie session.
func (c *Client) Session() *Session {
	return c.session
}

// reset discards all cookies.
func (c *Client) reset() error {
	s, err := newSession()
	if err != nil {
		return err
	}
	c.session = s
	c.httpClient.Jar = s.jar
	return nil
}

// PrimeCSRF fetches a fresh CSRF cookie and returns its unescaped value.
func (c *Client) PrimeCSRF(ctx context.Context) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/sanctum/csrf-cookie", nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch CSRF cookie: %w", err)
	}
	drain(resp)

	token, err := c.session.readToken(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("fetch CSRF cookie: %w", err)
	}
	return token, nil
}

type loginRequest struct {
	User      string `json:"user"`
	Password  string `json:"password"`
	Recaptcha string `json:"g-recaptcha-response"`
}

type loginResponse struct {
	Data struct {
		Complete          bool   `json:"complete"`
		ConfirmationToken string `json:"confirmation_token"`
	} `json:"data"`
}

// Login starts a new session and authenticates as the admin.
// It returns the CSRF token issued for the authenticated session.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	if err := c.reset(); err != nil {
		return "", err
	}

	token, err := c.PrimeCSRF(ctx)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(loginRequest{User: email, Password: password})
	if err != nil {
		return "", fmt.Errorf("encode login request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/login", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("X-XSRF-TOKEN", token)
	req.Header.Set("Referer", c.base+"/auth/login")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	respBody, err := readAll(resp)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}

	c.probeAdmin(ctx)

	var lr loginResponse
	if err := json.Unmarshal(respBody, &lr); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return "", &StatusError{Op: "login", StatusCode: resp.StatusCode, Body: truncate(respBody)}
		}
		return "", fmt.Errorf("login: decode response: %w", err)
	}
	if !lr.Data.Complete {
		c.logger.V(1).Info("login response", "status", resp.StatusCode, "body", truncate(respBody))
		if lr.Data.ConfirmationToken != "" {
			return "", ErrTwoFactorRequired
		}
		return "", ErrLoginIncomplete
	}

	token, err = c.session.readToken(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	return token, nil
}

// probeAdmin logs the status of the admin index. It never fails the login.
func (c *Client) probeAdmin(ctx context.Context) {
	req, err := c.newRequest(ctx, http.MethodGet, "/admin", nil)
	if err != nil {
		return
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Info("admin probe failed", "url", c.base+"/admin", "error", err.Error())
		return
	}
	drain(resp)
	c.logger.Info("admin probe", "url", c.base+"/admin", "status", resp.StatusCode)
}

type tokenResponse struct {
	Token string `json:"token"`
}

// MintInstallToken asks the panel for a one-time configuration token for nodeID.
// The session must be logged in.
func (c *Client) MintInstallToken(ctx context.Context, nodeID int) (string, error) {
	csrf, err := c.PrimeCSRF(ctx)
	if err != nil {
		return "", err
	}

	nodePath := "/admin/nodes/view/" + strconv.Itoa(nodeID)
	req, err := c.newRequest(ctx, http.MethodPost, nodePath+"/settings/token", http.NoBody)
	if err != nil {
		return "", err
	}
	req.Header.Set("X-CSRF-TOKEN", csrf)
	req.Header.Set("Accept", "*/*")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Origin", c.base)
	req.Header.Set("Referer", c.base+nodePath+"/configuration")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("mint install token: %w", err)
	}
	body, err := readAll(resp)
	if err != nil {
		return "", fmt.Errorf("mint install token: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Op: "mint install token", StatusCode: resp.StatusCode, Body: truncate(body)}
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", fmt.Errorf("mint install token: decode response: %w", err)
	}
	if tr.Token == "" {
		return "", ErrEmptyToken
	}
	return tr.Token, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return req, nil
}

func readAll(resp *http.Response) ([]byte, error) {
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

func truncate(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > maxErrorBody {
		return s[:maxErrorBody] + "..."
	}
	return s
}

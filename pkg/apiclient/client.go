// Package apiclient talks to the BrazucaPhish backend API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/brazucaphish/console/pkg/shared/logging"
	"golang.org/x/oauth2"
)

// DefaultTimeout bounds every request so a hung backend ends in an error.
const DefaultTimeout = 30 * time.Second

// maxBodySize caps JSON bodies read from the backend.
const maxBodySize = 1 << 20

// Options configures a Client.
type Options struct {
	// BaseURL of the backend, e.g. "https://phish.example.com".
	BaseURL string
	// Timeout per request. Zero means DefaultTimeout.
	Timeout time.Duration
	// HTTPClient overrides the underlying client (its Timeout is replaced).
	HTTPClient *http.Client
	Logger     logging.Logger
}

// Client calls the backend API. It is safe for concurrent use; WithTokens derives
// clients that authenticate as a particular user.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	tokens  oauth2.TokenSource
	logger  logging.Logger
}

// New creates a client without credentials.
func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("apiclient: invalid base URL %q", opts.BaseURL)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := &http.Client{}
	if opts.HTTPClient != nil {
		clone := *opts.HTTPClient
		httpClient = &clone
	}
	httpClient.Timeout = timeout

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewSimpleLogger("api", logging.LevelInfo, false)
	} else {
		logger = logger.WithModule("api")
	}

	return &Client{baseURL: base, http: httpClient, logger: logger}, nil
}

// WithTokens returns a copy of c that sends "Authorization: Bearer <token>" whenever ts
// yields a non-empty access token.
func (c *Client) WithTokens(ts oauth2.TokenSource) *Client {
	clone := *c
	clone.tokens = ts
	return &clone
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*MessageResponse, error) {
	var resp MessageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/register", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Confirm confirms an account with the emailed code.
func (c *Client) Confirm(ctx context.Context, req ConfirmRequest) (*MessageResponse, error) {
	var resp MessageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/confirm", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/login", nil, req, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, ErrMissingToken
	}
	return &resp, nil
}

// Chat sends one message to the assistant.
func (c *Client) Chat(ctx context.Context, message string) (*ChatResponse, error) {
	var resp ChatResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/chatbot", nil, ChatRequest{Message: message}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stats fetches the dashboard overview.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var resp Stats
	if err := c.doJSON(ctx, http.MethodGet, "/api/phish/stats", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CampaignDetail fetches one campaign with its click timeline.
func (c *Client) CampaignDetail(ctx context.Context, id ID) (*CampaignDetail, error) {
	var resp CampaignDetail
	query := url.Values{"campaign_id": {string(id)}}
	if err := c.doJSON(ctx, http.MethodGet, "/api/phish/stats", query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Generate creates a campaign and its tracking links.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	var resp GenerateResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/phish/generate", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ExportURL is the backend URL of a campaign's CSV export.
func (c *Client) ExportURL(id ID) string {
	return c.endpoint(exportPath(id), nil)
}

func exportPath(id ID) string {
	return "/api/phish/export/" + url.PathEscape(string(id))
}

// Export streams a campaign's CSV export into w and returns the filename suggested by
// the backend's Content-Disposition header ("campaign_<id>.csv" when absent).
func (c *Client) Export(ctx context.Context, id ID, w io.Writer) (string, error) {
	resp, err := c.send(ctx, http.MethodGet, exportPath(id), nil, nil, "text/csv")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", c.apiError(resp)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return "", fmt.Errorf("apiclient: export stream failed: %w", err)
	}
	return exportFilename(resp.Header.Get("Content-Disposition"), id), nil
}

func exportFilename(disposition string, id ID) string {
	if _, params, err := mime.ParseMediaType(disposition); err == nil && params["filename"] != "" {
		return params["filename"]
	}
	return fmt.Sprintf("campaign_%s.csv", id)
}

// endpoint joins an escaped path onto the base URL.
func (c *Client) endpoint(path string, query url.Values) string {
	ref, err := url.Parse(path)
	if err != nil {
		ref = &url.URL{Path: path}
	}
	u := *c.baseURL
	u.Path = strings.TrimRight(c.baseURL.Path, "/") + ref.Path
	u.RawPath = strings.TrimRight(c.baseURL.EscapedPath(), "/") + ref.EscapedPath()
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// doJSON sends body as JSON and decodes a 2xx response into out. A body that is not
// JSON is treated as empty, so only the status decides success.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("apiclient: failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	resp, err := c.send(ctx, method, path, query, reader, "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.apiError(resp)
	}

	if out != nil {
		c.decodeBody(resp, out)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body io.Reader, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return nil, fmt.Errorf("apiclient: failed to build request: %w", err)
	}
	req.Header.Set("Accept", accept)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("API request failed", "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("apiclient: %s %s: %w", method, path, err)
	}
	c.logger.Debug("API request", "method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(start))
	return resp, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.tokens == nil {
		return
	}
	tok, err := c.tokens.Token()
	if err != nil {
		c.logger.Debug("No session token available", "error", err)
		return
	}
	if tok != nil && tok.AccessToken != "" {
		tok.SetAuthHeader(req)
	}
}

// decodeBody fills out from a JSON body. Anything else leaves out untouched.
func (c *Client) decodeBody(resp *http.Response, out interface{}) bool {
	if !isJSON(resp.Header.Get("Content-Type")) {
		c.logger.Debug("Ignoring non-JSON response body", "content_type", resp.Header.Get("Content-Type"))
		return false
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil || len(bytes.TrimSpace(data)) == 0 {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.logger.Debug("Ignoring malformed JSON response body", "error", err)
		return false
	}
	return true
}

func (c *Client) apiError(resp *http.Response) *APIError {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	c.decodeBody(resp, &body)
	return &APIError{StatusCode: resp.StatusCode, Message: body.Message, ErrorText: body.Error}
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

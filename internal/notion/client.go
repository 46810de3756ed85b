package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/faultnote/internal/logging"
)

const (
	// DefaultBaseURL is the public Notion API endpoint
	DefaultBaseURL = "https://api.notion.com"

	// DefaultNotionVersion is the API version sent in the Notion-Version header
	DefaultNotionVersion = "2022-06-28"

	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 15 * time.Second

	// searchPageSize is the largest page_size Notion accepts
	searchPageSize = 100

	// maxErrorBody caps how much of a failed response is read
	maxErrorBody = 64 * 1024
)

// ClientConfig holds the settings used to build a Client
type ClientConfig struct {
	BaseURL       string
	Token         string
	NotionVersion string
	Timeout       time.Duration
}

// Client talks to the Notion REST API on behalf of one integration token
type Client struct {
	// BaseURL is the API root, without the /v1 suffix
	BaseURL string

	// Token is the integration secret sent as a Bearer token
	Token string

	// NotionVersion is sent with every request
	NotionVersion string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client
}

// NewClient creates a client from cfg, filling unset fields with defaults
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	version := cfg.NotionVersion
	if version == "" {
		version = DefaultNotionVersion
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		BaseURL:       strings.TrimRight(baseURL, "/"),
		Token:         cfg.Token,
		NotionVersion: version,
		HTTPClient:    &http.Client{Timeout: timeout},
	}
}

// NewClientWithURL creates a client against baseURL with default settings
func NewClientWithURL(baseURL, token string) *Client {
	return NewClient(ClientConfig{BaseURL: baseURL, Token: token})
}

// ListPages returns the pages shared with the integration.
// A single search request is made; results past the first 100 are not fetched.
func (c *Client) ListPages(ctx context.Context) ([]Page, error) {
	body := searchRequest{
		Filter:   searchFilter{Property: "object", Value: "page"},
		PageSize: searchPageSize,
	}

	data, err := c.do(ctx, http.MethodPost, "/v1/search", body)
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, NewDecodeError("failed to parse search response", err)
	}

	pages := make([]Page, 0, len(resp.Results))
	for _, obj := range resp.Results {
		if obj.Object != "" && obj.Object != "page" {
			continue
		}
		if page, ok := obj.toPage(); ok {
			pages = append(pages, page)
		}
	}

	logging.Debug("Pages listed", zap.Int("count", len(pages)), zap.Bool("has_more", resp.HasMore))
	return pages, nil
}

// AppendEntry appends entry to the end of the page identified by pageID
func (c *Client) AppendEntry(ctx context.Context, pageID string, entry Entry) error {
	pageID = strings.TrimSpace(pageID)
	if pageID == "" {
		return NewValidationError("no page selected")
	}
	if err := CheckLimits(entry); err != nil {
		return err
	}

	body := appendChildrenRequest{Children: BuildEntryBlocks(entry)}
	path := "/v1/blocks/" + url.PathEscape(pageID) + "/children"

	_, err := c.do(ctx, http.MethodPatch, path, body)
	logging.LogSubmission(pageID, entry.HasCode(), err)
	return err
}

// do sends one JSON request and returns the body of a 2xx response
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	if strings.TrimSpace(c.Token) == "" {
		return nil, NewAuthError(0, "no Notion integration token configured")
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, NewNetworkError("failed to create request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Notion-Version", c.NotionVersion)
	req.Header.Set("Content-Type", "application/json")

	logging.LogAPIRequest(method, path, len(encoded))
	start := time.Now()

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, NewNetworkError("failed to reach Notion", err)
	}
	defer func() { _ = resp.Body.Close() }()

	logging.LogAPIResponse(method, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, responseError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewNetworkError("failed to read response", err)
	}
	return data, nil
}

// responseError converts a non-2xx response into an APIError, surfacing
// Notion's code and message when the body carries them
func responseError(resp *http.Response) *APIError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var envelope errorResponse
	var message string
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Message != "" {
		message = envelope.Message
	} else if text := strings.TrimSpace(string(raw)); text != "" {
		message = text
	} else {
		message = http.StatusText(resp.StatusCode)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return NewAuthError(resp.StatusCode, message)
	}
	return NewHTTPError(resp.StatusCode, envelope.Code, message)
}

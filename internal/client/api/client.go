package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nberthel/formadmin/internal/client/storage"
	pkgapi "github.com/nberthel/formadmin/pkg/api"
)

// publicEndpoints never receive a bearer header, even when a token is
// stored. Matched by path suffix, mirroring the backend's public routes.
var publicEndpoints = []string{"/token/", "/register/", "/users/register/"}

// LogoutNotifier lets the HTTP layer force a logout without holding a
// reference to the session controller. Wired at bootstrap.
type LogoutNotifier interface {
	Trigger()
}

// Client is the authenticated HTTP client every backend call goes through.
// It injects the stored bearer token on non-public requests and tears the
// session down on 401 responses.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     storage.TokenStorage
	logout     LogoutNotifier
}

// defaultTimeout bounds requests when the configuration supplies none.
const defaultTimeout = 30 * time.Second

// NewClient creates an API client. baseURL should include the /api prefix.
// A non-positive timeout selects the default. logout may be nil (no
// forced-logout propagation, useful in tests).
func NewClient(baseURL string, timeout time.Duration, tokens storage.TokenStorage, logout LogoutNotifier) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		logout:  logout,
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Keep the bearer header across redirects
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// Login exchanges credentials for a token pair. Public endpoint: no bearer
// header is attached and a 401 here does not broadcast a logout.
func (c *Client) Login(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.TokenResponse, error) {
	var resp pkgapi.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/token/", req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Register creates a new account through the public registration endpoint.
func (c *Client) Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.RegisterResponse, error) {
	var resp pkgapi.RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/register/", req, &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Me fetches the current user profile using the stored access token.
func (c *Client) Me(ctx context.Context) (*pkgapi.UserProfile, error) {
	var profile pkgapi.UserProfile
	if err := c.do(ctx, http.MethodGet, "/users/me/", nil, &profile); err != nil {
		return nil, fmt.Errorf("profile request failed: %w", err)
	}
	return &profile, nil
}

// GlobalSearch queries the cross-resource search endpoint.
func (c *Client) GlobalSearch(ctx context.Context, query string) ([]pkgapi.SearchResult, error) {
	q := url.Values{}
	q.Set("q", query)

	body, err := c.doRequest(ctx, http.MethodGet, "/search/?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}

	page, err := decodePage[pkgapi.SearchResult](body)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	return page.Items, nil
}

// do performs a JSON request and decodes the (envelope-stripped) response
// into result when result is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	contentType := ""
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
		contentType = "application/json"
	}

	respBody, err := c.roundTrip(ctx, method, path, bodyReader, contentType)
	if err != nil {
		return err
	}

	if result != nil {
		if err := json.Unmarshal(unwrapEnvelope(respBody), result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// doRequest performs a JSON request and returns the raw response body,
// for callers that need to normalize list envelopes themselves.
func (c *Client) doRequest(ctx context.Context, method, path string, body any) ([]byte, error) {
	var bodyReader io.Reader
	contentType := ""
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
		contentType = "application/json"
	}
	return c.roundTrip(ctx, method, path, bodyReader, contentType)
}

// doMultipart uploads fields plus one file as multipart/form-data and
// decodes the response into result when non-nil. Used by document
// create/update.
func (c *Client) doMultipart(ctx context.Context, method, path string, fields map[string]string, fileField, filename string, file io.Reader, result any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, val := range fields {
		if err := writer.WriteField(key, val); err != nil {
			return fmt.Errorf("failed to write form field %q: %w", key, err)
		}
	}
	if file != nil {
		part, err := writer.CreateFormFile(fileField, filename)
		if err != nil {
			return fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := io.Copy(part, file); err != nil {
			return fmt.Errorf("failed to copy file contents: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	respBody, err := c.roundTrip(ctx, method, path, &buf, writer.FormDataContentType())
	if err != nil {
		return err
	}

	if result != nil {
		if err := json.Unmarshal(unwrapEnvelope(respBody), result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// roundTrip is the single request/response path: bearer injection on the
// way out, status classification and 401 teardown on the way back.
func (c *Client) roundTrip(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	// A missing token never blocks the request, the server answers 401.
	if !isPublic(path) && c.tokens != nil {
		pair, err := c.tokens.GetTokens(ctx)
		if err == nil && pair.Access != "" {
			req.Header.Set("Authorization", "Bearer "+pair.Access)
		} else if err != nil && err != storage.ErrTokensNotFound {
			slog.Warn("failed to read stored tokens", "error", err)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", &Error{Kind: KindNetwork, Message: err.Error()})
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := parseError(resp.StatusCode, respBody)
		if resp.StatusCode == http.StatusUnauthorized && !isPublic(path) {
			c.endSession(ctx)
		}
		return nil, apiErr
	}

	return respBody, nil
}

// endSession clears the stored tokens and broadcasts the forced logout.
// 403 deliberately does not come through here: permission failures leave
// the session intact.
func (c *Client) endSession(ctx context.Context) {
	if c.tokens != nil {
		if err := c.tokens.ClearTokens(ctx); err != nil {
			slog.Warn("failed to clear tokens after 401", "error", err)
		}
	}
	if c.logout != nil {
		c.logout.Trigger()
	}
}

func isPublic(path string) bool {
	// Strip the query string before matching
	if idx := strings.IndexByte(path, '?'); idx >= 0 {
		path = path[:idx]
	}
	for _, endpoint := range publicEndpoints {
		if strings.HasSuffix(path, endpoint) {
			return true
		}
	}
	return false
}

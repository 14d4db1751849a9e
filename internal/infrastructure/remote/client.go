// Package remote is the HTTP client of the inventory API that owns receiving
// transactions, users and warehouses.
package remote

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

	"github.com/sangkips/warehouse-api/internal/domain/entity"
	"github.com/sangkips/warehouse-api/internal/domain/repository"
)

const maxErrorBody = 512

// StatusError is returned for every non-2xx response. Body holds the start of
// the response for logs and is left out of Error.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
}

// ResponseBody returns the response excerpt
func (e *StatusError) ResponseBody() string {
	return e.Body
}

// HTTPStatus returns the response status code
func (e *StatusError) HTTPStatus() int {
	return e.StatusCode
}

// Client talks to the remote API. Requests carry the credential attached by identity.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	identity   repository.Identity
}

// NewClient creates a client for baseURL, e.g. "http://localhost:8000/api/".
// identity may be nil for unauthenticated calls only.
func NewClient(baseURL string, timeout time.Duration, identity repository.Identity) (*Client, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", baseURL, err)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: timeout},
		identity:   identity,
	}, nil
}

var (
	_ repository.ReceivingAPI       = (*Client)(nil)
	_ repository.WarehouseDirectory = (*Client)(nil)
	_ repository.IdentityProvider   = (*Client)(nil)
)

// ListReceiving fetches all receiving transactions
func (c *Client) ListReceiving(ctx context.Context) ([]entity.TransactionRecord, error) {
	var records []entity.TransactionRecord
	if err := c.do(ctx, http.MethodGet, "transactions/?transaction_type="+entity.TransactionTypeReceive, nil, &records, true); err != nil {
		return nil, err
	}
	if records == nil {
		records = []entity.TransactionRecord{}
	}
	return records, nil
}

// CreateReceiving posts a new receiving transaction and returns the stored record
func (c *Client) CreateReceiving(ctx context.Context, record *entity.TransactionRecord) (*entity.TransactionRecord, error) {
	var saved entity.TransactionRecord
	if err := c.do(ctx, http.MethodPost, "transactions/receive_items/", record, &saved, true); err != nil {
		return nil, err
	}
	return &saved, nil
}

// UpdateReceiving replaces the transaction with the given id
func (c *Client) UpdateReceiving(ctx context.Context, id entity.RecordID, record *entity.TransactionRecord) (*entity.TransactionRecord, error) {
	var saved entity.TransactionRecord
	path := "transactions/" + url.PathEscape(id.String()) + "/"
	if err := c.do(ctx, http.MethodPut, path, record, &saved, true); err != nil {
		return nil, err
	}
	return &saved, nil
}

// DeleteReceiving removes the transaction with the given id
func (c *Client) DeleteReceiving(ctx context.Context, id entity.RecordID) error {
	path := "transactions/" + url.PathEscape(id.String()) + "/"
	return c.do(ctx, http.MethodDelete, path, nil, nil, true)
}

// ListWarehouses fetches the warehouses the operator can pick from
func (c *Client) ListWarehouses(ctx context.Context) ([]entity.Warehouse, error) {
	var warehouses []entity.Warehouse
	if err := c.do(ctx, http.MethodGet, "warehouses/", nil, &warehouses, true); err != nil {
		return nil, err
	}
	return warehouses, nil
}

// ObtainToken exchanges credentials for an access token
func (c *Client) ObtainToken(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var result struct {
		Access string `json:"access"`
	}
	if err := c.do(ctx, http.MethodPost, "token/", body, &result, false); err != nil {
		return "", err
	}
	if result.Access == "" {
		return "", fmt.Errorf("POST token/: no access token received")
	}
	return result.Access, nil
}

// FetchCurrentUser resolves the user that owns token
func (c *Client) FetchCurrentUser(ctx context.Context, token string) (*entity.User, error) {
	var result struct {
		ID       int64  `json:"id"`
		Email    string `json:"email"`
		Username string `json:"username"`
		Name     string `json:"name"`
		Role     string `json:"role"`
	}
	err := c.doWithToken(ctx, http.MethodGet, "users/me/", nil, &result, token)
	if err != nil {
		return nil, err
	}
	name := result.Name
	if name == "" {
		name = result.Username
	}
	return &entity.User{ID: result.ID, Email: result.Email, Name: name, Role: result.Role}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, authenticated bool) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if authenticated && c.identity != nil {
		c.identity.AttachCredential(ctx, req)
	}
	return c.send(req, path, out)
}

func (c *Client) doWithToken(ctx context.Context, method, path string, body, out interface{}, token string) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return c.send(req, path, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", path, err)
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.ResolveReference(ref).String(), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) send(req *http.Request, path string, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method:     req.Method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: malformed response: %w", req.Method, path, err)
	}
	return nil
}

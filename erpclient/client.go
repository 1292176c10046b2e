package erpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/purchasing_backend/utils"
	"github.com/sirupsen/logrus"
)

// Client wraps the ERP backend's REST API. One method set per resource;
// every call is a single request with no retry. The backup sub-API gets
// its own long-timeout HTTP client because restore payloads are large.
type Client struct {
	baseURL    string
	http       *http.Client
	backupHTTP *http.Client
	logger     *logrus.Logger
}

func New(logger *logrus.Logger) *Client {
	baseURL := strings.TrimSpace(os.Getenv("ERP_API_BASE_URL"))
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		http:       &http.Client{Timeout: 30 * time.Second},
		backupHTTP: &http.Client{Timeout: 5 * time.Minute},
		logger:     logger,
	}
}

// APIError is a server-rejected request: the backend answered with an
// error body, expected as {"message": "..."}.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("erp api error %d: %s", e.StatusCode, e.Message)
}

func (c *Client) do(ctx context.Context, httpClient *http.Client, method string, path string, body any, out any) error {
	endpoint := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cid, ok := utils.GetCorrelationIdFromContext(ctx); ok {
		req.Header.Set("x-correlation-id", cid)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(respBody)}
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, c.http, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, c.http, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, c.http, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, c.http, http.MethodDelete, path, nil, nil)
}

// errorMessage digs the user-facing text out of an error body. Raw body
// text is the fallback when the shape is unexpected.
func errorMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}
	return strings.TrimSpace(string(body))
}

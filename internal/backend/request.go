package backend

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const (
	contentType     = "application/json"
	contentEncoding = "gzip"
)

// StatusError is a non-2xx answer. Message holds the "error" field of the
// JSON body when there is one.
type StatusError struct {
	Code    int
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("bad status: %s: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("bad status: %s", e.Status)
}

// APIError is an "error" field reported inside a 2xx answer.
type APIError struct {
	Endpoint string
	Message  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Endpoint, e.Message)
}

func (c *Client) postJSON(ctx context.Context, path string, payload any) (map[string]any, error) {
	var body io.Reader = http.NoBody
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)
	// The CSRF token goes only on mutating calls.
	if c.csrfToken != "" {
		req.Header.Set(csrfHeader, c.csrfToken)
	}

	return c.do(req)
}

func (c *Client) getJSON(ctx context.Context, path string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	return c.do(c.setHeaders(req))
}

func (c *Client) do(req *http.Request) (map[string]any, error) {
	resp, err := c.request(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var raw map[string]any
	if len(bytes.TrimSpace(data)) > 0 {
		if jsonErr := json.Unmarshal(data, &raw); jsonErr != nil && isSuccess(resp.StatusCode) {
			return nil, fmt.Errorf("decode response: %w", jsonErr)
		}
	}

	if !isSuccess(resp.StatusCode) {
		return nil, &StatusError{
			Code:    resp.StatusCode,
			Status:  resp.Status,
			Message: stringValue(raw["error"]),
		}
	}

	if raw == nil {
		raw = make(map[string]any)
	}

	return raw, nil
}

func (c *Client) request(req *http.Request) (*http.Response, error) {
	c.logger.Debug("make request", zap.String("method", req.Method), zap.String("url", req.URL.String()))
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", contentType)
	req.Header.Set("Accept-Encoding", contentEncoding)

	if c.csrfToken != "" {
		req.AddCookie(&http.Cookie{Name: csrfCookie, Value: c.csrfToken})
	}
	if c.sessionToken != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: c.sessionToken})
	}

	return req
}

// decode maps a generic JSON object onto target. Scalars are converted
// weakly so that "88" and 88 decode the same way.
func decode(raw map[string]any, target any) error {
	if v, ok := raw["error"]; ok {
		raw["error"] = stringValue(v)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return err
	}

	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func isSuccess(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}

func stringValue(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(typed)
	case map[string]any:
		// Some providers nest the message: {"error": {"message": "..."}}.
		return stringValue(typed["message"])
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", typed))
	}
}

package huuto

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/akardes/huutonet-client/internal/metrics"
)

// Document is a decoded JSON response body. The API's entity shapes are only
// partially documented, so responses are passed through as generic mappings
// instead of strict structs.
type Document map[string]any

// get issues a GET request and decodes the JSON response.
func (c *Client) get(ctx context.Context, path string, params url.Values, auth bool, accepted ...int) (Document, error) {
	raw, _, err := c.do(ctx, http.MethodGet, path, params, nil, "", auth, accepted)
	if err != nil {
		return nil, err
	}
	return decodeDocument(raw)
}

// postForm issues a POST request with a form-encoded body. The authentication
// endpoint only accepts form data, and so do most plain-field endpoints.
func (c *Client) postForm(ctx context.Context, path string, data url.Values, auth bool, accepted ...int) (Document, error) {
	body := strings.NewReader(data.Encode())
	raw, _, err := c.do(ctx, http.MethodPost, path, nil, body, "application/x-www-form-urlencoded", auth, accepted)
	if err != nil {
		return nil, err
	}
	return decodeDocument(raw)
}

// postJSON issues a POST request with a JSON body. Required for payloads with
// array-valued fields, which the API does not decode from form encoding.
func (c *Client) postJSON(ctx context.Context, path string, data map[string]any, auth bool, accepted ...int) (Document, error) {
	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}
	raw, _, err := c.do(ctx, http.MethodPost, path, nil, strings.NewReader(string(encoded)), "application/json", auth, accepted)
	if err != nil {
		return nil, err
	}
	return decodeDocument(raw)
}

// postFile issues a multipart POST uploading r under the form field "file".
func (c *Client) postFile(ctx context.Context, path, filename string, r io.Reader, auth bool, accepted ...int) (Document, error) {
	var buf strings.Builder
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("creating multipart field: %w", err)
	}
	if _, err := io.Copy(fw, r); err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing multipart body: %w", err)
	}

	raw, _, err := c.do(ctx, http.MethodPost, path, nil, strings.NewReader(buf.String()), mw.FormDataContentType(), auth, accepted)
	if err != nil {
		return nil, err
	}
	return decodeDocument(raw)
}

// put issues a PUT request with a form-encoded body.
func (c *Client) put(ctx context.Context, path string, data url.Values, auth bool, accepted ...int) (Document, error) {
	body := strings.NewReader(data.Encode())
	raw, _, err := c.do(ctx, http.MethodPut, path, nil, body, "application/x-www-form-urlencoded", auth, accepted)
	if err != nil {
		return nil, err
	}
	return decodeDocument(raw)
}

// del issues a DELETE request. The API returns no body on deletes, so the
// response itself is returned for status and header inspection.
func (c *Client) del(ctx context.Context, path string, auth bool, accepted ...int) (*http.Response, error) {
	_, resp, err := c.do(ctx, http.MethodDelete, path, nil, nil, "", auth, accepted)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// do is the shared request path: attach the token when required, send, read
// the body and validate the status code against the accepted set before any
// decoding, so malformed error bodies never reach the caller.
func (c *Client) do(
	ctx context.Context,
	method, path string,
	query url.Values,
	body io.Reader,
	contentType string,
	auth bool,
	accepted []int,
) ([]byte, *http.Response, error) {
	if len(accepted) == 0 {
		accepted = []int{http.StatusOK}
	}

	var token string
	if auth {
		t, err := c.ensureToken(ctx)
		if err != nil {
			return nil, nil, err
		}
		token = t
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %s %s request: %w", method, path, err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set(tokenHeader, token)
	}

	reqID := uuid.NewString()
	req.Header.Set(requestIDHeader, reqID)

	start := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("executing %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("reading response body: %w", err)
	}

	metrics.APICallsTotal.WithLabelValues(method).Inc()
	metrics.RequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())

	c.log.Debug("api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
		"request_id", reqID,
	)

	if err := checkStatus(method, path, resp.StatusCode, accepted); err != nil {
		metrics.APIErrorsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()
		c.log.Warn("api request rejected",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"request_id", reqID,
		)
		return nil, nil, err
	}

	return raw, resp, nil
}

func decodeDocument(raw []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	return doc, nil
}

package httpclient

import (
	"context"
	"io"
	"net/http"
)

// Request describes an outbound HTTP request.
type Request struct {
	// Method is the HTTP method (GET, POST, PUT, PATCH, DELETE).
	Method string
	// Path is appended to the adapter's BaseURL. A full URL (for example a
	// Link header target) is used verbatim.
	Path string
	// Headers are request-specific headers (merged with adapter defaults).
	Headers map[string]string
	// Query are URL query parameters, merged into any query already on Path.
	Query map[string]string
	// Body is the request body. Accepts io.Reader, []byte, string, or any value
	// that will be JSON-encoded.
	Body any
	// Auth overrides the adapter-level auth for this request.
	Auth *AuthConfig
}

// Response is the result of an HTTP request.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers, first value per key.
	Headers map[string]string
	// Body is the raw response body.
	Body []byte
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError returns true if the status code is 4xx or 5xx.
func (r *Response) IsError() bool {
	return r.StatusCode >= 400
}

// Links returns the relations of the response's Link header (rel → URL).
// The map is empty when the header is absent.
func (r *Response) Links() map[string]string {
	return ParseLinks(r.Headers["Link"])
}

// HasLinks reports whether the response carried a Link header at all.
func (r *Response) HasLinks() bool {
	_, ok := r.Headers["Link"]
	return ok
}

// StreamResponse wraps a streaming HTTP response.
type StreamResponse struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers.
	Headers map[string]string
	// ContentLength is the declared body length, -1 when unknown.
	ContentLength int64
	// Body is the raw streaming body.
	Body io.ReadCloser
	// rawResp holds the original response for cleanup.
	rawResp *http.Response
	cancel  context.CancelFunc
}

// Close releases all resources associated with the stream.
func (r *StreamResponse) Close() error {
	if r.cancel != nil {
		defer r.cancel()
	}
	if r.Body != nil {
		return r.Body.Close()
	}
	if r.rawResp != nil && r.rawResp.Body != nil {
		return r.rawResp.Body.Close()
	}
	return nil
}

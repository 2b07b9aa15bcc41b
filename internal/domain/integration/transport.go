package integration

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// TransportRequest is a single request to a channel API
type TransportRequest struct {
	Method  string
	URL     string
	Headers map[string]string
	Query   url.Values
	// Body is encoded as JSON when non-nil
	Body any
}

// TransportResponse is a successful (2xx) channel response
type TransportResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Transport sends requests to a channel API.
// Non-2xx responses and connection failures are returned as *ChannelError.
type Transport interface {
	Send(ctx context.Context, req *TransportRequest) (*TransportResponse, error)
}

// ---------------------------------------------------------------------------
// ChannelError
// ---------------------------------------------------------------------------

// ChannelErrorKind distinguishes the causes of a failed channel call
type ChannelErrorKind string

const (
	// ChannelErrorRejected means the channel answered with a non-2xx status
	ChannelErrorRejected ChannelErrorKind = "REJECTED"
	// ChannelErrorUnreachable means no response was received
	ChannelErrorUnreachable ChannelErrorKind = "UNREACHABLE"
	// ChannelErrorMalformed means the response body could not be decoded
	ChannelErrorMalformed ChannelErrorKind = "MALFORMED"
)

// ChannelError is a failed channel call with the raw response attached when there was one
type ChannelError struct {
	Kind       ChannelErrorKind
	URL        string
	StatusCode int
	Headers    http.Header
	Body       []byte
	Err        error
}

// NewRejectedError creates an error for a non-2xx channel response
func NewRejectedError(rawURL string, status int, headers http.Header, body []byte) *ChannelError {
	return &ChannelError{Kind: ChannelErrorRejected, URL: rawURL, StatusCode: status, Headers: headers, Body: body}
}

// NewUnreachableError creates an error for a request that got no response
func NewUnreachableError(rawURL string, err error) *ChannelError {
	return &ChannelError{Kind: ChannelErrorUnreachable, URL: rawURL, Err: err}
}

// NewMalformedError creates an error for a response whose body could not be decoded
func NewMalformedError(rawURL string, resp *TransportResponse, err error) *ChannelError {
	ce := &ChannelError{Kind: ChannelErrorMalformed, URL: rawURL, Err: err}
	if resp != nil {
		ce.StatusCode = resp.StatusCode
		ce.Headers = resp.Headers
		ce.Body = resp.Body
	}
	return ce
}

// Error implements error
func (e *ChannelError) Error() string {
	switch e.Kind {
	case ChannelErrorRejected:
		return fmt.Sprintf("channel rejected request [url] %s [status code] %d [reason phrase] %s",
			e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	case ChannelErrorUnreachable:
		return fmt.Sprintf("channel unreachable [url] %s: %v", e.URL, e.Err)
	default:
		return fmt.Sprintf("channel returned malformed payload [url] %s: %v", e.URL, e.Err)
	}
}

// Unwrap exposes the kind's sentinel error and the underlying cause
func (e *ChannelError) Unwrap() []error {
	errs := []error{e.sentinel()}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func (e *ChannelError) sentinel() error {
	switch e.Kind {
	case ChannelErrorRejected:
		return ErrPlatformRequestFailed
	case ChannelErrorUnreachable:
		return ErrPlatformUnavailable
	default:
		return ErrPlatformInvalidResponse
	}
}

// HasResponse reports whether the channel produced a response
func (e *ChannelError) HasResponse() bool {
	return e.Kind != ChannelErrorUnreachable
}

// AsChannelError extracts a *ChannelError from an error chain
func AsChannelError(err error) (*ChannelError, bool) {
	var ce *ChannelError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// ---------------------------------------------------------------------------
// ChannelResponse
// ---------------------------------------------------------------------------

// ChannelResponse is the diagnostic view of a channel exchange returned to callers
type ChannelResponse struct {
	Headers          map[string][]string `json:"headers,omitempty"`
	ResponseCode     int                 `json:"response_code,omitempty"`
	ResponseBody     string              `json:"response_body,omitempty"`
	ExceptionMessage string              `json:"exception_message,omitempty"`
}

// NewChannelResponse describes a successful exchange
func NewChannelResponse(resp *TransportResponse) *ChannelResponse {
	if resp == nil {
		return nil
	}
	return &ChannelResponse{
		Headers:      resp.Headers,
		ResponseCode: resp.StatusCode,
		ResponseBody: string(resp.Body),
	}
}

// NewChannelErrorResponse describes a failed exchange
func NewChannelErrorResponse(err error) *ChannelResponse {
	ce, ok := AsChannelError(err)
	if !ok {
		return &ChannelResponse{ExceptionMessage: err.Error()}
	}
	return &ChannelResponse{
		Headers:          ce.Headers,
		ResponseCode:     ce.StatusCode,
		ResponseBody:     string(ce.Body),
		ExceptionMessage: ce.Error(),
	}
}

// ---------------------------------------------------------------------------
// SchemaValidator
// ---------------------------------------------------------------------------

// Validation issue codes
const (
	IssueMissingRequiredField = "MISSING_REQUIRED_FIELD"
	IssueFieldInvalidValue    = "FIELD_INVALID_VALUE"
	IssueInvalidPayload       = "INVALID_PAYLOAD"
	IssueMissingQueryParam    = "MISSING_QUERY_PARAM"
	IssueInvalidQueryParam    = "INVALID_QUERY_PARAM"
)

// ValidationIssue is one structural problem found in a document
type ValidationIssue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SchemaValidator validates a document against a named schema.
// An empty result means the document is valid.
type SchemaValidator interface {
	Validate(document any, schemaName string) []ValidationIssue
}

// Package functions is the client for the hosted remote-function endpoint,
// the primary channel of state-mutating admin commands. It returns typed
// errors so fallback eligibility is decided from status codes and transport
// error classes, never from message text.
package functions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/Ernest01982/tuktukeazyadmin/internal/apperrors"
)

// InvokeError describes a non-2xx response from the function endpoint.
// Status carries the transport status; Body the raw response text.
type InvokeError struct {
	Function string
	Status   int
	Body     string
	kind     error
}

func (e *InvokeError) Error() string {
	return fmt.Sprintf("function %s returned %d: %s", e.Function, e.Status, e.Body)
}

func (e *InvokeError) Unwrap() error {
	return e.kind
}

// Client invokes named remote functions with the caller's bearer credential.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a function endpoint client. baseURL points at the
// function gateway, e.g. https://project.example.com/functions/v1.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Invoke POSTs payload as JSON to the named function and returns the raw
// response body. Transport failures, timeouts, and gateway availability
// statuses map to apperrors.ErrUnavailable; explicit application rejections
// keep their own error kind and are never retried through a fallback.
func (c *Client) Invoke(ctx context.Context, name string, bearerToken string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to encode function payload", err)
	}

	url := c.baseURL + "/" + name
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to build function request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+bearerToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(name, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading function %s response: %v", apperrors.ErrUnavailable, name, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return respBody, nil
	}

	return nil, &InvokeError{
		Function: name,
		Status:   resp.StatusCode,
		Body:     string(respBody),
		kind:     kindForStatus(resp.StatusCode),
	}
}

func classifyTransportError(name string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: function %s timed out: %v", apperrors.ErrUnavailable, name, err)
	}
	return fmt.Errorf("%w: failed to send request to function %s: %v", apperrors.ErrUnavailable, name, err)
}

// kindForStatus maps a transport status to the error taxonomy. A 404 means
// the function route is not deployed and 5xx gateway statuses mean the
// function infrastructure is down; both are availability failures. Explicit
// 4xx rejections come from a reachable, authoritative endpoint.
func kindForStatus(status int) error {
	switch status {
	case http.StatusNotFound, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return apperrors.ErrUnavailable
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperrors.ErrValidation
	case http.StatusUnauthorized:
		return apperrors.ErrUnauthorized
	case http.StatusForbidden:
		return apperrors.ErrForbidden
	case http.StatusConflict:
		return apperrors.ErrDuplicate
	default:
		return apperrors.ErrInternal
	}
}

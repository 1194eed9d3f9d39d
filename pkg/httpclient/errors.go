package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/Vinicius-Leon/leons-cupcake/pkg/errors"
)

// BackendErrorResponse mirrors the error bodies returned by the storefront
// backend. Depending on the endpoint the message arrives under "erro" or
// "mensagem".
type BackendErrorResponse struct {
	Erro     string `json:"erro"`
	Mensagem string `json:"mensagem"`
}

// Message returns whichever message field the backend populated.
func (r *BackendErrorResponse) Message() string {
	if r.Erro != "" {
		return r.Erro
	}
	return r.Mensagem
}

// ParseResponseError reads the body of a non-2xx HTTP response and translates
// it into an appropriate AppError. If the response body matches the backend's
// error format, the message is preserved. Otherwise a generic error is
// returned with the status code and raw body.
//
// The caller should only invoke this when resp.StatusCode indicates an error
// (i.e., not 2xx). The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB limit
	if err != nil {
		return fmt.Errorf("backend returned status %d (failed to read body: %w)", resp.StatusCode, err)
	}

	// Try to parse structured error response.
	var backend BackendErrorResponse
	if json.Unmarshal(bodyBytes, &backend) == nil && backend.Message() != "" {
		return mapBackendError(resp.StatusCode, backend.Message())
	}

	// Fallback: unstructured error body.
	return fmt.Errorf("backend returned status %d: %s", resp.StatusCode, string(bodyBytes))
}

// mapBackendError translates the backend's HTTP status code and error message
// into an AppError that preserves the error semantics.
func mapBackendError(status int, message string) error {
	switch {
	case status == http.StatusNotFound:
		return &apperrors.AppError{
			Code:    "NOT_FOUND",
			Message: message,
			Status:  http.StatusNotFound,
			Err:     apperrors.ErrNotFound,
		}
	case status == http.StatusBadRequest:
		return apperrors.InvalidInput(message)
	case status == http.StatusConflict:
		return apperrors.Conflict(message)
	case status == http.StatusUnauthorized:
		return apperrors.Unauthorized(message)
	case status == http.StatusForbidden:
		return apperrors.Forbidden(message)
	case status == http.StatusServiceUnavailable:
		return apperrors.ServiceUnavailable(message)
	case status >= 500:
		return fmt.Errorf("backend server error (%d): %s", status, message)
	default:
		return &apperrors.AppError{
			Code:    "BACKEND_ERROR",
			Message: message,
			Status:  status,
		}
	}
}

// IsClientError returns true if the HTTP status code is a 4xx client error.
// Client errors should not be retried: the request itself was invalid.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}

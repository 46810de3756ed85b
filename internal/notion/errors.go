package notion

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"syscall"

	"github.com/muurk/faultnote/internal/urls"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeNetwork indicates a network-level error
	ErrTypeNetwork ErrorType = iota
	// ErrTypeAuth indicates a missing or rejected integration token
	ErrTypeAuth
	// ErrTypeAPI indicates Notion rejected the request (non-2xx other than 401)
	ErrTypeAPI
	// ErrTypeDecode indicates a response body that could not be decoded
	ErrTypeDecode
	// ErrTypeValidation indicates a request that was refused before sending
	ErrTypeValidation
	// ErrTypeTimeout indicates a request timeout
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates the remote refused the connection
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates a DNS resolution failure
	ErrTypeDNS
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeAuth:
		return "Authentication Error"
	case ErrTypeAPI:
		return "API Error"
	case ErrTypeDecode:
		return "Decode Error"
	case ErrTypeValidation:
		return "Validation Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// APIError is returned by every Client operation
type APIError struct {
	Type       ErrorType // Category of error
	Message    string    // Human-readable error message
	StatusCode int       // HTTP status code (if applicable)
	Code       string    // Notion error code, e.g. "object_not_found"
	Err        error     // Underlying error (if any)
	Retryable  bool      // Whether repeating the action may succeed
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *APIError) Unwrap() error {
	return e.Err
}

// ClassifyNetworkError analyzes a transport error and returns a more specific error
func ClassifyNetworkError(err error) *APIError {
	if err == nil {
		return nil
	}

	if os.IsTimeout(err) || errors.Is(err, os.ErrDeadlineExceeded) {
		return &APIError{
			Type:      ErrTypeTimeout,
			Message:   "request timed out",
			Err:       err,
			Retryable: true,
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &APIError{
			Type:      ErrTypeDNS,
			Message:   fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name),
			Err:       err,
			Retryable: false,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return &APIError{
			Type:      ErrTypeConnectionRefused,
			Message:   "connection refused",
			Err:       err,
			Retryable: true,
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return ClassifyNetworkError(urlErr.Err)
	}

	return &APIError{
		Type:      ErrTypeNetwork,
		Message:   "network error occurred",
		Err:       err,
		Retryable: true,
	}
}

// NewNetworkError creates a network-level error with automatic classification
func NewNetworkError(message string, err error) *APIError {
	classified := ClassifyNetworkError(err)
	if classified != nil {
		classified.Message = message
		return classified
	}
	return &APIError{
		Type:      ErrTypeNetwork,
		Message:   message,
		Err:       err,
		Retryable: true,
	}
}

// NewAuthError creates an authentication error
func NewAuthError(statusCode int, message string) *APIError {
	return &APIError{
		Type:       ErrTypeAuth,
		Message:    message,
		StatusCode: statusCode,
		Retryable:  false,
	}
}

// NewHTTPError creates an API-level error from a non-2xx response
func NewHTTPError(statusCode int, code, message string) *APIError {
	return &APIError{
		Type:       ErrTypeAPI,
		Message:    message,
		StatusCode: statusCode,
		Code:       code,
		Retryable:  statusCode >= 500 || statusCode == 429,
	}
}

// NewDecodeError creates a decoding error
func NewDecodeError(message string, err error) *APIError {
	return &APIError{
		Type:      ErrTypeDecode,
		Message:   message,
		Err:       err,
		Retryable: false,
	}
}

// NewValidationError creates a validation error
func NewValidationError(message string) *APIError {
	return &APIError{
		Type:      ErrTypeValidation,
		Message:   message,
		Retryable: false,
	}
}

func asAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNetworkError checks if an error is a network error (including timeout, connection refused, DNS)
func IsNetworkError(err error) bool {
	if apiErr, ok := asAPIError(err); ok {
		return apiErr.Type == ErrTypeNetwork ||
			apiErr.Type == ErrTypeTimeout ||
			apiErr.Type == ErrTypeConnectionRefused ||
			apiErr.Type == ErrTypeDNS
	}
	return false
}

// IsAuthError checks if an error is an authentication error
func IsAuthError(err error) bool {
	apiErr, ok := asAPIError(err)
	return ok && apiErr.Type == ErrTypeAuth
}

// IsAPIError checks if an error is a rejection from the Notion API
func IsAPIError(err error) bool {
	apiErr, ok := asAPIError(err)
	return ok && apiErr.Type == ErrTypeAPI
}

// IsDecodeError checks if an error is a decode error
func IsDecodeError(err error) bool {
	apiErr, ok := asAPIError(err)
	return ok && apiErr.Type == ErrTypeDecode
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	apiErr, ok := asAPIError(err)
	return ok && apiErr.Type == ErrTypeValidation
}

// IsRetryable checks if repeating the action may succeed
func IsRetryable(err error) bool {
	if apiErr, ok := asAPIError(err); ok {
		return apiErr.Retryable
	}
	return false
}

// ShortMessage returns a concise, user-friendly error message
func ShortMessage(err error) string {
	if err == nil {
		return ""
	}
	apiErr, ok := asAPIError(err)
	if !ok {
		return err.Error()
	}

	switch apiErr.Type {
	case ErrTypeTimeout:
		return "Notion did not respond in time"
	case ErrTypeConnectionRefused:
		return "Connection to Notion refused"
	case ErrTypeDNS:
		return "Cannot resolve the Notion API host"
	case ErrTypeNetwork:
		return "Network error - check your connection"
	case ErrTypeAuth:
		return "Authentication failed - " + apiErr.Message
	case ErrTypeAPI:
		if apiErr.Message != "" {
			return fmt.Sprintf("Notion rejected the request (HTTP %d): %s", apiErr.StatusCode, apiErr.Message)
		}
		return fmt.Sprintf("Notion rejected the request (HTTP %d)", apiErr.StatusCode)
	case ErrTypeDecode:
		return "Unexpected response from Notion"
	default:
		return apiErr.Message
	}
}

// TroubleshootingHint returns user-friendly troubleshooting lines for an error
func TroubleshootingHint(err error) []string {
	apiErr, ok := asAPIError(err)
	if !ok {
		return []string{"An unexpected error occurred. Please try again."}
	}

	switch apiErr.Type {
	case ErrTypeAuth:
		return []string{
			"Set NOTION_API_KEY to your internal integration secret",
			"A .env file in the working directory is also read",
			"Create or inspect integrations at " + urls.Integrations,
		}

	case ErrTypeTimeout, ErrTypeConnectionRefused, ErrTypeDNS, ErrTypeNetwork:
		return []string{
			"Check your internet connection",
			"Verify api.base_url in the config file if you changed it",
			"Notion status: " + urls.Status,
		}

	case ErrTypeAPI:
		hint := []string{}
		switch apiErr.Code {
		case "object_not_found":
			hint = append(hint,
				"The page does not exist or is not shared with the integration",
				"Share the page with your integration: "+urls.SharePages)
		case "validation_error":
			hint = append(hint, "Notion refused the block content; shorten very long fields and retry")
		case "rate_limited":
			hint = append(hint, "Too many requests; wait a few seconds and retry")
		default:
			if apiErr.StatusCode >= 500 {
				hint = append(hint, "Notion is having trouble; retry shortly", "Notion status: "+urls.Status)
			} else {
				hint = append(hint, fmt.Sprintf("Notion returned HTTP %d", apiErr.StatusCode))
			}
		}
		return hint

	case ErrTypeDecode:
		return []string{
			"The response was not the JSON Notion normally returns",
			"Check api.base_url points at https://api.notion.com",
		}

	case ErrTypeValidation:
		return []string{strings.TrimSpace(apiErr.Message)}

	default:
		return []string{"Check the error message for details."}
	}
}

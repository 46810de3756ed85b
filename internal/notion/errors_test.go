package notion

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestClassifyNetworkError_Timeout(t *testing.T) {
	err := &url.Error{
		Op:  "Post",
		URL: "https://api.notion.com/v1/search",
		Err: &net.OpError{Op: "dial", Net: "tcp", Err: timeoutError{}},
	}

	apiErr := ClassifyNetworkError(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, ErrTypeTimeout, apiErr.Type)
	assert.True(t, apiErr.Retryable, "timeout should be retryable")
}

func TestClassifyNetworkError_ConnectionRefused(t *testing.T) {
	err := &url.Error{
		Op:  "Post",
		URL: "https://api.notion.com/v1/search",
		Err: &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED},
	}

	assert.Equal(t, ErrTypeConnectionRefused, ClassifyNetworkError(err).Type)
}

func TestClassifyNetworkError_DNS(t *testing.T) {
	err := &url.Error{
		Op:  "Post",
		URL: "https://api.notion.invalid/v1/search",
		Err: &net.OpError{Op: "dial", Net: "tcp", Err: &net.DNSError{Name: "api.notion.invalid", Err: "no such host"}},
	}

	apiErr := ClassifyNetworkError(err)
	assert.Equal(t, ErrTypeDNS, apiErr.Type)
	assert.Contains(t, apiErr.Message, "api.notion.invalid")
	assert.False(t, apiErr.Retryable, "DNS failure should not be retryable")
}

func TestClassifyNetworkError_Generic(t *testing.T) {
	assert.Equal(t, ErrTypeNetwork, ClassifyNetworkError(errors.New("connection reset")).Type)
}

func TestClassifyNetworkError_Nil(t *testing.T) {
	assert.Nil(t, ClassifyNetworkError(nil))
}

func TestAPIError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewDecodeError("bad body", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "caused by: boom")
}

func TestPredicates_ThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("fetching pages: %w", NewAuthError(401, "invalid token"))

	assert.True(t, IsAuthError(wrapped), "IsAuthError should see through fmt.Errorf wrapping")
	assert.False(t, IsNetworkError(wrapped))
	assert.False(t, IsAPIError(wrapped))
	assert.False(t, IsDecodeError(wrapped))
	assert.False(t, IsValidationError(wrapped))
	assert.False(t, IsAuthError(errors.New("plain")))
}

func TestNewHTTPError_Retryable(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{400, false},
		{404, false},
		{429, true},
		{500, true},
		{503, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NewHTTPError(tt.status, "", "").Retryable, "status %d", tt.status)
	}
}

func TestShortMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", errors.New("plain"), "plain"},
		{"auth", NewAuthError(0, "no token"), "Authentication failed - no token"},
		{"api with message", NewHTTPError(404, "object_not_found", "missing"), "Notion rejected the request (HTTP 404): missing"},
		{"api without message", NewHTTPError(502, "", ""), "Notion rejected the request (HTTP 502)"},
		{"timeout", &APIError{Type: ErrTypeTimeout}, "Notion did not respond in time"},
		{"validation", NewValidationError("no page selected"), "no page selected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShortMessage(tt.err))
		})
	}
}

func TestTroubleshootingHint(t *testing.T) {
	hint := TroubleshootingHint(NewHTTPError(404, "object_not_found", "missing"))
	assert.Contains(t, strings.Join(hint, "\n"), "shared with the integration")

	auth := strings.Join(TroubleshootingHint(NewAuthError(0, "no token")), "\n")
	assert.Contains(t, auth, "NOTION_API_KEY")

	assert.Len(t, TroubleshootingHint(errors.New("x")), 1)
}

func TestErrorType_String(t *testing.T) {
	assert.Equal(t, "Authentication Error", ErrTypeAuth.String())
	assert.Equal(t, "ErrorType(99)", ErrorType(99).String())
}

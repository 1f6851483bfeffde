package client

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &Error{Kind: KindRateLimited, Op: opSearch, StatusCode: 429})
	assert.Equal(t, KindRateLimited, KindOf(err))
	assert.True(t, IsRateLimited(err))

	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestError_Messages(t *testing.T) {
	tests := []struct {
		err      *Error
		expected string
	}{
		{&Error{Kind: KindInvalidArgument, Op: opDetail}, "detail: Anime ID is required"},
		{&Error{Kind: KindRateLimited, Op: opSearch}, "search: Too many requests. Please wait a moment and try again."},
		{&Error{Kind: KindUpstream, StatusCode: 503, Status: "Service Unavailable"}, "Error 503: Service Unavailable"},
		{&Error{Kind: KindMalformedResponse, Err: errors.New("missing data field")}, "Invalid data structure from API: missing data field"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestError_UnwrapAndMessage(t *testing.T) {
	cause := errors.New("connection reset")
	err := &Error{Kind: KindUpstream, Op: opSearch, Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "upstream request failed", err.Message())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "rate_limited", KindRateLimited.String())
	assert.Equal(t, "malformed_response", KindMalformedResponse.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

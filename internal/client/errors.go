package client

import (
	"errors"
	"fmt"
)

// Kind discriminates catalog client failures.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindInvalidArgument
	KindRateLimited
	KindUpstream
	KindMalformedResponse
	KindTimeout
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindRateLimited:
		return "rate_limited"
	case KindUpstream:
		return "upstream"
	case KindMalformedResponse:
		return "malformed_response"
	case KindTimeout:
		return "timeout"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

const (
	msgRateLimited = "Too many requests. Please wait a moment and try again."
	msgMalformed   = "Invalid data structure from API"
	msgMissingID   = "Anime ID is required"
)

// Error is returned by every CatalogClient operation that fails.
type Error struct {
	Kind       Kind
	Op         string // search or detail
	StatusCode int    // upstream HTTP status, 0 when no response was received
	Status     string // upstream status text
	Err        error
}

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case KindInvalidArgument:
		msg = msgMissingID
	case KindRateLimited:
		msg = msgRateLimited
	case KindMalformedResponse:
		msg = msgMalformed
	case KindUpstream:
		if e.StatusCode != 0 {
			msg = fmt.Sprintf("Error %d: %s", e.StatusCode, e.Status)
		} else {
			msg = "upstream request failed"
		}
	case KindTimeout:
		msg = "upstream request timed out"
	case KindCanceled:
		msg = "upstream request canceled"
	default:
		msg = "catalog request failed"
	}

	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message is the user-facing text without the operation or cause.
func (e *Error) Message() string {
	return (&Error{Kind: e.Kind, StatusCode: e.StatusCode, Status: e.Status}).Error()
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsRateLimited reports whether upstream asked us to slow down.
func IsRateLimited(err error) bool {
	return KindOf(err) == KindRateLimited
}

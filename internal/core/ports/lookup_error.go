package ports

import (
	"errors"
	"fmt"
)

// LookupErrorCode classifies a failed lookup so transport layers can map it
// without inspecting messages.
type LookupErrorCode int

const (
	LookupCodeInternal LookupErrorCode = iota
	LookupCodeValidation
	LookupCodeRateLimited
	LookupCodeUpstream
	LookupCodeTransport
	LookupCodeMalformedPayload
	LookupCodeNotFound
)

func (c LookupErrorCode) String() string {
	switch c {
	case LookupCodeValidation:
		return "validation"
	case LookupCodeRateLimited:
		return "rate_limited"
	case LookupCodeUpstream:
		return "upstream_error"
	case LookupCodeTransport:
		return "transport_failure"
	case LookupCodeMalformedPayload:
		return "malformed_payload"
	case LookupCodeNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// LookupError is the typed error returned by the lookup pipeline and its collaborators.
type LookupError interface {
	error
	Code() LookupErrorCode
	Message() string
	// UpstreamStatus is the provider's HTTP status for LookupCodeUpstream and
	// LookupCodeRateLimited, zero otherwise.
	UpstreamStatus() int
}

type lookupError struct {
	code    LookupErrorCode
	message string
	status  int
	cause   error
}

func (e *lookupError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}
func (e *lookupError) Code() LookupErrorCode { return e.code }
func (e *lookupError) Message() string       { return e.message }
func (e *lookupError) UpstreamStatus() int   { return e.status }
func (e *lookupError) Unwrap() error         { return e.cause }

// NewLookupError constructs a LookupError. cause may be nil.
func NewLookupError(code LookupErrorCode, message string, cause error) LookupError {
	return &lookupError{code: code, message: message, cause: cause}
}

// NewUpstreamStatusError classifies a non-success provider status: 429 becomes
// LookupCodeRateLimited, everything else LookupCodeUpstream.
func NewUpstreamStatusError(status int) LookupError {
	if status == 429 {
		return &lookupError{code: LookupCodeRateLimited, message: "upstream rate limit exceeded", status: status}
	}
	return &lookupError{code: LookupCodeUpstream, message: fmt.Sprintf("upstream returned status %d", status), status: status}
}

// AsLookupError extracts a LookupError from err's chain.
func AsLookupError(err error) (LookupError, bool) {
	var le LookupError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}

// LookupErrorCodeOf reports the code of err, LookupCodeInternal for anything unclassified.
func LookupErrorCodeOf(err error) LookupErrorCode {
	if le, ok := AsLookupError(err); ok {
		return le.Code()
	}
	return LookupCodeInternal
}

package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidRequest    = errors.New("invalid report request")
	ErrTransport         = errors.New("inference endpoint unavailable")
	ErrMalformedEnvelope = errors.New("malformed inference envelope")
	ErrMalformedReport   = errors.New("model output is not a JSON object")
	ErrIncompleteReport  = errors.New("report is missing required fields")
)

// ReportError is the only error type returned by report generation.
// Kind is one of the Err* sentinels above.
type ReportError struct {
	Kind error
	// StatusCode is the endpoint's HTTP status, 0 when no response arrived.
	StatusCode int
	// Fields names the offending request or report fields, if any.
	Fields []string
	Err    error
}

func (e *ReportError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if len(e.Fields) > 0 {
		fmt.Fprintf(&b, ": %s", strings.Join(e.Fields, ", "))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ReportError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindName returns a stable machine-readable name for the error kind.
func (e *ReportError) KindName() string {
	return KindName(e.Kind)
}

// KindName maps a kind sentinel to its wire name.
func KindName(kind error) string {
	switch kind {
	case ErrInvalidRequest:
		return "invalid_request"
	case ErrTransport:
		return "transport_error"
	case ErrMalformedEnvelope:
		return "malformed_envelope"
	case ErrMalformedReport:
		return "malformed_report"
	case ErrIncompleteReport:
		return "incomplete_report"
	default:
		return "internal"
	}
}

// NewTransportError builds a TransportError for the given status and cause.
func NewTransportError(status int, cause error) *ReportError {
	return &ReportError{Kind: ErrTransport, StatusCode: status, Err: cause}
}

// NewEnvelopeError builds a MalformedEnvelope error.
func NewEnvelopeError(cause error) *ReportError {
	return &ReportError{Kind: ErrMalformedEnvelope, Err: cause}
}

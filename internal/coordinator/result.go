package coordinator

import (
	"context"
	"errors"
	"fmt"

	"github.com/saturnino-fabrica-de-software/facerecon/internal/gateway"
)

// Kind classifies why a backend call failed.
type Kind string

const (
	KindTransport     Kind = "transport"
	KindStatus        Kind = "status"
	KindDecode        Kind = "decode"
	KindEmptyResponse Kind = "empty_response"
	KindInternal      Kind = "internal"
)

// Reason describes a failed call with enough detail to render a message.
type Reason struct {
	Kind       Kind
	StatusCode int
	Detail     string
}

// Message renders the reason for display.
func (r Reason) Message() string {
	switch r.Kind {
	case KindTransport:
		return withDetail("could not reach the server", r.Detail)
	case KindStatus:
		return withDetail(fmt.Sprintf("server returned status %d", r.StatusCode), r.Detail)
	case KindDecode:
		return withDetail("invalid response from server", r.Detail)
	case KindEmptyResponse:
		return "empty response from server"
	default:
		return withDetail("unexpected error", r.Detail)
	}
}

func (r Reason) String() string {
	return r.Message()
}

func withDetail(msg, detail string) string {
	if detail == "" {
		return msg
	}
	return msg + ": " + detail
}

// Classify maps a gateway error onto a Reason.
func Classify(err error) Reason {
	var statusErr *gateway.StatusError
	switch {
	case errors.As(err, &statusErr):
		return Reason{Kind: KindStatus, StatusCode: statusErr.StatusCode, Detail: statusErr.Body}
	case errors.Is(err, gateway.ErrEmptyResponse):
		return Reason{Kind: KindEmptyResponse}
	case errors.Is(err, gateway.ErrDecode):
		return Reason{Kind: KindDecode, Detail: err.Error()}
	case errors.Is(err, context.DeadlineExceeded):
		return Reason{Kind: KindTransport, Detail: "request timed out"}
	case errors.Is(err, context.Canceled):
		return Reason{Kind: KindTransport, Detail: "request canceled"}
	case errors.Is(err, gateway.ErrTransport):
		return Reason{Kind: KindTransport, Detail: err.Error()}
	default:
		return Reason{Kind: KindInternal, Detail: err.Error()}
	}
}

// Result is either Ok(value) or Err(reason), never both.
type Result[T any] struct {
	value  T
	reason *Reason
}

func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

func Err[T any](r Reason) Result[T] {
	return Result[T]{reason: &r}
}

// IsOk reports whether the call succeeded.
func (r Result[T]) IsOk() bool {
	return r.reason == nil
}

// Value returns the payload; the zero value on failure.
func (r Result[T]) Value() T {
	return r.value
}

// Reason returns the failure reason; the zero Reason on success.
func (r Result[T]) Reason() Reason {
	if r.reason == nil {
		return Reason{}
	}
	return *r.reason
}

// Unpack returns the payload, the reason and whether the call succeeded.
func (r Result[T]) Unpack() (T, Reason, bool) {
	return r.value, r.Reason(), r.IsOk()
}

package provider

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when an upstream lookup yields no matching record.
var ErrNotFound = errors.New("pair not found")

// ErrProviderNotFound is returned when a requested provider is not registered.
type ErrProviderNotFound struct {
	Name string
}

func (e *ErrProviderNotFound) Error() string {
	return fmt.Sprintf("provider %q not found", e.Name)
}

// ErrEndpointNotSupported is returned for endpoints no provider serves.
type ErrEndpointNotSupported struct {
	Provider string
	Endpoint Endpoint
}

func (e *ErrEndpointNotSupported) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("invalid endpoint %q", e.Endpoint)
	}
	return fmt.Sprintf("provider %q does not support endpoint %q", e.Provider, e.Endpoint)
}

// ErrMissingParam is returned when a required query parameter is missing.
// AnyOf is set when one of several parameters would have satisfied the call.
type ErrMissingParam struct {
	Param string
	AnyOf []string
}

func (e *ErrMissingParam) Error() string {
	switch len(e.AnyOf) {
	case 0:
		return fmt.Sprintf("missing %s parameter", e.Param)
	case 1:
		return fmt.Sprintf("missing %s parameter", e.AnyOf[0])
	case 2:
		return fmt.Sprintf("missing %s or %s parameter", e.AnyOf[0], e.AnyOf[1])
	default:
		head := strings.Join(e.AnyOf[:len(e.AnyOf)-1], ", ")
		return fmt.Sprintf("missing %s, or %s parameter", head, e.AnyOf[len(e.AnyOf)-1])
	}
}

// ErrInvalidCredentials is returned when provider credentials are missing or invalid.
type ErrInvalidCredentials struct {
	Provider string
	Detail   string
}

func (e *ErrInvalidCredentials) Error() string {
	return fmt.Sprintf("invalid credentials for provider %q: %s", e.Provider, e.Detail)
}

// GatewayError reports an upstream failure: a non-2xx response, a transport
// failure, or a body that could not be decoded. StatusCode is 0 when no
// response was received.
type GatewayError struct {
	Provider   string
	Endpoint   Endpoint
	StatusCode int
	Message    string
	// Body is the upstream response body for non-2xx responses.
	Body []byte
	Err  error
}

func (e *GatewayError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", e.Provider, e.Endpoint)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": HTTP %d", e.StatusCode)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

func (e *GatewayError) Unwrap() error { return e.Err }

// IsConfigError reports whether err is a caller or configuration mistake
// rather than an upstream failure.
func IsConfigError(err error) bool {
	var (
		missing *ErrMissingParam
		creds   *ErrInvalidCredentials
		unsup   *ErrEndpointNotSupported
		notReg  *ErrProviderNotFound
	)
	return errors.As(err, &missing) || errors.As(err, &creds) ||
		errors.As(err, &unsup) || errors.As(err, &notReg)
}

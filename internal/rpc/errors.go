package rpc

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNotRunning is wrapped by every TransportError: the daemon could not
	// be reached at all.
	ErrNotRunning = errors.New("nSPV is not running")

	// ErrInvalidParam is wrapped by every ValidationError.
	ErrInvalidParam = errors.New("invalid param")
)

// ValidationError is returned before any network call when a caller supplied
// value cannot be sent.
type ValidationError struct {
	Method string
	Param  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Method == "" {
		if e.Param == "" {
			return fmt.Sprintf("rpc: %s: %s", ErrInvalidParam, e.Reason)
		}
		return fmt.Sprintf("rpc: %s %s: %s", ErrInvalidParam, e.Param, e.Reason)
	}
	if e.Param == "" {
		return fmt.Sprintf("rpc %s: %s: %s", e.Method, ErrInvalidParam, e.Reason)
	}
	return fmt.Sprintf("rpc %s: %s %s: %s", e.Method, ErrInvalidParam, e.Param, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidParam }

// TransportError means the request never got an HTTP response.
type TransportError struct {
	Method string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("rpc %s: error, %s: %v", e.Method, ErrNotRunning, e.Err)
}

func (e *TransportError) Unwrap() []error { return []error{ErrNotRunning, e.Err} }

// HTTPError is a response with a failing status code.
type HTTPError struct {
	Method     string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("rpc %s: failed with status code %d! message: %s", e.Method, e.StatusCode, e.Body)
}

// ParseError is a successful status code carrying a body that is not JSON.
type ParseError struct {
	Method string
	Body   []byte
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("rpc %s: response is not valid json", e.Method)
	}
	return fmt.Sprintf("rpc %s: response json unmarshaling: %v", e.Method, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DaemonError is the error object of a JSON-RPC response. The daemon may send
// it as an object with code and message or as a bare string.
type DaemonError struct {
	Method  string
	Code    int
	Message string
	Raw     json.RawMessage
}

func (e *DaemonError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("rpc %s: daemon error %d: %s", e.Method, e.Code, e.Message)
	}
	return fmt.Sprintf("rpc %s: daemon error: %s", e.Method, e.Message)
}

// NewDaemonError decodes an error member. It returns nil when raw is empty or
// JSON null.
func NewDaemonError(method string, raw json.RawMessage) *DaemonError {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	e := &DaemonError{Method: method, Raw: raw}
	var obj struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	var s string
	switch {
	case json.Unmarshal(raw, &obj) == nil:
		e.Code, e.Message = obj.Code, obj.Message
		if e.Message == "" {
			e.Message = string(raw)
		}
	case json.Unmarshal(raw, &s) == nil:
		e.Message = s
	default:
		e.Message = string(raw)
	}
	return e
}

package nspv

import (
	"errors"

	"github.com/sebamiro/nspv/internal/rpc"
)

type (
	ValidationError = rpc.ValidationError
	TransportError  = rpc.TransportError
	HTTPError       = rpc.HTTPError
	ParseError      = rpc.ParseError
	DaemonError     = rpc.DaemonError
)

var (
	// ErrNotRunning is matched by every TransportError.
	ErrNotRunning = rpc.ErrNotRunning

	// ErrInvalidParam is matched by every ValidationError.
	ErrInvalidParam = rpc.ErrInvalidParam
)

// ErrorKind classifies the errors returned by Client.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindValidation
	KindTransport
	KindHTTP
	KindParse
	KindDaemon
	KindOther
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	case KindHTTP:
		return "http"
	case KindParse:
		return "parse"
	case KindDaemon:
		return "daemon"
	}
	return "other"
}

// Kind returns the class of err. Errors that did not come from a Client are
// KindOther.
func Kind(err error) ErrorKind {
	var (
		validationErr *ValidationError
		transportErr  *TransportError
		httpErr       *HTTPError
		parseErr      *ParseError
		daemonErr     *DaemonError
	)
	switch {
	case err == nil:
		return KindNone
	case errors.As(err, &validationErr):
		return KindValidation
	case errors.As(err, &transportErr):
		return KindTransport
	case errors.As(err, &httpErr):
		return KindHTTP
	case errors.As(err, &parseErr):
		return KindParse
	case errors.As(err, &daemonErr):
		return KindDaemon
	}
	return KindOther
}

func required(method, param string) *ValidationError {
	return &ValidationError{Method: method, Param: param, Reason: "is required"}
}

func negative(method, param string) *ValidationError {
	return &ValidationError{Method: method, Param: param, Reason: "must not be negative"}
}

func invalid(method, param string, err error) *ValidationError {
	return &ValidationError{Method: method, Param: param, Reason: err.Error()}
}

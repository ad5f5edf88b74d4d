package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/stellar/go/support/log"
)

const (
	DefaultVersion     = "2.0"
	DefaultRequestID   = "curltest"
	DefaultContentType = "text/plain;"
)

// Client implements remote calls to the daemon. It holds no state besides its
// configuration, so a single value can serve concurrent calls.
type Client struct {
	HTTP HTTP
	URL  string

	Username string
	Password string

	ContentType string
	Version     string
	ID          string

	// Timeout bounds a call whose context has no deadline. Zero disables it.
	Timeout time.Duration

	Log *log.Entry
}

func (c Client) http() HTTP {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

func (c Client) log() *log.Entry {
	if c.Log == nil {
		return log.DefaultLogger
	}
	return c.Log
}

func (c Client) version() string {
	if c.Version == "" {
		return DefaultVersion
	}
	return c.Version
}

func (c Client) id() string {
	if c.ID == "" {
		return DefaultRequestID
	}
	return c.ID
}

func (c Client) contentType() string {
	if c.ContentType == "" {
		return DefaultContentType
	}
	return c.ContentType
}

// NewRequest builds the JSON envelope for method. See Params for how params
// is laid out.
func (c Client) NewRequest(method string, params any) ([]byte, error) {
	if method == "" {
		return nil, &ValidationError{Reason: "method is required"}
	}
	p, err := Params(method, params)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(Request{Version: c.version(), ID: c.id(), Method: method, Params: p})
	if err != nil {
		return nil, &ValidationError{Method: method, Reason: err.Error()}
	}
	return b, nil
}

// Send posts an envelope and returns the response body untouched. Daemon
// level errors inside a valid body are not inspected.
func (c Client) Send(ctx context.Context, method string, body []byte) (json.RawMessage, error) {
	if c.Timeout > 0 {
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, c.Timeout)
			defer cancel()
		}
	}
	l := c.log().WithField("method", method)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Method: method, Err: errors.Join(errors.New("rpc, request creation:"), err)}
	}
	req.Header.Set("Content-Type", c.contentType())
	req.SetBasicAuth(c.Username, c.Password)

	resp, err := c.http().Do(req)
	if err != nil {
		l.WithField("error", err.Error()).Warn("daemon unreachable")
		return nil, &TransportError{Method: method, Err: errors.Join(errors.New("rpc, request execution:"), err)}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		l.WithField("error", err.Error()).Warn("reading response failed")
		return nil, &TransportError{Method: method, Err: errors.Join(errors.New("rpc, response read:"), err)}
	}
	l.WithFields(log.F{
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	}).Debug("rpc call")

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &HTTPError{Method: method, StatusCode: resp.StatusCode, Body: string(b)}
	}
	if !json.Valid(b) {
		var syntaxErr error
		var v any
		if err := json.Unmarshal(b, &v); err != nil {
			syntaxErr = err
		}
		return nil, &ParseError{Method: method, Body: b, Err: syntaxErr}
	}
	return json.RawMessage(b), nil
}

// Call builds the envelope for method and params and sends it.
func (c Client) Call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	b, err := c.NewRequest(method, params)
	if err != nil {
		return nil, err
	}
	return c.Send(ctx, method, b)
}

// CallResult sends a call and decodes the result member of the response into
// result. An error member becomes a *DaemonError.
func (c Client) CallResult(ctx context.Context, method string, result any, params any) error {
	raw, err := c.Call(ctx, method, params)
	if err != nil {
		return err
	}
	r := Response{}
	if err = json.Unmarshal(raw, &r); err != nil {
		return &ParseError{Method: method, Body: raw, Err: err}
	}
	if derr := NewDaemonError(method, r.Error); derr != nil {
		return derr
	}
	if result == nil || len(r.Result) == 0 {
		return nil
	}
	if err = json.Unmarshal(r.Result, result); err != nil {
		return &ParseError{Method: method, Body: raw, Err: err}
	}
	return nil
}

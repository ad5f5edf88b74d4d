package rpc

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"reflect"
)

type HTTP interface {
	Do(req *http.Request) (*http.Response, error)
}

// Request is the envelope sent to the daemon. Params is always encoded as an
// array, empty when the method takes no arguments.
type Request struct {
	Version string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type Response struct {
	Version string          `json:"jsonrpc,omitempty"`
	ID      any             `json:"id,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   json.RawMessage `json:"error,omitempty"`
}

// Missing fills a positional slot the caller did not supply. The daemon
// expects every slot to be present, so it goes out as an empty string.
const Missing = ""

var rawMessageType = reflect.TypeOf(json.RawMessage(nil))

// Params normalizes params into the array that goes in the envelope: nil
// becomes an empty array, a slice or array is passed through element by
// element and any other value is wrapped in a one-element array.
func Params(method string, params any) ([]any, error) {
	if params == nil {
		return []any{}, nil
	}
	v := reflect.ValueOf(params)
	if (v.Kind() == reflect.Slice || v.Kind() == reflect.Array) &&
		v.Type().Elem().Kind() != reflect.Uint8 {
		if v.Kind() == reflect.Slice && v.IsNil() {
			return []any{}, nil
		}
		out := make([]any, v.Len())
		for i := range out {
			p, err := scalar(method, i, v.Index(i))
			if err != nil {
				return nil, err
			}
			out[i] = p
		}
		return out, nil
	}
	p, err := scalar(method, 0, v)
	if err != nil {
		return nil, err
	}
	return []any{p}, nil
}

func scalar(method string, pos int, v reflect.Value) (any, error) {
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return Missing, nil
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return Missing, nil
	}
	if v.Type() == rawMessageType {
		raw := v.Interface().(json.RawMessage)
		if !json.Valid(raw) {
			return nil, invalidParam(method, pos, "raw JSON is not valid")
		}
		return raw, nil
	}
	switch v.Kind() {
	case reflect.String:
		// json.Number is a string kind; keep it as a bare number.
		if n, ok := v.Interface().(json.Number); ok {
			if _, err := n.Float64(); err != nil {
				return nil, invalidParam(method, pos, fmt.Sprintf("%q is not a number", n.String()))
			}
			return n, nil
		}
		return v.String(), nil
	case reflect.Bool:
		return v.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint(), nil
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, invalidParam(method, pos, "float is not finite")
		}
		return f, nil
	}
	return nil, invalidParam(method, pos, fmt.Sprintf("unsupported type %s", v.Type()))
}

func invalidParam(method string, pos int, reason string) *ValidationError {
	return &ValidationError{
		Method: method,
		Param:  fmt.Sprintf("params[%d]", pos),
		Reason: reason,
	}
}

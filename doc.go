// Package nspv is a client for the JSON-RPC interface of the nSPV daemon.
//
// Every call posts one envelope of the form
//
//	{"jsonrpc":"2.0","id":"curltest","method":"<name>","params":[...]}
//
// to http://host:port/ with basic auth and returns the daemon's JSON body
// untouched. Failures come back as one of ValidationError, TransportError,
// HTTPError or ParseError; Kind classifies them. Optional positional
// parameters that are not given are sent as empty strings, since the daemon
// expects every slot to be present.
package nspv

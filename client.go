package nspv

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/sebamiro/nspv/internal/rpc"
	"github.com/stellar/go/support/log"
)

// Client wrapper of rpc.Client. Its configuration is fixed by NewClient.
type Client struct {
	rpc           rpc.Client
	host          string
	port          int
	txProofMethod string
	strict        bool
}

// Methods
const (
	Help             = "help"
	Login            = "login"
	Logout           = "logout"
	GetInfo          = "getinfo"
	AddNode          = "addnode"
	Language         = "language"
	Broadcast        = "broadcast"
	GetNewAddress    = "getnewaddress"
	GetPeerInfo      = "getpeerinfo"
	Notarizations    = "notarizations"
	HeadersProof     = "hdrsproof"
	ListUnspent      = "listunspent"
	GetTransaction   = "gettransaction"
	ListTransactions = "listtransactions"
	Mempool          = "mempool"
	Spend            = "spend"
	SpentInfo        = "spentinfo"
	Stop             = "stop"

	// TxProofMethod is what TxProof calls unless WithTxProofMethod says
	// otherwise. Existing bindings send tx proofs to spentinfo, which looks
	// like a copy of SpentInfo; it stays until the daemon's method table says
	// which name is right.
	TxProofMethod = SpentInfo
)

const (
	DefaultHost    = "127.0.0.1"
	DefaultPort    = 7771
	DefaultTimeout = 30 * time.Second

	DocsURL   = "https://docs.komodoplatform.com/basic-docs/smart-chains/smart-chain-setup/nspv.html#introduction"
	GitHubURL = "https://github.com/KomodoPlatform/libnspv"
)

// Option configures a Client in NewClient.
type Option func(*Client)

// WithHost sets the daemon address. Empty keeps the default.
func WithHost(host string) Option {
	return func(c *Client) {
		if host != "" {
			c.host = host
		}
	}
}

// WithPort sets the daemon RPC port. Zero keeps the default.
func WithPort(port int) Option {
	return func(c *Client) {
		if port != 0 {
			c.port = port
		}
	}
}

// WithCredentials sets the basic auth pair sent on every request.
func WithCredentials(username, password string) Option {
	return func(c *Client) {
		c.rpc.Username = username
		c.rpc.Password = password
	}
}

// WithTimeout bounds calls made with a context that has no deadline. Zero
// lets calls wait as long as their context allows.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.rpc.Timeout = d
	}
}

// WithHTTPClient replaces the http.Client used to reach the daemon.
func WithHTTPClient(h rpc.HTTP) Option {
	return func(c *Client) {
		c.rpc.HTTP = h
	}
}

func WithLogger(l *log.Entry) Option {
	return func(c *Client) {
		c.rpc.Log = l
	}
}

// WithRequestID overrides the fixed id sent in every envelope.
func WithRequestID(id string) Option {
	return func(c *Client) {
		if id != "" {
			c.rpc.ID = id
		}
	}
}

// WithTxProofMethod changes the daemon method TxProof calls.
func WithTxProofMethod(method string) Option {
	return func(c *Client) {
		if method != "" {
			c.txProofMethod = method
		}
	}
}

// WithStrictValidation makes wrappers check the format of keys, addresses,
// txids and raw transactions before calling the daemon. Without it any non
// empty string is sent as given and the daemon decides.
func WithStrictValidation() Option {
	return func(c *Client) {
		c.strict = true
	}
}

// NewClient returns a Client for the daemon at http://127.0.0.1:7771/ with
// blank credentials, changed by opts.
//
// Example:
//
//	client := nspv.NewClient(
//		nspv.WithPort(12986),
//		nspv.WithCredentials("user", "pass"),
//	)
//	info, err := client.GetInfo(ctx, nil)
func NewClient(opts ...Option) *Client {
	c := &Client{
		host:          DefaultHost,
		port:          DefaultPort,
		txProofMethod: TxProofMethod,
		rpc: rpc.Client{
			ContentType: rpc.DefaultContentType,
			Version:     rpc.DefaultVersion,
			ID:          rpc.DefaultRequestID,
			Timeout:     DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.rpc.URL = fmt.Sprintf("http://%s/", net.JoinHostPort(c.host, strconv.Itoa(c.port)))
	if c.rpc.HTTP == nil {
		c.rpc.HTTP = &http.Client{}
	}
	if c.rpc.Log == nil {
		c.rpc.Log = log.DefaultLogger.WithField("component", "nspv")
	}
	return c
}

// URL returns the endpoint every request is posted to.
func (c *Client) URL() string {
	return c.rpc.URL
}

// BuildRequest returns the envelope that a call to method with params would
// send. params may be nil, a single scalar or a slice of scalars.
func (c *Client) BuildRequest(method string, params any) ([]byte, error) {
	return c.rpc.NewRequest(method, params)
}

// Send posts an envelope built by BuildRequest.
func (c *Client) Send(ctx context.Context, method string, envelope []byte) (json.RawMessage, error) {
	return c.rpc.Send(ctx, method, envelope)
}

// Call executes method with params and returns the daemon's response as is,
// daemon level errors included.
func (c *Client) Call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	return c.rpc.Call(ctx, method, params)
}

// CallResult executes a call, with params if any, and saves the result member
// of the response into result.
func (c *Client) CallResult(ctx context.Context, method string, result any, params any) error {
	return c.rpc.CallResult(ctx, method, result, params)
}

// validate runs check only on clients built WithStrictValidation.
func (c *Client) validate(check func() error) error {
	if !c.strict {
		return nil
	}
	return check()
}

// Help lists the daemon's RPC methods.
func (c *Client) Help(ctx context.Context) (json.RawMessage, error) {
	return c.Call(ctx, Help, nil)
}

// Stop shuts the daemon down.
func (c *Client) Stop(ctx context.Context) (json.RawMessage, error) {
	return c.Call(ctx, Stop, nil)
}

// SetLanguage sets the wordlist the daemon uses for new addresses.
func (c *Client) SetLanguage(ctx context.Context, language string) (json.RawMessage, error) {
	if language == "" {
		return nil, required(Language, "language")
	}
	return c.Call(ctx, Language, language)
}

package nspv_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/sebamiro/nspv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	// TXID is any 64 character hex string; the daemon is faked.
	TXID = strings.Repeat("ab", 32)

	// ADDRESS is a base58check address with the KMD pubkey hash prefix.
	ADDRESS = base58.CheckEncode(bytes.Repeat([]byte{0x11}, 20), 60)

	// WIF is a compressed private key with the KMD secret prefix.
	WIF = base58.CheckEncode(append(bytes.Repeat([]byte{0x01}, 32), 0x01), 0xbc)
)

// tamper changes the last character of a base58 string so that its checksum
// no longer matches.
func tamper(s string) string {
	last := s[len(s)-1]
	if last == '2' {
		return s[:len(s)-1] + "3"
	}
	return s[:len(s)-1] + "2"
}

type envelope struct {
	Version string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

// fakeDaemon records every envelope it receives and answers with reply.
type fakeDaemon struct {
	mu       sync.Mutex
	requests []envelope
	reply    string
}

func newFakeDaemon(t *testing.T, opts ...nspv.Option) (*nspv.Client, *fakeDaemon) {
	t.Helper()
	d := &fakeDaemon{reply: `{"result":"success"}`}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		var e envelope
		assert.NoError(t, json.Unmarshal(b, &e))
		d.mu.Lock()
		d.requests = append(d.requests, e)
		reply := d.reply
		d.mu.Unlock()
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)

	host, port := splitURL(t, srv.URL)
	client := nspv.NewClient(append([]nspv.Option{nspv.WithHost(host), nspv.WithPort(port)}, opts...)...)
	return client, d
}

func splitURL(t *testing.T, raw string) (string, int) {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	return u.Hostname(), port
}

func (d *fakeDaemon) last(t *testing.T) envelope {
	t.Helper()
	d.mu.Lock()
	defer d.mu.Unlock()
	require.NotEmpty(t, d.requests, "daemon got no request")
	return d.requests[len(d.requests)-1]
}

func (d *fakeDaemon) setReply(reply string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reply = reply
}

func (d *fakeDaemon) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.requests)
}

func TestNewClientDefaults(t *testing.T) {
	client := nspv.NewClient()
	require.Equal(t, "http://127.0.0.1:7771/", client.URL())

	client = nspv.NewClient(nspv.WithHost("10.0.0.2"), nspv.WithPort(12986))
	require.Equal(t, "http://10.0.0.2:12986/", client.URL())
}

func TestBuildRequest(t *testing.T) {
	client := nspv.NewClient()

	b, err := client.BuildRequest(nspv.Login, "WIF123")
	require.NoError(t, err)
	require.JSONEq(t, `{"jsonrpc":"2.0","id":"curltest","method":"login","params":["WIF123"]}`, string(b))

	b, err = client.BuildRequest(nspv.HeadersProof, []int{10, 20})
	require.NoError(t, err)
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &m))
	require.Len(t, m, 4)
	require.JSONEq(t, `[10,20]`, string(m["params"]))

	client = nspv.NewClient(nspv.WithRequestID("nspv-go"))
	b, err = client.BuildRequest(nspv.Help, nil)
	require.NoError(t, err)
	require.JSONEq(t, `{"jsonrpc":"2.0","id":"nspv-go","method":"help","params":[]}`, string(b))
}

func TestCallPassesResponseThrough(t *testing.T) {
	client, d := newFakeDaemon(t)
	const reply = `{"result":"error","error":"wif expired"}`
	d.setReply(reply)

	raw, err := client.Help(context.Background())
	require.NoError(t, err)
	require.JSONEq(t, reply, string(raw))
}

func TestBasicAuth(t *testing.T) {
	var user, pass string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, _ = r.BasicAuth()
		_, _ = io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	host, port := splitURL(t, srv.URL)
	client := nspv.NewClient(
		nspv.WithHost(host),
		nspv.WithPort(port),
		nspv.WithCredentials("rpcuser", "rpcpass"),
	)
	_, err := client.GetPeerInfo(context.Background())
	require.NoError(t, err)
	require.Equal(t, "rpcuser", user)
	require.Equal(t, "rpcpass", pass)
}

func TestHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	host, port := splitURL(t, srv.URL)
	client := nspv.NewClient(nspv.WithHost(host), nspv.WithPort(port))
	_, err := client.GetInfo(context.Background(), nil)

	var httpErr *nspv.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	require.Contains(t, httpErr.Error(), "boom")
	require.Equal(t, nspv.KindHTTP, nspv.Kind(err))
}

func TestUnreachableDaemon(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	host, port := splitURL(t, srv.URL)
	srv.Close()

	client := nspv.NewClient(nspv.WithHost(host), nspv.WithPort(port))
	ctx := context.Background()

	calls := map[string]func() (json.RawMessage, error){
		"help":          func() (json.RawMessage, error) { return client.Help(ctx) },
		"getinfo":       func() (json.RawMessage, error) { return client.GetInfo(ctx, nspv.Int(1)) },
		"getnewaddress": func() (json.RawMessage, error) { return client.GetNewAddress(ctx, "") },
		"listunspent":   func() (json.RawMessage, error) { return client.ListUnspent(ctx, nil) },
		"spentinfo":     func() (json.RawMessage, error) { return client.SpentInfo(ctx, TXID, 0) },
		"stop":          func() (json.RawMessage, error) { return client.Stop(ctx) },
	}
	for name, call := range calls {
		raw, err := call()
		require.Nil(t, raw, name)
		require.ErrorIs(t, err, nspv.ErrNotRunning, name)
		require.Equal(t, nspv.KindTransport, nspv.Kind(err), name)
	}
}

func TestKind(t *testing.T) {
	require.Equal(t, nspv.KindNone, nspv.Kind(nil))
	require.Equal(t, nspv.KindOther, nspv.Kind(io.EOF))
	require.Equal(t, nspv.KindParse, nspv.Kind(&nspv.ParseError{Method: "help"}))
	require.Equal(t, nspv.KindDaemon, nspv.Kind(&nspv.DaemonError{Method: "help"}))
	require.Equal(t, "validation", nspv.KindValidation.String())
}

func TestCallResult(t *testing.T) {
	client, d := newFakeDaemon(t)
	d.setReply(`{"result":{"height":2104412,"chain":"KMD"},"error":null}`)

	var info struct {
		Height int    `json:"height"`
		Chain  string `json:"chain"`
	}
	require.NoError(t, client.CallResult(context.Background(), nspv.GetInfo, &info, nil))
	require.Equal(t, 2104412, info.Height)
	require.Equal(t, "KMD", info.Chain)

	d.setReply(`{"result":null,"error":{"code":-1,"message":"not logged in"}}`)
	err := client.CallResult(context.Background(), nspv.ListUnspent, &info, nil)
	require.Equal(t, nspv.KindDaemon, nspv.Kind(err))
	require.Contains(t, err.Error(), "not logged in")
}

func TestSetLanguage(t *testing.T) {
	client, d := newFakeDaemon(t)

	_, err := client.SetLanguage(context.Background(), "Spanish")
	require.NoError(t, err)
	e := d.last(t)
	require.Equal(t, "language", e.Method)
	require.Equal(t, []any{"Spanish"}, e.Params)

	_, err = client.SetLanguage(context.Background(), "")
	require.Equal(t, nspv.KindValidation, nspv.Kind(err))
	require.Equal(t, 1, d.count())
}

func TestConcurrentCalls(t *testing.T) {
	client, d := newFakeDaemon(t)
	const n = 32

	t.Run("fan out", func(t *testing.T) {
		for i := 0; i < n; i++ {
			i := i
			t.Run(strconv.Itoa(i), func(t *testing.T) {
				t.Parallel()
				ctx := context.Background()
				var (
					raw json.RawMessage
					err error
				)
				switch i % 3 {
				case 0:
					raw, err = client.GetInfo(ctx, nspv.Int(i))
				case 1:
					raw, err = client.Notarizations(ctx, i)
				default:
					raw, err = client.HeadersProof(ctx, i, i+1)
				}
				require.NoError(t, err)
				require.JSONEq(t, `{"result":"success"}`, string(raw))
			})
		}
	})

	require.Equal(t, n, d.count())
	seen := map[float64]bool{}
	d.mu.Lock()
	for _, e := range d.requests {
		require.NotEmpty(t, e.Params, e.Method)
		seen[e.Params[0].(float64)] = true
	}
	d.mu.Unlock()
	require.Len(t, seen, n)
}

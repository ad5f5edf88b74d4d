package nspv

import (
	"context"
	"encoding/json"

	"github.com/sebamiro/nspv/internal/rpc"
)

type (
	// ListFilter holds the optional arguments of ListUnspent and
	// ListTransactions. Unset fields are sent as empty strings.
	ListFilter struct {
		address   string
		isCC      *int
		skipCount *int
		filter    *int
	}

	// MempoolQuery holds the optional arguments of Mempool. Unset fields are
	// sent as empty strings.
	MempoolQuery struct {
		address  string
		isCC     *int
		memFunc  *int
		txid     string
		vout     *int
		evalCode *int
		ccFunc   *int
	}
)

// NewListFilter returns an empty ListFilter.
//
// Example:
//
//	utxos, err := client.ListUnspent(ctx, nspv.NewListFilter().
//		Address("RUgW6fLfVsLJ87Ng4zJTqNedJSKYQ9ToAf").
//		IsCC(0))
func NewListFilter() *ListFilter {
	return &ListFilter{}
}

// Address restricts the listing to address instead of the logged in one.
func (f *ListFilter) Address(address string) *ListFilter {
	f.address = address
	return f
}

// IsCC selects CryptoConditions outputs when 1.
func (f *ListFilter) IsCC(isCC int) *ListFilter {
	f.isCC = &isCC
	return f
}

func (f *ListFilter) SkipCount(n int) *ListFilter {
	f.skipCount = &n
	return f
}

func (f *ListFilter) Filter(filter int) *ListFilter {
	f.filter = &filter
	return f
}

func (f *ListFilter) params(c *Client, method string) ([]any, error) {
	if f == nil {
		f = &ListFilter{}
	}
	address, err := c.optionalAddress(method, "address", f.address)
	if err != nil {
		return nil, err
	}
	isCC, err := optionalInt(method, "isCC", f.isCC)
	if err != nil {
		return nil, err
	}
	skipCount, err := optionalInt(method, "skipcount", f.skipCount)
	if err != nil {
		return nil, err
	}
	filter, err := optionalInt(method, "filter", f.filter)
	if err != nil {
		return nil, err
	}
	return []any{address, isCC, skipCount, filter}, nil
}

// NewMempoolQuery returns an empty MempoolQuery.
func NewMempoolQuery() *MempoolQuery {
	return &MempoolQuery{}
}

func (q *MempoolQuery) Address(address string) *MempoolQuery {
	q.address = address
	return q
}

func (q *MempoolQuery) IsCC(isCC int) *MempoolQuery {
	q.isCC = &isCC
	return q
}

// MemFunc selects the daemon's mempool filter function.
func (q *MempoolQuery) MemFunc(memFunc int) *MempoolQuery {
	q.memFunc = &memFunc
	return q
}

// Outpoint restricts the query to transactions spending txid:vout.
func (q *MempoolQuery) Outpoint(txid string, vout int) *MempoolQuery {
	q.txid = txid
	q.vout = &vout
	return q
}

func (q *MempoolQuery) Txid(txid string) *MempoolQuery {
	q.txid = txid
	return q
}

func (q *MempoolQuery) Vout(vout int) *MempoolQuery {
	q.vout = &vout
	return q
}

// EvalCode restricts CryptoConditions results to one contract.
func (q *MempoolQuery) EvalCode(evalCode int) *MempoolQuery {
	q.evalCode = &evalCode
	return q
}

func (q *MempoolQuery) CCFunc(ccFunc int) *MempoolQuery {
	q.ccFunc = &ccFunc
	return q
}

func (q *MempoolQuery) params(c *Client) ([]any, error) {
	if q == nil {
		q = &MempoolQuery{}
	}
	address, err := c.optionalAddress(Mempool, "address", q.address)
	if err != nil {
		return nil, err
	}
	txid := any(rpc.Missing)
	if q.txid != "" {
		if err := c.validate(func() error { return checkTxid(Mempool, q.txid) }); err != nil {
			return nil, err
		}
		txid = q.txid
	}
	out := []any{address, nil, nil, txid, nil, nil, nil}
	for _, slot := range []struct {
		pos   int
		name  string
		value *int
	}{
		{1, "isCC", q.isCC},
		{2, "memfunc", q.memFunc},
		{4, "vout", q.vout},
		{5, "evalcode", q.evalCode},
		{6, "ccfunc", q.ccFunc},
	} {
		v, err := optionalInt(Mempool, slot.name, slot.value)
		if err != nil {
			return nil, err
		}
		out[slot.pos] = v
	}
	return out, nil
}

func optionalInt(method, param string, v *int) (any, error) {
	if v == nil {
		return rpc.Missing, nil
	}
	if *v < 0 {
		return nil, negative(method, param)
	}
	return *v, nil
}

func (c *Client) optionalAddress(method, param, address string) (any, error) {
	if address == "" {
		return rpc.Missing, nil
	}
	if err := c.validate(func() error { return checkAddress(method, param, address) }); err != nil {
		return nil, err
	}
	return address, nil
}

// txid rejects an empty txid, and on strict clients one that is not a hash.
func (c *Client) txid(method, txid string) error {
	if txid == "" {
		return required(method, "txid")
	}
	return c.validate(func() error { return checkTxid(method, txid) })
}

// ListUnspent lists unspent outputs of the logged in address, or of the
// filter's address. A nil filter sends every slot empty.
func (c *Client) ListUnspent(ctx context.Context, filter *ListFilter) (json.RawMessage, error) {
	params, err := filter.params(c, ListUnspent)
	if err != nil {
		return nil, err
	}
	return c.Call(ctx, ListUnspent, params)
}

// ListTransactions lists transactions the same way ListUnspent lists outputs.
func (c *Client) ListTransactions(ctx context.Context, filter *ListFilter) (json.RawMessage, error) {
	params, err := filter.params(c, ListTransactions)
	if err != nil {
		return nil, err
	}
	return c.Call(ctx, ListTransactions, params)
}

// Mempool queries the daemon's view of the mempool. A nil query sends every
// slot empty.
func (c *Client) Mempool(ctx context.Context, query *MempoolQuery) (json.RawMessage, error) {
	params, err := query.params(c)
	if err != nil {
		return nil, err
	}
	return c.Call(ctx, Mempool, params)
}

// GetTransaction fetches a transaction, validated by the daemon against the
// header at height.
func (c *Client) GetTransaction(ctx context.Context, txid string, vout, height int) (json.RawMessage, error) {
	if err := c.txid(GetTransaction, txid); err != nil {
		return nil, err
	}
	if vout < 0 {
		return nil, negative(GetTransaction, "vout")
	}
	if height < 0 {
		return nil, negative(GetTransaction, "height")
	}
	return c.Call(ctx, GetTransaction, []any{txid, vout, height})
}

// Broadcast sends a signed raw transaction to the network.
func (c *Client) Broadcast(ctx context.Context, rawTx string) (json.RawMessage, error) {
	if rawTx == "" {
		return nil, required(Broadcast, "hex")
	}
	if err := c.validate(func() error { return checkHex(Broadcast, "hex", rawTx) }); err != nil {
		return nil, err
	}
	return c.Call(ctx, Broadcast, rawTx)
}

// SpentInfo reports which transaction spent txid:vout.
func (c *Client) SpentInfo(ctx context.Context, txid string, vout int) (json.RawMessage, error) {
	if err := c.txid(SpentInfo, txid); err != nil {
		return nil, err
	}
	if vout < 0 {
		return nil, negative(SpentInfo, "vout")
	}
	return c.Call(ctx, SpentInfo, []any{txid, vout})
}

// TxProof requests the proof of txid:vout. height is optional. The daemon
// method is TxProofMethod unless the client was built WithTxProofMethod.
func (c *Client) TxProof(ctx context.Context, txid string, vout int, height *int) (json.RawMessage, error) {
	method := c.txProofMethod
	if err := c.txid(method, txid); err != nil {
		return nil, err
	}
	if vout < 0 {
		return nil, negative(method, "vout")
	}
	h, err := optionalInt(method, "height", height)
	if err != nil {
		return nil, err
	}
	return c.Call(ctx, method, []any{txid, vout, h})
}

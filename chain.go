package nspv

import (
	"context"
	"encoding/json"
)

// Int returns a pointer to v, for optional integer parameters.
func Int(v int) *int {
	return &v
}

// GetInfo returns the daemon's chain and wallet summary. A nil height asks for
// the current tip.
func (c *Client) GetInfo(ctx context.Context, height *int) (json.RawMessage, error) {
	if height == nil {
		return c.Call(ctx, GetInfo, nil)
	}
	if *height < 0 {
		return nil, negative(GetInfo, "height")
	}
	return c.Call(ctx, GetInfo, *height)
}

// AddNode asks the daemon to connect to a peer.
func (c *Client) AddNode(ctx context.Context, ipAddress string) (json.RawMessage, error) {
	if ipAddress == "" {
		return nil, required(AddNode, "ipAddress")
	}
	return c.Call(ctx, AddNode, ipAddress)
}

// GetPeerInfo lists the daemon's connected peers.
func (c *Client) GetPeerInfo(ctx context.Context) (json.RawMessage, error) {
	return c.Call(ctx, GetPeerInfo, nil)
}

// Notarizations returns the notarizations around height.
func (c *Client) Notarizations(ctx context.Context, height int) (json.RawMessage, error) {
	if height < 0 {
		return nil, negative(Notarizations, "height")
	}
	return c.Call(ctx, Notarizations, height)
}

// HeadersProof returns the headers proof between two notarized heights.
func (c *Client) HeadersProof(ctx context.Context, previousHeight, nextHeight int) (json.RawMessage, error) {
	if previousHeight < 0 {
		return nil, negative(HeadersProof, "previousHeight")
	}
	if nextHeight < 0 {
		return nil, negative(HeadersProof, "nextHeight")
	}
	return c.Call(ctx, HeadersProof, []int{previousHeight, nextHeight})
}

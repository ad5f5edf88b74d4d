package nspv

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
)

// DefaultLanguage is the wordlist GetNewAddress asks for when none is given.
const DefaultLanguage = "english"

// Login unlocks the daemon's wallet with a WIF encoded private key. The key
// is only decoded locally on a client built WithStrictValidation.
func (c *Client) Login(ctx context.Context, wif string) (json.RawMessage, error) {
	if wif == "" {
		return nil, required(Login, "wif")
	}
	if err := c.validate(func() error { return checkWIF(Login, wif) }); err != nil {
		return nil, err
	}
	return c.Call(ctx, Login, wif)
}

// Logout drops the key loaded by Login.
func (c *Client) Logout(ctx context.Context) (json.RawMessage, error) {
	return c.Call(ctx, Logout, nil)
}

// GetNewAddress creates a new keypair. language selects the seed wordlist and
// defaults to english; it is always sent lower-cased.
func (c *Client) GetNewAddress(ctx context.Context, language string) (json.RawMessage, error) {
	if language == "" {
		language = DefaultLanguage
	}
	return c.Call(ctx, GetNewAddress, strings.ToLower(language))
}

// Spend sends amount coins to address from the logged in wallet. The amount is
// rounded to the nearest satoshi before it is sent. Strict clients also
// require a base58check address and a positive amount.
func (c *Client) Spend(ctx context.Context, address string, amount float64) (json.RawMessage, error) {
	if address == "" {
		return nil, required(Spend, "address")
	}
	if amount < 0 {
		return nil, negative(Spend, "amount")
	}
	amt, err := btcutil.NewAmount(amount)
	if err != nil {
		return nil, invalid(Spend, "amount", err)
	}
	err = c.validate(func() error {
		if err := checkAddress(Spend, "address", address); err != nil {
			return err
		}
		if amt == 0 {
			return &ValidationError{Method: Spend, Param: "amount", Reason: "must be positive"}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.Call(ctx, Spend, []any{address, amt.ToBTC()})
}

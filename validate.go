package nspv

import (
	"encoding/hex"
	"errors"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// addressLen is the size of a decoded pubkey or script hash.
const addressLen = 20

// CheckWIF reports whether wif is a checksummed WIF private key.
func CheckWIF(wif string) error {
	return checkWIF("", wif)
}

// CheckAddress reports whether address is a base58check encoded hash. The
// version byte is not checked, any chain's addresses pass.
func CheckAddress(address string) error {
	return checkAddress("", "address", address)
}

// CheckTxid reports whether txid is a 64 character hex transaction hash.
func CheckTxid(txid string) error {
	return checkTxid("", txid)
}

// CheckRawTx reports whether rawTx is hex encoded.
func CheckRawTx(rawTx string) error {
	return checkHex("", "hex", rawTx)
}

func checkWIF(method, wif string) error {
	if _, err := btcutil.DecodeWIF(wif); err != nil {
		return invalid(method, "wif", err)
	}
	return nil
}

func checkAddress(method, param, address string) error {
	payload, _, err := base58.CheckDecode(address)
	if err != nil {
		return invalid(method, param, err)
	}
	if len(payload) != addressLen {
		return invalid(method, param, errors.New("wrong address length"))
	}
	return nil
}

func checkTxid(method, txid string) error {
	if len(txid) != chainhash.MaxHashStringSize {
		return &ValidationError{Method: method, Param: "txid", Reason: "must be 64 hex characters"}
	}
	if _, err := chainhash.NewHashFromStr(txid); err != nil {
		return invalid(method, "txid", err)
	}
	return nil
}

func checkHex(method, param, s string) error {
	if _, err := hex.DecodeString(s); err != nil {
		return invalid(method, param, err)
	}
	return nil
}

package monero

import (
	"math/big"

	"github.com/ivanzzeth/monero-jsonrpc-client/core"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// BlockHash identifies a block.
type BlockHash [32]byte

func (h BlockHash) Bytes() []byte { return h[:] }

func (BlockHash) ParseHex(s string) (h BlockHash, err error) { err = decodeInto(h[:], s); return }

func (h BlockHash) String() string { return core.EncodeHex(h[:]) }

// Hash is a transaction hash.
type Hash [32]byte

func (h Hash) Bytes() []byte { return h[:] }

func (Hash) ParseHex(s string) (h Hash, err error) { err = decodeInto(h[:], s); return }

func (h Hash) String() string { return core.EncodeHex(h[:]) }

// PaymentID is a short (8 byte) payment id.
type PaymentID [8]byte

func (p PaymentID) Bytes() []byte { return p[:] }

func (PaymentID) ParseHex(s string) (p PaymentID, err error) { err = decodeInto(p[:], s); return }

func (p PaymentID) String() string { return core.EncodeHex(p[:]) }

type PrivateKey [32]byte

func (k PrivateKey) Bytes() []byte { return k[:] }

func (PrivateKey) ParseHex(s string) (k PrivateKey, err error) { err = decodeInto(k[:], s); return }

func (k PrivateKey) String() string { return core.EncodeHex(k[:]) }

type KeyImage [32]byte

func (k KeyImage) Bytes() []byte { return k[:] }

func (KeyImage) ParseHex(s string) (k KeyImage, err error) { err = decodeInto(k[:], s); return }

func (k KeyImage) String() string { return core.EncodeHex(k[:]) }

type Signature [64]byte

func (s Signature) Bytes() []byte { return s[:] }

func (Signature) ParseHex(v string) (s Signature, err error) { err = decodeInto(s[:], v); return }

func (s Signature) String() string { return core.EncodeHex(s[:]) }

func decodeInto(dst []byte, s string) error {
	b, err := core.DecodeFixedHex(s, len(dst))
	if err != nil {
		return err
	}

	copy(dst, b)
	return nil
}

// Address is a base58 Monero address. It is passed to the node verbatim,
// the node is the one validating it.
type Address string

func (a Address) String() string {
	return string(a)
}

// SubaddressIndex locates a subaddress: Major is the account, Minor the
// address within it.
type SubaddressIndex struct {
	Major uint32 `json:"major"`
	Minor uint32 `json:"minor"`
}

const piconeroExp = 12

var errNegativeAmount = errors.New("amount is negative")
var errAmountPrecision = errors.New("amount has more than 12 decimals")
var errAmountOverflow = errors.New("amount overflows uint64 piconero")

// Amount is a quantity of XMR in piconero (1 XMR = 10^12 piconero).
type Amount uint64

func (a Amount) Pico() uint64 {
	return uint64(a)
}

// XMR returns the amount in XMR, exactly.
func (a Amount) XMR() decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(a)), -piconeroExp)
}

func (a Amount) String() string {
	return a.XMR().String() + " XMR"
}

// ParseXMR parses a decimal XMR value such as "1.5" or "0.000000000001".
func ParseXMR(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errors.Wrapf(err, "parse amount %q", s)
	}

	return AmountFromXMR(d)
}

func AmountFromXMR(d decimal.Decimal) (Amount, error) {
	if d.IsNegative() {
		return 0, errors.Wrap(errNegativeAmount, d.String())
	}

	pico := d.Shift(piconeroExp)
	if !pico.IsInteger() {
		return 0, errors.Wrap(errAmountPrecision, d.String())
	}

	n := pico.BigInt()
	if !n.IsUint64() {
		return 0, errors.Wrap(errAmountOverflow, d.String())
	}

	return Amount(n.Uint64()), nil
}

// TransferPriority travels as its numeric value.
type TransferPriority uint8

const (
	PriorityDefault TransferPriority = iota
	PriorityUnimportant
	PriorityElevated
	PriorityPriority
)

// TransferType filters incoming_transfers.
type TransferType string

const (
	TransferAll         TransferType = "all"
	TransferAvailable   TransferType = "available"
	TransferUnavailable TransferType = "unavailable"
)

// KeyType selects the key returned by query_key.
type KeyType string

const (
	ViewKey  KeyType = "view_key"
	SpendKey KeyType = "spend_key"
)

// TransferCategory is the "type" of a transfer in get_transfer(s).
type TransferCategory string

const (
	CategoryIn      TransferCategory = "in"
	CategoryOut     TransferCategory = "out"
	CategoryPending TransferCategory = "pending"
	CategoryFailed  TransferCategory = "failed"
	CategoryPool    TransferCategory = "pool"
	CategoryBlock   TransferCategory = "block"
)

// TransferHeight is the height of the block confirming a transfer. Zero
// means the transfer is not mined yet.
type TransferHeight uint64

func (h TransferHeight) InPool() bool {
	return h == 0
}

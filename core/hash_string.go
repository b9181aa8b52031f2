package core

import (
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// HashType is implemented by byte-bearing values that travel as hex strings:
// hashes, keys, signatures and blobs. ParseHex is called on the zero value
// and returns the parsed value.
type HashType[T any] interface {
	Bytes() []byte
	ParseHex(s string) (T, error)
}

// EncodeHex returns lowercase hex without a prefix.
func EncodeHex(b []byte) string {
	return hex.EncodeToString(b)
}

// DecodeHex decodes a hex string, with or without a 0x prefix. The empty
// string decodes to an empty slice.
func DecodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")

	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedHex, "%q: %v", s, err)
	}

	return b, nil
}

// DecodeFixedHex decodes s and requires exactly n bytes.
func DecodeFixedHex(s string, n int) ([]byte, error) {
	b, err := DecodeHex(s)
	if err != nil {
		return nil, err
	}

	if len(b) != n {
		return nil, errors.Wrapf(ErrLengthMismatch, "expected %d bytes, got %d", n, len(b))
	}

	return b, nil
}

// HashString wraps a HashType so it (de)serializes as a hex string.
type HashString[T HashType[T]] struct {
	V T
}

func NewHashString[T HashType[T]](v T) HashString[T] {
	return HashString[T]{V: v}
}

// ParseHashString parses s into the wrapped type.
func ParseHashString[T HashType[T]](s string) (HashString[T], error) {
	var zero T

	v, err := zero.ParseHex(s)
	if err != nil {
		return HashString[T]{}, err
	}

	return HashString[T]{V: v}, nil
}

func (h HashString[T]) String() string {
	return EncodeHex(h.V.Bytes())
}

func (h HashString[T]) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *HashString[T]) UnmarshalText(text []byte) error {
	parsed, err := ParseHashString[T](string(text))
	if err != nil {
		return err
	}

	*h = parsed
	return nil
}

func (h HashString[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

func (h *HashString[T]) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Wrap(err, "hex value must be a JSON string")
	}

	return h.UnmarshalText([]byte(s))
}

// Blob is a variable-length byte sequence: transaction blobs, tx keys,
// metadata, signed/unsigned tx sets.
type Blob []byte

func (b Blob) Bytes() []byte {
	return b
}

func (Blob) ParseHex(s string) (Blob, error) {
	return DecodeHex(s)
}

// Unwrap returns the wrapped values of a hex-string slice.
func Unwrap[T HashType[T]](in []HashString[T]) []T {
	if in == nil {
		return nil
	}

	out := make([]T, len(in))
	for i, h := range in {
		out[i] = h.V
	}

	return out
}

// Wrap is the inverse of Unwrap.
func Wrap[T HashType[T]](in []T) []HashString[T] {
	if in == nil {
		return nil
	}

	out := make([]HashString[T], len(in))
	for i, v := range in {
		out[i] = HashString[T]{V: v}
	}

	return out
}

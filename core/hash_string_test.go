package core

import (
	"crypto/rand"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testHash [32]byte

func (h testHash) Bytes() []byte {
	return h[:]
}

func (testHash) ParseHex(s string) (testHash, error) {
	var h testHash
	b, err := DecodeFixedHex(s, len(h))
	if err != nil {
		return h, err
	}
	copy(h[:], b)
	return h, nil
}

type testPaymentID [8]byte

func (p testPaymentID) Bytes() []byte {
	return p[:]
}

func (testPaymentID) ParseHex(s string) (testPaymentID, error) {
	var p testPaymentID
	b, err := DecodeFixedHex(s, len(p))
	if err != nil {
		return p, err
	}
	copy(p[:], b)
	return p, nil
}

func TestBlobRoundTrip(t *testing.T) {
	for _, size := range []int{0, 1, 5, 32, 200} {
		b := make([]byte, size)
		_, err := rand.Read(b)
		require.NoError(t, err)

		encoded := NewHashString(Blob(b)).String()
		assert.Equal(t, strings.ToLower(encoded), encoded)
		assert.False(t, strings.HasPrefix(encoded, "0x"))

		decoded, err := ParseHashString[Blob](encoded)
		require.NoError(t, err)
		assert.Equal(t, b, decoded.V.Bytes())

		decoded, err = ParseHashString[Blob]("0x" + strings.ToUpper(encoded))
		require.NoError(t, err)
		assert.Equal(t, b, decoded.V.Bytes())
	}
}

func TestFixedHashRoundTrip(t *testing.T) {
	var h testHash
	for i := range h {
		h[i] = 250
	}

	encoded := NewHashString(h).String()
	assert.Equal(t, strings.Repeat("fa", 32), encoded)

	parsed, err := ParseHashString[testHash](encoded)
	require.NoError(t, err)
	assert.Equal(t, h, parsed.V)

	parsed, err = ParseHashString[testHash]("0x" + encoded)
	require.NoError(t, err)
	assert.Equal(t, h, parsed.V)

	parsed, err = ParseHashString[testHash](strings.Repeat("FA", 32))
	require.NoError(t, err)
	assert.Equal(t, h, parsed.V)
}

func TestFixedHashLengthMismatch(t *testing.T) {
	_, err := ParseHashString[testPaymentID]("0x01234567")
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = ParseHashString[testPaymentID]("000102030405060708")
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = ParseHashString[testHash](strings.Repeat("fa", 31))
	assert.ErrorIs(t, err, ErrLengthMismatch)

	p, err := ParseHashString[testPaymentID]("0x0001020304050607")
	require.NoError(t, err)
	assert.Equal(t, testPaymentID{0, 1, 2, 3, 4, 5, 6, 7}, p.V)
}

func TestMalformedHex(t *testing.T) {
	_, err := ParseHashString[testPaymentID]("0xgg")
	assert.ErrorIs(t, err, ErrMalformedHex)

	_, err = ParseHashString[testHash]("0xgg")
	assert.ErrorIs(t, err, ErrMalformedHex)

	_, err = ParseHashString[Blob]("0xgg")
	assert.ErrorIs(t, err, ErrMalformedHex)

	// odd length is never truncated
	_, err = ParseHashString[Blob]("abc")
	assert.ErrorIs(t, err, ErrMalformedHex)
}

func TestEmptyString(t *testing.T) {
	b, err := ParseHashString[Blob]("")
	require.NoError(t, err)
	assert.Empty(t, b.V)

	_, err = ParseHashString[testHash]("")
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = ParseHashString[testPaymentID]("")
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestHashStringJSON(t *testing.T) {
	hs := NewHashString(Blob{0, 1, 2, 3, 4})

	bts, err := json.Marshal(hs)
	require.NoError(t, err)
	assert.Equal(t, `"0001020304"`, string(bts))

	type wire struct {
		TxHash HashString[testHash] `json:"tx_hash"`
		TxBlob HashString[Blob]     `json:"tx_blob"`
	}

	var w wire
	err = json.Unmarshal([]byte(`{"tx_hash":"0x`+strings.Repeat("ab", 32)+`","tx_blob":"0001020304"}`), &w)
	require.NoError(t, err)
	assert.Equal(t, byte(0xab), w.TxHash.V[31])
	assert.Equal(t, []byte{0, 1, 2, 3, 4}, w.TxBlob.V.Bytes())

	err = json.Unmarshal([]byte(`{"tx_hash":"0xgg"}`), &w)
	assert.ErrorIs(t, err, ErrMalformedHex)

	err = json.Unmarshal([]byte(`{"tx_blob":12}`), &w)
	assert.Error(t, err)
}

func TestWrapUnwrap(t *testing.T) {
	assert.Nil(t, Unwrap[Blob](nil))
	assert.Nil(t, Wrap[Blob](nil))

	in := []Blob{{1}, {2, 3}}
	assert.Equal(t, in, Unwrap(Wrap(in)))
}

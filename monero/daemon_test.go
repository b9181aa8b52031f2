package monero

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/ivanzzeth/monero-jsonrpc-client/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAddress = Address("4AdUndXHHZ6cfufTMvppY6JwXNouMBzSkbLYfpAV5Usx3skxNgYeYTRj5UzqtReoS44qo9mtmXCqY45DJ852K5Jv2684Rge")

func headerJSON(height uint64, hash string) string {
	return `{"block_size":123,"depth":1,"difficulty":1,"hash":"` + hash + `","height":` + strconv.FormatUint(height, 10) +
		`,"major_version":16,"minor_version":16,"nonce":42,"num_txes":0,"orphan_status":false,"prev_hash":"` +
		strings.Repeat("00", 32) + `","reward":35184338534400,"timestamp":1600000000}`
}

func TestDaemonGetBlockCount(t *testing.T) {
	node := newFakeNode(t)
	node.reply("get_block_count", `{"count":12,"status":"OK","untrusted":false}`)

	count, err := NewDaemonClient(node.client()).GetBlockCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(12), count)
	assert.Empty(t, node.sent("get_block_count"))
}

func TestDaemonStatusNotOK(t *testing.T) {
	node := newFakeNode(t)
	node.reply("get_block_count", `{"count":12,"status":"BUSY"}`)

	_, err := NewDaemonClient(node.client()).GetBlockCount(context.Background())
	assertDecodeError(t, err)
	assert.ErrorIs(t, err, errStatusNotOK)

	node.reply("get_block_count", `{"count":12}`)
	_, err = NewDaemonClient(node.client()).GetBlockCount(context.Background())
	assert.ErrorIs(t, err, errStatusNotOK)
}

func TestDaemonOnGetBlockHash(t *testing.T) {
	node := newFakeNode(t)
	hash := strings.Repeat("7c", 32)
	node.reply("on_get_block_hash", `"`+hash+`"`)

	got, err := NewDaemonClient(node.client()).OnGetBlockHash(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, hash, got.String())
	assert.JSONEq(t, `[5]`, node.sent("on_get_block_hash"))
}

func TestDaemonOnGetBlockHashApplicationError(t *testing.T) {
	node := newFakeNode(t)
	node.fail("on_get_block_hash", -2, "Requested block height: 100 greater than current top block height: 1")

	_, err := NewDaemonClient(node.client()).OnGetBlockHash(context.Background(), 100)

	var appErr *core.ApplicationError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, int64(-2), appErr.Code)
	assert.Equal(t, "Code: -2, Message: Requested block height: 100 greater than current top block height: 1", err.Error())
}

func TestDaemonGetBlockTemplate(t *testing.T) {
	node := newFakeNode(t)
	node.reply("get_block_template", `{
		"blockhashing_blob":"0e0e",
		"blocktemplate_blob":"0e0eff",
		"difficulty":1,
		"expected_reward":35184338534400,
		"height":1,
		"prev_hash":"`+strings.Repeat("41", 32)+`",
		"reserved_offset":130,
		"status":"OK",
		"untrusted":false
	}`)

	tmpl, err := NewDaemonClient(node.client()).GetBlockTemplate(context.Background(), testAddress, 10)
	require.NoError(t, err)

	assert.Equal(t, core.Blob{0x0e, 0x0e}, tmpl.BlockHashingBlob)
	assert.Equal(t, core.Blob{0x0e, 0x0e, 0xff}, tmpl.BlockTemplateBlob)
	assert.Equal(t, Amount(35184338534400), tmpl.ExpectedReward)
	assert.Equal(t, uint64(130), tmpl.ReservedOffset)
	assert.Equal(t, strings.Repeat("41", 32), tmpl.PrevHash.String())
	assert.JSONEq(t, `{"wallet_address":"`+string(testAddress)+`","reserve_size":10}`, node.sent("get_block_template"))
}

func TestDaemonSubmitBlock(t *testing.T) {
	node := newFakeNode(t)
	node.reply("submit_block", `{"status":"OK"}`)

	err := NewDaemonClient(node.client()).SubmitBlock(context.Background(), core.Blob{0xde, 0xad})
	require.NoError(t, err)
	assert.JSONEq(t, `["dead"]`, node.sent("submit_block"))

	node.fail("submit_block", -7, "Block not accepted")
	err = NewDaemonClient(node.client()).SubmitBlock(context.Background(), core.Blob{0xde, 0xad})
	assert.True(t, core.IsApplicationCode(err, -7))
}

func TestDaemonGetBlockHeader(t *testing.T) {
	node := newFakeNode(t)
	hash := strings.Repeat("ab", 32)
	result := `{"block_header":` + headerJSON(7, hash) + `,"status":"OK"}`

	node.reply("get_last_block_header", result)
	node.reply("get_block_header_by_hash", result)
	node.reply("get_block_header_by_height", result)

	daemon := NewDaemonClient(node.client())
	ctx := context.Background()

	for _, selector := range []BlockHeaderSelector{{}, LastBlock(), BlockByHash(mustHex[BlockHash](t, hash)), BlockByHeight(7)} {
		header, err := daemon.GetBlockHeader(ctx, selector)
		require.NoError(t, err)
		assert.Equal(t, uint64(7), header.Height)
		assert.Equal(t, hash, header.Hash.String())
		assert.Equal(t, uint32(42), header.Nonce)
		assert.Equal(t, int64(1600000000), header.Timestamp.Unix())
	}

	assert.Empty(t, node.sent("get_last_block_header"))
	assert.JSONEq(t, `{"hash":"`+hash+`"}`, node.sent("get_block_header_by_hash"))
	assert.JSONEq(t, `{"height":7}`, node.sent("get_block_header_by_height"))
}

func TestDaemonGetBlockHeadersRange(t *testing.T) {
	node := newFakeNode(t)
	node.reply("get_block_headers_range", `{"headers":[`+
		headerJSON(1, strings.Repeat("01", 32))+`,`+
		headerJSON(2, strings.Repeat("02", 32))+`],"status":"OK"}`)

	headers, err := NewDaemonClient(node.client()).GetBlockHeadersRange(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Len(t, headers, 2)
	assert.Equal(t, uint64(1), headers[0].Height)
	assert.Equal(t, uint64(2), headers[1].Height)
	assert.JSONEq(t, `{"start_height":1,"end_height":2}`, node.sent("get_block_headers_range"))
}

func TestDaemonGetVersion(t *testing.T) {
	node := newFakeNode(t)
	node.reply("get_version", `{"version":196621,"release":true,"status":"OK"}`)

	v, err := NewDaemonClient(node.client()).GetVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Version{Major: 3, Minor: 13, Release: true}, v)
}

func TestRegtestGenerateBlocks(t *testing.T) {
	node := newFakeNode(t)
	node.reply("generateblocks", `{"height":11,"blocks":["`+strings.Repeat("aa", 32)+`","`+strings.Repeat("bb", 32)+`"],"status":"OK"}`)

	regtest := NewDaemonClient(node.client()).Regtest()
	res, err := regtest.GenerateBlocks(context.Background(), 2, testAddress)
	require.NoError(t, err)

	assert.Equal(t, uint64(11), res.Height)
	require.Len(t, res.Blocks, 2)
	assert.Equal(t, strings.Repeat("bb", 32), res.Blocks[1].String())
	assert.JSONEq(t, `{"amount_of_blocks":2,"wallet_address":"`+string(testAddress)+`"}`, node.sent("generateblocks"))

	// regular daemon methods stay available
	node.reply("get_block_count", `{"count":11,"status":"OK"}`)
	count, err := regtest.GetBlockCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(11), count)
}

func TestRegtestGenerateBlocksWithoutHashes(t *testing.T) {
	node := newFakeNode(t)
	node.reply("generateblocks", `{"height":11,"status":"OK"}`)

	res, err := NewDaemonClient(node.client()).Regtest().GenerateBlocks(context.Background(), 1, testAddress)
	require.NoError(t, err)
	assert.Nil(t, res.Blocks)
}

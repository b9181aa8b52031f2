package monero

import (
	"context"

	"github.com/ivanzzeth/monero-jsonrpc-client/core"
)

// DaemonClient calls the JSON-RPC methods of monerod.
type DaemonClient struct {
	c *core.Client
}

func NewDaemonClient(c *core.Client) *DaemonClient {
	return &DaemonClient{c: c}
}

// Regtest enables the methods only available on a regtest node.
func (d *DaemonClient) Regtest() *RegtestDaemonClient {
	return &RegtestDaemonClient{DaemonClient: d}
}

func (d *DaemonClient) GetBlockCount(ctx context.Context) (uint64, error) {
	res, err := callOK[struct {
		Count uint64 `json:"count"`
	}](ctx, d.c, "get_block_count", core.NoParams())
	if err != nil {
		return 0, err
	}

	return res.Count, nil
}

func (d *DaemonClient) OnGetBlockHash(ctx context.Context, height uint64) (BlockHash, error) {
	res, err := core.Call[hex[BlockHash]](ctx, d.c, "on_get_block_hash", core.Positional(height))
	if err != nil {
		return BlockHash{}, err
	}

	return res.V, nil
}

func (d *DaemonClient) GetBlockTemplate(ctx context.Context, address Address, reserveSize uint64) (BlockTemplate, error) {
	res, err := callOK[blockTemplateR](ctx, d.c, "get_block_template", core.Named(
		core.Pair{Name: "wallet_address", Value: address},
		core.Pair{Name: "reserve_size", Value: reserveSize},
	))
	if err != nil {
		return BlockTemplate{}, err
	}

	return res.toBlockTemplate(), nil
}

// SubmitBlock submits a mined block blob.
func (d *DaemonClient) SubmitBlock(ctx context.Context, blob core.Blob) error {
	_, err := callOK[struct{}](ctx, d.c, "submit_block", core.Positional(core.NewHashString(blob)))
	return err
}

type selectorKind int

const (
	selectLast selectorKind = iota
	selectHash
	selectHeight
)

// BlockHeaderSelector picks the block returned by GetBlockHeader. The zero
// value selects the last block.
type BlockHeaderSelector struct {
	kind   selectorKind
	hash   BlockHash
	height uint64
}

func LastBlock() BlockHeaderSelector {
	return BlockHeaderSelector{kind: selectLast}
}

func BlockByHash(hash BlockHash) BlockHeaderSelector {
	return BlockHeaderSelector{kind: selectHash, hash: hash}
}

func BlockByHeight(height uint64) BlockHeaderSelector {
	return BlockHeaderSelector{kind: selectHeight, height: height}
}

func (s BlockHeaderSelector) request() (string, core.Params) {
	switch s.kind {
	case selectHash:
		return "get_block_header_by_hash", core.Named(core.Pair{Name: "hash", Value: core.NewHashString(s.hash)})
	case selectHeight:
		return "get_block_header_by_height", core.Named(core.Pair{Name: "height", Value: s.height})
	default:
		return "get_last_block_header", core.NoParams()
	}
}

func (d *DaemonClient) GetBlockHeader(ctx context.Context, selector BlockHeaderSelector) (BlockHeader, error) {
	method, params := selector.request()

	res, err := callOK[struct {
		BlockHeader blockHeaderR `json:"block_header"`
	}](ctx, d.c, method, params)
	if err != nil {
		return BlockHeader{}, err
	}

	return res.BlockHeader.toBlockHeader(), nil
}

// GetBlockHeadersRange returns the headers from start to end, both included.
func (d *DaemonClient) GetBlockHeadersRange(ctx context.Context, start, end uint64) ([]BlockHeader, error) {
	res, err := callOK[struct {
		Headers []blockHeaderR `json:"headers"`
	}](ctx, d.c, "get_block_headers_range", core.Named(
		core.Pair{Name: "start_height", Value: start},
		core.Pair{Name: "end_height", Value: end},
	))
	if err != nil {
		return nil, err
	}

	headers := make([]BlockHeader, 0, len(res.Headers))
	for _, h := range res.Headers {
		headers = append(headers, h.toBlockHeader())
	}

	return headers, nil
}

func (d *DaemonClient) GetVersion(ctx context.Context) (Version, error) {
	res, err := callOK[versionR](ctx, d.c, "get_version", core.NoParams())
	if err != nil {
		return Version{}, err
	}

	return unpackVersion(res.Version, res.Release), nil
}

// RegtestDaemonClient adds the regtest-only methods to a DaemonClient.
type RegtestDaemonClient struct {
	*DaemonClient
}

// GenerateBlocks mines n blocks paying to address.
func (r *RegtestDaemonClient) GenerateBlocks(ctx context.Context, n uint64, address Address) (GenerateBlocksResult, error) {
	res, err := callOK[generateBlocksR](ctx, r.c, "generateblocks", core.Named(
		core.Pair{Name: "amount_of_blocks", Value: n},
		core.Pair{Name: "wallet_address", Value: address},
	))
	if err != nil {
		return GenerateBlocksResult{}, err
	}

	return GenerateBlocksResult{
		Height: res.Height,
		Blocks: core.Unwrap(res.Blocks),
	}, nil
}

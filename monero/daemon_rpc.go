package monero

import (
	"context"

	"github.com/ivanzzeth/monero-jsonrpc-client/core"
)

// DaemonRpcClient calls the monerod methods served at their own path
// instead of through /json_rpc.
type DaemonRpcClient struct {
	c *core.Client
}

func NewDaemonRpcClient(c *core.Client) *DaemonRpcClient {
	return &DaemonRpcClient{c: c}
}

type getTransactionsArgs struct {
	TxsHashes    []hex[Hash] `json:"txs_hashes"`
	DecodeAsJSON bool        `json:"decode_as_json,omitempty"`
	Prune        bool        `json:"prune,omitempty"`
}

// GetTransactions looks transactions up by hash. Unknown hashes are listed
// in MissedTx.
func (d *DaemonRpcClient) GetTransactions(ctx context.Context, hashes []Hash, decodeAsJSON, prune bool) (TransactionsResult, error) {
	args := getTransactionsArgs{
		TxsHashes:    core.Wrap(hashes),
		DecodeAsJSON: decodeAsJSON,
		Prune:        prune,
	}
	if args.TxsHashes == nil {
		args.TxsHashes = []hex[Hash]{}
	}

	res, err := callDirectOK[transactionsR](ctx, d.c, "get_transactions", args)
	if err != nil {
		return TransactionsResult{}, err
	}

	return res.toTransactionsResult(), nil
}

func (d *DaemonRpcClient) GetHeight(ctx context.Context) (HeightResult, error) {
	res, err := callDirectOK[heightR](ctx, d.c, "get_height", nil)
	if err != nil {
		return HeightResult{}, err
	}

	return HeightResult{Height: res.Height, Hash: res.Hash.V}, nil
}

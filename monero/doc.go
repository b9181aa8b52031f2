// Package monero provides typed clients for the Monero node processes.
//
// DaemonClient and its RegtestDaemonClient extension call monerod through
// /json_rpc, DaemonRpcClient calls the monerod methods served at their own
// path (get_transactions, get_height), and WalletClient calls
// monero-wallet-rpc. All of them are thin wrappers around a *core.Client:
//
//	c, err := core.NewClient(core.ClientConfig{Addr: core.DefaultWalletAddr})
//	if err != nil {
//		return err
//	}
//	balance, err := monero.NewWalletClient(c).GetBalance(ctx, 0, nil)
//
// Hashes, keys and blobs travel as hex strings on the wire and are exposed as
// fixed-size byte arrays (BlockHash, Hash, PaymentID, PrivateKey, KeyImage,
// Signature) or core.Blob. Amounts are piconero counts, see Amount.
package monero

package main

import (
	"encoding/json"
	"time"

	"github.com/ivanzzeth/monero-jsonrpc-client/core"
	"github.com/ivanzzeth/monero-jsonrpc-client/monero"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

// parseParams turns a JSON array into positional params and a JSON object
// into named params, keeping the order of the input.
func parseParams(s string) (core.Params, error) {
	if s == "" {
		return core.NoParams(), nil
	}

	if !gjson.Valid(s) {
		return core.Params{}, errors.Errorf("params are not valid JSON: %s", s)
	}

	parsed := gjson.Parse(s)

	switch {
	case parsed.IsArray():
		return core.PositionalSeq(func(yield func(any) bool) {
			parsed.ForEach(func(_, v gjson.Result) bool {
				return yield(json.RawMessage(v.Raw))
			})
		}), nil
	case parsed.IsObject():
		return core.NamedSeq(func(yield func(string, any) bool) {
			parsed.ForEach(func(k, v gjson.Result) bool {
				return yield(k.String(), json.RawMessage(v.Raw))
			})
		}), nil
	default:
		return core.Params{}, errors.Errorf("params must be a JSON array or object: %s", s)
	}
}

func (a *app) callCmd() *cobra.Command {
	var toWallet bool

	cmd := &cobra.Command{
		Use:   "call <method> [params-json]",
		Short: "Issue a raw JSON-RPC call; an array is sent as positional params, an object as named params",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw string
			if len(args) == 2 {
				raw = args[1]
			}

			params, err := parseParams(raw)
			if err != nil {
				return err
			}

			client, err := a.daemon()
			if toWallet {
				client, err = a.wallet()
			}
			if err != nil {
				return err
			}

			result, err := client.Request(cmd.Context(), args[0], params)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().BoolVarP(&toWallet, "wallet", "w", false, "call the wallet instead of the daemon")

	return cmd
}

func (a *app) directCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "direct <method> [body-json]",
		Short: "POST a body to <daemon>/<method>",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var body any
			if len(args) == 2 {
				if !json.Valid([]byte(args[1])) {
					return errors.Errorf("body is not valid JSON: %s", args[1])
				}
				body = json.RawMessage(args[1])
			}

			client, err := a.daemon()
			if err != nil {
				return err
			}

			result, err := client.RequestDirect(cmd.Context(), args[0], body)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), result)
		},
	}
}

func (a *app) blockCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "block-count",
		Short: "Print the daemon block count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.daemon()
			if err != nil {
				return err
			}

			count, err := monero.NewDaemonClient(client).GetBlockCount(cmd.Context())
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), map[string]uint64{"count": count})
		},
	}
}

type headerOutput struct {
	Hash         string `json:"hash"`
	PrevHash     string `json:"prevHash"`
	Height       uint64 `json:"height"`
	Timestamp    string `json:"timestamp"`
	Difficulty   uint64 `json:"difficulty"`
	NumTxes      uint64 `json:"numTxes"`
	Reward       string `json:"reward"`
	OrphanStatus bool   `json:"orphanStatus"`
}

func (a *app) blockHeaderCmd() *cobra.Command {
	var height uint64
	var hash string

	cmd := &cobra.Command{
		Use:   "block-header",
		Short: "Print a block header, the last one unless --height or --hash is set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			selector := monero.LastBlock()

			switch {
			case cmd.Flags().Changed("height") && cmd.Flags().Changed("hash"):
				return errors.New("--height and --hash are exclusive")
			case cmd.Flags().Changed("height"):
				selector = monero.BlockByHeight(height)
			case cmd.Flags().Changed("hash"):
				h, err := monero.BlockHash{}.ParseHex(hash)
				if err != nil {
					return errors.Wrap(err, "--hash")
				}
				selector = monero.BlockByHash(h)
			}

			client, err := a.daemon()
			if err != nil {
				return err
			}

			header, err := monero.NewDaemonClient(client).GetBlockHeader(cmd.Context(), selector)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), headerOutput{
				Hash:         header.Hash.String(),
				PrevHash:     header.PrevHash.String(),
				Height:       header.Height,
				Timestamp:    header.Timestamp.Format(time.RFC3339),
				Difficulty:   header.Difficulty,
				NumTxes:      header.NumTxes,
				Reward:       header.Reward.String(),
				OrphanStatus: header.OrphanStatus,
			})
		},
	}

	cmd.Flags().Uint64Var(&height, "height", 0, "block height")
	cmd.Flags().StringVar(&hash, "hash", "", "block hash (hex)")

	return cmd
}

func (a *app) balanceCmd() *cobra.Command {
	var account uint32

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Print the balance of a wallet account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.wallet()
			if err != nil {
				return err
			}

			balance, err := monero.NewWalletClient(client).GetBalance(cmd.Context(), account, nil)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), map[string]string{
				"balance":         balance.Balance.String(),
				"unlockedBalance": balance.UnlockedBalance.String(),
			})
		},
	}

	cmd.Flags().Uint32Var(&account, "account", 0, "account index")

	return cmd
}

func (a *app) healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Probe the daemon and the wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			daemon, err := a.daemon()
			if err != nil {
				return err
			}

			wallet, err := a.wallet()
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), map[string]core.NodeInfo{
				"daemon": daemon.Health(cmd.Context(), "get_block_count"),
				"wallet": wallet.Health(cmd.Context(), "get_version"),
			})
		},
	}
}

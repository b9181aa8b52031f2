package monero

import (
	"encoding/json"
	"time"

	"github.com/ivanzzeth/monero-jsonrpc-client/core"
	"github.com/pkg/errors"
)

type hex[T core.HashType[T]] = core.HashString[T]

// Version is a node or wallet RPC version. The node packs it as
// major<<16 | minor.
type Version struct {
	Major   uint32
	Minor   uint32
	Release bool
}

func unpackVersion(v uint32, release bool) Version {
	return Version{Major: v >> 16, Minor: v & 0xffff, Release: release}
}

type versionR struct {
	Version uint32 `json:"version"`
	Release bool   `json:"release"`
}

// BlockTemplate is the result of daemon get_block_template.
type BlockTemplate struct {
	BlockHashingBlob  core.Blob
	BlockTemplateBlob core.Blob
	Difficulty        uint64
	ExpectedReward    Amount
	Height            uint64
	PrevHash          BlockHash
	ReservedOffset    uint64
	Untrusted         bool
}

type blockTemplateR struct {
	BlockHashingBlob  hex[core.Blob] `json:"blockhashing_blob"`
	BlockTemplateBlob hex[core.Blob] `json:"blocktemplate_blob"`
	Difficulty        uint64         `json:"difficulty"`
	ExpectedReward    Amount         `json:"expected_reward"`
	Height            uint64         `json:"height"`
	PrevHash          hex[BlockHash] `json:"prev_hash"`
	ReservedOffset    uint64         `json:"reserved_offset"`
	Untrusted         bool           `json:"untrusted"`
}

func (r blockTemplateR) toBlockTemplate() BlockTemplate {
	return BlockTemplate{
		BlockHashingBlob:  r.BlockHashingBlob.V,
		BlockTemplateBlob: r.BlockTemplateBlob.V,
		Difficulty:        r.Difficulty,
		ExpectedReward:    r.ExpectedReward,
		Height:            r.Height,
		PrevHash:          r.PrevHash.V,
		ReservedOffset:    r.ReservedOffset,
		Untrusted:         r.Untrusted,
	}
}

// BlockHeader is returned by the get_block_header* family.
type BlockHeader struct {
	BlockSize    uint64
	Depth        uint64
	Difficulty   uint64
	Hash         BlockHash
	Height       uint64
	MajorVersion uint64
	MinorVersion uint64
	Nonce        uint32
	NumTxes      uint64
	OrphanStatus bool
	PrevHash     BlockHash
	Reward       Amount
	Timestamp    time.Time
}

type blockHeaderR struct {
	BlockSize    uint64         `json:"block_size"`
	Depth        uint64         `json:"depth"`
	Difficulty   uint64         `json:"difficulty"`
	Hash         hex[BlockHash] `json:"hash"`
	Height       uint64         `json:"height"`
	MajorVersion uint64         `json:"major_version"`
	MinorVersion uint64         `json:"minor_version"`
	Nonce        uint32         `json:"nonce"`
	NumTxes      uint64         `json:"num_txes"`
	OrphanStatus bool           `json:"orphan_status"`
	PrevHash     hex[BlockHash] `json:"prev_hash"`
	Reward       Amount         `json:"reward"`
	Timestamp    int64          `json:"timestamp"`
}

func (r blockHeaderR) toBlockHeader() BlockHeader {
	return BlockHeader{
		BlockSize:    r.BlockSize,
		Depth:        r.Depth,
		Difficulty:   r.Difficulty,
		Hash:         r.Hash.V,
		Height:       r.Height,
		MajorVersion: r.MajorVersion,
		MinorVersion: r.MinorVersion,
		Nonce:        r.Nonce,
		NumTxes:      r.NumTxes,
		OrphanStatus: r.OrphanStatus,
		PrevHash:     r.PrevHash.V,
		Reward:       r.Reward,
		Timestamp:    time.Unix(r.Timestamp, 0).UTC(),
	}
}

type GenerateBlocksResult struct {
	Height uint64
	Blocks []BlockHash
}

type generateBlocksR struct {
	Height uint64           `json:"height"`
	Blocks []hex[BlockHash] `json:"blocks"`
}

// TransactionsResult is the answer of the direct get_transactions call.
type TransactionsResult struct {
	Credits   uint64
	TopHash   string
	MissedTx  []Hash
	Txs       []Transaction
	TxsAsHex  []string
	TxsAsJSON []string
	Untrusted bool
}

type Transaction struct {
	AsHex           string
	AsJSON          string
	BlockHeight     uint64
	BlockTimestamp  uint64
	DoubleSpendSeen bool
	InPool          bool
	OutputIndices   []uint64
	TxHash          Hash
}

// TransactionJSON holds the stable part of a transaction decoded from its
// as_json string. The remaining fields change across hard forks.
type TransactionJSON struct {
	Version    uint64 `json:"version"`
	UnlockTime uint64 `json:"unlock_time"`
}

// DecodeJSON parses AsJSON. It is only set when the call asked for JSON.
func (t Transaction) DecodeJSON() (TransactionJSON, error) {
	var out TransactionJSON

	if t.AsJSON == "" {
		return out, errors.Errorf("transaction %s has no json form", t.TxHash)
	}

	if err := json.Unmarshal([]byte(t.AsJSON), &out); err != nil {
		return out, errors.Wrapf(err, "decode transaction %s", t.TxHash)
	}

	return out, nil
}

type transactionsR struct {
	Credits   uint64         `json:"credits"`
	TopHash   string         `json:"top_hash"`
	MissedTx  []hex[Hash]    `json:"missed_tx"`
	Txs       []transactionR `json:"txs"`
	TxsAsHex  []string       `json:"txs_as_hex"`
	TxsAsJSON []string       `json:"txs_as_json"`
	Untrusted bool           `json:"untrusted"`
}

type transactionR struct {
	AsHex           string    `json:"as_hex"`
	AsJSON          string    `json:"as_json"`
	BlockHeight     uint64    `json:"block_height"`
	BlockTimestamp  uint64    `json:"block_timestamp"`
	DoubleSpendSeen bool      `json:"double_spend_seen"`
	InPool          bool      `json:"in_pool"`
	OutputIndices   []uint64  `json:"output_indices"`
	TxHash          hex[Hash] `json:"tx_hash"`
}

func (r transactionsR) toTransactionsResult() TransactionsResult {
	res := TransactionsResult{
		Credits:   r.Credits,
		TopHash:   r.TopHash,
		MissedTx:  core.Unwrap(r.MissedTx),
		TxsAsHex:  r.TxsAsHex,
		TxsAsJSON: r.TxsAsJSON,
		Untrusted: r.Untrusted,
	}

	for _, tx := range r.Txs {
		res.Txs = append(res.Txs, Transaction{
			AsHex:           tx.AsHex,
			AsJSON:          tx.AsJSON,
			BlockHeight:     tx.BlockHeight,
			BlockTimestamp:  tx.BlockTimestamp,
			DoubleSpendSeen: tx.DoubleSpendSeen,
			InPool:          tx.InPool,
			OutputIndices:   tx.OutputIndices,
			TxHash:          tx.TxHash.V,
		})
	}

	return res
}

type HeightResult struct {
	Height uint64
	Hash   BlockHash
}

type heightR struct {
	Height uint64         `json:"height"`
	Hash   hex[BlockHash] `json:"hash"`
}

// BalanceData is the result of wallet get_balance. PerSubaddress is only
// filled for the queried address indices.
type BalanceData struct {
	Balance              Amount                  `json:"balance"`
	MultisigImportNeeded bool                    `json:"multisig_import_needed"`
	PerSubaddress        []SubaddressBalanceData `json:"per_subaddress"`
	UnlockedBalance      Amount                  `json:"unlocked_balance"`
}

type SubaddressBalanceData struct {
	Address           Address `json:"address"`
	AddressIndex      uint32  `json:"address_index"`
	Balance           Amount  `json:"balance"`
	Label             string  `json:"label"`
	NumUnspentOutputs uint64  `json:"num_unspent_outputs"`
	UnlockedBalance   Amount  `json:"unlocked_balance"`
}

type AddressData struct {
	Address   Address          `json:"address"`
	Addresses []SubaddressData `json:"addresses"`
}

type SubaddressData struct {
	Address      Address `json:"address"`
	AddressIndex uint32  `json:"address_index"`
	Label        string  `json:"label"`
	Used         bool    `json:"used"`
}

type Account struct {
	AccountIndex    uint32  `json:"account_index"`
	Balance         Amount  `json:"balance"`
	BaseAddress     Address `json:"base_address"`
	Label           string  `json:"label"`
	Tag             string  `json:"tag"`
	UnlockedBalance Amount  `json:"unlocked_balance"`
}

type AccountsData struct {
	SubaddressAccounts   []Account `json:"subaddress_accounts"`
	TotalBalance         Amount    `json:"total_balance"`
	TotalUnlockedBalance Amount    `json:"total_unlocked_balance"`
}

type RefreshData struct {
	BlocksFetched uint64 `json:"blocks_fetched"`
	ReceivedMoney bool   `json:"received_money"`
}

type WalletCreation struct {
	Address Address `json:"address"`
	Info    string  `json:"info"`
}

// GenerateFromKeysArgs restores a wallet from its keys. A zero SpendKey
// creates a view-only wallet.
type GenerateFromKeysArgs struct {
	RestoreHeight   uint64
	Filename        string
	Address         Address
	SpendKey        *PrivateKey
	ViewKey         PrivateKey
	Password        string
	AutosaveCurrent *bool
}

// Destination is one output of a transfer.
type Destination struct {
	Address Address `json:"address"`
	Amount  Amount  `json:"amount"`
}

// TransferOptions are the optional arguments of wallet transfer. Zero
// values are left out of the request.
type TransferOptions struct {
	AccountIndex   uint32
	SubaddrIndices []uint32
	Mixin          uint64
	RingSize       uint64
	UnlockTime     uint64
	PaymentID      *PaymentID
	DoNotRelay     bool
}

type TransferData struct {
	Amount        Amount
	Fee           Amount
	TxBlob        core.Blob
	TxHash        Hash
	TxKey         core.Blob
	TxMetadata    core.Blob
	UnsignedTxset core.Blob
}

type transferR struct {
	Amount        Amount         `json:"amount"`
	Fee           Amount         `json:"fee"`
	TxBlob        hex[core.Blob] `json:"tx_blob"`
	TxHash        hex[Hash]      `json:"tx_hash"`
	TxKey         hex[core.Blob] `json:"tx_key"`
	TxMetadata    hex[core.Blob] `json:"tx_metadata"`
	UnsignedTxset hex[core.Blob] `json:"unsigned_txset"`
}

func (r transferR) toTransferData() TransferData {
	return TransferData{
		Amount:        r.Amount,
		Fee:           r.Fee,
		TxBlob:        r.TxBlob.V,
		TxHash:        r.TxHash.V,
		TxKey:         r.TxKey.V,
		TxMetadata:    r.TxMetadata.V,
		UnsignedTxset: r.UnsignedTxset.V,
	}
}

// SweepAllArgs sends the whole unlocked balance of an account to Address.
type SweepAllArgs struct {
	Address        Address
	AccountIndex   uint32
	SubaddrIndices []uint32
	Priority       TransferPriority
	RingSize       uint64
	UnlockTime     uint64
	BelowAmount    Amount
	DoNotRelay     bool
}

type SweepAllData struct {
	TxHashList     []Hash
	TxKeyList      []core.Blob
	AmountList     []Amount
	FeeList        []Amount
	TxBlobList     []core.Blob
	TxMetadataList []core.Blob
	MultisigTxset  string
	UnsignedTxset  string
}

type sweepAllR struct {
	TxHashList     []hex[Hash]      `json:"tx_hash_list"`
	TxKeyList      []hex[core.Blob] `json:"tx_key_list"`
	AmountList     []Amount         `json:"amount_list"`
	FeeList        []Amount         `json:"fee_list"`
	TxBlobList     []hex[core.Blob] `json:"tx_blob_list"`
	TxMetadataList []hex[core.Blob] `json:"tx_metadata_list"`
	MultisigTxset  string           `json:"multisig_txset"`
	UnsignedTxset  string           `json:"unsigned_txset"`
}

func (r sweepAllR) toSweepAllData() SweepAllData {
	return SweepAllData{
		TxHashList:     core.Unwrap(r.TxHashList),
		TxKeyList:      core.Unwrap(r.TxKeyList),
		AmountList:     r.AmountList,
		FeeList:        r.FeeList,
		TxBlobList:     core.Unwrap(r.TxBlobList),
		TxMetadataList: core.Unwrap(r.TxMetadataList),
		MultisigTxset:  r.MultisigTxset,
		UnsignedTxset:  r.UnsignedTxset,
	}
}

type IncomingTransfer struct {
	Amount       Amount
	GlobalIndex  uint64
	KeyImage     string
	Spent        bool
	SubaddrIndex SubaddressIndex
	TxHash       Hash
	TxSize       uint64
}

type incomingTransferR struct {
	Amount       Amount          `json:"amount"`
	GlobalIndex  uint64          `json:"global_index"`
	KeyImage     string          `json:"key_image"`
	Spent        bool            `json:"spent"`
	SubaddrIndex SubaddressIndex `json:"subaddr_index"`
	TxHash       hex[Hash]       `json:"tx_hash"`
	TxSize       uint64          `json:"tx_size"`
}

type Payment struct {
	PaymentID    PaymentID
	TxHash       Hash
	Amount       Amount
	BlockHeight  uint64
	UnlockTime   uint64
	SubaddrIndex SubaddressIndex
	Address      Address
}

type paymentR struct {
	PaymentID    hex[PaymentID]  `json:"payment_id"`
	TxHash       hex[Hash]       `json:"tx_hash"`
	Amount       Amount          `json:"amount"`
	BlockHeight  uint64          `json:"block_height"`
	UnlockTime   uint64          `json:"unlock_time"`
	SubaddrIndex SubaddressIndex `json:"subaddr_index"`
	Address      Address         `json:"address"`
}

func toPayments(in []paymentR) []Payment {
	out := make([]Payment, 0, len(in))
	for _, p := range in {
		out = append(out, Payment{
			PaymentID:    p.PaymentID.V,
			TxHash:       p.TxHash.V,
			Amount:       p.Amount,
			BlockHeight:  p.BlockHeight,
			UnlockTime:   p.UnlockTime,
			SubaddrIndex: p.SubaddrIndex,
			Address:      p.Address,
		})
	}

	return out
}

// Transfer is one entry of get_transfer / get_transfers.
type Transfer struct {
	Address                         Address
	Amount                          Amount
	Confirmations                   uint64
	DoubleSpendSeen                 bool
	Fee                             Amount
	Height                          TransferHeight
	Note                            string
	PaymentID                       PaymentID
	SubaddrIndex                    SubaddressIndex
	SuggestedConfirmationsThreshold uint64
	Timestamp                       time.Time
	TxID                            Hash
	Type                            TransferCategory
	UnlockTime                      uint64
}

type transferEntryR struct {
	Address                         Address          `json:"address"`
	Amount                          Amount           `json:"amount"`
	Confirmations                   uint64           `json:"confirmations"`
	DoubleSpendSeen                 bool             `json:"double_spend_seen"`
	Fee                             Amount           `json:"fee"`
	Height                          TransferHeight   `json:"height"`
	Note                            string           `json:"note"`
	PaymentID                       hex[PaymentID]   `json:"payment_id"`
	SubaddrIndex                    SubaddressIndex  `json:"subaddr_index"`
	SuggestedConfirmationsThreshold uint64           `json:"suggested_confirmations_threshold"`
	Timestamp                       int64            `json:"timestamp"`
	TxID                            hex[Hash]        `json:"txid"`
	Type                            TransferCategory `json:"type"`
	UnlockTime                      uint64           `json:"unlock_time"`
}

func (r transferEntryR) toTransfer() Transfer {
	return Transfer{
		Address:                         r.Address,
		Amount:                          r.Amount,
		Confirmations:                   r.Confirmations,
		DoubleSpendSeen:                 r.DoubleSpendSeen,
		Fee:                             r.Fee,
		Height:                          r.Height,
		Note:                            r.Note,
		PaymentID:                       r.PaymentID.V,
		SubaddrIndex:                    r.SubaddrIndex,
		SuggestedConfirmationsThreshold: r.SuggestedConfirmationsThreshold,
		Timestamp:                       time.Unix(r.Timestamp, 0).UTC(),
		TxID:                            r.TxID.V,
		Type:                            r.Type,
		UnlockTime:                      r.UnlockTime,
	}
}

// TransfersSelector filters get_transfers. An empty Categories selects
// every category.
type TransfersSelector struct {
	Categories     []TransferCategory
	AccountIndex   uint32
	SubaddrIndices []uint32
	MinHeight      uint64
	MaxHeight      uint64
}

// TxKeyCheck is the result of check_tx_key.
type TxKeyCheck struct {
	Confirmations uint64 `json:"confirmations"`
	InPool        bool   `json:"in_pool"`
	Received      Amount `json:"received"`
}

// SignedKeyImage is exported by export_key_images and consumed by
// import_key_images.
type SignedKeyImage struct {
	KeyImage  KeyImage
	Signature Signature
}

type signedKeyImageR struct {
	KeyImage  hex[KeyImage]  `json:"key_image"`
	Signature hex[Signature] `json:"signature"`
}

type KeyImageImportResult struct {
	Height  uint64 `json:"height"`
	Spent   Amount `json:"spent"`
	Unspent Amount `json:"unspent"`
}

type SignedTransfer struct {
	SignedTxset core.Blob
	TxHashList  []Hash
	TxRawList   []core.Blob
}

type signedTransferR struct {
	SignedTxset hex[core.Blob]   `json:"signed_txset"`
	TxHashList  []hex[Hash]      `json:"tx_hash_list"`
	TxRawList   []hex[core.Blob] `json:"tx_raw_list"`
}

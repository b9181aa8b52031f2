package monero

import (
	"context"

	"github.com/ivanzzeth/monero-jsonrpc-client/core"
)

// codeWrongTxID is returned by wallet get_transfer for a txid the wallet
// does not know.
const codeWrongTxID = -8

// WalletClient calls the JSON-RPC methods of monero-wallet-rpc.
type WalletClient struct {
	c *core.Client
}

func NewWalletClient(c *core.Client) *WalletClient {
	return &WalletClient{c: c}
}

func (w *WalletClient) GetVersion(ctx context.Context) (Version, error) {
	res, err := core.Call[versionR](ctx, w.c, "get_version", core.NoParams())
	if err != nil {
		return Version{}, err
	}

	return unpackVersion(res.Version, res.Release), nil
}

func (w *WalletClient) CreateWallet(ctx context.Context, filename, password, language string) error {
	_, err := core.Call[struct{}](ctx, w.c, "create_wallet", core.Named(
		core.Pair{Name: "filename", Value: filename},
		core.Pair{Name: "password", Value: password},
		core.Pair{Name: "language", Value: language},
	))
	return err
}

func (w *WalletClient) OpenWallet(ctx context.Context, filename, password string) error {
	_, err := core.Call[struct{}](ctx, w.c, "open_wallet", core.Named(
		core.Pair{Name: "filename", Value: filename},
		core.Pair{Name: "password", Value: password},
	))
	return err
}

func (w *WalletClient) CloseWallet(ctx context.Context) error {
	_, err := core.Call[struct{}](ctx, w.c, "close_wallet", core.NoParams())
	return err
}

func (w *WalletClient) GenerateFromKeys(ctx context.Context, args GenerateFromKeysArgs) (WalletCreation, error) {
	pairs := []core.Pair{
		{Name: "restore_height", Value: args.RestoreHeight},
		{Name: "filename", Value: args.Filename},
		{Name: "address", Value: args.Address},
		{Name: "viewkey", Value: core.NewHashString(args.ViewKey)},
		{Name: "password", Value: args.Password},
	}

	if args.SpendKey != nil {
		pairs = append(pairs, core.Pair{Name: "spendkey", Value: core.NewHashString(*args.SpendKey)})
	}

	if args.AutosaveCurrent != nil {
		pairs = append(pairs, core.Pair{Name: "autosave_current", Value: *args.AutosaveCurrent})
	}

	return core.Call[WalletCreation](ctx, w.c, "generate_from_keys", core.Named(pairs...))
}

// GetBalance returns the balance of an account. addressIndices narrows
// PerSubaddress to those subaddresses.
func (w *WalletClient) GetBalance(ctx context.Context, account uint32, addressIndices []uint32) (BalanceData, error) {
	pairs := []core.Pair{{Name: "account_index", Value: account}}
	if addressIndices != nil {
		pairs = append(pairs, core.Pair{Name: "address_indices", Value: addressIndices})
	}

	return core.Call[BalanceData](ctx, w.c, "get_balance", core.Named(pairs...))
}

func (w *WalletClient) GetAddress(ctx context.Context, account uint32, addressIndices []uint32) (AddressData, error) {
	pairs := []core.Pair{{Name: "account_index", Value: account}}
	if addressIndices != nil {
		pairs = append(pairs, core.Pair{Name: "address_index", Value: addressIndices})
	}

	return core.Call[AddressData](ctx, w.c, "get_address", core.Named(pairs...))
}

func (w *WalletClient) GetAddressIndex(ctx context.Context, address Address) (SubaddressIndex, error) {
	res, err := core.Call[struct {
		Index SubaddressIndex `json:"index"`
	}](ctx, w.c, "get_address_index", core.Named(core.Pair{Name: "address", Value: address}))
	if err != nil {
		return SubaddressIndex{}, err
	}

	return res.Index, nil
}

// CreateAddress creates a subaddress in account and returns it with its
// index.
func (w *WalletClient) CreateAddress(ctx context.Context, account uint32, label string) (Address, uint32, error) {
	pairs := []core.Pair{{Name: "account_index", Value: account}}
	if label != "" {
		pairs = append(pairs, core.Pair{Name: "label", Value: label})
	}

	res, err := core.Call[struct {
		Address      Address `json:"address"`
		AddressIndex uint32  `json:"address_index"`
	}](ctx, w.c, "create_address", core.Named(pairs...))
	if err != nil {
		return "", 0, err
	}

	return res.Address, res.AddressIndex, nil
}

func (w *WalletClient) LabelAddress(ctx context.Context, index SubaddressIndex, label string) error {
	_, err := core.Call[struct{}](ctx, w.c, "label_address", core.Named(
		core.Pair{Name: "index", Value: index},
		core.Pair{Name: "label", Value: label},
	))
	return err
}

// GetAccounts lists the accounts, only those tagged with tag when it is set.
func (w *WalletClient) GetAccounts(ctx context.Context, tag string) (AccountsData, error) {
	params := core.NoParams()
	if tag != "" {
		params = core.Named(core.Pair{Name: "tag", Value: tag})
	}

	return core.Call[AccountsData](ctx, w.c, "get_accounts", params)
}

func (w *WalletClient) GetHeight(ctx context.Context) (uint64, error) {
	res, err := core.Call[struct {
		Height uint64 `json:"height"`
	}](ctx, w.c, "get_height", core.NoParams())
	if err != nil {
		return 0, err
	}

	return res.Height, nil
}

// Refresh scans the chain for wallet transactions. A zero startHeight
// resumes from the wallet's own height.
func (w *WalletClient) Refresh(ctx context.Context, startHeight uint64) (RefreshData, error) {
	params := core.NoParams()
	if startHeight > 0 {
		params = core.Named(core.Pair{Name: "start_height", Value: startHeight})
	}

	return core.Call[RefreshData](ctx, w.c, "refresh", params)
}

func (w *WalletClient) QueryKey(ctx context.Context, keyType KeyType) (PrivateKey, error) {
	res, err := core.Call[struct {
		Key hex[PrivateKey] `json:"key"`
	}](ctx, w.c, "query_key", core.Named(core.Pair{Name: "key_type", Value: keyType}))
	if err != nil {
		return PrivateKey{}, err
	}

	return res.Key.V, nil
}

// Transfer sends to destinations. The tx key, blob and metadata are always
// requested so the result can be relayed later when DoNotRelay is set.
func (w *WalletClient) Transfer(ctx context.Context, destinations []Destination, priority TransferPriority, opts TransferOptions) (TransferData, error) {
	pairs := []core.Pair{
		{Name: "destinations", Value: destinations},
		{Name: "priority", Value: priority},
		{Name: "account_index", Value: opts.AccountIndex},
	}

	if opts.SubaddrIndices != nil {
		pairs = append(pairs, core.Pair{Name: "subaddr_indices", Value: opts.SubaddrIndices})
	}
	if opts.Mixin > 0 {
		pairs = append(pairs, core.Pair{Name: "mixin", Value: opts.Mixin})
	}
	if opts.RingSize > 0 {
		pairs = append(pairs, core.Pair{Name: "ring_size", Value: opts.RingSize})
	}
	if opts.UnlockTime > 0 {
		pairs = append(pairs, core.Pair{Name: "unlock_time", Value: opts.UnlockTime})
	}
	if opts.PaymentID != nil {
		pairs = append(pairs, core.Pair{Name: "payment_id", Value: core.NewHashString(*opts.PaymentID)})
	}
	if opts.DoNotRelay {
		pairs = append(pairs, core.Pair{Name: "do_not_relay", Value: true})
	}

	pairs = append(pairs,
		core.Pair{Name: "get_tx_key", Value: true},
		core.Pair{Name: "get_tx_hex", Value: true},
		core.Pair{Name: "get_tx_metadata", Value: true},
	)

	res, err := core.Call[transferR](ctx, w.c, "transfer", core.Named(pairs...))
	if err != nil {
		return TransferData{}, err
	}

	return res.toTransferData(), nil
}

// RelayTx relays a transaction created with DoNotRelay.
func (w *WalletClient) RelayTx(ctx context.Context, txMetadata core.Blob) (Hash, error) {
	res, err := core.Call[struct {
		TxHash hex[Hash] `json:"tx_hash"`
	}](ctx, w.c, "relay_tx", core.Named(core.Pair{Name: "hex", Value: core.NewHashString(txMetadata)}))
	if err != nil {
		return Hash{}, err
	}

	return res.TxHash.V, nil
}

func (w *WalletClient) SweepAll(ctx context.Context, args SweepAllArgs) (SweepAllData, error) {
	pairs := []core.Pair{
		{Name: "address", Value: args.Address},
		{Name: "account_index", Value: args.AccountIndex},
		{Name: "priority", Value: args.Priority},
		{Name: "get_tx_keys", Value: true},
		{Name: "get_tx_hex", Value: true},
		{Name: "get_tx_metadata", Value: true},
	}

	if args.SubaddrIndices != nil {
		pairs = append(pairs, core.Pair{Name: "subaddr_indices", Value: args.SubaddrIndices})
	}
	if args.RingSize > 0 {
		pairs = append(pairs, core.Pair{Name: "ring_size", Value: args.RingSize})
	}
	if args.UnlockTime > 0 {
		pairs = append(pairs, core.Pair{Name: "unlock_time", Value: args.UnlockTime})
	}
	if args.BelowAmount > 0 {
		pairs = append(pairs, core.Pair{Name: "below_amount", Value: args.BelowAmount})
	}
	if args.DoNotRelay {
		pairs = append(pairs, core.Pair{Name: "do_not_relay", Value: true})
	}

	res, err := core.Call[sweepAllR](ctx, w.c, "sweep_all", core.Named(pairs...))
	if err != nil {
		return SweepAllData{}, err
	}

	return res.toSweepAllData(), nil
}

func (w *WalletClient) IncomingTransfers(ctx context.Context, transferType TransferType, account uint32, subaddrIndices []uint32) ([]IncomingTransfer, error) {
	pairs := []core.Pair{
		{Name: "transfer_type", Value: transferType},
		{Name: "account_index", Value: account},
	}
	if subaddrIndices != nil {
		pairs = append(pairs, core.Pair{Name: "subaddr_indices", Value: subaddrIndices})
	}

	res, err := core.Call[struct {
		Transfers []incomingTransferR `json:"transfers"`
	}](ctx, w.c, "incoming_transfers", core.Named(pairs...))
	if err != nil {
		return nil, err
	}

	transfers := make([]IncomingTransfer, 0, len(res.Transfers))
	for _, t := range res.Transfers {
		transfers = append(transfers, IncomingTransfer{
			Amount:       t.Amount,
			GlobalIndex:  t.GlobalIndex,
			KeyImage:     t.KeyImage,
			Spent:        t.Spent,
			SubaddrIndex: t.SubaddrIndex,
			TxHash:       t.TxHash.V,
			TxSize:       t.TxSize,
		})
	}

	return transfers, nil
}

func (w *WalletClient) GetPayments(ctx context.Context, paymentID PaymentID) ([]Payment, error) {
	res, err := core.Call[struct {
		Payments []paymentR `json:"payments"`
	}](ctx, w.c, "get_payments", core.Named(core.Pair{Name: "payment_id", Value: core.NewHashString(paymentID)}))
	if err != nil {
		return nil, err
	}

	return toPayments(res.Payments), nil
}

func (w *WalletClient) GetBulkPayments(ctx context.Context, paymentIDs []PaymentID, minBlockHeight uint64) ([]Payment, error) {
	res, err := core.Call[struct {
		Payments []paymentR `json:"payments"`
	}](ctx, w.c, "get_bulk_payments", core.Named(
		core.Pair{Name: "payment_ids", Value: core.Wrap(paymentIDs)},
		core.Pair{Name: "min_block_height", Value: minBlockHeight},
	))
	if err != nil {
		return nil, err
	}

	return toPayments(res.Payments), nil
}

// GetTransfer looks a transfer up by txid. A txid unknown to the wallet
// yields (nil, nil); this is the one place a node error code is
// interpreted.
func (w *WalletClient) GetTransfer(ctx context.Context, txid Hash, account uint32) (*Transfer, error) {
	res, err := core.Call[struct {
		Transfer transferEntryR `json:"transfer"`
	}](ctx, w.c, "get_transfer_by_txid", core.Named(
		core.Pair{Name: "txid", Value: core.NewHashString(txid)},
		core.Pair{Name: "account_index", Value: account},
	))
	if core.IsApplicationCode(err, codeWrongTxID) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	transfer := res.Transfer.toTransfer()
	return &transfer, nil
}

// GetTransfers returns the transfers of the selected categories, keyed by
// category.
func (w *WalletClient) GetTransfers(ctx context.Context, selector TransfersSelector) (map[TransferCategory][]Transfer, error) {
	categories := selector.Categories
	if len(categories) == 0 {
		categories = []TransferCategory{CategoryIn, CategoryOut, CategoryPending, CategoryFailed, CategoryPool}
	}

	pairs := make([]core.Pair, 0, len(categories)+5)
	for _, category := range categories {
		pairs = append(pairs, core.Pair{Name: string(category), Value: true})
	}

	pairs = append(pairs, core.Pair{Name: "account_index", Value: selector.AccountIndex})

	if selector.SubaddrIndices != nil {
		pairs = append(pairs, core.Pair{Name: "subaddr_indices", Value: selector.SubaddrIndices})
	}

	if selector.MinHeight > 0 || selector.MaxHeight > 0 {
		pairs = append(pairs, core.Pair{Name: "filter_by_height", Value: true})
		if selector.MinHeight > 0 {
			pairs = append(pairs, core.Pair{Name: "min_height", Value: selector.MinHeight})
		}
		if selector.MaxHeight > 0 {
			pairs = append(pairs, core.Pair{Name: "max_height", Value: selector.MaxHeight})
		}
	}

	res, err := core.Call[map[TransferCategory][]transferEntryR](ctx, w.c, "get_transfers", core.Named(pairs...))
	if err != nil {
		return nil, err
	}

	out := make(map[TransferCategory][]Transfer, len(res))
	for category, entries := range res {
		transfers := make([]Transfer, 0, len(entries))
		for _, e := range entries {
			transfers = append(transfers, e.toTransfer())
		}
		out[category] = transfers
	}

	return out, nil
}

func (w *WalletClient) CheckTxKey(ctx context.Context, txid Hash, txKey core.Blob, address Address) (TxKeyCheck, error) {
	return core.Call[TxKeyCheck](ctx, w.c, "check_tx_key", core.Named(
		core.Pair{Name: "txid", Value: core.NewHashString(txid)},
		core.Pair{Name: "tx_key", Value: core.NewHashString(txKey)},
		core.Pair{Name: "address", Value: address},
	))
}

// ExportKeyImages exports the signed key images of the wallet outputs, all
// of them or only those not exported yet.
func (w *WalletClient) ExportKeyImages(ctx context.Context, all bool) ([]SignedKeyImage, error) {
	res, err := core.Call[struct {
		SignedKeyImages []signedKeyImageR `json:"signed_key_images"`
	}](ctx, w.c, "export_key_images", core.Named(core.Pair{Name: "all", Value: all}))
	if err != nil {
		return nil, err
	}

	images := make([]SignedKeyImage, 0, len(res.SignedKeyImages))
	for _, ki := range res.SignedKeyImages {
		images = append(images, SignedKeyImage{KeyImage: ki.KeyImage.V, Signature: ki.Signature.V})
	}

	return images, nil
}

func (w *WalletClient) ImportKeyImages(ctx context.Context, images []SignedKeyImage) (KeyImageImportResult, error) {
	wire := make([]signedKeyImageR, 0, len(images))
	for _, ki := range images {
		wire = append(wire, signedKeyImageR{
			KeyImage:  core.NewHashString(ki.KeyImage),
			Signature: core.NewHashString(ki.Signature),
		})
	}

	return core.Call[KeyImageImportResult](ctx, w.c, "import_key_images", core.Named(
		core.Pair{Name: "signed_key_images", Value: wire},
	))
}

func (w *WalletClient) SignTransfer(ctx context.Context, unsignedTxset core.Blob) (SignedTransfer, error) {
	res, err := core.Call[signedTransferR](ctx, w.c, "sign_transfer", core.Named(
		core.Pair{Name: "unsigned_txset", Value: core.NewHashString(unsignedTxset)},
	))
	if err != nil {
		return SignedTransfer{}, err
	}

	return SignedTransfer{
		SignedTxset: res.SignedTxset.V,
		TxHashList:  core.Unwrap(res.TxHashList),
		TxRawList:   core.Unwrap(res.TxRawList),
	}, nil
}

func (w *WalletClient) SubmitTransfer(ctx context.Context, txData core.Blob) ([]Hash, error) {
	res, err := core.Call[struct {
		TxHashList []hex[Hash] `json:"tx_hash_list"`
	}](ctx, w.c, "submit_transfer", core.Named(
		core.Pair{Name: "tx_data_hex", Value: core.NewHashString(txData)},
	))
	if err != nil {
		return nil, err
	}

	return core.Unwrap(res.TxHashList), nil
}

// Package algorand wraps the Algorand SDK's algod and indexer clients behind
// small interfaces the domain services can be tested against.
package algorand

import (
	"context"
	"errors"
)

// ErrLedger marks failures coming back from the ledger client. The
// certificates domain reports these with their specific message and treats
// everything else as unexpected.
var ErrLedger = errors.New("ledger error")

// ErrIndexer marks failures coming back from the indexing service.
// Callers that only need note recovery degrade gracefully on it.
var ErrIndexer = errors.New("indexer error")

// Asset is a ledger asset as read back from algod or the indexer.
type Asset struct {
	ID     uint64
	Params AssetParams
}

// AssetParams mirrors the on-chain asset configuration fields this service
// reads. MetadataHash carries the raw 32-byte certificate digest.
type AssetParams struct {
	Creator      string
	Name         string
	UnitName     string
	URL          string
	Total        uint64
	Decimals     uint64
	MetadataHash []byte
}

// AcfgTransaction is an asset-configuration transaction returned by the
// indexer. Note is the decoded note payload.
type AcfgTransaction struct {
	ID                string
	CreatedAssetIndex uint64
	Note              []byte
}

// AssetSpec describes the single non-fungible unit to mint. Supply and
// decimals are fixed by the ledger client (1 and 0), not the caller.
type AssetSpec struct {
	UnitName     string
	AssetName    string
	URL          string
	MetadataHash []byte
	Note         []byte
}

// MintReceipt is the result of a confirmed asset creation.
type MintReceipt struct {
	TxID    string
	AssetID uint64
}

// TransactionSearcher is the indexer surface needed to recover a creation
// note. Each domain package defines the rest of the interfaces it consumes.
type TransactionSearcher interface {
	// AssetTransactions returns up to limit asset-configuration transactions
	// touching the asset, most recent first.
	AssetTransactions(ctx context.Context, assetID uint64, limit uint64) ([]AcfgTransaction, error)
}

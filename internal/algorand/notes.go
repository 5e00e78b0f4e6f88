package algorand

import "context"

// creationScanLimit caps how many recent asset-configuration transactions
// are inspected when looking for the creation transaction.
const creationScanLimit = 50

// CreationNote recovers the note payload of the transaction that created the
// asset: the asset-configuration transaction whose created-asset-index equals
// the asset id. Returns nil with no error when the creation transaction or
// its note cannot be found; the error is only for indexer failures.
func CreationNote(ctx context.Context, idx TransactionSearcher, assetID uint64) ([]byte, error) {
	txns, err := idx.AssetTransactions(ctx, assetID, creationScanLimit)
	if err != nil {
		return nil, err
	}
	for _, tx := range txns {
		if tx.CreatedAssetIndex == assetID {
			return tx.Note, nil
		}
	}
	return nil, nil
}

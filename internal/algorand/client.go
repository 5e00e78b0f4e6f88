package algorand

import (
	"context"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/algod"
	"github.com/algorand/go-algorand-sdk/v2/client/v2/common"
	"github.com/algorand/go-algorand-sdk/v2/client/v2/common/models"
	"github.com/algorand/go-algorand-sdk/v2/client/v2/indexer"
	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/transaction"

	"github.com/bishwaschain/poapmint/internal/config"
)

// confirmationRounds bounds the confirmation poll owned by the SDK.
const confirmationRounds = 10

// Client talks to algod and the indexer and signs with the deployer key.
// It implements both Ledger and Indexer.
type Client struct {
	algod   *algod.Client
	indexer *indexer.Client
	signer  *Signer
}

// NewClient builds the algod and indexer clients from configuration and
// derives the signing identity from the deployer mnemonic.
func NewClient(cfg config.AlgorandConfig) (*Client, error) {
	signer, err := NewSigner(cfg.DeployerMnemonic)
	if err != nil {
		return nil, err
	}

	headers := apiHeaders(cfg.APIKey)

	algodClient, err := algod.MakeClientWithHeaders(cfg.AlgodURL, cfg.APIKey, headers)
	if err != nil {
		return nil, fmt.Errorf("creating algod client: %w", err)
	}

	indexerClient, err := indexer.MakeClientWithHeaders(cfg.IndexerURL, cfg.APIKey, headers)
	if err != nil {
		return nil, fmt.Errorf("creating indexer client: %w", err)
	}

	return &Client{
		algod:   algodClient,
		indexer: indexerClient,
		signer:  signer,
	}, nil
}

func apiHeaders(apiKey string) []*common.Header {
	if apiKey == "" {
		return nil
	}
	return []*common.Header{{Key: "X-API-Key", Value: apiKey}}
}

// Signer returns the service's signing identity.
func (c *Client) Signer() *Signer {
	return c.signer
}

// AssetInfo fetches current on-chain parameters for an asset.
func (c *Client) AssetInfo(ctx context.Context, assetID uint64) (Asset, error) {
	info, err := c.algod.GetAssetByID(assetID).Do(ctx)
	if err != nil {
		return Asset{}, fmt.Errorf("%w: fetching asset %d: %v", ErrLedger, assetID, err)
	}
	return fromModelAsset(info), nil
}

// CreateAsset builds an asset-configuration transaction for a single
// indivisible unit, signs it with the deployer key, submits it and blocks
// until the ledger confirms, then reads back the assigned asset id.
func (c *Client) CreateAsset(ctx context.Context, spec AssetSpec) (*MintReceipt, error) {
	sp, err := c.algod.SuggestedParams().Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching suggested params: %v", ErrLedger, err)
	}

	deployer := c.signer.address
	txn, err := transaction.MakeAssetCreateTxn(
		deployer,
		spec.Note,
		sp,
		1,     // total: single unit
		0,     // decimals: indivisible
		false, // defaultFrozen
		deployer, deployer, deployer, deployer, // manager, reserve, freeze, clawback
		spec.UnitName,
		spec.AssetName,
		spec.URL,
		string(spec.MetadataHash),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: building asset txn: %v", ErrLedger, err)
	}

	txID, stx, err := crypto.SignTransaction(c.signer.sk, txn)
	if err != nil {
		return nil, fmt.Errorf("%w: signing asset txn: %v", ErrLedger, err)
	}

	if _, err := c.algod.SendRawTransaction(stx).Do(ctx); err != nil {
		return nil, fmt.Errorf("%w: submitting asset txn: %v", ErrLedger, err)
	}

	confirmed, err := transaction.WaitForConfirmation(c.algod, txID, confirmationRounds, ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: waiting for confirmation of %s: %v", ErrLedger, txID, err)
	}
	if confirmed.AssetIndex == 0 {
		return nil, fmt.Errorf("%w: transaction %s confirmed without an asset index", ErrLedger, txID)
	}

	return &MintReceipt{TxID: txID, AssetID: confirmed.AssetIndex}, nil
}

// AssetTransactions returns up to limit asset-configuration transactions for
// the asset from the indexer.
func (c *Client) AssetTransactions(ctx context.Context, assetID uint64, limit uint64) ([]AcfgTransaction, error) {
	resp, err := c.indexer.LookupAssetTransactions(assetID).TxType("acfg").Limit(limit).Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: searching transactions for asset %d: %v", ErrIndexer, assetID, err)
	}

	txns := make([]AcfgTransaction, 0, len(resp.Transactions))
	for _, tx := range resp.Transactions {
		txns = append(txns, AcfgTransaction{
			ID:                tx.Id,
			CreatedAssetIndex: tx.CreatedAssetIndex,
			Note:              tx.Note,
		})
	}
	return txns, nil
}

// AssetsByCreator returns one page of assets created by the address.
func (c *Client) AssetsByCreator(ctx context.Context, creator string, limit uint64, next string) ([]Asset, string, error) {
	query := c.indexer.SearchForAssets().Creator(creator).Limit(limit)
	if next != "" {
		query = query.NextToken(next)
	}
	resp, err := query.Do(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("%w: searching assets by creator: %v", ErrIndexer, err)
	}

	assets := make([]Asset, 0, len(resp.Assets))
	for _, a := range resp.Assets {
		assets = append(assets, fromModelAsset(a))
	}
	return assets, resp.NextToken, nil
}

func fromModelAsset(a models.Asset) Asset {
	return Asset{
		ID: a.Index,
		Params: AssetParams{
			Creator:      a.Params.Creator,
			Name:         a.Params.Name,
			UnitName:     a.Params.UnitName,
			URL:          a.Params.Url,
			Total:        a.Params.Total,
			Decimals:     a.Params.Decimals,
			MetadataHash: a.Params.MetadataHash,
		},
	}
}

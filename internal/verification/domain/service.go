// Package domain contains the business logic for POAP asset verification.
package domain

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bishwaschain/poapmint/internal/algorand"
	"github.com/bishwaschain/poapmint/internal/certmeta"
	"github.com/bishwaschain/poapmint/internal/validation"
)

// AssetReader defines the ledger operations needed by the verification domain.
type AssetReader interface {
	AssetInfo(ctx context.Context, assetID uint64) (algorand.Asset, error)
}

type service struct {
	ledger  AssetReader
	indexer algorand.TransactionSearcher
	creator string
	logger  *slog.Logger
}

// NewService creates a verification service. creator is the service's fixed
// signing identity every valid POAP must have been created by.
func NewService(ledger AssetReader, indexer algorand.TransactionSearcher, creator string, logger *slog.Logger) *service {
	return &service{
		ledger:  ledger,
		indexer: indexer,
		creator: creator,
		logger:  logger,
	}
}

// Verify fetches the live on-chain asset, evaluates the four structural
// rules and attempts to recover the creation note. Indexer unavailability
// degrades to a nil note; a ledger fetch failure fails the call.
func (s *service) Verify(ctx context.Context, assetID uint64) (*Result, error) {
	if err := validation.ValidateAssetID(assetID); err != nil {
		return nil, err
	}

	asset, err := s.ledger.AssetInfo(ctx, assetID)
	if err != nil {
		return nil, fmt.Errorf("fetching asset info: %w", err)
	}

	checks := s.structuralChecks(asset.Params)
	result := &Result{
		AssetID:      assetID,
		AssetInfo:    toAssetInfo(asset.Params),
		Checks:       checks,
		NoteContent:  s.recoverNote(ctx, assetID),
		OverallValid: checks.AllPass(),
	}
	return result, nil
}

// VerifyMany verifies each asset id independently and sequentially,
// preserving input order. One failing id never aborts the batch.
func (s *service) VerifyMany(ctx context.Context, assetIDs []uint64) []Outcome {
	outcomes := make([]Outcome, 0, len(assetIDs))
	for _, id := range assetIDs {
		result, err := s.Verify(ctx, id)
		outcomes = append(outcomes, Outcome{AssetID: id, Result: result, Err: err})
	}
	return outcomes
}

func (s *service) structuralChecks(p algorand.AssetParams) Checks {
	return Checks{
		IsNFT:             p.Total == 1 && p.Decimals == 0,
		CorrectUnitName:   p.UnitName == certmeta.UnitName,
		CorrectNameFormat: strings.Contains(p.Name, certmeta.UnitName),
		CorrectCreator:    p.Creator == s.creator,
	}
}

// recoverNote returns the decoded metadata, the raw note text when parsing
// fails, or nil when no note is recoverable. Indexer failures are logged
// and reported as an absent note so the structural checks still stand.
func (s *service) recoverNote(ctx context.Context, assetID uint64) any {
	note, err := algorand.CreationNote(ctx, s.indexer, assetID)
	if err != nil {
		s.logger.Warn("note recovery unavailable", "asset_id", assetID, "error", err)
		return nil
	}
	if len(note) == 0 {
		return nil
	}
	meta, raw := certmeta.DecodeNote(note)
	if meta != nil {
		return meta
	}
	return raw
}

func toAssetInfo(p algorand.AssetParams) AssetInfo {
	info := AssetInfo{
		Creator:  p.Creator,
		Name:     p.Name,
		UnitName: p.UnitName,
		URL:      p.URL,
		Total:    p.Total,
		Decimals: p.Decimals,
	}
	if len(p.MetadataHash) > 0 {
		info.MetadataHash = hex.EncodeToString(p.MetadataHash)
	}
	return info
}

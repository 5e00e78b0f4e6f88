package domain

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bishwaschain/poapmint/internal/algorand"
	"github.com/bishwaschain/poapmint/internal/certmeta"
	"github.com/bishwaschain/poapmint/internal/validation"
)

// ErrExtraction wraps any failure to fetch the asset; the transport maps it
// to a not-found response carrying the underlying message.
var ErrExtraction = errors.New("certificate extraction failed")

// AssetReader defines the ledger operations needed by the certificates domain.
type AssetReader interface {
	AssetInfo(ctx context.Context, assetID uint64) (algorand.Asset, error)
}

type service struct {
	ledger  AssetReader
	indexer algorand.TransactionSearcher
	logger  *slog.Logger
}

// NewService creates a certificate extraction service.
func NewService(ledger AssetReader, indexer algorand.TransactionSearcher, logger *slog.Logger) *service {
	return &service{ledger: ledger, indexer: indexer, logger: logger}
}

// Get re-derives human-readable certificate details from the live asset
// parameters and the creation-transaction note. Ledger failures keep their
// specific message; anything else is reported as an unexpected error. Note
// recovery failures degrade to sentinel values, never to a failed call.
func (s *service) Get(ctx context.Context, assetID uint64) (*Certificate, error) {
	if err := validation.ValidateAssetID(assetID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	asset, err := s.ledger.AssetInfo(ctx, assetID)
	if err != nil {
		if errors.Is(err, algorand.ErrLedger) {
			return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
		}
		return nil, fmt.Errorf("%w: unexpected error: %v", ErrExtraction, err)
	}

	cert := &Certificate{
		Success: true,
		AssetID: assetID,
		Details: sentinelDetails(),
		AssetInfo: BasicInfo{
			Name:     asset.Params.Name,
			Creator:  asset.Params.Creator,
			URL:      asset.Params.URL,
			UnitName: asset.Params.UnitName,
		},
	}

	if len(asset.Params.MetadataHash) > 0 {
		cert.CertificateHash = hex.EncodeToString(asset.Params.MetadataHash)
	}

	if meta := s.recoverMetadata(ctx, assetID); meta != nil {
		cert.FullMetadata = meta
		cert.Details = Details{
			Event:          orSentinel(meta.Event),
			Organizer:      orSentinel(meta.Organizer),
			Date:           orSentinel(meta.Date),
			RecipientName:  orSentinel(meta.RecipientName),
			RecipientEmail: orSentinel(meta.RecipientEmail),
			Version:        meta.Version,
			Type:           meta.Type,
		}
	}

	return cert, nil
}

// recoverMetadata returns parsed note metadata or nil; unlike the verifier
// this path never surfaces raw note text.
func (s *service) recoverMetadata(ctx context.Context, assetID uint64) *certmeta.Metadata {
	note, err := algorand.CreationNote(ctx, s.indexer, assetID)
	if err != nil {
		s.logger.Warn("note recovery unavailable", "asset_id", assetID, "error", err)
		return nil
	}
	meta, _ := certmeta.DecodeNote(note)
	return meta
}

func sentinelDetails() Details {
	return Details{
		Event:          Sentinel,
		Organizer:      Sentinel,
		Date:           Sentinel,
		RecipientName:  Sentinel,
		RecipientEmail: Sentinel,
	}
}

func orSentinel(s string) string {
	if s == "" {
		return Sentinel
	}
	return s
}

// Package domain implements reverse lookup: finding the asset whose
// binary digest field matches a given certificate hash by scanning the
// service identity's created assets.
package domain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bishwaschain/poapmint/internal/algorand"
	"github.com/bishwaschain/poapmint/internal/certmeta"
	"github.com/bishwaschain/poapmint/internal/validation"
)

// ErrNotFound is returned when no created asset carries the hash.
var ErrNotFound = errors.New("no asset matches certificate hash")

// ErrScanLimit is returned when the bounded scan ends before the
// creator's asset list is exhausted.
var ErrScanLimit = errors.New("asset scan limit reached")

const (
	pageSize      = 100
	maxScanAssets = 1000
)

// AssetScanner pages through assets created by one address.
type AssetScanner interface {
	AssetsByCreator(ctx context.Context, creator string, limit uint64, next string) ([]algorand.Asset, string, error)
}

// Result identifies the asset matching a certificate hash.
type Result struct {
	Success         bool   `json:"success"`
	AssetID         uint64 `json:"asset_id"`
	AssetName       string `json:"asset_name"`
	CertificateHash string `json:"certificate_hash"`
	ScannedAssets   int    `json:"scanned_assets"`
}

type service struct {
	scanner AssetScanner
	creator string
	logger  *slog.Logger
}

// NewService creates a lookup service scanning assets created by creator.
func NewService(scanner AssetScanner, creator string, logger *slog.Logger) *service {
	return &service{scanner: scanner, creator: creator, logger: logger}
}

// FindByHash linearly scans the creator's assets for one whose binary
// digest field equals the given hex digest. The scan inspects at most
// maxScanAssets assets.
func (s *service) FindByHash(ctx context.Context, digest string) (*Result, error) {
	if err := validation.ValidateHexDigest(digest); err != nil {
		return nil, err
	}
	want, err := certmeta.HashBytes(digest)
	if err != nil {
		return nil, err
	}

	scanned := 0
	next := ""
	for {
		assets, nextToken, err := s.scanner.AssetsByCreator(ctx, s.creator, pageSize, next)
		if err != nil {
			return nil, fmt.Errorf("scanning creator assets: %w", err)
		}

		for _, a := range assets {
			if scanned >= maxScanAssets {
				return nil, fmt.Errorf("%w: inspected %d assets", ErrScanLimit, scanned)
			}
			scanned++
			if bytes.Equal(a.Params.MetadataHash, want) {
				s.logger.Info("asset found by hash", "asset_id", a.ID, "scanned", scanned)
				return &Result{
					Success:         true,
					AssetID:         a.ID,
					AssetName:       a.Params.Name,
					CertificateHash: digest,
					ScannedAssets:   scanned,
				}, nil
			}
		}

		// an exhausted list is a miss even when it ends exactly at the cap
		if nextToken == "" {
			return nil, fmt.Errorf("%w: inspected %d assets", ErrNotFound, scanned)
		}
		if scanned >= maxScanAssets {
			return nil, fmt.Errorf("%w: inspected %d assets", ErrScanLimit, scanned)
		}
		next = nextToken
	}
}

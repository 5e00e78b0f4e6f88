package domain

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bishwaschain/poapmint/internal/algorand"
	"github.com/bishwaschain/poapmint/internal/certmeta"
)

const deployer = "DEPLOYER7ADDRESS"

type mockScanner struct {
	pages [][]algorand.Asset
	calls int
	err   error
}

func (m *mockScanner) AssetsByCreator(ctx context.Context, creator string, limit uint64, next string) ([]algorand.Asset, string, error) {
	if m.err != nil {
		return nil, "", m.err
	}
	if m.calls >= len(m.pages) {
		return nil, "", nil
	}
	page := m.pages[m.calls]
	m.calls++
	token := ""
	if m.calls < len(m.pages) {
		token = "next"
	}
	return page, token, nil
}

func hashFor(t *testing.T, content string) (string, []byte) {
	t.Helper()
	digest := certmeta.Digest([]byte(content))
	raw, err := certmeta.HashBytes(digest)
	require.NoError(t, err)
	return digest, raw
}

func asset(id uint64, metadataHash []byte) algorand.Asset {
	return algorand.Asset{
		ID: id,
		Params: algorand.AssetParams{
			Creator:      deployer,
			Name:         "POAP: Event",
			UnitName:     "POAP",
			Total:        1,
			MetadataHash: metadataHash,
		},
	}
}

func newService(scanner *mockScanner) *service {
	return NewService(scanner, deployer, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestFindByHash_MatchOnSecondPage(t *testing.T) {
	digest, raw := hashFor(t, "wanted")
	_, other := hashFor(t, "other")

	scanner := &mockScanner{pages: [][]algorand.Asset{
		{asset(1, other), asset(2, other)},
		{asset(3, other), asset(4, raw)},
	}}

	res, err := newService(scanner).FindByHash(context.Background(), digest)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, uint64(4), res.AssetID)
	assert.Equal(t, digest, res.CertificateHash)
	assert.Equal(t, 4, res.ScannedAssets)
	assert.Equal(t, 2, scanner.calls)
}

func TestFindByHash_NotFound(t *testing.T) {
	digest, _ := hashFor(t, "wanted")
	_, other := hashFor(t, "other")

	scanner := &mockScanner{pages: [][]algorand.Asset{{asset(1, other)}}}

	res, err := newService(scanner).FindByHash(context.Background(), digest)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindByHash_ScanBound(t *testing.T) {
	digest, _ := hashFor(t, "wanted")
	_, other := hashFor(t, "other")

	page := make([]algorand.Asset, 0, maxScanAssets)
	for i := 0; i < maxScanAssets; i++ {
		page = append(page, asset(uint64(i+1), other))
	}
	scanner := &mockScanner{pages: [][]algorand.Asset{page, {asset(9999, other)}}}

	res, err := newService(scanner).FindByHash(context.Background(), digest)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrScanLimit)
	assert.Equal(t, 1, scanner.calls)
}

func TestFindByHash_ExhaustedAtBoundIsNotFound(t *testing.T) {
	digest, _ := hashFor(t, "wanted")
	_, other := hashFor(t, "other")

	// the creator owns exactly maxScanAssets assets and none match
	page := make([]algorand.Asset, 0, maxScanAssets)
	for i := 0; i < maxScanAssets; i++ {
		page = append(page, asset(uint64(i+1), other))
	}
	scanner := &mockScanner{pages: [][]algorand.Asset{page}}

	res, err := newService(scanner).FindByHash(context.Background(), digest)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindByHash_InvalidDigest(t *testing.T) {
	res, err := newService(&mockScanner{}).FindByHash(context.Background(), "zzzz")
	assert.Nil(t, res)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestFindByHash_IndexerError(t *testing.T) {
	digest, _ := hashFor(t, "wanted")
	scanner := &mockScanner{err: fmt.Errorf("%w: indexer down", algorand.ErrIndexer)}

	res, err := newService(scanner).FindByHash(context.Background(), digest)
	assert.Nil(t, res)
	assert.Contains(t, err.Error(), "indexer down")
	// the sentinel must survive the wrap so transport can map it
	assert.ErrorIs(t, err, algorand.ErrIndexer)
}

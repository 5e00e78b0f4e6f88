package domain

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bishwaschain/poapmint/internal/algorand"
	"github.com/bishwaschain/poapmint/internal/certmeta"
	"github.com/bishwaschain/poapmint/internal/notify"
)

type mockMinter struct {
	spec    algorand.AssetSpec
	receipt *algorand.MintReceipt
	err     error
}

func (m *mockMinter) CreateAsset(ctx context.Context, spec algorand.AssetSpec) (*algorand.MintReceipt, error) {
	m.spec = spec
	if m.err != nil {
		return nil, m.err
	}
	return m.receipt, nil
}

type mockNotifier struct {
	delivery    notify.Delivery
	called      bool
	sent        bool
	qrExisted   bool
	certExisted bool
}

func (m *mockNotifier) Send(ctx context.Context, d notify.Delivery) bool {
	m.called = true
	m.delivery = d
	_, qrErr := os.Stat(d.QRPath)
	_, certErr := os.Stat(d.CertificatePath)
	m.qrExisted = qrErr == nil
	m.certExisted = certErr == nil
	return m.sent
}

func validRequest() Request {
	return Request{
		Event:          "GopherCon 2026",
		Organizer:      "Gopher Org",
		Date:           "2026-08-15",
		RecipientName:  "Ada Lovelace",
		RecipientEmail: "ada@example.com",
		FileName:       "certificate.pdf",
		ContentType:    "application/pdf",
		FileContent:    []byte("certificate body"),
	}
}

func newService(t *testing.T, minter *mockMinter, notifier *mockNotifier) *service {
	t.Helper()
	return NewService(minter, notifier, t.TempDir(), "https://poap.bishwaschain.io/poap", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestMint_Success(t *testing.T) {
	minter := &mockMinter{receipt: &algorand.MintReceipt{TxID: "TX123", AssetID: 777}}
	notifier := &mockNotifier{sent: true}
	svc := newService(t, minter, notifier)

	res, err := svc.Mint(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, uint64(777), res.AssetID)
	assert.Equal(t, "TX123", res.TransactionID)
	assert.Equal(t, certmeta.Digest([]byte("certificate body")), res.CertificateHash)
	assert.True(t, res.EmailSent)

	assert.Equal(t, "POAP", minter.spec.UnitName)
	assert.Equal(t, "POAP: GopherCon 2026", minter.spec.AssetName)
	assert.Equal(t, "https://poap.bishwaschain.io/poap/"+res.CertificateHash, minter.spec.URL)
	assert.Len(t, minter.spec.MetadataHash, 32)

	meta, raw := certmeta.DecodeNote(minter.spec.Note)
	require.NotNil(t, meta, "note did not decode: %s", raw)
	assert.Equal(t, "GopherCon 2026", meta.Event)
	assert.Equal(t, res.CertificateHash, meta.CertificateHash)
	assert.Equal(t, certmeta.Version, meta.Version)
	assert.Equal(t, "application/pdf", meta.Type)
}

func TestMint_SanitizesSmartPunctuation(t *testing.T) {
	minter := &mockMinter{receipt: &algorand.MintReceipt{TxID: "TX1", AssetID: 1}}
	svc := newService(t, minter, &mockNotifier{})

	req := validRequest()
	req.Event = "Café “Launch” — Night"

	res, err := svc.Mint(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Café \"Launch\" - Night", res.Details.Event)
	assert.Equal(t, "POAP: Café \"Launch\" - Night", minter.spec.AssetName)
}

func TestMint_EmailFailureDoesNotFailMint(t *testing.T) {
	minter := &mockMinter{receipt: &algorand.MintReceipt{TxID: "TX1", AssetID: 5}}
	notifier := &mockNotifier{sent: false}
	svc := newService(t, minter, notifier)

	res, err := svc.Mint(context.Background(), validRequest())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.False(t, res.EmailSent)
	assert.True(t, notifier.called)
}

func TestMint_ScratchFilesPresentDuringSend(t *testing.T) {
	minter := &mockMinter{receipt: &algorand.MintReceipt{TxID: "TX1", AssetID: 9}}
	notifier := &mockNotifier{sent: true}
	svc := newService(t, minter, notifier)

	_, err := svc.Mint(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, notifier.qrExisted)
	assert.True(t, notifier.certExisted)
	assert.Equal(t, "ada@example.com", notifier.delivery.To)
	assert.Equal(t, uint64(9), notifier.delivery.AssetID)

	// The per-request scratch directory is removed after delivery.
	_, statErr := os.Stat(notifier.delivery.QRPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestMint_LedgerErrorWrapped(t *testing.T) {
	minter := &mockMinter{err: errors.New("overspend")}
	notifier := &mockNotifier{}
	svc := newService(t, minter, notifier)

	res, err := svc.Mint(context.Background(), validRequest())
	assert.Nil(t, res)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMint)
	assert.Contains(t, err.Error(), "overspend")
	assert.False(t, notifier.called)
}

func TestMint_InvalidEmailRejected(t *testing.T) {
	svc := newService(t, &mockMinter{}, &mockNotifier{})

	req := validRequest()
	req.RecipientEmail = "not-an-email"

	_, err := svc.Mint(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMint_OversizedNoteRejected(t *testing.T) {
	svc := newService(t, &mockMinter{}, &mockNotifier{})

	req := validRequest()
	req.Event = strings.Repeat("a", 250)
	req.Organizer = strings.Repeat("b", 250)
	req.Date = strings.Repeat("c", 250)
	req.RecipientName = strings.Repeat("d", 250)

	_, err := svc.Mint(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, certmeta.ErrNoteTooLarge)
}

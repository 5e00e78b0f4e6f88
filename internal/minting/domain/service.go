// Package domain implements the asset minting orchestrator: it turns an
// uploaded certificate file plus event details into a confirmed ledger
// asset, then attempts recipient notification.
package domain

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/bishwaschain/poapmint/internal/algorand"
	"github.com/bishwaschain/poapmint/internal/certmeta"
	"github.com/bishwaschain/poapmint/internal/notify"
	"github.com/bishwaschain/poapmint/internal/qr"
	"github.com/bishwaschain/poapmint/internal/validation"
)

// ErrMint wraps any failure on the submission path. The asset either
// exists on the ledger or it does not; there is no partial state to
// clean up after a failed call.
var ErrMint = errors.New("mint failed")

// ErrInvalidInput wraps form validation failures.
var ErrInvalidInput = errors.New("invalid mint input")

// AssetMinter submits a signed asset-configuration transaction and
// blocks until the ledger confirms it.
type AssetMinter interface {
	CreateAsset(ctx context.Context, spec algorand.AssetSpec) (*algorand.MintReceipt, error)
}

// Notifier delivers the certificate email. Implementations report
// success as a flag and never fail the caller.
type Notifier interface {
	Send(ctx context.Context, d notify.Delivery) bool
}

type service struct {
	minter      AssetMinter
	notifier    Notifier
	scratchDir  string
	certURLBase string
	logger      *slog.Logger
}

// NewService creates a minting service.
func NewService(minter AssetMinter, notifier Notifier, scratchDir, certURLBase string, logger *slog.Logger) *service {
	return &service{
		minter:      minter,
		notifier:    notifier,
		scratchDir:  scratchDir,
		certURLBase: certURLBase,
		logger:      logger,
	}
}

// Mint hashes the uploaded file, embeds the certificate metadata in an
// asset-configuration transaction, and waits for ledger confirmation.
// Notification failure is reduced to EmailSent=false on the result.
func (s *service) Mint(ctx context.Context, req Request) (*Result, error) {
	if err := s.validate(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	hash := certmeta.Digest(req.FileContent)

	meta := certmeta.Metadata{
		Event:           certmeta.Sanitize(req.Event),
		Organizer:       certmeta.Sanitize(req.Organizer),
		Date:            certmeta.Sanitize(req.Date),
		RecipientName:   certmeta.Sanitize(req.RecipientName),
		RecipientEmail:  req.RecipientEmail,
		CertificateHash: hash,
		Version:         certmeta.Version,
		Type:            req.ContentType,
	}

	note, err := certmeta.EncodeNote(meta)
	if err != nil {
		return nil, err
	}

	hashBytes, err := certmeta.HashBytes(hash)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMint, err)
	}

	// The note JSON and the binary digest field travel separately on
	// the transaction; both must carry the same hash.
	if decoded, _ := certmeta.DecodeNote(note); decoded == nil || decoded.CertificateHash != hex.EncodeToString(hashBytes) {
		return nil, fmt.Errorf("%w: note and digest field disagree", ErrMint)
	}

	receipt, err := s.minter.CreateAsset(ctx, algorand.AssetSpec{
		UnitName:     certmeta.UnitName,
		AssetName:    certmeta.AssetNamePrefix + meta.Event,
		URL:          s.certURLBase + "/" + hash,
		MetadataHash: hashBytes,
		Note:         note,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMint, err)
	}

	s.logger.Info("asset minted",
		"asset_id", receipt.AssetID,
		"tx_id", receipt.TxID,
		"event", meta.Event)

	emailSent := s.deliver(ctx, req, receipt)

	return &Result{
		Success:         true,
		AssetID:         receipt.AssetID,
		TransactionID:   receipt.TxID,
		CertificateHash: hash,
		Details:         meta,
		EmailSent:       emailSent,
	}, nil
}

func (s *service) validate(req Request) error {
	if err := validation.ValidateField("event", req.Event); err != nil {
		return err
	}
	if err := validation.ValidateField("organizer", req.Organizer); err != nil {
		return err
	}
	if err := validation.ValidateField("date", req.Date); err != nil {
		return err
	}
	if err := validation.ValidateField("recipient_name", req.RecipientName); err != nil {
		return err
	}
	if err := validation.ValidateEmail(req.RecipientEmail); err != nil {
		return err
	}
	return validation.ValidateFile(req.FileName, len(req.FileContent))
}

// deliver writes the uploaded file and a QR image to a per-request
// scratch directory, sends the notification, and removes the directory.
func (s *service) deliver(ctx context.Context, req Request, receipt *algorand.MintReceipt) bool {
	dir := filepath.Join(s.scratchDir, uuid.NewString())
	if err := os.MkdirAll(dir, 0o700); err != nil {
		s.logger.Warn("scratch dir creation failed, skipping notification", "error", err)
		return false
	}
	defer os.RemoveAll(dir)

	certPath := filepath.Join(dir, req.FileName)
	if err := os.WriteFile(certPath, req.FileContent, 0o600); err != nil {
		s.logger.Warn("certificate scratch write failed, skipping notification", "error", err)
		return false
	}

	png, err := qr.ForAsset(receipt.AssetID)
	if err != nil {
		s.logger.Warn("qr generation failed, skipping notification", "error", err)
		return false
	}
	qrPath := filepath.Join(dir, fmt.Sprintf("qr_%d.png", receipt.AssetID))
	if err := os.WriteFile(qrPath, png, 0o600); err != nil {
		s.logger.Warn("qr scratch write failed, skipping notification", "error", err)
		return false
	}

	return s.notifier.Send(ctx, notify.Delivery{
		To:              req.RecipientEmail,
		TxID:            receipt.TxID,
		AssetID:         receipt.AssetID,
		QRPath:          qrPath,
		CertificatePath: certPath,
	})
}

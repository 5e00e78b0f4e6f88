// Package notify delivers certificate emails through an authenticated SMTP
// relay. Delivery is best-effort: failures are logged and reduced to a
// boolean so they never fail the enclosing mint.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"

	"github.com/wneessen/go-mail"

	"github.com/bishwaschain/poapmint/internal/certmeta"
	"github.com/bishwaschain/poapmint/internal/config"
	"github.com/bishwaschain/poapmint/internal/observability/metrics"
)

const fallbackContentType = "application/octet-stream"

// Delivery describes one certificate notification.
type Delivery struct {
	To              string
	TxID            string
	AssetID         uint64
	QRPath          string
	CertificatePath string
}

// Sender composes and sends certificate emails.
type Sender struct {
	cfg         config.MailConfig
	explorerURL string
	logger      *slog.Logger

	// sendFn performs one delivery attempt; swapped out in tests
	sendFn func(ctx context.Context, d Delivery, ascii bool) error
}

// NewSender creates a Sender. explorerURL is the block explorer base used in
// the email body.
func NewSender(cfg config.MailConfig, explorerURL string, logger *slog.Logger) *Sender {
	s := &Sender{cfg: cfg, explorerURL: explorerURL, logger: logger}
	s.sendFn = s.send
	return s
}

// Configured reports whether the relay has credentials.
func (s *Sender) Configured() bool {
	return s.cfg.Configured()
}

// Send attempts delivery and reports success. Missing credentials skip
// silently. A Unicode-encoding failure triggers one retry with an ASCII-only
// subject and body, still carrying both attachments. No error escapes.
func (s *Sender) Send(ctx context.Context, d Delivery) bool {
	if !s.cfg.Configured() {
		s.logger.Warn("mail credentials missing, skipping notification", "asset_id", d.AssetID)
		metrics.Email("skipped")
		return false
	}

	if err := s.sendFn(ctx, d, false); err != nil {
		if isEncodingErr(err) {
			s.logger.Warn("unicode encoding failed, retrying with ASCII message",
				"asset_id", d.AssetID, "error", err)
			if retryErr := s.sendFn(ctx, d, true); retryErr != nil {
				s.logger.Error("notification failed after ASCII retry",
					"asset_id", d.AssetID, "to", d.To, "error", retryErr)
				metrics.Email("failed")
				return false
			}
		} else {
			s.logger.Error("notification failed", "asset_id", d.AssetID, "to", d.To, "error", err)
			metrics.Email("failed")
			return false
		}
	}

	s.logger.Info("certificate email sent", "asset_id", d.AssetID, "to", d.To)
	metrics.Email("sent")
	return true
}

func (s *Sender) send(ctx context.Context, d Delivery, ascii bool) error {
	msg, err := s.compose(d, ascii)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(s.cfg.Host,
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.User),
		mail.WithPassword(s.cfg.Pass),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("creating SMTP client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending message: %w", err)
	}
	return nil
}

func (s *Sender) compose(d Delivery, ascii bool) (*mail.Msg, error) {
	subject := "Your POAP Certificate \U0001F389"
	body := s.body(d)
	msg := mail.NewMsg()

	if ascii {
		subject = toASCII("Your POAP Certificate")
		body = toASCII(body)
		msg.SetCharset(mail.CharsetASCII)
	}

	if err := msg.From(s.cfg.From); err != nil {
		return nil, fmt.Errorf("setting sender: %w", err)
	}
	if err := msg.To(d.To); err != nil {
		return nil, fmt.Errorf("setting recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	msg.AttachFile(d.QRPath,
		mail.WithFileName(fmt.Sprintf("qr_%d.png", d.AssetID)),
		mail.WithFileContentType("image/png"),
	)
	msg.AttachFile(d.CertificatePath,
		mail.WithFileName(filepath.Base(d.CertificatePath)),
		mail.WithFileContentType(mail.ContentType(guessContentType(d.CertificatePath))),
	)

	return msg, nil
}

func (s *Sender) body(d Delivery) string {
	return fmt.Sprintf(`Congratulations!

Your POAP NFT certificate has been generated.

Transaction ID: %s
Asset ID: %d

Please find your certificate and QR code attached.

You can look it up on the explorer:

%s/asset/%d

Regards,
BishwasChain
`, d.TxID, d.AssetID, s.explorerURL, d.AssetID)
}

// guessContentType guesses the MIME type from the file extension, defaulting
// to an opaque binary type when unknown.
func guessContentType(path string) string {
	ct := mime.TypeByExtension(filepath.Ext(path))
	if ct == "" {
		return fallbackContentType
	}
	// AttachFile sets the full header itself; keep only the media type
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return ct
}

// toASCII maps smart punctuation to ASCII and drops anything left outside
// the 7-bit range (emoji included).
func toASCII(s string) string {
	s = certmeta.Sanitize(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// isEncodingErr classifies errors that stem from message encoding rather
// than the SMTP conversation.
func isEncodingErr(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"charset", "encod", "invalid character", "non-ascii"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bishwaschain/poapmint/internal/config"
	"github.com/bishwaschain/poapmint/internal/observability/metrics"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func configuredMail() config.MailConfig {
	return config.MailConfig{
		Host: "smtp.example.com",
		Port: 587,
		User: "mailer",
		Pass: "secret",
		From: "certs@example.com",
	}
}

func TestSend_SkipsWithoutCredentials(t *testing.T) {
	sender := NewSender(config.MailConfig{}, "https://testnet.explorer.perawallet.app", discardLogger())

	sent := sender.Send(context.Background(), Delivery{
		To:      "ada@example.com",
		AssetID: 42,
	})

	assert.False(t, sent)
	assert.False(t, sender.Configured())
}

func TestSend_RetriesOnceWithASCII(t *testing.T) {
	sender := NewSender(configuredMail(), "https://testnet.explorer.perawallet.app", discardLogger())

	var attempts []bool
	sender.sendFn = func(_ context.Context, _ Delivery, ascii bool) error {
		attempts = append(attempts, ascii)
		if !ascii {
			return errors.New("mail: unsupported charset for body")
		}
		return nil
	}

	sent := sender.Send(context.Background(), Delivery{To: "ada@example.com", AssetID: 42})

	assert.True(t, sent)
	// exactly one retry, and only the retry downgrades to ASCII
	assert.Equal(t, []bool{false, true}, attempts)
}

func TestSend_FailsWhenRetryFails(t *testing.T) {
	sender := NewSender(configuredMail(), "https://testnet.explorer.perawallet.app", discardLogger())

	var attempts []bool
	sender.sendFn = func(_ context.Context, _ Delivery, ascii bool) error {
		attempts = append(attempts, ascii)
		if !ascii {
			return errors.New("failed encoding subject header")
		}
		return errors.New("dial tcp: connection refused")
	}

	sent := sender.Send(context.Background(), Delivery{To: "ada@example.com", AssetID: 42})

	assert.False(t, sent)
	assert.Equal(t, []bool{false, true}, attempts)
}

func TestSend_NoRetryOnTransportError(t *testing.T) {
	sender := NewSender(configuredMail(), "https://testnet.explorer.perawallet.app", discardLogger())

	calls := 0
	sender.sendFn = func(_ context.Context, _ Delivery, _ bool) error {
		calls++
		return errors.New("dial tcp: connection refused")
	}

	sent := sender.Send(context.Background(), Delivery{To: "ada@example.com", AssetID: 42})

	assert.False(t, sent)
	assert.Equal(t, 1, calls)
}

func TestSend_RecordsOutcome(t *testing.T) {
	metrics.Init(true)

	sender := NewSender(configuredMail(), "https://testnet.explorer.perawallet.app", discardLogger())
	sender.sendFn = func(_ context.Context, _ Delivery, _ bool) error { return nil }

	sentBefore := emailOutcomeCount(t, "sent")
	skippedBefore := emailOutcomeCount(t, "skipped")

	assert.True(t, sender.Send(context.Background(), Delivery{To: "ada@example.com", AssetID: 42}))

	unconfigured := NewSender(config.MailConfig{}, "https://testnet.explorer.perawallet.app", discardLogger())
	assert.False(t, unconfigured.Send(context.Background(), Delivery{To: "ada@example.com", AssetID: 43}))

	assert.Equal(t, sentBefore+1, emailOutcomeCount(t, "sent"))
	assert.Equal(t, skippedBefore+1, emailOutcomeCount(t, "skipped"))
}

func emailOutcomeCount(t *testing.T, status string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "poap_email_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "status" && lp.GetValue() == status {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestToASCII(t *testing.T) {
	assert.Equal(t, "Your POAP Certificate", toASCII("Your POAP Certificate \U0001F389"))
	assert.Equal(t, `"Summit" - Day 1`, toASCII("“Summit” – Day 1"))
}

func TestGuessContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", guessContentType("/tmp/certificate.pdf"))
	assert.Equal(t, "image/png", guessContentType("qr_42.png"))
	assert.Equal(t, fallbackContentType, guessContentType("/tmp/certificate.unknownext"))
}

func TestIsEncodingErr(t *testing.T) {
	assert.True(t, isEncodingErr(errors.New("mail: unsupported charset for body")))
	assert.True(t, isEncodingErr(errors.New("failed encoding subject header")))
	assert.False(t, isEncodingErr(errors.New("dial tcp: connection refused")))
	assert.False(t, isEncodingErr(nil))
}

func TestBody_ContainsLedgerReferences(t *testing.T) {
	sender := NewSender(config.MailConfig{}, "https://testnet.explorer.perawallet.app", discardLogger())

	body := sender.body(Delivery{TxID: "TX123", AssetID: 77})

	assert.Contains(t, body, "TX123")
	assert.Contains(t, body, "https://testnet.explorer.perawallet.app/asset/77")
}

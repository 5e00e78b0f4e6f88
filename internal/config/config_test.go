package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon invest"

func TestLoad_RequiresMnemonic(t *testing.T) {
	t.Setenv("DEPLOYER", "")

	cfg, err := Load()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrMissingMnemonic)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DEPLOYER", testMnemonic)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://testnet-api.algonode.cloud", cfg.Algorand.AlgodURL)
	assert.Equal(t, "https://testnet-idx.algonode.cloud", cfg.Algorand.IndexerURL)
	assert.Equal(t, "smtp.gmail.com", cfg.Mail.Host)
	assert.Equal(t, 587, cfg.Mail.Port)
	assert.False(t, cfg.Mail.Configured())
	assert.Equal(t, "none", cfg.Auth.Type)
	assert.Equal(t, "./temp", cfg.Scratch.Dir)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 25, cfg.Security.MaxBodySizeMB)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DEPLOYER", testMnemonic)
	t.Setenv("PORT", "9090")
	t.Setenv("MAIL_USER", "issuer@example.com")
	t.Setenv("MAIL_PASS", "app-password")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Mail.Configured())
	// From defaults to the relay user when unset
	assert.Equal(t, "issuer@example.com", cfg.Mail.From)
	assert.False(t, cfg.RateLimit.Enabled)
}

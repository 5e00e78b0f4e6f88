// Package config loads service configuration from environment variables.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the server
type Config struct {
	Server    ServerConfig
	Algorand  AlgorandConfig
	Mail      MailConfig
	Auth      AuthConfig
	Scratch   ScratchConfig
	Logging   LoggingConfig
	Metrics   MetricsConfig
	RateLimit RateLimitConfig
	Security  SecurityConfig
	Proxy     ProxyConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int
	Host         string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
	IdleTimeout  int // seconds
}

// AlgorandConfig holds ledger and indexer settings plus the signing identity.
type AlgorandConfig struct {
	DeployerMnemonic string
	AlgodURL         string
	IndexerURL       string
	APIKey           string
	ExplorerURL      string
	CertURLBase      string
}

// MailConfig holds SMTP relay settings. User/Pass left empty disables
// notification delivery without failing mints.
type MailConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// Configured reports whether the relay has credentials to deliver mail.
func (m MailConfig) Configured() bool {
	return m.User != "" && m.Pass != ""
}

// AuthConfig holds authentication settings for write endpoints
type AuthConfig struct {
	Type   string // "none" or "api-key"
	APIKey string
}

// ScratchConfig holds the per-request temp file directory
type ScratchConfig struct {
	Dir string
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string
	Format string // "text" or "json"
}

// MetricsConfig holds metrics settings
type MetricsConfig struct {
	Enabled bool
}

// RateLimitConfig holds rate limiting settings
type RateLimitConfig struct {
	Enabled        bool
	RequestsPerMin int
	BurstSize      int
	CleanupMinutes int
}

// SecurityConfig holds security filter settings
type SecurityConfig struct {
	FilterEnabled bool
	MaxBodySizeMB int
}

// ProxyConfig holds trusted proxy settings for X-Forwarded-For handling
type ProxyConfig struct {
	TrustProxy     bool
	TrustedProxies []string // CIDR notation
}

// ErrMissingMnemonic is returned when the DEPLOYER mnemonic is absent.
// The service cannot sign transactions without it, so startup refuses.
var ErrMissingMnemonic = errors.New("DEPLOYER mnemonic not set")

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnvInt("PORT", 8080),
			Host:         getEnv("HOST", "0.0.0.0"),
			ReadTimeout:  getEnvInt("SERVER_READ_TIMEOUT", 30),
			WriteTimeout: getEnvInt("SERVER_WRITE_TIMEOUT", 120),
			IdleTimeout:  getEnvInt("SERVER_IDLE_TIMEOUT", 120),
		},
		Algorand: AlgorandConfig{
			DeployerMnemonic: getEnv("DEPLOYER", ""),
			AlgodURL:         getEnv("ALGOD_API_URL", "https://testnet-api.algonode.cloud"),
			IndexerURL:       getEnv("INDEXER_API_URL", "https://testnet-idx.algonode.cloud"),
			APIKey:           getEnv("ALGOD_API_KEY", ""),
			ExplorerURL:      getEnv("EXPLORER_URL", "https://testnet.explorer.perawallet.app"),
			CertURLBase:      getEnv("CERT_URL_BASE", "https://poap.bishwaschain.io/poap"),
		},
		Mail: MailConfig{
			Host: getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port: getEnvInt("SMTP_PORT", 587),
			User: getEnv("MAIL_USER", ""),
			Pass: getEnv("MAIL_PASS", ""),
			From: getEnv("MAIL_FROM", ""),
		},
		Auth: AuthConfig{
			Type:   getEnv("AUTH_TYPE", "none"),
			APIKey: getEnv("API_KEY", ""),
		},
		Scratch: ScratchConfig{
			Dir: getEnv("TEMP_DIR", "./temp"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
		},
		RateLimit: RateLimitConfig{
			Enabled:        getEnvBool("RATE_LIMIT_ENABLED", true),
			RequestsPerMin: getEnvInt("RATE_LIMIT_RPM", 300),
			BurstSize:      getEnvInt("RATE_LIMIT_BURST", 50),
			CleanupMinutes: getEnvInt("RATE_LIMIT_CLEANUP_MINUTES", 10),
		},
		Security: SecurityConfig{
			FilterEnabled: getEnvBool("SECURITY_FILTER_ENABLED", true),
			MaxBodySizeMB: getEnvInt("SECURITY_MAX_BODY_SIZE_MB", 25),
		},
		Proxy: ProxyConfig{
			TrustProxy:     getEnvBool("TRUST_PROXY", false),
			TrustedProxies: getEnvStringSlice("TRUSTED_PROXIES", []string{"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}),
		},
	}

	if cfg.Algorand.DeployerMnemonic == "" {
		return nil, ErrMissingMnemonic
	}

	if cfg.Mail.From == "" {
		cfg.Mail.From = cfg.Mail.User
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}

// Package cli implements the poapmint command line client.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/bishwaschain/poapmint/pkg/client"
)

var (
	cfgFile string
	server  string
	apiKey  string
)

// Execute runs the CLI
func Execute(version string) error {
	rootCmd := &cobra.Command{
		Use:     "poapmint",
		Short:   "Proof of attendance certificate CLI",
		Long:    `poapmint mints, verifies and retrieves proof-of-attendance certificates stored as Algorand NFTs.`,
		Version: version,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: poapmint.toml)")
	rootCmd.PersistentFlags().StringVar(&server, "server", "", "server URL (default from config)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key for minting")

	rootCmd.AddCommand(createMintCmd())
	rootCmd.AddCommand(createVerifyCmd())
	rootCmd.AddCommand(createCertCmd())
	rootCmd.AddCommand(createFindCmd())
	rootCmd.AddCommand(createHealthCmd())
	rootCmd.AddCommand(createAuthCmd())
	rootCmd.AddCommand(createConfigCmd())

	return rootCmd.Execute()
}

func newClient() *client.Client {
	return client.New(getServer(), client.WithAPIKey(getAPIKey()))
}

// getServer returns the server URL from flag, env, config file, or default
func getServer() string {
	if server != "" {
		return server
	}
	if env := os.Getenv("POAPMINT_SERVER"); env != "" {
		return env
	}
	if config := loadProjectConfigSilent(); config != nil && config.Server != "" {
		return config.Server
	}
	return "http://localhost:8080"
}

// getAPIKey returns the API key from flag, env, or credentials file
func getAPIKey() string {
	if apiKey != "" {
		return apiKey
	}
	if env := os.Getenv("POAPMINT_API_KEY"); env != "" {
		return env
	}
	return getCredential(getServer())
}

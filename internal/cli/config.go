package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// projectConfigFiles is the search order for project config files
var projectConfigFiles = []string{"poapmint.toml"}

// ProjectConfig is the project-level TOML configuration. Organizer is
// the default for mint's --organizer flag, so event staff minting many
// certificates only type it once.
type ProjectConfig struct {
	Server    string `toml:"server"`
	Organizer string `toml:"organizer,omitempty"`
}

// GlobalConfig is the global configuration stored in ~/.poapmint/config.yaml
type GlobalConfig struct {
	Server string `yaml:"server"`
}

func createConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration commands",
	}

	cmd.AddCommand(createConfigInitCmd())
	cmd.AddCommand(createConfigShowCmd())

	return cmd
}

func createConfigInitCmd() *cobra.Command {
	var serverURL string
	var organizer string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create config file",
		Long: `Create a poapmint.toml configuration file in the current directory.

EXAMPLES:
  # Create config with default server
  poapmint config init

  # Create config for a specific server and default organizer
  poapmint config init --server https://poap.example.com --organizer "Gopher Org"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(serverURL, organizer, force)
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "http://localhost:8080", "server URL")
	cmd.Flags().StringVar(&organizer, "organizer", "", "default organizer for minting")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing config")

	return cmd
}

func createConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display current config",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow()
		},
	}
}

func runConfigInit(serverURL, organizer string, force bool) error {
	configPath := projectConfigFiles[0]

	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", configPath)
	}

	content := fmt.Sprintf(`# poapmint project configuration

server = %q

# Default organizer for 'poapmint mint' (override with --organizer)
organizer = %q
`, serverURL, organizer)

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Created %s\n", configPath)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Run 'poapmint auth login' if the server requires an API key")
	fmt.Println("  2. Run 'poapmint mint cert.pdf --event ... --name ... --email ...'")

	return nil
}

func runConfigShow() error {
	fmt.Println("Configuration sources (in order of precedence):")
	fmt.Println()

	fmt.Println("1. Command line flags")
	fmt.Println("   --server, --api-key, --config")
	fmt.Println()

	fmt.Println("2. Environment variables")
	if env := os.Getenv("POAPMINT_SERVER"); env != "" {
		fmt.Printf("   POAPMINT_SERVER=%s\n", env)
	} else {
		fmt.Println("   POAPMINT_SERVER=(not set)")
	}
	if env := os.Getenv("POAPMINT_API_KEY"); env != "" {
		fmt.Printf("   POAPMINT_API_KEY=%s\n", maskAPIKey(env))
	} else {
		fmt.Println("   POAPMINT_API_KEY=(not set)")
	}
	fmt.Println()

	fmt.Println("3. Local project config (poapmint.toml)")
	projectConfig, configPath, err := loadProjectConfig()
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("   (not found)")
		} else {
			fmt.Printf("   Error: %v\n", err)
		}
	} else {
		fmt.Printf("   Loaded from: %s\n", configPath)
		if projectConfig.Server != "" {
			fmt.Printf("   server: %s\n", projectConfig.Server)
		}
		if projectConfig.Organizer != "" {
			fmt.Printf("   organizer: %s\n", projectConfig.Organizer)
		}
	}
	fmt.Println()

	fmt.Println("4. Global config (~/.poapmint/config.yaml)")
	globalPath := filepath.Join(credentialsDir(), "config.yaml")
	globalData, err := os.ReadFile(globalPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("   (not found)")
		} else {
			fmt.Printf("   Error: %v\n", err)
		}
	} else {
		var globalConfig GlobalConfig
		if err := yaml.Unmarshal(globalData, &globalConfig); err == nil && globalConfig.Server != "" {
			fmt.Printf("   server: %s\n", globalConfig.Server)
		}
	}
	fmt.Println()

	fmt.Println("5. Credentials (~/.poapmint/credentials)")
	creds, err := loadCredentials()
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("   (not found)")
		} else {
			fmt.Printf("   Error: %v\n", err)
		}
	} else if len(creds.Servers) == 0 {
		fmt.Println("   (no credentials stored)")
	} else {
		for server, cred := range creds.Servers {
			fmt.Printf("   %s: %s\n", server, maskAPIKey(cred.APIKey))
		}
	}
	fmt.Println()

	fmt.Println("Effective configuration:")
	fmt.Printf("   Server:  %s\n", getServer())
	if key := getAPIKey(); key != "" {
		fmt.Printf("   API Key: %s\n", maskAPIKey(key))
	} else {
		fmt.Println("   API Key: (not set)")
	}

	return nil
}

// loadProjectConfig loads the project config from the first matching config file.
func loadProjectConfig() (*ProjectConfig, string, error) {
	if cfgFile != "" {
		config, err := loadProjectConfigFromPath(cfgFile)
		if err != nil {
			return nil, cfgFile, err
		}
		return config, cfgFile, nil
	}

	for _, name := range projectConfigFiles {
		if _, err := os.Stat(name); err == nil {
			config, err := loadProjectConfigFromPath(name)
			if err != nil {
				return nil, name, err
			}
			return config, name, nil
		}
	}
	return nil, "", os.ErrNotExist
}

func loadProjectConfigFromPath(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config ProjectConfig
	if _, err := toml.Decode(string(data), &config); err != nil {
		return nil, fmt.Errorf("parsing TOML: %w", err)
	}

	return &config, nil
}

// loadProjectConfigSilent loads the project config, returning nil when
// no file exists. Parse failures are warned about, not fatal.
func loadProjectConfigSilent() *ProjectConfig {
	config, _, err := loadProjectConfig()
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		fmt.Fprintf(os.Stderr, "Warning: failed to load project config: %v\n", err)
		return nil
	}
	return config
}

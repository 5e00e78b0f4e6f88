package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func createHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHealth()
		},
	}
}

func runHealth() error {
	resp, err := newClient().Health(context.Background())
	if err != nil {
		return fmt.Errorf("server unreachable: %w", err)
	}

	fmt.Printf("Server:   %s\n", getServer())
	fmt.Printf("Status:   %s\n", resp.Status)
	fmt.Printf("Deployer: %s\n", resp.DeployerAddress)
	if resp.MailConfigured {
		fmt.Println("Mail:     configured")
	} else {
		fmt.Println("Mail:     not configured (recipients will not be emailed)")
	}

	return nil
}

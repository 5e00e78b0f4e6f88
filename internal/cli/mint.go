package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bishwaschain/poapmint/pkg/client"
)

func createMintCmd() *cobra.Command {
	var event string
	var organizer string
	var date string
	var recipientName string
	var recipientEmail string

	cmd := &cobra.Command{
		Use:   "mint <certificate-file>",
		Short: "Mint an attendance certificate NFT",
		Long: `Upload a certificate file and mint it as a proof-of-attendance NFT.

The file's SHA-256 digest and the event details are embedded in the
asset's creation transaction. The recipient gets an email with the
certificate and a QR code for the asset.

EXAMPLES:
  poapmint mint cert.pdf \
    --event "GopherCon 2026" \
    --organizer "Gopher Org" \
    --date 2026-08-15 \
    --name "Ada Lovelace" \
    --email ada@example.com
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMint(args[0], event, organizer, date, recipientName, recipientEmail)
		},
	}

	cmd.Flags().StringVar(&event, "event", "", "event name (required)")
	cmd.Flags().StringVar(&organizer, "organizer", "", "organizer name (default from poapmint.toml)")
	cmd.Flags().StringVar(&date, "date", "", "event date (required)")
	cmd.Flags().StringVar(&recipientName, "name", "", "recipient name (required)")
	cmd.Flags().StringVar(&recipientEmail, "email", "", "recipient email (required)")
	_ = cmd.MarkFlagRequired("event")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func runMint(path, event, organizer, date, name, email string) error {
	if organizer == "" {
		if pc := loadProjectConfigSilent(); pc != nil {
			organizer = pc.Organizer
		}
	}
	if organizer == "" {
		return fmt.Errorf("--organizer is required (or set organizer in poapmint.toml)")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading certificate file: %w", err)
	}

	fmt.Printf("Minting certificate for %s (%s)...\n", name, event)

	resp, err := newClient().Mint(context.Background(), client.MintRequest{
		Event:          event,
		Organizer:      organizer,
		Date:           date,
		RecipientName:  name,
		RecipientEmail: email,
		FileName:       filepath.Base(path),
		FileContent:    content,
	})
	if err != nil {
		return fmt.Errorf("mint failed: %w", err)
	}

	fmt.Println()
	fmt.Printf("✅ Minted asset %d\n", resp.AssetID)
	fmt.Printf("   Transaction: %s\n", resp.TransactionID)
	fmt.Printf("   Hash:        %s\n", resp.CertificateHash)
	if resp.EmailSent {
		fmt.Printf("   Email sent to %s\n", email)
	} else {
		fmt.Println("   Email not sent (mail relay unavailable or unconfigured)")
	}

	return nil
}

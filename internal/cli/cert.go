package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func createCertCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "cert <asset-id>",
		Short: "Show the certificate details behind an asset",
		Long: `Retrieve the human-readable certificate fields recovered from an
asset's on-chain parameters and creation note.

EXAMPLES:
  poapmint cert 123456789
  poapmint cert 123456789 --json
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid asset id %q", args[0])
			}
			return runCert(id, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw JSON response")

	return cmd
}

func runCert(assetID uint64, asJSON bool) error {
	resp, err := newClient().GetCertificate(context.Background(), assetID)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	fmt.Printf("Certificate for asset %d\n", resp.AssetID)
	fmt.Printf("  Event:     %s\n", resp.Details.Event)
	fmt.Printf("  Organizer: %s\n", resp.Details.Organizer)
	fmt.Printf("  Date:      %s\n", resp.Details.Date)
	fmt.Printf("  Recipient: %s <%s>\n", resp.Details.RecipientName, resp.Details.RecipientEmail)
	if resp.CertificateHash != "" {
		fmt.Printf("  Hash:      %s\n", resp.CertificateHash)
	}
	fmt.Printf("  Asset:     %s (creator %s)\n", resp.AssetInfo.Name, resp.AssetInfo.Creator)

	return nil
}

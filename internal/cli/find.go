package cli

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func createFindCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "find [certificate-hash]",
		Short: "Find the asset minted for a certificate",
		Long: `Scan assets created by the service identity for one carrying the
given SHA-256 digest. Pass the 64-character hex digest directly, or
use --file to hash a local certificate file first.

EXAMPLES:
  poapmint find e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855
  poapmint find --file cert.pdf
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			digest := ""
			if len(args) == 1 {
				digest = args[0]
			}
			return runFind(digest, file)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "hash this file instead of passing a digest")

	return cmd
}

func runFind(digest, file string) error {
	switch {
	case digest != "" && file != "":
		return fmt.Errorf("pass either a digest or --file, not both")
	case digest == "" && file == "":
		return fmt.Errorf("a certificate hash or --file is required")
	case file != "":
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		sum := sha256.Sum256(content)
		digest = hex.EncodeToString(sum[:])
		fmt.Printf("Hash of %s: %s\n", file, digest)
	}

	resp, err := newClient().FindByHash(context.Background(), digest)
	if err != nil {
		return err
	}

	fmt.Printf("✅ Found asset %d (%s) after scanning %d assets\n",
		resp.AssetID, resp.AssetName, resp.ScannedAssets)
	return nil
}

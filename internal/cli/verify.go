package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bishwaschain/poapmint/pkg/client"
)

func createVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <asset-id> [asset-id...]",
		Short: "Verify attendance assets against the structural rules",
		Long: `Check one or more assets against the structural rules: single
indivisible unit, POAP unit name, POAP asset name, minted by the
service identity.

EXAMPLES:
  poapmint verify 123456789
  poapmint verify 123456789 987654321
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(args)
		},
	}

	return cmd
}

func runVerify(args []string) error {
	ids := make([]uint64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseUint(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid asset id %q", arg)
		}
		ids = append(ids, id)
	}

	c := newClient()

	var results []client.VerifyResponse
	if len(ids) == 1 {
		res, err := c.Verify(context.Background(), ids[0])
		if err != nil {
			return err
		}
		results = []client.VerifyResponse{*res}
	} else {
		var err error
		results, err = c.VerifyMany(context.Background(), ids)
		if err != nil {
			return err
		}
	}

	failed := 0
	for _, res := range results {
		printVerifyResult(res)
		if res.Error != "" || !res.OverallValid {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d assets failed verification", failed, len(results))
	}
	return nil
}

func printVerifyResult(res client.VerifyResponse) {
	if res.Error != "" {
		fmt.Printf("❌ Asset %d: %s\n", res.AssetID, res.Error)
		return
	}

	mark := "✅"
	if !res.OverallValid {
		mark = "❌"
	}
	fmt.Printf("%s Asset %d\n", mark, res.AssetID)

	if res.AssetInfo != nil {
		fmt.Printf("   Name:    %s\n", res.AssetInfo.Name)
		fmt.Printf("   Creator: %s\n", res.AssetInfo.Creator)
	}
	if res.Checks != nil {
		fmt.Printf("   non-fungible: %s\n", checkMark(res.Checks.IsNFT))
		fmt.Printf("   unit name:    %s\n", checkMark(res.Checks.CorrectUnitName))
		fmt.Printf("   asset name:   %s\n", checkMark(res.Checks.CorrectNameFormat))
		fmt.Printf("   creator:      %s\n", checkMark(res.Checks.CorrectCreator))
	}
}

func checkMark(ok bool) string {
	if ok {
		return "pass"
	}
	return "FAIL"
}

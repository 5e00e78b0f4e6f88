// Package domain contains the business logic for POAP asset verification.
package domain

// Checks holds the structural rules an asset is verified against. All four
// must hold for the asset to be considered a valid POAP.
type Checks struct {
	IsNFT             bool `json:"is_nft"`
	CorrectUnitName   bool `json:"correct_unit_name"`
	CorrectNameFormat bool `json:"correct_name_format"`
	CorrectCreator    bool `json:"correct_creator"`
}

// AllPass reports whether every structural rule holds.
func (c Checks) AllPass() bool {
	return c.IsNFT && c.CorrectUnitName && c.CorrectNameFormat && c.CorrectCreator
}

// Failing names the rules that did not hold, in a fixed order.
func (c Checks) Failing() []string {
	var failed []string
	if !c.IsNFT {
		failed = append(failed, "is_nft")
	}
	if !c.CorrectUnitName {
		failed = append(failed, "correct_unit_name")
	}
	if !c.CorrectNameFormat {
		failed = append(failed, "correct_name_format")
	}
	if !c.CorrectCreator {
		failed = append(failed, "correct_creator")
	}
	return failed
}

// AssetInfo is the JSON view of the live on-chain asset parameters.
type AssetInfo struct {
	Creator      string `json:"creator"`
	Name         string `json:"name"`
	UnitName     string `json:"unit_name"`
	URL          string `json:"url,omitempty"`
	Total        uint64 `json:"total"`
	Decimals     uint64 `json:"decimals"`
	MetadataHash string `json:"metadata_hash,omitempty"` // hex
}

// Result is a fresh verification of one asset against the structural rules.
// NoteContent is the decoded metadata when the creation note parses, the raw
// note text when it does not, and nil when no note could be recovered.
type Result struct {
	AssetID      uint64   `json:"asset_id"`
	AssetInfo    AssetInfo `json:"asset_info"`
	Checks       Checks   `json:"verification_results"`
	NoteContent  any      `json:"note_content"`
	OverallValid bool     `json:"overall_valid"`
}

// Outcome is one entry of a batch verification: either a result or the
// error that kept this asset from being verified. Failures are isolated per
// asset so one bad id does not abort the batch.
type Outcome struct {
	AssetID uint64
	Result  *Result
	Err     error
}

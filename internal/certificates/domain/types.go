// Package domain contains the business logic for certificate extraction.
package domain

import "github.com/bishwaschain/poapmint/internal/certmeta"

// Sentinel replaces any textual field that cannot be recovered from the
// creation note.
const Sentinel = "Data not available"

// Details are the human-readable certificate fields re-derived from chain
// data. Fields default to the sentinel when the note is missing or
// unparsable.
type Details struct {
	Event          string `json:"event"`
	Organizer      string `json:"organizer"`
	Date           string `json:"date"`
	RecipientName  string `json:"recipient_name"`
	RecipientEmail string `json:"recipient_email"`
	Version        string `json:"poap_version,omitempty"`
	Type           string `json:"type,omitempty"`
}

// BasicInfo is the subset of live asset parameters echoed with the
// certificate.
type BasicInfo struct {
	Name     string `json:"name"`
	Creator  string `json:"creator"`
	URL      string `json:"url,omitempty"`
	UnitName string `json:"unit_name"`
}

// Certificate is the full extraction result for one asset.
type Certificate struct {
	Success         bool               `json:"success"`
	AssetID         uint64             `json:"asset_id"`
	CertificateHash string             `json:"certificate_hash,omitempty"`
	Details         Details            `json:"certificate_details"`
	AssetInfo       BasicInfo          `json:"asset_info"`
	FullMetadata    *certmeta.Metadata `json:"full_metadata,omitempty"`
}

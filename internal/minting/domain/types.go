package domain

import "github.com/bishwaschain/poapmint/internal/certmeta"

// Request carries the certificate form fields plus the uploaded file.
type Request struct {
	Event          string
	Organizer      string
	Date           string
	RecipientName  string
	RecipientEmail string
	FileName       string
	ContentType    string
	FileContent    []byte
}

// Result is returned after a confirmed mint. EmailSent reflects
// best-effort delivery and never influences Success.
type Result struct {
	Success         bool              `json:"success"`
	AssetID         uint64            `json:"asset_id"`
	TransactionID   string            `json:"transaction_id"`
	CertificateHash string            `json:"certificate_hash"`
	Details         certmeta.Metadata `json:"certificate_details"`
	EmailSent       bool              `json:"email_sent"`
}

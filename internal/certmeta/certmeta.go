// Package certmeta builds and recovers the certificate metadata embedded in
// ledger transaction notes.
package certmeta

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Version is the metadata schema version written into every note.
const Version = "1.0"

// UnitName is the fixed unit name every POAP asset carries.
const UnitName = "POAP"

// AssetNamePrefix prefixes the event name to form the asset display name.
const AssetNamePrefix = "POAP: "

// MaxNoteSize is the ledger's cap on a transaction note payload in bytes.
const MaxNoteSize = 1024

// ErrNoteTooLarge is returned when the encoded metadata would exceed the
// ledger's note-field limit.
var ErrNoteTooLarge = errors.New("metadata note exceeds ledger note size limit")

// Metadata is the certificate record embedded verbatim as UTF-8 JSON in the
// asset creation transaction's note field. It lives only on the ledger.
type Metadata struct {
	Event           string `json:"event"`
	Organizer       string `json:"organizer"`
	Date            string `json:"date"`
	RecipientName   string `json:"recipient_name"`
	RecipientEmail  string `json:"recipient_email"`
	CertificateHash string `json:"certificate_hash"`
	Version         string `json:"poap_version"`
	Type            string `json:"type"`
}

// Digest returns the lowercase hex SHA-256 of the payload.
func Digest(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// smart punctuation that breaks downstream ASCII-only transports
var sanitizer = strings.NewReplacer(
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"–", "-", // en dash
	"—", "-", // em dash
	"…", "...", // ellipsis
	" ", " ", // non-breaking space
)

// Sanitize replaces smart Unicode punctuation with ASCII equivalents. The
// ledger accepts arbitrary UTF-8; this guards the mail path, not the chain.
func Sanitize(s string) string {
	return sanitizer.Replace(s)
}

// EncodeNote serializes the metadata to the UTF-8 JSON note payload,
// enforcing the ledger's note size limit up front.
func EncodeNote(m Metadata) ([]byte, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding note: %w", err)
	}
	if len(b) > MaxNoteSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrNoteTooLarge, len(b), MaxNoteSize)
	}
	return b, nil
}

// DecodeNote recovers metadata from a raw note payload. Any JSON object is
// accepted, even with fields missing; the verification rules decide whether
// the content is well formed. When the note is not a JSON object the parsed
// result is nil and the caller decides how to degrade: the verifier surfaces
// the raw text, the extractor falls back to sentinel values.
func DecodeNote(note []byte) (*Metadata, string) {
	if len(note) == 0 {
		return nil, ""
	}
	var m Metadata
	if err := json.Unmarshal(note, &m); err == nil {
		return &m, string(note)
	}
	return nil, string(note)
}

// HashBytes decodes a 64-char hex digest into its raw 32 bytes.
func HashBytes(hexDigest string) ([]byte, error) {
	b, err := hex.DecodeString(hexDigest)
	if err != nil {
		return nil, fmt.Errorf("decoding certificate hash: %w", err)
	}
	if len(b) != sha256.Size {
		return nil, fmt.Errorf("certificate hash must be %d bytes, got %d", sha256.Size, len(b))
	}
	return b, nil
}

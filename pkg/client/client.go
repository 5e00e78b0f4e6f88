// Package client provides a Go client for the PoapMint API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Client is a PoapMint API client
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithAPIKey sets the API key sent with write requests
func WithAPIKey(key string) Option {
	return func(client *Client) {
		client.apiKey = key
	}
}

// New creates a new PoapMint client. Minting can take a while on a
// congested network, so the default timeout is generous.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// MintRequest describes one certificate to mint.
type MintRequest struct {
	Event          string
	Organizer      string
	Date           string
	RecipientName  string
	RecipientEmail string
	FileName       string
	FileContent    []byte
}

// MintResponse is the confirmed mint result.
type MintResponse struct {
	Success         bool                `json:"success"`
	AssetID         uint64              `json:"asset_id"`
	TransactionID   string              `json:"transaction_id"`
	CertificateHash string              `json:"certificate_hash"`
	Details         CertificateMetadata `json:"certificate_details"`
	EmailSent       bool                `json:"email_sent"`
}

// CertificateMetadata mirrors the metadata embedded in the asset note.
type CertificateMetadata struct {
	Event           string `json:"event"`
	Organizer       string `json:"organizer"`
	Date            string `json:"date"`
	RecipientName   string `json:"recipient_name"`
	RecipientEmail  string `json:"recipient_email"`
	CertificateHash string `json:"certificate_hash"`
	Version         string `json:"poap_version"`
	Type            string `json:"type"`
}

// Checks holds the structural verification rules.
type Checks struct {
	IsNFT             bool `json:"is_nft"`
	CorrectUnitName   bool `json:"correct_unit_name"`
	CorrectNameFormat bool `json:"correct_name_format"`
	CorrectCreator    bool `json:"correct_creator"`
}

// AssetInfo is the on-chain view of an asset.
type AssetInfo struct {
	Creator      string `json:"creator"`
	Name         string `json:"name"`
	UnitName     string `json:"unit_name"`
	URL          string `json:"url"`
	Total        uint64 `json:"total"`
	Decimals     uint64 `json:"decimals"`
	MetadataHash string `json:"metadata_hash,omitempty"`
}

// VerifyResponse is one asset's verification result. Error is set when
// the asset could not be verified at all.
type VerifyResponse struct {
	AssetID      uint64          `json:"asset_id"`
	AssetInfo    *AssetInfo      `json:"asset_info,omitempty"`
	Checks       *Checks         `json:"verification_results,omitempty"`
	NoteContent  json.RawMessage `json:"note_content,omitempty"`
	OverallValid bool            `json:"overall_valid"`
	Error        string          `json:"error,omitempty"`
}

// CertificateResponse is the extracted certificate view.
type CertificateResponse struct {
	Success         bool                 `json:"success"`
	AssetID         uint64               `json:"asset_id"`
	CertificateHash string               `json:"certificate_hash,omitempty"`
	Details         CertificateDetails   `json:"certificate_details"`
	AssetInfo       BasicAssetInfo       `json:"asset_info"`
	FullMetadata    *CertificateMetadata `json:"full_metadata,omitempty"`
}

// CertificateDetails are the human-readable certificate fields.
type CertificateDetails struct {
	Event          string `json:"event"`
	Organizer      string `json:"organizer"`
	Date           string `json:"date"`
	RecipientName  string `json:"recipient_name"`
	RecipientEmail string `json:"recipient_email"`
	Version        string `json:"poap_version,omitempty"`
	Type           string `json:"type,omitempty"`
}

// BasicAssetInfo is the asset summary carried on a certificate.
type BasicAssetInfo struct {
	Name     string `json:"name"`
	Creator  string `json:"creator"`
	URL      string `json:"url"`
	UnitName string `json:"unit_name"`
}

// FindByHashResponse identifies the asset carrying a certificate hash.
type FindByHashResponse struct {
	Success         bool   `json:"success"`
	AssetID         uint64 `json:"asset_id"`
	AssetName       string `json:"asset_name"`
	CertificateHash string `json:"certificate_hash"`
	ScannedAssets   int    `json:"scanned_assets"`
}

// HealthResponse is the service health summary.
type HealthResponse struct {
	Status          string `json:"status"`
	DeployerAddress string `json:"deployer_address"`
	MailConfigured  bool   `json:"mail_configured"`
}

// APIError represents an API error response
type APIError struct {
	Status  int
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
}

// Mint uploads a certificate file and mints the attendance asset.
func (c *Client) Mint(ctx context.Context, req MintRequest) (*MintResponse, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"event":           req.Event,
		"organizer":       req.Organizer,
		"date":            req.Date,
		"recipient_name":  req.RecipientName,
		"recipient_email": req.RecipientEmail,
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, err
		}
	}

	fw, err := w.CreateFormFile("certificate_file", req.FileName)
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(req.FileContent); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/mint", &buf)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", w.FormDataContentType())

	var resp MintResponse
	if err := c.do(httpReq, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Verify checks one asset against the structural rules.
func (c *Client) Verify(ctx context.Context, assetID uint64) (*VerifyResponse, error) {
	var resp VerifyResponse
	if err := c.post(ctx, "/verify", map[string]uint64{"asset_id": assetID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyMany checks several assets in one call. The response preserves
// input order; failed items carry an Error string instead of checks.
func (c *Client) VerifyMany(ctx context.Context, assetIDs []uint64) ([]VerifyResponse, error) {
	var resp []VerifyResponse
	if err := c.post(ctx, "/verify-multiple", assetIDs, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetCertificate extracts the certificate details for an asset.
func (c *Client) GetCertificate(ctx context.Context, assetID uint64) (*CertificateResponse, error) {
	var resp CertificateResponse
	if err := c.post(ctx, "/get-certificate", map[string]uint64{"asset_id": assetID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FindByHash locates the asset minted for a certificate hash.
func (c *Client) FindByHash(ctx context.Context, certificateHash string) (*FindByHashResponse, error) {
	var resp FindByHashResponse
	if err := c.post(ctx, "/find-by-hash", map[string]string{"certificate_hash": certificateHash}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health fetches the service health summary.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, err
	}

	var resp HealthResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) post(ctx context.Context, path string, body, result any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, result)
}

func (c *Client) do(req *http.Request, result any) error {
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return parseError(resp)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// parseError handles both error envelopes the service produces: the
// structured {"error":{"code","message"}} form and the flat
// {"success":false,"error":"..."} form.
func parseError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Status: resp.StatusCode, Message: resp.Status}
	}

	var structured struct {
		Error APIError `json:"error"`
	}
	if err := json.Unmarshal(body, &structured); err == nil && structured.Error.Code != "" {
		structured.Error.Status = resp.StatusCode
		return &structured.Error
	}

	var flat struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &flat); err == nil && flat.Error != "" {
		return &APIError{Status: resp.StatusCode, Message: flat.Error}
	}

	return &APIError{Status: resp.StatusCode, Message: resp.Status}
}

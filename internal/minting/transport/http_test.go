package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bishwaschain/poapmint/internal/certmeta"
	"github.com/bishwaschain/poapmint/internal/minting/domain"
)

type mockService struct {
	req domain.Request
	res *domain.Result
	err error
}

func (m *mockService) Mint(ctx context.Context, req domain.Request) (*domain.Result, error) {
	m.req = req
	if m.err != nil {
		return nil, m.err
	}
	return m.res, nil
}

func mintForm(t *testing.T, fields map[string]string, fileName string, fileContent []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := w.CreateFormFile("certificate_file", fileName)
		require.NoError(t, err)
		_, err = fw.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func defaultFields() map[string]string {
	return map[string]string{
		"event":           "GopherCon 2026",
		"organizer":       "Gopher Org",
		"date":            "2026-08-15",
		"recipient_name":  "Ada Lovelace",
		"recipient_email": "ada@example.com",
	}
}

func doMint(svc Service, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r)
	req := httptest.NewRequest(http.MethodPost, "/mint", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandleMint_Success(t *testing.T) {
	svc := &mockService{res: &domain.Result{
		Success:         true,
		AssetID:         777,
		TransactionID:   "TX123",
		CertificateHash: "abc123",
		EmailSent:       true,
	}}

	body, ct := mintForm(t, defaultFields(), "certificate.pdf", []byte("certificate body"))
	rec := doMint(svc, body, ct)

	assert.Equal(t, http.StatusOK, rec.Code)

	var res domain.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Success)
	assert.Equal(t, uint64(777), res.AssetID)
	assert.Equal(t, "TX123", res.TransactionID)
	assert.True(t, res.EmailSent)

	assert.Equal(t, "GopherCon 2026", svc.req.Event)
	assert.Equal(t, "ada@example.com", svc.req.RecipientEmail)
	assert.Equal(t, "certificate.pdf", svc.req.FileName)
	assert.Equal(t, []byte("certificate body"), svc.req.FileContent)
}

func TestHandleMint_MissingFile(t *testing.T) {
	svc := &mockService{}

	body, ct := mintForm(t, defaultFields(), "", nil)
	rec := doMint(svc, body, ct)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "certificate_file is required")
}

func TestHandleMint_ValidationErrorMapsTo400(t *testing.T) {
	svc := &mockService{err: fmt.Errorf("%w: recipient email invalid", domain.ErrInvalidInput)}

	body, ct := mintForm(t, defaultFields(), "certificate.pdf", []byte("x"))
	rec := doMint(svc, body, ct)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleMint_OversizedNoteMapsTo422(t *testing.T) {
	svc := &mockService{err: fmt.Errorf("%w: 1400 bytes", certmeta.ErrNoteTooLarge)}

	body, ct := mintForm(t, defaultFields(), "certificate.pdf", []byte("x"))
	rec := doMint(svc, body, ct)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandleMint_LedgerFailureMapsTo500(t *testing.T) {
	svc := &mockService{err: errors.New("mint failed: overspend")}

	body, ct := mintForm(t, defaultFields(), "certificate.pdf", []byte("x"))
	rec := doMint(svc, body, ct)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "overspend")
}

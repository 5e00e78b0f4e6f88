package certmeta

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigest_Deterministic(t *testing.T) {
	payload := []byte("certificate body bytes")

	first := Digest(payload)
	second := Digest(payload)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
	assert.Equal(t, strings.ToLower(first), first)
}

func TestDigest_DistinctInputs(t *testing.T) {
	assert.NotEqual(t, Digest([]byte("a")), Digest([]byte("b")))
}

func TestSanitize(t *testing.T) {
	in := "It’s the “Annual” summit – part one…"
	assert.Equal(t, `It's the "Annual" summit - part one...`, Sanitize(in))
}

func TestSanitize_PlainASCIIUnchanged(t *testing.T) {
	s := "GopherCon 2026, Day 1"
	assert.Equal(t, s, Sanitize(s))
}

func TestEncodeNote_RoundTrip(t *testing.T) {
	m := Metadata{
		Event:           "GopherCon 2026",
		Organizer:       "Gopher Org",
		Date:            "2026-08-15",
		RecipientName:   "Ada Lovelace",
		RecipientEmail:  "ada@example.com",
		CertificateHash: Digest([]byte("file")),
		Version:         Version,
		Type:            "application/pdf",
	}

	note, err := EncodeNote(m)
	require.NoError(t, err)

	decoded, raw := DecodeNote(note)
	require.NotNil(t, decoded)
	assert.Equal(t, m, *decoded)
	// the note payload must survive the trip byte-for-byte
	assert.Equal(t, string(note), raw)
}

func TestEncodeNote_TooLarge(t *testing.T) {
	m := Metadata{
		Event:           strings.Repeat("x", MaxNoteSize),
		CertificateHash: Digest([]byte("file")),
		Version:         Version,
	}

	note, err := EncodeNote(m)
	assert.Nil(t, note)
	assert.ErrorIs(t, err, ErrNoteTooLarge)
}

func TestDecodeNote_Degrades(t *testing.T) {
	t.Run("empty note", func(t *testing.T) {
		m, raw := DecodeNote(nil)
		assert.Nil(t, m)
		assert.Empty(t, raw)
	})

	t.Run("non-JSON note", func(t *testing.T) {
		m, raw := DecodeNote([]byte("free-form attendance note"))
		assert.Nil(t, m)
		assert.Equal(t, "free-form attendance note", raw)
	})

	t.Run("JSON object without certificate hash still parses", func(t *testing.T) {
		m, raw := DecodeNote([]byte(`{"memo":"hi"}`))
		require.NotNil(t, m)
		assert.Empty(t, m.CertificateHash)
		assert.Equal(t, `{"memo":"hi"}`, raw)
	})

	t.Run("partial metadata still parses", func(t *testing.T) {
		m, _ := DecodeNote([]byte(`{"event":"Summit","version":"1.0"}`))
		require.NotNil(t, m)
		assert.Equal(t, "Summit", m.Event)
		assert.Empty(t, m.CertificateHash)
	})

	t.Run("JSON scalar degrades to raw text", func(t *testing.T) {
		m, raw := DecodeNote([]byte(`"just a string"`))
		assert.Nil(t, m)
		assert.Equal(t, `"just a string"`, raw)
	})
}

func TestHashBytes(t *testing.T) {
	digest := Digest([]byte("file"))

	b, err := HashBytes(digest)
	require.NoError(t, err)
	assert.Len(t, b, 32)

	_, err = HashBytes("zz")
	assert.Error(t, err)

	_, err = HashBytes("abcd")
	assert.Error(t, err)
}

package smartdoc

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_CompleteWithStatus(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	aDocument := &Document{
		ID:     NewDocumentID(),
		Status: DocumentStatusProcessing,
	}

	require.NoError(t, aDocument.CompleteWithStatus(DocumentStatusProcessedSuccessfully, "", now))
	assert.Equal(t, DocumentStatusProcessedSuccessfully, aDocument.Status)
	assert.Equal(t, now, aDocument.Updated)

	// Only a processing document can be completed
	err := aDocument.CompleteWithStatus(DocumentStatusProcessingFailed, "some error", now)
	assert.Error(t, err)
}

func TestPassage_Sanitize(t *testing.T) {
	t.Parallel()

	aPassage := Passage{
		Content: "  some \t\n  text with   uneven    whitespace ",
		Page:    3,
	}

	sanitized := aPassage.Sanitize()
	assert.Equal(t, "some text with uneven whitespace", sanitized.Content)
	assert.Equal(t, 3, sanitized.Page)
}

func TestCheckContentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contents    []byte
		contentType string
		allowed     bool
	}{
		{
			"pdf",
			[]byte("%PDF-1.7 some pdf contents"),
			"application/pdf",
			true,
		},
		{
			"plain text",
			[]byte("plain text document about nothing in particular"),
			"text/plain",
			true,
		},
		{
			"png is not allowed",
			[]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A},
			"image/png",
			false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			contentType, ok, err := checkContentType(bytes.NewReader(tc.contents))
			require.NoError(t, err)
			assert.Equal(t, tc.contentType, contentType)
			assert.Equal(t, tc.allowed, ok)
		})
	}
}

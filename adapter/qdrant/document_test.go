package qdrant

import (
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartdoc"
)

func TestMapScoredPoint(t *testing.T) {
	t.Parallel()

	documentID := uuid.Must(uuid.FromString("9ea0b16a-7f4a-4a22-8ea1-ca2d932bafa8"))

	t.Run("valid payload", func(t *testing.T) {
		t.Parallel()

		point := &qdrant.ScoredPoint{
			Payload: qdrant.NewValueMap(map[string]any{
				"document_id": documentID.String(),
				"file_name":   "report.pdf",
				"content":     "foo",
			}),
		}

		aDocument, err := mapScoredPoint(point)
		require.NoError(t, err)
		assert.Equal(t, smartdoc.Document{
			ID:       smartdoc.DocumentID{UUID: documentID},
			FileName: "report.pdf",
			Content:  "foo",
		}, aDocument)
	})

	t.Run("missing document_id", func(t *testing.T) {
		t.Parallel()

		point := &qdrant.ScoredPoint{
			Payload: qdrant.NewValueMap(map[string]any{
				"content": "foo",
			}),
		}

		_, err := mapScoredPoint(point)
		assert.EqualError(t, err, "missing document_id in point payload")
	})

	t.Run("missing content", func(t *testing.T) {
		t.Parallel()

		point := &qdrant.ScoredPoint{
			Payload: qdrant.NewValueMap(map[string]any{
				"document_id": documentID.String(),
			}),
		}

		_, err := mapScoredPoint(point)
		assert.EqualError(t, err, "missing content in point payload")
	})
}

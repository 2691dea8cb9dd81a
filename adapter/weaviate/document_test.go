package weaviate

import (
	"fmt"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weaviate/weaviate/entities/models"

	"smartdoc"
)

func TestDecodeGetDocumentResults(t *testing.T) {
	t.Parallel()

	var (
		documentID1 = uuid.Must(uuid.FromString("9ea0b16a-7f4a-4a22-8ea1-ca2d932bafa8"))
		documentID2 = uuid.Must(uuid.FromString("1ad113d9-38f9-42d1-b205-4383250a4dfd"))
	)

	tests := []struct {
		title       string
		given       *models.GraphQLResponse
		expected    []smartdoc.Document
		expectedErr error
	}{
		{
			"Missing Get key",
			&models.GraphQLResponse{
				Data: map[string]models.JSONObject{},
			},
			nil,
			fmt.Errorf("get key not found in result"),
		},
		{
			"Missing content",
			&models.GraphQLResponse{
				Data: map[string]models.JSONObject{
					"Get": map[string]any{
						"Document": []any{
							map[string]any{
								"document_id": documentID1.String(),
								"file_name":   "report.pdf",
							},
						},
					},
				},
			},
			nil,
			fmt.Errorf("expected content in document"),
		},
		{
			"Valid results",
			&models.GraphQLResponse{
				Data: map[string]models.JSONObject{
					"Get": map[string]any{
						"Document": []any{
							map[string]any{
								"document_id": documentID1.String(),
								"file_name":   "report.pdf",
								"content":     "foo",
							},
							map[string]any{
								"document_id": documentID2.String(),
								"file_name":   "notes.txt",
								"content":     "bar",
							},
						},
					},
				},
			},
			[]smartdoc.Document{
				{
					ID:       smartdoc.DocumentID{UUID: documentID1},
					FileName: "report.pdf",
					Content:  "foo",
				},
				{
					ID:       smartdoc.DocumentID{UUID: documentID2},
					FileName: "notes.txt",
					Content:  "bar",
				},
			},
			nil,
		},
	}

	for i, tst := range tests {
		t.Run(fmt.Sprintf("#%v_%v", i, tst.title), func(t *testing.T) {
			actual, err := decodeGetDocumentResults(tst.given)
			if tst.expectedErr != nil {
				require.Error(t, err)
				assert.Equal(t, tst.expectedErr, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tst.expected, actual)
		})
	}
}

func TestDecodeAggregateCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title       string
		given       *models.GraphQLResponse
		expected    int64
		expectedErr error
	}{
		{
			"Missing Aggregate key",
			&models.GraphQLResponse{
				Data: map[string]models.JSONObject{},
			},
			0,
			fmt.Errorf("aggregate key not found in result"),
		},
		{
			"Empty results",
			&models.GraphQLResponse{
				Data: map[string]models.JSONObject{
					"Aggregate": map[string]any{
						"Document": []any{},
					},
				},
			},
			0,
			nil,
		},
		{
			"Valid count",
			&models.GraphQLResponse{
				Data: map[string]models.JSONObject{
					"Aggregate": map[string]any{
						"Document": []any{
							map[string]any{
								"meta": map[string]any{
									"count": float64(42),
								},
							},
						},
					},
				},
			},
			42,
			nil,
		},
	}

	for i, tst := range tests {
		t.Run(fmt.Sprintf("#%v_%v", i, tst.title), func(t *testing.T) {
			actual, err := decodeAggregateCount(tst.given)
			if tst.expectedErr != nil {
				require.Error(t, err)
				assert.Equal(t, tst.expectedErr, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tst.expected, actual)
		})
	}
}

package weaviate

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/filters"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"

	"smartdoc"
)

func (a *Adapter) SaveDocument(ctx context.Context, aDocument smartdoc.Document, vector smartdoc.Vector) error {
	if len(vector) == 0 {
		return fmt.Errorf("empty vector")
	}

	object := &models.Object{
		Class: className,
		Properties: map[string]any{
			"document_id": aDocument.ID.String(),
			"file_name":   aDocument.FileName,
			"content":     aDocument.Content,
		},
		Vector: models.C11yVector(vector),
	}

	_, err := a.client.Batch().ObjectsBatcher().WithObjects(object).Do(ctx)
	if err != nil {
		return fmt.Errorf("weaviate error: %w", err)
	}

	a.logger.Sugar().Infof("stored document %s in weaviate", aDocument.ID)
	return nil
}

func (a *Adapter) SearchDocuments(ctx context.Context, vector smartdoc.Vector, limit int) ([]smartdoc.Document, error) {
	gql := a.client.GraphQL()
	nearVector := gql.NearVectorArgBuilder().WithVector([]float32(vector))

	builder := gql.Get().
		WithNearVector(nearVector).
		WithClassName(className).
		WithFields(
			graphql.Field{Name: "document_id"},
			graphql.Field{Name: "file_name"},
			graphql.Field{Name: "content"},
		).
		WithLimit(limit)

	graphqlResponse, err := builder.Do(ctx)
	if err := combinedWeaviateError(graphqlResponse, err); err != nil {
		return nil, err
	}

	return decodeGetDocumentResults(graphqlResponse)
}

func (a *Adapter) DeleteDocument(ctx context.Context, id smartdoc.DocumentID) error {
	filter := filters.Where().
		WithOperator(filters.Equal).
		WithPath([]string{"document_id"}).
		WithValueString(id.String())

	_, err := a.client.Batch().ObjectsBatchDeleter().
		WithClassName(className).
		WithWhere(filter).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("weaviate error: %w", err)
	}

	return nil
}

func (a *Adapter) Stats(ctx context.Context) (smartdoc.IndexStats, error) {
	graphqlResponse, err := a.client.GraphQL().Aggregate().
		WithClassName(className).
		WithFields(graphql.Field{
			Name:   "meta",
			Fields: []graphql.Field{{Name: "count"}},
		}).
		Do(ctx)
	if err := combinedWeaviateError(graphqlResponse, err); err != nil {
		return smartdoc.IndexStats{}, err
	}

	count, err := decodeAggregateCount(graphqlResponse)
	if err != nil {
		return smartdoc.IndexStats{}, err
	}

	return smartdoc.IndexStats{
		Retriever: adapterName,
		Objects:   count,
		Dimension: a.vectorDim,
	}, nil
}

// decodeGetDocumentResults decodes the result returned by Weaviate's GraphQL
// Get query; these are returned as a nested map[string]any (just like JSON
// unmarshaled into a map[string]any).
func decodeGetDocumentResults(graphqlResponse *models.GraphQLResponse) ([]smartdoc.Document, error) {
	data, ok := graphqlResponse.Data["Get"]
	if !ok {
		return nil, fmt.Errorf("get key not found in result")
	}
	doc, ok := data.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("get key unexpected type")
	}
	slc, ok := doc[className].([]any)
	if !ok {
		return nil, fmt.Errorf("document is not a list of results")
	}

	var out []smartdoc.Document
	for _, s := range slc {
		smap, ok := s.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invalid element in list of documents")
		}
		id, ok := smap["document_id"].(string)
		if !ok {
			return nil, fmt.Errorf("expected document_id in document")
		}
		documentID, err := uuid.FromString(id)
		if err != nil {
			return nil, fmt.Errorf("invalid document_id in document: %w", err)
		}
		fileName, ok := smap["file_name"].(string)
		if !ok {
			return nil, fmt.Errorf("expected file_name in document")
		}
		content, ok := smap["content"].(string)
		if !ok {
			return nil, fmt.Errorf("expected content in document")
		}
		out = append(out, smartdoc.Document{
			ID:       smartdoc.DocumentID{UUID: documentID},
			FileName: fileName,
			Content:  content,
		})
	}
	return out, nil
}

func decodeAggregateCount(graphqlResponse *models.GraphQLResponse) (int64, error) {
	data, ok := graphqlResponse.Data["Aggregate"]
	if !ok {
		return 0, fmt.Errorf("aggregate key not found in result")
	}
	doc, ok := data.(map[string]any)
	if !ok {
		return 0, fmt.Errorf("aggregate key unexpected type")
	}
	slc, ok := doc[className].([]any)
	if !ok {
		return 0, fmt.Errorf("aggregate is not a list of results")
	}
	if len(slc) == 0 {
		return 0, nil
	}
	smap, ok := slc[0].(map[string]any)
	if !ok {
		return 0, fmt.Errorf("invalid element in aggregate results")
	}
	meta, ok := smap["meta"].(map[string]any)
	if !ok {
		return 0, fmt.Errorf("expected meta in aggregate result")
	}
	count, ok := meta["count"].(float64)
	if !ok {
		return 0, fmt.Errorf("expected count in aggregate meta")
	}
	return int64(count), nil
}

// combinedWeaviateError generates an error if err is non-nil or result has
// errors, and returns an error (or nil if there's no error). It's useful for
// the results of the Weaviate GraphQL API's "Do" calls.
func combinedWeaviateError(graphqlResponse *models.GraphQLResponse, err error) error {
	if err != nil {
		return err
	}
	if len(graphqlResponse.Errors) != 0 {
		var ss []string
		for _, e := range graphqlResponse.Errors {
			ss = append(ss, e.Message)
		}
		return fmt.Errorf("weaviate error: %v", ss)
	}
	return nil
}

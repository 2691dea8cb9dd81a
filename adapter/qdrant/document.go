package qdrant

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/qdrant/go-client/qdrant"

	"smartdoc"
)

func (a *Adapter) SaveDocument(ctx context.Context, aDocument smartdoc.Document, vector smartdoc.Vector) error {
	if len(vector) == 0 {
		return fmt.Errorf("empty vector")
	}

	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(aDocument.ID.String()),
		Vectors: qdrant.NewVectorsDense(vector),
		Payload: qdrant.NewValueMap(map[string]any{
			"document_id": aDocument.ID.String(),
			"file_name":   aDocument.FileName,
			"content":     aDocument.Content,
		}),
	}

	_, err := a.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: a.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("err upsert point: %w", err)
	}

	a.logger.Sugar().Infof("stored document %s in qdrant", aDocument.ID)
	return nil
}

func (a *Adapter) SearchDocuments(ctx context.Context, vector smartdoc.Vector, limit int) ([]smartdoc.Document, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("vector is required for searching documents")
	}

	queryLimit := uint64(limit)
	points, err := a.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: a.collectionName,
		Query:          qdrant.NewQueryDense(vector),
		Limit:          &queryLimit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("err query points: %w", err)
	}

	documents := make([]smartdoc.Document, 0, len(points))
	for _, point := range points {
		aDocument, err := mapScoredPoint(point)
		if err != nil {
			return nil, err
		}
		documents = append(documents, aDocument)
	}

	return documents, nil
}

func (a *Adapter) DeleteDocument(ctx context.Context, id smartdoc.DocumentID) error {
	_, err := a.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: a.collectionName,
		Points: qdrant.NewPointsSelector(
			qdrant.NewID(id.String()),
		),
	})
	if err != nil {
		return fmt.Errorf("err delete point: %w", err)
	}
	return nil
}

func (a *Adapter) Stats(ctx context.Context) (smartdoc.IndexStats, error) {
	count, err := a.client.Count(ctx, &qdrant.CountPoints{
		CollectionName: a.collectionName,
	})
	if err != nil {
		return smartdoc.IndexStats{}, fmt.Errorf("err count points: %w", err)
	}

	return smartdoc.IndexStats{
		Retriever: adapterName,
		Objects:   int64(count),
		Dimension: a.vectorDim,
	}, nil
}

func mapScoredPoint(point *qdrant.ScoredPoint) (smartdoc.Document, error) {
	payload := point.GetPayload()

	id, ok := payload["document_id"]
	if !ok {
		return smartdoc.Document{}, fmt.Errorf("missing document_id in point payload")
	}
	documentID, err := uuid.FromString(id.GetStringValue())
	if err != nil {
		return smartdoc.Document{}, fmt.Errorf("invalid document_id in point payload: %w", err)
	}

	content, ok := payload["content"]
	if !ok {
		return smartdoc.Document{}, fmt.Errorf("missing content in point payload")
	}

	var fileName string
	if v, ok := payload["file_name"]; ok {
		fileName = v.GetStringValue()
	}

	return smartdoc.Document{
		ID:       smartdoc.DocumentID{UUID: documentID},
		FileName: fileName,
		Content:  content.GetStringValue(),
	}, nil
}

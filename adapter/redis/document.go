package redis

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gofrs/uuid/v5"
	"github.com/redis/go-redis/v9"

	"smartdoc"
)

func (a *Adapter) SaveDocument(ctx context.Context, aDocument smartdoc.Document, vector smartdoc.Vector) error {
	if len(vector) != a.vectorDim {
		return fmt.Errorf("vector has %d dimensions, index expects %d", len(vector), a.vectorDim)
	}

	key := a.indexPrefix + aDocument.ID.String()
	fields, err := a.client.HSet(ctx,
		key,
		map[string]any{
			"content":     aDocument.Content,
			"file_name":   aDocument.FileName,
			"document_id": aDocument.ID.String(),
			"embedding":   floatsToBytes(vector),
		},
	).Result()
	if err != nil {
		return err
	}
	if fields == 0 {
		return fmt.Errorf("no fields were added to redis")
	}

	return nil
}

func (a *Adapter) SearchDocuments(ctx context.Context, vector smartdoc.Vector, limit int) ([]smartdoc.Document, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("vector is required for searching documents")
	}

	query := fmt.Sprintf("*=>[KNN %d @embedding $vec AS vector_distance]", limit)

	// The results are ordered according to the value of the vector_distance field,
	// with the lowest distance indicating the greatest similarity to the query.
	results, err := a.client.FTSearchWithArgs(ctx,
		a.indexName,
		query,
		&redis.FTSearchOptions{
			Return: []redis.FTSearchReturn{
				{FieldName: "vector_distance"},
				{FieldName: "content"},
				{FieldName: "file_name"},
				{FieldName: "document_id"},
			},
			DialectVersion: a.dialectVersion,
			Params: map[string]any{
				"vec": floatsToBytes(vector),
			},
			SortBy: []redis.FTSearchSortBy{{FieldName: "vector_distance", Asc: true}},
			Limit:  limit,
		},
	).Result()
	if err != nil {
		return nil, err
	}

	return mapRedisDocuments(results.Docs)
}

func (a *Adapter) DeleteDocument(ctx context.Context, id smartdoc.DocumentID) error {
	if _, err := a.client.Del(ctx, a.indexPrefix+id.String()).Result(); err != nil {
		return fmt.Errorf("error deleting document from redis: %w", err)
	}
	return nil
}

func (a *Adapter) Stats(ctx context.Context) (smartdoc.IndexStats, error) {
	info, err := a.client.FTInfo(ctx, a.indexName).Result()
	if err != nil {
		return smartdoc.IndexStats{}, fmt.Errorf("error getting redis index info: %w", err)
	}

	return smartdoc.IndexStats{
		Retriever: adapterName,
		Objects:   int64(info.NumDocs),
		Dimension: a.vectorDim,
	}, nil
}

func mapRedisDocuments(rds []redis.Document) ([]smartdoc.Document, error) {
	documents := make([]smartdoc.Document, 0, len(rds))

	for _, rd := range rds {
		aDocument, err := mapRedisDocument(rd)
		if err != nil {
			return nil, err
		}
		documents = append(documents, aDocument)
	}

	return documents, nil
}

func mapRedisDocument(rd redis.Document) (smartdoc.Document, error) {
	content, ok := rd.Fields["content"]
	if !ok {
		return smartdoc.Document{}, fmt.Errorf("missing content field in document")
	}

	documentID, err := uuid.FromString(rd.Fields["document_id"])
	if err != nil {
		return smartdoc.Document{}, fmt.Errorf("invalid document_id: %v", err)
	}

	return smartdoc.Document{
		ID:       smartdoc.DocumentID{UUID: documentID},
		FileName: rd.Fields["file_name"],
		Content:  content,
	}, nil
}

// helper function to convert []float32 to []byte
func floatsToBytes(fs []float32) []byte {
	buf := make([]byte, len(fs)*4)

	for i, f := range fs {
		u := math.Float32bits(f)
		binary.NativeEndian.PutUint32(buf[i*4:], u)
	}

	return buf
}

package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"

	"smartdoc"
)

func (a *Adapter) EmbedContent(ctx context.Context, content string) (smartdoc.Vector, error) {
	resp, err := a.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(content),
		},
		Model: a.embeddingModel,
	})
	if err != nil {
		return smartdoc.Vector{}, fmt.Errorf("embed content error: %w", err)
	}
	if len(resp.Data) != 1 {
		return smartdoc.Vector{}, fmt.Errorf("got %d embeddings, expected 1", len(resp.Data))
	}

	vector := make(smartdoc.Vector, 0, len(resp.Data[0].Embedding))
	for _, value := range resp.Data[0].Embedding {
		vector = append(vector, float32(value))
	}
	return vector, nil
}

package googlegenai

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"smartdoc"
)

func (a *Adapter) EmbedContent(ctx context.Context, content string) (smartdoc.Vector, error) {
	embedResponse, err := a.client.Models.EmbedContent(ctx,
		a.embeddingModel,
		[]*genai.Content{genai.NewContentFromText(content, genai.RoleUser)},
		nil,
	)
	if err != nil {
		return smartdoc.Vector{}, fmt.Errorf("embed content error: %w", err)
	}
	if len(embedResponse.Embeddings) != 1 {
		return smartdoc.Vector{}, fmt.Errorf("got %d embeddings, expected 1", len(embedResponse.Embeddings))
	}
	return embedResponse.Embeddings[0].Values, nil
}

package smartdoc

import (
	"context"
	"fmt"
)

// embedContent produces a single vector for a piece of text of arbitrary
// length. The text is split into size-bounded chunks, each chunk is embedded
// with one call to the embedder, one chunk at a time, and the chunk vectors
// are averaged into one document-level vector. A single chunk passes its
// vector through unchanged.
func (s *service) embedContent(ctx context.Context, content string) (Vector, error) {
	chunks, err := SplitIntoChunks(content, s.maxChunkSize)
	if err != nil {
		return nil, fmt.Errorf("splitting into chunks: %w", err)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no content to embed")
	}

	vectors := make([]Vector, 0, len(chunks))
	for i, aChunk := range chunks {
		vector, err := s.embedder.EmbedContent(ctx, string(aChunk))
		if err != nil {
			return nil, fmt.Errorf("embedding chunk %d/%d: %w", i+1, len(chunks), err)
		}
		vectors = append(vectors, vector)
	}

	vector, err := Average(vectors)
	if err != nil {
		return nil, fmt.Errorf("averaging chunk vectors: %w", err)
	}

	return vector, nil
}

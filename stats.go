package smartdoc

import "context"

// IndexStats describes the state of the vector index backing a retriever.
type IndexStats struct {
	Retriever string `json:"retriever"`
	Objects   int64  `json:"objects"`
	Dimension int    `json:"dimension"`
}

func (s *service) Stats(ctx context.Context) (IndexStats, error) {
	return s.retriever.Stats(ctx)
}

package smartdoc

import (
	"context"
	"fmt"
	"log"
)

type Question struct {
	Content string
}

type Answer struct {
	Text      string     `json:"text"`
	Documents []Document `json:"documents"`
}

const defaultSearchLimit = 10

// Search embeds the query and returns the documents closest to it in vector
// space, without invoking the generative model.
func (s *service) Search(ctx context.Context, query string, limit int) ([]Document, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	vector, err := s.embedContent(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	documents, err := s.retriever.SearchDocuments(ctx, vector, limit)
	if err != nil {
		return nil, fmt.Errorf("searching documents: %w", err)
	}

	return documents, nil
}

func (s *service) Ask(ctx context.Context, question Question) (Answer, error) {
	if question.Content == "" {
		return Answer{}, fmt.Errorf("question content is required")
	}

	log.Printf("received question: %s", question.Content)

	documents, err := s.Search(ctx, question.Content, defaultSearchLimit)
	if err != nil {
		return Answer{}, err
	}

	if len(documents) == 0 {
		return Answer{}, fmt.Errorf("no documents found for question: %s", question.Content)
	}

	log.Println("found documents:", len(documents))

	answer, err := s.generative.Generate(ctx, question, documents)
	if err != nil {
		return Answer{}, fmt.Errorf("calling generative model: %w", err)
	}

	return answer, nil
}

package smartdoc

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("not found")

type clock func() time.Time

type service struct {
	extractors   map[string]Extractor
	embedder     Embedder
	retriever    Retriever
	generative   Generative
	store        Store
	files        FileStorage
	now          clock
	maxChunkSize int
}

type Option func(*service)

// WithExtractor registers an extractor for a content type, e.g. "application/pdf".
func WithExtractor(contentType string, extractor Extractor) Option {
	return func(s *service) {
		s.extractors[contentType] = extractor
	}
}

// WithMaxChunkSize overrides the chunk size bound used when embedding
// document content.
func WithMaxChunkSize(size int) Option {
	return func(s *service) {
		s.maxChunkSize = size
	}
}

func New(embedder Embedder, retriever Retriever, generative Generative, storeAdapter Store, files FileStorage, options ...Option) *service {
	s := &service{
		extractors:   map[string]Extractor{},
		embedder:     embedder,
		retriever:    retriever,
		generative:   generative,
		store:        storeAdapter,
		files:        files,
		now:          func() time.Time { return time.Now().UTC() },
		maxChunkSize: DefaultMaxChunkSize,
	}

	for _, o := range options {
		o(s)
	}

	return s
}

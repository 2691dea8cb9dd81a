package smartdoc

import (
	"context"
	"database/sql"
	"io"
)

// Extractor turns uploaded file contents into ordered text passages.
type Extractor interface {
	Extract(ctx context.Context, fileName string, contents io.ReadSeeker) ([]Passage, error)
}

// Embedder encodes a piece of text as a vector. One call embeds one chunk.
type Embedder interface {
	Name() string
	EmbedContent(ctx context.Context, content string) (Vector, error)
}

// Retriever stores document-level vectors and returns the documents closest
// to a query vector.
type Retriever interface {
	Name() string
	SaveDocument(ctx context.Context, document Document, vector Vector) error
	SearchDocuments(ctx context.Context, vector Vector, limit int) ([]Document, error)
	DeleteDocument(ctx context.Context, id DocumentID) error
	Stats(ctx context.Context) (IndexStats, error)
}

// Generative synthesizes an answer to a question from retrieved documents.
type Generative interface {
	Generate(ctx context.Context, question Question, documents []Document) (Answer, error)
}

type Store interface {
	Transactional(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error
	SaveDocuments(ctx context.Context, documents ...*Document) error
	ListDocuments(ctx context.Context, filter DocumentFilter, params SortParams) ([]*Document, error)
	FindDocument(ctx context.Context, id DocumentID) (*Document, error)
	DeleteDocuments(ctx context.Context, documents ...*Document) error
}

type TempFile interface {
	io.ReadWriteCloser
	Name() string
}

type FileStorage interface {
	NewTempFile() (TempFile, error)
	DeleteTempFile(name string) error
}

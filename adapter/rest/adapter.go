package rest

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"smartdoc"
)

type Service interface {
	CreateDocument(ctx context.Context, file io.ReadSeeker, header *multipart.FileHeader) (*smartdoc.Document, error)
	ListDocuments(ctx context.Context) ([]*smartdoc.Document, error)
	FindDocument(ctx context.Context, id smartdoc.DocumentID) (*smartdoc.Document, error)
	DeleteDocument(ctx context.Context, id smartdoc.DocumentID) error
	Search(ctx context.Context, query string, limit int) ([]smartdoc.Document, error)
	Ask(ctx context.Context, question smartdoc.Question) (smartdoc.Answer, error)
	Stats(ctx context.Context) (smartdoc.IndexStats, error)
}

type Adapter struct {
	service Service
}

func New(service Service) *Adapter {
	return &Adapter{
		service: service,
	}
}

func (a *Adapter) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("POST /documents", a.uploadDocumentHandler)
	mux.HandleFunc("GET /documents", a.listDocumentsHandler)
	mux.HandleFunc("GET /documents/{id}", a.getDocumentHandler)
	mux.HandleFunc("DELETE /documents/{id}", a.deleteDocumentHandler)
	mux.HandleFunc("POST /search", a.searchHandler)
	mux.HandleFunc("POST /query", a.queryHandler)
	mux.HandleFunc("GET /stats", a.statsHandler)
	mux.HandleFunc("GET /health", a.healthHandler)
}

const (
	defaultTimeout = 3 * time.Second
	queryTimeout   = 60 * time.Second
)

package smartdoc

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
)

const (
	MB              = 1 << 20
	MaxDocumentSize = 20 * MB
)

type DocumentID struct{ uuid.UUID }

func NewDocumentID() DocumentID {
	return DocumentID{uuid.Must(uuid.NewV4())}
}

type DocumentStatus string

const (
	DocumentStatusUploaded              DocumentStatus = "UPLOADED"
	DocumentStatusProcessing            DocumentStatus = "PROCESSING"
	DocumentStatusProcessedSuccessfully DocumentStatus = "PROCESSED_SUCCESSFULLY"
	DocumentStatusProcessingFailed      DocumentStatus = "PROCESSING_FAILED"
)

type Document struct {
	ID            DocumentID
	FileName      string
	ContentType   string
	Extension     string
	Size          int64
	Hash          string
	Embedder      string // adapter used to generate the embedding for this document
	Retriever     string // adapter used to store/retrieve the embedding for this document
	Location      string
	Status        DocumentStatus
	StatusMessage string
	Content       string // extracted text, populated once processed
	Created       time.Time
	Updated       time.Time
}

// CompleteWithStatus changes the status of a document to a completion status,
// either DocumentStatusProcessedSuccessfully or DocumentStatusProcessingFailed.
func (d *Document) CompleteWithStatus(newStatus DocumentStatus, message string, updatedAt time.Time) error {
	if d.Status != DocumentStatusProcessing {
		return fmt.Errorf("cannot change status from %s to %s", d.Status, newStatus)
	}

	d.Status = newStatus
	d.StatusMessage = message
	d.Updated = updatedAt

	log.Printf("state change for document: %s status: %s", d.ID, d.Status)

	return nil
}

// Passage is a page-scoped fragment of extracted text. Passages are joined
// into the full document text before chunking.
type Passage struct {
	Content string
	Page    int
}

func (p Passage) Sanitize() Passage {
	p.Content = strings.TrimSpace(p.Content)
	p.Content = strings.Join(strings.Fields(p.Content), " ")
	return p
}

type DocumentFilter struct {
	Embedder          string
	Retriever         string
	Status            DocumentStatus
	LastUpdatedBefore time.Time
}

func (s *service) CreateDocument(ctx context.Context, file io.ReadSeeker, header *multipart.FileHeader) (*Document, error) {
	tempFile, err := s.files.NewTempFile()
	if err != nil {
		return nil, fmt.Errorf("error creating temp file: %w", err)
	}
	defer tempFile.Close()

	contentType, ok, err := checkContentType(file)
	if err != nil {
		return nil, fmt.Errorf("error checking content type: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("unsupported file type: %s", contentType)
	}

	// Reset the file offset to the beginning for further reading
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("error seeking file to start: %w", err)
	}

	log.Printf("uploading document: %s, size: %d, mime header: %v", header.Filename, header.Size, header.Header)

	hashWriter := sha256.New()
	size, err := io.Copy(tempFile, io.TeeReader(file, hashWriter))
	if err != nil {
		return nil, fmt.Errorf("error copying to temp file: %w", err)
	}

	aDocument := &Document{
		ID:          NewDocumentID(),
		FileName:    header.Filename,
		ContentType: contentType,
		Extension:   extensionFor(contentType, header.Filename),
		Size:        size,
		Hash:        hex.EncodeToString(hashWriter.Sum(nil)),
		Embedder:    s.embedder.Name(),
		Retriever:   s.retriever.Name(),
		Location:    tempFile.Name(),
		Status:      DocumentStatusUploaded,
		Created:     s.now(),
		Updated:     s.now(),
	}

	if err := s.store.Transactional(ctx, &sql.TxOptions{}, func(ctx context.Context) error {
		return s.store.SaveDocuments(ctx, aDocument)
	}); err != nil {
		return nil, fmt.Errorf("error saving document: %w", err)
	}

	return aDocument, nil
}

func (s *service) ListDocuments(ctx context.Context) ([]*Document, error) {
	var documents []*Document
	if err := s.store.Transactional(ctx, &sql.TxOptions{}, func(ctx context.Context) error {
		var err error
		documents, err = s.store.ListDocuments(ctx, DocumentFilter{
			Embedder:  s.embedder.Name(),
			Retriever: s.retriever.Name(),
		}, SortParams{Order: SortOrderDesc, By: `d."created"`})
		return err
	}); err != nil {
		return nil, err
	}
	return documents, nil
}

func (s *service) FindDocument(ctx context.Context, id DocumentID) (*Document, error) {
	var aDocument *Document
	if err := s.store.Transactional(ctx, &sql.TxOptions{}, func(ctx context.Context) error {
		var err error
		aDocument, err = s.store.FindDocument(ctx, id)
		return err
	}); err != nil {
		return nil, err
	}
	return aDocument, nil
}

func (s *service) DeleteDocument(ctx context.Context, id DocumentID) error {
	return s.store.Transactional(ctx, &sql.TxOptions{}, func(ctx context.Context) error {
		aDocument, err := s.store.FindDocument(ctx, id)
		if err != nil {
			return err
		}

		if err := s.store.DeleteDocuments(ctx, aDocument); err != nil {
			return fmt.Errorf("error deleting document: %w", err)
		}

		if err := s.retriever.DeleteDocument(ctx, id); err != nil {
			return fmt.Errorf("error deleting document from index: %w", err)
		}

		return nil
	})
}

var allowedContentTypes = map[string]struct{}{
	"application/pdf": {},
	"text/plain":      {},
}

func extensionFor(contentType, fileName string) string {
	switch contentType {
	case "application/pdf":
		return "pdf"
	case "text/plain":
		if idx := strings.LastIndex(fileName, "."); idx >= 0 && idx < len(fileName)-1 {
			return strings.ToLower(fileName[idx+1:])
		}
		return "txt"
	}
	return ""
}

func checkContentType(reader io.Reader) (string, bool, error) {
	contentType, err := detectContentType(reader)
	if err != nil {
		return "", false, err
	}
	// http.DetectContentType appends charset parameters to text types
	if mediaType, _, ok := strings.Cut(contentType, ";"); ok {
		contentType = strings.TrimSpace(mediaType)
	}
	_, ok := allowedContentTypes[contentType]
	return contentType, ok, nil
}

func detectContentType(reader io.Reader) (string, error) {
	// At most the first 512 bytes of data are used:
	// https://golang.org/src/net/http/sniff.go?s=646:688#L11
	buff := make([]byte, 512)

	bytesRead, err := reader.Read(buff)
	if err != nil && err != io.EOF {
		return "", err
	}

	// Slice to remove fill-up zero values which cause a wrong content type detection in the next step
	// (for example a text file which is smaller than 512 bytes)
	buff = buff[:bytesRead]

	return http.DetectContentType(buff), nil
}

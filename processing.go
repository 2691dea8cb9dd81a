package smartdoc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"sync"
	"time"
)

const (
	processInterval        = 1 * time.Second
	maxJitter              = 100 * time.Millisecond
	processDocumentTimeout = 15 * time.Minute
)

// ProcessDocuments runs the background loop that picks up uploaded documents
// and turns them into indexed embeddings. It returns a stop function that
// blocks until the loop has drained.
func (s *service) ProcessDocuments(ctx context.Context) func() {
	var (
		ticker = time.NewTicker(processInterval - maxJitter/2)
		rand   = rand.New(rand.NewSource(time.Now().UnixNano()))
		wg     = new(sync.WaitGroup)
	)
	wg.Go(func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if maxJitter > 0 {
					jitterDuration := time.Duration(rand.Int63n(int64(maxJitter)))
					if err := jitter(ctx, jitterDuration); err != nil {
						if !errors.Is(err, context.Canceled) {
							log.Println("random jitter failed:", err.Error())
						}
						return
					}
				}

				total, err := s.processDocuments(ctx)
				if err != nil {
					log.Println("error processing documents:", err.Error())
				} else if total > 0 {
					log.Printf("processed %d documents", total)
				}
			}
		}
	})

	return func() {
		wg.Wait()
		log.Println("Stopped processing documents")
	}
}

func jitter(ctx context.Context, jitterDuration time.Duration) error {
	select {
	case <-time.After(jitterDuration):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *service) processDocuments(ctx context.Context) (int, error) {
	var documents []*Document
	if err := s.store.Transactional(ctx, &sql.TxOptions{}, func(ctx context.Context) error {
		var err error
		documents, err = s.store.ListDocuments(ctx, DocumentFilter{
			Status: DocumentStatusUploaded,
		}, SortParams{
			Limit: 10,
			Order: SortOrderAsc,
			By:    `d."created"`,
		})
		if err != nil {
			return fmt.Errorf("list documents: %w", err)
		}

		if len(documents) == 0 {
			return nil
		}

		now := s.now()
		for _, aDocument := range documents {
			aDocument.Status = DocumentStatusProcessing
			aDocument.Updated = now
			log.Printf("state change for document: %s status: %s", aDocument.ID, aDocument.Status)
		}

		return s.store.SaveDocuments(ctx, documents...)
	}); err != nil {
		return 0, err
	}

	for _, aDocument := range documents {
		processCtx, cancel := context.WithTimeout(ctx, processDocumentTimeout)
		defer cancel()
		if err := s.processDocument(processCtx, aDocument); err != nil {
			if err := s.processingDocumentFailed(ctx, aDocument, err); err != nil {
				log.Printf("error setting status to failed for document: %s error %v", aDocument.ID, err)
			}
		}
	}

	// Now let's find documents that have been processing for too long and mark them as failed
	if err := s.store.Transactional(ctx, &sql.TxOptions{}, func(ctx context.Context) error {
		now := s.now()

		stuck, err := s.store.ListDocuments(ctx, DocumentFilter{
			Status:            DocumentStatusProcessing,
			LastUpdatedBefore: now.Add(-processDocumentTimeout),
		}, SortParams{})
		if err != nil {
			return fmt.Errorf("list documents: %w", err)
		}

		for _, aDocument := range stuck {
			if err := aDocument.CompleteWithStatus(DocumentStatusProcessingFailed, "timed out", now); err != nil {
				return fmt.Errorf("change status: %w", err)
			}
		}

		if err := s.store.SaveDocuments(ctx, stuck...); err != nil {
			return fmt.Errorf("save documents: %w", err)
		}

		return nil
	}); err != nil {
		return 0, err
	}

	return len(documents), nil
}

func (s *service) processDocument(ctx context.Context, aDocument *Document) error {
	contents, err := os.Open(aDocument.Location)
	if err != nil {
		return fmt.Errorf("opening document: %w", err)
	}
	defer func() {
		if err := s.files.DeleteTempFile(aDocument.Location); err != nil {
			log.Printf("error removing temp file: %s", aDocument.Location)
		}
		if err := contents.Close(); err != nil {
			log.Printf("error closing contents: %s", aDocument.Location)
		}
	}()

	log.Printf("processing document: %s location: %s", aDocument.ID, aDocument.Location)

	extractor, ok := s.extractors[aDocument.ContentType]
	if !ok {
		return fmt.Errorf("no extractor for content type: %s", aDocument.ContentType)
	}

	passages, err := extractor.Extract(ctx, aDocument.FileName, contents)
	if err != nil {
		return fmt.Errorf("extracting text: %w", err)
	}

	texts := make([]string, 0, len(passages))
	for _, aPassage := range passages {
		aPassage = aPassage.Sanitize()
		if aPassage.Content == "" {
			continue
		}
		texts = append(texts, aPassage.Content)
	}
	aDocument.Content = strings.Join(texts, " ")

	log.Printf("generating embedding for document: %s passages: %d", aDocument.ID, len(texts))

	vector, err := s.embedContent(ctx, aDocument.Content)
	if err != nil {
		return fmt.Errorf("generating embedding: %w", err)
	}

	if err := s.retriever.SaveDocument(ctx, *aDocument, vector); err != nil {
		return fmt.Errorf("saving embedding: %w", err)
	}

	return s.processingDocumentSucceeded(ctx, aDocument)
}

func (s *service) processingDocumentSucceeded(ctx context.Context, aDocument *Document) error {
	return s.store.Transactional(ctx, &sql.TxOptions{}, func(ctx context.Context) error {
		if err := aDocument.CompleteWithStatus(DocumentStatusProcessedSuccessfully, "", s.now()); err != nil {
			return fmt.Errorf("change status: %w", err)
		}
		return s.store.SaveDocuments(ctx, aDocument)
	})
}

func (s *service) processingDocumentFailed(ctx context.Context, aDocument *Document, perr error) error {
	return s.store.Transactional(ctx, &sql.TxOptions{}, func(ctx context.Context) error {
		if err := aDocument.CompleteWithStatus(DocumentStatusProcessingFailed, perr.Error(), s.now()); err != nil {
			return fmt.Errorf("change status: %w", err)
		}
		return s.store.SaveDocuments(ctx, aDocument)
	})
}

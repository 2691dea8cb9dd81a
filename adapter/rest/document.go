package rest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gofrs/uuid/v5"

	"smartdoc"
)

// Uploads are accepted quickly and processed in the background; the returned
// document can be polled for status.
const uploadTimeout = 30 * time.Second

type Document struct {
	ID            string    `json:"id"`
	FileName      string    `json:"file_name"`
	ContentType   string    `json:"content_type"`
	Extension     string    `json:"extension"`
	Size          int64     `json:"size"`
	Hash          string    `json:"hash"`
	Status        string    `json:"status"`
	StatusMessage string    `json:"status_message,omitempty"`
	Created       time.Time `json:"created"`
	Updated       time.Time `json:"updated"`
}

type Documents struct {
	Documents []Document `json:"documents"`
}

// Upload a document and index its embedding in the knowledge base
// (POST /documents)
func (a *Adapter) uploadDocumentHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), uploadTimeout)
	defer cancel()

	// Limit memory usage to 20MB, anything over this limit will be stored in a temporary file.
	r.ParseMultipartForm(smartdoc.MaxDocumentSize)

	// Limit the size of the request body to prevent large uploads. This will return
	// io.MaxBytesError if the request body exceeds the limit while being read.
	r.Body = http.MaxBytesReader(w, r.Body, smartdoc.MaxDocumentSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		renderJSONError(w, http.StatusBadRequest, fmt.Errorf("error reading file from request: %w", err))
		return
	}
	defer file.Close()

	aDocument, err := a.service.CreateDocument(ctx, file, header)
	if err != nil {
		renderJSONError(w, http.StatusInternalServerError, fmt.Errorf("error creating document: %w", err))
		return
	}

	w.WriteHeader(http.StatusCreated)
	renderJSON(w, mapDocument(aDocument))
}

// List uploaded documents
// (GET /documents)
func (a *Adapter) listDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaultTimeout)
	defer cancel()

	documents, err := a.service.ListDocuments(ctx)
	if err != nil {
		log.Printf("error listing documents: %v", err)
		renderJSONError(w, http.StatusInternalServerError, fmt.Errorf("error listing documents: %w", err))
		return
	}

	renderJSON(w, mapDocuments(documents))
}

// Get a single document by ID
// (GET /documents/{id})
func (a *Adapter) getDocumentHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaultTimeout)
	defer cancel()

	id, err := uuid.FromString(r.PathValue("id"))
	if err != nil {
		renderJSONError(w, http.StatusBadRequest, fmt.Errorf("invalid document ID: %w", err))
		return
	}

	aDocument, err := a.service.FindDocument(ctx, smartdoc.DocumentID{UUID: id})
	if err != nil {
		if errors.Is(err, smartdoc.ErrNotFound) {
			renderJSONError(w, http.StatusNotFound, fmt.Errorf("document not found"))
			return
		}
		log.Printf("error finding document: %v", err)
		renderJSONError(w, http.StatusInternalServerError, fmt.Errorf("error finding document: %w", err))
		return
	}

	renderJSON(w, mapDocument(aDocument))
}

// Delete a document and its index entry
// (DELETE /documents/{id})
func (a *Adapter) deleteDocumentHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaultTimeout)
	defer cancel()

	id, err := uuid.FromString(r.PathValue("id"))
	if err != nil {
		renderJSONError(w, http.StatusBadRequest, fmt.Errorf("invalid document ID: %w", err))
		return
	}

	if err := a.service.DeleteDocument(ctx, smartdoc.DocumentID{UUID: id}); err != nil {
		if errors.Is(err, smartdoc.ErrNotFound) {
			renderJSONError(w, http.StatusNotFound, fmt.Errorf("document not found"))
			return
		}
		log.Printf("error deleting document: %v", err)
		renderJSONError(w, http.StatusInternalServerError, fmt.Errorf("error deleting document: %w", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func mapDocument(document *smartdoc.Document) Document {
	return Document{
		ID:            document.ID.String(),
		FileName:      document.FileName,
		ContentType:   document.ContentType,
		Extension:     document.Extension,
		Size:          document.Size,
		Hash:          document.Hash,
		Status:        string(document.Status),
		StatusMessage: document.StatusMessage,
		Created:       document.Created,
		Updated:       document.Updated,
	}
}

func mapDocuments(documents []*smartdoc.Document) Documents {
	apiResponse := Documents{
		Documents: make([]Document, 0, len(documents)),
	}
	for _, aDocument := range documents {
		apiResponse.Documents = append(apiResponse.Documents, mapDocument(aDocument))
	}
	return apiResponse
}

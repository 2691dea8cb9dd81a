package rest

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"smartdoc"
)

type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

type SearchResult struct {
	FileName string `json:"file_name"`
	Content  string `json:"content"`
}

type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

const maxSearchLimit = 100

// Find documents similar to a query
// (POST /search)
func (a *Adapter) searchHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	sr := new(SearchRequest)
	if err := readRequestJSON(r, sr); err != nil {
		renderJSONError(w, http.StatusBadRequest, err)
		return
	}
	if sr.Query == "" {
		renderJSONError(w, http.StatusBadRequest, fmt.Errorf("missing query"))
		return
	}
	if sr.Limit > maxSearchLimit {
		renderJSONError(w, http.StatusBadRequest, fmt.Errorf("limit cannot be greater than %d", maxSearchLimit))
		return
	}

	documents, err := a.service.Search(ctx, sr.Query, sr.Limit)
	if err != nil {
		log.Printf("error searching documents: %v", err)
		renderJSONError(w, http.StatusInternalServerError, fmt.Errorf("error searching documents: %w", err))
		return
	}

	response := SearchResponse{
		Results: make([]SearchResult, 0, len(documents)),
	}
	for _, aDocument := range documents {
		response.Results = append(response.Results, SearchResult{
			FileName: aDocument.FileName,
			Content:  aDocument.Content,
		})
	}

	renderJSON(w, response)
}

type QueryRequest struct {
	Question string `json:"question"`
}

type QueryResponse struct {
	Answer  string         `json:"answer"`
	Sources []SearchResult `json:"sources"`
}

// Answer a question using the knowledge base
// (POST /query)
func (a *Adapter) queryHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	qr := new(QueryRequest)
	if err := readRequestJSON(r, qr); err != nil {
		renderJSONError(w, http.StatusBadRequest, err)
		return
	}
	if qr.Question == "" {
		renderJSONError(w, http.StatusBadRequest, fmt.Errorf("missing question"))
		return
	}

	answer, err := a.service.Ask(ctx, smartdoc.Question{Content: qr.Question})
	if err != nil {
		log.Printf("error generating answer: %v", err)
		renderJSONError(w, http.StatusInternalServerError, fmt.Errorf("error generating answer: %w", err))
		return
	}

	response := QueryResponse{
		Answer:  answer.Text,
		Sources: make([]SearchResult, 0, len(answer.Documents)),
	}
	for _, aDocument := range answer.Documents {
		response.Sources = append(response.Sources, SearchResult{
			FileName: aDocument.FileName,
			Content:  aDocument.Content,
		})
	}

	renderJSON(w, response)
}

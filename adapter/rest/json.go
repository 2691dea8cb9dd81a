package rest

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
)

func renderJSON(w http.ResponseWriter, v any) {
	js, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(js)
}

type errorResponse struct {
	Error string `json:"error"`
}

func renderJSONError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	js, merr := json.Marshal(errorResponse{Error: err.Error()})
	if merr != nil {
		return
	}
	w.Write(js)
}

func readRequestJSON(req *http.Request, target any) error {
	contentType := req.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return fmt.Errorf("parsing content type: %w", err)
	}
	if mediaType != "application/json" {
		return fmt.Errorf("expected application/json content type, got %s", mediaType)
	}

	dec := json.NewDecoder(req.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(target)
}

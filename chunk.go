package smartdoc

import (
	"errors"
	"regexp"
	"strings"
)

// DefaultMaxChunkSize keeps chunks comfortably below the input limits of
// hosted embedding models.
const DefaultMaxChunkSize = 8000

var ErrInvalidChunkSize = errors.New("chunk size must be positive")

// Chunk is a bounded-length contiguous piece of a document's text.
type Chunk string

var sentenceDelimiters = regexp.MustCompile(`[.!?]+`)

// SplitIntoChunks splits text into chunks of at most maxChunkSize characters.
// Text is cut on sentence boundaries where possible; a sentence longer than
// maxChunkSize is further split on word boundaries; a single word longer than
// maxChunkSize is emitted unsplit. Chunks are trimmed of surrounding
// whitespace, empty chunks are dropped and sentence terminators are
// normalized to a single period.
func SplitIntoChunks(text string, maxChunkSize int) ([]Chunk, error) {
	if maxChunkSize <= 0 {
		return nil, ErrInvalidChunkSize
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	var (
		chunks  []Chunk
		current string
	)

	emit := func() {
		if trimmed := strings.TrimSpace(current); trimmed != "" {
			chunks = append(chunks, Chunk(trimmed))
		}
		current = ""
	}

	for _, sentence := range sentenceDelimiters.Split(text, -1) {
		if strings.TrimSpace(sentence) == "" {
			continue
		}

		if len(current)+len(sentence)+1 <= maxChunkSize {
			current += sentence + "."
			continue
		}

		emit()

		if len(sentence)+1 <= maxChunkSize {
			current = sentence + "."
			continue
		}

		// The sentence alone does not fit, fall back to word boundaries.
		for _, word := range strings.Fields(sentence) {
			if current == "" {
				current = word
				continue
			}
			if len(current)+len(word)+1 > maxChunkSize {
				emit()
				current = word
				continue
			}
			current += " " + word
		}
	}

	emit()

	return chunks, nil
}

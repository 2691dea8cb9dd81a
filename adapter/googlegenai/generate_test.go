package googlegenai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"smartdoc"
)

func TestMatchSnippets(t *testing.T) {
	t.Parallel()

	documents := []smartdoc.Document{
		{FileName: "a.txt", Content: "The quick brown fox jumps over the lazy dog."},
		{FileName: "b.txt", Content: "Revenue grew by 12 percent year over year."},
		{FileName: "c.txt", Content: "The company operates in 14 countries."},
	}

	testCases := []struct {
		name     string
		snippets []string
		expected []string
	}{
		{
			name:     "no snippets",
			snippets: nil,
			expected: []string{},
		},
		{
			name:     "single snippet matches one document",
			snippets: []string{"Revenue grew by 12 percent"},
			expected: []string{"b.txt"},
		},
		{
			name:     "multiple snippets joined by new lines",
			snippets: []string{"quick brown fox\noperates in 14 countries"},
			expected: []string{"a.txt", "c.txt"},
		},
		{
			name:     "duplicate snippets match a document only once",
			snippets: []string{"lazy dog", "quick brown fox"},
			expected: []string{"a.txt"},
		},
		{
			name:     "unknown snippet matches nothing",
			snippets: []string{"this text appears nowhere"},
			expected: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			matched := matchSnippets(tc.snippets, documents)

			fileNames := make([]string, 0, len(matched))
			for _, doc := range matched {
				fileNames = append(fileNames, doc.FileName)
			}
			assert.Equal(t, tc.expected, fileNames)
		})
	}
}

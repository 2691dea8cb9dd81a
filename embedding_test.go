package smartdoc

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmbedder struct {
	vector Vector
	calls  []string
}

func (f *fakeEmbedder) Name() string { return "fake" }

func (f *fakeEmbedder) EmbedContent(ctx context.Context, content string) (Vector, error) {
	f.calls = append(f.calls, content)
	return f.vector, nil
}

type fakeRetriever struct {
	saved     []Document
	documents []Document
}

func (f *fakeRetriever) Name() string { return "fake" }

func (f *fakeRetriever) SaveDocument(ctx context.Context, document Document, vector Vector) error {
	f.saved = append(f.saved, document)
	return nil
}

func (f *fakeRetriever) SearchDocuments(ctx context.Context, vector Vector, limit int) ([]Document, error) {
	return f.documents, nil
}

func (f *fakeRetriever) DeleteDocument(ctx context.Context, id DocumentID) error { return nil }

func (f *fakeRetriever) Stats(ctx context.Context) (IndexStats, error) {
	return IndexStats{Retriever: f.Name()}, nil
}

type fakeGenerative struct {
	answer Answer
}

func (f *fakeGenerative) Generate(ctx context.Context, question Question, documents []Document) (Answer, error) {
	f.answer.Documents = documents
	return f.answer, nil
}

func TestEmbedContent_OneCallPerChunk(t *testing.T) {
	t.Parallel()

	embedder := &fakeEmbedder{vector: Vector{1, 2, 3}}
	s := New(embedder, &fakeRetriever{}, &fakeGenerative{}, nil, nil, WithMaxChunkSize(20))

	text := "One two three. Four five six. Seven."

	chunks, err := SplitIntoChunks(text, 20)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	vector, err := s.embedContent(context.Background(), text)
	require.NoError(t, err)

	// One embedding call per chunk, issued in document order.
	require.Len(t, embedder.calls, len(chunks))
	for i, aChunk := range chunks {
		assert.Equal(t, string(aChunk), embedder.calls[i])
	}

	// All chunk vectors are identical so the average equals any of them.
	assert.Equal(t, Vector{1, 2, 3}, vector)
}

func TestEmbedContent_SingleChunkPassThrough(t *testing.T) {
	t.Parallel()

	embedder := &fakeEmbedder{vector: Vector{0.25, -0.5}}
	s := New(embedder, &fakeRetriever{}, &fakeGenerative{}, nil, nil)

	vector, err := s.embedContent(context.Background(), "A short document.")
	require.NoError(t, err)

	require.Len(t, embedder.calls, 1)
	assert.Equal(t, Vector{0.25, -0.5}, vector)
}

func TestEmbedContent_EmptyContent(t *testing.T) {
	t.Parallel()

	s := New(&fakeEmbedder{}, &fakeRetriever{}, &fakeGenerative{}, nil, nil)

	_, err := s.embedContent(context.Background(), "   ")
	assert.Error(t, err)
}

func TestAsk(t *testing.T) {
	t.Parallel()

	var (
		embedder   = &fakeEmbedder{vector: Vector{1, 0}}
		documents  = []Document{{ID: NewDocumentID(), FileName: "report.pdf", Content: "Revenue grew by 12%."}}
		retriever  = &fakeRetriever{documents: documents}
		generative = &fakeGenerative{answer: Answer{Text: "Revenue grew by twelve percent."}}
	)

	s := New(embedder, retriever, generative, nil, nil)

	answer, err := s.Ask(context.Background(), Question{Content: "How much did revenue grow?"})
	require.NoError(t, err)
	assert.Equal(t, "Revenue grew by twelve percent.", answer.Text)
	assert.Equal(t, documents, answer.Documents)
}

func TestAsk_NoDocuments(t *testing.T) {
	t.Parallel()

	s := New(&fakeEmbedder{vector: Vector{1}}, &fakeRetriever{}, &fakeGenerative{}, nil, nil)

	_, err := s.Ask(context.Background(), Question{Content: "Anything at all?"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "no documents found"))
}

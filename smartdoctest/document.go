package smartdoctest

import (
	"time"

	"smartdoc"
)

type DocumentOption func(*smartdoc.Document)

func WithFileName(fileName string) DocumentOption {
	return func(d *smartdoc.Document) {
		d.FileName = fileName
	}
}

func WithEmbedder(embedder string) DocumentOption {
	return func(d *smartdoc.Document) {
		d.Embedder = embedder
	}
}

func WithRetriever(retriever string) DocumentOption {
	return func(d *smartdoc.Document) {
		d.Retriever = retriever
	}
}

func WithStatus(status smartdoc.DocumentStatus) DocumentOption {
	return func(d *smartdoc.Document) {
		d.Status = status
	}
}

func WithContent(content string) DocumentOption {
	return func(d *smartdoc.Document) {
		d.Content = content
	}
}

func WithCreated(created time.Time) DocumentOption {
	return func(d *smartdoc.Document) {
		d.Created = created
	}
}

func WithUpdated(updated time.Time) DocumentOption {
	return func(d *smartdoc.Document) {
		d.Updated = updated
	}
}

func (g *DataGen) Document(options ...DocumentOption) *smartdoc.Document {
	aDocument := smartdoc.Document{
		ID:          smartdoc.NewDocumentID(),
		FileName:    g.Name() + ".pdf",
		ContentType: "application/pdf",
		Extension:   "pdf",
		Size:        g.Int64(),
		Hash:        g.LetterN(25),
		Embedder:    g.Name(),
		Retriever:   g.Name(),
		Location:    g.Word(),
		Status:      smartdoc.DocumentStatusUploaded,
		Created:     g.now,
		Updated:     g.now,
	}

	for _, o := range options {
		o(&aDocument)
	}

	return &aDocument
}

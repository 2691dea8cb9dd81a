package document

import (
	"github.com/neurosnap/sentences"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Adapter extracts passages from a PDF by asking a multimodal model to
// summarize each page. Useful for documents where layout or tables defeat
// plain text extraction.
type Adapter struct {
	client    *genai.Client
	tokenizer sentences.SentenceTokenizer
	model     string
	logger    *zap.Logger
}

type Option func(*Adapter)

func WithModel(model string) Option {
	return func(a *Adapter) {
		a.model = model
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

const defaultModel = "gemini-2.5-flash"

func New(client *genai.Client, tokenizer sentences.SentenceTokenizer, options ...Option) *Adapter {
	a := &Adapter{
		client:    client,
		tokenizer: tokenizer,
		model:     defaultModel,
		logger:    zap.NewNop(),
	}

	for _, o := range options {
		o(a)
	}

	a.logger.Sugar().With(
		"model", a.model,
	).Info("init document adapter")

	return a
}

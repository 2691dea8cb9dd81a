package openai

import (
	"github.com/openai/openai-go"
	"go.uber.org/zap"
)

type Adapter struct {
	client          openai.Client
	embeddingModel  openai.EmbeddingModel
	generativeModel openai.ChatModel
	logger          *zap.Logger
}

type Option func(*Adapter)

func WithEmbeddingModel(model openai.EmbeddingModel) Option {
	return func(a *Adapter) {
		a.embeddingModel = model
	}
}

func WithGenerativeModel(model openai.ChatModel) Option {
	return func(a *Adapter) {
		a.generativeModel = model
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

func New(client openai.Client, options ...Option) *Adapter {
	a := &Adapter{
		client:          client,
		embeddingModel:  openai.EmbeddingModelTextEmbedding3Small,
		generativeModel: openai.ChatModelGPT4oMini,
		logger:          zap.NewNop(),
	}

	for _, o := range options {
		o(a)
	}

	a.logger.Sugar().With(
		"embedding model", a.embeddingModel,
		"generative model", a.generativeModel,
	).Info("init openai adapter")

	return a
}

const adapterName = "openai"

func (a *Adapter) Name() string {
	return adapterName
}

package pdf

import (
	"github.com/neurosnap/sentences"
	"go.uber.org/zap"
)

type Adapter struct {
	tokenizer sentences.SentenceTokenizer
	logger    *zap.Logger
}

type Option func(*Adapter)

func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

func New(tokenizer sentences.SentenceTokenizer, options ...Option) *Adapter {
	a := &Adapter{
		tokenizer: tokenizer,
		logger:    zap.NewNop(),
	}

	for _, o := range options {
		o(a)
	}

	a.logger.Info("init pdf adapter")

	return a
}

package text

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/neurosnap/sentences"
	"go.uber.org/zap"

	"smartdoc"
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

	a.logger.Info("init text adapter")

	return a
}

func (a *Adapter) Extract(ctx context.Context, fileName string, contents io.ReadSeeker) ([]smartdoc.Passage, error) {
	data, err := io.ReadAll(contents)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", fileName, err)
	}

	passages := make([]smartdoc.Passage, 0, 100)
	for _, aSentence := range a.tokenizer.Tokenize(string(data)) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		aPassage := smartdoc.Passage{
			Content: strings.TrimSpace(aSentence.Text),
			Page:    1,
		}
		if aPassage.Content == "" {
			continue
		}
		passages = append(passages, aPassage)
	}

	a.logger.Sugar().Infof("extracted %d passages from %s", len(passages), fileName)

	return passages, nil
}

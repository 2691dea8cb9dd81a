package qdrant

import (
	"context"
	"fmt"

	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"
)

type Adapter struct {
	client         *qdrant.Client
	collectionName string
	vectorDim      int
	logger         *zap.Logger
}

type Option func(*Adapter)

func WithCollectionName(name string) Option {
	return func(a *Adapter) {
		a.collectionName = name
	}
}

func WithVectorDim(dim int) Option {
	return func(a *Adapter) {
		a.vectorDim = dim
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

const (
	defaultCollectionName = "documents"
	defaultVectorDim      = 768
)

func New(ctx context.Context, client *qdrant.Client, options ...Option) (*Adapter, error) {
	a := &Adapter{
		client:         client,
		collectionName: defaultCollectionName,
		vectorDim:      defaultVectorDim,
		logger:         zap.NewNop(),
	}

	for _, o := range options {
		o(a)
	}

	a.logger.Sugar().With(
		"collection", a.collectionName,
		"vector dim", a.vectorDim,
	).Info("init qdrant adapter")

	return a, a.init(ctx)
}

func (a *Adapter) init(ctx context.Context) error {
	exists, err := a.client.CollectionExists(ctx, a.collectionName)
	if err != nil {
		return fmt.Errorf("qdrant error: %w", err)
	}
	if exists {
		return nil
	}

	err = a.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: a.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(a.vectorDim),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("err create collection: %w", err)
	}

	return nil
}

const adapterName = "qdrant"

func (a *Adapter) Name() string {
	return adapterName
}

package filestorage

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"smartdoc"
)

type Adapter struct {
	dir    string
	logger *zap.Logger
}

type Option func(*Adapter)

func WithDir(dir string) Option {
	return func(a *Adapter) {
		a.dir = dir
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

func New(opts ...Option) (*Adapter, error) {
	a := &Adapter{
		dir:    os.TempDir(),
		logger: zap.NewNop(),
	}

	for _, o := range opts {
		o(a)
	}

	_, err := os.Stat(a.dir)
	if err != nil {
		return nil, err
	}

	a.logger.Sugar().With(
		"directory", a.dir,
	).Info("init filestorage adapter")

	return a, nil
}

func (a *Adapter) NewTempFile() (smartdoc.TempFile, error) {
	return os.CreateTemp(a.dir, "document*")
}

func (a *Adapter) DeleteTempFile(name string) error {
	if filepath.Dir(name) != filepath.Clean(a.dir) {
		return os.ErrPermission
	}
	return os.Remove(name)
}

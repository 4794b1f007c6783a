package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	pkgopenapi "github.com/goliatone/go-fileview/pkg/openapi"
)

// Loader implements pkgopenapi.Loader for file and fs.FS sources.
type Loader struct {
	fs fs.FS
}

var _ pkgopenapi.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options pkgopenapi.LoaderOptions) pkgopenapi.Loader {
	return &Loader{fs: options.FileSystem}
}

// Load reads a document from the provided source and wraps it in a Document.
func (l *Loader) Load(ctx context.Context, src pkgopenapi.Source) (pkgopenapi.Document, error) {
	if src == nil {
		return pkgopenapi.Document{}, errors.New("openapi loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return pkgopenapi.Document{}, err
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case pkgopenapi.SourceKindFile:
		data, err = loadFile(src.Location())
	case pkgopenapi.SourceKindFS:
		data, err = loadFromFS(l.fs, src.Location())
	default:
		err = fmt.Errorf("openapi loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return pkgopenapi.Document{}, err
	}

	return pkgopenapi.NewDocument(src, data)
}

func loadFile(path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("openapi loader: file path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("openapi loader: read %s: %w", path, err)
	}
	return data, nil
}

func loadFromFS(filesystem fs.FS, name string) ([]byte, error) {
	if filesystem == nil {
		return nil, errors.New("openapi loader: filesystem is not configured")
	}
	if name == "" {
		return nil, errors.New("openapi loader: fs path is required")
	}
	data, err := fs.ReadFile(filesystem, name)
	if err != nil {
		return nil, fmt.Errorf("openapi loader: read %s: %w", name, err)
	}
	return data, nil
}

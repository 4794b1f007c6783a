package forms

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	internalLoader "github.com/goliatone/go-fileview/internal/openapi/loader"
	internalParser "github.com/goliatone/go-fileview/internal/openapi/parser"
	"github.com/goliatone/go-fileview/pkg/model"
	pkgopenapi "github.com/goliatone/go-fileview/pkg/openapi"
)

// DocumentName is the name of the embedded OpenAPI document.
const DocumentName = "openapi.yaml"

// Operation ids described by the embedded document.
const (
	CreateDir         = "createDir"
	RenameFile        = "renameFile"
	GenerateShareLink = "generateShareLink"
	SearchFiles       = "searchFiles"
)

// ErrUnknownForm is returned when a catalog has no form for an operation id.
var ErrUnknownForm = errors.New("forms: unknown form")

//go:embed openapi.yaml
var embedded embed.FS

// FS exposes the embedded OpenAPI document.
func FS() fs.FS {
	return embedded
}

// Option customises how the catalog is loaded.
type Option func(*config)

type config struct {
	loader     pkgopenapi.Loader
	parser     pkgopenapi.Parser
	builder    model.Builder
	source     pkgopenapi.Source
	fsys       fs.FS
	decorators []model.Decorator
}

// WithDocument loads the forms from an OpenAPI document on disk instead of
// the embedded one.
func WithDocument(path string) Option {
	return func(c *config) {
		c.source = pkgopenapi.SourceFromFile(path)
		c.fsys = nil
	}
}

// WithFS loads the forms from name inside fsys.
func WithFS(fsys fs.FS, name string) Option {
	return func(c *config) {
		c.source = pkgopenapi.SourceFromFS(name)
		c.fsys = fsys
	}
}

// WithLoader injects a custom OpenAPI loader.
func WithLoader(loader pkgopenapi.Loader) Option {
	return func(c *config) {
		c.loader = loader
	}
}

// WithParser injects a custom OpenAPI parser.
func WithParser(parser pkgopenapi.Parser) Option {
	return func(c *config) {
		c.parser = parser
	}
}

// WithModelBuilder injects a custom form model builder.
func WithModelBuilder(builder model.Builder) Option {
	return func(c *config) {
		c.builder = builder
	}
}

// WithDecorators registers decorators applied to every built form, in order.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(c *config) {
		c.decorators = append(c.decorators, decorators...)
	}
}

// Catalog holds the built forms keyed by operation id.
type Catalog struct {
	forms map[string]model.FormModel
	ids   []string
}

// Load reads the OpenAPI document, parses every operation and builds a form
// for each one.
func Load(ctx context.Context, options ...Option) (*Catalog, error) {
	cfg := config{
		source: pkgopenapi.SourceFromFS(DocumentName),
		fsys:   embedded,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.loader == nil {
		var loaderOpts []pkgopenapi.LoaderOption
		if cfg.fsys != nil {
			loaderOpts = append(loaderOpts, pkgopenapi.WithFileSystem(cfg.fsys))
		}
		cfg.loader = internalLoader.New(pkgopenapi.NewLoaderOptions(loaderOpts...))
	}
	if cfg.parser == nil {
		cfg.parser = internalParser.New(pkgopenapi.NewParserOptions())
	}
	if cfg.builder == nil {
		cfg.builder = model.NewBuilder()
	}

	doc, err := cfg.loader.Load(ctx, cfg.source)
	if err != nil {
		return nil, fmt.Errorf("forms: load %s: %w", cfg.source.Location(), err)
	}
	operations, err := cfg.parser.Operations(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("forms: parse %s: %w", doc.Location(), err)
	}

	catalog := &Catalog{forms: make(map[string]model.FormModel, len(operations))}
	for id, op := range operations {
		form, err := cfg.builder.Build(op)
		if err != nil {
			return nil, fmt.Errorf("forms: build %q: %w", id, err)
		}
		for _, decorator := range cfg.decorators {
			if decorator == nil {
				continue
			}
			if err := decorator.Decorate(&form); err != nil {
				return nil, fmt.Errorf("forms: decorate %q: %w", id, err)
			}
		}
		catalog.forms[id] = form
		catalog.ids = append(catalog.ids, id)
	}
	sort.Strings(catalog.ids)
	return catalog, nil
}

// Form returns the form built for the operation id. The returned value has
// its own Fields slice.
func (c *Catalog) Form(id string) (model.FormModel, error) {
	if c == nil {
		return model.FormModel{}, fmt.Errorf("%w %q", ErrUnknownForm, id)
	}
	form, ok := c.forms[id]
	if !ok {
		return model.FormModel{}, fmt.Errorf("%w %q", ErrUnknownForm, id)
	}
	form.Fields = append([]model.Field(nil), form.Fields...)
	return form, nil
}

// IDs lists the operation ids in the catalog, sorted.
func (c *Catalog) IDs() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.ids...)
}

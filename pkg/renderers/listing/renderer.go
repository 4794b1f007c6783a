// Package listing renders the file browser's HTML: the directory listing page
// and the request forms. Form inputs carry the native constraint attributes
// (required, pattern, minlength, maxlength, min, max, type) so the browser
// enforces the same rules as validation.ConstraintForm.
package listing

import (
	"context"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/goliatone/go-fileview/pkg/files"
	"github.com/goliatone/go-fileview/pkg/icons"
	"github.com/goliatone/go-fileview/pkg/model"
	"github.com/goliatone/go-fileview/pkg/render"
	rendertemplate "github.com/goliatone/go-fileview/pkg/render/template"
	"github.com/goliatone/go-fileview/pkg/render/template/gotemplate"
)

const inputExtension = "x-fileview-input"

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	icons            *icons.Set
	submitLabel      string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithIcons replaces the embedded icon set.
func WithIcons(set *icons.Set) Option {
	return func(cfg *config) {
		if set != nil {
			cfg.icons = set
		}
	}
}

// WithSubmitLabel sets the text of the forms' submit button.
func WithSubmitLabel(label string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			cfg.submitLabel = trimmed
		}
	}
}

// Renderer produces HTML for listings and forms.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	icons       *icons.Set
	submitLabel string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), submitLabel: "Submit"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.icons == nil {
		cfg.icons = icons.Default()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("listing renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, icons: cfg.icons, submitLabel: cfg.submitLabel}, nil
}

// Name identifies the renderer.
func (r *Renderer) Name() string {
	return "listing"
}

// ContentType is the media type of the rendered output.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes form as an HTML form element.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if r == nil || r.templates == nil {
		return nil, fmt.Errorf("listing renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := r.templates.RenderTemplate(FormTemplate, map[string]any{
		"form": r.formView(form, options),
	})
	if err != nil {
		return nil, fmt.Errorf("listing renderer: render form %q: %w", form.OperationID, err)
	}
	return []byte(result), nil
}

// ListingOptions configure a listing page.
type ListingOptions struct {
	// Path is the directory being listed; it titles the page.
	Path string
	// Title overrides the page title.
	Title string
	// LinkFor builds each entry's href. Defaults to DefaultLink.
	LinkFor func(files.File) string
	// Forms are pre-rendered form fragments appended below the table.
	Forms [][]byte
	// EmptyMessage is shown when there are no records.
	EmptyMessage string
}

// RenderListing writes the directory listing page. Records are shown
// directories first, then by name; the input slice is not reordered.
func (r *Renderer) RenderListing(ctx context.Context, records []files.File, options ListingOptions) ([]byte, error) {
	if r == nil || r.templates == nil {
		return nil, fmt.Errorf("listing renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sorted := append([]files.File(nil), records...)
	files.SortForDisplay(sorted)

	linkFor := options.LinkFor
	if linkFor == nil {
		linkFor = DefaultLink
	}

	rows := make([]map[string]any, 0, len(sorted))
	for _, record := range sorted {
		rows = append(rows, map[string]any{
			"name":          record.Name,
			"path":          record.Path,
			"file_type":     string(record.Type),
			"size":          record.Size,
			"last_modified": record.LastModified,
			"icon":          r.icons.For(record),
			"href":          linkFor(record),
		})
	}

	title := options.Title
	if title == "" {
		dir := options.Path
		if dir == "" {
			dir = "/"
		}
		title = "Index of " + dir
	}
	empty := options.EmptyMessage
	if empty == "" {
		empty = "This folder is empty."
	}

	forms := make([]string, 0, len(options.Forms))
	for _, fragment := range options.Forms {
		forms = append(forms, string(fragment))
	}

	result, err := r.templates.RenderTemplate(ListingTemplate, map[string]any{
		"title":         title,
		"rows":          rows,
		"forms":         forms,
		"empty_message": empty,
	})
	if err != nil {
		return nil, fmt.Errorf("listing renderer: render listing: %w", err)
	}
	return []byte(result), nil
}

// DefaultLink opens directories through the listing query string and files
// through the file content endpoint.
func DefaultLink(record files.File) string {
	if record.IsDir() {
		return "?path=" + url.QueryEscape(record.Path)
	}
	segments := strings.Split(strings.TrimPrefix(record.Path, "/"), "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return "/file/" + strings.Join(segments, "/")
}

// Package fileview is the presentation layer of a web file manager: display
// formatting for file records, the request forms the browser submits, and
// HTML-style constraint validation of those forms.
//
// The helpers live in sub-packages; this package re-exports the common entry
// points.
package fileview

import (
	"context"
	"fmt"

	"github.com/goliatone/go-fileview/pkg/files"
	"github.com/goliatone/go-fileview/pkg/format"
	"github.com/goliatone/go-fileview/pkg/forms"
	"github.com/goliatone/go-fileview/pkg/model"
	"github.com/goliatone/go-fileview/pkg/render"
	"github.com/goliatone/go-fileview/pkg/renderers/listing"
	"github.com/goliatone/go-fileview/pkg/validation"
)

// File is a directory listing entry.
type File = files.File

// Record is the part of a file entry IsDir reads.
type Record = files.Record

// Form is the constraint validation contract ValidateForm consumes.
type Form = validation.Form

// FormModel describes a request form.
type FormModel = model.FormModel

// RenderOptions carries per-request values, errors and hidden fields.
type RenderOptions = render.RenderOptions

// ErrInvalidTimestamp is returned by FormatTimestamp for out of range input.
var ErrInvalidTimestamp = format.ErrInvalidTimestamp

// Capitalize uppercases the first character of text.
func Capitalize(text string) string {
	return format.Capitalize(text)
}

// FormatTimestamp renders epoch milliseconds as "YYYY-MM-DD HH:MM" in UTC.
func FormatTimestamp(ms int64) (string, error) {
	return format.FormatTimestamp(ms)
}

// Number lists the byte count types FormatSize accepts, fractional ones
// included.
type Number = format.Number

// FormatSize renders a byte count for display.
func FormatSize[T Number](size T) string {
	return format.FormatSize(size)
}

// IsDir reports whether record is a directory or the root.
func IsDir(record Record) bool {
	return files.IsDir(record)
}

// ValidateForm checks form and reports its problems when it is invalid.
func ValidateForm(form Form) bool {
	return validation.ValidateForm(form)
}

// RenderListing renders the HTML listing page for records with the embedded
// templates and icons.
func RenderListing(ctx context.Context, records []File, options listing.ListingOptions, rendererOptions ...listing.Option) ([]byte, error) {
	renderer, err := listing.New(rendererOptions...)
	if err != nil {
		return nil, err
	}
	return renderer.RenderListing(ctx, records, options)
}

// RenderForm loads the embedded form catalog and renders the form for
// operationID as HTML.
func RenderForm(ctx context.Context, operationID string, options RenderOptions, rendererOptions ...listing.Option) ([]byte, error) {
	catalog, err := forms.Load(ctx)
	if err != nil {
		return nil, err
	}
	form, err := catalog.Form(operationID)
	if err != nil {
		return nil, err
	}
	renderer, err := listing.New(rendererOptions...)
	if err != nil {
		return nil, err
	}
	out, err := renderer.Render(ctx, form, options)
	if err != nil {
		return nil, fmt.Errorf("fileview: render %s: %w", operationID, err)
	}
	return out, nil
}

package fileview_test

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"

	fileview "github.com/goliatone/go-fileview"
	"github.com/goliatone/go-fileview/pkg/files"
	"github.com/goliatone/go-fileview/pkg/forms"
	"github.com/goliatone/go-fileview/pkg/renderers/listing"
)

func TestHelpers(t *testing.T) {
	if got := fileview.Capitalize("file"); got != "File" {
		t.Fatalf("Capitalize: got %q", got)
	}
	if got := fileview.FormatSize(1536); got != "1.5 kB" {
		t.Fatalf("FormatSize: got %q", got)
	}
	if got := fileview.FormatSize(1536.5); got != "1.5 kB" {
		t.Fatalf("FormatSize(float): got %q", got)
	}
	if got := fileview.FormatSize(0.5); got != "0.5 B" {
		t.Fatalf("FormatSize(fractional): got %q", got)
	}
	if got := fileview.FormatSize(uint32(0)); got != "-" {
		t.Fatalf("FormatSize(uint32): got %q", got)
	}
	if got, err := fileview.FormatTimestamp(0); err != nil || got != "1970-01-01 00:00" {
		t.Fatalf("FormatTimestamp: got %q, %v", got, err)
	}
	if _, err := fileview.FormatTimestamp(8.64e15 + 1); !errors.Is(err, fileview.ErrInvalidTimestamp) {
		t.Fatalf("expected ErrInvalidTimestamp, got %v", err)
	}
	if !fileview.IsDir(files.TypeName("ROOT")) || fileview.IsDir(files.TypeName("file")) {
		t.Fatal("IsDir mismatch")
	}
	if !fileview.ValidateForm(nil) {
		t.Fatal("nil form should be valid")
	}
}

func TestRenderForm(t *testing.T) {
	out, err := fileview.RenderForm(context.Background(), forms.SearchFiles, fileview.RenderOptions{})
	if err != nil {
		t.Fatalf("render form: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, `action="/file/search" method="get"`) {
		t.Fatalf("unexpected form:\n%s", html)
	}

	if _, err := fileview.RenderForm(context.Background(), "missing", fileview.RenderOptions{}); !errors.Is(err, forms.ErrUnknownForm) {
		t.Fatalf("expected ErrUnknownForm, got %v", err)
	}
}

func TestRenderListing(t *testing.T) {
	out, err := fileview.RenderListing(context.Background(), []fileview.File{
		{Name: "a.txt", Path: "/a.txt", Type: files.FileTypeText, Size: 2048},
	}, listing.ListingOptions{Path: "/"})
	if err != nil {
		t.Fatalf("render listing: %v", err)
	}
	if !strings.Contains(string(out), "2.0 kB") {
		t.Fatalf("expected formatted size:\n%s", out)
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	for _, name := range []string{"templates/listing.tpl", "templates/form.tpl"} {
		if _, err := fs.Stat(fileview.EmbeddedTemplates(), name); err != nil {
			t.Fatalf("stat %s: %v", name, err)
		}
	}
	if len(fileview.DefaultIcons().Types()) == 0 {
		t.Fatal("expected default icons")
	}
}

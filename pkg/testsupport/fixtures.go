package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fileview/pkg/files"
	"github.com/goliatone/go-fileview/pkg/forms"
	pkgmodel "github.com/goliatone/go-fileview/pkg/model"
)

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// SampleListing returns a directory listing in the order the backend sends
// it: unsorted, mixing directories and files.
func SampleListing() []files.File {
	return []files.File{
		{Name: "notes.txt", Path: "/docs/notes.txt", Type: files.FileTypeText, Size: 1280, LastModified: 1700000000000},
		{Name: "Photos", Path: "/docs/Photos", Type: files.FileTypeDir, Size: 0, LastModified: 0},
		{Name: "clip.mp4", Path: "/docs/clip.mp4", Type: files.FileTypeVideo, Size: 1048575, LastModified: 1700000060000},
		{Name: "archive", Path: "/docs/archive", Type: files.FileTypeDir, Size: 0, LastModified: 1600000000000},
		{Name: "empty.bin", Path: "/docs/empty.bin", Type: files.FileTypeFile, Size: 0, LastModified: -1},
	}
}

// MustLoadForm builds the embedded form for an operation id.
func MustLoadForm(t *testing.T, id string) pkgmodel.FormModel {
	t.Helper()

	catalog, err := forms.Load(Context())
	if err != nil {
		t.Fatalf("load forms: %v", err)
	}
	form, err := catalog.Form(id)
	if err != nil {
		t.Fatalf("form %q: %v", id, err)
	}
	return form
}

// AssertGolden compares got with the golden file at path. With UPDATE_GOLDENS
// set the golden is rewritten instead.
func AssertGolden(t *testing.T, path string, got []byte) {
	t.Helper()

	if WriteMaybeGolden(t, path, got) {
		return
	}
	want := MustReadGoldenString(t, path)
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Fatalf("golden %s mismatch (-want +got):\n%s", path, diff)
	}
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}

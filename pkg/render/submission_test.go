package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fileview/pkg/render"
)

func TestMergeAndSortHiddenFields(t *testing.T) {
	base := map[string]string{
		" existing ": "keep",
		"":           "ignored",
	}

	merged := render.MergeHiddenFields(base,
		render.CSRFToken("_csrf", "token123"),
		render.Hidden(" parent ", "/docs"),
		render.Hidden("  ", "skip"),
	)

	wantMerged := map[string]string{
		"existing": "keep",
		"_csrf":    "token123",
		"parent":   "/docs",
	}
	if diff := cmp.Diff(wantMerged, merged); diff != "" {
		t.Fatalf("merged hidden fields mismatch (-want +got):\n%s", diff)
	}

	sorted := render.SortedHiddenFields(merged)
	wantSorted := []render.HiddenField{
		{Name: "_csrf", Value: "token123"},
		{Name: "existing", Value: "keep"},
		{Name: "parent", Value: "/docs"},
	}
	if diff := cmp.Diff(wantSorted, sorted); diff != "" {
		t.Fatalf("sorted hidden fields mismatch (-want +got):\n%s", diff)
	}

	if render.SortedHiddenFields(map[string]string{" ": "x"}) != nil {
		t.Fatal("expected nil for blank names only")
	}
}

func TestFormMethod(t *testing.T) {
	tests := []struct {
		in       string
		method   string
		override string
	}{
		{"", "POST", ""},
		{"post", "POST", ""},
		{"GET", "GET", ""},
		{"put", "POST", "PUT"},
		{"DELETE", "POST", "DELETE"},
	}
	for _, tt := range tests {
		method, override := render.FormMethod(tt.in)
		if method != tt.method {
			t.Fatalf("FormMethod(%q) method = %q, want %q", tt.in, method, tt.method)
		}
		got := ""
		if override != nil {
			if override.Name != render.MethodOverrideField {
				t.Fatalf("unexpected override name %q", override.Name)
			}
			got = override.Value
		}
		if got != tt.override {
			t.Fatalf("FormMethod(%q) override = %q, want %q", tt.in, got, tt.override)
		}
	}
}

func TestExpandEndpoint(t *testing.T) {
	tests := []struct {
		endpoint string
		values   map[string]string
		want     string
	}{
		{"/file/{path}", map[string]string{"path": "docs/a b.txt"}, "/file/docs%2Fa%20b.txt"},
		{"/file/{path}", nil, "/file/{path}"},
		{"/dir", map[string]string{"path": "x"}, "/dir"},
		{"/a/{x}/b/{y}", map[string]string{"x": "1", "y": "2"}, "/a/1/b/2"},
		{"/broken/{x", map[string]string{"x": "1"}, "/broken/{x"},
	}
	for _, tt := range tests {
		if got := render.ExpandEndpoint(tt.endpoint, tt.values); got != tt.want {
			t.Fatalf("ExpandEndpoint(%q) = %q, want %q", tt.endpoint, got, tt.want)
		}
	}
}

package listing_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-fileview/pkg/files"
	"github.com/goliatone/go-fileview/pkg/forms"
	"github.com/goliatone/go-fileview/pkg/icons"
	"github.com/goliatone/go-fileview/pkg/model"
	"github.com/goliatone/go-fileview/pkg/render"
	"github.com/goliatone/go-fileview/pkg/renderers/listing"
	"github.com/goliatone/go-fileview/pkg/testsupport"
	"github.com/goliatone/go-fileview/pkg/validation"
)

func newRenderer(t *testing.T, options ...listing.Option) *listing.Renderer {
	t.Helper()
	renderer, err := listing.New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func assertContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, html)
		}
	}
}

func TestRenderListing(t *testing.T) {
	renderer := newRenderer(t)
	records := testsupport.SampleListing()
	original := append([]files.File(nil), records...)

	out, err := renderer.RenderListing(context.Background(), records, listing.ListingOptions{Path: "/docs"})
	if err != nil {
		t.Fatalf("render listing: %v", err)
	}
	html := string(out)

	assertContains(t, html,
		"<title>Index of /docs</title>",
		`<a href="?path=%2Fdocs%2Farchive">archive</a>`,
		`<a href="/file/docs/notes.txt">notes.txt</a>`,
		`<td class="size">1.3 kB</td>`,
		`<td class="size">1.0 MB</td>`,
		`<td class="modified">2023-11-14 22:13</td>`,
		`<td class="modified">1969-12-31 23:59</td>`,
		`class="is-dir" data-type="dir"`,
		"<svg",
	)

	order := []string{">archive<", ">Photos<", ">clip.mp4<", ">empty.bin<", ">notes.txt<"}
	last := -1
	for _, name := range order {
		idx := strings.Index(html, name)
		if idx <= last {
			t.Fatalf("expected %s after previous entry (index %d, previous %d)", name, idx, last)
		}
		last = idx
	}

	if strings.Count(html, `<td class="size">-</td>`) != 3 {
		t.Fatalf("expected directories and the empty file to show '-'\n%s", html)
	}

	for i := range records {
		if records[i] != original[i] {
			t.Fatal("input records were reordered")
		}
	}
}

func TestRenderListingEmptyAndEscaped(t *testing.T) {
	renderer := newRenderer(t)

	out, err := renderer.RenderListing(context.Background(), nil, listing.ListingOptions{Title: `<b>"mine"</b>`})
	if err != nil {
		t.Fatalf("render listing: %v", err)
	}
	assertContains(t, string(out),
		"<title>&lt;b&gt;&quot;mine&quot;&lt;/b&gt;</title>",
		"This folder is empty.",
	)
}

func TestRenderCreateDirForm(t *testing.T) {
	renderer := newRenderer(t, listing.WithSubmitLabel("Create"))
	form := testsupport.MustLoadForm(t, forms.CreateDir)

	out, err := renderer.Render(context.Background(), form, render.RenderOptions{
		Values: map[string]string{"parent": "/docs"},
		Hidden: render.MergeHiddenFields(nil, render.CSRFToken("_csrf", "tok")),
	})
	if err != nil {
		t.Fatalf("render form: %v", err)
	}
	html := string(out)

	assertContains(t, html,
		`<form class="fileview-form" id="createDir" action="/dir" method="post">`,
		`<input type="hidden" name="_csrf" value="tok">`,
		`<input type="hidden" id="createDir-parent" name="parent" value="/docs">`,
		`<label for="createDir-name">Folder name</label>`,
		`name="name" value="" required minlength="1" maxlength="255" pattern="[^\/\\]+" placeholder="New folder">`,
		`<button type="submit">Create</button>`,
	)
}

func TestRenderFormMethodOverrideAndErrors(t *testing.T) {
	renderer := newRenderer(t)
	form := testsupport.MustLoadForm(t, forms.RenameFile)

	values := map[string]string{"path": "docs/a.txt", "new_name": ""}
	check := validation.NewConstraintForm(form, values)
	if check.CheckValidity() {
		t.Fatal("expected empty new_name to be invalid")
	}

	out, err := renderer.Render(context.Background(), form, render.RenderOptions{
		Values:     values,
		Errors:     render.ErrorsFromIssues(check.Issues()),
		FormErrors: []string{"Rename failed"},
	})
	if err != nil {
		t.Fatalf("render form: %v", err)
	}
	assertContains(t, string(out),
		`action="/file/docs%2Fa.txt" method="post"`,
		`<input type="hidden" name="_method" value="PUT">`,
		`<p class="fileview-form-error" role="alert">Rename failed</p>`,
		`<div class="fileview-field has-error">`,
		`<p class="fileview-field-error" role="alert">Please fill out this field.</p>`,
		`aria-invalid="true"`,
	)
}

func TestRenderNumericAndEnumFields(t *testing.T) {
	renderer := newRenderer(t)
	zero, hundred := "0", "100"
	form := model.FormModel{
		OperationID: "settings",
		Endpoint:    "/settings",
		Method:      "POST",
		Fields: []model.Field{
			{
				Name: "expire", Label: "Expire", Type: model.FieldTypeInteger, Required: true,
				Validations: []model.ValidationRule{
					{Kind: model.ValidationRuleMin, Params: map[string]string{"value": zero, "exclusive": "true"}},
					{Kind: model.ValidationRuleMax, Params: map[string]string{"value": hundred}},
				},
			},
			{
				Name: "ratio", Label: "Ratio", Type: model.FieldTypeNumber,
				Validations: []model.ValidationRule{
					{Kind: model.ValidationRuleMax, Params: map[string]string{"value": "1", "exclusive": "true"}},
				},
			},
			{Name: "mode", Label: "Mode", Type: model.FieldTypeString, Enum: []any{"read", "write"}},
			{Name: "notify", Label: "Notify", Type: model.FieldTypeBoolean, Default: true},
			{Name: "contact", Label: "Contact", Type: model.FieldTypeString, Format: "email"},
		},
	}

	out, err := renderer.Render(context.Background(), form, render.RenderOptions{Values: map[string]string{"mode": "write"}})
	if err != nil {
		t.Fatalf("render form: %v", err)
	}
	assertContains(t, string(out),
		`type="number" id="settings-expire" name="expire" value="" required min="1" max="100" step="1">`,
		`max="1" data-exclusive-max="true" step="any">`,
		`<option value="write" selected>write</option>`,
		`<option value=""></option>`,
		`type="checkbox" id="settings-notify" name="notify" checked>`,
		`type="email" id="settings-contact"`,
	)
}

func TestWithTemplatesFSAndIcons(t *testing.T) {
	custom := fstest.MapFS{
		"templates/listing.tpl": {Data: []byte(`{% for row in rows %}[{{ row.icon|safe }}{{ row.name }}]{% endfor %}`)},
		"templates/form.tpl":    {Data: []byte(`form:{{ form.id }}`)},
	}
	set, err := icons.Parse([]byte("icons:\n  file: '<svg class=\"only\"></svg>'\n"), "test.yaml")
	if err != nil {
		t.Fatalf("icons: %v", err)
	}
	renderer := newRenderer(t, listing.WithTemplatesFS(custom), listing.WithIcons(set))

	out, err := renderer.RenderListing(context.Background(), []files.File{{Name: "a.txt", Type: files.FileTypeText}}, listing.ListingOptions{})
	if err != nil {
		t.Fatalf("render listing: %v", err)
	}
	if string(out) != `[<svg class="only"></svg>a.txt]` {
		t.Fatalf("unexpected output: %q", out)
	}

	formOut, err := renderer.Render(context.Background(), model.FormModel{OperationID: "x"}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render form: %v", err)
	}
	if string(formOut) != "form:x" {
		t.Fatalf("unexpected form output: %q", formOut)
	}
}

func TestRenderHonoursCancelledContext(t *testing.T) {
	renderer := newRenderer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := renderer.RenderListing(ctx, nil, listing.ListingOptions{}); err == nil {
		t.Fatal("expected context error")
	}
}

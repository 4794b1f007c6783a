package forms_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fileview/pkg/forms"
	"github.com/goliatone/go-fileview/pkg/model"
)

func TestLoadEmbeddedCatalog(t *testing.T) {
	catalog, err := forms.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	wantIDs := []string{forms.CreateDir, forms.GenerateShareLink, forms.RenameFile, forms.SearchFiles}
	if diff := cmp.Diff(wantIDs, catalog.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	createDir, err := catalog.Form(forms.CreateDir)
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	if createDir.Method != "POST" || createDir.Endpoint != "/dir" {
		t.Fatalf("unexpected endpoint: %s %s", createDir.Method, createDir.Endpoint)
	}

	want := []model.Field{
		{
			Name:        "name",
			Type:        model.FieldTypeString,
			Required:    true,
			Label:       "Folder name",
			Placeholder: "New folder",
			Validations: []model.ValidationRule{
				{Kind: model.ValidationRuleMinLength, Params: map[string]string{"value": "1"}},
				{Kind: model.ValidationRuleMaxLength, Params: map[string]string{"value": "255"}},
				{Kind: model.ValidationRulePattern, Params: map[string]string{"pattern": `[^\/\\]+`}},
			},
		},
		{
			Name:     "parent",
			Type:     model.FieldTypeString,
			Required: true,
			Label:    "Parent directory",
			Metadata: map[string]string{"x-fileview-input": "hidden"},
		},
	}
	if diff := cmp.Diff(want, createDir.Fields); diff != "" {
		t.Fatalf("createDir fields mismatch (-want +got):\n%s", diff)
	}

	share, err := catalog.Form(forms.GenerateShareLink)
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	expire, ok := share.Field("expire")
	if !ok {
		t.Fatal("expire field missing")
	}
	rule, ok := expire.Rule(model.ValidationRuleMin)
	if !ok || rule.Params["exclusive"] != "true" || rule.Params["value"] != "0" {
		t.Fatalf("unexpected expire min rule: %+v", rule)
	}

	search, err := catalog.Form(forms.SearchFiles)
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	keywords, ok := search.Field("keywords")
	if !ok || !keywords.Required || keywords.Label != "Keywords" {
		t.Fatalf("unexpected keywords field: %+v", keywords)
	}
}

func TestCatalogFormReturnsCopies(t *testing.T) {
	catalog, err := forms.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	first, _ := catalog.Form(forms.RenameFile)
	first.Fields[0] = model.Field{Name: "changed"}

	second, _ := catalog.Form(forms.RenameFile)
	if second.Fields[0].Name != "new_name" {
		t.Fatalf("catalog was mutated through a returned form: %+v", second.Fields[0])
	}
}

func TestCatalogUnknownForm(t *testing.T) {
	catalog, err := forms.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := catalog.Form("deleteEverything"); !errors.Is(err, forms.ErrUnknownForm) {
		t.Fatalf("expected ErrUnknownForm, got %v", err)
	}
}

func TestLoadFromFSAndDecorators(t *testing.T) {
	fsys := fstest.MapFS{
		"api.yaml": {Data: []byte(`openapi: 3.0.3
info: {title: t, version: "1"}
paths:
  /note:
    post:
      operationId: addNote
      requestBody:
        content:
          application/json:
            schema:
              type: object
              properties:
                body: {type: string}
      responses:
        "200": {description: ok}
`)},
	}

	stamp := model.DecoratorFunc(func(form *model.FormModel) error {
		if form.Metadata == nil {
			form.Metadata = map[string]string{}
		}
		form.Metadata["decorated"] = "yes"
		return nil
	})

	catalog, err := forms.Load(context.Background(), forms.WithFS(fsys, "api.yaml"), forms.WithDecorators(stamp))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	form, err := catalog.Form("addNote")
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	if form.Metadata["decorated"] != "yes" || form.Fields[0].Label != "Body" {
		t.Fatalf("unexpected form: %+v", form)
	}

	failing := model.DecoratorFunc(func(*model.FormModel) error { return errors.New("boom") })
	if _, err := forms.Load(context.Background(), forms.WithFS(fsys, "api.yaml"), forms.WithDecorators(failing)); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected decorator error, got %v", err)
	}
}

func TestLoadMissingDocument(t *testing.T) {
	_, err := forms.Load(context.Background(), forms.WithDocument("does/not/exist.yaml"))
	if err == nil || !strings.Contains(err.Error(), "forms: load") {
		t.Fatalf("expected load error, got %v", err)
	}
}

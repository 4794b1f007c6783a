package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fileview/pkg/forms"
	"github.com/goliatone/go-fileview/pkg/model"
	"github.com/goliatone/go-fileview/pkg/render"
	"github.com/goliatone/go-fileview/pkg/testsupport"
	"github.com/goliatone/go-fileview/pkg/validation"
)

type stubDriver struct {
	inputs       []string
	passwords    []string
	confirm      []bool
	selectIdx    []int
	infoMessages []string
	prompted     []string
	inputPos     int
	passPos      int
	confirmPos   int
	selectPos    int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	s.prompted = append(s.prompted, cfg.Message)
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, cfg InputConfig) (string, error) {
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	s.prompted = append(s.prompted, cfg.Message)
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	s.prompted = append(s.prompted, cfg.Message)
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	s.prompted = append(s.prompted, cfg.Message)
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func newRenderer(t *testing.T, driver PromptDriver, options ...Option) *Renderer {
	t.Helper()
	r, err := New(append([]Option{WithPromptDriver(driver)}, options...)...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func TestRender_CreateDirRepromptsInvalidAnswers(t *testing.T) {
	driver := &stubDriver{inputs: []string{"", "a/b", "photos"}}
	r := newRenderer(t, driver)
	form := testsupport.MustLoadForm(t, forms.CreateDir)

	out, err := r.Render(context.Background(), form, render.RenderOptions{
		Values: map[string]string{"parent": "/docs"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if diff := cmp.Diff(`{"name":"photos","parent":"/docs"}`, string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	wantInfo := []string{
		"Create a directory",
		"Folder name: Please fill out this field.",
		"Folder name: Please match the requested format.",
	}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Folder name", "Folder name", "Folder name"}, driver.prompted); diff != "" {
		t.Fatalf("prompts mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_ShareLinkTypesNumbers(t *testing.T) {
	driver := &stubDriver{inputs: []string{"0", "1700000000000"}}
	r := newRenderer(t, driver)
	form := testsupport.MustLoadForm(t, forms.GenerateShareLink)

	out, err := r.Render(context.Background(), form, render.RenderOptions{
		Values: map[string]string{"path": "docs/a.txt"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if diff := cmp.Diff(`{"expire":1700000000000,"path":"docs/a.txt"}`, string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	if got := driver.infoMessages[len(driver.infoMessages)-1]; got != "Expires at (epoch ms): Value must be greater than 0." {
		t.Fatalf("unexpected last message %q", got)
	}
}

func TestRender_ServerErrorsForcePrompt(t *testing.T) {
	driver := &stubDriver{inputs: []string{"photos 2"}}
	r := newRenderer(t, driver, WithTheme(Theme{ErrorPrefix: "! "}))
	form := testsupport.MustLoadForm(t, forms.CreateDir)

	out, err := r.Render(context.Background(), form, render.RenderOptions{
		Values:     map[string]string{"parent": "/docs", "name": "photos"},
		Errors:     map[string][]string{"name": {"Folder already exists"}},
		FormErrors: []string{"Create failed"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if diff := cmp.Diff(`{"name":"photos 2","parent":"/docs"}`, string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	wantInfo := []string{"! Create failed", "Create a directory", "! Folder name: Folder already exists"}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func settingsForm() model.FormModel {
	return model.FormModel{
		OperationID: "settings",
		Fields: []model.Field{
			{Name: "notify", Label: "Notify", Type: model.FieldTypeBoolean},
			{Name: "mode", Label: "Mode", Type: model.FieldTypeString, Enum: []any{"read", "write"}, Required: true},
			{Name: "secret", Label: "Secret", Type: model.FieldTypeString, Format: "password"},
			{Name: "note", Label: "Note", Type: model.FieldTypeString},
		},
	}
}

func TestRender_FormEncodedOutput(t *testing.T) {
	driver := &stubDriver{
		confirm:   []bool{true},
		selectIdx: []int{1},
		passwords: []string{"s3cret"},
		inputs:    []string{""},
	}
	r := newRenderer(t, driver, WithOutputFormat(OutputFormatFormURLEncoded))
	if r.ContentType() != "application/x-www-form-urlencoded" {
		t.Fatalf("unexpected content type %q", r.ContentType())
	}

	out, err := r.Render(context.Background(), settingsForm(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if diff := cmp.Diff("mode=write&note=&notify=true&secret=s3cret", string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_PrettyOutputAndTransformer(t *testing.T) {
	driver := &stubDriver{
		confirm:   []bool{false},
		selectIdx: []int{0},
		passwords: []string{""},
		inputs:    []string{"hello"},
	}
	r := newRenderer(t, driver,
		WithOutputFormat(OutputFormatPrettyText),
		WithSubmitTransformer(func(values map[string]string) (map[string]string, error) {
			values["extra"] = "1"
			return values, nil
		}),
	)

	out, err := r.Render(context.Background(), settingsForm(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "Notify: false\nMode: read\nSecret: \nNote: hello\nextra: 1\n"
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_JSONDropsEmptyOptionalFields(t *testing.T) {
	driver := &stubDriver{
		confirm:   []bool{false},
		selectIdx: []int{0},
		passwords: []string{""},
		inputs:    []string{""},
	}
	r := newRenderer(t, driver)

	out, err := r.Render(context.Background(), settingsForm(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if diff := cmp.Diff(`{"mode":"read","notify":false}`, string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_MaxAttempts(t *testing.T) {
	driver := &stubDriver{inputs: []string{"", ""}}
	r := newRenderer(t, driver, WithMaxAttempts(2))
	form := testsupport.MustLoadForm(t, forms.CreateDir)

	_, err := r.Render(context.Background(), form, render.RenderOptions{Values: map[string]string{"parent": "/"}})
	if !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestRender_DriverErrorPropagates(t *testing.T) {
	r := newRenderer(t, &stubDriver{})
	form := testsupport.MustLoadForm(t, forms.CreateDir)

	if _, err := r.Render(context.Background(), form, render.RenderOptions{}); err == nil {
		t.Fatal("expected driver error")
	}
}

func TestRender_CancelledContext(t *testing.T) {
	r := newRenderer(t, &stubDriver{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Render(ctx, settingsForm(), render.RenderOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestReporterPrintsIssues(t *testing.T) {
	driver := &stubDriver{}
	r := newRenderer(t, driver, WithTheme(Theme{ErrorPrefix: "error: "}))
	form := testsupport.MustLoadForm(t, forms.CreateDir)

	check := validation.NewConstraintForm(form, map[string]string{"parent": "/", "name": ""},
		validation.WithReporter(r.Reporter(context.Background())))
	if validation.ValidateForm(check) {
		t.Fatal("expected invalid form")
	}
	want := []string{"error: Folder name: Please fill out this field."}
	if diff := cmp.Diff(want, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(WithPromptDriver(&stubDriver{}), WithOutputFormat("yaml")); err == nil {
		t.Fatal("expected error for unknown output format")
	}
}

func TestFillFormKeepsValidValues(t *testing.T) {
	driver := &stubDriver{inputs: []string{"report.txt"}}
	form := testsupport.MustLoadForm(t, forms.RenameFile)
	values := map[string]string{"path": "docs/a.txt", "new_name": "a/b"}

	got, err := FillForm(context.Background(), driver, form, values)
	if err != nil {
		t.Fatalf("fill form: %v", err)
	}
	want := map[string]string{"path": "docs/a.txt", "new_name": "report.txt"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if values["new_name"] != "a/b" {
		t.Fatalf("input values were modified: %v", values)
	}
	if driver.inputPos != 1 {
		t.Fatalf("expected one prompt, got %d", driver.inputPos)
	}
}

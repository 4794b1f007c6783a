// Package tui fills request forms from a terminal. Values already supplied
// are kept when they satisfy the field's constraints; everything else is
// prompted for and checked with the same rules the HTML forms enforce.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-fileview/pkg/model"
	"github.com/goliatone/go-fileview/pkg/render"
	"github.com/goliatone/go-fileview/pkg/validation"
)

const inputExtension = "x-fileview-input"

// Renderer implements render.Renderer for terminal-driven sessions.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	maxAttempts       int
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{outputFormat: OutputFormatJSON}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unknown output format %q", r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts for every field of form that has no valid value in
// opts.Values, then serializes the collected values. Field errors in
// opts.Errors force a re-prompt for that field.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	state := NewState(opts.Values, opts.Errors)
	for _, message := range render.MergeFormErrors(opts.FormErrors) {
		_ = r.driver.Info(ctx, r.theme.ErrorPrefix+message)
	}
	if form.Summary != "" {
		_ = r.driver.Info(ctx, r.theme.InfoPrefix+form.Summary)
	}

	for _, field := range form.Fields {
		if err := r.fillField(ctx, field, state); err != nil {
			return nil, err
		}
	}

	values := state.Values()
	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(form, values)
}

// Reporter returns a validation.Reporter that prints issues through the
// renderer's driver.
func (r *Renderer) Reporter(ctx context.Context) validation.Reporter {
	return validation.ReportFunc(func(issues []validation.Issue) {
		for _, issue := range issues {
			label := issue.Label
			if label == "" {
				label = issue.Field
			}
			_ = r.driver.Info(ctx, fmt.Sprintf("%s%s: %s", r.theme.ErrorPrefix, label, issue.Message))
		}
	})
}

// FillForm prompts through driver for every field of form that lacks a valid
// value and returns the completed values. values is not modified.
func FillForm(ctx context.Context, driver PromptDriver, form model.FormModel, values map[string]string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}
	r := &Renderer{driver: driver, outputFormat: OutputFormatJSON}
	state := NewState(values, nil)
	for _, field := range form.Fields {
		if err := r.fillField(ctx, field, state); err != nil {
			return nil, err
		}
	}
	return state.Values(), nil
}

func (r *Renderer) fillField(ctx context.Context, field model.Field, state *State) error {
	if current, ok := state.Value(field.Name); ok && len(state.ErrorsFor(field.Name)) == 0 {
		if _, valid := validation.CheckField(field, current); valid {
			return nil
		}
	}
	for _, message := range state.ErrorsFor(field.Name) {
		_ = r.driver.Info(ctx, fmt.Sprintf("%s%s: %s", r.theme.ErrorPrefix, displayLabel(field), message))
	}

	attempts := 0
	for {
		answer, err := r.ask(ctx, field, state)
		if err != nil {
			return err
		}
		issue, valid := validation.CheckField(field, answer)
		if valid {
			state.SetValue(field.Name, answer)
			return nil
		}

		attempts++
		_ = r.driver.Info(ctx, fmt.Sprintf("%s%s: %s", r.theme.ErrorPrefix, displayLabel(field), issue.Message))
		if r.maxAttempts > 0 && attempts >= r.maxAttempts {
			return fmt.Errorf("%w: %s", ErrTooManyAttempts, field.Name)
		}
	}
}

func (r *Renderer) ask(ctx context.Context, field model.Field, state *State) (string, error) {
	label := displayLabel(field)
	help := displayHelp(field)
	current := currentValue(field, state)

	if field.Type == model.FieldTypeBoolean {
		checked, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: label,
			Default: isTrue(current),
			Help:    help,
		})
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(checked), nil
	}

	if len(field.Enum) > 0 {
		options := stringifyEnum(field.Enum)
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      options,
			DefaultIndex: indexOf(options, current),
			Help:         help,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(options) {
			return "", nil
		}
		return options[idx], nil
	}

	cfg := InputConfig{
		Message: label,
		Default: current,
		Help:    help,
		Validator: func(answer string) error {
			if issue, ok := validation.CheckField(field, answer); !ok {
				return errors.New(issue.Message)
			}
			return nil
		},
	}
	if isSecret(field) {
		cfg.Default = ""
		return r.driver.Password(ctx, cfg)
	}
	return r.driver.Input(ctx, cfg)
}

func (r *Renderer) serialize(form model.FormModel, values map[string]string) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		encoded := url.Values{}
		for key, value := range values {
			encoded.Set(key, value)
		}
		return []byte(encoded.Encode()), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(form, values)), nil
	default:
		payload, err := json.Marshal(typedValues(form, values))
		if err != nil {
			return nil, fmt.Errorf("tui: encode values: %w", err)
		}
		return payload, nil
	}
}

// typedValues converts answers to the JSON types the request body expects.
// Empty optional fields are dropped.
func typedValues(form model.FormModel, values map[string]string) map[string]any {
	out := make(map[string]any, len(values))
	for key, value := range values {
		out[key] = value
	}
	for _, field := range form.Fields {
		value, ok := values[field.Name]
		if !ok {
			continue
		}
		if value == "" && !field.Required && field.Type != model.FieldTypeBoolean {
			delete(out, field.Name)
			continue
		}
		switch field.Type {
		case model.FieldTypeBoolean:
			out[field.Name] = isTrue(value)
		case model.FieldTypeInteger:
			if n, err := strconv.ParseInt(value, 10, 64); err == nil {
				out[field.Name] = n
			} else if f, err := strconv.ParseFloat(value, 64); err == nil {
				out[field.Name] = int64(f)
			}
		case model.FieldTypeNumber:
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				out[field.Name] = f
			}
		}
	}
	return out
}

func prettyPrint(form model.FormModel, values map[string]string) string {
	var b strings.Builder
	seen := make(map[string]struct{}, len(form.Fields))
	for _, field := range form.Fields {
		seen[field.Name] = struct{}{}
		if value, ok := values[field.Name]; ok {
			fmt.Fprintf(&b, "%s: %s\n", displayLabel(field), value)
		}
	}
	extra := NewState(values, nil)
	for _, name := range extra.Names() {
		if _, ok := seen[name]; ok {
			continue
		}
		value, _ := extra.Value(name)
		fmt.Fprintf(&b, "%s: %s\n", name, value)
	}
	return b.String()
}

func currentValue(field model.Field, state *State) string {
	if value, ok := state.Value(field.Name); ok {
		return value
	}
	if field.Default != nil {
		return fmt.Sprint(field.Default)
	}
	return ""
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func displayHelp(field model.Field) string {
	if field.Description != "" {
		return field.Description
	}
	return field.Placeholder
}

func isSecret(field model.Field) bool {
	return strings.EqualFold(field.Format, "password") || strings.EqualFold(field.Metadata[inputExtension], "password")
}

func isTrue(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "on", "1":
		return true
	}
	return false
}

func stringifyEnum(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, fmt.Sprint(v))
	}
	return out
}

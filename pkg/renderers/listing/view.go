package listing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-fileview/pkg/model"
	"github.com/goliatone/go-fileview/pkg/render"
)

type attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type option struct {
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
}

type fieldView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Input       string   `json:"input"`
	Value       string   `json:"value"`
	Checked     bool     `json:"checked"`
	Required    bool     `json:"required"`
	Description string   `json:"description"`
	Attrs       []attr   `json:"attrs"`
	Options     []option `json:"options"`
	Errors      []string `json:"errors"`
}

func (r *Renderer) formView(form model.FormModel, options render.RenderOptions) map[string]any {
	method := options.Method
	if method == "" {
		method = form.Method
	}
	formMethod, override := render.FormMethod(method)

	var extra []render.HiddenField
	if override != nil {
		extra = append(extra, *override)
	}
	hidden := render.SortedHiddenFields(render.MergeHiddenFields(options.Hidden, extra...))

	fields := make([]fieldView, 0, len(form.Fields))
	for _, field := range form.Fields {
		fields = append(fields, buildField(form.OperationID, field, options))
	}

	hiddenViews := make([]map[string]string, 0, len(hidden))
	for _, h := range hidden {
		hiddenViews = append(hiddenViews, map[string]string{"name": h.Name, "value": h.Value})
	}
	return map[string]any{
		"id":      form.OperationID,
		"action":  render.ExpandEndpoint(form.Endpoint, options.Values),
		"method":  strings.ToLower(formMethod),
		"summary": form.Summary,
		"submit":  r.submitLabel,
		"errors":  render.MergeFormErrors(options.FormErrors),
		"hidden":  hiddenViews,
		"fields":  fields,
	}
}

func buildField(formID string, field model.Field, options render.RenderOptions) fieldView {
	view := fieldView{
		ID:          formID + "-" + field.Name,
		Name:        field.Name,
		Label:       field.Label,
		Input:       inputType(field),
		Required:    field.Required,
		Description: field.Description,
		Errors:      options.Errors[field.Name],
	}
	if view.Label == "" {
		view.Label = field.Name
	}

	value, ok := options.Values[field.Name]
	if !ok && field.Default != nil {
		value = fmt.Sprint(field.Default)
	}
	view.Value = value
	if view.Input == "checkbox" {
		view.Checked = isChecked(value)
	}

	for _, candidate := range field.Enum {
		text := fmt.Sprint(candidate)
		view.Options = append(view.Options, option{Value: text, Selected: text == value})
	}

	if view.Input == "hidden" {
		return view
	}
	view.Attrs = constraintAttrs(field, view.Input)
	if field.Placeholder != "" && len(view.Options) == 0 {
		view.Attrs = append(view.Attrs, attr{Name: "placeholder", Value: field.Placeholder})
	}
	if len(view.Errors) > 0 {
		view.Attrs = append(view.Attrs, attr{Name: "aria-invalid", Value: "true"})
	}
	return view
}

func inputType(field model.Field) string {
	if override := strings.TrimSpace(field.Metadata[inputExtension]); override != "" {
		return strings.ToLower(override)
	}
	switch field.Type {
	case model.FieldTypeInteger, model.FieldTypeNumber:
		return "number"
	case model.FieldTypeBoolean:
		return "checkbox"
	}
	switch strings.ToLower(field.Format) {
	case "email":
		return "email"
	case "uri", "url":
		return "url"
	case "password":
		return "password"
	}
	return "text"
}

// constraintAttrs maps validation rules onto HTML attributes. HTML has no
// exclusive bounds: integer fields shift the bound by one, other numbers
// keep the inclusive attribute and mark it with data-exclusive-*.
func constraintAttrs(field model.Field, input string) []attr {
	var attrs []attr
	if field.Required {
		attrs = append(attrs, attr{Name: "required"})
	}

	for _, rule := range field.Validations {
		value := rule.Params["value"]
		switch rule.Kind {
		case model.ValidationRuleMinLength:
			attrs = append(attrs, attr{Name: "minlength", Value: value})
		case model.ValidationRuleMaxLength:
			attrs = append(attrs, attr{Name: "maxlength", Value: value})
		case model.ValidationRulePattern:
			attrs = append(attrs, attr{Name: "pattern", Value: rule.Params["pattern"]})
		case model.ValidationRuleMin, model.ValidationRuleMax:
			if input != "number" {
				continue
			}
			attrs = append(attrs, boundAttrs(field.Type, rule)...)
		}
	}

	if input == "number" {
		step := "any"
		if field.Type == model.FieldTypeInteger {
			step = "1"
		}
		attrs = append(attrs, attr{Name: "step", Value: step})
	}
	return attrs
}

func boundAttrs(fieldType model.FieldType, rule model.ValidationRule) []attr {
	name := "min"
	delta := 1.0
	if rule.Kind == model.ValidationRuleMax {
		name = "max"
		delta = -1
	}
	value := rule.Params["value"]
	if rule.Params["exclusive"] != "true" {
		return []attr{{Name: name, Value: value}}
	}

	bound, err := strconv.ParseFloat(value, 64)
	if err == nil && fieldType == model.FieldTypeInteger && bound == float64(int64(bound)) {
		return []attr{{Name: name, Value: strconv.FormatFloat(bound+delta, 'f', -1, 64)}}
	}
	return []attr{{Name: name, Value: value}, {Name: "data-exclusive-" + name, Value: "true"}}
}

func isChecked(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "on", "1":
		return true
	}
	return false
}

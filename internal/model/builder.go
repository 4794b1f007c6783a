package model

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	pkgopenapi "github.com/goliatone/go-fileview/pkg/openapi"
)

const (
	extensionPrefix      = "x-fileview-"
	labelExtension       = extensionPrefix + "label"
	placeholderExtension = extensionPrefix + "placeholder"
	orderExtension       = extensionPrefix + "order"
)

// Builder converts OpenAPI operations into form models.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	return &Builder{opts: opts}
}

// Build transforms an OpenAPI operation into a FormModel. Only flat request
// bodies are supported: every property becomes one input.
func (b *Builder) Build(op pkgopenapi.Operation) (FormModel, error) {
	if err := validateOperation(op); err != nil {
		return FormModel{}, err
	}

	form := FormModel{
		OperationID: op.ID,
		Endpoint:    op.Path,
		Method:      strings.ToUpper(op.Method),
		Summary:     op.Summary,
		Description: op.Description,
		Metadata:    metadataFromExtensions(op.RequestBody.Extensions),
	}

	names := orderedProperties(op.RequestBody.Properties)
	form.Fields = make([]Field, 0, len(names))
	for _, name := range names {
		form.Fields = append(form.Fields, b.fieldFromPrimitive(name, op.RequestBody.Properties[name], op.RequestBody.IsRequired(name)))
	}
	return form, nil
}

func (b *Builder) fieldFromPrimitive(name string, schema pkgopenapi.Schema, required bool) Field {
	field := Field{
		Name:        name,
		Type:        mapType(schema.Type),
		Format:      schema.Format,
		Label:       b.opts.Labeler(name),
		Description: schema.Description,
		Required:    required,
		Default:     schema.Default,
		Metadata:    metadataFromExtensions(schema.Extensions),
	}
	if schema.Title != "" {
		field.Label = schema.Title
	}
	if label := field.Metadata[labelExtension]; label != "" {
		field.Label = label
	}
	if placeholder := field.Metadata[placeholderExtension]; placeholder != "" {
		field.Placeholder = placeholder
	}
	delete(field.Metadata, labelExtension)
	delete(field.Metadata, placeholderExtension)
	delete(field.Metadata, orderExtension)
	if len(field.Metadata) == 0 {
		field.Metadata = nil
	}

	if len(schema.Enum) > 0 {
		field.Enum = append([]any(nil), schema.Enum...)
	}
	applyValidations(&field, schema)
	return field
}

func mapType(schemaType string) FieldType {
	switch schemaType {
	case "integer":
		return FieldTypeInteger
	case "number":
		return FieldTypeNumber
	case "boolean":
		return FieldTypeBoolean
	default:
		return FieldTypeString
	}
}

func applyValidations(field *Field, schema pkgopenapi.Schema) {
	if field == nil {
		return
	}

	if schema.Minimum != nil {
		params := map[string]string{
			"value": formatFloat(*schema.Minimum),
		}
		if schema.ExclusiveMinimum {
			params["exclusive"] = "true"
		}
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleMin,
			Params: params,
		})
	}

	if schema.Maximum != nil {
		params := map[string]string{
			"value": formatFloat(*schema.Maximum),
		}
		if schema.ExclusiveMaximum {
			params["exclusive"] = "true"
		}
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleMax,
			Params: params,
		})
	}

	if schema.MinLength != nil {
		field.Validations = append(field.Validations, ValidationRule{
			Kind: ValidationRuleMinLength,
			Params: map[string]string{
				"value": strconv.Itoa(*schema.MinLength),
			},
		})
	}

	if schema.MaxLength != nil {
		field.Validations = append(field.Validations, ValidationRule{
			Kind: ValidationRuleMaxLength,
			Params: map[string]string{
				"value": strconv.Itoa(*schema.MaxLength),
			},
		})
	}

	if schema.Pattern != "" {
		field.Validations = append(field.Validations, ValidationRule{
			Kind: ValidationRulePattern,
			Params: map[string]string{
				"pattern": schema.Pattern,
			},
		})
	}
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// orderedProperties sorts by the x-fileview-order extension, then by name.
// Properties without an order come after ordered ones.
func orderedProperties(properties map[string]pkgopenapi.Schema) []string {
	names := make([]string, 0, len(properties))
	for name := range properties {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		oi, oj := propertyOrder(properties[names[i]]), propertyOrder(properties[names[j]])
		if oi != oj {
			return oi < oj
		}
		return names[i] < names[j]
	})
	return names
}

func propertyOrder(schema pkgopenapi.Schema) float64 {
	raw, ok := schema.Extensions[orderExtension]
	if !ok {
		return math.Inf(1)
	}
	switch v := raw.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return parsed
		}
	}
	return math.Inf(1)
}

func metadataFromExtensions(ext map[string]any) map[string]string {
	if len(ext) == 0 {
		return nil
	}
	out := make(map[string]string, len(ext))
	for key, value := range ext {
		if value == nil {
			continue
		}
		out[key] = strings.TrimSpace(fmt.Sprint(value))
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

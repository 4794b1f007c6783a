package parser

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-fileview/pkg/openapi"
)

// ExtensionPrefix namespaces the vendor extensions the parser keeps.
const ExtensionPrefix = "x-fileview"

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) pkgopenapi.Parser {
	return &Parser{options: options}
}

// Operations converts a Document into a map keyed by operationId.
func (p *Parser) Operations(ctx context.Context, doc pkgopenapi.Document) (map[string]pkgopenapi.Operation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx

	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}

	if spec.Paths == nil || spec.Paths.Len() == 0 {
		if !p.options.AllowPartialDocuments {
			return nil, errors.New("openapi parser: document does not contain any paths")
		}
	}

	if p.options.ResolveReferences {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}

	operations := make(map[string]pkgopenapi.Operation)
	if spec.Paths != nil {
		paths := spec.Paths.Map()
		keys := make([]string, 0, len(paths))
		for path := range paths {
			keys = append(keys, path)
		}
		sort.Strings(keys)

		for _, path := range keys {
			item := paths[path]
			if item == nil {
				continue
			}
			for _, method := range []string{"GET", "PUT", "POST", "DELETE", "PATCH"} {
				if err := collectOperation(operations, method, path, item, item.GetOperation(method)); err != nil {
					return nil, err
				}
			}
		}
	}

	if len(operations) == 0 && !p.options.AllowPartialDocuments {
		return nil, errors.New("openapi parser: no operations extracted")
	}

	return operations, nil
}

func collectOperation(target map[string]pkgopenapi.Operation, method, path string, item *openapi3.PathItem, operation *openapi3.Operation) error {
	if operation == nil {
		return nil
	}
	opID := operation.OperationID
	if opID == "" {
		opID = strings.ToLower(method) + ":" + path
	}
	if _, exists := target[opID]; exists {
		return fmt.Errorf("openapi parser: duplicate operation id %q", opID)
	}

	request := extractRequestSchema(operation.RequestBody)
	if operation.RequestBody == nil {
		request = queryParameters(item.Parameters, operation.Parameters)
	}

	op, err := pkgopenapi.NewOperation(opID, method, path, request)
	if err != nil {
		return fmt.Errorf("openapi parser: %s %s: %w", method, path, err)
	}
	op.Summary = operation.Summary
	op.Description = operation.Description
	target[opID] = op
	return nil
}

func extractRequestSchema(requestBody *openapi3.RequestBodyRef) pkgopenapi.Schema {
	if requestBody == nil {
		return pkgopenapi.Schema{}
	}
	if requestBody.Value == nil {
		return pkgopenapi.Schema{Ref: requestBody.Ref}
	}
	content := requestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt != nil {
			return convertSchema(mt.Schema)
		}
	}
	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if mt := content[key]; mt != nil {
			return convertSchema(mt.Schema)
		}
	}
	return pkgopenapi.Schema{}
}

// queryParameters folds query parameters into an object schema so that
// operations without a body, such as searches, still produce a form.
// Operation-level parameters override path-item ones with the same name.
func queryParameters(groups ...openapi3.Parameters) pkgopenapi.Schema {
	properties := make(map[string]pkgopenapi.Schema)
	required := make(map[string]bool)
	for _, params := range groups {
		for _, ref := range params {
			if ref == nil || ref.Value == nil || ref.Value.In != openapi3.ParameterInQuery {
				continue
			}
			param := ref.Value
			schema := pkgopenapi.Schema{Type: "string"}
			if param.Schema != nil {
				schema = convertSchema(param.Schema)
			}
			if schema.Description == "" {
				schema.Description = param.Description
			}
			properties[param.Name] = schema
			required[param.Name] = param.Required
		}
	}
	if len(properties) == 0 {
		return pkgopenapi.Schema{}
	}

	out := pkgopenapi.Schema{Type: "object", Properties: properties}
	for name, isRequired := range required {
		if isRequired {
			out.Required = append(out.Required, name)
		}
	}
	sort.Strings(out.Required)
	return out
}

func convertSchema(ref *openapi3.SchemaRef) pkgopenapi.Schema {
	return convert(ref, make(map[*openapi3.Schema]bool))
}

// convert walks the schema tree. Schemas already on the current path are
// emitted as bare references so recursive definitions terminate.
func convert(ref *openapi3.SchemaRef, visiting map[*openapi3.Schema]bool) pkgopenapi.Schema {
	if ref == nil {
		return pkgopenapi.Schema{}
	}
	if ref.Value == nil || visiting[ref.Value] {
		return pkgopenapi.Schema{Ref: ref.Ref}
	}
	visiting[ref.Value] = true
	defer delete(visiting, ref.Value)

	src := ref.Value
	schema := pkgopenapi.Schema{
		Ref:              ref.Ref,
		Type:             firstSchemaType(src.Type),
		Format:           src.Format,
		Title:            src.Title,
		Description:      src.Description,
		Default:          src.Default,
		Pattern:          src.Pattern,
		ExclusiveMinimum: src.ExclusiveMin,
		ExclusiveMaximum: src.ExclusiveMax,
		Extensions:       extractExtensions(src.Extensions),
	}

	if len(src.Required) > 0 {
		schema.Required = append([]string(nil), src.Required...)
	}
	if len(src.Enum) > 0 {
		schema.Enum = append([]any(nil), src.Enum...)
	}
	if len(src.Properties) > 0 {
		schema.Properties = make(map[string]pkgopenapi.Schema, len(src.Properties))
		for name, property := range src.Properties {
			schema.Properties[name] = convert(property, visiting)
		}
	}
	if src.Items != nil {
		items := convert(src.Items, visiting)
		schema.Items = &items
	}
	if src.Min != nil {
		value := *src.Min
		schema.Minimum = &value
	}
	if src.Max != nil {
		value := *src.Max
		schema.Maximum = &value
	}
	if src.MinLength != 0 {
		value := int(src.MinLength)
		schema.MinLength = &value
	}
	if src.MaxLength != nil {
		value := int(*src.MaxLength)
		schema.MaxLength = &value
	}
	return schema
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, value := range types.Slice() {
		if value != "null" {
			return value
		}
	}
	return ""
}

func extractExtensions(raw map[string]any) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	result := make(map[string]any)
	for key, value := range raw {
		if key == ExtensionPrefix || strings.HasPrefix(key, ExtensionPrefix+"-") {
			result[key] = value
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

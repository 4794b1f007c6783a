package render

import (
	"strings"

	"github.com/goliatone/go-fileview/pkg/model"
	"github.com/goliatone/go-fileview/pkg/validation"
)

// ErrorMapping splits an error payload into field-level and form-level
// messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// ErrorsFromIssues groups validation issues by field name. Messages are
// trimmed and de-duplicated, keeping their order.
func ErrorsFromIssues(issues []validation.Issue) map[string][]string {
	if len(issues) == 0 {
		return nil
	}
	grouped := make(map[string][]string)
	for _, issue := range issues {
		name := strings.TrimSpace(issue.Field)
		if name == "" {
			continue
		}
		grouped[name] = append(grouped[name], issue.Message)
	}
	for name, messages := range grouped {
		if normalized := normalizeMessages(messages); normalized != nil {
			grouped[name] = normalized
		} else {
			delete(grouped, name)
		}
	}
	if len(grouped) == 0 {
		return nil
	}
	return grouped
}

// MergeFormErrors concatenates form-level messages, trimming whitespace and
// removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload assigns server error messages to form fields. Keys may be
// bare field names or paths such as "/body/name" or "$.body.name"; request
// wrappers are skipped. Keys that do not name a field of the form become
// form-level errors so messages are not lost.
func MapErrorPayload(form model.FormModel, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{
		Fields: make(map[string][]string),
	}

	known := make(map[string]struct{}, len(form.Fields))
	for _, field := range form.Fields {
		known[field.Name] = struct{}{}
	}

	for rawPath, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}
		name := fieldFromPath(rawPath)
		if _, ok := known[name]; !ok {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		mapping.Fields[name] = append(mapping.Fields[name], normalized...)
	}

	for name, messages := range mapping.Fields {
		mapping.Fields[name] = normalizeMessages(messages)
	}
	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

var wrapperSegments = map[string]struct{}{
	"body":    {},
	"request": {},
	"payload": {},
	"data":    {},
	"query":   {},
}

func fieldFromPath(raw string) string {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimLeft(clean, "#$/.")
	segments := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	for _, segment := range segments {
		segment = strings.ReplaceAll(strings.TrimSpace(segment), "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		if _, wrapper := wrapperSegments[strings.ToLower(segment)]; wrapper || segment == "" {
			continue
		}
		return segment
	}
	return ""
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

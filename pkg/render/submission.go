package render

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// MethodOverrideField is the hidden input that carries the real verb when a
// browser form can only submit GET or POST.
const MethodOverrideField = "_method"

// HiddenField represents a hidden form input emitted alongside the visible
// fields.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken constructs a hidden field carrying the provided token. Callers
// supply the input name their backend expects, such as "_csrf".
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// FormMethod maps an HTTP method onto what an HTML form can submit. PUT,
// PATCH and DELETE become POST plus a MethodOverrideField hidden input.
func FormMethod(method string) (string, *HiddenField) {
	upper := strings.ToUpper(strings.TrimSpace(method))
	switch upper {
	case "", http.MethodPost:
		return http.MethodPost, nil
	case http.MethodGet:
		return http.MethodGet, nil
	default:
		override := Hidden(MethodOverrideField, upper)
		return http.MethodPost, &override
	}
}

// ExpandEndpoint substitutes {name} path parameters with escaped values.
// Parameters without a value are left as they are.
func ExpandEndpoint(endpoint string, values map[string]string) string {
	var out strings.Builder
	rest := endpoint
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			break
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			break
		}
		end += open
		name := rest[open+1 : end]
		out.WriteString(rest[:open])
		if value, ok := values[name]; ok {
			out.WriteString(url.PathEscape(value))
		} else {
			out.WriteString(rest[open : end+1])
		}
		rest = rest[end+1:]
	}
	out.WriteString(rest)
	return out.String()
}

// MergeHiddenFields returns a copy of base with the provided fields applied.
// Empty names are ignored; later fields win on name collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	if len(base) == 0 && len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		out[name] = field.Value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields normalises and sorts hidden fields for deterministic
// rendering. Empty names are dropped.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	clean := MergeHiddenFields(fields)
	if len(clean) == 0 {
		return nil
	}

	names := make([]string, 0, len(clean))
	for name := range clean {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{Name: name, Value: clean[name]})
	}
	return result
}

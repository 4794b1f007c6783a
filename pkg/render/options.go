package render

// RenderOptions describe per-request data that renderers can use to customise
// their output without changing the form model.
type RenderOptions struct {
	// Method overrides the HTTP method declared by the form model.
	Method string
	// Values pre-populates controls keyed by field name.
	Values map[string]string
	// Errors carries server-side validation messages keyed by field name.
	Errors map[string][]string
	// FormErrors are messages not tied to a single field.
	FormErrors []string
	// Hidden lists extra hidden inputs such as CSRF tokens.
	Hidden map[string]string
}

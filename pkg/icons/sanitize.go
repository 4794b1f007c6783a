package icons

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	iconPolicyOnce sync.Once
	iconPolicy     *bluemonday.Policy
)

// Sanitize strips everything but inline SVG drawing markup from raw.
func Sanitize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(iconSanitizer().Sanitize(trimmed))
}

func iconSanitizer() *bluemonday.Policy {
	iconPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		shapes := []string{"path", "circle", "rect", "line", "polyline", "polygon", "ellipse"}
		policy.AllowElements(append([]string{"svg", "g", "title", "desc", "defs", "use", "clipPath"}, shapes...)...)

		policy.AllowAttrs(
			"xmlns", "viewBox", "width", "height", "fill", "stroke",
			"stroke-width", "stroke-linecap", "stroke-linejoin", "aria-hidden",
			"role", "focusable", "class",
		).OnElements("svg")

		policy.AllowAttrs("href", "xlink:href", "clip-path").OnElements("use")

		policy.AllowAttrs(
			"d", "cx", "cy", "r", "x", "y", "x1", "y1", "x2", "y2",
			"points", "rx", "ry", "width", "height", "fill", "stroke", "stroke-width",
			"stroke-linecap", "stroke-linejoin", "class",
		).OnElements(shapes...)

		policy.AllowAttrs("id", "clipPathUnits").OnElements("clipPath")
		policy.AllowAttrs("id").OnElements("defs", "g")

		iconPolicy = policy
	})
	return iconPolicy
}

package validation

// Issue codes mirror the browser's ValidityState flags.
const (
	CodeValueMissing    = "valueMissing"
	CodeTypeMismatch    = "typeMismatch"
	CodePatternMismatch = "patternMismatch"
	CodeTooLong         = "tooLong"
	CodeTooShort        = "tooShort"
	CodeRangeUnderflow  = "rangeUnderflow"
	CodeRangeOverflow   = "rangeOverflow"
	CodeStepMismatch    = "stepMismatch"
	CodeBadInput        = "badInput"
)

// Issue describes why a single field failed its constraints.
type Issue struct {
	Field   string `json:"field"`
	Label   string `json:"label,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Reporter receives the issues surfaced by ReportValidity.
type Reporter interface {
	Report(issues []Issue)
}

// ReportFunc adapts a function into a Reporter.
type ReportFunc func(issues []Issue)

// Report calls the underlying function.
func (fn ReportFunc) Report(issues []Issue) {
	fn(issues)
}

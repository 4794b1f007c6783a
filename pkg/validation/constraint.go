package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-fileview/pkg/model"
)

const (
	msgValueMissing    = "Please fill out this field."
	msgCheckboxMissing = "Please check this box if you want to proceed."
	msgSelectMissing   = "Please select an item in the list."
	msgEmail           = "Please enter an email address."
	msgURL             = "Please enter a URL."
	msgPattern         = "Please match the requested format."
	msgNumber          = "Please enter a number."
	msgWholeNumber     = "Please enter a whole number."
	msgBoolean         = "Please enter true or false."
)

// htmlFloat matches the HTML "valid floating-point number" grammar.
var htmlFloat = regexp.MustCompile(`^-?(?:[0-9]+(?:\.[0-9]+)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?$`)

var defaultValidator = validator.New()

// Option customises a ConstraintForm.
type Option func(*ConstraintForm)

// WithReporter sets where ReportValidity sends issues.
func WithReporter(reporter Reporter) Option {
	return func(f *ConstraintForm) {
		f.reporter = reporter
	}
}

// WithReportAll makes ReportValidity send every issue instead of only the
// first invalid field.
func WithReportAll() Option {
	return func(f *ConstraintForm) {
		f.reportAll = true
	}
}

// WithValidator replaces the validator used for tag based checks.
func WithValidator(v *validator.Validate) Option {
	return func(f *ConstraintForm) {
		if v != nil {
			f.checker.validate = v
		}
	}
}

// ConstraintForm evaluates submitted values against a form model.
type ConstraintForm struct {
	form      model.FormModel
	values    map[string]string
	reporter  Reporter
	reportAll bool
	checker   checker
}

var _ Form = (*ConstraintForm)(nil)

// NewConstraintForm binds values to form. The values map is copied.
func NewConstraintForm(form model.FormModel, values map[string]string, options ...Option) *ConstraintForm {
	copied := make(map[string]string, len(values))
	for key, value := range values {
		copied[key] = value
	}
	f := &ConstraintForm{
		form:    form,
		values:  copied,
		checker: checker{validate: defaultValidator, patterns: map[string]*regexp.Regexp{}},
	}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}
	f.checker.compile(form.Fields)
	return f
}

// Model returns the form model the values are checked against.
func (f *ConstraintForm) Model() model.FormModel {
	return f.form
}

// Value returns the submitted value for a field.
func (f *ConstraintForm) Value(name string) string {
	return f.values[name]
}

// Values returns a copy of the submitted values.
func (f *ConstraintForm) Values() map[string]string {
	out := make(map[string]string, len(f.values))
	for key, value := range f.values {
		out[key] = value
	}
	return out
}

// CheckValidity reports whether every field satisfies its constraints.
func (f *ConstraintForm) CheckValidity() bool {
	for _, field := range f.form.Fields {
		if _, ok := f.checker.check(field, f.values[field.Name]); !ok {
			return false
		}
	}
	return true
}

// Issues returns the first issue of every invalid field, in field order.
func (f *ConstraintForm) Issues() []Issue {
	var issues []Issue
	for _, field := range f.form.Fields {
		if issue, ok := f.checker.check(field, f.values[field.Name]); !ok {
			issues = append(issues, issue)
		}
	}
	return issues
}

// ReportValidity sends the issue of the first invalid field to the reporter,
// or every issue when WithReportAll is set. Valid forms report nothing.
func (f *ConstraintForm) ReportValidity() {
	if f.reporter == nil {
		return
	}
	issues := f.Issues()
	if len(issues) == 0 {
		return
	}
	if !f.reportAll {
		issues = issues[:1]
	}
	f.reporter.Report(issues)
}

// CheckField applies the field's constraints to a single value. It returns
// false with the issue when the value is invalid.
func CheckField(field model.Field, value string) (Issue, bool) {
	c := checker{validate: defaultValidator, patterns: map[string]*regexp.Regexp{}}
	c.compile([]model.Field{field})
	return c.check(field, value)
}

type checker struct {
	validate *validator.Validate
	patterns map[string]*regexp.Regexp
}

// compile prepares anchored patterns. Patterns that do not compile are
// ignored, as browsers ignore an invalid pattern attribute.
func (c *checker) compile(fields []model.Field) {
	for _, field := range fields {
		rule, ok := field.Rule(model.ValidationRulePattern)
		if !ok || rule.Params["pattern"] == "" {
			continue
		}
		source := rule.Params["pattern"]
		if _, seen := c.patterns[source]; seen {
			continue
		}
		re, err := regexp.Compile("^(?:" + source + ")$")
		if err != nil {
			c.patterns[source] = nil
			continue
		}
		c.patterns[source] = re
	}
}

func (c *checker) check(field model.Field, value string) (Issue, bool) {
	fail := func(code, message string) (Issue, bool) {
		return Issue{Field: field.Name, Label: field.Label, Code: code, Message: message}, false
	}

	if field.Type == model.FieldTypeBoolean {
		checked, ok := parseBool(value)
		if !ok {
			return fail(CodeBadInput, msgBoolean)
		}
		if field.Required && !checked {
			return fail(CodeValueMissing, msgCheckboxMissing)
		}
		return Issue{}, true
	}

	if c.validate.Var(value, "required") != nil {
		if !field.Required {
			return Issue{}, true
		}
		if len(field.Enum) > 0 {
			return fail(CodeValueMissing, msgSelectMissing)
		}
		return fail(CodeValueMissing, msgValueMissing)
	}

	switch field.Type {
	case model.FieldTypeInteger, model.FieldTypeNumber:
		return c.checkNumber(field, value, fail)
	default:
		return c.checkText(field, value, fail)
	}
}

type failFunc func(code, message string) (Issue, bool)

func (c *checker) checkText(field model.Field, value string, fail failFunc) (Issue, bool) {
	switch strings.ToLower(field.Format) {
	case "email":
		if c.validate.Var(value, "email") != nil {
			return fail(CodeTypeMismatch, msgEmail)
		}
	case "uri", "url":
		if c.validate.Var(value, "url") != nil {
			return fail(CodeTypeMismatch, msgURL)
		}
	}

	if rule, ok := field.Rule(model.ValidationRulePattern); ok {
		if re := c.patterns[rule.Params["pattern"]]; re != nil && !re.MatchString(value) {
			return fail(CodePatternMismatch, msgPattern)
		}
	}

	length := utf8.RuneCountInString(value)
	if rule, ok := field.Rule(model.ValidationRuleMaxLength); ok {
		if limit, err := strconv.Atoi(rule.Params["value"]); err == nil && c.validate.Var(value, "max="+strconv.Itoa(limit)) != nil {
			return fail(CodeTooLong, fmt.Sprintf("Please shorten this text to %d characters or less (you are currently using %d characters).", limit, length))
		}
	}
	if rule, ok := field.Rule(model.ValidationRuleMinLength); ok {
		if limit, err := strconv.Atoi(rule.Params["value"]); err == nil && c.validate.Var(value, "min="+strconv.Itoa(limit)) != nil {
			return fail(CodeTooShort, fmt.Sprintf("Please lengthen this text to %d characters or more (you are currently using %d characters).", limit, length))
		}
	}

	if len(field.Enum) > 0 && !inEnum(field.Enum, value) {
		return fail(CodeTypeMismatch, msgSelectMissing)
	}
	return Issue{}, true
}

func (c *checker) checkNumber(field model.Field, value string, fail failFunc) (Issue, bool) {
	if !htmlFloat.MatchString(value) {
		return fail(CodeBadInput, msgNumber)
	}
	number, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsInf(number, 0) {
		return fail(CodeBadInput, msgNumber)
	}
	if field.Type == model.FieldTypeInteger && number != math.Trunc(number) {
		return fail(CodeStepMismatch, msgWholeNumber)
	}

	if rule, ok := field.Rule(model.ValidationRuleMin); ok {
		bound := rule.Params["value"]
		if _, err := strconv.ParseFloat(bound, 64); err == nil {
			exclusive := rule.Params["exclusive"] == "true"
			tag := "gte=" + bound
			message := fmt.Sprintf("Value must be greater than or equal to %s.", bound)
			if exclusive {
				tag = "gt=" + bound
				message = fmt.Sprintf("Value must be greater than %s.", bound)
			}
			if c.validate.Var(number, tag) != nil {
				return fail(CodeRangeUnderflow, message)
			}
		}
	}
	if rule, ok := field.Rule(model.ValidationRuleMax); ok {
		bound := rule.Params["value"]
		if _, err := strconv.ParseFloat(bound, 64); err == nil {
			exclusive := rule.Params["exclusive"] == "true"
			tag := "lte=" + bound
			message := fmt.Sprintf("Value must be less than or equal to %s.", bound)
			if exclusive {
				tag = "lt=" + bound
				message = fmt.Sprintf("Value must be less than %s.", bound)
			}
			if c.validate.Var(number, tag) != nil {
				return fail(CodeRangeOverflow, message)
			}
		}
	}

	if len(field.Enum) > 0 && !inEnum(field.Enum, value) {
		return fail(CodeTypeMismatch, msgSelectMissing)
	}
	return Issue{}, true
}

func parseBool(value string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "false", "off", "0":
		return false, true
	case "true", "on", "1":
		return true, true
	}
	return false, false
}

func inEnum(options []any, value string) bool {
	for _, option := range options {
		if fmt.Sprint(option) == value {
			return true
		}
	}
	return false
}

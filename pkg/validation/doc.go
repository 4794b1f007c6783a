// Package validation gates form submission on constraint checks. ValidateForm
// works against any Form capability; ConstraintForm is the server-side Form
// built from a model.FormModel and the submitted values, applying the same
// rules browsers apply to native constraint attributes.
package validation

package validation

// Form is the capability ValidateForm needs: a side-effect free validity
// check and a way to surface the messages of an invalid form.
type Form interface {
	CheckValidity() bool
	ReportValidity()
}

// ValidateForm reports whether form passes its constraint checks. When it
// does not, ReportValidity is called once before returning false. A nil form
// has no constraints and is valid.
func ValidateForm(form Form) bool {
	if form == nil {
		return true
	}
	if form.CheckValidity() {
		return true
	}
	form.ReportValidity()
	return false
}

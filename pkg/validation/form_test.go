package validation_test

import (
	"testing"

	"github.com/goliatone/go-fileview/pkg/validation"
)

type fakeForm struct {
	valid       bool
	checkCalls  int
	reportCalls int
	values      map[string]string
}

func (f *fakeForm) CheckValidity() bool {
	f.checkCalls++
	return f.valid
}

func (f *fakeForm) ReportValidity() {
	f.reportCalls++
}

func TestValidateFormValid(t *testing.T) {
	form := &fakeForm{valid: true, values: map[string]string{"name": "docs"}}

	if !validation.ValidateForm(form) {
		t.Fatal("expected valid form to pass")
	}
	if form.checkCalls != 1 || form.reportCalls != 0 {
		t.Fatalf("unexpected calls: check=%d report=%d", form.checkCalls, form.reportCalls)
	}
	if form.values["name"] != "docs" {
		t.Fatalf("values mutated: %v", form.values)
	}
}

func TestValidateFormInvalidReportsOnce(t *testing.T) {
	form := &fakeForm{valid: false, values: map[string]string{"name": ""}}

	if validation.ValidateForm(form) {
		t.Fatal("expected invalid form to fail")
	}
	if form.checkCalls != 1 || form.reportCalls != 1 {
		t.Fatalf("unexpected calls: check=%d report=%d", form.checkCalls, form.reportCalls)
	}
	if len(form.values) != 1 || form.values["name"] != "" {
		t.Fatalf("values mutated: %v", form.values)
	}
}

func TestValidateFormNil(t *testing.T) {
	if !validation.ValidateForm(nil) {
		t.Fatal("nil form should be valid")
	}
}

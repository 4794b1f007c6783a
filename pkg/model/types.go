package model

import internalmodel "github.com/goliatone/go-fileview/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeString  = internalmodel.FieldTypeString
	FieldTypeInteger = internalmodel.FieldTypeInteger
	FieldTypeNumber  = internalmodel.FieldTypeNumber
	FieldTypeBoolean = internalmodel.FieldTypeBoolean
)

const (
	ValidationRuleMin       = internalmodel.ValidationRuleMin
	ValidationRuleMax       = internalmodel.ValidationRuleMax
	ValidationRuleMinLength = internalmodel.ValidationRuleMinLength
	ValidationRuleMaxLength = internalmodel.ValidationRuleMaxLength
	ValidationRulePattern   = internalmodel.ValidationRulePattern
)

type ValidationRule = internalmodel.ValidationRule
type Field = internalmodel.Field
type FormModel = internalmodel.FormModel

// DefaultLabeler is the label function used when none is configured.
func DefaultLabeler(name string) string {
	return internalmodel.DefaultLabeler(name)
}

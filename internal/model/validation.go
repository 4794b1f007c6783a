package model

import (
	"errors"
	"fmt"

	pkgopenapi "github.com/goliatone/go-fileview/pkg/openapi"
)

var (
	errOperationIDMissing     = errors.New("model builder: operation id is required")
	errOperationPathMissing   = errors.New("model builder: operation path is required")
	errOperationMethodMissing = errors.New("model builder: operation method is required")
)

func validateOperation(op pkgopenapi.Operation) error {
	if op.ID == "" {
		return errOperationIDMissing
	}
	if op.Path == "" {
		return errOperationPathMissing
	}
	if op.Method == "" {
		return errOperationMethodMissing
	}
	if err := validateSchema(op.RequestBody); err != nil {
		return fmt.Errorf("model builder: invalid request body for %q: %w", op.ID, err)
	}
	return nil
}

func validateSchema(schema pkgopenapi.Schema) error {
	switch schema.Type {
	case "", "object":
	default:
		return fmt.Errorf("request body must be an object, got %q", schema.Type)
	}
	for name, property := range schema.Properties {
		switch property.Type {
		case "object", "array":
			return fmt.Errorf("field %q: nested %s fields are not supported", name, property.Type)
		}
		if property.Ref != "" && property.Type == "" {
			return fmt.Errorf("field %q: unresolved reference %s", name, property.Ref)
		}
	}
	return nil
}

// Package openapi exposes the contracts for loading and parsing the OpenAPI
// document that describes the file manager's request forms. Implementations
// live under internal/openapi so kin-openapi types never leak to callers.
package openapi

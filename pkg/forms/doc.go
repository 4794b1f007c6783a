// Package forms loads the file manager's request forms. The forms are
// described by an embedded OpenAPI document (openapi.yaml) and built into
// model.FormModel values once, at load time. A different document can be
// supplied from disk or from any fs.FS.
package forms

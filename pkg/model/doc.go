// Package model defines the typed form model consumed by the listing renderer,
// the constraint validator and the terminal prompts. Builders reside in
// internal/model but return the types defined here. Validation rules expose
// canonical identifiers (min/max, minLength/maxLength, pattern) with string
// parameters so renderers can map them onto HTML constraint attributes.
// Schema extensions under the `x-fileview` namespace set labels,
// placeholders and field order; any other extension is kept as field metadata.
package model

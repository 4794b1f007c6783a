// Package render holds the pieces shared by the form renderers: the Renderer
// contract, per-request RenderOptions, hidden-field helpers and the mapping of
// validation issues or server error payloads onto form fields.
package render

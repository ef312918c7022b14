// Package render serializes OpenADR 2.0b report models to schema-exact XML.
//
// Interoperability with other vendors' VTN/VEN implementations depends on
// byte-level schema conformance: element order is fixed, unset optional
// fields must produce no element at all, and timestamps/durations must use
// their single canonical lexical form. For that reason the builder is a set
// of explicit tree-walking writers (one per entity) over a strings.Builder
// rather than struct-tag marshaling, which cannot express conditional
// wrapper elements or the required namespace prefixes.
//
// Rendering is all-or-nothing: a missing required field or an
// unrepresentable value aborts the render with no output (see errors.go).
// Builders are stateless and safe for concurrent use.
//
// Report-description blocks are produced by a DescriptionRenderer delegate;
// BuildReportDescription is the default.
package render

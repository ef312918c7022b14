package render

import "errors"

// Rendering is all-or-nothing: any of these errors means no output was
// produced. All of them indicate a malformed input model, not a transient
// condition, so the caller must fix the model before retrying.
var (
	// ErrMissingRequiredField is returned when a schema-required field is
	// absent from the model at render time.
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrFormat is returned when a value cannot be normalized to its
	// canonical lexical form (invalid timestamp, negative or sub-second
	// duration, non-finite number).
	ErrFormat = errors.New("value has no canonical lexical form")

	// ErrDelegateRender tags failures propagated from the report-description
	// delegate. The delegate's own error remains in the chain.
	ErrDelegateRender = errors.New("report description renderer failed")
)

package pdk

import (
	"errors"
	"fmt"
)

// ErrMissingDiscriminant reports a reference map whose "type" field is absent
// or not a string.
var ErrMissingDiscriminant = errors.New("missing or invalid 'type' field in reference")

// NotFoundError is the dispatch-fatal outcome for a capability name that does
// not exist in the catalog. It is never downgraded to an in-band soft error.
type NotFoundError struct {
	Kind string // "tool", "prompt", "plugin" or "method"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown %s: %s", e.Kind, e.Name)
}

// NotImplementedError reports a completion target the plugin does not serve.
type NotImplementedError struct {
	Subject string // "prompt", "resource" or "argument"
	Name    string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("completion for %s not implemented: %s", e.Subject, e.Name)
}

// UnknownVariantError reports a reference discriminant outside the closed set
// of known variants. Matching is exact; case-mismatched values are unknown.
type UnknownVariantError struct {
	Value string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown reference type: %s", e.Value)
}
